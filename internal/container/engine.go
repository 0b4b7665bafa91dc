package container

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
)

// Summary describes one container as reported by the Engine API.
type Summary struct {
	Name   string   `yaml:"name"`
	ID     string   `yaml:"id"`
	Image  string   `yaml:"image"`
	State  string   `yaml:"state"`
	Status string   `yaml:"status"`
	Ports  []string `yaml:"ports,omitempty"`
}

type containerLister interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]types.Container, error)
	Close() error
}

// EngineClient talks to the Docker Engine API directly, for read-only queries
// the CLI output is awkward to parse for.
type EngineClient struct {
	api containerLister
}

// NewEngineClient connects using DOCKER_HOST and related environment variables.
func NewEngineClient() (*EngineClient, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}
	return &EngineClient{api: cli}, nil
}

// Close releases the underlying connection.
func (e *EngineClient) Close() error {
	return e.api.Close()
}

// ListByPrefix returns every container, running or not, whose name starts
// with prefix, sorted by name.
func (e *EngineClient) ListByPrefix(ctx context.Context, prefix string) ([]Summary, error) {
	containers, err := e.api.ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: filters.NewArgs(filters.Arg("name", prefix)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	// The name filter is a substring match, so narrow it down here.
	var out []Summary
	for _, c := range containers {
		s := summarize(c)
		if !strings.HasPrefix(s.Name, prefix) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func summarize(c types.Container) Summary {
	s := Summary{
		ID:     shortID(c.ID),
		Image:  c.Image,
		State:  c.State,
		Status: c.Status,
	}
	if len(c.Names) > 0 {
		s.Name = strings.TrimPrefix(c.Names[0], "/")
	}
	for _, p := range c.Ports {
		s.Ports = append(s.Ports, formatPort(p))
	}
	sort.Strings(s.Ports)
	return s
}

func formatPort(p types.Port) string {
	if p.PublicPort == 0 {
		return fmt.Sprintf("%d/%s", p.PrivatePort, p.Type)
	}
	ip := p.IP
	if ip == "" {
		ip = "0.0.0.0"
	}
	return fmt.Sprintf("%s:%d->%d/%s", ip, p.PublicPort, p.PrivatePort, p.Type)
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
