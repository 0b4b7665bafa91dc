package container

import (
	"context"
	"errors"
	"testing"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLister struct {
	containers []types.Container
	err        error
	gotOpts    container.ListOptions
	closed     bool
}

func (m *mockLister) ContainerList(ctx context.Context, opts container.ListOptions) ([]types.Container, error) {
	m.gotOpts = opts
	return m.containers, m.err
}

func (m *mockLister) Close() error {
	m.closed = true
	return nil
}

func TestEngineClient_ListByPrefix(t *testing.T) {
	api := &mockLister{containers: []types.Container{
		{Names: []string{"/docketeer_b"}, ID: "0123456789abcdef", Image: "img", State: "running", Status: "Up 2 seconds",
			Ports: []types.Port{{IP: "0.0.0.0", PrivatePort: 9222, PublicPort: 9222, Type: "tcp"}}},
		{Names: []string{"/not_docketeer_c"}, ID: "ffff", Image: "img"},
		{Names: []string{"/docketeer_a"}, ID: "abc", Image: "img2", State: "exited", Status: "Exited (0)"},
	}}
	e := &EngineClient{api: api}

	got, err := e.ListByPrefix(context.Background(), "docketeer_")
	require.NoError(t, err)

	assert.True(t, api.gotOpts.All)
	assert.Equal(t, []string{"docketeer_"}, api.gotOpts.Filters.Get("name"))
	require.Len(t, got, 2)
	assert.Equal(t, Summary{Name: "docketeer_a", ID: "abc", Image: "img2", State: "exited", Status: "Exited (0)"}, got[0])
	assert.Equal(t, "docketeer_b", got[1].Name)
	assert.Equal(t, "0123456789ab", got[1].ID)
	assert.Equal(t, []string{"0.0.0.0:9222->9222/tcp"}, got[1].Ports)

	require.NoError(t, e.Close())
	assert.True(t, api.closed)
}

func TestEngineClient_ListError(t *testing.T) {
	e := &EngineClient{api: &mockLister{err: errors.New("daemon down")}}

	_, err := e.ListByPrefix(context.Background(), "docketeer_")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "daemon down")
}

func TestFormatPort(t *testing.T) {
	assert.Equal(t, "9222/tcp", formatPort(types.Port{PrivatePort: 9222, Type: "tcp"}))
	assert.Equal(t, "0.0.0.0:80->8080/tcp", formatPort(types.Port{PrivatePort: 8080, PublicPort: 80, Type: "tcp"}))
	assert.Equal(t, "::1:80->80/udp", formatPort(types.Port{IP: "::1", PrivatePort: 80, PublicPort: 80, Type: "udp"}))
}
