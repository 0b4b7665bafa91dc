package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/RevCBH/docketeer/internal/container"
	"github.com/RevCBH/docketeer/internal/proc"
)

// FakeRuntime is a container.Manager that records calls instead of running
// a container CLI.
type FakeRuntime struct {
	mu sync.Mutex

	// PullCode and PullErr are returned by Pull
	PullCode int
	PullErr  error

	// Process is returned by Spawn; a fresh FakeProcess is used when nil
	Process  *FakeProcess
	SpawnErr error

	RemoveErr error

	pulls   []string
	spawns  [][]string
	removed []string
}

// NewFakeRuntime returns a runtime whose pulls succeed.
func NewFakeRuntime() *FakeRuntime {
	return &FakeRuntime{}
}

func (r *FakeRuntime) Pull(ctx context.Context, image string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pulls = append(r.pulls, image)
	return r.PullCode, r.PullErr
}

func (r *FakeRuntime) Spawn(args []string) (proc.Process, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spawns = append(r.spawns, append([]string(nil), args...))
	if r.SpawnErr != nil {
		return nil, r.SpawnErr
	}
	if r.Process == nil {
		r.Process = NewFakeProcess()
	}
	return r.Process, nil
}

func (r *FakeRuntime) Remove(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, name)
	return r.RemoveErr
}

// Pulls returns the images pulled so far.
func (r *FakeRuntime) Pulls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.pulls...)
}

// Spawns returns the argument vectors of every Spawn call.
func (r *FakeRuntime) Spawns() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.spawns...)
}

// Removed returns the container names passed to Remove.
func (r *FakeRuntime) Removed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.removed...)
}

// FakeStarter stands in for proc.Start.
type FakeStarter struct {
	mu sync.Mutex

	Process *FakeProcess
	Err     error

	specs []proc.Spec
}

// Start records spec and returns the configured process.
func (s *FakeStarter) Start(spec proc.Spec) (proc.Process, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.specs = append(s.specs, spec)
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Process == nil {
		return nil, errors.New("testutil: FakeStarter has no process")
	}
	return s.Process, nil
}

// Specs returns every spec passed to Start.
func (s *FakeStarter) Specs() []proc.Spec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]proc.Spec(nil), s.specs...)
}

var _ container.Manager = (*FakeRuntime)(nil)
