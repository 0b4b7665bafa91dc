package container

import (
	"context"

	"github.com/RevCBH/docketeer/internal/proc"
)

// Manager drives a container runtime CLI.
type Manager interface {
	// Pull fetches image with the runtime's output shown to the user and
	// returns the runtime's exit status.
	Pull(ctx context.Context, image string) (exitCode int, err error)

	// Spawn starts the runtime with args and stdio inherited, without waiting.
	Spawn(args []string) (proc.Process, error)

	// Remove force-removes the named container, stopping it if needed.
	Remove(ctx context.Context, name string) error
}
