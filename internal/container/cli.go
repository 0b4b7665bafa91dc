package container

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/RevCBH/docketeer/internal/proc"
)

// CLIManager implements Manager using the docker (or podman) CLI.
type CLIManager struct {
	runtime string
}

// NewCLIManager creates a Manager using the specified runtime binary.
// Use DetectRuntime() to find an available runtime first.
func NewCLIManager(runtime string) *CLIManager {
	return &CLIManager{runtime: runtime}
}

// Runtime returns the runtime binary this manager invokes.
func (m *CLIManager) Runtime() string {
	return m.runtime
}

// Pull runs `<runtime> pull <image>` in the foreground.
func (m *CLIManager) Pull(ctx context.Context, image string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 1, err
	}
	p, err := proc.Start(proc.Spec{Name: m.runtime, Args: []string{"pull", image}})
	if err != nil {
		return 1, fmt.Errorf("failed to pull image: %w", err)
	}
	return p.Wait()
}

// Spawn starts `<runtime> <args...>` sharing this process's stdio.
func (m *CLIManager) Spawn(args []string) (proc.Process, error) {
	return proc.Start(proc.Spec{Name: m.runtime, Args: args})
}

// Remove runs `<runtime> rm -f <name>`.
func (m *CLIManager) Remove(ctx context.Context, name string) error {
	cmd := exec.CommandContext(ctx, m.runtime, "rm", "-f", name)

	if output, err := cmd.CombinedOutput(); err != nil {
		msg := strings.TrimSpace(string(output))
		if msg == "" {
			return fmt.Errorf("failed to remove container %s: %w", name, err)
		}
		return fmt.Errorf("failed to remove container %s: %w: %s", name, err, msg)
	}

	return nil
}

// Verify CLIManager implements Manager interface
var _ Manager = (*CLIManager)(nil)
