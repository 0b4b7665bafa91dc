package container

import (
	"errors"
	"fmt"
	"os/exec"
)

// ErrNoRuntime is returned when no container runtime is found.
var ErrNoRuntime = errors.New("no container runtime found (need docker or podman)")

// DetectRuntime resolves the runtime binary. An explicit name must be on PATH
// (or be a path); otherwise docker is preferred over podman.
func DetectRuntime(name string) (string, error) {
	if name != "" {
		if _, err := exec.LookPath(name); err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrNoRuntime, name, err)
		}
		return name, nil
	}
	for _, bin := range []string{"docker", "podman"} {
		if _, err := exec.LookPath(bin); err != nil {
			continue
		}
		return bin, nil
	}
	return "", ErrNoRuntime
}
