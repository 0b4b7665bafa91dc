package container

import (
	"fmt"
	"strconv"
)

// RunConfig specifies a foreground `run` invocation.
type RunConfig struct {
	// Name is the container name (e.g., "docketeer_01hz...")
	Name string

	// Image is the container image (e.g., "browserless/chrome")
	Image string

	// Command is the executable and arguments to run inside the container
	Command []string

	// Port is published on the same number host-side; 0 publishes nothing
	Port int

	// ExtraArgs are passed to `run` verbatim, just before the image
	ExtraArgs []string
}

// Args renders the runtime arguments. The container is removed on exit and
// runs an init process so signals reach the command.
func (c RunConfig) Args() []string {
	args := []string{"run", "--rm", "--init", "--name=" + c.Name}

	if c.Port > 0 {
		port := strconv.Itoa(c.Port)
		args = append(args, fmt.Sprintf("-p=%s:%s", port, port))
	}

	args = append(args, c.ExtraArgs...)

	// Image and command come last
	args = append(args, c.Image)
	args = append(args, c.Command...)
	return args
}
