// Package browserflags translates the flags an automation tool passes to a
// Chromium-style browser into what the containerized browser should receive.
package browserflags

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// PortSwitch selects the DevTools port the automation tool will connect to.
	PortSwitch = "remote-debugging-port"
	// UserDataDirSwitch points the browser at a host profile directory, which does
	// not exist inside the container.
	UserDataDirSwitch = "user-data-dir"
	// ListenAllFlag makes the in-container DevTools endpoint reachable through the
	// published port.
	ListenAllFlag = "--remote-debugging-address=0.0.0.0"
)

// ErrZeroPort is returned for --remote-debugging-port=0. The port has to be
// published before the container starts, so it cannot be chosen by the browser.
var ErrZeroPort = errors.New("--remote-debugging-port=0 is unsupported; pass an actual port or use --remote-debugging-pipe")

// InvalidPortError reports a --remote-debugging-port value that is not a TCP port.
type InvalidPortError struct {
	Value string
}

func (e *InvalidPortError) Error() string {
	return fmt.Sprintf("invalid --%s value %q: expected a port between 1 and 65535", PortSwitch, e.Value)
}

// Translation is the container-side view of a browser invocation.
type Translation struct {
	// Port is the DevTools port to publish on the same number host-side, or 0
	// when the tool did not ask for one.
	Port int
	// Flags are the tool's flags in their original order, minus user-data-dir.
	Flags []string
}

// HasPort reports whether a port binding is required.
func (t Translation) HasPort() bool {
	return t.Port > 0
}

// Translate extracts the debugging port from flags and drops switches that
// reference the host filesystem. All other flags are forwarded untouched.
func Translate(flags []string) (Translation, error) {
	var out Translation
	out.Flags = make([]string, 0, len(flags))

	for _, flag := range flags {
		name, value, hasValue := splitSwitch(flag)
		switch name {
		case UserDataDirSwitch:
			continue
		case PortSwitch:
			// Every occurrence reaches the browser, which uses the last one,
			// so each must be valid and the last decides the binding.
			if hasValue {
				port, err := parsePort(value)
				if err != nil {
					return Translation{}, err
				}
				out.Port = port
			}
		}
		out.Flags = append(out.Flags, flag)
	}
	return out, nil
}

// splitSwitch parses a Chromium command-line switch. Chromium accepts both
// "--name" and "-name" on POSIX. Non-switch arguments return an empty name.
func splitSwitch(arg string) (name, value string, hasValue bool) {
	var body string
	switch {
	case strings.HasPrefix(arg, "--"):
		body = arg[2:]
	case strings.HasPrefix(arg, "-"):
		body = arg[1:]
	default:
		return "", "", false
	}
	if body == "" {
		return "", "", false
	}
	return strings.Cut(body, "=")
}

func parsePort(value string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, &InvalidPortError{Value: value}
	}
	if port == 0 {
		return 0, ErrZeroPort
	}
	if port < 0 || port > 65535 {
		return 0, &InvalidPortError{Value: value}
	}
	return port, nil
}
