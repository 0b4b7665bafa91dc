// Package config assembles docketeer settings from CLI options, the
// environment and defaults. A Config is built once at start-up and passed
// explicitly to the driver and launcher.
package config

import (
	"fmt"
	"time"
)

// Config holds the resolved settings for one invocation.
type Config struct {
	// Image is the container image to run the browser from
	Image string

	// ExecPath is the browser executable inside the container
	ExecPath string

	// DockerRunArgs is the raw, untokenized extra `docker run` flags
	DockerRunArgs string

	// Runtime is the container CLI binary. Empty means detect docker, then podman.
	Runtime string

	// Launcher overrides the path of the launcher program handed to the target
	Launcher string

	// StopTimeout is how long a signalled launcher waits for the container
	// client to exit before killing it. Zero disables escalation.
	StopTimeout time.Duration

	// Debug enables debug logging
	Debug bool
}

// DriverOptions are the driver's command-line inputs.
type DriverOptions struct {
	// ExecPath is the --exec-path value, empty when not given
	ExecPath string

	// Args are the positional arguments: [image] target [target-args...]
	Args []string
}

// ResolveDriver builds the driver configuration and splits off the target
// invocation. The image comes from the environment when set, otherwise it is
// the first positional argument.
func ResolveDriver(opts DriverOptions) (*Config, []string, error) {
	cfg, err := load()
	if err != nil {
		return nil, nil, err
	}

	if opts.ExecPath != "" {
		cfg.ExecPath = opts.ExecPath
	}

	args := opts.Args
	if cfg.Image == "" && len(args) > 0 {
		cfg.Image = args[0]
		args = args[1:]
	}

	if err := validateDriver(cfg, args); err != nil {
		return nil, nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, args, nil
}

// ResolveLaunch builds the launcher configuration from the environment the
// driver prepared.
func ResolveLaunch() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg, launchImageHint); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// load applies defaults, then environment overrides.
func load() (*Config, error) {
	cfg := DefaultConfig()
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return cfg, nil
}
