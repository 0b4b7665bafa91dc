package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables read by docketeer or set for the target script.
const (
	EnvImage         = "DOCKETEER_IMAGE"
	EnvExecPath      = "DOCKETEER_EXEC_PATH"
	EnvDockerRunArgs = "DOCKETEER_DOCKER_RUN_ARGS"
	EnvEnabled       = "DOCKETEER_ENABLED"
	EnvLauncher      = "DOCKETEER_LAUNCHER"
	EnvRuntime       = "DOCKETEER_RUNTIME"
	EnvStopTimeout   = "DOCKETEER_STOP_TIMEOUT"
	EnvDebug         = "DOCKETEER_DEBUG"

	EnvPuppeteerExecutablePath = "PUPPETEER_EXECUTABLE_PATH"
	EnvForceColor              = "FORCE_COLOR"
)

// envOverrides maps environment variables to config field setters.
var envOverrides = []struct {
	envVar string
	apply  func(*Config, string) error
}{
	{
		envVar: EnvImage,
		apply: func(c *Config, v string) error {
			c.Image = v
			return nil
		},
	},
	{
		envVar: EnvExecPath,
		apply: func(c *Config, v string) error {
			c.ExecPath = v
			return nil
		},
	},
	{
		envVar: EnvDockerRunArgs,
		apply: func(c *Config, v string) error {
			c.DockerRunArgs = v
			return nil
		},
	},
	{
		envVar: EnvRuntime,
		apply: func(c *Config, v string) error {
			c.Runtime = v
			return nil
		},
	},
	{
		envVar: EnvLauncher,
		apply: func(c *Config, v string) error {
			c.Launcher = v
			return nil
		},
	},
	{
		envVar: EnvStopTimeout,
		apply: func(c *Config, v string) error {
			d, err := parseTimeout(v)
			if err != nil {
				return err
			}
			c.StopTimeout = d
			return nil
		},
	},
	{
		envVar: EnvDebug,
		apply: func(c *Config, v string) error {
			c.Debug = isTruthy(v)
			return nil
		},
	},
}

// applyEnvOverrides modifies config in place with environment variable values.
func applyEnvOverrides(cfg *Config) error {
	for _, override := range envOverrides {
		if val := os.Getenv(override.envVar); val != "" {
			if err := override.apply(cfg, val); err != nil {
				return fmt.Errorf("%s: %w", override.envVar, err)
			}
		}
	}
	return nil
}

// parseTimeout accepts a Go duration ("1m30s") or a whole number of seconds.
func parseTimeout(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", v)
	}
	return d, nil
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false", "no", "off":
		return false
	}
	return true
}
