package config

import "time"

const (
	DefaultExecPath    = "google-chrome"
	DefaultStopTimeout = 10 * time.Second
)

// DefaultConfig returns a Config with all default values applied.
func DefaultConfig() *Config {
	return &Config{
		ExecPath:    DefaultExecPath,
		StopTimeout: DefaultStopTimeout,
	}
}
