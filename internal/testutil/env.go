package testutil

import "testing"

var docketeerEnvVars = []string{
	"DOCKETEER_IMAGE",
	"DOCKETEER_EXEC_PATH",
	"DOCKETEER_DOCKER_RUN_ARGS",
	"DOCKETEER_ENABLED",
	"DOCKETEER_LAUNCHER",
	"DOCKETEER_RUNTIME",
	"DOCKETEER_STOP_TIMEOUT",
	"DOCKETEER_DEBUG",
}

// ClearDocketeerEnv blanks every DOCKETEER_* variable for the duration of the
// test, so a developer's shell cannot leak into configuration.
func ClearDocketeerEnv(t testing.TB) {
	t.Helper()
	for _, key := range docketeerEnvVars {
		t.Setenv(key, "")
	}
}
