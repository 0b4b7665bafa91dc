// Package driver pulls the browser image and runs the target script with its
// browser executable pointed at the launcher.
package driver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/RevCBH/docketeer/internal/config"
	"github.com/RevCBH/docketeer/internal/container"
	"github.com/RevCBH/docketeer/internal/proc"
)

// LauncherName is the launcher program expected next to the driver binary.
const LauncherName = "docketeer-launch"

// PullError reports a failed image pull.
type PullError struct {
	Image string
	Code  int
}

func (e *PullError) Error() string {
	return fmt.Sprintf("docker pull exited with code %d", e.Code)
}

// executable is swapped in tests.
var executable = os.Executable

// Driver pulls images and runs target scripts.
type Driver struct {
	runtime container.Manager
	start   func(proc.Spec) (proc.Process, error)
	logger  *log.Logger

	mu     sync.Mutex
	target proc.Process
}

// New creates a Driver that pulls through runtime.
func New(runtime container.Manager, logger *log.Logger) *Driver {
	return &Driver{
		runtime: runtime,
		start:   proc.Start,
		logger:  logger,
	}
}

// Run pulls cfg.Image and then runs target with the docketeer environment.
// It returns the target's exit status. A failed pull returns a *PullError
// and the target is not started.
func (d *Driver) Run(ctx context.Context, cfg *config.Config, target []string, launcherPath string) (int, error) {
	if len(target) == 0 {
		return 1, errors.New("no target program given")
	}

	code, err := d.runtime.Pull(ctx, cfg.Image)
	if err != nil {
		return 1, fmt.Errorf("pull %s: %w", cfg.Image, err)
	}
	if code != 0 {
		return 1, &PullError{Image: cfg.Image, Code: code}
	}

	if cfg.Debug {
		d.logger.Printf("running %s with launcher %s", strings.Join(target, " "), launcherPath)
	}

	p, err := d.spawn(ctx, proc.Spec{
		Name: target[0],
		Args: target[1:],
		Env:  BuildEnv(os.Environ(), cfg, launcherPath),
	})
	if err != nil {
		return 1, err
	}

	return p.Wait()
}

// spawn starts the target unless ctx was canceled while pulling.
func (d *Driver) spawn(ctx context.Context, spec proc.Spec) (proc.Process, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := d.start(spec)
	if err != nil {
		return nil, err
	}
	d.target = p
	return p, nil
}

// Forward relays sig to the running target, if any.
func (d *Driver) Forward(sig os.Signal) {
	d.mu.Lock()
	p := d.target
	d.mu.Unlock()
	if p == nil {
		return
	}
	if err := p.Signal(sig); err != nil && !errors.Is(err, os.ErrProcessDone) {
		d.logger.Printf("forward %v to target: %v", sig, err)
	}
}

// BuildEnv returns base with the docketeer variables set. Keys already in
// base are replaced where they are; new keys are appended.
func BuildEnv(base []string, cfg *config.Config, launcherPath string) []string {
	vars := [][2]string{
		{config.EnvForceColor, "true"},
		{config.EnvPuppeteerExecutablePath, launcherPath},
		{config.EnvImage, cfg.Image},
		{config.EnvExecPath, cfg.ExecPath},
		{config.EnvEnabled, "true"},
	}
	if cfg.Runtime != "" {
		vars = append(vars, [2]string{config.EnvRuntime, cfg.Runtime})
	}
	if cfg.Debug {
		vars = append(vars, [2]string{config.EnvDebug, "1"})
	}

	env := make([]string, 0, len(base)+len(vars))
	env = append(env, base...)
	for _, kv := range vars {
		env = setEnv(env, kv[0], kv[1])
	}
	return env
}

func setEnv(env []string, key, value string) []string {
	entry := key + "=" + value
	replaced := false
	out := env[:0]
	for _, e := range env {
		k, _, _ := strings.Cut(e, "=")
		if k != key {
			out = append(out, e)
			continue
		}
		// Keep the first occurrence in place and drop duplicates.
		if !replaced {
			out = append(out, entry)
			replaced = true
		}
	}
	if !replaced {
		out = append(out, entry)
	}
	return out
}

// ResolveLauncher returns cfg.Launcher if set, otherwise the launcher binary
// installed next to this executable.
func ResolveLauncher(cfg *config.Config) (string, error) {
	if cfg.Launcher != "" {
		return cfg.Launcher, nil
	}

	self, err := executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(self); err == nil {
		self = resolved
	}

	path := filepath.Join(filepath.Dir(self), LauncherName)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("launcher not found (set %s): %w", config.EnvLauncher, err)
	}
	return path, nil
}
