package cli

import (
	"context"
	"errors"
	"os"

	"github.com/RevCBH/docketeer/internal/config"
	"github.com/RevCBH/docketeer/internal/container"
	"github.com/RevCBH/docketeer/internal/driver"
	"github.com/RevCBH/docketeer/internal/launcher"
)

// detectRuntime is swapped in tests.
var detectRuntime = container.DetectRuntime

// runDriver pulls the image and runs the target program.
func (a *App) runDriver(ctx context.Context, args []string) error {
	cfg, target, err := config.ResolveDriver(config.DriverOptions{
		ExecPath: a.execPath,
		Args:     args,
	})
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Debug = true
	}

	launcherPath, err := driver.ResolveLauncher(cfg)
	if err != nil {
		return err
	}

	runtime, err := detectRuntime(cfg.Runtime)
	if err != nil {
		return err
	}

	// Create cancellable context
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	d := driver.New(container.NewCLIManager(runtime), a.logger)

	// Setup signal handler; the target gets the first signal
	handler := NewSignalHandler(cancel)
	if cfg.Debug {
		handler.SetLogger(a.logger)
	}
	handler.OnShutdown(d.Forward)
	handler.Start()
	defer handler.Stop()

	code, err := d.Run(ctx, cfg, target, launcherPath)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return exitWith(1)
		}
		return err
	}
	return exitWith(code)
}

// runLaunch runs one browser container for the automation tool.
func (a *App) runLaunch(ctx context.Context, args []string) error {
	cfg, err := config.ResolveLaunch()
	if err != nil {
		return err
	}

	runtime, err := detectRuntime(cfg.Runtime)
	if err != nil {
		return err
	}

	l := launcher.New(cfg, container.NewCLIManager(runtime), a.logger)

	s, err := l.Prepare(args)
	if err != nil {
		return err
	}

	// The handler does not cancel ctx: escalation needs it to remove the
	// container after the grace period.
	handler := NewSignalHandler(nil)
	if cfg.Debug {
		handler.SetLogger(a.logger)
	}
	handler.OnShutdown(func(os.Signal) {
		l.Shutdown(ctx, s)
	})
	handler.Start()
	defer handler.Stop()

	code, err := l.Run(s)
	if err != nil {
		return err
	}
	return exitWith(code)
}
