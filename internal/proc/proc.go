// Package proc starts child processes that share the caller's terminal.
package proc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Process is a handle on a started child process.
type Process interface {
	// Signal delivers sig to the child. Signalling a child that has already
	// exited returns os.ErrProcessDone.
	Signal(sig os.Signal) error

	// Wait blocks until the child exits and returns its exit status. A child
	// terminated by a signal reports status 1. The error is non-nil only when
	// waiting itself failed.
	Wait() (int, error)
}

// Spec describes a child process. Nil streams are inherited from this process
// and a nil Env inherits the current environment.
type Spec struct {
	Name   string
	Args   []string
	Env    []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Start launches spec without a shell.
func Start(spec Spec) (Process, error) {
	if spec.Name == "" {
		return nil, errors.New("no program to start")
	}

	cmd := exec.Command(spec.Name, spec.Args...)
	cmd.Env = spec.Env
	cmd.Stdin = orFile(spec.Stdin, os.Stdin)
	cmd.Stdout = orWriter(spec.Stdout, os.Stdout)
	cmd.Stderr = orWriter(spec.Stderr, os.Stderr)
	cmd.SysProcAttr = sysProcAttr()

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", spec.Name, err)
	}
	return &execProcess{cmd: cmd}, nil
}

type execProcess struct {
	cmd *exec.Cmd
}

func (p *execProcess) Signal(sig os.Signal) error {
	return p.cmd.Process.Signal(sig)
}

func (p *execProcess) Wait() (int, error) {
	err := p.cmd.Wait()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
		return 1, nil
	}
	return 1, fmt.Errorf("wait for %s: %w", p.cmd.Path, err)
}

func orFile(r io.Reader, fallback *os.File) io.Reader {
	if r != nil {
		return r
	}
	return fallback
}

func orWriter(w io.Writer, fallback *os.File) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
