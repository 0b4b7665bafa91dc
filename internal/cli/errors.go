package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/RevCBH/docketeer/internal/config"
)

// ExitCodeError carries a child's exit status to main, which exits with it
// without printing anything.
type ExitCodeError struct {
	Code int
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// exitWith wraps a non-zero child status; zero maps to nil.
func exitWith(code int) error {
	if code == 0 {
		return nil
	}
	return &ExitCodeError{Code: code}
}

var (
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// ExitCode prints err to w unless it is an *ExitCodeError, and returns the
// status the process should exit with.
func (a *App) ExitCode(err error, w io.Writer) int {
	return exitCode(err, w, a.usageHint)
}

func exitCode(err error, w io.Writer, hint string) int {
	if err == nil {
		return 0
	}

	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	PrintError(w, err, hint)
	return 1
}

// PrintError writes "Error: <err>" to w, styled when w is a terminal.
// Configuration errors are followed by hint unless it is empty.
func PrintError(w io.Writer, err error, hint string) {
	styled := isTerminal(w)

	prefix := "Error:"
	if styled {
		prefix = errorStyle.Render(prefix)
	}
	fmt.Fprintf(w, "%s %v\n", prefix, err)

	var vErr *config.ValidationError
	if hint != "" && errors.As(err, &vErr) {
		if styled {
			hint = hintStyle.Render(hint)
		}
		fmt.Fprintln(w, hint)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
