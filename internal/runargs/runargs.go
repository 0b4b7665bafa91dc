// Package runargs splits the DOCKETEER_DOCKER_RUN_ARGS string into docker run arguments.
//
// The accepted grammar is a small subset of POSIX shell words: whitespace separated
// words, single quotes, double quotes and backslash escapes. Anything a shell would
// expand or interpret (parameter expansion, command substitution, pipes, lists,
// redirections, subshells) is rejected instead of being passed through literally.
// Globs and tildes are not expanded and are kept as written.
package runargs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
)

// ErrUnsupported is wrapped by SyntaxError when the input uses a shell feature
// outside the accepted grammar.
var ErrUnsupported = errors.New("unsupported shell syntax")

// SyntaxError reports why a run-args string could not be split.
type SyntaxError struct {
	Input  string
	Offset int // byte offset of the offending character, -1 when unknown
	Err    error
}

func (e *SyntaxError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("parse docker run args %q at offset %d: %v", e.Input, e.Offset, e.Err)
	}
	return fmt.Sprintf("parse docker run args %q: %v", e.Input, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Split tokenizes raw the way a shell would split a simple command line.
// Empty or blank input yields no arguments.
func Split(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	if off, r, ok := findUnsupported(raw); ok {
		return nil, &SyntaxError{
			Input:  raw,
			Offset: off,
			Err:    fmt.Errorf("%w: %q", ErrUnsupported, r),
		}
	}
	words, err := shellquote.Split(raw)
	if err != nil {
		return nil, &SyntaxError{Input: raw, Offset: -1, Err: err}
	}
	return words, nil
}

// Join renders args as a single shell-safe string, for logging.
func Join(args []string) string {
	return shellquote.Join(args...)
}

// findUnsupported walks raw tracking quote state and returns the first
// character a shell would treat specially.
func findUnsupported(raw string) (int, rune, bool) {
	const (
		bare = iota
		single
		double
	)
	state := bare
	escaped := false
	for i, r := range raw {
		if escaped {
			escaped = false
			continue
		}
		switch state {
		case single:
			if r == '\'' {
				state = bare
			}
		case double:
			switch r {
			case '\\':
				escaped = true
			case '"':
				state = bare
			case '$', '`':
				return i, r, true
			}
		default:
			switch r {
			case '\\':
				escaped = true
			case '\'':
				state = single
			case '"':
				state = double
			case '$', '`', '|', ';', '&', '<', '>', '(', ')':
				return i, r, true
			}
		}
	}
	return 0, 0, false
}
