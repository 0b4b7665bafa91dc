package cli

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/RevCBH/docketeer/internal/container"
	"github.com/RevCBH/docketeer/internal/launcher"
)

type sessionLister interface {
	ListByPrefix(ctx context.Context, prefix string) ([]container.Summary, error)
	Close() error
}

// newSessionLister is swapped in tests.
var newSessionLister = func() (sessionLister, error) {
	return container.NewEngineClient()
}

// runList prints the docketeer containers known to the Docker daemon as YAML.
func (a *App) runList(ctx context.Context, w io.Writer) error {
	lister, err := newSessionLister()
	if err != nil {
		return err
	}
	defer lister.Close()

	sessions, err := lister.ListByPrefix(ctx, launcher.NamePrefix)
	if err != nil {
		return err
	}
	if sessions == nil {
		sessions = []container.Summary{}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string][]container.Summary{"sessions": sessions}); err != nil {
		return fmt.Errorf("encode sessions: %w", err)
	}
	return enc.Close()
}
