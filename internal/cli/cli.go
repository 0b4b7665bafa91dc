// Package cli wires the docketeer driver and launcher into cobra commands.
package cli

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

// LogPrefix starts every diagnostic line docketeer writes.
const LogPrefix = "docketeer: "

// App represents a CLI application with all wired dependencies
type App struct {
	// Root command
	rootCmd *cobra.Command

	// Flags
	verbose  bool
	execPath string
	list     bool

	logger *log.Logger

	// Printed after configuration errors; empty when nobody reads it.
	usageHint string

	// Version information
	versionInfo VersionInfo
}

// New creates the driver application.
func New() *App {
	app := newApp()
	app.setupRootCmd()
	return app
}

// NewLaunch creates the launcher application, invoked in place of a browser.
func NewLaunch() *App {
	app := newApp()
	app.setupLaunchCmd()
	return app
}

func newApp() *App {
	return &App{
		logger: log.New(os.Stderr, LogPrefix, 0),
	}
}

// Execute runs the CLI application
func (a *App) Execute() error {
	return a.ExecuteContext(context.Background())
}

// ExecuteContext runs the CLI application with ctx.
func (a *App) ExecuteContext(ctx context.Context) error {
	return a.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args[1:], for tests.
func (a *App) SetArgs(args []string) {
	a.rootCmd.SetArgs(args)
}

// SetOutput redirects command output and diagnostics.
func (a *App) SetOutput(stdout, stderr io.Writer) {
	a.rootCmd.SetOut(stdout)
	a.rootCmd.SetErr(stderr)
	a.logger.SetOutput(stderr)
}

// SetVersion sets the version reported by --version
func (a *App) SetVersion(version, commit, date string) {
	a.versionInfo = VersionInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}
	a.rootCmd.Version = a.versionInfo.String()
}

// setupRootCmd configures the driver's root Cobra command
func (a *App) setupRootCmd() {
	a.rootCmd = &cobra.Command{
		Use:   "docketeer [flags] [image] <program> [args...]",
		Short: "Run a browser automation script against a browser in Docker",
		Long: `docketeer pulls a browser image, then runs <program> with its browser
executable pointed at docketeer-launch. Each browser the program starts runs
in its own container, removed when the browser exits.

The image is taken from DOCKETEER_IMAGE when set, otherwise from the first
argument.

Unknown options are ignored. Write them as --name=value so they do not
take the next argument as their value.`,
		Args:          cobra.ArbitraryArgs,
		Version:       a.versionInfo.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		// Unrecognised options are ignored rather than rejected.
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.list {
				return a.runList(cmd.Context(), cmd.OutOrStdout())
			}
			if len(args) == 0 {
				return cmd.Help()
			}
			return a.runDriver(cmd.Context(), args)
		},
	}

	a.usageHint = "Run docketeer --help for usage."

	// Everything after the first positional argument belongs to the target.
	a.rootCmd.Flags().SetInterspersed(false)

	a.rootCmd.Flags().StringVar(&a.execPath, "exec-path", "",
		"Browser executable inside the container (default $DOCKETEER_EXEC_PATH or google-chrome)")
	a.rootCmd.Flags().BoolVar(&a.list, "list", false,
		"List docketeer containers and exit")
	a.rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false,
		"Verbose output")
}

// setupLaunchCmd configures the launcher's root Cobra command. Every argument
// is a browser flag, so cobra must not interpret any of them.
func (a *App) setupLaunchCmd() {
	a.rootCmd = &cobra.Command{
		Use:                "docketeer-launch [browser flags...]",
		Short:              "Stand-in browser executable that runs the browser in a container",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLaunch(cmd.Context(), args)
		},
	}
}
