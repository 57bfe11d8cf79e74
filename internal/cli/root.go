// Package cli implements the backpack command-line interface: the
// terminal front end that drives an in-memory inventory.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/backpack/internal/logging"
	"github.com/mesh-intelligence/backpack/internal/paths"
	"github.com/mesh-intelligence/backpack/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	logLevel  string
}

var flags rootFlags

// env is the resolved runtime configuration, filled in by
// PersistentPreRunE before any subcommand runs.
type env struct {
	configDir string
	dataDir   string
	cfg       types.Config
	logger    *slog.Logger
}

var current env

// sysError marks failures of the environment (filesystem, journal) as
// opposed to rejected user input.
type sysError struct{ err error }

func (e sysError) Error() string { return e.err.Error() }
func (e sysError) Unwrap() error { return e.err }

func sysErrorf(format string, args ...any) error {
	return sysError{err: fmt.Errorf(format, args...)}
}

// exitCode maps a command error to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se sysError
	if errors.As(err, &se) {
		return exitSysError
	}
	return exitUserError
}

// NewRootCmd creates the top-level "backpack" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "backpack",
		Short: "A ten-slot inventory with sorting and search",
		Long: `Backpack keeps up to ten items in fixed slots. Items can be added,
removed, listed, sorted by name, type or priority, and found by
sequential or binary search. Binary search is only allowed while the
backpack is sorted by name.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory for the journal (default: $(CWD)/"+paths.DefaultDataDirName+")")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output as JSON")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newShellCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newHistoryCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

// setup resolves directories, loads config.yaml and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return sysErrorf("resolve config dir: %w", err)
	}

	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	if flags.jsonMode {
		cfg.Output = types.OutputJSON
	}
	if flags.logLevel != "" {
		cfg.LogLevel = strings.ToLower(flags.logLevel)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("--log-level %q: %w", flags.logLevel, err)
		}
	}

	dataDir, err := paths.ResolveDataDir(flags.dataDir, cfg.DataDir)
	if err != nil {
		return sysErrorf("resolve data dir: %w", err)
	}

	current = env{
		configDir: configDir,
		dataDir:   dataDir,
		cfg:       cfg,
		logger:    logging.FromConfig(cmd.ErrOrStderr(), cfg),
	}
	return nil
}
