// Package cli implements the stockroom command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/stockroom/internal/paths"
	"github.com/mesh-intelligence/stockroom/internal/warehouse"
	"github.com/mesh-intelligence/stockroom/pkg/logger"
	"github.com/mesh-intelligence/stockroom/pkg/stockroom"
	"github.com/mesh-intelligence/stockroom/pkg/types"
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
	logLevel  string
	jsonMode  bool
}

// session is the state shared by one command invocation: parsed flags, the
// resolved configuration and the logger built from it.
type session struct {
	flags     rootFlags
	configDir string
	cfg       types.Config
	log       *zap.Logger
}

// NewRootCmd creates the top-level "stockroom" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	s := &session{log: logger.Nop()}

	root := &cobra.Command{
		Use:   "stockroom",
		Short: "Typed inventory repositories with checked stock changes",
		Long: "Stockroom keeps electronics and groceries in typed repositories\n" +
			"backed by memory snapshots, SQLite or Badger.",
		Version:       stockroom.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return s.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = s.log.Sync()
		},
	}

	root.PersistentFlags().StringVar(&s.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&s.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.stockroom-db)")
	root.PersistentFlags().StringVar(&s.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&s.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(s))
	root.AddCommand(newSeedCmd(s))
	root.AddCommand(newListCmd(s))
	root.AddCommand(newAddCmd(s))
	root.AddCommand(newRestockCmd(s))
	root.AddCommand(newRemoveCmd(s))
	root.AddCommand(newSetQuantityCmd(s))
	root.AddCommand(newDemoCmd(s))
	root.AddCommand(newLogCmd(s))

	return root
}

// Execute runs the root command against the process arguments and exits
// with the appropriate code.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes the CLI with args and returns the exit code. Errors are
// written to stderr.
func Run(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(stderr, err)
	return exitCode(err)
}

// load resolves directories, reads config.yaml and builds the logger.
func (s *session) load() error {
	configDir, err := paths.ResolveConfigDir(s.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}

	dataDir, err := paths.ResolveDataDir(s.flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return sysError(fmt.Errorf("resolve data dir: %w", err))
	}

	level := s.flags.logLevel
	if level == "" {
		level = v.GetString(cfgKeyLogLevel)
	}

	s.configDir = configDir
	s.cfg = types.Config{
		Backend:  v.GetString(cfgKeyBackend),
		DataDir:  dataDir,
		LogLevel: level,
	}
	if err := s.cfg.Validate(); err != nil {
		return userError(fmt.Errorf("%s: %w", configPath(configDir), err))
	}

	log, err := logger.New(logger.Config{Level: level})
	if err != nil {
		return sysError(fmt.Errorf("create logger: %w", err))
	}
	s.log = log
	s.log.Debug("configuration loaded",
		zap.String("config_dir", configDir),
		zap.String("data_dir", dataDir),
		zap.String("backend", s.cfg.Backend))
	return nil
}

// withManager opens the configured store, hands a manager over it to fn and
// closes the store afterwards. Manager output goes to the command's stdout.
func (s *session) withManager(cmd *cobra.Command, fn func(m *warehouse.Manager) error) error {
	store, err := warehouse.OpenStore(s.cfg, s.log)
	if err != nil {
		return sysError(fmt.Errorf("open %s store: %w", s.cfg.Backend, err))
	}
	m := warehouse.New(store.Electronics, store.Groceries,
		warehouse.WithOutput(cmd.OutOrStdout()),
		warehouse.WithLogger(s.log),
	)

	runErr := fn(m)
	if err := store.Close(); err != nil && runErr == nil {
		runErr = sysError(fmt.Errorf("close store: %w", err))
	}
	return runErr
}

// exitError carries the process exit code for a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }
func sysError(err error) error  { return &exitError{code: exitSysError, err: err} }

// classify maps a repository error to an exit code: taxonomy errors are the
// user's, anything else is the system's.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if types.IsItemError(err) {
		return userError(err)
	}
	return sysError(err)
}

// exitCode returns the exit code for err. Errors raised by cobra itself
// (unknown command, bad arguments) are user errors.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}
