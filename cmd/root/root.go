// Package root contains the root command for the application
package root

import (
	"context"
	"fmt"
	"os"
	"strings"

	"fjacquet/fintrack/internal/config"
	"fjacquet/fintrack/internal/container"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/session"

	"github.com/spf13/cobra"
)

// PasswordEnv supplies the password when --password is not given.
const PasswordEnv = "FINTRACK_PASSWORD"

// CommonFlags represents the flags that are common to all commands
type CommonFlags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
	DataDir    string
	Backend    string
	User       string
	Password   string
	Quiet      bool
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppConfig is the configuration loaded for this invocation
	AppConfig *config.Config

	// AppContainer holds the wired services for this invocation
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "fintrack",
		Short: "A personal finance tracker for income, expenses, budgets, goals and bills.",
		Long: `fintrack records income and expense transactions per user and derives
budgets, savings goal progress, bill reminders and text reports from them.

Every command that touches a ledger authenticates with --user and --password
(or the FINTRACK_PASSWORD environment variable).`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer != nil {
				if err := AppContainer.Close(); err != nil {
					Log.WithError(err).Warn("Failed to close container")
				}
				AppContainer = nil
			}
		},
	}

	// SharedFlags holds the persistent flag values
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	flags := Cmd.PersistentFlags()
	flags.StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default $HOME/.fintrack/config.yaml)")
	flags.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format (text, json)")
	flags.StringVar(&SharedFlags.DataDir, "data-dir", "", "Data directory")
	flags.StringVar(&SharedFlags.Backend, "backend", "", "Storage backend (json, sqlite)")
	flags.StringVarP(&SharedFlags.User, "user", "u", "", "User name")
	flags.StringVarP(&SharedFlags.Password, "password", "p", "", "Password (or set "+PasswordEnv+")")
	flags.BoolVarP(&SharedFlags.Quiet, "quiet", "q", false, "Only log errors")
}

// setup loads configuration, applies flag overrides and wires the container.
// A container injected beforehand is kept.
func setup(cmd *cobra.Command, args []string) error {
	config.LoadEnv(Log)

	if AppContainer != nil {
		Log = AppContainer.GetLogger()
		AppConfig = AppContainer.GetConfig()
		return nil
	}

	cfg, err := config.InitializeConfig(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}
	ApplyFlags(cfg, SharedFlags)
	AppConfig = cfg

	if SharedFlags.Quiet {
		cfg.Log.Level = "error"
	}
	Log = config.NewLogger(cfg)

	c, err := container.NewContainer(cfg, container.WithLogger(Log))
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	AppContainer = c
	return nil
}

// ApplyFlags copies explicitly set persistent flags over the configuration.
func ApplyFlags(cfg *config.Config, f CommonFlags) {
	if f.LogLevel != "" {
		cfg.Log.Level = strings.ToLower(f.LogLevel)
	}
	if f.LogFormat != "" {
		cfg.Log.Format = strings.ToLower(f.LogFormat)
	}
	if f.DataDir != "" {
		cfg.Data.Directory = f.DataDir
	}
	if f.Backend != "" {
		cfg.Data.Backend = strings.ToLower(f.Backend)
	}
}

// Password returns --password, falling back to FINTRACK_PASSWORD.
func Password() string {
	if SharedFlags.Password != "" {
		return SharedFlags.Password
	}
	return os.Getenv(PasswordEnv)
}

// OpenSession authenticates --user and hydrates their ledger.
func OpenSession(ctx context.Context) (*session.Session, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	if strings.TrimSpace(SharedFlags.User) == "" {
		return nil, fmt.Errorf("--user is required")
	}
	s, err := AppContainer.OpenSession(ctx, SharedFlags.User, Password())
	if err != nil {
		return nil, err
	}
	if s.Degraded() {
		fmt.Fprintln(os.Stderr, "warning: stored data could not be read; the ledger is read-only for this session")
	}
	return s, nil
}

// Run adapts an error-returning handler to cobra's Run, logging fatally on error.
func Run(fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		if err := fn(cmd, args); err != nil {
			Log.Fatalf("Error: %v", err)
		}
	}
}
