package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/launcher/internal/infrastructure/config"
	"github.com/GriffinCanCode/launcher/internal/infrastructure/logging"
)

var (
	benchPath string
	dbPath    string
	logLevel  string
	logDev    bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "launcher",
	Short: "Home screen app launcher for a bench",
	Long: `Launcher resolves the home screen tiles for the apps installed on a bench.

Each installed app gets a route from its add_to_apps_screen hook, its first
public workspace, or a page named after it. Apps without a route are left out.

Configuration is read from the environment (PORT, HOST, BENCH_PATH, DB_PATH,
LOG_LEVEL, LOG_DEV, RATE_LIMIT_*) and overridden by flags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		applyFlags(cmd, loaded)
		cfg = loaded
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&benchPath, "bench", "", "Bench directory (overrides BENCH_PATH)")
	flags.StringVar(&dbPath, "db", "", "Record database path (overrides DB_PATH)")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
	flags.BoolVar(&logDev, "dev", false, "Development logging (overrides LOG_DEV)")
}

// applyFlags lets explicitly set flags win over the environment
func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("bench") {
		c.Bench.Path = benchPath
	}
	if flags.Changed("db") {
		c.Bench.Database = dbPath
	}
	if flags.Changed("log-level") {
		c.Logging.Level = logLevel
	}
	if flags.Changed("dev") {
		c.Logging.Development = logDev
	}
}

// cliLogger logs to stderr so stdout carries only command output
func cliLogger() (*logging.Logger, error) {
	logger, err := logging.New(logging.CLIConfig(cfg.Logging.Level, cfg.Logging.Development))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Logging.Level, err)
	}
	return logger, nil
}
