package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shoresh/familytree-api/internal/config"
	"github.com/shoresh/familytree-api/internal/platform/logger"
)

// cliOptions holds the flags shared by every subcommand.
type cliOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:   "familytree",
		Short: "Family tree records with Hebrew and Gregorian birthdays",
		Long: `familytree keeps family records with birth dates in both the Hebrew and
Gregorian calendars, derives relatives from parent and spouse links and
lists upcoming birthdays.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"path to a YAML config file (default: ./config.yaml if present)")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newBirthdaysCmd(opts),
		newHashPasswordCmd(),
	)
	return rootCmd
}

// load reads configuration and installs the configured logger as default.
func (o *cliOptions) load() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFile(o.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	return cfg, log, nil
}

// withApplication loads configuration, builds the application, runs fn and
// releases the application's resources.
func (o *cliOptions) withApplication(ctx context.Context, fn func(app *application) error) error {
	cfg, log, err := o.load()
	if err != nil {
		return err
	}
	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.cleanup()
	return fn(app)
}
