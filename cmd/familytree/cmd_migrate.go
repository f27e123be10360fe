package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shoresh/familytree-api/internal/platform/postgres"
)

func newMigrateCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status|version|reset]",
		Short:     "Manage the PostgreSQL schema",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{postgres.MigrateUp, postgres.MigrateDown, postgres.MigrateStatus, postgres.MigrateVersion, postgres.MigrateReset},
		RunE: func(cmd *cobra.Command, args []string) error {
			command := postgres.MigrateUp
			if len(args) == 1 {
				command = args[0]
			}

			return opts.withApplication(cmd.Context(), func(app *application) error {
				if app.db == nil {
					return fmt.Errorf("migrate requires the postgres driver, got %q", app.config.Database.Driver)
				}
				return postgres.Migrate(cmd.Context(), app.db, command, app.logger)
			})
		},
	}
}
