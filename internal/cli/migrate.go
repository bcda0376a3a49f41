package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/meta-insights-connector/infrastructure/database/postgres"
)

func newMigrateCmd(build DepsFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the snapshot and schedule tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := build()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			conn, err := postgres.NewConnection(ctx, deps.Config.Database)
			if err != nil {
				return fmt.Errorf("connecting to PostgreSQL: %w", err)
			}
			defer conn.Close()

			if err := postgres.Migrate(ctx, conn); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return err
		},
	}
}
