package commands

import (
	"context"

	"github.com/spf13/cobra"

	"hiretop/internal/database"
	"hiretop/internal/database/migration"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd, func(ctx context.Context, db database.DB) error {
				r := migration.Runner{Logger: log}
				if err := r.Run(ctx, db.SQLDB()); err != nil {
					return err
				}
				log.Info("migrations applied")
				return nil
			})
		},
	}
}
