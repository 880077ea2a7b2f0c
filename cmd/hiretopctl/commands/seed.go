package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hiretop/internal/database"
	"hiretop/internal/database/migration"
	"hiretop/internal/database/seeder"
)

func seedCmd() *cobra.Command {
	var migrateFirst bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo enterprise, candidate and job offers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd, func(ctx context.Context, db database.DB) error {
				if migrateFirst {
					if err := (migration.Runner{Logger: log}).Run(ctx, db.SQLDB()); err != nil {
						return err
					}
				}

				seeders := seeder.Defaults()
				if err := (seeder.Runner{Seeders: seeders}).Run(ctx, db); err != nil {
					return err
				}
				for _, s := range seeders {
					log.Info("seeded", zap.String("seeder", s.Name()))
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Demo accounts (password %q):\n  enterprise: %s\n  candidate:  %s\n",
					seeder.DemoPassword, seeder.DemoEnterpriseEmail, seeder.DemoCandidateEmail)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&migrateFirst, "migrate", false, "apply migrations before seeding")
	return cmd
}
