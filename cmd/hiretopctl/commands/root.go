package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hiretop/internal/config"
	"hiretop/internal/database"
	dbpostgres "hiretop/internal/database/postgres"
	"hiretop/internal/pkg/logger"
)

var (
	environment string
	timeout     time.Duration

	log *zap.Logger
)

func Execute() error {
	root := &cobra.Command{
		Use:           "hiretopctl",
		Short:         "Administrative tasks for the HireTop backend",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logger.New(environment)
			if err != nil {
				return err
			}
			log = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if log != nil {
				_ = log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&environment, "env", "development", "logging environment (production switches to JSON logs)")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall deadline for the command")

	root.AddCommand(migrateCmd(), seedCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return root.ExecuteContext(ctx)
}

// withDB opens the database from DB_* variables and hands it to fn.
func withDB(cmd *cobra.Command, fn func(ctx context.Context, db database.DB) error) error {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return fn(ctx, db)
}
