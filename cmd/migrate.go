package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Hbollas/LashTechBooking/internal/config"
	dbpkg "github.com/Hbollas/LashTechBooking/internal/db"
	"github.com/Hbollas/LashTechBooking/internal/logging"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}

			db, err := dbpkg.NewDB(cfg)
			if err != nil {
				return err
			}
			defer dbpkg.Close(db)

			if err := dbpkg.Migrate(db.WithContext(cmd.Context())); err != nil {
				return err
			}

			log.Info("migrations applied")
			return nil
		},
	}
}

// setup loads configuration and installs the process logger.
func setup() (*config.Config, *slog.Logger, error) {
	cfg := config.Load()
	log := logging.New("lashtech", cfg.LogLevel)
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", slog.Any("err", err))
		return nil, nil, err
	}
	return cfg, log, nil
}
