package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	dbpkg "github.com/Hbollas/LashTechBooking/internal/db"
)

func newSeedCmd() *cobra.Command {
	var migrateFirst bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the starter service catalog and the admin account",
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

			if migrateFirst {
				if err := dbpkg.Migrate(db.WithContext(cmd.Context())); err != nil {
					return err
				}
			}

			res, err := dbpkg.Seed(
				cmd.Context(),
				db,
				dbpkg.DefaultOfferings(),
				cfg.AdminEmail,
				cfg.AdminPassword,
			)
			if err != nil {
				return err
			}

			log.Info("seed complete",
				slog.Int("offerings_created", res.OfferingsCreated),
				slog.Bool("admin_created", res.AdminCreated),
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrateFirst, "migrate", false, "run database migrations before seeding")
	return cmd
}
