package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yeremiapane/resto-backoffice/database"
)

func newMigrateCmd() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := bootstrap()
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			if seed {
				if _, err := database.SeedOpeningHours(db); err != nil {
					return fmt.Errorf("seed opening hours: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "insert default opening hours when none are configured")
	return cmd
}
