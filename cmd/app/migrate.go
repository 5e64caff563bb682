package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wichananm65/storefront-backend/internal/config"
	"github.com/wichananm65/storefront-backend/internal/database"
)

func migrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "apply or roll back the database schema",
	}
	cmd.AddCommand(
		migrateDirectionCommand("up", "migrate all the way up", database.Up),
		migrateDirectionCommand("down", "roll back every migration", database.Down),
	)
	return cmd
}

func migrateDirectionCommand(use, short string, dir database.Direction) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			db, err := openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.Migrate(db.DB, dir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migrated %s\n", use)
			return nil
		},
	}
}
