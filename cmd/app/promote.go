package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wichananm65/storefront-backend/internal/config"
	"github.com/wichananm65/storefront-backend/internal/user"
)

// promoteCommand grants the admin role to an existing account. Registration
// only ever creates ordinary users.
func promoteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "promote-admin [email]",
		Short: "grant admin privileges to a registered user",
		Args:  cobra.ExactArgs(1),
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

			u, err := user.NewService(user.NewPostgresRepository(db)).Promote(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %d (%s) is now %s\n", u.ID, u.Email, u.Role)
			return nil
		},
	}
}
