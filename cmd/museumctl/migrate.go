// AngelaMos | 2026
// migrate.go

package main

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, db, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close() //nolint:errcheck // process exits next

		if err := db.Migrate(cmd.Context()); err != nil {
			return err
		}

		cmd.Println("migrations applied")
		return nil
	},
}
