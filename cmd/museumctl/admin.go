// AngelaMos | 2026
// admin.go

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/carterperez-dev/heritage-museum/internal/user"
)

var (
	adminEmail    string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account or promote an existing one",
	Long: `create-admin grants admin rights to the account with the given email.
If no such account exists it is created with the given password. The
email is matched case-insensitively.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if adminEmail == "" {
			return errors.New("--email is required")
		}

		_, db, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close() //nolint:errcheck // process exits next

		svc := user.NewService(user.NewRepository(db.DB))

		u, created, err := svc.EnsureAdmin(cmd.Context(), adminEmail, adminPassword)
		if errors.Is(err, user.ErrPasswordRequired) {
			return errors.New("--password is required to create a new account")
		}
		if err != nil {
			return err
		}

		if created {
			cmd.Printf("created admin %s (id %d)\n", u.Email, u.ID)
		} else {
			cmd.Printf("%s is an admin (id %d)\n", u.Email, u.ID)
		}
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "account email")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "password for a new account")
}
