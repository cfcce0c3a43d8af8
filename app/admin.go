package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/melitabakes/bakery/internal/daemon"
)

func init() { //nolint: gochecknoinits
	adminAddCmd.Flags().StringVar(&adminEmail, "email", "", "admin email")
	adminAddCmd.Flags().StringVar(&adminPassword, "password", "", "admin password")
	_ = adminAddCmd.MarkFlagRequired("email")    //nolint:errcheck
	_ = adminAddCmd.MarkFlagRequired("password") //nolint:errcheck

	adminCmd.AddCommand(adminAddCmd)
	rootCmd.AddCommand(adminCmd)
}

var (
	adminEmail    string
	adminPassword string

	adminCmd = &cobra.Command{
		Use:   "admin",
		Short: "Manage dashboard admins",
	}

	adminAddCmd = &cobra.Command{
		Use:     "add",
		Short:   "Add an admin with a hashed password",
		PreRunE: loadConfig,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, _, err := daemon.OpenStore(cmd.Context(), &cfg)
			if err != nil {
				return err //nolint:wrapcheck
			}

			a, err := st.CreateAdmin(cmd.Context(), adminEmail, adminPassword)
			if err != nil {
				return err //nolint:wrapcheck
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "admin %s created (id %d)\n", a.AdminEmail, a.ID)

			return err //nolint:wrapcheck
		},
	}
)
