// Command sitectl performs operator tasks against the site database.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/purnachandra/internal/config"
	"github.com/example/purnachandra/internal/database"
	"github.com/example/purnachandra/internal/settings"
	"github.com/example/purnachandra/internal/utils"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "sitectl",
		Short:        "Operator tooling for the Purna Chandra Diagnostic site",
		SilenceUsage: true,
	}
	root.AddCommand(newAdminCmd(), newSettingsCmd(), newTokenCmd())
	return root
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	return database.Connect(cfg.DatabaseURL, "error")
}

func newAdminCmd() *cobra.Command {
	admin := &cobra.Command{Use: "admin", Short: "Manage admin accounts"}

	var email, password string
	var roles []string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if len(roles) == 0 {
				roles = []string{cfg.AdminRole}
			}
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			account, err := database.CreateAdminAccount(db, email, password, roles)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", account.Email, account.ID)
			return nil
		},
	}
	create.Flags().StringVar(&email, "email", "", "account email")
	create.Flags().StringVar(&password, "password", "", "account password")
	create.Flags().StringSliceVar(&roles, "role", nil, "roles to grant (defaults to the admin role)")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")

	admin.AddCommand(create)
	return admin
}

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "settings", Short: "Inspect or reset site settings"}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the current settings as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			store := settings.NewStore(db, zap.NewNop())
			current := store.Load(context.Background())
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(settings.Snapshot{Settings: current, State: store.Current().State})
		},
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Overwrite the stored settings with the defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			store := settings.NewStore(db, zap.NewNop())
			if _, err := store.Save(context.Background(), settings.PatchFrom(settings.DefaultSiteSettings())); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "settings reset to defaults")
			return nil
		},
	}

	cmd.AddCommand(show, reset)
	return cmd
}

func newTokenCmd() *cobra.Command {
	var subject, email string
	var roles []string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a signed token for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if len(roles) == 0 {
				roles = []string{cfg.AdminRole}
			}
			token, err := utils.GenerateToken(cfg.AuthJWTSecret, cfg.AuthIssuer, utils.Principal{
				UserID: subject,
				Email:  email,
				Roles:  roles,
			}, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "sub", "local-admin", "token subject")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().StringSliceVar(&roles, "role", nil, "roles claim (defaults to the admin role)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
