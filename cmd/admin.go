/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/mastergurukulam/apiserver/config"
	"github.com/mastergurukulam/apiserver/internal/db"
	"github.com/mastergurukulam/apiserver/internal/services"
	"github.com/mastergurukulam/apiserver/internal/store"
	"github.com/mastergurukulam/apiserver/types"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

// adminCmd represents the admin command.
var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage admin accounts",
	Long:  "Create admin accounts directly against the database, without going through the HTTP API.",
}

var (
	adminCreateUsername string
	adminCreateEmail    string
	adminCreatePassword string
	adminCreateRole     string
)

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new admin account",
	Example: `  gurukulam admin create --username ops --email ops@example.com --role admin
  gurukulam admin create --username ops --email ops@example.com  # prompts for password`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()

		password := adminCreatePassword
		if password == "" {
			var err error
			password, err = promptPassword()
			if err != nil {
				return err
			}
		}

		dbConn, err := db.Open(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer dbConn.Close()

		repo := store.NewAdminRepository(dbConn)
		adminService := services.NewAdminService(repo, nil, cfg.Auth.BcryptCost, nil)

		admin, err := adminService.CreateAccount(cmd.Context(), types.RoleSuperAdmin, services.CreateAccountInput{
			Username: adminCreateUsername,
			Email:    adminCreateEmail,
			Password: password,
			Role:     types.Role(adminCreateRole),
		})
		if err != nil {
			return fmt.Errorf("create account: %w", err)
		}

		fmt.Printf("Created %s account %q (id %d)\n", admin.Role, admin.Username, admin.ID)
		return nil
	},
}

var (
	adminPasswdUsername string
)

var adminPasswdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Reset an admin account's password",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()

		password, err := promptPassword()
		if err != nil {
			return err
		}

		dbConn, err := db.Open(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer dbConn.Close()

		repo := store.NewAdminRepository(dbConn)
		admin, err := repo.GetByUsername(cmd.Context(), adminPasswdUsername)
		if err != nil {
			return fmt.Errorf("look up account: %w", err)
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(password), cfg.Auth.BcryptCost)
		if err != nil {
			return err
		}
		admin.PasswordHash = string(hashed)

		if _, err := repo.Update(cmd.Context(), admin); err != nil {
			return fmt.Errorf("update account: %w", err)
		}

		fmt.Printf("Updated password for %q\n", admin.Username)
		return nil
	},
}

func promptPassword() (string, error) {
	fmt.Print("Password: ")
	pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println()

	fmt.Print("Confirm password: ")
	confirmBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}
	fmt.Println()

	if string(pwBytes) != string(confirmBytes) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(pwBytes), nil
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminCreateCmd)
	adminCmd.AddCommand(adminPasswdCmd)

	adminCreateCmd.Flags().StringVar(&adminCreateUsername, "username", "", "Account username (required)")
	adminCreateCmd.Flags().StringVar(&adminCreateEmail, "email", "", "Account email address (required)")
	adminCreateCmd.Flags().StringVar(&adminCreatePassword, "password", "", "Account password (prompted if omitted)")
	adminCreateCmd.Flags().StringVar(&adminCreateRole, "role", "admin", "Account role: superadmin, admin, or moderator")
	adminCreateCmd.MarkFlagRequired("username")
	adminCreateCmd.MarkFlagRequired("email")

	adminPasswdCmd.Flags().StringVar(&adminPasswdUsername, "username", "", "Account username (required)")
	adminPasswdCmd.MarkFlagRequired("username")
}
