package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldos/fieldos-client-go/internal/service"

	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and store the session credential",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		user, err := a.session.Login(ctx, loginEmail, loginPassword)
		if err != nil {
			return err
		}

		fmt.Printf("logged in as %s (%s)\n", user.Email, user.Role)
		if user.IsSuperAdmin() {
			fmt.Println("super-admin surface enabled")
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session from every storage tier",
	RunE: func(_ *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		// Local-only and infallible, even when already logged out.
		a.session.Logout()
		fmt.Println("logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session and token details",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := a.requireSession(ctx); err != nil {
			return err
		}

		user := a.session.User()
		fmt.Printf("user:  %s <%s>\n", user.Name, user.Email)
		fmt.Printf("role:  %s\n", user.Role)
		if user.TenantID != "" {
			fmt.Printf("tenant: %s\n", user.TenantID)
		}

		if token, ok := a.store.Token(); ok {
			if info, err := service.DecodeToken(token); err == nil && info.ExpiresAt > 0 {
				fmt.Printf("token expires: %s\n", time.Unix(info.ExpiresAt, 0).Format(time.RFC3339))
			}
		}

		fmt.Println("navigation:")
		for _, route := range a.guard.NavigationSurface() {
			fmt.Printf("  %s\n", route)
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
}
