package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jmwangi/pesatrack/internal/domain"
	"github.com/spf13/cobra"
)

// prompt reads one line from stdin when the flag was left empty.
func prompt(label, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	fmt.Printf("%s: ", label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the server and store the session",
		RunE: runWithApp(func(ctx context.Context, a *app) error {
			var err error
			if email, err = prompt("Email", email); err != nil {
				return err
			}
			if password, err = prompt("Password", password); err != nil {
				return err
			}

			session, err := a.session.Login(ctx, email, password)
			if err != nil {
				return fmt.Errorf("%s", domain.UserMessage(err, "Login failed"))
			}
			fmt.Printf("Logged in as %s\n", session.User.FullName)
			return nil
		}),
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: runWithApp(func(_ context.Context, a *app) error {
			if err := a.session.Logout(); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		}),
	}
}

func newRegisterCmd() *cobra.Command {
	var email, password, fullName string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account (log in separately afterwards)",
		RunE: runWithApp(func(ctx context.Context, a *app) error {
			var err error
			if email, err = prompt("Email", email); err != nil {
				return err
			}
			if fullName, err = prompt("Full name", fullName); err != nil {
				return err
			}
			if password, err = prompt("Password", password); err != nil {
				return err
			}

			if err := a.session.Register(ctx, email, password, fullName); err != nil {
				return fmt.Errorf("%s", domain.UserMessage(err, "Registration failed"))
			}
			fmt.Println("Account created. Run 'pesatrack login' to sign in.")
			return nil
		}),
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&fullName, "name", "", "display name")
	return cmd
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: runWithApp(func(_ context.Context, a *app) error {
			session := a.session.Session()
			if session.State != domain.SessionAuthenticated {
				fmt.Println("Not logged in")
				return nil
			}
			fmt.Printf("%s <%s>\n", session.User.FullName, session.User.Email)
			return nil
		}),
	}
}

func newPasswdCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change or reset the account password",
	}
	cmd.AddCommand(newPasswdChangeCmd())
	cmd.AddCommand(newPasswdResetCmd())
	return cmd
}

func newPasswdChangeCmd() *cobra.Command {
	var current, newPassword, confirm string

	cmd := &cobra.Command{
		Use:   "change",
		Short: "Change the password of the logged-in account",
		RunE: runWithApp(func(ctx context.Context, a *app) error {
			var err error
			if current, err = prompt("Current password", current); err != nil {
				return err
			}
			if newPassword, err = prompt("New password", newPassword); err != nil {
				return err
			}
			if confirm, err = prompt("Confirm new password", confirm); err != nil {
				return err
			}

			if err := a.passwords.Change(ctx, current, newPassword, confirm); err != nil {
				return fmt.Errorf("%s", domain.UserMessage(err, "Password change failed"))
			}
			fmt.Println("Password updated")
			return nil
		}),
	}

	cmd.Flags().StringVar(&current, "current", "", "current password")
	cmd.Flags().StringVar(&newPassword, "new", "", "new password")
	cmd.Flags().StringVar(&confirm, "confirm", "", "new password again")
	return cmd
}

func newPasswdResetCmd() *cobra.Command {
	var email, key, newPassword, confirm string

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Request or redeem a password reset key",
		Long: "Without --key, requests a reset key to be sent to the email.\n" +
			"With --key, redeems it for a new password.",
		RunE: runWithApp(func(ctx context.Context, a *app) error {
			var err error
			if email, err = prompt("Email", email); err != nil {
				return err
			}

			if key == "" {
				if err := a.passwords.RequestReset(ctx, email); err != nil {
					return fmt.Errorf("%s", domain.UserMessage(err, "Reset request failed"))
				}
				fmt.Println("Reset key sent. Redeem it with 'pesatrack passwd reset --key <key>'.")
				return nil
			}

			if newPassword, err = prompt("New password", newPassword); err != nil {
				return err
			}
			if confirm, err = prompt("Confirm new password", confirm); err != nil {
				return err
			}
			if err := a.passwords.VerifyReset(ctx, email, key, newPassword, confirm); err != nil {
				return fmt.Errorf("%s", domain.UserMessage(err, "Password reset failed"))
			}
			fmt.Println("Password updated. Run 'pesatrack login' to sign in.")
			return nil
		}),
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&key, "key", "", "reset key from the email")
	cmd.Flags().StringVar(&newPassword, "new", "", "new password")
	cmd.Flags().StringVar(&confirm, "confirm", "", "new password again")
	return cmd
}
