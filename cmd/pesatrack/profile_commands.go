package main

import (
	"context"
	"fmt"

	"github.com/jmwangi/pesatrack/internal/domain"
	"github.com/spf13/cobra"
)

func newProfileCmd() *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit the account profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if name == "" && email == "" {
					user, err := a.profiles.Get(ctx)
					if err != nil {
						return fmt.Errorf("%s", domain.UserMessage(err, "Failed to load profile"))
					}
					fmt.Printf("%s <%s>\n", user.FullName, user.Email)
					fmt.Printf("Member since %s\n", user.CreatedAt.Format("January 2006"))
					return nil
				}

				update := domain.ProfileUpdate{}
				if name != "" {
					update.FullName = &name
				}
				if email != "" {
					update.Email = &email
				}
				user, err := a.profiles.Update(ctx, update)
				if err != nil {
					return fmt.Errorf("%s", domain.UserMessage(err, "Failed to update profile"))
				}
				fmt.Printf("Profile updated: %s <%s>\n", user.FullName, user.Email)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new display name")
	cmd.Flags().StringVar(&email, "email", "", "new email address")
	return cmd
}
