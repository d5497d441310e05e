package commands

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/abyxtask/taskctl/internal/api"
	"github.com/abyxtask/taskctl/internal/domain/entities"
)

// NewWhoamiCommand creates the whoami command.
func NewWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Run: func(cmd *cobra.Command, args []string) {
			s := newSession()
			defer s.close()

			ctx := background()
			user, err := s.client.Users().Me(ctx)
			if err != nil {
				// Fall back to the local cache when the backend is
				// unreachable, not when it rejected the session.
				var apiErr *api.Error
				if errors.As(err, &apiErr) {
					fail(err)
				}

				cache, cacheErr := s.openUserCache()
				if cacheErr != nil {
					fail(err)
				}
				defer cache.Close()

				cached, cacheErr := cache.Get(ctx)
				if cacheErr != nil {
					fail(err)
				}

				fmt.Println(api.Advice(err))
				fmt.Println("Showing cached profile:")
				printUser(cached)
				return
			}

			if cache, cacheErr := s.openUserCache(); cacheErr == nil {
				cache.Save(ctx, user)
				cache.Close()
			}

			printUser(user)
		},
	}
}

// NewProfileCommand creates the profile management command.
func NewProfileCommand() *cobra.Command {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Profile management commands",
		Long:  "Update the signed-in account's profile, picture, and password",
	}

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		Run: func(cmd *cobra.Command, args []string) {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")

			if name == "" && email == "" {
				log.Fatal("Nothing to update: pass --name or --email")
			}

			s := newSession()
			defer s.close()

			msg, err := s.client.Users().Update(background(), entities.User{
				DisplayName: name,
				Email:       email,
			})
			if err != nil {
				fail(err)
			}

			fmt.Println(msg.Message)
		},
	}
	updateCmd.Flags().String("name", "", "New display name")
	updateCmd.Flags().String("email", "", "New email address")

	avatarCmd := &cobra.Command{
		Use:   "avatar",
		Short: "Upload a new profile picture",
		Run: func(cmd *cobra.Command, args []string) {
			file, _ := cmd.Flags().GetString("file")

			s := newSession()
			defer s.close()

			msg, err := s.client.Users().UpdateProfilePicture(background(), file)
			if err != nil {
				fail(err)
			}

			fmt.Println(msg.Message)
		},
	}
	avatarCmd.Flags().String("file", "", "Path to a jpg or png image (required)")
	avatarCmd.MarkFlagRequired("file")

	passwdCmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the account password",
		Run: func(cmd *cobra.Command, args []string) {
			oldPassword, _ := cmd.Flags().GetString("old")
			newPassword, _ := cmd.Flags().GetString("new")

			s := newSession()
			defer s.close()

			msg, err := s.client.Users().UpdatePassword(background(), entities.ChangePasswordRequest{
				NewPassword: newPassword,
				OldPassword: oldPassword,
			})
			if err != nil {
				// 401 here means the current password was wrong, not an
				// expired session.
				if api.IsStatus(err, http.StatusUnauthorized) {
					log.Fatal("Current password is incorrect.")
				}
				fail(err)
			}

			fmt.Println(msg.Message)
		},
	}
	passwdCmd.Flags().String("old", "", "Current password (required)")
	passwdCmd.Flags().String("new", "", "New password (required)")
	passwdCmd.MarkFlagRequired("old")
	passwdCmd.MarkFlagRequired("new")

	profileCmd.AddCommand(updateCmd)
	profileCmd.AddCommand(avatarCmd)
	profileCmd.AddCommand(passwdCmd)
	return profileCmd
}

func printUser(user *entities.User) {
	fmt.Printf("  ID: %s\n", user.ID)
	fmt.Printf("  Email: %s\n", user.Email)
	fmt.Printf("  Name: %s\n", user.DisplayName)
	if user.ProfilePicture != "" {
		fmt.Printf("  Picture: %s\n", user.ProfilePicture)
	}
}
