package commands

import (
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/abyxtask/taskctl/internal/api"
	"github.com/abyxtask/taskctl/internal/domain/entities"
)

// NewAuthCommands creates the account commands: login, register, verify,
// resend-code, forgot-password, reset-password, logout.
func NewAuthCommands() []*cobra.Command {
	return []*cobra.Command{
		newLoginCommand(),
		newRegisterCommand(),
		newVerifyCommand(),
		newResendCodeCommand(),
		newForgotPasswordCommand(),
		newResetPasswordCommand(),
		newLogoutCommand(),
	}
}

func newLoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the task backend",
		Run: func(cmd *cobra.Command, args []string) {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			s := newSession()
			defer s.close()

			msg, err := s.client.Auth().Login(background(), entities.LoginRequest{
				Email:    email,
				Password: password,
			})
			if err != nil {
				// 403 means the account exists but the email is unverified.
				if api.IsStatus(err, http.StatusForbidden) {
					log.Fatalf("Account is not verified. Run 'taskctl verify --email %s --code <code>' first.", email)
				}
				fail(err)
			}

			fmt.Println(msg.Message)
		},
	}

	cmd.Flags().String("email", "", "Account email (required)")
	cmd.Flags().String("password", "", "Account password (required)")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		Run: func(cmd *cobra.Command, args []string) {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			s := newSession()
			defer s.close()

			msg, err := s.client.Auth().Register(background(), entities.RegisterRequest{
				DisplayName: name,
				Email:       email,
				Password:    password,
			})
			if err != nil {
				fail(err)
			}

			fmt.Println(msg.Message)
		},
	}

	cmd.Flags().String("name", "", "Display name (required)")
	cmd.Flags().String("email", "", "Account email (required)")
	cmd.Flags().String("password", "", "Account password (required)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newVerifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify the account with the emailed code",
		Run: func(cmd *cobra.Command, args []string) {
			email, _ := cmd.Flags().GetString("email")
			code, _ := cmd.Flags().GetString("code")

			s := newSession()
			defer s.close()

			msg, err := s.client.Auth().Verify(background(), entities.VerifyRequest{
				Email: email,
				Code:  code,
			})
			if err != nil {
				fail(err)
			}

			fmt.Println(msg.Message)
		},
	}

	cmd.Flags().String("email", "", "Account email (required)")
	cmd.Flags().String("code", "", "Verification code (required)")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("code")
	return cmd
}

func newResendCodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resend-code",
		Short: "Request a fresh verification code",
		Run: func(cmd *cobra.Command, args []string) {
			email, _ := cmd.Flags().GetString("email")

			s := newSession()
			defer s.close()

			msg, err := s.client.Auth().ResendVerification(background(), entities.EmailRequest{Email: email})
			if err != nil {
				fail(err)
			}

			fmt.Println(msg.Message)
		},
	}

	cmd.Flags().String("email", "", "Account email (required)")
	cmd.MarkFlagRequired("email")
	return cmd
}

func newForgotPasswordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Request a password reset code",
		Run: func(cmd *cobra.Command, args []string) {
			email, _ := cmd.Flags().GetString("email")

			s := newSession()
			defer s.close()

			msg, err := s.client.Auth().ForgotPassword(background(), entities.EmailRequest{Email: email})
			if err != nil {
				fail(err)
			}

			fmt.Println(msg.Message)
		},
	}

	cmd.Flags().String("email", "", "Account email (required)")
	cmd.MarkFlagRequired("email")
	return cmd
}

func newResetPasswordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password with the emailed reset code",
		Run: func(cmd *cobra.Command, args []string) {
			email, _ := cmd.Flags().GetString("email")
			code, _ := cmd.Flags().GetString("code")
			password, _ := cmd.Flags().GetString("password")

			s := newSession()
			defer s.close()

			msg, err := s.client.Auth().ResetPassword(background(), entities.ResetPasswordRequest{
				Email:       email,
				ResetCode:   code,
				NewPassword: password,
			})
			if err != nil {
				fail(err)
			}

			fmt.Println(msg.Message)
		},
	}

	cmd.Flags().String("email", "", "Account email (required)")
	cmd.Flags().String("code", "", "Reset code (required)")
	cmd.Flags().String("password", "", "New password (required)")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("code")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and drop the saved session",
		Run: func(cmd *cobra.Command, args []string) {
			s := newSession()
			defer s.close()

			msg, err := s.client.Auth().Logout(background())
			if err != nil {
				fail(err)
			}

			if cache, cacheErr := s.openUserCache(); cacheErr == nil {
				cache.Delete(background())
				cache.Close()
			}

			fmt.Println(msg.Message)
		},
	}
}
