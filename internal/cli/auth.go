package cli

import (
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string

	registerEmail    string
	registerPassword string
	registerConfirm  string
	registerName     string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return application.LogIn(cmd.Context(), loginEmail, loginPassword)
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		return application.Register(cmd.Context(), registerEmail, registerPassword, registerConfirm, registerName)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return application.LogOut(cmd.Context())
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user's profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return application.ShowProfile(cmd.Context())
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().StringVar(&registerEmail, "email", "", "account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "account password")
	registerCmd.Flags().StringVar(&registerConfirm, "confirm", "", "password confirmation")
	registerCmd.Flags().StringVar(&registerName, "name", "", "display name (optional)")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("password")
	registerCmd.MarkFlagRequired("confirm")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}
