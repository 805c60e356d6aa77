package cli

import (
	"github.com/spf13/cobra"
)

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "Suggest recipes based on your fridge contents",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := application.FindRecipes(cmd.Context())
		return err
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show inventory and recipe availability at a glance",
	RunE: func(cmd *cobra.Command, args []string) error {
		return application.ShowDashboard(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(recipesCmd, dashboardCmd)
}
