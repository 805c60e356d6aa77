package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"yumyum/internal/api"
	"yumyum/internal/app"
	"yumyum/internal/config"
	"yumyum/internal/inventory"
	"yumyum/internal/localstore"
	"yumyum/internal/mealplan"
	"yumyum/internal/session"
)

var (
	cfgFile     string
	application *app.App
)

var rootCmd = &cobra.Command{
	Use:   "yumyum",
	Short: "Meal planning and kitchen inventory from your terminal",
	Long: `yumyum tracks the ingredients you own, suggests recipes you can cook
with them, and lets you plan meals on a weekly calendar. Inventory is
kept on the server; storage locations, dates and the meal plan live in
a local data directory.`,
	SilenceUsage:      true,
	PersistentPreRunE: initApp,
}

func initApp(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	store, err := localstore.New(cfg.DataDir)
	if err != nil {
		return err
	}
	sess := session.Open(cfg.DataDir)
	client := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout)
	inv := inventory.NewModel(client, sess, store)
	plan := mealplan.NewStore(store)

	application = app.New(cfg, client, sess, inv, plan, cmd.OutOrStdout())
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.yumyum.yaml)")
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
