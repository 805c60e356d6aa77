package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"yumyum/internal/mealplan"
)

var (
	planDate   string
	planSlot   string
	planRecipe int
	planTitle  string
	planWeek   int
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Assign recipes to meal slots on the weekly calendar",
}

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the plan for a week",
	RunE: func(cmd *cobra.Command, args []string) error {
		return application.ShowWeek(planWeek)
	},
}

var planAssignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Assign a recipe (or a free-form meal) to a date and slot",
	RunE: func(cmd *cobra.Command, args []string) error {
		dateKey, err := mealplan.ParseDateKey(planDate)
		if err != nil {
			return err
		}
		slot, err := mealplan.ParseSlot(planSlot)
		if err != nil {
			return err
		}
		if planRecipe > 0 {
			return application.AssignRecipe(cmd.Context(), dateKey, slot, planRecipe)
		}
		return application.AssignMeal(dateKey, slot, planTitle)
	},
}

var planRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove the entry for a date and slot",
	RunE: func(cmd *cobra.Command, args []string) error {
		dateKey, err := mealplan.ParseDateKey(planDate)
		if err != nil {
			return err
		}
		slot, err := mealplan.ParseSlot(planSlot)
		if err != nil {
			return err
		}
		return application.RemovePlanEntry(dateKey, slot)
	},
}

var planClearDayCmd = &cobra.Command{
	Use:   "clear-day",
	Short: "Remove every entry for a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		dateKey, err := mealplan.ParseDateKey(planDate)
		if err != nil {
			return err
		}
		return application.ClearPlanDay(dateKey)
	},
}

var planClearAllCmd = &cobra.Command{
	Use:   "clear-all",
	Short: "Reset the whole meal plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		return application.ClearPlan()
	},
}

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Free-form calendar notes",
}

var noteSetCmd = &cobra.Command{
	Use:   "set <text...>",
	Short: "Set the note for a date (empty text deletes it)",
	RunE: func(cmd *cobra.Command, args []string) error {
		dateKey, err := mealplan.ParseDateKey(planDate)
		if err != nil {
			return err
		}
		return application.SetNote(dateKey, strings.Join(args, " "))
	},
}

var noteShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the note for a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		dateKey, err := mealplan.ParseDateKey(planDate)
		if err != nil {
			return err
		}
		return application.ShowNote(dateKey)
	},
}

func init() {
	planShowCmd.Flags().IntVar(&planWeek, "week", 0, "week offset from the current week (-1, 0, +1, ...)")

	for _, c := range []*cobra.Command{planAssignCmd, planRemoveCmd, planClearDayCmd} {
		c.Flags().StringVar(&planDate, "date", "", "date (YYYY-MM-DD)")
		c.MarkFlagRequired("date")
	}
	for _, c := range []*cobra.Command{planAssignCmd, planRemoveCmd} {
		c.Flags().StringVar(&planSlot, "slot", "", "meal slot (Breakfast, Lunch, Dinner)")
		c.MarkFlagRequired("slot")
	}
	planAssignCmd.Flags().IntVar(&planRecipe, "recipe-id", 0, "id from the current recipe suggestions")
	planAssignCmd.Flags().StringVar(&planTitle, "title", "", "free-form meal title (when no recipe id)")

	planCmd.AddCommand(planShowCmd, planAssignCmd, planRemoveCmd, planClearDayCmd, planClearAllCmd)
	rootCmd.AddCommand(planCmd)

	noteSetCmd.Flags().StringVar(&planDate, "date", "", "date (YYYY-MM-DD)")
	noteSetCmd.MarkFlagRequired("date")
	noteShowCmd.Flags().StringVar(&planDate, "date", "", "date (YYYY-MM-DD)")
	noteShowCmd.MarkFlagRequired("date")

	noteCmd.AddCommand(noteSetCmd, noteShowCmd)
	rootCmd.AddCommand(noteCmd)
}
