package app

import (
	"context"
	"fmt"
	"time"

	"yumyum/internal/mealplan"
)

// AssignRecipe snapshots a recipe from the current suggestions into a
// (date, slot) cell of the plan. The snapshot is taken at assignment
// time; later changes to search results leave it untouched.
func (a *App) AssignRecipe(ctx context.Context, dateKey string, slot mealplan.Slot, recipeID int) error {
	if err := a.requireAuth(); err != nil {
		return err
	}

	result, err := a.client.FindRecipesByIngredients(ctx, a.session.Token())
	if err != nil {
		return err
	}
	for _, r := range result.Recipes {
		if r.ID == recipeID {
			if err := a.plan.Assign(dateKey, slot, mealplan.Snapshot(r)); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Assigned %q to %s %s\n", r.Title, dateKey, slot)
			return nil
		}
	}
	if result.Message != "" {
		return fmt.Errorf("no recipe with id %d: %s", recipeID, result.Message)
	}
	return fmt.Errorf("no recipe with id %d in the current suggestions", recipeID)
}

// AssignMeal stores a free-form meal title without a recipe search.
func (a *App) AssignMeal(dateKey string, slot mealplan.Slot, title string) error {
	if title == "" {
		return fmt.Errorf("meal title must not be empty")
	}
	if err := a.plan.Assign(dateKey, slot, mealplan.RecipeSnapshot{Title: title}); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Assigned %q to %s %s\n", title, dateKey, slot)
	return nil
}

// RemovePlanEntry deletes one slot entry.
func (a *App) RemovePlanEntry(dateKey string, slot mealplan.Slot) error {
	if err := a.plan.Remove(dateKey, slot); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Removed %s %s\n", dateKey, slot)
	return nil
}

// ClearPlanDay deletes every entry for a date.
func (a *App) ClearPlanDay(dateKey string) error {
	if err := a.plan.ClearDay(dateKey); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Cleared %s\n", dateKey)
	return nil
}

// ClearPlan resets the whole plan.
func (a *App) ClearPlan() error {
	if err := a.plan.ClearAll(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Meal plan cleared.")
	return nil
}

// ShowWeek prints the plan for the week containing today, shifted by
// offset weeks.
func (a *App) ShowWeek(offset int) error {
	days := mealplan.Week(time.Now(), offset)
	fmt.Fprintf(a.out, "Week of %s\n", days[0])

	for _, dateKey := range days {
		entries := a.plan.Day(dateKey)
		note := a.plan.Note(dateKey)
		if len(entries) == 0 && note == "" {
			continue
		}

		t, _ := time.Parse(mealplan.DateLayout, dateKey)
		fmt.Fprintf(a.out, "\n%s (%s)\n", dateKey, t.Weekday())
		for _, slot := range mealplan.Slots {
			if snap, ok := entries[slot]; ok {
				fmt.Fprintf(a.out, "  %-10s %s\n", slot, snap.Title)
			}
		}
		if note != "" {
			fmt.Fprintf(a.out, "  Note: %s\n", note)
		}
	}
	return nil
}

// SetNote stores or clears the free-form calendar note for a date.
func (a *App) SetNote(dateKey, text string) error {
	return a.plan.SetNote(dateKey, text)
}

// ShowNote prints the calendar note for a date, if any.
func (a *App) ShowNote(dateKey string) error {
	note := a.plan.Note(dateKey)
	if note == "" {
		fmt.Fprintf(a.out, "No note for %s\n", dateKey)
		return nil
	}
	fmt.Fprintln(a.out, note)
	return nil
}
