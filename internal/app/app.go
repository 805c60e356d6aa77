package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"yumyum/internal/api"
	"yumyum/internal/config"
	"yumyum/internal/dashboard"
	"yumyum/internal/inventory"
	"yumyum/internal/logger"
	"yumyum/internal/mealplan"
	"yumyum/internal/session"
)

// ErrNotAuthenticated gates every operation that needs a session.
var ErrNotAuthenticated = fmt.Errorf("not signed in; run 'yumyum login' first")

// App holds the application's dependencies and exposes the operations
// the CLI invokes.
type App struct {
	cfg       *config.Config
	client    *api.Client
	session   *session.Store
	inventory *inventory.Model
	plan      *mealplan.Store
	out       io.Writer
}

// New creates and initializes an App instance.
func New(
	cfg *config.Config,
	client *api.Client,
	sess *session.Store,
	inv *inventory.Model,
	plan *mealplan.Store,
	out io.Writer,
) *App {
	return &App{
		cfg:       cfg,
		client:    client,
		session:   sess,
		inventory: inv,
		plan:      plan,
		out:       out,
	}
}

func (a *App) requireAuth() error {
	if !a.session.Authed() {
		return ErrNotAuthenticated
	}
	return nil
}

// LogIn authenticates against the API and persists the token.
func (a *App) LogIn(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("email and password are required")
	}

	auth, err := a.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := a.session.Login(auth.Token); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", auth.User.Name, auth.User.Email)
	return nil
}

// Register creates a new account and signs in. The password must be
// confirmed before any request is issued.
func (a *App) Register(ctx context.Context, email, password, confirm, name string) error {
	if email == "" || password == "" {
		return fmt.Errorf("email and password are required")
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	auth, err := a.client.Register(ctx, email, password, name)
	if err != nil {
		return err
	}
	if err := a.session.Login(auth.Token); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Account created. Signed in as %s (%s)\n", auth.User.Name, auth.User.Email)
	return nil
}

// LogOut ends the session. The server call is best-effort; the local
// token is cleared regardless.
func (a *App) LogOut(ctx context.Context) error {
	if a.session.Authed() {
		if err := a.client.Logout(ctx, a.session.Token()); err != nil {
			logger.Warn("server-side logout failed", zap.Error(err))
		}
	}
	if err := a.session.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

// ShowProfile prints the current user's profile.
func (a *App) ShowProfile(ctx context.Context) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	user, err := a.client.Profile(ctx, a.session.Token())
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s>\n", user.Name, user.Email)
	return nil
}

// ListOptions control the inventory listing.
type ListOptions struct {
	Search   string
	Category inventory.StorageLocation
	Sort     inventory.SortKey
	Desc     bool
}

// ListInventory refreshes the fridge and prints the filtered, sorted
// item list. An empty first-time fridge triggers the one-shot
// automatic seeding.
func (a *App) ListInventory(ctx context.Context, opts ListOptions) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	if err := a.inventory.Refresh(ctx); err != nil {
		return err
	}

	if a.inventory.SeedNeeded() {
		if err := a.inventory.Seed(ctx, false); err != nil {
			logger.Warn("automatic seeding failed", zap.Error(err))
		}
	}

	items := inventory.Filter(a.inventory.Items(), opts.Search, opts.Category)
	if opts.Sort != "" {
		items = inventory.SortItems(items, opts.Sort, opts.Desc)
	}

	if len(items) == 0 {
		fmt.Fprintln(a.out, "Your fridge is empty.")
		return nil
	}

	today := time.Now()
	for _, it := range items {
		line := fmt.Sprintf("%4d  %-24s x%-4d %-10s", it.ID, it.Name, it.Quantity, it.Category())
		if it.Meta != nil && it.Meta.ExpiresOn != "" {
			line += "  expires " + it.Meta.ExpiresOn
			if inventory.Expiring(it, today) {
				line += "  (soon)"
			}
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// AddItem validates and creates an inventory item with its metadata.
func (a *App) AddItem(ctx context.Context, name string, quantity int, storage inventory.StorageLocation, expiresOn string) error {
	if err := a.requireAuth(); err != nil {
		return err
	}

	meta := inventory.Metadata{
		Storage: storage,
		AddedOn: time.Now().Format(inventory.DateLayout),
	}
	if expiresOn != "" {
		if _, err := time.Parse(inventory.DateLayout, expiresOn); err != nil {
			return fmt.Errorf("invalid expiry date %q (want YYYY-MM-DD)", expiresOn)
		}
		meta.ExpiresOn = expiresOn
	}

	item, err := a.inventory.Add(ctx, name, quantity, meta)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s x%d (id %d)\n", item.Name, item.Quantity, item.ID)
	return nil
}

// SetQuantity refreshes, applies the quantity change and reports the
// outcome.
func (a *App) SetQuantity(ctx context.Context, id, quantity int) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	if err := a.inventory.Refresh(ctx); err != nil {
		return err
	}
	if err := a.inventory.SetQuantity(ctx, id, quantity); err != nil {
		return err
	}
	if quantity <= 0 {
		fmt.Fprintf(a.out, "Removed item %d\n", id)
	} else {
		fmt.Fprintf(a.out, "Item %d quantity set to %d\n", id, quantity)
	}
	return nil
}

// AdjustQuantity steps an item's quantity by +1 or -1.
func (a *App) AdjustQuantity(ctx context.Context, id, delta int) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	if err := a.inventory.Refresh(ctx); err != nil {
		return err
	}
	var err error
	if delta >= 0 {
		err = a.inventory.Increment(ctx, id)
	} else {
		err = a.inventory.Decrement(ctx, id)
	}
	if err != nil {
		return err
	}

	for _, it := range a.inventory.Items() {
		if it.ID == id {
			fmt.Fprintf(a.out, "Item %d quantity set to %d\n", id, it.Quantity)
			return nil
		}
	}
	fmt.Fprintf(a.out, "Removed item %d\n", id)
	return nil
}

// RemoveItems removes the given ids one by one, stopping at the first
// failure.
func (a *App) RemoveItems(ctx context.Context, ids []int) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	if err := a.inventory.Refresh(ctx); err != nil {
		return err
	}
	for _, id := range ids {
		if err := a.inventory.Select(id); err != nil {
			return err
		}
	}
	if err := a.inventory.RemoveSelected(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Removed %d item(s)\n", len(ids))
	return nil
}

// ClearInventory removes everything from the fridge.
func (a *App) ClearInventory(ctx context.Context) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	if err := a.inventory.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Fridge cleared.")
	return nil
}

// SeedInventory runs the sample-catalog seeding manually, with full
// error surfacing.
func (a *App) SeedInventory(ctx context.Context) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	if err := a.inventory.Refresh(ctx); err != nil {
		return err
	}
	if err := a.inventory.Seed(ctx, true); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Sample items added.")
	return nil
}

// FindRecipes prints recipe suggestions for the current fridge. A
// no-usable-ingredients answer is an explanation, not an error.
func (a *App) FindRecipes(ctx context.Context) (*api.RecipeResult, error) {
	if err := a.requireAuth(); err != nil {
		return nil, err
	}
	result, err := a.client.FindRecipesByIngredients(ctx, a.session.Token())
	if err != nil {
		return nil, err
	}

	if result.Message != "" {
		fmt.Fprintln(a.out, result.Message)
		return result, nil
	}
	if len(result.Recipes) == 0 {
		fmt.Fprintln(a.out, "No recipes found with your current ingredients.")
		return result, nil
	}

	for _, r := range result.Recipes {
		fmt.Fprintf(a.out, "%6d  %s\n", r.ID, r.Title)
		fmt.Fprintf(a.out, "        uses %d of your ingredients", r.UsedIngredientCount)
		if r.MissedIngredientCount > 0 {
			fmt.Fprintf(a.out, ", missing %d", r.MissedIngredientCount)
		}
		fmt.Fprintln(a.out)
	}
	return result, nil
}

// ShowDashboard issues its three fetches concurrently; each lands in
// its own variable, so there is no shared mutable state between them.
func (a *App) ShowDashboard(ctx context.Context) error {
	if err := a.requireAuth(); err != nil {
		return err
	}

	var (
		wg      sync.WaitGroup
		user    *api.User
		userErr error
		invErr  error
		recipes *api.RecipeResult
		recErr  error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		user, userErr = a.client.Profile(ctx, a.session.Token())
	}()
	go func() {
		defer wg.Done()
		invErr = a.inventory.Refresh(ctx)
	}()
	go func() {
		defer wg.Done()
		recipes, recErr = a.client.FindRecipesByIngredients(ctx, a.session.Token())
	}()
	wg.Wait()

	if invErr != nil {
		return invErr
	}
	if userErr != nil {
		logger.Warn("failed to fetch profile for dashboard", zap.Error(userErr))
	}

	recipeCount := 0
	if recErr != nil {
		logger.Warn("failed to fetch recipes for dashboard", zap.Error(recErr))
	} else {
		recipeCount = len(recipes.Recipes)
	}

	summary := dashboard.Summarize(a.inventory.Items(), recipeCount, time.Now())

	if user != nil {
		fmt.Fprintf(a.out, "Hello, %s!\n\n", user.Name)
	}
	fmt.Fprintf(a.out, "Items in stock:      %d\n", summary.TotalItems)
	fmt.Fprintf(a.out, "Expiring this week:  %d\n", summary.ExpiringSoon)
	fmt.Fprintf(a.out, "Recipes available:   %d\n", summary.RecipeCount)
	if recErr == nil && recipes.Message != "" {
		fmt.Fprintf(a.out, "  (%s)\n", recipes.Message)
	}

	for _, loc := range []inventory.StorageLocation{
		inventory.StorageFridge, inventory.StorageFreezer,
		inventory.StoragePantry, inventory.StorageUnassigned,
	} {
		if n := summary.PerStorage[loc]; n > 0 {
			fmt.Fprintf(a.out, "  %-10s %d\n", loc, n)
		}
	}

	if len(summary.Recent) > 0 {
		fmt.Fprintln(a.out, "\nRecently added:")
		for _, it := range summary.Recent {
			fmt.Fprintf(a.out, "  %s (added %s)\n", it.Name, it.Meta.AddedOn)
		}
	}
	return nil
}
