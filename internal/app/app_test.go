package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"yumyum/internal/api"
	"yumyum/internal/config"
	"yumyum/internal/inventory"
	"yumyum/internal/localstore"
	"yumyum/internal/mealplan"
	"yumyum/internal/session"
)

func newTestApp(t *testing.T, handler http.HandlerFunc, authed bool) (*App, *bytes.Buffer) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	dir := t.TempDir()
	store, err := localstore.New(dir)
	if err != nil {
		t.Fatalf("Failed to create local store: %v", err)
	}
	sess := session.Open(dir)
	if authed {
		if err := sess.Login("test-token"); err != nil {
			t.Fatalf("Failed to log in: %v", err)
		}
	}

	client := api.NewClient(server.URL, 5*time.Second)
	inv := inventory.NewModel(client, sess, store)
	plan := mealplan.NewStore(store)
	cfg := &config.Config{APIBaseURL: server.URL, DataDir: dir}

	out := &bytes.Buffer{}
	return New(cfg, client, sess, inv, plan, out), out
}

func TestAuthGate(t *testing.T) {
	app, _ := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("Unexpected request while signed out: %s %s", r.Method, r.URL.Path)
	}, false)

	ctx := context.Background()
	ops := map[string]func() error{
		"ListInventory":  func() error { return app.ListInventory(ctx, ListOptions{Category: inventory.CategoryAll}) },
		"ClearInventory": func() error { return app.ClearInventory(ctx) },
		"ShowProfile":    func() error { return app.ShowProfile(ctx) },
		"ShowDashboard":  func() error { return app.ShowDashboard(ctx) },
		"FindRecipes":    func() error { _, err := app.FindRecipes(ctx); return err },
	}
	for name, op := range ops {
		if err := op(); !errors.Is(err, ErrNotAuthenticated) {
			t.Errorf("%s: expected ErrNotAuthenticated, got %v", name, err)
		}
	}
}

func TestLogInAndOut(t *testing.T) {
	app, out := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login/":
			fmt.Fprintln(w, `{"token": "tok9", "user": {"id": 1, "email": "a@b.c", "name": "Ada"}}`)
		case "/logout/":
			fmt.Fprintln(w, `{"message": "Successfully logged out"}`)
		default:
			t.Errorf("Unexpected request: %s", r.URL.Path)
		}
	}, false)

	ctx := context.Background()
	if err := app.LogIn(ctx, "a@b.c", "pw"); err != nil {
		t.Fatalf("LogIn failed: %v", err)
	}
	if !app.session.Authed() {
		t.Error("Expected session to be authenticated")
	}
	if !strings.Contains(out.String(), "Ada") {
		t.Errorf("Expected greeting with the user name, got %q", out.String())
	}

	if err := app.LogOut(ctx); err != nil {
		t.Fatalf("LogOut failed: %v", err)
	}
	if app.session.Authed() {
		t.Error("Expected session to be signed out")
	}
}

func TestLogOutIsBestEffort(t *testing.T) {
	app, _ := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintln(w, `{"error": "boom"}`)
	}, true)

	// The server call fails, the local token is cleared anyway.
	if err := app.LogOut(context.Background()); err != nil {
		t.Fatalf("Expected best-effort logout to succeed, got %v", err)
	}
	if app.session.Authed() {
		t.Error("Expected the local token to be cleared")
	}
}

func TestRegisterValidation(t *testing.T) {
	app, _ := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("Unexpected request for invalid input: %s", r.URL.Path)
	}, false)

	ctx := context.Background()
	if err := app.Register(ctx, "a@b.c", "pw", "different", "Ada"); err == nil {
		t.Error("Expected an error for mismatched password confirmation")
	}
	if err := app.Register(ctx, "", "pw", "pw", "Ada"); err == nil {
		t.Error("Expected an error for a missing email")
	}
}

func TestDashboardFreshAccount(t *testing.T) {
	app, out := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/profile/":
			fmt.Fprintln(w, `{"user": {"id": 1, "email": "a@b.c", "name": "Ada"}}`)
		case "/fridge/":
			fmt.Fprintln(w, `{"id": 1, "name": "Main Fridge", "items": []}`)
		case "/recipes/find-by-ingredients/":
			fmt.Fprintln(w, `{"message": "Your fridge has no usable ingredients."}`)
		default:
			t.Errorf("Unexpected request: %s", r.URL.Path)
		}
	}, true)

	if err := app.ShowDashboard(context.Background()); err != nil {
		t.Fatalf("ShowDashboard failed: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Items in stock:      0") {
		t.Errorf("Expected zero item count, got:\n%s", got)
	}
	if !strings.Contains(got, "Expiring this week:  0") {
		t.Errorf("Expected zero expiring count, got:\n%s", got)
	}
	// The empty-with-message result is displayed, not treated as an
	// error.
	if !strings.Contains(got, "no usable ingredients") {
		t.Errorf("Expected the server explanation to be shown, got:\n%s", got)
	}
}

func TestFindRecipesEmptyWithMessage(t *testing.T) {
	app, out := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"message": "Add some ingredients first."}`)
	}, true)

	result, err := app.FindRecipes(context.Background())
	if err != nil {
		t.Fatalf("Expected no error for an empty-with-message result, got %v", err)
	}
	if len(result.Recipes) != 0 {
		t.Errorf("Expected no recipes, got %d", len(result.Recipes))
	}
	if !strings.Contains(out.String(), "Add some ingredients first.") {
		t.Errorf("Expected the message to be printed, got %q", out.String())
	}
}

func TestAddItemExpiryValidation(t *testing.T) {
	app, _ := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("Unexpected request for invalid input: %s", r.URL.Path)
	}, true)

	err := app.AddItem(context.Background(), "Milk", 1, inventory.StorageFridge, "tomorrow")
	if err == nil {
		t.Error("Expected an error for an unparsable expiry date")
	}
}

func TestAdjustQuantityReportsOutcome(t *testing.T) {
	newFridgeApp := func(t *testing.T, start int) (*App, *bytes.Buffer) {
		qty := start
		return newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.Method == http.MethodGet && r.URL.Path == "/fridge/":
				items := "[]"
				if qty > 0 {
					items = fmt.Sprintf(`[{"id": 4, "name": "Milk", "quantity": %d}]`, qty)
				}
				fmt.Fprintf(w, `{"id": 1, "name": "Main Fridge", "items": %s}`, items)
			case r.Method == http.MethodPatch && r.URL.Path == "/fridge/item/4/":
				var body struct {
					Quantity int `json:"quantity"`
				}
				json.NewDecoder(r.Body).Decode(&body)
				qty = body.Quantity
				if qty <= 0 {
					fmt.Fprintln(w, `null`)
					return
				}
				fmt.Fprintf(w, `{"id": 4, "name": "Milk", "quantity": %d}`, qty)
			default:
				t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
			}
		}, true)
	}

	t.Run("IncrementPrintsNewQuantity", func(t *testing.T) {
		app, out := newFridgeApp(t, 2)
		if err := app.AdjustQuantity(context.Background(), 4, +1); err != nil {
			t.Fatalf("AdjustQuantity failed: %v", err)
		}
		if !strings.Contains(out.String(), "Item 4 quantity set to 3") {
			t.Errorf("Expected the new quantity to be reported, got %q", out.String())
		}
	})

	t.Run("DecrementToZeroPrintsRemoval", func(t *testing.T) {
		app, out := newFridgeApp(t, 1)
		if err := app.AdjustQuantity(context.Background(), 4, -1); err != nil {
			t.Fatalf("AdjustQuantity failed: %v", err)
		}
		if !strings.Contains(out.String(), "Removed item 4") {
			t.Errorf("Expected the removal to be reported, got %q", out.String())
		}
	})
}

func TestPlanOperations(t *testing.T) {
	app, out := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recipes/find-by-ingredients/" {
			t.Errorf("Unexpected request: %s", r.URL.Path)
		}
		fmt.Fprintln(w, `[{"id": 7, "title": "Lemon Herb Chicken Bowl", "image": "http://img/7.jpg"}]`)
	}, true)

	ctx := context.Background()
	if err := app.AssignRecipe(ctx, "2025-11-10", mealplan.Dinner, 7); err != nil {
		t.Fatalf("AssignRecipe failed: %v", err)
	}
	snap, ok := app.plan.Entry("2025-11-10", mealplan.Dinner)
	if !ok || snap.Title != "Lemon Herb Chicken Bowl" {
		t.Errorf("Expected the snapshot to be stored, got %+v (%v)", snap, ok)
	}

	if err := app.AssignRecipe(ctx, "2025-11-10", mealplan.Dinner, 999); err == nil {
		t.Error("Expected an error for an unknown recipe id")
	}

	out.Reset()
	if err := app.ShowWeek(0); err != nil {
		t.Fatalf("ShowWeek failed: %v", err)
	}

	if err := app.RemovePlanEntry("2025-11-10", mealplan.Dinner); err != nil {
		t.Fatalf("RemovePlanEntry failed: %v", err)
	}
	if _, ok := app.plan.Entry("2025-11-10", mealplan.Dinner); ok {
		t.Error("Expected the entry to be removed")
	}
}
