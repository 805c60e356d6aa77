package inventory

import (
	"testing"
	"time"

	"yumyum/internal/api"
)

func item(id int, name string, qty int, meta *Metadata) Item {
	return Item{FridgeItem: api.FridgeItem{ID: id, Name: name, Quantity: qty}, Meta: meta}
}

func TestFilter(t *testing.T) {
	items := []Item{
		item(1, "Milk", 1, &Metadata{Storage: StorageFridge}),
		item(2, "Frozen Peas", 1, &Metadata{Storage: StorageFreezer}),
		item(3, "Rice", 2, &Metadata{Storage: StoragePantry}),
		item(4, "Mystery Leftovers", 1, nil),
	}

	t.Run("AllMatchesEverything", func(t *testing.T) {
		got := Filter(items, "", CategoryAll)
		if len(got) != 4 {
			t.Errorf("Expected all 4 items, got %d", len(got))
		}
	})

	t.Run("CategoryExcludesUnassigned", func(t *testing.T) {
		got := Filter(items, "", StorageFridge)
		if len(got) != 1 || got[0].Name != "Milk" {
			t.Errorf("Expected only 'Milk' in Fridge, got %v", got)
		}
		for _, cat := range []StorageLocation{StorageFridge, StorageFreezer, StoragePantry} {
			for _, it := range Filter(items, "", cat) {
				if it.ID == 4 {
					t.Errorf("Item without metadata matched category %s", cat)
				}
			}
		}
	})

	t.Run("SearchIsCaseInsensitiveSubstring", func(t *testing.T) {
		got := Filter(items, "pEA", CategoryAll)
		if len(got) != 1 || got[0].Name != "Frozen Peas" {
			t.Errorf("Expected 'Frozen Peas', got %v", got)
		}
	})

	t.Run("SearchAndCategoryCombine", func(t *testing.T) {
		if got := Filter(items, "milk", StorageFreezer); len(got) != 0 {
			t.Errorf("Expected no match for milk in Freezer, got %v", got)
		}
		if got := Filter(items, "milk", StorageFridge); len(got) != 1 {
			t.Errorf("Expected one match for milk in Fridge, got %v", got)
		}
	})
}

func TestSortItems(t *testing.T) {
	items := []Item{
		item(1, "banana", 5, &Metadata{AddedOn: "2025-11-02", ExpiresOn: "2025-11-10"}),
		item(2, "Apple", 3, &Metadata{AddedOn: "2025-11-03"}),
		item(3, "cherry", 9, nil),
	}

	t.Run("NameCaseInsensitive", func(t *testing.T) {
		got := SortItems(items, SortByName, false)
		if got[0].Name != "Apple" || got[1].Name != "banana" || got[2].Name != "cherry" {
			t.Errorf("Unexpected name order: %v, %v, %v", got[0].Name, got[1].Name, got[2].Name)
		}

		rev := SortItems(items, SortByName, true)
		if rev[0].Name != "cherry" || rev[2].Name != "Apple" {
			t.Errorf("Unexpected descending order: %v, %v, %v", rev[0].Name, rev[1].Name, rev[2].Name)
		}
	})

	t.Run("Quantity", func(t *testing.T) {
		got := SortItems(items, SortByQuantity, false)
		if got[0].Quantity != 3 || got[2].Quantity != 9 {
			t.Errorf("Unexpected quantity order: %v", got)
		}
	})

	t.Run("AddedOnMissingIsEpoch", func(t *testing.T) {
		got := SortItems(items, SortByAddedOn, false)
		if got[0].Name != "cherry" {
			t.Errorf("Expected item without addedOn first (epoch), got '%s'", got[0].Name)
		}
		if got[1].Name != "banana" || got[2].Name != "Apple" {
			t.Errorf("Unexpected chronological order: %v, %v", got[1].Name, got[2].Name)
		}
	})

	t.Run("ExpiresOnMissingSortsLast", func(t *testing.T) {
		got := SortItems(items, SortByExpiresOn, false)
		if got[0].Name != "banana" {
			t.Errorf("Expected 'banana' (only dated expiry) first, got '%s'", got[0].Name)
		}
		if got[2].Meta != nil && got[2].Meta.ExpiresOn != "" {
			t.Errorf("Expected an item without expiry last, got %+v", got[2])
		}

		desc := SortItems(items, SortByExpiresOn, true)
		if desc[0].Name != "banana" {
			t.Errorf("Expected missing expiry to stay last when descending, got '%s' first", desc[0].Name)
		}
	})

	t.Run("DoesNotMutateInput", func(t *testing.T) {
		SortItems(items, SortByName, false)
		if items[0].Name != "banana" {
			t.Errorf("Input slice was mutated, first is now '%s'", items[0].Name)
		}
	})
}

func TestExpiringSoon(t *testing.T) {
	today := time.Date(2025, 11, 10, 15, 30, 0, 0, time.UTC)

	cases := []struct {
		name      string
		expiresOn string
		want      bool
	}{
		{"Empty", "", false},
		{"Yesterday", "2025-11-09", true},
		{"Today", "2025-11-10", true},
		{"BoundaryPlusSeven", "2025-11-17", true},
		{"PlusEight", "2025-11-18", false},
		{"FarFuture", "2026-01-01", false},
		{"Unparsable", "next tuesday", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExpiringSoon(tc.expiresOn, today); got != tc.want {
				t.Errorf("ExpiringSoon(%q) = %v, want %v", tc.expiresOn, got, tc.want)
			}
		})
	}
}

func TestParseHelpers(t *testing.T) {
	t.Run("Storage", func(t *testing.T) {
		if loc, err := ParseStorage("fReEzEr"); err != nil || loc != StorageFreezer {
			t.Errorf("Expected Freezer, got %v (%v)", loc, err)
		}
		if _, err := ParseStorage("attic"); err == nil {
			t.Error("Expected an error for unknown storage location")
		}
	})

	t.Run("Category", func(t *testing.T) {
		if cat, err := ParseCategory("all"); err != nil || cat != CategoryAll {
			t.Errorf("Expected All, got %v (%v)", cat, err)
		}
		if cat, err := ParseCategory("Pantry"); err != nil || cat != StoragePantry {
			t.Errorf("Expected Pantry, got %v (%v)", cat, err)
		}
	})

	t.Run("SortKey", func(t *testing.T) {
		if key, err := ParseSortKey("Expires"); err != nil || key != SortByExpiresOn {
			t.Errorf("Expected expires, got %v (%v)", key, err)
		}
		if _, err := ParseSortKey("color"); err == nil {
			t.Error("Expected an error for unknown sort key")
		}
	})
}
