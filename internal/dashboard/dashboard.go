package dashboard

import (
	"sort"
	"time"

	"yumyum/internal/inventory"
)

// Summary holds the derived dashboard counters. It is a pure function
// of already-fetched inventory and recipe-search results.
type Summary struct {
	// TotalItems is the sum of quantities across the inventory.
	TotalItems int
	// PerStorage counts distinct items per storage location,
	// including Unassigned.
	PerStorage map[inventory.StorageLocation]int
	// ExpiringSoon counts items expiring within seven days.
	ExpiringSoon int
	// Recent holds up to five items by added date descending; items
	// without an added date are excluded.
	Recent []inventory.Item
	// RecipeCount is the availability count from the latest search.
	RecipeCount int
}

// Summarize derives the dashboard counters. It never mutates its
// inputs.
func Summarize(items []inventory.Item, recipeCount int, today time.Time) Summary {
	s := Summary{
		PerStorage:  make(map[inventory.StorageLocation]int),
		RecipeCount: recipeCount,
	}

	dated := make([]inventory.Item, 0, len(items))
	for _, it := range items {
		s.TotalItems += it.Quantity
		s.PerStorage[it.Category()]++
		if inventory.Expiring(it, today) {
			s.ExpiringSoon++
		}
		if it.Meta != nil && it.Meta.AddedOn != "" {
			if _, err := time.Parse(inventory.DateLayout, it.Meta.AddedOn); err == nil {
				dated = append(dated, it)
			}
		}
	}

	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].Meta.AddedOn > dated[j].Meta.AddedOn
	})
	if len(dated) > 5 {
		dated = dated[:5]
	}
	s.Recent = dated

	return s
}
