package inventory

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// SortKey selects the ordering for a displayed item list.
type SortKey string

const (
	SortByName      SortKey = "name"
	SortByQuantity  SortKey = "quantity"
	SortByAddedOn   SortKey = "added"
	SortByExpiresOn SortKey = "expires"
)

// ParseSortKey maps user input to a sort key.
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	switch key {
	case SortByName, SortByQuantity, SortByAddedOn, SortByExpiresOn:
		return key, nil
	default:
		return "", fmt.Errorf("unknown sort key %q (want name, quantity, added or expires)", s)
	}
}

// ParseCategory maps user input to a filter category. "All" matches
// everything.
func ParseCategory(s string) (StorageLocation, error) {
	if strings.EqualFold(strings.TrimSpace(s), string(CategoryAll)) {
		return CategoryAll, nil
	}
	return ParseStorage(s)
}

// Filter returns the items matching a case-insensitive substring query
// on the name and a storage-category filter. CategoryAll matches every
// item; items without metadata are Unassigned and only match
// CategoryAll.
func Filter(items []Item, query string, category StorageLocation) []Item {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if query != "" && !strings.Contains(strings.ToLower(it.Name), query) {
			continue
		}
		if category != CategoryAll && !strings.EqualFold(string(it.Category()), string(category)) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// SortItems orders a copy of items by the given key. Name ordering is
// case-insensitive; items missing an added date sort as the epoch; a
// missing expiry date sorts last regardless of direction.
func SortItems(items []Item, key SortKey, desc bool) []Item {
	out := make([]Item, len(items))
	copy(out, items)

	less := func(a, b Item) bool { return false }
	switch key {
	case SortByName:
		less = func(a, b Item) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case SortByQuantity:
		less = func(a, b Item) bool { return a.Quantity < b.Quantity }
	case SortByAddedOn:
		less = func(a, b Item) bool {
			return addedTime(a).Before(addedTime(b))
		}
	case SortByExpiresOn:
		// Missing expiry pinned to the end in both directions.
		sort.SliceStable(out, func(i, j int) bool {
			ti, iok := expiryTime(out[i])
			tj, jok := expiryTime(out[j])
			if iok != jok {
				return iok
			}
			if !iok {
				return false
			}
			if desc {
				return tj.Before(ti)
			}
			return ti.Before(tj)
		})
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func addedTime(it Item) time.Time {
	if it.Meta == nil {
		return time.Time{}
	}
	t, ok := parseDate(it.Meta.AddedOn)
	if !ok {
		return time.Time{}
	}
	return t
}

func expiryTime(it Item) (time.Time, bool) {
	if it.Meta == nil {
		return time.Time{}, false
	}
	return parseDate(it.Meta.ExpiresOn)
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// midnight normalizes a time to its date in UTC.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ExpiringSoon reports whether a non-empty expiry date falls on or
// before seven days from today. Both dates are normalized to midnight,
// so exactly today+7 counts and today+8 does not.
func ExpiringSoon(expiresOn string, today time.Time) bool {
	d, ok := parseDate(expiresOn)
	if !ok {
		return false
	}
	limit := midnight(today).AddDate(0, 0, 7)
	return !midnight(d).After(limit)
}

// Expiring reports whether a merged item is expiring soon.
func Expiring(it Item, today time.Time) bool {
	if it.Meta == nil {
		return false
	}
	return ExpiringSoon(it.Meta.ExpiresOn, today)
}
