package mealplan

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"yumyum/internal/api"
	"yumyum/internal/localstore"
)

const (
	planFile  = "mealplan.json"
	notesFile = "notes.json"
)

// DateLayout is the format of a calendar date key.
const DateLayout = "2006-01-02"

// Slot is a named meal of the day.
type Slot string

const (
	Breakfast Slot = "Breakfast"
	Lunch     Slot = "Lunch"
	Dinner    Slot = "Dinner"
)

// Slots lists the meal slots in display order.
var Slots = []Slot{Breakfast, Lunch, Dinner}

// ParseSlot maps user input to a meal slot, case-insensitively.
func ParseSlot(s string) (Slot, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "breakfast":
		return Breakfast, nil
	case "lunch":
		return Lunch, nil
	case "dinner":
		return Dinner, nil
	default:
		return "", fmt.Errorf("unknown meal slot %q (want Breakfast, Lunch or Dinner)", s)
	}
}

// ParseDateKey validates a YYYY-MM-DD date key.
func ParseDateKey(s string) (string, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t.Format(DateLayout), nil
}

// RecipeSnapshot is the immutable copy of a recipe's display fields
// taken at assignment time. A recipe later disappearing from search
// results does not affect existing entries.
type RecipeSnapshot struct {
	Title    string `json:"title"`
	Image    string `json:"image,omitempty"`
	Duration string `json:"duration,omitempty"`
	Servings int    `json:"servings,omitempty"`
}

// Snapshot captures the display fields of a recipe suggestion.
func Snapshot(r api.Recipe) RecipeSnapshot {
	return RecipeSnapshot{Title: r.Title, Image: r.Image}
}

// Store maps calendar dates and meal slots to recipe snapshots. It is
// entirely client-owned: persisted in full on every mutation, with no
// server-side representation, and never pruned by inventory changes.
type Store struct {
	store   *localstore.Store
	entries map[string]map[Slot]RecipeSnapshot
	notes   map[string]string
}

// NewStore loads the persisted plan and notes.
func NewStore(store *localstore.Store) *Store {
	s := &Store{
		store:   store,
		entries: make(map[string]map[Slot]RecipeSnapshot),
		notes:   make(map[string]string),
	}
	s.store.Load(planFile, &s.entries)
	s.store.Load(notesFile, &s.notes)
	return s
}

// Assign stores a snapshot for (dateKey, slot), overwriting any
// existing entry in that slot.
func (s *Store) Assign(dateKey string, slot Slot, snap RecipeSnapshot) error {
	day, ok := s.entries[dateKey]
	if !ok {
		day = make(map[Slot]RecipeSnapshot)
		s.entries[dateKey] = day
	}
	day[slot] = snap
	return s.persistPlan()
}

// Remove deletes the entry for (dateKey, slot). The date key itself is
// removed once its last slot entry is gone.
func (s *Store) Remove(dateKey string, slot Slot) error {
	day, ok := s.entries[dateKey]
	if !ok {
		return nil
	}
	delete(day, slot)
	if len(day) == 0 {
		delete(s.entries, dateKey)
	}
	return s.persistPlan()
}

// ClearDay deletes every entry for a date.
func (s *Store) ClearDay(dateKey string) error {
	delete(s.entries, dateKey)
	return s.persistPlan()
}

// ClearAll resets the plan to empty.
func (s *Store) ClearAll() error {
	s.entries = make(map[string]map[Slot]RecipeSnapshot)
	return s.persistPlan()
}

// Entry returns the snapshot for (dateKey, slot), if any.
func (s *Store) Entry(dateKey string, slot Slot) (RecipeSnapshot, bool) {
	day, ok := s.entries[dateKey]
	if !ok {
		return RecipeSnapshot{}, false
	}
	snap, ok := day[slot]
	return snap, ok
}

// Day returns all entries for a date keyed by slot.
func (s *Store) Day(dateKey string) map[Slot]RecipeSnapshot {
	out := make(map[Slot]RecipeSnapshot, len(s.entries[dateKey]))
	for slot, snap := range s.entries[dateKey] {
		out[slot] = snap
	}
	return out
}

// Dates returns every date key holding at least one entry, ascending.
func (s *Store) Dates() []string {
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *Store) persistPlan() error {
	return s.store.Save(planFile, s.entries)
}

// Note returns the free-form calendar note for a date.
func (s *Store) Note(dateKey string) string {
	return s.notes[dateKey]
}

// SetNote stores a calendar note for a date. Empty text deletes the
// note. Notes are independent of plan entries.
func (s *Store) SetNote(dateKey, text string) error {
	if strings.TrimSpace(text) == "" {
		delete(s.notes, dateKey)
	} else {
		s.notes[dateKey] = text
	}
	return s.store.Save(notesFile, s.notes)
}

// WeekStart returns the Monday on or before t.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// Week returns the seven date keys of the week containing anchor,
// shifted by offset weeks. Navigating forward and back again lands on
// the same dates.
func Week(anchor time.Time, offset int) []string {
	start := WeekStart(anchor).AddDate(0, 0, 7*offset)
	keys := make([]string, 7)
	for i := 0; i < 7; i++ {
		keys[i] = start.AddDate(0, 0, i).Format(DateLayout)
	}
	return keys
}
