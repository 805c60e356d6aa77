package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"yumyum/internal/logger"
)

// seedEntry is one sample item in the starter catalog. ExpiresInDays
// of zero means no expiry date is preset.
type seedEntry struct {
	Name          string
	Quantity      int
	Storage       StorageLocation
	ExpiresInDays int
}

var seedCatalog = []seedEntry{
	{Name: "Milk", Quantity: 1, Storage: StorageFridge, ExpiresInDays: 5},
	{Name: "Eggs", Quantity: 12, Storage: StorageFridge, ExpiresInDays: 14},
	{Name: "Butter", Quantity: 1, Storage: StorageFridge, ExpiresInDays: 30},
	{Name: "Cheddar Cheese", Quantity: 1, Storage: StorageFridge, ExpiresInDays: 21},
	{Name: "Chicken Breast", Quantity: 2, Storage: StorageFreezer, ExpiresInDays: 60},
	{Name: "Frozen Peas", Quantity: 1, Storage: StorageFreezer, ExpiresInDays: 90},
	{Name: "Bread", Quantity: 1, Storage: StoragePantry, ExpiresInDays: 4},
	{Name: "Rice", Quantity: 1, Storage: StoragePantry},
	{Name: "Pasta", Quantity: 2, Storage: StoragePantry},
	{Name: "Tomatoes", Quantity: 4, Storage: StorageFridge, ExpiresInDays: 6},
	{Name: "Onions", Quantity: 3, Storage: StoragePantry, ExpiresInDays: 21},
	{Name: "Olive Oil", Quantity: 1, Storage: StoragePantry},
}

// SeedNeeded reports whether the automatic seeding path should run:
// the authoritative list is empty and seeding has never been attempted
// for this data directory.
func (m *Model) SeedNeeded() bool {
	return len(m.items) == 0 && !m.store.Flag(seededFlag)
}

// Seed inserts the starter catalog one item at a time, skipping any
// name that already exists case-insensitively, and attaches preset
// metadata to each created item. The automatic path (manual=false)
// logs per-item failures instead of surfacing them and records the
// attempt so it happens at most once per data directory; the manual
// path surfaces the first failure.
func (m *Model) Seed(ctx context.Context, manual bool) error {
	if !manual {
		if !m.SeedNeeded() {
			return nil
		}
		if err := m.store.SetFlag(seededFlag); err != nil {
			logger.Warn("failed to record seeding attempt", zap.Error(err))
		}
	}

	existing := make(map[string]struct{}, len(m.items))
	for _, it := range m.items {
		existing[strings.ToLower(it.Name)] = struct{}{}
	}

	today := time.Now()
	bar := progressbar.Default(int64(len(seedCatalog)), "seeding fridge")

	for _, entry := range seedCatalog {
		bar.Add(1)
		if _, ok := existing[strings.ToLower(entry.Name)]; ok {
			continue
		}

		item, err := m.client.AddItem(ctx, m.session.Token(), entry.Name, entry.Quantity)
		if err != nil {
			if manual {
				return err
			}
			logger.Warn("failed to seed sample item",
				zap.String("name", entry.Name), zap.Error(err))
			continue
		}

		meta := Metadata{
			Storage: entry.Storage,
			AddedOn: today.Format(DateLayout),
		}
		if entry.ExpiresInDays > 0 {
			meta.ExpiresOn = today.AddDate(0, 0, entry.ExpiresInDays).Format(DateLayout)
		}
		m.metadata[item.ID] = meta
		existing[strings.ToLower(entry.Name)] = struct{}{}
	}

	m.persistMetadata()
	return m.Refresh(ctx)
}
