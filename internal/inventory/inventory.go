package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"yumyum/internal/api"
	"yumyum/internal/localstore"
	"yumyum/internal/logger"
	"yumyum/internal/session"
)

const (
	metadataFile = "metadata.json"
	seededFlag   = "seeded"
)

// DateLayout is the wire format for metadata dates.
const DateLayout = "2006-01-02"

// StorageLocation is where an item is kept.
type StorageLocation string

const (
	StorageFridge     StorageLocation = "Fridge"
	StorageFreezer    StorageLocation = "Freezer"
	StoragePantry     StorageLocation = "Pantry"
	StorageUnassigned StorageLocation = "Unassigned"

	// CategoryAll is the filter category that matches every item,
	// including those without metadata.
	CategoryAll StorageLocation = "All"
)

// ParseStorage maps user input to a storage location,
// case-insensitively.
func ParseStorage(s string) (StorageLocation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fridge":
		return StorageFridge, nil
	case "freezer":
		return StorageFreezer, nil
	case "pantry":
		return StoragePantry, nil
	default:
		return "", fmt.Errorf("unknown storage location %q (want Fridge, Freezer or Pantry)", s)
	}
}

// Metadata is the client-owned descriptive state attached to a server
// item id. It is never sent to the server.
type Metadata struct {
	Storage   StorageLocation `json:"storage"`
	AddedOn   string          `json:"addedOn"`
	ExpiresOn string          `json:"expiresOn,omitempty"`
}

// Item is a server item merged with its local metadata for display.
type Item struct {
	api.FridgeItem
	Meta *Metadata
}

// Category returns the item's storage location, or Unassigned when no
// metadata exists for it.
func (it Item) Category() StorageLocation {
	if it.Meta == nil {
		return StorageUnassigned
	}
	return it.Meta.Storage
}

// Model is the inventory view-model. It owns the in-memory item list,
// the merged metadata map and the selection set, and mediates every
// mutation with an optimistic local update reconciled against the
// server.
type Model struct {
	client  *api.Client
	session *session.Store
	store   *localstore.Store

	items    []api.FridgeItem
	metadata map[int]Metadata
	selected map[int]struct{}

	// refreshSeq tags each refresh so a fetch that was superseded by a
	// later one cannot overwrite newer state with stale data.
	refreshSeq atomic.Uint64
}

// NewModel creates a Model and loads the persisted metadata map.
func NewModel(client *api.Client, sess *session.Store, store *localstore.Store) *Model {
	m := &Model{
		client:   client,
		session:  sess,
		store:    store,
		metadata: make(map[int]Metadata),
		selected: make(map[int]struct{}),
	}
	m.store.Load(metadataFile, &m.metadata)
	return m
}

// Items returns the merged display list, in server order.
func (m *Model) Items() []Item {
	out := make([]Item, 0, len(m.items))
	for _, it := range m.items {
		merged := Item{FridgeItem: it}
		if meta, ok := m.metadata[it.ID]; ok {
			metaCopy := meta
			merged.Meta = &metaCopy
		}
		out = append(out, merged)
	}
	return out
}

// Metadata returns the metadata for an item id, if any.
func (m *Model) Metadata(id int) (Metadata, bool) {
	meta, ok := m.metadata[id]
	return meta, ok
}

// Refresh fetches the authoritative item list, replaces the in-memory
// items and prunes the metadata map to the fetched id set. Metadata is
// never added here, so after any refresh the metadata keys are a
// subset of the current item ids.
func (m *Model) Refresh(ctx context.Context) error {
	seq := m.refreshSeq.Add(1)

	fridge, err := m.client.Fridge(ctx, m.session.Token())
	if err != nil {
		return err
	}
	if seq < m.refreshSeq.Load() {
		// A later refresh has been initiated; this result is stale.
		logger.Debug("discarding superseded inventory refresh", zap.Uint64("seq", seq))
		return nil
	}

	m.items = fridge.Items
	m.prune()
	return nil
}

// prune drops metadata entries and selections whose ids are no longer
// present and persists the metadata map.
func (m *Model) prune() {
	ids := make(map[int]struct{}, len(m.items))
	for _, it := range m.items {
		ids[it.ID] = struct{}{}
	}
	for id := range m.metadata {
		if _, ok := ids[id]; !ok {
			delete(m.metadata, id)
		}
	}
	for id := range m.selected {
		if _, ok := ids[id]; !ok {
			delete(m.selected, id)
		}
	}
	m.persistMetadata()
}

func (m *Model) persistMetadata() {
	if err := m.store.Save(metadataFile, m.metadata); err != nil {
		logger.Error("failed to persist item metadata", zap.Error(err))
	}
}

// Add validates the request locally, creates the item on the server
// and attaches the supplied metadata to the new id. On failure no
// local item is created.
func (m *Model) Add(ctx context.Context, name string, quantity int, meta Metadata) (*api.FridgeItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("item name must not be empty")
	}
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}

	item, err := m.client.AddItem(ctx, m.session.Token(), name, quantity)
	if err != nil {
		return nil, err
	}

	m.metadata[item.ID] = meta
	m.persistMetadata()

	if err := m.Refresh(ctx); err != nil {
		return item, err
	}
	return item, nil
}

// SetQuantity applies the new quantity to the in-memory list
// immediately, then reconciles with the server. A requested quantity
// of zero or below removes the item locally right away. On any server
// error the optimistic state is discarded by refetching the
// authoritative list, and the error is returned.
func (m *Model) SetQuantity(ctx context.Context, id, quantity int) error {
	if quantity <= 0 {
		m.dropLocal(id)
	} else {
		for i := range m.items {
			if m.items[i].ID == id {
				m.items[i].Quantity = quantity
				break
			}
		}
	}

	item, err := m.client.SetItemQuantity(ctx, m.session.Token(), id, quantity)
	if err != nil {
		if rerr := m.Refresh(ctx); rerr != nil {
			logger.Warn("failed to reconcile after quantity error", zap.Error(rerr))
		}
		return err
	}

	if item == nil {
		// Server removed the item because its quantity reached zero.
		m.dropLocal(id)
		delete(m.metadata, id)
		delete(m.selected, id)
		m.persistMetadata()
	}
	return nil
}

// Increment raises an item's quantity by one.
func (m *Model) Increment(ctx context.Context, id int) error {
	qty, ok := m.quantityOf(id)
	if !ok {
		return fmt.Errorf("no item with id %d", id)
	}
	return m.SetQuantity(ctx, id, qty+1)
}

// Decrement lowers an item's quantity by one, removing it at zero.
func (m *Model) Decrement(ctx context.Context, id int) error {
	qty, ok := m.quantityOf(id)
	if !ok {
		return fmt.Errorf("no item with id %d", id)
	}
	return m.SetQuantity(ctx, id, qty-1)
}

func (m *Model) quantityOf(id int) (int, bool) {
	for _, it := range m.items {
		if it.ID == id {
			return it.Quantity, true
		}
	}
	return 0, false
}

func (m *Model) dropLocal(id int) {
	for i, it := range m.items {
		if it.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			break
		}
	}
}

// Remove deletes one item on the server, drops its metadata and
// refreshes.
func (m *Model) Remove(ctx context.Context, id int) error {
	if err := m.client.RemoveItem(ctx, m.session.Token(), id); err != nil {
		return err
	}
	delete(m.metadata, id)
	delete(m.selected, id)
	return m.Refresh(ctx)
}

// RemoveSelected removes the selected items one by one, stopping at
// the first failure. Items removed before the failure are not rolled
// back. The list is refreshed in either case.
func (m *Model) RemoveSelected(ctx context.Context) error {
	ids := make([]int, 0, len(m.selected))
	for id := range m.selected {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var removeErr error
	for _, id := range ids {
		if err := m.client.RemoveItem(ctx, m.session.Token(), id); err != nil {
			removeErr = err
			break
		}
		delete(m.metadata, id)
		delete(m.selected, id)
	}

	if err := m.Refresh(ctx); err != nil && removeErr == nil {
		removeErr = err
	}
	return removeErr
}

// Clear removes every item from the fridge.
func (m *Model) Clear(ctx context.Context) error {
	if err := m.client.ClearFridge(ctx, m.session.Token()); err != nil {
		return err
	}
	m.metadata = make(map[int]Metadata)
	m.selected = make(map[int]struct{})
	m.persistMetadata()
	return m.Refresh(ctx)
}

// Select marks an item for batch removal. Selecting an unknown id is
// an error.
func (m *Model) Select(id int) error {
	if _, ok := m.quantityOf(id); !ok {
		return fmt.Errorf("no item with id %d", id)
	}
	m.selected[id] = struct{}{}
	return nil
}

// Deselect unmarks an item.
func (m *Model) Deselect(id int) {
	delete(m.selected, id)
}

// ClearSelection empties the selection set.
func (m *Model) ClearSelection() {
	m.selected = make(map[int]struct{})
}

// Selected returns the selected ids in ascending order.
func (m *Model) Selected() []int {
	ids := make([]int, 0, len(m.selected))
	for id := range m.selected {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
