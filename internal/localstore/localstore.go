package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"yumyum/internal/logger"
)

// Store provides file-based storage for the client-owned state: item
// metadata, the meal plan, calendar notes and the seeding flag. Each
// document is a single JSON file under the base directory.
type Store struct {
	basePath string
}

// New creates a new Store and ensures the base directory exists.
func New(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &Store{basePath: basePath}, nil
}

// Path returns the full path for a named document.
func (s *Store) Path(name string) string {
	return filepath.Join(s.basePath, name)
}

// Load reads a JSON document into v. A missing file or an unparsable
// body leaves v untouched and returns false; neither is an error to
// the caller. Parse failures are logged.
func (s *Store) Load(name string, v interface{}) bool {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		logger.Warn("discarding unparsable local state",
			zap.String("document", name), zap.Error(err))
		return false
	}
	return true
}

// Save writes v as a JSON document, replacing any previous content.
func (s *Store) Save(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	if err := os.WriteFile(s.Path(name), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// Delete removes a document. Deleting a document that does not exist
// is not an error.
func (s *Store) Delete(name string) error {
	if err := os.Remove(s.Path(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	return nil
}

// Flag reports whether a marker file is set.
func (s *Store) Flag(name string) bool {
	_, err := os.Stat(s.Path(name))
	return !os.IsNotExist(err)
}

// SetFlag creates a marker file.
func (s *Store) SetFlag(name string) error {
	if err := os.WriteFile(s.Path(name), []byte("1"), 0644); err != nil {
		return fmt.Errorf("failed to set flag %s: %w", name, err)
	}
	return nil
}
