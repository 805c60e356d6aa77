package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"yumyum/internal/logger"
)

const tokenFile = "token"

// Store holds the opaque authentication token for the current user and
// persists it across runs. All other components treat the token as
// read-only input; only Login and Logout mutate it.
type Store struct {
	path    string
	token   string
	loading bool
}

// Open creates a Store backed by a token file in dir and performs the
// one-time read of persisted state. A missing file means signed-out; a
// read failure is logged and treated the same way.
func Open(dir string) *Store {
	s := &Store{path: filepath.Join(dir, tokenFile), loading: true}

	data, err := os.ReadFile(s.path)
	if err == nil {
		s.token = strings.TrimSpace(string(data))
	} else if !os.IsNotExist(err) {
		logger.Warn("failed to read persisted session", zap.Error(err))
	}
	s.loading = false
	return s
}

// Login persists the token and marks the session authenticated.
func (s *Store) Login(token string) error {
	if err := os.WriteFile(s.path, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to persist session token: %w", err)
	}
	s.token = token
	return nil
}

// Logout clears the token and its persisted copy.
func (s *Store) Logout() error {
	s.token = ""
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear persisted session token: %w", err)
	}
	return nil
}

// Token returns the current token, or the empty string when signed out.
func (s *Store) Token() string {
	return s.token
}

// Authed reports whether a token is present.
func (s *Store) Authed() bool {
	return s.token != ""
}

// Loading reports whether the initial read of persisted state is still
// in progress. It is true only during Open, then permanently false.
func (s *Store) Loading() bool {
	return s.loading
}
