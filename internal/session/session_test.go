package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore(t *testing.T) {
	t.Run("FreshDirectory", func(t *testing.T) {
		s := Open(t.TempDir())
		if s.Authed() {
			t.Error("Expected a fresh store to be signed out")
		}
		if s.Loading() {
			t.Error("Expected Loading to be false after Open")
		}
	})

	t.Run("LoginPersists", func(t *testing.T) {
		dir := t.TempDir()
		s := Open(dir)
		if err := s.Login("abc123"); err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if !s.Authed() {
			t.Error("Expected store to be authenticated after login")
		}
		if s.Token() != "abc123" {
			t.Errorf("Expected token 'abc123', got '%s'", s.Token())
		}

		// A second store over the same directory sees the token.
		s2 := Open(dir)
		if s2.Token() != "abc123" {
			t.Errorf("Expected persisted token 'abc123', got '%s'", s2.Token())
		}
	})

	t.Run("LogoutClears", func(t *testing.T) {
		dir := t.TempDir()
		s := Open(dir)
		if err := s.Login("abc123"); err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if err := s.Logout(); err != nil {
			t.Fatalf("Logout failed: %v", err)
		}
		if s.Authed() {
			t.Error("Expected store to be signed out after logout")
		}
		if _, err := os.Stat(filepath.Join(dir, "token")); !os.IsNotExist(err) {
			t.Error("Expected token file to be removed after logout")
		}

		// Logout when already signed out is not an error.
		if err := s.Logout(); err != nil {
			t.Errorf("Expected idempotent logout, got %v", err)
		}
	})

	t.Run("TrimsWhitespace", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "token"), []byte("abc123\n"), 0600); err != nil {
			t.Fatalf("Failed to write token file: %v", err)
		}
		s := Open(dir)
		if s.Token() != "abc123" {
			t.Errorf("Expected token 'abc123', got '%s'", s.Token())
		}
	})
}
