package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Storage keys. They mirror the browser front-end's localStorage layout,
// which is the persisted contract this file format replaces.
const (
	keyToken      = "token"
	keyUser       = "user"
	keyAuthorized = "isAuthorized"
)

// Store is a small persistent key-value record backed by a single JSON
// file. It holds the session credential and the serialized user across
// process restarts.
type Store struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// OpenStore loads the store from path, creating an empty one when the
// file does not exist. A corrupt file is treated as empty rather than an
// error so a damaged session file can never prevent startup.
func OpenStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("session store path is required")
	}

	s := &Store{
		path:   path,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	if err := json.Unmarshal(data, &s.values); err != nil {
		s.values = make(map[string]string)
	}
	return s, nil
}

// Get returns the value for key, or "" when absent.
func (s *Store) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

// Set stores key=value and persists the file.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.flush()
}

// Delete removes the given keys and persists the file.
func (s *Store) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.values, key)
	}
	return s.flush()
}

// Reset drops every stored value. Intended for tests and explicit
// credential clearing.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]string)
	return s.flush()
}

// Token implements cinemaguide.TokenSource: it yields the persisted
// bearer credential, or "" when the session is anonymous.
func (s *Store) Token() string {
	return s.Get(keyToken)
}

// flush writes the file. Caller must hold the mutex.
func (s *Store) flush() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session file: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create session directory: %w", err)
		}
	}

	// The file carries a credential; keep it private to the owner.
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}
