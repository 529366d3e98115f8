// Package session holds the client-side session state: the persisted
// (token, user) pair, entitlement math over the cached user record, and the
// refresh policy that reconciles the cache with the server.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/wkwunju/moreach-sub001/pkg/domain"
)

// Storage keys. The store owns exactly these two entries.
const (
	tokenKey = "token"
	userKey  = "user"
)

// KV is the storage medium underneath the session store. Implementations
// must make Get/Set/Delete individually atomic; the store requires nothing
// more. Get returns false for a missing key and never errors.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// FileKV stores each key as a file inside a directory, the same way the
// CLI has always kept its token on disk.
type FileKV struct {
	dir string
}

// NewFileKV creates the directory (0700) if needed and returns a file-backed KV.
func NewFileKV(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileKV{dir: dir}, nil
}

// Get reads the value for key. Missing or unreadable files are "absent".
func (f *FileKV) Get(key string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(f.dir, key))
	if err != nil {
		return "", false
	}
	v := strings.TrimSpace(string(data))
	if v == "" {
		return "", false
	}
	return v, true
}

// Set writes the value for key with 0600 permissions.
func (f *FileKV) Set(key, value string) error {
	return os.WriteFile(filepath.Join(f.dir, key), []byte(value), 0600)
}

// Delete removes the key's file. Deleting a missing key is a no-op.
func (f *FileKV) Delete(key string) error {
	err := os.Remove(filepath.Join(f.dir, key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MemKV is an in-memory KV for tests.
type MemKV struct {
	mu sync.Mutex
	m  map[string]string
}

// NewMemKV returns an empty in-memory KV.
func NewMemKV() *MemKV {
	return &MemKV{m: make(map[string]string)}
}

// Get returns the value for key.
func (m *MemKV) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.m[key]
	return v, ok
}

// Set stores the value for key.
func (m *MemKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.m[key] = value
	return nil
}

// Delete removes the key.
func (m *MemKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.m, key)
	return nil
}

// Store is the canonical owner of the persisted session. Everything else
// reads snapshots from it and routes mutations back through Write/Clear.
type Store struct {
	kv KV
}

// NewStore wraps a KV medium.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Token returns the stored bearer token, if any. Never errors.
func (s *Store) Token() (string, bool) {
	return s.kv.Get(tokenKey)
}

// User returns the cached user record, or nil when none is stored or the
// stored payload is malformed. Corruption degrades to "no session" rather
// than surfacing an error; unknown fields are ignored.
func (s *Store) User() *domain.User {
	raw, ok := s.kv.Get(userKey)
	if !ok {
		return nil
	}
	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil
	}
	return &u
}

// Write stores the token and user record together. The user entry is
// written first so a token is never observable without its record already
// durable.
func (s *Store) Write(token string, u *domain.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := s.kv.Set(userKey, string(data)); err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	if err := s.kv.Set(tokenKey, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// Clear removes both entries. Clearing an empty store is a no-op.
func (s *Store) Clear() {
	// Token first: dropping it immediately revokes IsAuthenticated.
	_ = s.kv.Delete(tokenKey) //nolint:errcheck // best-effort teardown
	_ = s.kv.Delete(userKey)  //nolint:errcheck
}

// IsAuthenticated reports whether a token is stored. The cached user is
// deliberately not consulted: it is a cache, not proof of identity.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.Token()
	return ok
}
