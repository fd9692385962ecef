// Package session holds the client-side view of the current login: a
// non-authoritative mirror of the identity the server put in the session
// token, plus the guard that gates rendering of protected views. Nothing
// in this package carries authority; the server re-checks every
// privileged request against the token itself.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"sync"

	"storefront/api/internal/models"
)

// MirrorKey is the local-store key the mirror lives under.
const MirrorKey = "user"

var ErrNoSession = errors.New("no stored session")

// Mirror is the client-held copy of {id, email, role, name}. It drives
// UI gating only and is never sent to the server as a credential.
type Mirror struct {
	ID      string      `json:"id"`
	Email   string      `json:"email"`
	Role    models.Role `json:"role"`
	Name    string      `json:"name"`
	Phone   string      `json:"phone,omitempty"`
	Address string      `json:"address,omitempty"`
}

// Store is the local keyed storage the mirror persists in. Load returns
// ErrNoSession when the key is absent; a malformed stored value also
// reports ErrNoSession so the guard degrades to the login redirect.
type Store interface {
	Load() (Mirror, error)
	Save(Mirror) error
	Clear() error
}

// MemoryStore keeps the mirror in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	mirror *Mirror
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (Mirror, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mirror == nil {
		return Mirror{}, ErrNoSession
	}
	return *s.mirror, nil
}

func (s *MemoryStore) Save(m Mirror) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mirror = &m
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mirror = nil
	return nil
}

// FileStore persists the mirror as a single JSON object keyed by
// MirrorKey, surviving client restarts the way browser local storage
// does.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (Mirror, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return Mirror{}, ErrNoSession
	}

	var payload map[string]Mirror
	if err := json.Unmarshal(data, &payload); err != nil {
		return Mirror{}, ErrNoSession
	}

	mirror, ok := payload[MirrorKey]
	if !ok || mirror.ID == "" {
		return Mirror{}, ErrNoSession
	}
	return mirror, nil
}

func (s *FileStore) Save(m Mirror) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(map[string]Mirror{MirrorKey: m})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
