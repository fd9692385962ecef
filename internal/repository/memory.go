package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"storefront/api/internal/models"
)

// MemoryStore is the in-memory CredentialStore used by tests and by the
// development mode that runs without postgres. The mutex covers the
// lookup-and-insert in Insert, which keeps the per-email uniqueness
// guarantee under concurrent registration.
type MemoryStore struct {
	mu      sync.Mutex
	users   map[string]models.User
	byEmail map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[string]models.User),
		byEmail: make(map[string]string),
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[emailKey(email)]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return s.users[id], nil
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

func (s *MemoryStore) Insert(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := emailKey(user.Email)
	if _, exists := s.byEmail[key]; exists {
		return ErrEmailTaken
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = user
	s.byEmail[key] = user.ID
	return nil
}

func (s *MemoryStore) UpdatePassword(_ context.Context, id string, passwordHash []byte) error {
	return s.update(id, func(u *models.User) {
		u.PasswordHash = passwordHash
	})
}

func (s *MemoryStore) UpdateRole(_ context.Context, id string, role models.Role) error {
	return s.update(id, func(u *models.User) {
		u.Role = role
	})
}

func (s *MemoryStore) UpdateActive(_ context.Context, id string, active bool) error {
	return s.update(id, func(u *models.User) {
		u.Active = active
	})
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return ErrUserNotFound
	}
	delete(s.users, id)
	delete(s.byEmail, emailKey(user.Email))
	return nil
}

func (s *MemoryStore) List(_ context.Context, limit, offset int) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})

	if offset >= len(users) {
		return nil, nil
	}
	users = users[offset:]
	if limit < len(users) {
		users = users[:limit]
	}
	return users, nil
}

func (s *MemoryStore) update(id string, apply func(*models.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return ErrUserNotFound
	}
	apply(&user)
	user.UpdatedAt = time.Now()
	s.users[id] = user
	return nil
}
