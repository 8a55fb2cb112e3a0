package auth

import (
	"context"
	"sync"
)

// MemoryUserStore is an in-memory UserStore for tests and
// database-less deployments.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewMemoryUserStore constructs a store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]User)}
}

// Create stores a new user.
func (s *MemoryUserStore) Create(ctx context.Context, user User) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.Username]; exists {
		return ErrUsernameTaken
	}
	s.users[user.Username] = user
	return nil
}

// Get loads a user by username.
func (s *MemoryUserStore) Get(ctx context.Context, username string) (*User, error) {
	_ = ctx
	s.mu.RLock()
	user, ok := s.users[username]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}
