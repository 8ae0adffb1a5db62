package auth

import (
	"context"
	"errors"
	"sync"
)

var ErrNoToken = errors.New("no session token")

// Store holds the bearer token of the single active session of a device.
// Get returns ErrNoToken when no token is stored.
type Store interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

type MemoryStore struct {
	mu    sync.Mutex
	token string
}

func (s *MemoryStore) Get(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" {
		return "", ErrNoToken
	}
	return s.token, nil
}

func (s *MemoryStore) Set(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	return nil
}
