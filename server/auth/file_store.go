package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type fileSession struct {
	Token     string    `json:"token"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewFileStore stores the token as JSON at path. The file is created with 0600 permissions.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

type FileStore struct {
	mu   sync.Mutex
	path string
}

func (s *FileStore) Get(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("failed to read session file: %w", err)
	}

	var session fileSession
	if err = json.Unmarshal(data, &session); err != nil {
		return "", fmt.Errorf("failed to decode session file: %w", err)
	}
	if session.Token == "" {
		return "", ErrNoToken
	}
	return session.Token, nil
}

func (s *FileStore) Set(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.Marshal(fileSession{
		Token:     token,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode session file: %w", err)
	}

	if err = os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
