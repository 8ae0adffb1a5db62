package community

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrEventNotFound      = fmt.Errorf("event %w", ErrNotFound)
	ErrSessionExpired     = errors.New("session expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// StatusError is returned for non 2xx responses that have no more specific error.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s failed with status code: %d", e.Method, e.Path, e.StatusCode)
}
