package community

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/topi314/church-tools/server/auth"
)

// Photo is an open image download. Body must be closed.
type Photo struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// OpenPhoto downloads an uploaded person photo by its path below /uploads.
func (c *Client) OpenPhoto(ctx context.Context, name string) (*Photo, error) {
	name = strings.TrimPrefix(name, "/")
	if name == "" || strings.Contains(name, "..") {
		return nil, fmt.Errorf("photo %q: %w", name, ErrNotFound)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/uploads/" + (&url.URL{Path: name}).EscapedPath()
	rq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	rs, err := c.httpClient.Do(rq)
	if err != nil {
		if errors.Is(err, auth.ErrNoToken) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	switch {
	case rs.StatusCode == http.StatusOK:
		return &Photo{
			Body:          rs.Body,
			ContentType:   rs.Header.Get("Content-Type"),
			ContentLength: rs.ContentLength,
		}, nil
	case rs.StatusCode == http.StatusUnauthorized:
		_ = rs.Body.Close()
		_ = c.store.Clear(ctx)
		return nil, ErrSessionExpired
	case rs.StatusCode == http.StatusNotFound:
		_ = rs.Body.Close()
		return nil, fmt.Errorf("photo %q: %w", name, ErrNotFound)
	default:
		_ = rs.Body.Close()
		return nil, &StatusError{
			Method:     http.MethodGet,
			Path:       "/uploads/" + name,
			StatusCode: rs.StatusCode,
		}
	}
}
