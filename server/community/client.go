package community

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/topi314/church-tools/server/auth"
)

const maxErrorBodySize = 64 << 10

// NewFactory returns a Factory whose clients share httpClient and one rate limiter.
func NewFactory(cfg Config, httpClient *http.Client) *Factory {
	hc := &http.Client{}
	if httpClient != nil {
		*hc = *httpClient
	}
	if hc.Timeout == 0 {
		hc.Timeout = cfg.Timeout.OrDefault(15 * time.Second)
	}

	limit := rate.Inf
	if cfg.Every > 0 {
		limit = rate.Every(cfg.Every.Std())
	}

	return &Factory{
		cfg:        cfg,
		httpClient: hc,
		limiter:    rate.NewLimiter(limit, max(cfg.Burst, 1)),
	}
}

type Factory struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Client returns a client that authenticates with the token held by store.
func (f *Factory) Client(store auth.Store) *Client {
	base := f.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	return &Client{
		cfg:   f.cfg,
		store: store,
		httpClient: &http.Client{
			Transport: &oauth2.Transport{
				Source: auth.TokenSource(store),
				Base:   base,
			},
			CheckRedirect: f.httpClient.CheckRedirect,
			Jar:           f.httpClient.Jar,
			Timeout:       f.httpClient.Timeout,
		},
		publicClient: f.httpClient,
		limiter:      f.limiter,
	}
}

type Client struct {
	cfg          Config
	store        auth.Store
	httpClient   *http.Client
	publicClient *http.Client
	limiter      *rate.Limiter
}

// Do sends an authenticated JSON request. body and v may be nil.
// A 401 response clears the session store and returns ErrSessionExpired.
func (c *Client) Do(ctx context.Context, method string, path string, body any, v any) error {
	return c.do(ctx, c.httpClient, true, method, path, body, v)
}

func (c *Client) doPublic(ctx context.Context, method string, path string, body any, v any) error {
	return c.do(ctx, c.publicClient, false, method, path, body, v)
}

func (c *Client) do(ctx context.Context, httpClient *http.Client, authenticated bool, method string, path string, body any, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var rqBody io.Reader
	if body != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		rqBody = buf
	}

	rq, err := http.NewRequestWithContext(ctx, method, strings.TrimSuffix(c.cfg.BaseURL, "/")+path, rqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	rq.Header.Set("Accept", "application/json")
	if body != nil {
		rq.Header.Set("Content-Type", "application/json")
	}

	rs, err := httpClient.Do(rq)
	if err != nil {
		if errors.Is(err, auth.ErrNoToken) {
			return ErrSessionExpired
		}
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer rs.Body.Close()

	if rs.StatusCode == http.StatusUnauthorized {
		if !authenticated {
			return ErrInvalidCredentials
		}
		slog.InfoContext(ctx, "Session expired, clearing token", slog.String("method", method), slog.String("path", path))
		if err = c.store.Clear(ctx); err != nil {
			slog.ErrorContext(ctx, "Failed to clear session token", slog.Any("err", err))
		}
		return ErrSessionExpired
	}

	if rs.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	}

	if rs.StatusCode < 200 || rs.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(rs.Body, maxErrorBodySize))
		slog.ErrorContext(ctx, "Community request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status_code", rs.StatusCode),
			slog.String("response", string(data)),
		)
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: rs.StatusCode,
			Body:       string(data),
		}
	}

	if v == nil {
		return nil
	}

	logBuf := new(bytes.Buffer)
	bodyReader := io.TeeReader(rs.Body, logBuf)

	if err = json.NewDecoder(bodyReader).Decode(v); err != nil {
		slog.ErrorContext(ctx, "Failed to decode response", slog.String("path", path), slog.String("response", logBuf.String()), slog.Any("err", err))
		return fmt.Errorf("failed to decode response: %w", err)
	}
	slog.DebugContext(ctx, "Community request done", slog.String("method", method), slog.String("path", path), slog.String("response", logBuf.String()))

	return nil
}
