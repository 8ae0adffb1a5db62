package community

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
)

func (c *Client) GetEvent(ctx context.Context, eventID string) (*Event, error) {
	slog.DebugContext(ctx, "Fetching event", slog.String("event_id", eventID))

	var event Event
	if err := c.Do(ctx, http.MethodGet, "/community/events/"+url.PathEscape(eventID), nil, &event); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (c *Client) ListEvents(ctx context.Context) ([]Event, error) {
	var events []Event
	if err := c.Do(ctx, http.MethodGet, "/community/events", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetCheckStatus reports whether the logged in user already checked into eventID.
func (c *Client) GetCheckStatus(ctx context.Context, eventID string) (*CheckStatus, error) {
	var status CheckStatus
	if err := c.Do(ctx, http.MethodGet, "/community/events/"+url.PathEscape(eventID)+"/check-status", nil, &status); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &status, nil
}

func (c *Client) CheckIn(ctx context.Context, eventID string) error {
	if err := c.Do(ctx, http.MethodPost, "/community/events/"+url.PathEscape(eventID)+"/checkin", nil, nil); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	return nil
}
