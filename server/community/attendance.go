package community

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// GetEventAttendance loads the roster of an event from the attendance service.
func (c *Client) GetEventAttendance(ctx context.Context, eventID string) ([]Person, error) {
	return c.getRoster(ctx, "/attendance/event/"+url.PathEscape(eventID))
}

// GetEventPeople loads the roster of an event through the community scoped endpoint.
func (c *Client) GetEventPeople(ctx context.Context, eventID string) ([]Person, error) {
	return c.getRoster(ctx, "/community/events/"+url.PathEscape(eventID)+"/people")
}

func (c *Client) getRoster(ctx context.Context, path string) ([]Person, error) {
	var raw json.RawMessage
	if err := c.Do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}

	people, err := decodeRoster(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode roster: %w", err)
	}
	return people, nil
}

// decodeRoster accepts both {"attendees": [...]} and a bare array.
func decodeRoster(raw json.RawMessage) ([]Person, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []Person{}, nil
	}

	if raw[0] == '[' {
		var people []Person
		if err := json.Unmarshal(raw, &people); err != nil {
			return nil, err
		}
		return people, nil
	}

	var resp rosterResp
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}
	if resp.Attendees == nil {
		return []Person{}, nil
	}
	return resp.Attendees, nil
}

// MarkMultiple marks all personIDs present for eventID in one call.
func (c *Client) MarkMultiple(ctx context.Context, eventID string, personIDs []string) error {
	return c.Do(ctx, http.MethodPost, "/attendance/mark-multiple", markMultipleReq{
		EventID:   eventID,
		PersonIDs: personIDs,
	}, nil)
}

// ToggleAttendance flips the presence of one person. The backend has no batch unmark.
func (c *Client) ToggleAttendance(ctx context.Context, eventID string, personID string) error {
	return c.Do(ctx, http.MethodPost, "/attendance/toggle", toggleReq{
		EventID:  eventID,
		PersonID: personID,
	}, nil)
}
