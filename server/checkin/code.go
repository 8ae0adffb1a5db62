package checkin

import (
	"encoding/json"
	"regexp"
	"strings"
)

var eventIDPattern = regexp.MustCompile(`^[a-f0-9-]{36}$`)

type codePayload struct {
	EventID string `json:"eventId"`
}

// ParseCode extracts the event id from a scanned code. A JSON object with a string
// "eventId" wins, otherwise the code itself is used when it looks like a lower case UUID.
func ParseCode(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)

	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err == nil {
		if eventID, ok := payload["eventId"].(string); ok && eventID != "" {
			return eventID, true
		}
	}

	if eventIDPattern.MatchString(raw) {
		return raw, true
	}
	return "", false
}

// EncodeCode returns the payload ParseCode reads back as eventID.
func EncodeCode(eventID string) string {
	data, _ := json.Marshal(codePayload{EventID: eventID})
	return string(data)
}
