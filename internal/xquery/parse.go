package xquery

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/topi314/church-tools/internal/xstrconv"
)

func ParseBool(query url.Values, name string, defaultValue bool) bool {
	value := query.Get(name)
	if value == "" {
		return defaultValue
	}

	parsed, err := xstrconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// ParseInt parses name and clamps it into [minValue, maxValue].
func ParseInt(query url.Values, name string, defaultValue int, minValue int, maxValue int) int {
	value := query.Get(name)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return min(max(parsed, minValue), maxValue)
}

func ParseString(query url.Values, name string, defaultValue string) string {
	value := strings.TrimSpace(query.Get(name))
	if value == "" {
		return defaultValue
	}
	return value
}
