package attendance

import (
	"fmt"
)

// RosterSource selects the endpoint a roster is loaded from.
type RosterSource string

const (
	// RosterSourceAttendance loads from GET /attendance/event/{event_id}.
	RosterSourceAttendance RosterSource = "attendance"
	// RosterSourceCommunity loads from GET /community/events/{event_id}/people.
	RosterSourceCommunity RosterSource = "community"
)

type Config struct {
	RosterSource      RosterSource `toml:"roster_source"`
	UnmarkConcurrency int          `toml:"unmark_concurrency"`
}

func (c Config) String() string {
	return fmt.Sprintf("\n RosterSource: %s\n UnmarkConcurrency: %d",
		c.RosterSource,
		c.UnmarkConcurrency,
	)
}
