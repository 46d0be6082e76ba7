package api

import (
	"fmt"
	"strings"
	"time"
)

// Response represents the top-level Al Adhan API response, reduced to the
// fast-boundary timings this tool compares against.
type Response struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   Data   `json:"data"`
}

// Data holds the prayer timings and metadata.
type Data struct {
	Timings Timings `json:"timings"`
	Meta    Meta    `json:"meta"`
}

// Timings contains the fast-boundary times as HH:MM strings.
// The API may include a timezone suffix like " (WIB)" which we strip during parsing.
type Timings struct {
	Imsak   string `json:"Imsak"`
	Fajr    string `json:"Fajr"`
	Maghrib string `json:"Maghrib"`
}

// Meta contains request metadata returned by the API.
type Meta struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// ParseClock parses a timing string like "04:41" or "04:41 (WIB)" into a
// time.Time on the given date in the given location.
func ParseClock(raw string, date time.Time, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if idx := strings.Index(s, " "); idx != -1 {
		s = s[:idx]
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("invalid time format: %q", raw)
	}

	var hour, min int
	if _, err := fmt.Sscanf(parts[0], "%d", &hour); err != nil {
		return time.Time{}, fmt.Errorf("invalid hour in %q: %w", raw, err)
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &min); err != nil {
		return time.Time{}, fmt.Errorf("invalid minute in %q: %w", raw, err)
	}

	return time.Date(date.Year(), date.Month(), date.Day(), hour, min, 0, 0, loc), nil
}
