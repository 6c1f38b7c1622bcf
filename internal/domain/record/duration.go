package record

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"pr_tracker/internal/app"
)

const dateLayout = "2006-01-02"

// ParseDuration converts "HH:MM:SS", "MM:SS" or "SS" into total seconds.
// Malformed input yields NaN, which callers must propagate rather than coerce to zero.
// Pure function: No I/O, deterministic output from input
func ParseDuration(s string) float64 {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return math.NaN()
	}

	total := 0.0
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return math.NaN()
		}
		total = total*60 + v
	}
	return total
}

// ParseDate converts a YYYY-MM-DD calendar date (or an RFC 3339 timestamp) into Unix seconds.
// Returns NaN when the value cannot be parsed.
func ParseDate(s string) float64 {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return float64(t.Unix())
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return float64(t.Unix())
	}
	return math.NaN()
}

// FormatDuration renders seconds as H:MM:SS, or MM:SS under an hour.
// NaN and negative values render as "-".
func FormatDuration(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return "-"
	}

	total := int64(math.Round(seconds))
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// Pace returns seconds per kilometer, or NaN when time is unparsable or distance is not positive
func Pace(r app.PersonalRecord) float64 {
	if r.Distance <= 0 {
		return math.NaN()
	}
	return ParseDuration(r.Time) / r.Distance
}
