package record

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"pr_tracker/internal/app"
)

// ErrMissingField is returned when a record lacks a field required at entry time
var ErrMissingField = errors.New("missing required field")

// ValidateForEntry checks that a new record carries every field a user must supply.
// Only presence is checked; the time and date formats are not validated.
func ValidateForEntry(r app.PersonalRecord) error {
	if r.Distance <= 0 || math.IsNaN(r.Distance) || math.IsInf(r.Distance, 0) {
		return fmt.Errorf("%w: distance must be a positive finite number", ErrMissingField)
	}
	if strings.TrimSpace(r.Time) == "" {
		return fmt.Errorf("%w: time", ErrMissingField)
	}
	if strings.TrimSpace(r.Date) == "" {
		return fmt.Errorf("%w: date", ErrMissingField)
	}
	return nil
}

// Distances returns the distinct distances present in records, ascending
func Distances(records []app.PersonalRecord) []float64 {
	seen := make(map[float64]bool)
	var distances []float64
	for _, r := range records {
		if !seen[r.Distance] {
			seen[r.Distance] = true
			distances = append(distances, r.Distance)
		}
	}
	sort.Float64s(distances)
	return distances
}

// BestByDistance returns the fastest record for each distance, ordered by distance.
// Records with an unparsable time never count as a best; ties keep the earliest entry.
func BestByDistance(records []app.PersonalRecord) []app.PersonalRecord {
	best := make(map[float64]app.PersonalRecord)
	bestSeconds := make(map[float64]float64)

	for _, r := range records {
		seconds := ParseDuration(r.Time)
		if math.IsNaN(seconds) {
			continue
		}
		if current, exists := bestSeconds[r.Distance]; exists && current <= seconds {
			continue
		}
		best[r.Distance] = r
		bestSeconds[r.Distance] = seconds
	}

	result := make([]app.PersonalRecord, 0, len(best))
	for _, r := range best {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Distance < result[j].Distance
	})
	return result
}
