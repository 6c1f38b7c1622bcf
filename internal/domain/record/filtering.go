package record

import (
	"math"
	"strconv"
	"strings"

	"pr_tracker/internal/app"
)

// FilterAll is the distance filter value meaning "no filter"
const FilterAll = "all"

// ParseDistanceFilter interprets a distance filter value.
// Returns ok=false when the filter is unset, "all" (any case), or not a number,
// in which case every record passes.
func ParseDistanceFilter(filter *string) (distance float64, ok bool) {
	if filter == nil {
		return 0, false
	}

	v := strings.TrimSpace(*filter)
	if v == "" || strings.EqualFold(v, FilterAll) {
		return 0, false
	}

	d, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(d) {
		return 0, false
	}
	return d, true
}

// FilterByDistance returns records whose distance exactly equals the filter value.
// Pure function: No I/O, returns new slice without modifying input
func FilterByDistance(records []app.PersonalRecord, filter *string) []app.PersonalRecord {
	target, active := ParseDistanceFilter(filter)

	filtered := make([]app.PersonalRecord, 0, len(records))
	for _, r := range records {
		if !active || r.Distance == target {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Derive runs the filter stage followed by the sort stage
func Derive(records []app.PersonalRecord, filter *string, cfg *app.SortConfig) []app.PersonalRecord {
	return SortRecords(FilterByDistance(records, filter), cfg)
}
