package record

import (
	"cmp"
	"math"
	"sort"

	"pr_tracker/internal/app"
)

// SortRecords returns a new slice ordered by cfg; a nil cfg keeps the input order.
// Records whose sort value is unparsable are placed last in both directions.
// Pure function: Does not modify input slice, returns new sorted slice
func SortRecords(records []app.PersonalRecord, cfg *app.SortConfig) []app.PersonalRecord {
	sorted := make([]app.PersonalRecord, len(records))
	copy(sorted, records)

	if cfg == nil {
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return CompareRecords(sorted[i], sorted[j], *cfg) < 0
	})

	return sorted
}

// CompareRecords orders two records under cfg.
// NaN values compare equal to each other and after every valid value, regardless of direction.
func CompareRecords(a, b app.PersonalRecord, cfg app.SortConfig) int {
	av := sortValue(a, cfg.Key)
	bv := sortValue(b, cfg.Key)

	aNaN, bNaN := math.IsNaN(av), math.IsNaN(bv)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	}

	c := cmp.Compare(av, bv)
	if cfg.Direction == app.Descending {
		return -c
	}
	return c
}

func sortValue(r app.PersonalRecord, key app.SortKey) float64 {
	switch key {
	case app.SortByTime:
		return ParseDuration(r.Time)
	case app.SortByDate:
		return ParseDate(r.Date)
	case app.SortByDistance:
		return r.Distance
	default:
		// unknown keys leave the order untouched
		return 0
	}
}

// NextSortConfig computes the sort configuration after a sort request.
// Requesting the active key flips its direction, a new key starts ascending,
// and an explicit direction always wins.
func NextSortConfig(current *app.SortConfig, key app.SortKey, explicit *app.SortDirection) *app.SortConfig {
	direction := app.Ascending

	switch {
	case explicit != nil:
		direction = *explicit
	case current != nil && current.Key == key && current.Direction == app.Ascending:
		direction = app.Descending
	}

	return &app.SortConfig{Key: key, Direction: direction}
}
