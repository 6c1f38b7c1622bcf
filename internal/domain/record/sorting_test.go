package record

import (
	"testing"

	"pr_tracker/internal/app"
)

func times(records []app.PersonalRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Time
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSortRecords_TimeWithMalformedLast(t *testing.T) {
	records := []app.PersonalRecord{
		{ID: "1", Time: "10:00"},
		{ID: "2", Time: "bad"},
		{ID: "3", Time: "05:00"},
	}

	tests := []struct {
		name      string
		direction app.SortDirection
		expected  []string
	}{
		{name: "ascending", direction: app.Ascending, expected: []string{"05:00", "10:00", "bad"}},
		{name: "descending", direction: app.Descending, expected: []string{"10:00", "05:00", "bad"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sorted := SortRecords(records, &app.SortConfig{Key: app.SortByTime, Direction: tt.direction})
			if got := times(sorted); !equalStrings(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSortRecords_Date(t *testing.T) {
	records := []app.PersonalRecord{
		{ID: "5k", Distance: 5, Time: "00:25:00", Date: "2024-01-01"},
		{ID: "10k", Distance: 10, Time: "00:50:00", Date: "2024-01-15"},
		{ID: "undated", Distance: 3, Time: "00:14:00", Date: "someday"},
	}

	desc := SortRecords(records, &app.SortConfig{Key: app.SortByDate, Direction: app.Descending})
	if desc[0].ID != "10k" || desc[1].ID != "5k" || desc[2].ID != "undated" {
		t.Errorf("Expected [10k 5k undated], got [%s %s %s]", desc[0].ID, desc[1].ID, desc[2].ID)
	}

	asc := SortRecords(records, &app.SortConfig{Key: app.SortByDate, Direction: app.Ascending})
	if asc[0].ID != "5k" || asc[1].ID != "10k" || asc[2].ID != "undated" {
		t.Errorf("Expected [5k 10k undated], got [%s %s %s]", asc[0].ID, asc[1].ID, asc[2].ID)
	}
}

func TestSortRecords_Distance(t *testing.T) {
	records := []app.PersonalRecord{
		{ID: "half", Distance: 21.0975},
		{ID: "5k", Distance: 5},
		{ID: "10k", Distance: 10},
	}

	sorted := SortRecords(records, &app.SortConfig{Key: app.SortByDistance, Direction: app.Ascending})
	if sorted[0].ID != "5k" || sorted[1].ID != "10k" || sorted[2].ID != "half" {
		t.Errorf("Expected [5k 10k half], got [%s %s %s]", sorted[0].ID, sorted[1].ID, sorted[2].ID)
	}
}

func TestSortRecords_MalformedKeepRelativeOrder(t *testing.T) {
	records := []app.PersonalRecord{
		{ID: "bad1", Time: "x"},
		{ID: "ok", Time: "01:00"},
		{ID: "bad2", Time: "y"},
	}

	for _, direction := range []app.SortDirection{app.Ascending, app.Descending} {
		sorted := SortRecords(records, &app.SortConfig{Key: app.SortByTime, Direction: direction})
		if sorted[0].ID != "ok" || sorted[1].ID != "bad1" || sorted[2].ID != "bad2" {
			t.Errorf("%s: expected [ok bad1 bad2], got [%s %s %s]", direction, sorted[0].ID, sorted[1].ID, sorted[2].ID)
		}
	}
}

func TestSortRecords_NilConfigKeepsOrder(t *testing.T) {
	records := []app.PersonalRecord{{ID: "b"}, {ID: "a"}, {ID: "c"}}

	sorted := SortRecords(records, nil)

	for i := range records {
		if sorted[i].ID != records[i].ID {
			t.Errorf("Expected order preserved, got %v", sorted)
		}
	}
}

func TestSortRecords_DoesNotModifyInput(t *testing.T) {
	records := []app.PersonalRecord{{Time: "10:00"}, {Time: "05:00"}}

	SortRecords(records, &app.SortConfig{Key: app.SortByTime, Direction: app.Ascending})

	if records[0].Time != "10:00" {
		t.Errorf("Original slice was modified")
	}
}

func TestSortRecords_EmptySlice(t *testing.T) {
	sorted := SortRecords([]app.PersonalRecord{}, &app.SortConfig{Key: app.SortByDate, Direction: app.Ascending})

	if len(sorted) != 0 {
		t.Errorf("Expected empty slice, got %d items", len(sorted))
	}
}

func TestCompareRecords(t *testing.T) {
	valid := app.PersonalRecord{Time: "10:00"}
	faster := app.PersonalRecord{Time: "09:00"}
	invalid := app.PersonalRecord{Time: "bad"}

	tests := []struct {
		name      string
		a, b      app.PersonalRecord
		direction app.SortDirection
		sign      int
	}{
		{"both invalid", invalid, invalid, app.Ascending, 0},
		{"invalid after valid asc", invalid, valid, app.Ascending, 1},
		{"invalid after valid desc", invalid, valid, app.Descending, 1},
		{"valid before invalid desc", valid, invalid, app.Descending, -1},
		{"faster first asc", faster, valid, app.Ascending, -1},
		{"faster last desc", faster, valid, app.Descending, 1},
		{"equal", valid, valid, app.Descending, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CompareRecords(tt.a, tt.b, app.SortConfig{Key: app.SortByTime, Direction: tt.direction})
			if sign(result) != tt.sign {
				t.Errorf("Expected sign %d, got %d", tt.sign, result)
			}
		})
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

func TestNextSortConfig(t *testing.T) {
	asc := app.Ascending
	desc := app.Descending

	tests := []struct {
		name     string
		current  *app.SortConfig
		key      app.SortKey
		explicit *app.SortDirection
		expected app.SortConfig
	}{
		{
			name:     "first request starts ascending",
			current:  nil,
			key:      app.SortByTime,
			expected: app.SortConfig{Key: app.SortByTime, Direction: app.Ascending},
		},
		{
			name:     "same key flips to descending",
			current:  &app.SortConfig{Key: app.SortByTime, Direction: app.Ascending},
			key:      app.SortByTime,
			expected: app.SortConfig{Key: app.SortByTime, Direction: app.Descending},
		},
		{
			name:     "same key flips back to ascending",
			current:  &app.SortConfig{Key: app.SortByTime, Direction: app.Descending},
			key:      app.SortByTime,
			expected: app.SortConfig{Key: app.SortByTime, Direction: app.Ascending},
		},
		{
			name:     "new key resets to ascending",
			current:  &app.SortConfig{Key: app.SortByTime, Direction: app.Descending},
			key:      app.SortByDate,
			expected: app.SortConfig{Key: app.SortByDate, Direction: app.Ascending},
		},
		{
			name:     "explicit direction wins on same key",
			current:  &app.SortConfig{Key: app.SortByDate, Direction: app.Descending},
			key:      app.SortByDate,
			explicit: &desc,
			expected: app.SortConfig{Key: app.SortByDate, Direction: app.Descending},
		},
		{
			name:     "explicit direction wins on new key",
			current:  &app.SortConfig{Key: app.SortByDate, Direction: app.Ascending},
			key:      app.SortByDistance,
			explicit: &desc,
			expected: app.SortConfig{Key: app.SortByDistance, Direction: app.Descending},
		},
		{
			name:     "explicit ascending on active ascending key",
			current:  &app.SortConfig{Key: app.SortByDistance, Direction: app.Ascending},
			key:      app.SortByDistance,
			explicit: &asc,
			expected: app.SortConfig{Key: app.SortByDistance, Direction: app.Ascending},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NextSortConfig(tt.current, tt.key, tt.explicit)
			if result == nil || *result != tt.expected {
				t.Errorf("Expected %+v, got %+v", tt.expected, result)
			}
		})
	}
}
