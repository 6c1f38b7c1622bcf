package record

import (
	"testing"

	"pr_tracker/internal/app"
)

func strPtr(s string) *string { return &s }

func TestFilterByDistance(t *testing.T) {
	records := []app.PersonalRecord{
		{ID: "a", Distance: 5},
		{ID: "b", Distance: 10},
		{ID: "c", Distance: 10},
	}

	result := FilterByDistance(records, strPtr("10"))

	if len(result) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(result))
	}
	for _, r := range result {
		if r.Distance != 10 {
			t.Errorf("Expected distance 10, got %v", r.Distance)
		}
	}
}

func TestFilterByDistance_Passthrough(t *testing.T) {
	records := []app.PersonalRecord{
		{ID: "a", Distance: 5},
		{ID: "b", Distance: 10},
		{ID: "c", Distance: 21.0975},
	}

	tests := []struct {
		name   string
		filter *string
	}{
		{name: "nil filter", filter: nil},
		{name: "empty filter", filter: strPtr("")},
		{name: "all lowercase", filter: strPtr("all")},
		{name: "all uppercase", filter: strPtr("ALL")},
		{name: "all mixed case", filter: strPtr("All")},
		{name: "unparsable number", filter: strPtr("ten")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FilterByDistance(records, tt.filter)
			if len(result) != len(records) {
				t.Fatalf("Expected %d records, got %d", len(records), len(result))
			}
			for i := range records {
				if result[i].ID != records[i].ID {
					t.Errorf("Expected order preserved at %d: %s, got %s", i, records[i].ID, result[i].ID)
				}
			}
		})
	}
}

func TestFilterByDistance_ExactMatchOnly(t *testing.T) {
	records := []app.PersonalRecord{
		{ID: "half", Distance: 21.0975},
		{ID: "rounded", Distance: 21.1},
	}

	result := FilterByDistance(records, strPtr("21.1"))

	if len(result) != 1 || result[0].ID != "rounded" {
		t.Errorf("Expected only the exact 21.1 record, got %v", result)
	}
}

func TestFilterByDistance_NoMatches(t *testing.T) {
	records := []app.PersonalRecord{{ID: "a", Distance: 5}}

	result := FilterByDistance(records, strPtr("42.195"))

	if result == nil || len(result) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", result)
	}
}

func TestFilterByDistance_DoesNotModifyInput(t *testing.T) {
	records := []app.PersonalRecord{{ID: "a", Distance: 5}, {ID: "b", Distance: 10}}

	result := FilterByDistance(records, nil)
	result[0].ID = "changed"

	if records[0].ID != "a" {
		t.Errorf("Original slice was modified")
	}
}

func TestDerive(t *testing.T) {
	records := []app.PersonalRecord{
		{ID: "slow10", Distance: 10, Time: "00:55:00"},
		{ID: "fast5", Distance: 5, Time: "00:22:00"},
		{ID: "fast10", Distance: 10, Time: "00:48:00"},
	}

	result := Derive(records, strPtr("10"), &app.SortConfig{Key: app.SortByTime, Direction: app.Ascending})

	if len(result) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(result))
	}
	if result[0].ID != "fast10" || result[1].ID != "slow10" {
		t.Errorf("Expected [fast10 slow10], got [%s %s]", result[0].ID, result[1].ID)
	}
}
