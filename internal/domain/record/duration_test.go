package record

import (
	"math"
	"testing"

	"pr_tracker/internal/app"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{name: "hours minutes seconds", input: "01:02:03", expected: 3723},
		{name: "minutes seconds", input: "25:00", expected: 1500},
		{name: "seconds only", input: "45", expected: 45},
		{name: "zero", input: "00:00:00", expected: 0},
		{name: "unpadded", input: "1:5:7", expected: 3907},
		{name: "surrounding spaces", input: " 10 : 30 ", expected: 630},
		{name: "marathon", input: "03:30:15", expected: 12615},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseDuration(tt.input)
			if result != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestParseDuration_Malformed(t *testing.T) {
	inputs := []string{
		"",
		"bad",
		"10:xx",
		"1:2:3:4",
		"10::00",
		"10:",
		"NaN",
		"Inf:00",
		"10-00",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			if result := ParseDuration(input); !math.IsNaN(result) {
				t.Errorf("Expected NaN for %q, got %v", input, result)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	jan1 := ParseDate("2024-01-01")
	jan15 := ParseDate("2024-01-15")

	if math.IsNaN(jan1) || math.IsNaN(jan15) {
		t.Fatalf("Expected valid dates, got %v and %v", jan1, jan15)
	}
	if jan15-jan1 != 14*24*3600 {
		t.Errorf("Expected 14 days between dates, got %v seconds", jan15-jan1)
	}

	if ts := ParseDate("2024-01-01T00:00:00Z"); ts != jan1 {
		t.Errorf("Expected RFC 3339 midnight to equal calendar date, got %v vs %v", ts, jan1)
	}

	for _, input := range []string{"", "yesterday", "2024-13-01", "01/02/2024"} {
		if result := ParseDate(input); !math.IsNaN(result) {
			t.Errorf("Expected NaN for %q, got %v", input, result)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds  float64
		expected string
	}{
		{1500, "25:00"},
		{3723, "1:02:03"},
		{59.6, "01:00"},
		{0, "00:00"},
		{math.NaN(), "-"},
		{-5, "-"},
	}

	for _, tt := range tests {
		if result := FormatDuration(tt.seconds); result != tt.expected {
			t.Errorf("FormatDuration(%v): expected %q, got %q", tt.seconds, tt.expected, result)
		}
	}
}

func TestPace(t *testing.T) {
	pace := Pace(app.PersonalRecord{Distance: 5, Time: "00:25:00"})
	if pace != 300 {
		t.Errorf("Expected 300 seconds per km, got %v", pace)
	}

	if p := Pace(app.PersonalRecord{Distance: 0, Time: "25:00"}); !math.IsNaN(p) {
		t.Errorf("Expected NaN pace for zero distance, got %v", p)
	}
	if p := Pace(app.PersonalRecord{Distance: 5, Time: "bad"}); !math.IsNaN(p) {
		t.Errorf("Expected NaN pace for bad time, got %v", p)
	}
}
