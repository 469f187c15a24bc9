package datetime

import (
	"testing"
	"time"
)

func TestMustParseTime(t *testing.T) {
	tests := []struct {
		name     string
		layout   string
		dateStr  string
		expected string
	}{
		{
			name:     "Valid date",
			layout:   DateLayout,
			dateStr:  "2025-01-15",
			expected: "2025-01-15",
		},
		{
			name:     "Another valid date",
			layout:   DateLayout,
			dateStr:  "2030-12-31",
			expected: "2030-12-31",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MustParseTime(tt.layout, tt.dateStr)
			if result.Format(tt.layout) != tt.expected {
				t.Errorf("MustParseTime() = %s, expected %s", result.Format(tt.layout), tt.expected)
			}
		})
	}
}

func TestMustParseTimePanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected MustParseTime to panic with invalid date")
		}
	}()

	MustParseTime(DateLayout, "invalid-date")
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		zero     bool
		wantErr  bool
	}{
		{name: "Valid date", input: "2026-03-10", expected: "2026-03-10"},
		{name: "Surrounding whitespace", input: " 2026-03-10 ", expected: "2026-03-10"},
		{name: "Empty string", input: "", zero: true},
		{name: "Month only", input: "2026-03", wantErr: true},
		{name: "Garbage", input: "tomorrow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDate(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if tt.zero {
				if !result.IsZero() {
					t.Errorf("ParseDate(%q) = %v, expected zero time", tt.input, result)
				}
				return
			}
			if got := FormatDate(result); got != tt.expected {
				t.Errorf("ParseDate(%q) = %s, expected %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		months   int
		expected string
	}{
		{"Same day next month", "2025-01-15", 1, "2025-02-15"},
		{"Cross year boundary", "2025-06-10", 8, "2026-02-10"},
		{"End of month clamps to February", "2025-01-31", 1, "2025-02-28"},
		{"End of month clamps in leap year", "2024-01-31", 1, "2024-02-29"},
		{"Clamp does not stick to later months", "2025-01-31", 2, "2025-03-31"},
		{"Thirty day month", "2025-03-31", 1, "2025-04-30"},
		{"Four year term", "2025-05-20", 48, "2029-05-20"},
		{"Zero months", "2025-05-20", 0, "2025-05-20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := MustParseTime(DateLayout, tt.date)
			if got := FormatDate(AddMonths(start, tt.months)); got != tt.expected {
				t.Errorf("AddMonths(%s, %d) = %s, expected %s", tt.date, tt.months, got, tt.expected)
			}
		})
	}
}

func TestDaysIn(t *testing.T) {
	tests := []struct {
		date     string
		expected int
	}{
		{"2025-02-01", 28},
		{"2024-02-10", 29},
		{"2025-04-30", 30},
		{"2025-12-31", 31},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			if got := DaysIn(MustParseTime(DateLayout, tt.date)); got != tt.expected {
				t.Errorf("DaysIn(%s) = %d, expected %d", tt.date, got, tt.expected)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	in := time.Date(2026, 10, 15, 13, 45, 10, 99, time.UTC)
	got := Truncate(in)
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Errorf("Truncate(%v) = %v, expected midnight", in, got)
	}
	if FormatDate(got) != "2026-10-15" {
		t.Errorf("Truncate changed the date: %s", FormatDate(got))
	}
}
