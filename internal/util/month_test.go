package util

import (
	"testing"
	"time"
)

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		year      int
		month     int
		wantStart string
		wantEnd   string
	}{
		{2024, 3, "2024-03-01", "2024-03-31"},
		{2024, 2, "2024-02-01", "2024-02-29"}, // leap year
		{2023, 2, "2023-02-01", "2023-02-28"},
		{2024, 12, "2024-12-01", "2024-12-31"},
		{2024, 4, "2024-04-01", "2024-04-30"},
	}

	for _, tt := range tests {
		start, end := MonthBounds(tt.year, tt.month)
		if got := start.Format("2006-01-02"); got != tt.wantStart {
			t.Errorf("MonthBounds(%d, %d) start = %s, want %s", tt.year, tt.month, got, tt.wantStart)
		}
		if got := end.Format("2006-01-02"); got != tt.wantEnd {
			t.Errorf("MonthBounds(%d, %d) end = %s, want %s", tt.year, tt.month, got, tt.wantEnd)
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month int
		want  int
	}{
		{2024, 1, 31},
		{2024, 2, 29},
		{2023, 2, 28},
		{2000, 2, 29},
		{1900, 2, 28}, // century, not a leap year
		{2024, 4, 30},
		{2024, 12, 31},
	}

	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %d) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestPreviousMonth(t *testing.T) {
	gotYear, gotMonth := PreviousMonth(2026, 1)
	if gotYear != 2025 || gotMonth != 12 {
		t.Errorf("PreviousMonth(2026, 1) = (%d, %d), want (2025, 12)", gotYear, gotMonth)
	}

	gotYear, gotMonth = PreviousMonth(2026, 6)
	if gotYear != 2026 || gotMonth != 5 {
		t.Errorf("PreviousMonth(2026, 6) = (%d, %d), want (2026, 5)", gotYear, gotMonth)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 3, 1, 23, 59, 59, 0, time.UTC)
	c := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	if !SameDay(a, b) {
		t.Errorf("SameDay(%v, %v) = false, want true", a, b)
	}
	if SameDay(a, c) {
		t.Errorf("SameDay(%v, %v) = true, want false", a, c)
	}
}
