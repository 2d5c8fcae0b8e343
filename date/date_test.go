package date

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Date
	}{
		{"2025-01-02", New(2025, time.January, 2)},
		{"2025-1-2", New(2025, time.January, 2)},
		{"2024-02-29", New(2024, time.February, 29)},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse("not-a-date"); err == nil {
		t.Errorf("Parse(%q) expected an error", "not-a-date")
	}
}

func TestDate_Normalization(t *testing.T) {
	// Day overflow rolls into the next month.
	got := New(2025, time.January, 32)
	if want := New(2025, time.February, 1); got != want {
		t.Errorf("New(2025, January, 32) = %v, want %v", got, want)
	}
	// Day 0 is the last day of the previous month.
	got = New(2025, time.March, 0)
	if want := New(2025, time.February, 28); got != want {
		t.Errorf("New(2025, March, 0) = %v, want %v", got, want)
	}
}

func TestDate_Sub(t *testing.T) {
	a := New(2025, time.January, 1)
	b := New(2026, time.January, 1)
	if got := b.Sub(a); got != 365 {
		t.Errorf("Sub() = %d, want 365", got)
	}
	if got := a.Sub(b); got != -365 {
		t.Errorf("Sub() = %d, want -365", got)
	}
}

func TestStartEndOf(t *testing.T) {
	d := New(2025, time.August, 23)
	tests := []struct {
		period     Period
		start, end Date
	}{
		{Daily, d, d},
		{Weekly, New(2025, time.August, 18), New(2025, time.August, 24)},
		{Monthly, New(2025, time.August, 1), New(2025, time.August, 31)},
		{Quarterly, New(2025, time.July, 1), New(2025, time.September, 30)},
		{Yearly, New(2025, time.January, 1), New(2025, time.December, 31)},
	}
	for _, tt := range tests {
		if got := d.StartOf(tt.period); got != tt.start {
			t.Errorf("StartOf(%s) = %v, want %v", tt.period, got, tt.start)
		}
		if got := d.EndOf(tt.period); got != tt.end {
			t.Errorf("EndOf(%s) = %v, want %v", tt.period, got, tt.end)
		}
	}
}

func TestRange_Identifier(t *testing.T) {
	tests := []struct {
		r    Range
		want string
	}{
		{NewRange(New(2025, time.July, 15), Monthly), "2025-07"},
		{NewRange(New(2025, time.July, 15), Yearly), "2025"},
		{NewRange(New(2025, time.July, 15), Quarterly), "2025-Q3"},
		{Range{New(2025, time.July, 1), New(2025, time.July, 10)}, "2025-07-01_2025-07-10"},
	}
	for _, tt := range tests {
		if got := tt.r.Identifier(); got != tt.want {
			t.Errorf("Identifier() = %q, want %q", got, tt.want)
		}
	}
}

func TestRange_Next(t *testing.T) {
	r := NewRange(New(2025, time.December, 10), Monthly)
	next := r.Next(Monthly)
	if want := (Range{New(2026, time.January, 1), New(2026, time.January, 31)}); next != want {
		t.Errorf("Next() = %v, want %v", next, want)
	}
}
