package dateutil

import (
	"testing"
	"time"
)

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a    time.Time
		b    time.Time
		want int
	}{
		{
			name: "same instant",
			a:    time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "same day different hours",
			a:    time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "late evening to early morning is one day",
			a:    time.Date(2025, 3, 10, 23, 50, 0, 0, time.UTC),
			b:    time.Date(2025, 3, 11, 0, 10, 0, 0, time.UTC),
			want: 1,
		},
		{
			name: "two calendar days",
			a:    time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 3, 12, 6, 0, 0, 0, time.UTC),
			want: 2,
		},
		{
			name: "negative when reversed",
			a:    time.Date(2025, 3, 12, 8, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
			want: -2,
		},
		{
			name: "across month boundary",
			a:    time.Date(2025, 2, 27, 9, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC),
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestYesterday(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 10, 0, 0, time.UTC)
	got := Yesterday(now)
	if DateKey(got) != "2025-03-09" {
		t.Errorf("Yesterday() = %s, want 2025-03-09", DateKey(got))
	}
	if h, m, s := got.Clock(); h != 0 || m != 0 || s != 0 {
		t.Errorf("Yesterday() must be truncated to midnight, got %v", got)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, 3, 10, 0, 0, 1, 0, time.UTC)
	b := time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC)
	if !SameDay(a, b) {
		t.Error("expected same day")
	}
	if SameDay(a, b.Add(time.Second)) {
		t.Error("expected different days across midnight")
	}
}
