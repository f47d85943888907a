package dashboard

import (
	"testing"
	"time"
)

func TestParseRequested(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2025-06-10T09:00", true},
		{"2025-06-10T09:00:30", true},
		{"2025-06-10T09:00:00Z", true},
		{"2025-06-10", true},
		{"", false},
		{"kaputt", false},
		{"10.06.2025 09:00", false},
	}
	for _, tc := range cases {
		_, ok := ParseRequested(tc.in, time.UTC)
		if ok != tc.ok {
			t.Fatalf("ParseRequested(%q) ok=%v, want %v", tc.in, ok, tc.ok)
		}
	}

	got, ok := ParseRequested("2025-06-10T09:00", time.UTC)
	if !ok || !got.Equal(time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected parse result %s", got)
	}
}

func TestMonthWindow(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	start, end := MonthWindow(now)
	if !start.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected month start %s", start)
	}
	if !end.Before(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)) || end.Before(time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)) {
		t.Fatalf("unexpected month end %s", end)
	}
}
