package dashboard

import "testing"

func TestCombineDateTime(t *testing.T) {
	got, ok := CombineDateTime("2025-06-10", "14:05")
	if !ok || got != "2025-06-10T14:05" {
		t.Fatalf("expected exact wire shape, got %q ok=%v", got, ok)
	}

	// A missing component omits the field entirely; "2025-06-10T" must
	// never be produced.
	if got, ok := CombineDateTime("2025-06-10", ""); ok || got != "" {
		t.Fatalf("missing time must omit the value, got %q ok=%v", got, ok)
	}
	if got, ok := CombineDateTime("", "14:05"); ok || got != "" {
		t.Fatalf("missing date must omit the value, got %q ok=%v", got, ok)
	}

	if _, ok := CombineDateTime("10.06.2025", "14:05"); ok {
		t.Fatalf("non-ISO date must be rejected")
	}
	if _, ok := CombineDateTime("2025-06-10", "14:05:30"); ok {
		t.Fatalf("seconds are not part of the wire shape")
	}
}

func TestValidDuration(t *testing.T) {
	for _, v := range []string{"", "dauer_30", "dauer_45", "dauer_60"} {
		if !ValidDuration(v) {
			t.Fatalf("%q should be valid", v)
		}
	}
	if ValidDuration("dauer_90") {
		t.Fatalf("unknown bucket should be invalid")
	}
}

func TestDurationLabel(t *testing.T) {
	if got := DurationLabel("dauer_45"); got != "45 Min." {
		t.Fatalf("unexpected label %q", got)
	}
	// No silent default: absent duration renders as a dash.
	if got := DurationLabel(""); got != "–" {
		t.Fatalf("expected dash for absent duration, got %q", got)
	}
}
