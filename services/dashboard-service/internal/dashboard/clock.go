package dashboard

import "time"

// WireTimeLayout is the exact requested-date-time shape stored on
// appointment records: no seconds, no timezone offset.
const WireTimeLayout = "2006-01-02T15:04"

// requestedLayouts are accepted when reading wunschtermin values back from
// the store. The store does not enforce the field shape, so older records
// may carry seconds, a full ISO timestamp, or a bare date.
var requestedLayouts = []string{
	WireTimeLayout,
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// ParseRequested parses a requested date-time in the given location.
// Malformed or empty values report false; they never produce an error and
// are excluded from every date-based aggregation.
func ParseRequested(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range requestedLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseCreated parses a store-assigned creation or update timestamp.
func ParseCreated(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", WireTimeLayout} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// StartOfDay truncates to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekStart returns Monday 00:00 of t's week. The business locale (German)
// starts the week on Monday.
func WeekStart(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}

// WeekWindow returns the inclusive [Monday 00:00, Sunday 23:59:59.999...]
// window containing t.
func WeekWindow(t time.Time) (time.Time, time.Time) {
	start := WeekStart(t)
	return start, start.AddDate(0, 0, 7).Add(-time.Nanosecond)
}

// MonthWindow returns the inclusive calendar-month window containing t.
func MonthWindow(t time.Time) (time.Time, time.Time) {
	y, m, _ := t.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)
}
