package dashboard

import "regexp"

var (
	dateShape  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockShape = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// CombineDateTime joins the intake form's separate date and time inputs
// into the exact wire shape YYYY-MM-DDTHH:MM. If either component is
// missing the combined value is omitted entirely (ok=false); a partial
// value like "2025-06-10T" must never be submitted.
func CombineDateTime(date, clock string) (string, bool) {
	if date == "" || clock == "" {
		return "", false
	}
	if !dateShape.MatchString(date) || !clockShape.MatchString(clock) {
		return "", false
	}
	return date + "T" + clock, true
}

// ValidDuration reports whether the value is one of the three fixed
// duration buckets. The empty value is allowed: duration is optional and
// has no canonical default.
func ValidDuration(bucket string) bool {
	switch bucket {
	case "", "dauer_30", "dauer_45", "dauer_60":
		return true
	default:
		return false
	}
}
