package dashboard

import (
	"sort"
	"strings"
	"time"

	"github.com/mnogodumalon/terminboard/services/dashboard-service/internal/livingapps"
)

// recentLimit caps the recent-request list in the dashboard payload; the
// total count is reported alongside.
const recentLimit = 10

// View is the full dashboard payload handed to the presentation layer.
type View struct {
	Stats         Stats                 `json:"stats"`
	Today         []EnrichedAppointment `json:"today"`
	Upcoming      []DayGroup            `json:"upcoming"`
	Histogram     []HistogramBucket     `json:"histogram"`
	Recent        []EnrichedAppointment `json:"recent"`
	TotalRequests int                   `json:"total_requests"`
	GeneratedAt   string                `json:"generated_at"`
}

// BuildView assembles every derived view-model from one snapshot.
func BuildView(snap *Snapshot, now time.Time, horizonDays int) View {
	lookup := livingapps.BuildServiceLookup(snap.Services)
	enriched := Enrich(snap.Appointments, lookup, now.Location())

	recent := enriched
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	today := Enrich(FilterToday(snap.Appointments, now), lookup, now.Location())
	sortEnrichedByRequested(today)

	return View{
		Stats:         BuildStats(snap.Appointments, snap.Customers, lookup, now),
		Today:         today,
		Upcoming:      GroupByCalendarDay(FilterUpcoming(snap.Appointments, now, horizonDays), now.Location()),
		Histogram:     BuildWeeklyHistogram(snap.Appointments, WeekStart(now)),
		Recent:        recent,
		TotalRequests: len(snap.Appointments),
		GeneratedAt:   now.Format(time.RFC3339),
	}
}

// Enrich orders newest-created first; the today list is ordered by time of
// day instead.
func sortEnrichedByRequested(appts []EnrichedAppointment) {
	sort.SliceStable(appts, func(i, j int) bool {
		return appts[i].Fields.RequestedAt < appts[j].Fields.RequestedAt
	})
}

// CustomerName joins the first and last name on an appointment request,
// falling back to a fixed label when both are empty.
func CustomerName(f livingapps.AppointmentFields) string {
	name := strings.TrimSpace(strings.TrimSpace(f.FirstName) + " " + strings.TrimSpace(f.LastName))
	if name == "" {
		return "Unbekannter Kunde"
	}
	return name
}

// FormatAddress renders "Street No, Zip City" omitting missing parts.
func FormatAddress(f livingapps.AppointmentFields) string {
	street := strings.TrimSpace(strings.TrimSpace(f.Street) + " " + strings.TrimSpace(f.HouseNo))
	city := strings.TrimSpace(strings.TrimSpace(f.ZipCode) + " " + strings.TrimSpace(f.City))
	switch {
	case street != "" && city != "":
		return street + ", " + city
	case street != "":
		return street
	default:
		return city
	}
}

var durationLabels = map[string]string{
	livingapps.Duration30: "30 Min.",
	livingapps.Duration45: "45 Min.",
	livingapps.Duration60: "60 Min.",
}

// DurationLabel maps a duration bucket to its display label. Absent or
// unknown buckets render as a dash; there is no silent default duration.
func DurationLabel(bucket string) string {
	if label, ok := durationLabels[bucket]; ok {
		return label
	}
	return "–"
}
