// Package dashboard derives the studio's dashboard view-models from the raw
// record collections. Every function here is pure and deterministic given
// (appointments, services, customers, now); nothing reads ambient state.
package dashboard

import (
	"sort"
	"time"

	"github.com/mnogodumalon/terminboard/services/dashboard-service/internal/livingapps"
)

// PlaceholderServiceName is shown when an appointment's service reference
// is absent or does not resolve against the catalog.
const PlaceholderServiceName = "Keine Leistung angegeben"

// EnrichedAppointment is an appointment request joined with its resolved
// service catalog entry, plus the display strings the dashboard renders.
type EnrichedAppointment struct {
	livingapps.AppointmentRequest
	ServiceName   string  `json:"service_name"`
	ServicePrice  float64 `json:"service_price"`
	CustomerLabel string  `json:"customer_label"`
	AddressLabel  string  `json:"address_label,omitempty"`
	DurationText  string  `json:"duration_label"`
}

// DayGroup holds one calendar day's appointments, ordered by time of day.
type DayGroup struct {
	Day          string                          `json:"day"` // YYYY-MM-DD
	Appointments []livingapps.AppointmentRequest `json:"appointments"`
}

// HistogramBucket is one weekday's appointment count for the weekly chart.
type HistogramBucket struct {
	Day   string `json:"day"` // YYYY-MM-DD
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Stats are the dashboard counters.
type Stats struct {
	OpenRequests      int     `json:"open_requests"`
	TodayAppointments int     `json:"today_appointments"`
	WeekAppointments  int     `json:"week_appointments"`
	TotalCustomers    int     `json:"total_customers"`
	RecentRequests    int     `json:"recent_requests"`
	MonthlyRevenue    float64 `json:"monthly_revenue"`
}

// Enrich resolves each appointment's service reference against the catalog.
// Unresolvable references get the placeholder name instead of failing. The
// result is ordered newest-created first, records without a parseable
// creation timestamp last.
func Enrich(appts []livingapps.AppointmentRequest, lookup livingapps.ServiceLookup, loc *time.Location) []EnrichedAppointment {
	out := make([]EnrichedAppointment, 0, len(appts))
	for _, a := range appts {
		e := EnrichedAppointment{
			AppointmentRequest: a,
			ServiceName:        PlaceholderServiceName,
			CustomerLabel:      CustomerName(a.Fields),
			AddressLabel:       FormatAddress(a.Fields),
			DurationText:       DurationLabel(a.Fields.Duration),
		}
		if svc, ok := lookup.Resolve(a.Fields.ServiceRef); ok {
			if svc.Fields.Name != "" {
				e.ServiceName = svc.Fields.Name
			}
			e.ServicePrice = svc.Fields.Price
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ti, oki := ParseCreated(out[i].CreatedAt, loc)
		tj, okj := ParseCreated(out[j].CreatedAt, loc)
		if oki != okj {
			return oki
		}
		return ti.After(tj)
	})
	return out
}

// FilterToday keeps appointments requested on the same calendar day as now
// (local calendar day, not a rolling 24h window), ascending by time.
func FilterToday(appts []livingapps.AppointmentRequest, now time.Time) []livingapps.AppointmentRequest {
	y, m, d := now.Date()
	var out []livingapps.AppointmentRequest
	for _, a := range appts {
		t, ok := ParseRequested(a.Fields.RequestedAt, now.Location())
		if !ok {
			continue
		}
		ty, tm, td := t.Date()
		if ty == y && tm == m && td == d {
			out = append(out, a)
		}
	}
	sortByRequested(out)
	return out
}

// FilterUpcoming keeps appointments strictly after the end of now's calendar
// day and at or before now + horizonDays. Today's appointments are excluded;
// an appointment is never in both the today and upcoming views.
func FilterUpcoming(appts []livingapps.AppointmentRequest, now time.Time, horizonDays int) []livingapps.AppointmentRequest {
	if horizonDays <= 0 {
		horizonDays = 7
	}
	nextDay := StartOfDay(now).AddDate(0, 0, 1)
	horizon := now.AddDate(0, 0, horizonDays)
	var out []livingapps.AppointmentRequest
	for _, a := range appts {
		t, ok := ParseRequested(a.Fields.RequestedAt, now.Location())
		if !ok {
			continue
		}
		if !t.Before(nextDay) && !t.After(horizon) {
			out = append(out, a)
		}
	}
	sortByRequested(out)
	return out
}

// GroupByCalendarDay buckets appointments by the date portion of their
// requested date-time. Days are ascending; within a day, ascending by time.
// Appointments without a parseable date-time are omitted entirely.
func GroupByCalendarDay(appts []livingapps.AppointmentRequest, loc *time.Location) []DayGroup {
	byDay := map[string][]livingapps.AppointmentRequest{}
	for _, a := range appts {
		t, ok := ParseRequested(a.Fields.RequestedAt, loc)
		if !ok {
			continue
		}
		day := t.Format("2006-01-02")
		byDay[day] = append(byDay[day], a)
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	groups := make([]DayGroup, 0, len(days))
	for _, day := range days {
		list := byDay[day]
		sortByRequested(list)
		groups = append(groups, DayGroup{Day: day, Appointments: list})
	}
	return groups
}

// CountInWindow counts appointments whose requested date-time falls within
// [start, end] inclusive. A degenerate window (start after end) counts 0.
func CountInWindow(appts []livingapps.AppointmentRequest, start, end time.Time) int {
	if start.After(end) {
		return 0
	}
	count := 0
	for _, a := range appts {
		t, ok := ParseRequested(a.Fields.RequestedAt, start.Location())
		if !ok {
			continue
		}
		if !t.Before(start) && !t.After(end) {
			count++
		}
	}
	return count
}

// SumRevenue sums resolved service prices over appointments inside the
// window. Appointments with no resolvable service, no price, or a negative
// price contribute 0. The result is never negative.
func SumRevenue(appts []livingapps.AppointmentRequest, lookup livingapps.ServiceLookup, start, end time.Time) float64 {
	if start.After(end) {
		return 0
	}
	var sum float64
	for _, a := range appts {
		t, ok := ParseRequested(a.Fields.RequestedAt, start.Location())
		if !ok || t.Before(start) || t.After(end) {
			continue
		}
		svc, ok := lookup.Resolve(a.Fields.ServiceRef)
		if !ok || svc.Fields.Price <= 0 {
			continue
		}
		sum += svc.Fields.Price
	}
	return sum
}

// CountRecentlyCreated counts appointments created within the trailing
// lookback window. This runs on the creation-timestamp axis, which is
// distinct from the requested-date-time axis used everywhere else.
func CountRecentlyCreated(appts []livingapps.AppointmentRequest, now time.Time, lookbackDays int) int {
	if lookbackDays <= 0 {
		lookbackDays = 7
	}
	cutoff := now.AddDate(0, 0, -lookbackDays)
	count := 0
	for _, a := range appts {
		t, ok := ParseCreated(a.CreatedAt, now.Location())
		if !ok {
			continue
		}
		if !t.Before(cutoff) && !t.After(now) {
			count++
		}
	}
	return count
}

var weekdayLabels = map[time.Weekday]string{
	time.Monday:    "Mo",
	time.Tuesday:   "Di",
	time.Wednesday: "Mi",
	time.Thursday:  "Do",
	time.Friday:    "Fr",
	time.Saturday:  "Sa",
	time.Sunday:    "So",
}

// BuildWeeklyHistogram produces exactly 7 buckets starting at weekStart
// (Monday), one per day, zero-count buckets included.
func BuildWeeklyHistogram(appts []livingapps.AppointmentRequest, weekStart time.Time) []HistogramBucket {
	weekStart = StartOfDay(weekStart)
	buckets := make([]HistogramBucket, 7)
	for i := range buckets {
		day := weekStart.AddDate(0, 0, i)
		buckets[i] = HistogramBucket{
			Day:   day.Format("2006-01-02"),
			Label: weekdayLabels[day.Weekday()],
		}
	}
	for _, a := range appts {
		t, ok := ParseRequested(a.Fields.RequestedAt, weekStart.Location())
		if !ok {
			continue
		}
		day := t.Format("2006-01-02")
		for i := range buckets {
			if buckets[i].Day == day {
				buckets[i].Count++
				break
			}
		}
	}
	return buckets
}

// BuildStats computes the dashboard counters for now.
func BuildStats(appts []livingapps.AppointmentRequest, customers []livingapps.Customer, lookup livingapps.ServiceLookup, now time.Time) Stats {
	weekStart, weekEnd := WeekWindow(now)
	monthStart, monthEnd := MonthWindow(now)
	return Stats{
		OpenRequests:      len(appts),
		TodayAppointments: len(FilterToday(appts, now)),
		WeekAppointments:  CountInWindow(appts, weekStart, weekEnd),
		TotalCustomers:    len(customers),
		RecentRequests:    CountRecentlyCreated(appts, now, 7),
		MonthlyRevenue:    SumRevenue(appts, lookup, monthStart, monthEnd),
	}
}

// sortByRequested orders ascending by the raw wunschtermin string. The
// format is fixed-width and zero-padded, so lexicographic order is
// chronological order.
func sortByRequested(appts []livingapps.AppointmentRequest) {
	sort.SliceStable(appts, func(i, j int) bool {
		return appts[i].Fields.RequestedAt < appts[j].Fields.RequestedAt
	})
}
