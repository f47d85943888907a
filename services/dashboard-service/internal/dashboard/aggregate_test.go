package dashboard

import (
	"testing"
	"time"

	"github.com/mnogodumalon/terminboard/services/dashboard-service/internal/livingapps"
)

const catalogRef = "https://my.living-apps.de/rest/apps/x/records/507f1f77bcf86cd799439011"

func appt(id, requestedAt string) livingapps.AppointmentRequest {
	return livingapps.AppointmentRequest{
		ID:     id,
		Fields: livingapps.AppointmentFields{RequestedAt: requestedAt},
	}
}

func TestFilterTodayAndUpcoming(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	appts := []livingapps.AppointmentRequest{
		appt("b", "2025-06-10T15:30"),
		appt("a", "2025-06-10T09:00"),
		appt("c", "2025-06-11T10:00"),
		appt("d", "2025-06-20T10:00"), // beyond the 7-day horizon
		appt("e", ""),                 // no date-time: excluded everywhere
		appt("f", "kaputt"),           // malformed: excluded everywhere
	}

	today := FilterToday(appts, now)
	if len(today) != 2 {
		t.Fatalf("expected 2 today, got %d", len(today))
	}
	if today[0].ID != "a" || today[1].ID != "b" {
		t.Fatalf("today not ordered by time: %s, %s", today[0].ID, today[1].ID)
	}

	upcoming := FilterUpcoming(appts, now, 7)
	if len(upcoming) != 1 || upcoming[0].ID != "c" {
		t.Fatalf("expected only the next-day appointment, got %+v", upcoming)
	}

	// An appointment never appears in both views.
	for _, u := range upcoming {
		for _, td := range today {
			if u.ID == td.ID {
				t.Fatalf("appointment %s in both today and upcoming", u.ID)
			}
		}
	}
}

func TestGroupByCalendarDay(t *testing.T) {
	appts := []livingapps.AppointmentRequest{
		appt("late", "2025-06-11T16:00"),
		appt("early", "2025-06-11T08:00"),
		appt("prev", "2025-06-10T09:00"),
		appt("none", ""),
	}

	groups := GroupByCalendarDay(appts, time.UTC)
	if len(groups) != 2 {
		t.Fatalf("expected 2 day groups, got %d", len(groups))
	}
	if groups[0].Day != "2025-06-10" || groups[1].Day != "2025-06-11" {
		t.Fatalf("days not ascending: %s, %s", groups[0].Day, groups[1].Day)
	}
	second := groups[1].Appointments
	if second[0].ID != "early" || second[1].ID != "late" {
		t.Fatalf("within-day order wrong: %s, %s", second[0].ID, second[1].ID)
	}

	total := 0
	for _, g := range groups {
		total += len(g.Appointments)
	}
	if total != 3 {
		t.Fatalf("dateless appointment must be omitted, counted %d", total)
	}
}

func TestCountInWindow(t *testing.T) {
	appts := []livingapps.AppointmentRequest{
		appt("a", "2025-06-10T09:00"),
		appt("b", "2025-06-12T09:00"),
	}
	start := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)

	if got := CountInWindow(appts, start, end); got != 1 {
		t.Fatalf("expected 1 in window, got %d", got)
	}
	// Degenerate window counts nothing.
	if got := CountInWindow(appts, end, start); got != 0 {
		t.Fatalf("expected 0 for degenerate window, got %d", got)
	}
	// Boundaries are inclusive.
	edge := []livingapps.AppointmentRequest{appt("edge", "2025-06-11T00:00")}
	if got := CountInWindow(edge, start, end); got != 1 {
		t.Fatalf("window end must be inclusive")
	}
}

func TestSumRevenue(t *testing.T) {
	lookup := livingapps.BuildServiceLookup([]livingapps.Service{
		{ID: "507f1f77bcf86cd799439011", Fields: livingapps.ServiceFields{Name: "Rückenmassage", Price: 45}},
		{ID: "507f1f77bcf86cd799439012", Fields: livingapps.ServiceFields{Name: "Ohne Preis"}},
	})
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)

	appts := []livingapps.AppointmentRequest{
		{ID: "a", Fields: livingapps.AppointmentFields{RequestedAt: "2025-06-10T09:00", ServiceRef: catalogRef}},
		{ID: "b", Fields: livingapps.AppointmentFields{RequestedAt: "2025-06-11T09:00", ServiceRef: "x/records/507f1f77bcf86cd799439012"}},
		{ID: "c", Fields: livingapps.AppointmentFields{RequestedAt: "2025-06-12T09:00", ServiceRef: "x/records/notanid"}},
		{ID: "d", Fields: livingapps.AppointmentFields{RequestedAt: "2025-07-01T09:00", ServiceRef: catalogRef}},
	}

	if got := SumRevenue(appts, lookup, start, end); got != 45 {
		t.Fatalf("expected 45, got %v", got)
	}
	if got := SumRevenue(nil, lookup, start, end); got != 0 {
		t.Fatalf("empty list must sum to 0, got %v", got)
	}
	if got := SumRevenue(appts, livingapps.ServiceLookup{}, start, end); got != 0 {
		t.Fatalf("no resolvable services must sum to 0, got %v", got)
	}
}

func TestEnrich(t *testing.T) {
	lookup := livingapps.BuildServiceLookup([]livingapps.Service{
		{ID: "507f1f77bcf86cd799439011", Fields: livingapps.ServiceFields{Name: "Rückenmassage", Price: 45}},
	})
	appts := []livingapps.AppointmentRequest{
		{ID: "old", CreatedAt: "2025-06-01T08:00:00Z", Fields: livingapps.AppointmentFields{ServiceRef: catalogRef}},
		{ID: "new", CreatedAt: "2025-06-09T08:00:00Z", Fields: livingapps.AppointmentFields{ServiceRef: "x/records/notanid"}},
	}

	enriched := Enrich(appts, lookup, time.UTC)
	if enriched[0].ID != "new" {
		t.Fatalf("expected newest-created first, got %s", enriched[0].ID)
	}
	if enriched[0].ServiceName != PlaceholderServiceName {
		t.Fatalf("unresolvable reference must get placeholder, got %q", enriched[0].ServiceName)
	}
	if enriched[1].ServiceName != "Rückenmassage" || enriched[1].ServicePrice != 45 {
		t.Fatalf("resolved service not joined: %+v", enriched[1])
	}
	if enriched[0].CustomerLabel != "Unbekannter Kunde" || enriched[0].DurationText != "–" {
		t.Fatalf("display fallbacks missing: %+v", enriched[0])
	}
}

func TestCountRecentlyCreated(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	appts := []livingapps.AppointmentRequest{
		// Scheduled far in the future but created yesterday: counts.
		{ID: "a", CreatedAt: "2025-06-09T10:00:00Z", Fields: livingapps.AppointmentFields{RequestedAt: "2025-09-01T10:00"}},
		{ID: "b", CreatedAt: "2025-05-01T10:00:00Z"},
		{ID: "c", CreatedAt: ""},
	}
	if got := CountRecentlyCreated(appts, now, 7); got != 1 {
		t.Fatalf("expected 1 recent, got %d", got)
	}
}

func TestBuildWeeklyHistogram(t *testing.T) {
	// 2025-06-09 is a Monday.
	weekStart := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	appts := []livingapps.AppointmentRequest{
		appt("a", "2025-06-10T09:00"),
		appt("b", "2025-06-10T15:30"),
		appt("c", "2025-06-14T10:00"),
		appt("d", "2025-06-20T10:00"), // next week: not bucketed
	}

	buckets := BuildWeeklyHistogram(appts, weekStart)
	if len(buckets) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(buckets))
	}
	if buckets[0].Label != "Mo" || buckets[6].Label != "So" {
		t.Fatalf("expected Monday-first German labels, got %s..%s", buckets[0].Label, buckets[6].Label)
	}
	if buckets[1].Count != 2 {
		t.Fatalf("expected 2 on Tuesday, got %d", buckets[1].Count)
	}
	if buckets[5].Count != 1 {
		t.Fatalf("expected 1 on Saturday, got %d", buckets[5].Count)
	}
	// Zero-count buckets are still emitted.
	if buckets[0].Count != 0 || buckets[2].Count != 0 {
		t.Fatalf("zero buckets missing: %+v", buckets)
	}
}

func TestWeekStartIsMonday(t *testing.T) {
	// A Sunday belongs to the week that started the previous Monday.
	sunday := time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC)
	if got := WeekStart(sunday); !got.Equal(time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected week start %s", got)
	}
	monday := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	if got := WeekStart(monday); !got.Equal(monday) {
		t.Fatalf("monday must be its own week start, got %s", got)
	}
}

func TestBuildStats(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	lookup := livingapps.BuildServiceLookup([]livingapps.Service{
		{ID: "507f1f77bcf86cd799439011", Fields: livingapps.ServiceFields{Price: 45}},
	})
	appts := []livingapps.AppointmentRequest{
		{ID: "a", CreatedAt: "2025-06-09T08:00:00Z", Fields: livingapps.AppointmentFields{RequestedAt: "2025-06-10T09:00", ServiceRef: catalogRef}},
		{ID: "b", CreatedAt: "2025-04-01T08:00:00Z", Fields: livingapps.AppointmentFields{RequestedAt: "2025-06-13T09:00"}},
		{ID: "c", CreatedAt: "2025-04-01T08:00:00Z", Fields: livingapps.AppointmentFields{RequestedAt: "2025-07-02T09:00", ServiceRef: catalogRef}},
	}
	customers := []livingapps.Customer{{ID: "k1"}, {ID: "k2"}}

	stats := BuildStats(appts, customers, lookup, now)
	if stats.OpenRequests != 3 {
		t.Fatalf("open requests: %d", stats.OpenRequests)
	}
	if stats.TodayAppointments != 1 {
		t.Fatalf("today: %d", stats.TodayAppointments)
	}
	if stats.WeekAppointments != 2 {
		t.Fatalf("this week (Mon-Sun): %d", stats.WeekAppointments)
	}
	if stats.TotalCustomers != 2 {
		t.Fatalf("customers: %d", stats.TotalCustomers)
	}
	if stats.RecentRequests != 1 {
		t.Fatalf("recent: %d", stats.RecentRequests)
	}
	// Only appointment "a" is in June and carries a priced service.
	if stats.MonthlyRevenue != 45 {
		t.Fatalf("monthly revenue: %v", stats.MonthlyRevenue)
	}
}
