// Package analytics derives the admin dashboard's summary statistics from
// already-fetched inquiry and booking collections.
//
// Every function here is pure: it makes no store calls, reads no clock and
// returns the same result for the same input. The caller supplies complete,
// time-bounded collections.
package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/rupaladventures/basecamp/internal/domain"
)

const (
	// DefaultTrendMonths is the monthly trend length used when none is given.
	DefaultTrendMonths = 12
	// TopN caps ranked distributions.
	TopN = 10

	unknownLabel      = "Unknown"
	unknownStatus     = "unknown"
	generalInquiry    = "General Inquiry"
	unknownExpedition = "Unknown Expedition"
	monthLabel        = "Jan 2006"
)

// Compute builds the full report. now anchors the monthly trend; months <= 0
// means DefaultTrendMonths.
func Compute(inquiries []domain.Inquiry, bookings []domain.Booking, now time.Time, months int) Report {
	return Report{
		DashboardStats:     Stats(inquiries, bookings),
		MonthlyData:        Monthly(inquiries, bookings, now, months),
		CountryData:        Countries(inquiries),
		OrganizationData:   Organizations(inquiries),
		StatusDistribution: Statuses(inquiries, bookings),
		TopExpeditions:     TopExpeditions(inquiries, bookings),
	}
}

// Stats returns totals, booking status counts and the conversion rate
// (bookings per hundred inquiries, 0 without inquiries).
func Stats(inquiries []domain.Inquiry, bookings []domain.Booking) DashboardStats {
	s := DashboardStats{TotalInquiries: len(inquiries), TotalBookings: len(bookings)}
	for _, b := range bookings {
		switch b.Status {
		case domain.BookingPending:
			s.PendingBookings++
		case domain.BookingConfirmed:
			s.ConfirmedBookings++
		case domain.BookingCancelled:
			s.CancelledBookings++
		}
	}
	if s.TotalInquiries > 0 {
		s.ConversionRate = float64(s.TotalBookings) / float64(s.TotalInquiries) * 100
	}
	return s
}

// Monthly buckets both collections by calendar month in now's location for
// the trailing months ending with now's month. Entries are chronological and
// zero-filled; records outside the window are not counted.
func Monthly(inquiries []domain.Inquiry, bookings []domain.Booking, now time.Time, months int) []MonthlyTrend {
	if months <= 0 {
		months = DefaultTrendMonths
	}
	loc := now.Location()
	first := time.Date(now.Year(), now.Month()-time.Month(months-1), 1, 0, 0, 0, 0, loc)

	out := make([]MonthlyTrend, months)
	for i := range out {
		out[i].Month = first.AddDate(0, i, 0).Format(monthLabel)
	}

	bucket := func(t time.Time) int {
		t = t.In(loc)
		i := (t.Year()-first.Year())*12 + int(t.Month()) - int(first.Month())
		if i < 0 || i >= months {
			return -1
		}
		return i
	}
	for _, in := range inquiries {
		if i := bucket(in.CreatedAt); i >= 0 {
			out[i].Inquiries++
		}
	}
	for _, b := range bookings {
		if i := bucket(b.CreatedAt); i >= 0 {
			out[i].Bookings++
		}
	}
	return out
}

// Countries groups inquiries by country, top TopN by count.
func Countries(inquiries []domain.Inquiry) []CountryBreakdown {
	counts := newCounter()
	for _, in := range inquiries {
		counts.add(orUnknown(in.Country))
	}
	out := make([]CountryBreakdown, 0, len(counts.keys))
	for _, k := range counts.ranked(TopN) {
		out = append(out, CountryBreakdown{Country: k, Count: counts.n[k], Percentage: percent(counts.n[k], len(inquiries))})
	}
	return out
}

// Organizations groups inquiries by organization, top TopN by count.
func Organizations(inquiries []domain.Inquiry) []OrganizationBreakdown {
	counts := newCounter()
	for _, in := range inquiries {
		counts.add(orUnknown(domain.Deref(in.Organization)))
	}
	out := make([]OrganizationBreakdown, 0, len(counts.keys))
	for _, k := range counts.ranked(TopN) {
		out = append(out, OrganizationBreakdown{Organization: k, Count: counts.n[k], Percentage: percent(counts.n[k], len(inquiries))})
	}
	return out
}

// Statuses merges inquiry and booking statuses into one distribution over
// both collections. Booking statuses are prefixed so they never collide with
// an inquiry status; inquiries carry no status and count as "unknown".
// Labels show the first underscore as a space ("booking pending").
func Statuses(inquiries []domain.Inquiry, bookings []domain.Booking) []StatusDistribution {
	counts := newCounter()
	for range inquiries {
		counts.add(unknownStatus)
	}
	for _, b := range bookings {
		counts.add("booking_" + string(b.Status))
	}
	total := len(inquiries) + len(bookings)
	out := make([]StatusDistribution, 0, len(counts.keys))
	for _, k := range counts.ranked(0) {
		out = append(out, StatusDistribution{
			Status:     strings.Replace(k, "_", " ", 1),
			Count:      counts.n[k],
			Percentage: percent(counts.n[k], total),
		})
	}
	return out
}

// TopExpeditions ranks expeditions by inquiries (keyed by subject) plus
// bookings (keyed by expedition name), top TopN.
func TopExpeditions(inquiries []domain.Inquiry, bookings []domain.Booking) []TopExpedition {
	var (
		order []string
		byKey = map[string]*TopExpedition{}
	)
	get := func(k string) *TopExpedition {
		e, ok := byKey[k]
		if !ok {
			e = &TopExpedition{Expedition: k}
			byKey[k] = e
			order = append(order, k)
		}
		return e
	}
	for _, in := range inquiries {
		label := domain.Deref(in.Subject)
		if label == "" {
			label = generalInquiry
		}
		get(label).Inquiries++
	}
	for _, b := range bookings {
		label := b.ExpeditionName
		if label == "" {
			label = unknownExpedition
		}
		get(label).Bookings++
	}

	out := make([]TopExpedition, len(order))
	for i, k := range order {
		out[i] = *byKey[k]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Inquiries+out[i].Bookings > out[j].Inquiries+out[j].Bookings
	})
	if len(out) > TopN {
		out = out[:TopN]
	}
	return out
}

// counter counts labels and remembers first-seen order for tie-breaking.
type counter struct {
	keys []string
	n    map[string]int
}

func newCounter() *counter { return &counter{n: map[string]int{}} }

func (c *counter) add(k string) {
	if _, ok := c.n[k]; !ok {
		c.keys = append(c.keys, k)
	}
	c.n[k]++
}

// ranked returns the labels by descending count, ties in first-seen order,
// truncated to limit when limit > 0.
func (c *counter) ranked(limit int) []string {
	keys := append([]string(nil), c.keys...)
	sort.SliceStable(keys, func(i, j int) bool { return c.n[keys[i]] > c.n[keys[j]] })
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	return keys
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return unknownLabel
	}
	return s
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
