package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rupaladventures/basecamp/internal/analytics"
	"github.com/rupaladventures/basecamp/internal/domain"
)

// AnalyticsService builds the admin dashboard report.
type AnalyticsService struct {
	inquiries *InquiryService
	bookings  *BookingService
	opts      Options
}

// NewAnalyticsService constructs an AnalyticsService over the record services.
func NewAnalyticsService(inquiries *InquiryService, bookings *BookingService, opts Options) *AnalyticsService {
	return &AnalyticsService{inquiries: inquiries, bookings: bookings, opts: opts.withDefaults()}
}

// Report fetches the records created within rng and aggregates them. Both
// collections are fetched concurrently; if either fetch fails the report
// fails. months sets the trend window and defaults to
// analytics.DefaultTrendMonths.
func (s *AnalyticsService) Report(ctx context.Context, rng analytics.TimeRange, months int) (analytics.Report, error) {
	if months <= 0 {
		months = analytics.DefaultTrendMonths
	}
	now := s.opts.Clock()
	from := rng.Start(now)
	f := domain.Filter{DateFrom: &from}

	var (
		inquiries []domain.Inquiry
		bookings  []domain.Booking
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		inquiries, err = s.inquiries.ListAll(gctx, f)
		return err
	})
	g.Go(func() error {
		var err error
		bookings, err = s.bookings.ListAll(gctx, f)
		return err
	})
	if err := g.Wait(); err != nil {
		return analytics.Report{}, err
	}

	return analytics.Compute(inquiries, bookings, now, months), nil
}
