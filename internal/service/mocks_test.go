package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rupaladventures/basecamp/internal/domain"
	"github.com/rupaladventures/basecamp/internal/repo"
	"github.com/rupaladventures/basecamp/internal/service"
)

// mockInquiryRepo is a hand-written test double for repo.InquiryRepo.
// Each method is a function field; set only the ones your test needs.
// Calling an unset method panics, which doubles as a "store was not
// touched" assertion.
type mockInquiryRepo struct {
	create  func(ctx context.Context, in domain.NewInquiry) (domain.Inquiry, error)
	getByID func(ctx context.Context, id int64) (domain.Inquiry, error)
	list    func(ctx context.Context, q domain.Query) ([]domain.Inquiry, int64, error)
	update  func(ctx context.Context, id int64, p domain.InquiryPatch) (domain.Inquiry, error)
	delete  func(ctx context.Context, id int64) error
}

func (m *mockInquiryRepo) Create(ctx context.Context, in domain.NewInquiry) (domain.Inquiry, error) {
	return m.create(ctx, in)
}
func (m *mockInquiryRepo) GetByID(ctx context.Context, id int64) (domain.Inquiry, error) {
	return m.getByID(ctx, id)
}
func (m *mockInquiryRepo) List(ctx context.Context, q domain.Query) ([]domain.Inquiry, int64, error) {
	return m.list(ctx, q)
}
func (m *mockInquiryRepo) Update(ctx context.Context, id int64, p domain.InquiryPatch) (domain.Inquiry, error) {
	return m.update(ctx, id, p)
}
func (m *mockInquiryRepo) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

// compile-time check: mockInquiryRepo must satisfy repo.InquiryRepo.
var _ repo.InquiryRepo = (*mockInquiryRepo)(nil)

// mockBookingRepo is a hand-written test double for repo.BookingRepo.
type mockBookingRepo struct {
	create  func(ctx context.Context, in domain.NewBooking) (domain.Booking, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Booking, error)
	list    func(ctx context.Context, q domain.Query) ([]domain.Booking, int64, error)
	update  func(ctx context.Context, id uuid.UUID, p domain.BookingPatch) (domain.Booking, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockBookingRepo) Create(ctx context.Context, in domain.NewBooking) (domain.Booking, error) {
	return m.create(ctx, in)
}
func (m *mockBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	return m.getByID(ctx, id)
}
func (m *mockBookingRepo) List(ctx context.Context, q domain.Query) ([]domain.Booking, int64, error) {
	return m.list(ctx, q)
}
func (m *mockBookingRepo) Update(ctx context.Context, id uuid.UUID, p domain.BookingPatch) (domain.Booking, error) {
	return m.update(ctx, id, p)
}
func (m *mockBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.BookingRepo = (*mockBookingRepo)(nil)

// spyPublisher records published events.
type spyPublisher struct {
	mu     sync.Mutex
	events []domain.ChangeEvent
	err    error
}

func (p *spyPublisher) Publish(_ context.Context, ev domain.ChangeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *spyPublisher) published() []domain.ChangeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.ChangeEvent(nil), p.events...)
}

var _ service.Publisher = (*spyPublisher)(nil)

// ---- helpers ---------------------------------------------------------------

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// steppingClock returns epoch, epoch+1m, epoch+2m, ... on successive calls.
func steppingClock() func() time.Time {
	var mu sync.Mutex
	next := epoch
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(time.Minute)
		return t
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func strPtr(s string) *string { return &s }

func validInquiry() domain.NewInquiry {
	return domain.NewInquiry{
		FirstName: "Ali",
		LastName:  "Khan",
		Phone:     "+923001234567",
		Email:     "ali@example.com",
		City:      "Lahore",
		Country:   "pakistan",
	}
}

func validBooking() domain.NewBooking {
	return domain.NewBooking{
		ExpeditionName: "Laila Peak (6096M) Expedition",
		FirstName:      "Sara",
		LastName:       "Malik",
		Phone:          "0300 123 4567",
		Email:          "sara@example.com",
		City:           "Karachi",
		Country:        "Pakistan",
	}
}
