package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/rupaladventures/basecamp/internal/domain"
	"github.com/rupaladventures/basecamp/internal/repo"
)

// BookingService implements business logic for Booking operations.
type BookingService struct {
	repo repo.BookingRepo
	opts Options
}

// NewBookingService constructs a BookingService backed by the provided BookingRepo.
func NewBookingService(r repo.BookingRepo, opts Options) *BookingService {
	return &BookingService{repo: r, opts: opts.withDefaults()}
}

// Submit validates and persists a new booking. An empty status becomes
// pending; any other status must be a defined one.
func (s *BookingService) Submit(ctx context.Context, in domain.NewBooking) (domain.Booking, error) {
	in = in.Normalize()
	if err := validateNewBooking(in); err != nil {
		return domain.Booking{}, err
	}

	sctx, cancel := s.opts.storeCtx(ctx)
	defer cancel()
	created, err := s.repo.Create(sctx, in)
	if err != nil {
		return domain.Booking{}, domain.NewStoreError("service.BookingService.Submit", err)
	}
	s.opts.publish(ctx, domain.KindBookings, domain.OpInsert, created.ID.String())
	return created, nil
}

// SubmitMany submits each booking on its own and reports a result per record.
func (s *BookingService) SubmitMany(ctx context.Context, ins []domain.NewBooking) []domain.BatchResult[domain.Booking] {
	results := make([]domain.BatchResult[domain.Booking], len(ins))
	for i, in := range ins {
		results[i].Index = i
		created, err := s.Submit(ctx, in)
		if err != nil {
			results[i].Err = err
			continue
		}
		results[i].Record = &created
	}
	return results
}

// GetByID returns a single booking.
func (s *BookingService) GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	sctx, cancel := s.opts.storeCtx(ctx)
	defer cancel()
	b, err := s.repo.GetByID(sctx, id)
	if err != nil {
		return domain.Booking{}, domain.NewStoreError("service.BookingService.GetByID", err)
	}
	return b, nil
}

// List runs q and wraps the result in a page envelope.
func (s *BookingService) List(ctx context.Context, q domain.Query) (domain.Page[domain.Booking], error) {
	if err := validateBookingQuery(q); err != nil {
		return domain.Page[domain.Booking]{}, err
	}

	sctx, cancel := s.opts.storeCtx(ctx)
	defer cancel()
	rows, total, err := s.repo.List(sctx, q)
	if err != nil {
		return domain.Page[domain.Booking]{}, domain.NewStoreError("service.BookingService.List", err)
	}
	return domain.NewPage(rows, total, q.Page), nil
}

// ListAll returns every booking matching f, newest first.
func (s *BookingService) ListAll(ctx context.Context, f domain.Filter) ([]domain.Booking, error) {
	page, err := s.List(ctx, domain.Query{Filter: f})
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}

// Update applies a partial update. Any status may follow any other.
func (s *BookingService) Update(ctx context.Context, id uuid.UUID, patch domain.BookingPatch) (domain.Booking, error) {
	if err := validateBookingPatch(patch); err != nil {
		return domain.Booking{}, err
	}

	sctx, cancel := s.opts.storeCtx(ctx)
	defer cancel()
	updated, err := s.repo.Update(sctx, id, patch)
	if err != nil {
		return domain.Booking{}, domain.NewStoreError("service.BookingService.Update", err)
	}
	s.opts.publish(ctx, domain.KindBookings, domain.OpUpdate, id.String())
	return updated, nil
}

// Delete removes a booking. A missing id is reported as domain.ErrNotFound.
func (s *BookingService) Delete(ctx context.Context, id uuid.UUID) error {
	sctx, cancel := s.opts.storeCtx(ctx)
	defer cancel()
	if err := s.repo.Delete(sctx, id); err != nil {
		return domain.NewStoreError("service.BookingService.Delete", err)
	}
	s.opts.publish(ctx, domain.KindBookings, domain.OpDelete, id.String())
	return nil
}
