package service

import (
	"context"
	"strconv"

	"github.com/rupaladventures/basecamp/internal/domain"
	"github.com/rupaladventures/basecamp/internal/repo"
)

// InquiryService implements business logic for Inquiry operations.
type InquiryService struct {
	repo repo.InquiryRepo
	opts Options
}

// NewInquiryService constructs an InquiryService backed by the provided InquiryRepo.
func NewInquiryService(r repo.InquiryRepo, opts Options) *InquiryService {
	return &InquiryService{repo: r, opts: opts.withDefaults()}
}

// Submit validates and persists a new inquiry. Nothing is written when
// validation fails.
func (s *InquiryService) Submit(ctx context.Context, in domain.NewInquiry) (domain.Inquiry, error) {
	in = in.Normalize()
	if err := validateNewInquiry(in); err != nil {
		return domain.Inquiry{}, err
	}

	sctx, cancel := s.opts.storeCtx(ctx)
	defer cancel()
	created, err := s.repo.Create(sctx, in)
	if err != nil {
		return domain.Inquiry{}, domain.NewStoreError("service.InquiryService.Submit", err)
	}
	s.opts.publish(ctx, domain.KindInquiries, domain.OpInsert, strconv.FormatInt(created.ID, 10))
	return created, nil
}

// SubmitMany submits each inquiry on its own. A failure is recorded in that
// record's result and the rest of the batch still runs.
func (s *InquiryService) SubmitMany(ctx context.Context, ins []domain.NewInquiry) []domain.BatchResult[domain.Inquiry] {
	results := make([]domain.BatchResult[domain.Inquiry], len(ins))
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

// GetByID returns a single inquiry.
func (s *InquiryService) GetByID(ctx context.Context, id int64) (domain.Inquiry, error) {
	sctx, cancel := s.opts.storeCtx(ctx)
	defer cancel()
	i, err := s.repo.GetByID(sctx, id)
	if err != nil {
		return domain.Inquiry{}, domain.NewStoreError("service.InquiryService.GetByID", err)
	}
	return i, nil
}

// List runs q and wraps the result in a page envelope. A status filter is
// accepted and ignored because inquiries carry no status.
func (s *InquiryService) List(ctx context.Context, q domain.Query) (domain.Page[domain.Inquiry], error) {
	if err := q.Validate(); err != nil {
		return domain.Page[domain.Inquiry]{}, err
	}

	sctx, cancel := s.opts.storeCtx(ctx)
	defer cancel()
	rows, total, err := s.repo.List(sctx, q)
	if err != nil {
		return domain.Page[domain.Inquiry]{}, domain.NewStoreError("service.InquiryService.List", err)
	}
	return domain.NewPage(rows, total, q.Page), nil
}

// ListAll returns every inquiry matching f, newest first.
func (s *InquiryService) ListAll(ctx context.Context, f domain.Filter) ([]domain.Inquiry, error) {
	page, err := s.List(ctx, domain.Query{Filter: f})
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}

// Update applies a partial update. Fields the patch leaves nil are untouched.
func (s *InquiryService) Update(ctx context.Context, id int64, patch domain.InquiryPatch) (domain.Inquiry, error) {
	if err := validateInquiryPatch(patch); err != nil {
		return domain.Inquiry{}, err
	}

	sctx, cancel := s.opts.storeCtx(ctx)
	defer cancel()
	updated, err := s.repo.Update(sctx, id, patch)
	if err != nil {
		return domain.Inquiry{}, domain.NewStoreError("service.InquiryService.Update", err)
	}
	s.opts.publish(ctx, domain.KindInquiries, domain.OpUpdate, strconv.FormatInt(id, 10))
	return updated, nil
}

// Delete removes an inquiry. A missing id is reported as domain.ErrNotFound.
func (s *InquiryService) Delete(ctx context.Context, id int64) error {
	sctx, cancel := s.opts.storeCtx(ctx)
	defer cancel()
	if err := s.repo.Delete(sctx, id); err != nil {
		return domain.NewStoreError("service.InquiryService.Delete", err)
	}
	s.opts.publish(ctx, domain.KindInquiries, domain.OpDelete, strconv.FormatInt(id, 10))
	return nil
}
