package repo

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rupaladventures/basecamp/internal/domain"
)

// MemoryInquiryRepo is an in-memory InquiryRepo for tests and local
// development. Filtering, ordering and paging match the Postgres repo.
type MemoryInquiryRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   []domain.Inquiry

	// Clock stamps created_at on insert. Defaults to time.Now.
	Clock func() time.Time
}

// NewMemoryInquiryRepo returns an empty MemoryInquiryRepo.
func NewMemoryInquiryRepo() *MemoryInquiryRepo {
	return &MemoryInquiryRepo{Clock: time.Now}
}

var _ InquiryRepo = (*MemoryInquiryRepo)(nil)

func (r *MemoryInquiryRepo) Create(ctx context.Context, in domain.NewInquiry) (domain.Inquiry, error) {
	if err := ctx.Err(); err != nil {
		return domain.Inquiry{}, fmt.Errorf("repo.MemoryInquiryRepo.Create: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	i := domain.Inquiry{
		ID:           r.nextID,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		Email:        in.Email,
		City:         in.City,
		Province:     in.Province,
		Organization: in.Organization,
		Country:      in.Country,
		Subject:      in.Subject,
		Message:      in.Message,
		CreatedAt:    r.Clock().UTC(),
	}
	r.rows = append(r.rows, i)
	return i, nil
}

func (r *MemoryInquiryRepo) GetByID(ctx context.Context, id int64) (domain.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.rows {
		if i.ID == id {
			return i, nil
		}
	}
	return domain.Inquiry{}, fmt.Errorf("repo.MemoryInquiryRepo.GetByID: %w", domain.ErrNotFound)
}

func (r *MemoryInquiryRepo) List(ctx context.Context, q domain.Query) ([]domain.Inquiry, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.MemoryInquiryRepo.List: %w", err)
	}
	r.mu.Lock()
	matched := make([]domain.Inquiry, 0, len(r.rows))
	for _, i := range r.rows {
		if inquiryMatches(q.Filter, i) {
			matched = append(matched, i)
		}
	}
	r.mu.Unlock()

	total := int64(len(matched))
	return sortAndPage(matched, q, false, inquiryKeys), total, nil
}

func (r *MemoryInquiryRepo) Update(ctx context.Context, id int64, patch domain.InquiryPatch) (domain.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for n, i := range r.rows {
		if i.ID == id {
			r.rows[n] = patch.Apply(i)
			return r.rows[n], nil
		}
	}
	return domain.Inquiry{}, fmt.Errorf("repo.MemoryInquiryRepo.Update: %w", domain.ErrNotFound)
}

func (r *MemoryInquiryRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for n, i := range r.rows {
		if i.ID == id {
			r.rows = slices.Delete(r.rows, n, n+1)
			return nil
		}
	}
	return fmt.Errorf("repo.MemoryInquiryRepo.Delete: %w", domain.ErrNotFound)
}

// MemoryBookingRepo is an in-memory BookingRepo for tests and local
// development.
type MemoryBookingRepo struct {
	mu   sync.Mutex
	rows []domain.Booking

	// Clock stamps created_at on insert. Defaults to time.Now.
	Clock func() time.Time
}

// NewMemoryBookingRepo returns an empty MemoryBookingRepo.
func NewMemoryBookingRepo() *MemoryBookingRepo {
	return &MemoryBookingRepo{Clock: time.Now}
}

var _ BookingRepo = (*MemoryBookingRepo)(nil)

func (r *MemoryBookingRepo) Create(ctx context.Context, in domain.NewBooking) (domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return domain.Booking{}, fmt.Errorf("repo.MemoryBookingRepo.Create: %w", err)
	}
	status := in.Status
	if status == "" {
		status = domain.BookingPending
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	b := domain.Booking{
		ID:             uuid.New(),
		ExpeditionName: in.ExpeditionName,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Phone:          in.Phone,
		Email:          in.Email,
		City:           in.City,
		Province:       in.Province,
		Organization:   in.Organization,
		Country:        in.Country,
		Message:        in.Message,
		Status:         status,
		CreatedAt:      r.Clock().UTC(),
		UserID:         in.UserID,
	}
	r.rows = append(r.rows, b)
	return b, nil
}

func (r *MemoryBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.rows {
		if b.ID == id {
			return b, nil
		}
	}
	return domain.Booking{}, fmt.Errorf("repo.MemoryBookingRepo.GetByID: %w", domain.ErrNotFound)
}

func (r *MemoryBookingRepo) List(ctx context.Context, q domain.Query) ([]domain.Booking, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.MemoryBookingRepo.List: %w", err)
	}
	r.mu.Lock()
	matched := make([]domain.Booking, 0, len(r.rows))
	for _, b := range r.rows {
		if bookingMatches(q.Filter, b) {
			matched = append(matched, b)
		}
	}
	r.mu.Unlock()

	total := int64(len(matched))
	return sortAndPage(matched, q, true, bookingKeys), total, nil
}

func (r *MemoryBookingRepo) Update(ctx context.Context, id uuid.UUID, patch domain.BookingPatch) (domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for n, b := range r.rows {
		if b.ID == id {
			r.rows[n] = patch.Apply(b)
			return r.rows[n], nil
		}
	}
	return domain.Booking{}, fmt.Errorf("repo.MemoryBookingRepo.Update: %w", domain.ErrNotFound)
}

func (r *MemoryBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for n, b := range r.rows {
		if b.ID == id {
			r.rows = slices.Delete(r.rows, n, n+1)
			return nil
		}
	}
	return fmt.Errorf("repo.MemoryBookingRepo.Delete: %w", domain.ErrNotFound)
}

func inquiryMatches(f domain.Filter, i domain.Inquiry) bool {
	if f.Country != "" && i.Country != f.Country {
		return false
	}
	if f.Organization != "" && domain.Deref(i.Organization) != f.Organization {
		return false
	}
	return f.InRange(i.CreatedAt) &&
		domain.MatchesText(f.Search, i.FirstName, i.LastName, i.Email, domain.Deref(i.Subject))
}

func bookingMatches(f domain.Filter, b domain.Booking) bool {
	if f.Status != "" && string(b.Status) != f.Status {
		return false
	}
	if f.Country != "" && b.Country != f.Country {
		return false
	}
	if f.Organization != "" && domain.Deref(b.Organization) != f.Organization {
		return false
	}
	return f.InRange(b.CreatedAt) &&
		domain.MatchesText(f.Search, b.FirstName, b.LastName, b.Email, b.ExpeditionName)
}

// sortKeys holds the sortable columns of one record.
type sortKeys struct {
	createdAt time.Time
	firstName string
	lastName  string
	email     string
	status    string
}

func inquiryKeys(i domain.Inquiry) sortKeys {
	return sortKeys{createdAt: i.CreatedAt, firstName: i.FirstName, lastName: i.LastName, email: i.Email}
}

func bookingKeys(b domain.Booking) sortKeys {
	return sortKeys{
		createdAt: b.CreatedAt,
		firstName: b.FirstName,
		lastName:  b.LastName,
		email:     b.Email,
		status:    string(b.Status),
	}
}

func compareKeys(a, b sortKeys, f domain.SortField) int {
	switch f {
	case domain.SortCreatedAt:
		return a.createdAt.Compare(b.createdAt)
	case domain.SortFirstName:
		return strings.Compare(a.firstName, b.firstName)
	case domain.SortLastName:
		return strings.Compare(a.lastName, b.lastName)
	case domain.SortEmail:
		return strings.Compare(a.email, b.email)
	case domain.SortStatus:
		return strings.Compare(a.status, b.status)
	}
	return 0
}

// sortAndPage orders items the way orderBy does in SQL. items arrive in
// insertion order and the sort is stable, so ties after the created_at
// fallback keep that order.
func sortAndPage[T any](items []T, q domain.Query, hasStatus bool, keys func(T) sortKeys) []T {
	s := q.EffectiveSort()
	applies := s.Field != domain.SortStatus || hasStatus
	slices.SortStableFunc(items, func(a, b T) int {
		ka, kb := keys(a), keys(b)
		c := 0
		if applies {
			c = compareKeys(ka, kb, s.Field)
			if s.Direction == domain.SortDesc {
				c = -c
			}
		}
		if c == 0 && s.Field != domain.SortCreatedAt {
			c = ka.createdAt.Compare(kb.createdAt)
		}
		return c
	})

	if q.Page == nil {
		return items
	}
	start := min(q.Page.Offset(), len(items))
	end := min(start+q.Page.PageSize, len(items))
	return items[start:end]
}
