package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rupaladventures/basecamp/internal/domain"
)

// InquiryRepo defines the persistence operations for Inquiries.
// The service layer depends on this interface, not the concrete Postgres
// implementation, so it can be unit-tested against the memory repo or a mock.
type InquiryRepo interface {
	// Create inserts a new inquiry and returns the persisted record with the
	// store-assigned id and created_at.
	Create(ctx context.Context, in domain.NewInquiry) (domain.Inquiry, error)

	// GetByID retrieves a single inquiry.
	// Returns domain.ErrNotFound if no inquiry with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Inquiry, error)

	// List returns the inquiries matching q and the total match count
	// ignoring pagination. The status filter is ignored.
	List(ctx context.Context, q domain.Query) ([]domain.Inquiry, int64, error)

	// Update writes every supplied field of patch and returns the updated
	// record. Returns domain.ErrNotFound if no inquiry with that ID exists.
	Update(ctx context.Context, id int64, patch domain.InquiryPatch) (domain.Inquiry, error)

	// Delete removes an inquiry. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error
}

const inquiryColumns = `id, first_name, last_name, phone, email, city, province,
	organization, country, subject, message, created_at`

var inquiriesTable = table{
	name:          "inquiries",
	columns:       inquiryColumns,
	hasStatus:     false,
	searchColumns: []string{"first_name", "last_name", "email", "subject"},
}

// pgInquiryRepo is the Postgres implementation of InquiryRepo.
type pgInquiryRepo struct {
	db db
}

// NewInquiryRepo constructs an InquiryRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewInquiryRepo(db db) InquiryRepo {
	return &pgInquiryRepo{db: db}
}

func (r *pgInquiryRepo) Create(ctx context.Context, in domain.NewInquiry) (domain.Inquiry, error) {
	const q = `
		INSERT INTO inquiries (first_name, last_name, phone, email, city, province,
		                       organization, country, subject, message)
		VALUES (@first_name, @last_name, @phone, @email, @city, @province,
		        @organization, @country, @subject, @message)
		RETURNING ` + inquiryColumns

	args := pgx.NamedArgs{
		"first_name":   in.FirstName,
		"last_name":    in.LastName,
		"phone":        in.Phone,
		"email":        in.Email,
		"city":         in.City,
		"province":     in.Province, // nil becomes NULL
		"organization": in.Organization,
		"country":      in.Country,
		"subject":      in.Subject,
		"message":      in.Message,
	}

	result, err := scanInquiry(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Inquiry{}, fmt.Errorf("repo.InquiryRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgInquiryRepo) GetByID(ctx context.Context, id int64) (domain.Inquiry, error) {
	q := `SELECT ` + inquiryColumns + ` FROM inquiries WHERE id = @id`

	result, err := scanInquiry(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Inquiry{}, fmt.Errorf("repo.InquiryRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgInquiryRepo) List(ctx context.Context, q domain.Query) ([]domain.Inquiry, int64, error) {
	sq := buildSelect(inquiriesTable, q)

	rows, err := r.db.Query(ctx, sq.list, sq.args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.InquiryRepo.List: %w", err)
	}
	defer rows.Close()

	var total int64
	inquiries := []domain.Inquiry{}
	for rows.Next() {
		i, err := scanInquiry(countedRow{s: rows, total: &total})
		if err != nil {
			return nil, 0, fmt.Errorf("repo.InquiryRepo.List: scan: %w", err)
		}
		inquiries = append(inquiries, i)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.InquiryRepo.List: rows: %w", err)
	}

	if len(inquiries) == 0 {
		if err := r.db.QueryRow(ctx, sq.count, sq.args).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("repo.InquiryRepo.List: count: %w", err)
		}
	}

	return inquiries, total, nil
}

func (r *pgInquiryRepo) Update(ctx context.Context, id int64, patch domain.InquiryPatch) (domain.Inquiry, error) {
	set := newAssignments()
	set.required("first_name", patch.FirstName)
	set.required("last_name", patch.LastName)
	set.required("phone", patch.Phone)
	set.required("email", patch.Email)
	set.required("city", patch.City)
	set.required("country", patch.Country)
	set.optional("province", patch.Province)
	set.optional("organization", patch.Organization)
	set.optional("subject", patch.Subject)
	set.optional("message", patch.Message)

	if set.empty() {
		return r.GetByID(ctx, id)
	}

	q := `UPDATE inquiries SET ` + set.clause() + ` WHERE id = @id RETURNING ` + inquiryColumns
	set.args["id"] = id

	result, err := scanInquiry(r.db.QueryRow(ctx, q, set.args))
	if err != nil {
		return domain.Inquiry{}, fmt.Errorf("repo.InquiryRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgInquiryRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM inquiries WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.InquiryRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.InquiryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanInquiry maps one row into a domain.Inquiry. Nullable text columns scan
// straight into *string.
func scanInquiry(s scanner) (domain.Inquiry, error) {
	var i domain.Inquiry
	err := s.Scan(&i.ID, &i.FirstName, &i.LastName, &i.Phone, &i.Email, &i.City,
		&i.Province, &i.Organization, &i.Country, &i.Subject, &i.Message, &i.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Inquiry{}, domain.ErrNotFound
		}
		return domain.Inquiry{}, err
	}
	return i, nil
}
