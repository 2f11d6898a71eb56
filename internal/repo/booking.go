package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rupaladventures/basecamp/internal/domain"
)

// BookingRepo defines the persistence operations for Bookings.
type BookingRepo interface {
	// Create inserts a new booking and returns the persisted record with the
	// store-assigned id and created_at.
	Create(ctx context.Context, in domain.NewBooking) (domain.Booking, error)

	// GetByID retrieves a single booking.
	// Returns domain.ErrNotFound if no booking with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error)

	// List returns the bookings matching q and the total match count
	// ignoring pagination.
	List(ctx context.Context, q domain.Query) ([]domain.Booking, int64, error)

	// Update writes every supplied field of patch and returns the updated
	// record. Returns domain.ErrNotFound if no booking with that ID exists.
	Update(ctx context.Context, id uuid.UUID, patch domain.BookingPatch) (domain.Booking, error)

	// Delete removes a booking. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

const bookingColumns = `id, expedition_name, first_name, last_name, phone, email,
	city, province, organization, country, message, status, created_at, user_id`

var bookingsTable = table{
	name:          "bookings",
	columns:       bookingColumns,
	hasStatus:     true,
	searchColumns: []string{"first_name", "last_name", "email", "expedition_name"},
}

// pgBookingRepo is the Postgres implementation of BookingRepo.
type pgBookingRepo struct {
	db db
}

// NewBookingRepo constructs a BookingRepo backed by the provided db connection.
func NewBookingRepo(db db) BookingRepo {
	return &pgBookingRepo{db: db}
}

func (r *pgBookingRepo) Create(ctx context.Context, in domain.NewBooking) (domain.Booking, error) {
	const q = `
		INSERT INTO bookings (expedition_name, first_name, last_name, phone, email, city,
		                      province, organization, country, message, status, user_id)
		VALUES (@expedition_name, @first_name, @last_name, @phone, @email, @city,
		        @province, @organization, @country, @message, @status, @user_id)
		RETURNING ` + bookingColumns

	status := in.Status
	if status == "" {
		status = domain.BookingPending
	}

	args := pgx.NamedArgs{
		"expedition_name": in.ExpeditionName,
		"first_name":      in.FirstName,
		"last_name":       in.LastName,
		"phone":           in.Phone,
		"email":           in.Email,
		"city":            in.City,
		"province":        in.Province,
		"organization":    in.Organization,
		"country":         in.Country,
		"message":         in.Message,
		"status":          string(status),
		"user_id":         nullUUID(in.UserID),
	}

	result, err := scanBooking(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = @id`

	result, err := scanBooking(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgBookingRepo) List(ctx context.Context, q domain.Query) ([]domain.Booking, int64, error) {
	sq := buildSelect(bookingsTable, q)

	rows, err := r.db.Query(ctx, sq.list, sq.args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.BookingRepo.List: %w", err)
	}
	defer rows.Close()

	var total int64
	bookings := []domain.Booking{}
	for rows.Next() {
		b, err := scanBooking(countedRow{s: rows, total: &total})
		if err != nil {
			return nil, 0, fmt.Errorf("repo.BookingRepo.List: scan: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.BookingRepo.List: rows: %w", err)
	}

	if len(bookings) == 0 {
		if err := r.db.QueryRow(ctx, sq.count, sq.args).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("repo.BookingRepo.List: count: %w", err)
		}
	}

	return bookings, total, nil
}

func (r *pgBookingRepo) Update(ctx context.Context, id uuid.UUID, patch domain.BookingPatch) (domain.Booking, error) {
	set := newAssignments()
	set.required("expedition_name", patch.ExpeditionName)
	set.required("first_name", patch.FirstName)
	set.required("last_name", patch.LastName)
	set.required("phone", patch.Phone)
	set.required("email", patch.Email)
	set.required("city", patch.City)
	set.required("country", patch.Country)
	set.optional("province", patch.Province)
	set.optional("organization", patch.Organization)
	set.optional("message", patch.Message)
	if patch.Status != nil {
		set.set("status", string(*patch.Status))
	}

	if set.empty() {
		return r.GetByID(ctx, id)
	}

	q := `UPDATE bookings SET ` + set.clause() + ` WHERE id = @id RETURNING ` + bookingColumns
	set.args["id"] = id

	result, err := scanBooking(r.db.QueryRow(ctx, q, set.args))
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM bookings WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.BookingRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.BookingRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanBooking maps one row into a domain.Booking, converting the uuid columns
// and the nullable user link.
func scanBooking(s scanner) (domain.Booking, error) {
	var (
		b      domain.Booking
		id     pgtype.UUID
		userID pgtype.UUID
		status string
	)

	err := s.Scan(&id, &b.ExpeditionName, &b.FirstName, &b.LastName, &b.Phone, &b.Email,
		&b.City, &b.Province, &b.Organization, &b.Country, &b.Message, &status, &b.CreatedAt, &userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Booking{}, domain.ErrNotFound
		}
		return domain.Booking{}, err
	}

	b.ID = uuid.UUID(id.Bytes)
	b.Status = domain.BookingStatus(status)
	if userID.Valid {
		u := uuid.UUID(userID.Bytes)
		b.UserID = &u
	}
	return b, nil
}

func nullUUID(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}
