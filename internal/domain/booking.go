package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the lifecycle state of a booking. Any status may follow
// any other; no transition rules are enforced.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Valid reports whether s is one of the defined statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

// Booking is a request to reserve a slot on an expedition.
// UserID is set only when the submitter was signed in.
type Booking struct {
	ID             uuid.UUID     `json:"id"`
	ExpeditionName string        `json:"expedition_name"`
	FirstName      string        `json:"first_name"`
	LastName       string        `json:"last_name"`
	Phone          string        `json:"phone"`
	Email          string        `json:"email"`
	City           string        `json:"city"`
	Province       *string       `json:"province"`
	Organization   *string       `json:"organization"`
	Country        string        `json:"country"`
	Message        *string       `json:"message"`
	Status         BookingStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
	UserID         *uuid.UUID    `json:"user_id"`
}

// NewBooking is the input to a booking insert. An empty Status defaults to
// pending.
type NewBooking struct {
	ExpeditionName string        `json:"expedition_name"`
	FirstName      string        `json:"first_name"`
	LastName       string        `json:"last_name"`
	Phone          string        `json:"phone"`
	Email          string        `json:"email"`
	City           string        `json:"city"`
	Province       *string       `json:"province"`
	Organization   *string       `json:"organization"`
	Country        string        `json:"country"`
	Message        *string       `json:"message"`
	Status         BookingStatus `json:"status"`
	UserID         *uuid.UUID    `json:"user_id"`
}

// Normalize trims every field, nils blank optional fields and applies the
// default status.
func (n NewBooking) Normalize() NewBooking {
	n.ExpeditionName = trim(n.ExpeditionName)
	n.FirstName = trim(n.FirstName)
	n.LastName = trim(n.LastName)
	n.Phone = trim(n.Phone)
	n.Email = trim(n.Email)
	n.City = trim(n.City)
	n.Country = trim(n.Country)
	n.Province = Optional(n.Province)
	n.Organization = Optional(n.Organization)
	n.Message = Optional(n.Message)
	if n.Status == "" {
		n.Status = BookingPending
	}
	return n
}

// BookingPatch is a partial update. Nil fields are left untouched.
type BookingPatch struct {
	ExpeditionName *string        `json:"expedition_name"`
	FirstName      *string        `json:"first_name"`
	LastName       *string        `json:"last_name"`
	Phone          *string        `json:"phone"`
	Email          *string        `json:"email"`
	City           *string        `json:"city"`
	Province       *string        `json:"province"`
	Organization   *string        `json:"organization"`
	Country        *string        `json:"country"`
	Message        *string        `json:"message"`
	Status         *BookingStatus `json:"status"`
}

// Empty reports whether the patch supplies no field at all.
func (p BookingPatch) Empty() bool {
	return p == BookingPatch{}
}

// Apply returns b with every supplied field of p written over it.
func (p BookingPatch) Apply(b Booking) Booking {
	setString(&b.ExpeditionName, p.ExpeditionName)
	setString(&b.FirstName, p.FirstName)
	setString(&b.LastName, p.LastName)
	setString(&b.Phone, p.Phone)
	setString(&b.Email, p.Email)
	setString(&b.City, p.City)
	setString(&b.Country, p.Country)
	setOptional(&b.Province, p.Province)
	setOptional(&b.Organization, p.Organization)
	setOptional(&b.Message, p.Message)
	if p.Status != nil {
		b.Status = *p.Status
	}
	return b
}
