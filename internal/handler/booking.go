package handler

import (
	"net/http"

	"github.com/rupaladventures/basecamp/internal/auth"
	"github.com/rupaladventures/basecamp/internal/domain"
	"github.com/rupaladventures/basecamp/internal/handoff"
)

// BookingCreated is the body of a successful public booking submission.
type BookingCreated struct {
	Booking domain.Booking `json:"booking"`
	Handoff handoff.Links  `json:"handoff"`
}

// SubmitBooking handles POST /bookings. Public bookings always start pending
// and are linked to the caller only through a verified token.
func (s *Server) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	var in domain.NewBooking
	if err := decodeJSON(r, &in); err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	in.Status = domain.BookingPending
	in.UserID = nil
	if u, ok := auth.UserFrom(r.Context()); ok {
		id := u.ID
		in.UserID = &id
	}

	created, err := s.bookings.Submit(r.Context(), in)
	if err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, BookingCreated{Booking: created, Handoff: s.handoff.Booking(created)})
}

// SubmitBookingBatch handles POST /admin/bookings/batch.
func (s *Server) SubmitBookingBatch(w http.ResponseWriter, r *http.Request) {
	var ins []domain.NewBooking
	if err := decodeJSON(r, &ins); err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, batchResponse(s.bookings.SubmitMany(r.Context(), ins)))
}

// ListBookings handles GET /admin/bookings.
func (s *Server) ListBookings(w http.ResponseWriter, r *http.Request) {
	q, err := listQuery(r)
	if err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	page, err := s.bookings.List(r.Context(), q)
	if err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GetBooking handles GET /admin/bookings/{id}.
func (s *Server) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	b, err := s.bookings.GetByID(r.Context(), id)
	if err != nil {
		s.respondErr(w, r, err, "booking not found")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// UpdateBooking handles PATCH /admin/bookings/{id}, including status changes.
func (s *Server) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	var patch domain.BookingPatch
	if err := decodeJSON(r, &patch); err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	updated, err := s.bookings.Update(r.Context(), id, patch)
	if err != nil {
		s.respondErr(w, r, err, "booking not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteBooking handles DELETE /admin/bookings/{id}.
func (s *Server) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	if err := s.bookings.Delete(r.Context(), id); err != nil {
		s.respondErr(w, r, err, "booking not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
