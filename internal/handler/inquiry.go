package handler

import (
	"net/http"

	"github.com/rupaladventures/basecamp/internal/domain"
	"github.com/rupaladventures/basecamp/internal/handoff"
)

// InquiryCreated is the body of a successful public inquiry submission.
type InquiryCreated struct {
	Inquiry domain.Inquiry `json:"inquiry"`
	Handoff handoff.Links  `json:"handoff"`
}

// SubmitInquiry handles POST /inquiries.
func (s *Server) SubmitInquiry(w http.ResponseWriter, r *http.Request) {
	var in domain.NewInquiry
	if err := decodeJSON(r, &in); err != nil {
		s.respondErr(w, r, err, "")
		return
	}

	created, err := s.inquiries.Submit(r.Context(), in)
	if err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, InquiryCreated{Inquiry: created, Handoff: s.handoff.Inquiry(created)})
}

// SubmitInquiryBatch handles POST /admin/inquiries/batch.
func (s *Server) SubmitInquiryBatch(w http.ResponseWriter, r *http.Request) {
	var ins []domain.NewInquiry
	if err := decodeJSON(r, &ins); err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, batchResponse(s.inquiries.SubmitMany(r.Context(), ins)))
}

// ListInquiries handles GET /admin/inquiries.
func (s *Server) ListInquiries(w http.ResponseWriter, r *http.Request) {
	q, err := listQuery(r)
	if err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	page, err := s.inquiries.List(r.Context(), q)
	if err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GetInquiry handles GET /admin/inquiries/{id}.
func (s *Server) GetInquiry(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	i, err := s.inquiries.GetByID(r.Context(), id)
	if err != nil {
		s.respondErr(w, r, err, "inquiry not found")
		return
	}
	writeJSON(w, http.StatusOK, i)
}

// UpdateInquiry handles PATCH /admin/inquiries/{id}.
func (s *Server) UpdateInquiry(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	var patch domain.InquiryPatch
	if err := decodeJSON(r, &patch); err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	updated, err := s.inquiries.Update(r.Context(), id, patch)
	if err != nil {
		s.respondErr(w, r, err, "inquiry not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteInquiry handles DELETE /admin/inquiries/{id}.
func (s *Server) DeleteInquiry(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	if err := s.inquiries.Delete(r.Context(), id); err != nil {
		s.respondErr(w, r, err, "inquiry not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
