package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/rupaladventures/basecamp/internal/domain"
)

// GetExport handles GET /admin/export?type=inquiries|bookings plus the filter
// keys. The whole filtered set is returned as a CSV attachment.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if err := rejectUnknownKeys(q, []string{"type"}, filterKeys); err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	f, err := parseFilter(q)
	if err != nil {
		s.respondErr(w, r, err, "")
		return
	}

	out, err := s.export.Export(r.Context(), domain.RecordKind(q.Get("type")), f)
	if err != nil {
		s.respondErr(w, r, err, "")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(out.CSV)))
	w.Header().Set("X-Export-Rows", strconv.Itoa(out.Rows))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(out.CSV))
}
