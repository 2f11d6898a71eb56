package handler

import (
	"net/http"

	"github.com/rupaladventures/basecamp/internal/analytics"
	"github.com/rupaladventures/basecamp/internal/domain"
)

// maxTrendMonths caps the monthly trend window of one report.
const maxTrendMonths = 60

// GetAnalytics handles GET /admin/analytics?range=&months=.
func (s *Server) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if err := rejectUnknownKeys(q, []string{"range", "months"}); err != nil {
		s.respondErr(w, r, err, "")
		return
	}

	var (
		rawRange *string
		months   *int
	)
	if err := bindQuery(q, "range", &rawRange); err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	if err := bindQuery(q, "months", &months); err != nil {
		s.respondErr(w, r, err, "")
		return
	}

	rng, err := analytics.ParseTimeRange(domain.Deref(rawRange))
	if err != nil {
		s.respondErr(w, r, newBadRequest("range must be one of 1month, 3months, 6months, 1year"), "")
		return
	}
	n := 0
	if months != nil {
		if *months <= 0 || *months > maxTrendMonths {
			s.respondErr(w, r, newBadRequest("months must be between 1 and 60"), "")
			return
		}
		n = *months
	}

	report, err := s.analytics.Report(r.Context(), rng, n)
	if err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
