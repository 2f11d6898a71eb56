package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rupaladventures/basecamp/internal/middleware"
)

// Routes mounts every endpoint on a chi router. Request-scoped middleware
// (request id, logging, CORS) is applied by the caller.
func (s *Server) Routes(v middleware.TokenVerifier) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Get("/expeditions", s.ListExpeditions)
	r.Get("/expeditions/{id}", s.GetExpedition)
	r.Get("/posts", s.ListPublishedPosts)

	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalUser(v))
		r.Post("/inquiries", s.SubmitInquiry)
		r.Post("/bookings", s.SubmitBooking)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser(v))
		r.Get("/me", s.GetMe)
		r.Get("/me/posts", s.ListMyPosts)
		r.Post("/posts", s.CreatePost)
		r.Put("/posts/{id}", s.UpdatePost)
		r.Delete("/posts/{id}", s.DeletePost)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireUser(v))
		r.Use(middleware.RequireAdmin)

		r.Get("/inquiries", s.ListInquiries)
		r.Post("/inquiries/batch", s.SubmitInquiryBatch)
		r.Get("/inquiries/{id}", s.GetInquiry)
		r.Patch("/inquiries/{id}", s.UpdateInquiry)
		r.Delete("/inquiries/{id}", s.DeleteInquiry)

		r.Get("/bookings", s.ListBookings)
		r.Post("/bookings/batch", s.SubmitBookingBatch)
		r.Get("/bookings/{id}", s.GetBooking)
		r.Patch("/bookings/{id}", s.UpdateBooking)
		r.Delete("/bookings/{id}", s.DeleteBooking)

		r.Get("/analytics", s.GetAnalytics)
		r.Get("/export", s.GetExport)
		r.Get("/stream", s.Stream)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})
	return r
}
