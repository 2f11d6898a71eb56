// Package handler implements the HTTP handlers for the Rupal Adventures API.
// All handlers are methods on Server. They are split into domain-specific
// files (health.go, inquiry.go, etc.) but share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rupaladventures/basecamp/internal/analytics"
	"github.com/rupaladventures/basecamp/internal/domain"
	"github.com/rupaladventures/basecamp/internal/handoff"
	"github.com/rupaladventures/basecamp/internal/service"
)

// InquiryServicer defines the inquiry operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the store or service layer.
type InquiryServicer interface {
	Submit(ctx context.Context, in domain.NewInquiry) (domain.Inquiry, error)
	SubmitMany(ctx context.Context, ins []domain.NewInquiry) []domain.BatchResult[domain.Inquiry]
	GetByID(ctx context.Context, id int64) (domain.Inquiry, error)
	List(ctx context.Context, q domain.Query) (domain.Page[domain.Inquiry], error)
	Update(ctx context.Context, id int64, patch domain.InquiryPatch) (domain.Inquiry, error)
	Delete(ctx context.Context, id int64) error
}

// BookingServicer defines the booking operations the handlers depend on.
type BookingServicer interface {
	Submit(ctx context.Context, in domain.NewBooking) (domain.Booking, error)
	SubmitMany(ctx context.Context, ins []domain.NewBooking) []domain.BatchResult[domain.Booking]
	GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error)
	List(ctx context.Context, q domain.Query) (domain.Page[domain.Booking], error)
	Update(ctx context.Context, id uuid.UUID, patch domain.BookingPatch) (domain.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AnalyticsServicer builds the dashboard report.
type AnalyticsServicer interface {
	Report(ctx context.Context, rng analytics.TimeRange, months int) (analytics.Report, error)
}

// ExportServicer renders record sets as CSV.
type ExportServicer interface {
	Export(ctx context.Context, kind domain.RecordKind, f domain.Filter) (service.Export, error)
}

// PostServicer defines the post operations the handlers depend on.
type PostServicer interface {
	Published(ctx context.Context) ([]domain.Post, error)
	ByAuthor(ctx context.Context, author string) ([]domain.Post, error)
	Create(ctx context.Context, author string, in domain.PostInput) (domain.Post, error)
	Update(ctx context.Context, author string, id uuid.UUID, in domain.PostInput) (domain.Post, error)
	Delete(ctx context.Context, author string, id uuid.UUID) error
}

// CatalogServicer serves the static expedition catalog.
type CatalogServicer interface {
	List() []domain.Expedition
	Get(id string) (domain.Expedition, error)
}

// ChangeHub hands out change event subscriptions for the admin stream.
type ChangeHub interface {
	Subscribe() (<-chan domain.ChangeEvent, func())
}

// Deps lists everything a Server needs. Tests may leave the services they do
// not exercise nil.
type Deps struct {
	Inquiries InquiryServicer
	Bookings  BookingServicer
	Analytics AnalyticsServicer
	Export    ExportServicer
	Posts     PostServicer
	Catalog   CatalogServicer
	Hub       ChangeHub
	Handoff   handoff.Builder
	Logger    *slog.Logger

	// RefreshDebounce collapses bursts of change events on the admin stream.
	RefreshDebounce time.Duration
	// StreamHeartbeat is the interval of keep-alive comments on the admin
	// stream. Defaults to 25s.
	StreamHeartbeat time.Duration
}

// Server holds the dependencies of every route.
type Server struct {
	inquiries InquiryServicer
	bookings  BookingServicer
	analytics AnalyticsServicer
	export    ExportServicer
	posts     PostServicer
	catalog   CatalogServicer
	hub       ChangeHub
	handoff   handoff.Builder
	logger    *slog.Logger

	debounce  time.Duration
	heartbeat time.Duration
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.RefreshDebounce <= 0 {
		d.RefreshDebounce = 250 * time.Millisecond
	}
	if d.Handoff == (handoff.Builder{}) {
		d.Handoff = handoff.New("", "")
	}
	if d.StreamHeartbeat <= 0 {
		d.StreamHeartbeat = 25 * time.Second
	}
	return &Server{
		inquiries: d.Inquiries,
		bookings:  d.Bookings,
		analytics: d.Analytics,
		export:    d.Export,
		posts:     d.Posts,
		catalog:   d.Catalog,
		hub:       d.Hub,
		handoff:   d.Handoff,
		logger:    d.Logger,
		debounce:  d.RefreshDebounce,
		heartbeat: d.StreamHeartbeat,
	}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(Deps{})
}
