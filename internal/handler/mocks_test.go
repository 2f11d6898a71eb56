package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rupaladventures/basecamp/internal/analytics"
	"github.com/rupaladventures/basecamp/internal/domain"
	"github.com/rupaladventures/basecamp/internal/handler"
	"github.com/rupaladventures/basecamp/internal/service"
)

// ---- service doubles -------------------------------------------------------

// mockInquiryServicer is a test double for handler.InquiryServicer.
// Set only the method fields your test needs.
type mockInquiryServicer struct {
	submit     func(ctx context.Context, in domain.NewInquiry) (domain.Inquiry, error)
	submitMany func(ctx context.Context, ins []domain.NewInquiry) []domain.BatchResult[domain.Inquiry]
	getByID    func(ctx context.Context, id int64) (domain.Inquiry, error)
	list       func(ctx context.Context, q domain.Query) (domain.Page[domain.Inquiry], error)
	update     func(ctx context.Context, id int64, p domain.InquiryPatch) (domain.Inquiry, error)
	delete     func(ctx context.Context, id int64) error
}

func (m *mockInquiryServicer) Submit(ctx context.Context, in domain.NewInquiry) (domain.Inquiry, error) {
	return m.submit(ctx, in)
}
func (m *mockInquiryServicer) SubmitMany(ctx context.Context, ins []domain.NewInquiry) []domain.BatchResult[domain.Inquiry] {
	return m.submitMany(ctx, ins)
}
func (m *mockInquiryServicer) GetByID(ctx context.Context, id int64) (domain.Inquiry, error) {
	return m.getByID(ctx, id)
}
func (m *mockInquiryServicer) List(ctx context.Context, q domain.Query) (domain.Page[domain.Inquiry], error) {
	return m.list(ctx, q)
}
func (m *mockInquiryServicer) Update(ctx context.Context, id int64, p domain.InquiryPatch) (domain.Inquiry, error) {
	return m.update(ctx, id, p)
}
func (m *mockInquiryServicer) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

// mockBookingServicer is a test double for handler.BookingServicer.
type mockBookingServicer struct {
	submit     func(ctx context.Context, in domain.NewBooking) (domain.Booking, error)
	submitMany func(ctx context.Context, ins []domain.NewBooking) []domain.BatchResult[domain.Booking]
	getByID    func(ctx context.Context, id uuid.UUID) (domain.Booking, error)
	list       func(ctx context.Context, q domain.Query) (domain.Page[domain.Booking], error)
	update     func(ctx context.Context, id uuid.UUID, p domain.BookingPatch) (domain.Booking, error)
	delete     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockBookingServicer) Submit(ctx context.Context, in domain.NewBooking) (domain.Booking, error) {
	return m.submit(ctx, in)
}
func (m *mockBookingServicer) SubmitMany(ctx context.Context, ins []domain.NewBooking) []domain.BatchResult[domain.Booking] {
	return m.submitMany(ctx, ins)
}
func (m *mockBookingServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	return m.getByID(ctx, id)
}
func (m *mockBookingServicer) List(ctx context.Context, q domain.Query) (domain.Page[domain.Booking], error) {
	return m.list(ctx, q)
}
func (m *mockBookingServicer) Update(ctx context.Context, id uuid.UUID, p domain.BookingPatch) (domain.Booking, error) {
	return m.update(ctx, id, p)
}
func (m *mockBookingServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockAnalyticsServicer struct {
	report func(ctx context.Context, rng analytics.TimeRange, months int) (analytics.Report, error)
}

func (m *mockAnalyticsServicer) Report(ctx context.Context, rng analytics.TimeRange, months int) (analytics.Report, error) {
	return m.report(ctx, rng, months)
}

type mockExportServicer struct {
	export func(ctx context.Context, kind domain.RecordKind, f domain.Filter) (service.Export, error)
}

func (m *mockExportServicer) Export(ctx context.Context, kind domain.RecordKind, f domain.Filter) (service.Export, error) {
	return m.export(ctx, kind, f)
}

type mockPostServicer struct {
	published func(ctx context.Context) ([]domain.Post, error)
	byAuthor  func(ctx context.Context, author string) ([]domain.Post, error)
	create    func(ctx context.Context, author string, in domain.PostInput) (domain.Post, error)
	update    func(ctx context.Context, author string, id uuid.UUID, in domain.PostInput) (domain.Post, error)
	delete    func(ctx context.Context, author string, id uuid.UUID) error
}

func (m *mockPostServicer) Published(ctx context.Context) ([]domain.Post, error) {
	return m.published(ctx)
}
func (m *mockPostServicer) ByAuthor(ctx context.Context, author string) ([]domain.Post, error) {
	return m.byAuthor(ctx, author)
}
func (m *mockPostServicer) Create(ctx context.Context, author string, in domain.PostInput) (domain.Post, error) {
	return m.create(ctx, author, in)
}
func (m *mockPostServicer) Update(ctx context.Context, author string, id uuid.UUID, in domain.PostInput) (domain.Post, error) {
	return m.update(ctx, author, id, in)
}
func (m *mockPostServicer) Delete(ctx context.Context, author string, id uuid.UUID) error {
	return m.delete(ctx, author, id)
}

// compile-time checks: every double must satisfy its handler interface.
var (
	_ handler.InquiryServicer   = (*mockInquiryServicer)(nil)
	_ handler.BookingServicer   = (*mockBookingServicer)(nil)
	_ handler.AnalyticsServicer = (*mockAnalyticsServicer)(nil)
	_ handler.ExportServicer    = (*mockExportServicer)(nil)
	_ handler.PostServicer      = (*mockPostServicer)(nil)
)

// ---- identities ------------------------------------------------------------

var (
	adminUser = domain.User{
		ID:      uuid.MustParse("6f1c2b7e-0a4d-4a51-9b8e-2d3c4e5f6a70"),
		Email:   "owner@rupaladventures.com",
		Name:    "Owner",
		IsAdmin: true,
	}
	visitorUser = domain.User{
		ID:    uuid.MustParse("0b9d8c7a-6e5f-4d3c-8b2a-1f0e9d8c7b6a"),
		Email: "amina@example.com",
		Name:  "Amina",
	}
)

// stubVerifier maps bearer tokens to users. Unknown tokens are rejected.
type stubVerifier map[string]domain.User

func (s stubVerifier) Verify(token string, _ time.Time) (domain.User, error) {
	u, ok := s[token]
	if !ok {
		return domain.User{}, domain.ErrUnauthorized
	}
	return u, nil
}

var tokens = stubVerifier{"admin-token": adminUser, "visitor-token": visitorUser}

// ---- helpers ---------------------------------------------------------------

// newRouter wires a Server with the given deps the way main.go does.
func newRouter(d handler.Deps) http.Handler {
	return handler.NewServer(d).Routes(tokens)
}

// do sends one request through h. A non-empty token is sent as a bearer
// token; a non-nil body is encoded as JSON.
func do(t *testing.T, h http.Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorResponse {
	t.Helper()
	var body handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func decodeInto[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func strPtr(s string) *string { return &s }

func inquiryFixture() domain.Inquiry {
	return domain.Inquiry{
		ID:        42,
		FirstName: "Amina",
		LastName:  "Khan",
		Phone:     "+92 316 945 7494",
		Email:     "amina@example.com",
		City:      "Gilgit",
		Country:   "Pakistan",
		Subject:   strPtr("K2 Base Camp Trek"),
		Message:   strPtr("Is July a good month?"),
		CreatedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func bookingFixture() domain.Booking {
	return domain.Booking{
		ID:             uuid.MustParse("3a3f6b8e-9c1d-4e2f-8a7b-6c5d4e3f2a1b"),
		ExpeditionName: "Nanga Parbat Base Camp Trek",
		FirstName:      "Lukas",
		LastName:       "Meyer",
		Phone:          "+49 151 2345 6789",
		Email:          "lukas@example.de",
		City:           "Munich",
		Country:        "Germany",
		Status:         domain.BookingPending,
		CreatedAt:      time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC),
	}
}
