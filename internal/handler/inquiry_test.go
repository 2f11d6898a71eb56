package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rupaladventures/basecamp/internal/domain"
	"github.com/rupaladventures/basecamp/internal/handler"
	"github.com/rupaladventures/basecamp/internal/middleware"
)

// ---- POST /inquiries -------------------------------------------------------

func TestSubmitInquiry_201WithHandoff(t *testing.T) {
	fixture := inquiryFixture()
	var got domain.NewInquiry
	svc := &mockInquiryServicer{
		submit: func(_ context.Context, in domain.NewInquiry) (domain.Inquiry, error) {
			got = in
			return fixture, nil
		},
	}

	rec := do(t, newRouter(handler.Deps{Inquiries: svc}), http.MethodPost, "/inquiries", "", map[string]any{
		"first_name": "Amina",
		"last_name":  "Khan",
		"email":      "amina@example.com",
		"subject":    "K2 Base Camp Trek",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Amina", got.FirstName)
	require.NotNil(t, got.Subject)
	assert.Equal(t, "K2 Base Camp Trek", *got.Subject)

	body := decodeInto[handler.InquiryCreated](t, rec)
	assert.Equal(t, fixture.ID, body.Inquiry.ID)
	assert.True(t, strings.HasPrefix(body.Handoff.WhatsApp, "https://wa.me/923169457494?text="))
	assert.True(t, strings.HasPrefix(body.Handoff.Email, "mailto:info@rupaladventures.com?"))
}

func TestSubmitInquiry_422ListsEveryField(t *testing.T) {
	svc := &mockInquiryServicer{
		submit: func(_ context.Context, _ domain.NewInquiry) (domain.Inquiry, error) {
			verr := &domain.ValidationError{}
			verr.Add("first_name", "first name is required")
			verr.Add("email", "Invalid email format")
			return domain.Inquiry{}, verr
		},
	}

	rec := do(t, newRouter(handler.Deps{Inquiries: svc}), http.MethodPost, "/inquiries", "", map[string]any{})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "validation_error", body.Error.Code)
	assert.Equal(t, "first name is required", body.Error.Message)
	assert.Equal(t, []domain.FieldError{
		{Field: "first_name", Message: "first name is required"},
		{Field: "email", Message: "Invalid email format"},
	}, body.Error.Fields)
}

func TestSubmitInquiry_502HidesStoreCause(t *testing.T) {
	svc := &mockInquiryServicer{
		submit: func(_ context.Context, _ domain.NewInquiry) (domain.Inquiry, error) {
			return domain.Inquiry{}, domain.NewStoreError("service.InquiryService.Submit", errors.New("dial tcp 10.0.0.5:5432: connection refused"))
		},
	}

	rec := do(t, newRouter(handler.Deps{Inquiries: svc}), http.MethodPost, "/inquiries", "", map[string]any{"first_name": "A"})

	require.Equal(t, http.StatusBadGateway, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "store_unavailable", body.Error.Code)
	assert.NotContains(t, body.Error.Message, "10.0.0.5")
}

func TestSubmitInquiry_400MalformedJSON(t *testing.T) {
	h := newRouter(handler.Deps{Inquiries: &mockInquiryServicer{}})

	rec := do(t, h, http.MethodPost, "/inquiries", "", "not an object")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", decodeError(t, rec).Error.Code)
}

func TestSubmitInquiry_413BodyTooLarge(t *testing.T) {
	h := middleware.NewMaxBodySizeHandler(32)(newRouter(handler.Deps{Inquiries: &mockInquiryServicer{}}))

	rec := do(t, h, http.MethodPost, "/inquiries", "", map[string]any{"message": strings.Repeat("x", 64)})

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

// ---- GET /admin/inquiries --------------------------------------------------

func TestListInquiries_requiresAdmin(t *testing.T) {
	h := newRouter(handler.Deps{Inquiries: &mockInquiryServicer{}})

	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodGet, "/admin/inquiries", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodGet, "/admin/inquiries", "forged", nil).Code)
	assert.Equal(t, http.StatusForbidden, do(t, h, http.MethodGet, "/admin/inquiries", "visitor-token", nil).Code)
}

func TestListInquiries_bindsQuery(t *testing.T) {
	var got domain.Query
	svc := &mockInquiryServicer{
		list: func(_ context.Context, q domain.Query) (domain.Page[domain.Inquiry], error) {
			got = q
			return domain.NewPage([]domain.Inquiry{inquiryFixture()}, 6, q.Page), nil
		},
	}

	rec := do(t, newRouter(handler.Deps{Inquiries: svc}), http.MethodGet,
		"/admin/inquiries?page=2&pageSize=5&sort=last_name&order=ASC&country=Pakistan&search=%20k2%20"+
			"&dateFrom=2025-01-01T00:00:00Z&dateTo=2025-03-31",
		"admin-token", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.Page)
	assert.Equal(t, domain.PageRequest{Page: 2, PageSize: 5}, *got.Page)
	require.NotNil(t, got.Sort)
	assert.Equal(t, domain.Sort{Field: domain.SortLastName, Direction: domain.SortAsc}, *got.Sort)
	assert.Equal(t, "Pakistan", got.Filter.Country)
	assert.Equal(t, "k2", got.Filter.Search)
	require.NotNil(t, got.Filter.DateFrom)
	assert.True(t, got.Filter.DateFrom.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, got.Filter.DateTo)
	assert.True(t, got.Filter.DateTo.Equal(time.Date(2025, 3, 31, 23, 59, 59, 999999999, time.UTC)),
		"a date-only dateTo covers the whole day")

	page := decodeInto[domain.Page[domain.Inquiry]](t, rec)
	assert.Equal(t, int64(6), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Data, 1)
}

func TestListInquiries_noPaginationMeansWholeSet(t *testing.T) {
	var got domain.Query
	svc := &mockInquiryServicer{
		list: func(_ context.Context, q domain.Query) (domain.Page[domain.Inquiry], error) {
			got = q
			return domain.NewPage[domain.Inquiry](nil, 0, nil), nil
		},
	}

	rec := do(t, newRouter(handler.Deps{Inquiries: svc}), http.MethodGet, "/admin/inquiries", "admin-token", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, got.Page)
	assert.Nil(t, got.Sort)
	assert.JSONEq(t, `{"data":[],"total":0,"page":1,"pageSize":0,"totalPages":0}`, rec.Body.String())
}

func TestListInquiries_pageOnlyUsesDefaultSize(t *testing.T) {
	var got domain.Query
	svc := &mockInquiryServicer{
		list: func(_ context.Context, q domain.Query) (domain.Page[domain.Inquiry], error) {
			got = q
			return domain.NewPage[domain.Inquiry](nil, 0, q.Page), nil
		},
	}

	rec := do(t, newRouter(handler.Deps{Inquiries: svc}), http.MethodGet, "/admin/inquiries?page=3", "admin-token", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.Page)
	assert.Equal(t, domain.PageRequest{Page: 3, PageSize: 20}, *got.Page)
}

func TestListInquiries_oversizedPageSizeIsClamped(t *testing.T) {
	var got domain.Query
	svc := &mockInquiryServicer{
		list: func(_ context.Context, q domain.Query) (domain.Page[domain.Inquiry], error) {
			got = q
			return domain.NewPage[domain.Inquiry](nil, 250, q.Page), nil
		},
	}

	rec := do(t, newRouter(handler.Deps{Inquiries: svc}), http.MethodGet, "/admin/inquiries?page=2&pageSize=500", "admin-token", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.Page)
	assert.Equal(t, domain.PageRequest{Page: 2, PageSize: domain.MaxPageSize}, *got.Page)
	page := decodeInto[domain.Page[domain.Inquiry]](t, rec)
	assert.Equal(t, 100, page.PageSize)
	assert.Equal(t, 3, page.TotalPages)
}

func TestListInquiries_400UnknownKey(t *testing.T) {
	h := newRouter(handler.Deps{Inquiries: &mockInquiryServicer{}})

	rec := do(t, h, http.MethodGet, "/admin/inquiries?limit=5&priority=high", "admin-token", nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "unknown query parameter: limit, priority", decodeError(t, rec).Error.Message)
}

func TestListInquiries_400NonNumericPage(t *testing.T) {
	h := newRouter(handler.Deps{Inquiries: &mockInquiryServicer{}})

	rec := do(t, h, http.MethodGet, "/admin/inquiries?page=two", "admin-token", nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListInquiries_422InvalidQuery(t *testing.T) {
	svc := &mockInquiryServicer{
		list: func(_ context.Context, q domain.Query) (domain.Page[domain.Inquiry], error) {
			return domain.Page[domain.Inquiry]{}, q.Validate()
		},
	}

	rec := do(t, newRouter(handler.Deps{Inquiries: svc}), http.MethodGet, "/admin/inquiries?pageSize=0", "admin-token", nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeError(t, rec)
	require.Len(t, body.Error.Fields, 1)
	assert.Equal(t, "pageSize", body.Error.Fields[0].Field)
}

// ---- /admin/inquiries/{id} -------------------------------------------------

func TestGetInquiry_200(t *testing.T) {
	svc := &mockInquiryServicer{
		getByID: func(_ context.Context, id int64) (domain.Inquiry, error) {
			i := inquiryFixture()
			i.ID = id
			return i, nil
		},
	}

	rec := do(t, newRouter(handler.Deps{Inquiries: svc}), http.MethodGet, "/admin/inquiries/7", "admin-token", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), decodeInto[domain.Inquiry](t, rec).ID)
}

func TestGetInquiry_404(t *testing.T) {
	svc := &mockInquiryServicer{
		getByID: func(_ context.Context, id int64) (domain.Inquiry, error) {
			return domain.Inquiry{}, domain.NewStoreError("service.InquiryService.GetByID",
				fmt.Errorf("repo.InquiryRepo.GetByID: %w", domain.ErrNotFound))
		},
	}

	rec := do(t, newRouter(handler.Deps{Inquiries: svc}), http.MethodGet, "/admin/inquiries/99", "admin-token", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "inquiry not found", decodeError(t, rec).Error.Message)
}

func TestGetInquiry_400BadID(t *testing.T) {
	h := newRouter(handler.Deps{Inquiries: &mockInquiryServicer{}})

	for _, id := range []string{"abc", "0", "-3"} {
		rec := do(t, h, http.MethodGet, "/admin/inquiries/"+id, "admin-token", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, id)
	}
}

func TestUpdateInquiry_200(t *testing.T) {
	var gotPatch domain.InquiryPatch
	svc := &mockInquiryServicer{
		update: func(_ context.Context, id int64, p domain.InquiryPatch) (domain.Inquiry, error) {
			gotPatch = p
			i := inquiryFixture()
			i.City = *p.City
			return i, nil
		},
	}

	rec := do(t, newRouter(handler.Deps{Inquiries: svc}), http.MethodPatch, "/admin/inquiries/42", "admin-token",
		map[string]any{"city": "Skardu"})

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotPatch.City)
	assert.Nil(t, gotPatch.Email, "absent fields stay nil")
	assert.Equal(t, "Skardu", decodeInto[domain.Inquiry](t, rec).City)
}

func TestDeleteInquiry_204(t *testing.T) {
	var deleted int64
	svc := &mockInquiryServicer{
		delete: func(_ context.Context, id int64) error {
			deleted = id
			return nil
		},
	}

	rec := do(t, newRouter(handler.Deps{Inquiries: svc}), http.MethodDelete, "/admin/inquiries/42", "admin-token", nil)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(42), deleted)
}

// ---- POST /admin/inquiries/batch -------------------------------------------

func TestSubmitInquiryBatch_reportsEachRecord(t *testing.T) {
	svc := &mockInquiryServicer{
		submitMany: func(_ context.Context, ins []domain.NewInquiry) []domain.BatchResult[domain.Inquiry] {
			ok := inquiryFixture()
			verr := &domain.ValidationError{}
			verr.Add("email", "Invalid email format")
			return []domain.BatchResult[domain.Inquiry]{
				{Index: 0, Record: &ok},
				{Index: 1, Err: verr},
			}
		},
	}

	rec := do(t, newRouter(handler.Deps{Inquiries: svc}), http.MethodPost, "/admin/inquiries/batch", "admin-token",
		[]map[string]any{{"first_name": "Amina"}, {"email": "nope"}})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeInto[handler.BatchResponse[domain.Inquiry]](t, rec)
	assert.Equal(t, 1, body.Succeeded)
	assert.Equal(t, 1, body.Failed)
	require.Len(t, body.Results, 2)
	require.NotNil(t, body.Results[0].Record)
	assert.Nil(t, body.Results[0].Error)
	require.NotNil(t, body.Results[1].Error)
	assert.Equal(t, "validation_error", body.Results[1].Error.Code)
	assert.Equal(t, "Invalid email format", body.Results[1].Error.Message)
}
