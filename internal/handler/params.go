package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/rupaladventures/basecamp/internal/domain"
)

// defaultPageSize applies when a request names a page but no pageSize.
const defaultPageSize = 20

// Query keys accepted by the list, export and stream endpoints.
var (
	filterKeys = []string{"status", "country", "organization", "dateFrom", "dateTo", "search"}
	listKeys   = append([]string{"page", "pageSize", "sort", "order"}, filterKeys...)
)

// rejectUnknownKeys fails with a bad request naming every query key outside
// allowed, in sorted order.
func rejectUnknownKeys(q url.Values, allowed ...[]string) error {
	var unknown []string
	for k := range q {
		known := false
		for _, set := range allowed {
			if slices.Contains(set, k) {
				known = true
				break
			}
		}
		if !known {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return newBadRequest("unknown query parameter: " + strings.Join(unknown, ", "))
}

// bindQuery binds one optional form-style query parameter into dest.
func bindQuery(q url.Values, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, q, dest); err != nil {
		return newBadRequest(fmt.Sprintf("invalid query parameter %s", name))
	}
	return nil
}

// parseFilter reads the filter keys. A date-only dateTo covers the whole day.
func parseFilter(q url.Values) (domain.Filter, error) {
	var (
		f                            domain.Filter
		status, country, org, search *string
		dateFrom, dateTo             *time.Time
	)
	for name, dest := range map[string]any{
		"status":       &status,
		"country":      &country,
		"organization": &org,
		"search":       &search,
		"dateFrom":     &dateFrom,
		"dateTo":       &dateTo,
	} {
		if err := bindQuery(q, name, dest); err != nil {
			return domain.Filter{}, err
		}
	}

	f.Status = strings.TrimSpace(domain.Deref(status))
	f.Country = strings.TrimSpace(domain.Deref(country))
	f.Organization = strings.TrimSpace(domain.Deref(org))
	f.Search = strings.TrimSpace(domain.Deref(search))
	f.DateFrom = dateFrom
	if dateTo != nil {
		to := *dateTo
		if len(q.Get("dateTo")) == len(time.DateOnly) {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		f.DateTo = &to
	}
	return f, nil
}

// parseListQuery reads filter, sort and page keys into a domain.Query. A
// pageSize above domain.MaxPageSize is clamped. The query is otherwise
// returned unvalidated; services validate it before any store call.
func parseListQuery(q url.Values) (domain.Query, error) {
	f, err := parseFilter(q)
	if err != nil {
		return domain.Query{}, err
	}
	out := domain.Query{Filter: f}

	var (
		page, pageSize *int
		field, order   *string
	)
	for name, dest := range map[string]any{
		"page": &page, "pageSize": &pageSize, "sort": &field, "order": &order,
	} {
		if err := bindQuery(q, name, dest); err != nil {
			return domain.Query{}, err
		}
	}

	if field != nil || order != nil {
		s := domain.Sort{Field: domain.SortCreatedAt, Direction: domain.SortDesc}
		if field != nil {
			s.Field = domain.SortField(*field)
		}
		if order != nil {
			s.Direction = domain.SortDirection(strings.ToLower(*order))
		}
		out.Sort = &s
	}

	if page != nil || pageSize != nil {
		p := domain.PageRequest{Page: 1, PageSize: defaultPageSize}
		if page != nil {
			p.Page = *page
		}
		if pageSize != nil {
			p.PageSize = *pageSize
			if p.PageSize > domain.MaxPageSize {
				p.PageSize = domain.MaxPageSize
			}
		}
		out.Page = &p
	}
	return out, nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return uuid.Nil, newBadRequest(fmt.Sprintf("invalid %s: must be a UUID", name))
	}
	return id, nil
}

func pathInt64(r *http.Request, name string) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil || id <= 0 {
		return 0, newBadRequest(fmt.Sprintf("invalid %s: must be a positive integer", name))
	}
	return id, nil
}

// decodeJSON reads one JSON value from the request body into dst. Oversized
// bodies surface as *http.MaxBytesError for respondErr.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var mbe *http.MaxBytesError
		switch {
		case errors.As(err, &mbe):
			return mbe
		case errors.Is(err, io.EOF):
			return newBadRequest("request body is required")
		}
		return newBadRequest("request body must be valid JSON: " + err.Error())
	}
	if dec.More() {
		return newBadRequest("request body must hold a single JSON value")
	}
	return nil
}

// listQuery parses the query string of a list endpoint.
func listQuery(r *http.Request) (domain.Query, error) {
	q := r.URL.Query()
	if err := rejectUnknownKeys(q, listKeys); err != nil {
		return domain.Query{}, err
	}
	return parseListQuery(q)
}
