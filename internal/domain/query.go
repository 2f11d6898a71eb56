package domain

import (
	"strings"
	"time"
)

// SortField names a column a list query may be ordered by.
type SortField string

const (
	SortCreatedAt SortField = "created_at"
	SortFirstName SortField = "first_name"
	SortLastName  SortField = "last_name"
	SortEmail     SortField = "email"
	SortStatus    SortField = "status"
)

// Valid reports whether f is one of the sortable fields.
func (f SortField) Valid() bool {
	switch f {
	case SortCreatedAt, SortFirstName, SortLastName, SortEmail, SortStatus:
		return true
	}
	return false
}

// SortDirection is ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sort orders a list query. The zero value is not valid; use DefaultSort.
type Sort struct {
	Field     SortField
	Direction SortDirection
}

// DefaultSort is applied when a query carries no Sort: newest first.
var DefaultSort = Sort{Field: SortCreatedAt, Direction: SortDesc}

// Filter is the closed set of match conditions a list query accepts.
// Empty strings and nil times mean "no condition". All supplied conditions
// must hold for a record to match.
type Filter struct {
	// Status matches exactly. Ignored for inquiries, whose schema has no status.
	Status string
	// Country matches exactly.
	Country string
	// Organization matches exactly.
	Organization string
	// DateFrom and DateTo bound created_at inclusively.
	DateFrom *time.Time
	DateTo   *time.Time
	// Search is a case-insensitive substring matched against first_name,
	// last_name, email, and subject (inquiries) or expedition_name (bookings).
	Search string
}

// Query is a full list request: filter, optional sort, optional page.
// A nil Page returns the whole filtered result as one page.
type Query struct {
	Filter Filter
	Sort   *Sort
	Page   *PageRequest
}

// EffectiveSort returns q.Sort or DefaultSort.
func (q Query) EffectiveSort() Sort {
	if q.Sort == nil {
		return DefaultSort
	}
	return *q.Sort
}

// Validate checks the query shape before it reaches a store.
func (q Query) Validate() error {
	verr := &ValidationError{}
	if q.Sort != nil {
		if !q.Sort.Field.Valid() {
			verr.Add("sort", "unsupported sort field "+string(q.Sort.Field))
		}
		if q.Sort.Direction != SortAsc && q.Sort.Direction != SortDesc {
			verr.Add("order", "sort direction must be asc or desc")
		}
	}
	if q.Page != nil {
		if q.Page.Page <= 0 {
			verr.Add("page", "page must be a positive integer")
		}
		if q.Page.PageSize <= 0 {
			verr.Add("pageSize", "pageSize must be a positive integer")
		}
	}
	f := q.Filter
	if f.DateFrom != nil && f.DateTo != nil && f.DateFrom.After(*f.DateTo) {
		verr.Add("dateFrom", "dateFrom must not be after dateTo")
	}
	return verr.OrNil()
}

// MatchesText reports whether term occurs case-insensitively in any of fields.
// An empty term matches everything.
func MatchesText(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// InRange reports whether t lies within the filter's inclusive date bounds.
func (f Filter) InRange(t time.Time) bool {
	if f.DateFrom != nil && t.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && t.After(*f.DateTo) {
		return false
	}
	return true
}
