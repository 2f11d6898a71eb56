package domain

// PageRequest carries page/pageSize values from the HTTP layer to the repo layer.
// Page is 1-indexed. Both values must be positive; Query.Validate rejects
// anything else before the store is reached.
type PageRequest struct {
	// Page is the current page number, starting at 1.
	Page int
	// PageSize is the maximum number of records to return.
	PageSize int
}

// MaxPageSize caps a single page. Larger requests are clamped by the HTTP
// layer, not rejected.
const MaxPageSize = 100

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Page is the uniform envelope returned by every list query.
// Total counts all matching records and ignores pagination.
type Page[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// NewPage builds the envelope for one page of data.
//
// With a PageRequest, TotalPages is ceil(total / pageSize) and is 0 when total
// is 0. Without one the whole result is a single page: Page is 1, PageSize
// equals total, and TotalPages is 1 unless the result is empty.
// Data is never nil.
func NewPage[T any](data []T, total int64, req *PageRequest) Page[T] {
	if data == nil {
		data = []T{}
	}
	if req == nil {
		p := Page[T]{Data: data, Total: total, Page: 1, PageSize: int(total)}
		if total > 0 {
			p.TotalPages = 1
		}
		return p
	}
	size := int64(req.PageSize)
	return Page[T]{
		Data:       data,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: int((total + size - 1) / size),
	}
}

// BatchResult is the outcome of one record in a batch insert.
// Batches are not atomic: each record succeeds or fails on its own, and Index
// identifies its position in the submitted slice.
type BatchResult[T any] struct {
	Index  int   `json:"index"`
	Record *T    `json:"record,omitempty"`
	Err    error `json:"-"`
}

// OK reports whether the record was stored.
func (r BatchResult[T]) OK() bool { return r.Err == nil }
