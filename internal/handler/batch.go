package handler

import (
	"github.com/rupaladventures/basecamp/internal/domain"
)

// BatchItem reports one record of a batch insert.
type BatchItem[T any] struct {
	Index  int          `json:"index"`
	Record *T           `json:"record,omitempty"`
	Error  *ErrorDetail `json:"error,omitempty"`
}

// BatchResponse is the body of a batch insert. Records succeed or fail
// independently, so the request itself always succeeds.
type BatchResponse[T any] struct {
	Results   []BatchItem[T] `json:"results"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
}

func batchResponse[T any](results []domain.BatchResult[T]) BatchResponse[T] {
	out := BatchResponse[T]{Results: make([]BatchItem[T], len(results))}
	for i, res := range results {
		item := BatchItem[T]{Index: res.Index, Record: res.Record}
		if res.OK() {
			out.Succeeded++
		} else {
			_, detail := classify(res.Err, "")
			item.Error = &detail
			out.Failed++
		}
		out.Results[i] = item
	}
	return out
}
