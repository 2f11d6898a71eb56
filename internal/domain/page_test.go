package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rupaladventures/basecamp/internal/domain"
)

func TestNewPage_TotalPages(t *testing.T) {
	cases := []struct {
		name  string
		total int64
		size  int
		want  int
	}{
		{"empty result", 0, 10, 0},
		{"exact multiple", 20, 10, 2},
		{"partial last page", 15, 10, 2},
		{"single short page", 3, 10, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := domain.NewPage([]int{}, tc.total, &domain.PageRequest{Page: 1, PageSize: tc.size})
			assert.Equal(t, tc.want, p.TotalPages)
			assert.Equal(t, tc.size, p.PageSize)
		})
	}
}

func TestNewPage_Unpaginated(t *testing.T) {
	p := domain.NewPage([]string{"a", "b", "c"}, 3, nil)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 3, p.PageSize)
	assert.Equal(t, 1, p.TotalPages)

	empty := domain.NewPage[string](nil, 0, nil)
	assert.NotNil(t, empty.Data, "data must never be nil")
	assert.Equal(t, 0, empty.TotalPages)
}

func TestPageRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, domain.PageRequest{Page: 1, PageSize: 10}.Offset())
	assert.Equal(t, 20, domain.PageRequest{Page: 3, PageSize: 10}.Offset())
}

func TestQueryValidate(t *testing.T) {
	from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -1)

	cases := []struct {
		name   string
		q      domain.Query
		fields []string
	}{
		{"zero query is valid", domain.Query{}, nil},
		{"zero page size", domain.Query{Page: &domain.PageRequest{Page: 1, PageSize: 0}}, []string{"pageSize"}},
		{"negative page size", domain.Query{Page: &domain.PageRequest{Page: 1, PageSize: -4}}, []string{"pageSize"}},
		{"zero page", domain.Query{Page: &domain.PageRequest{Page: 0, PageSize: 10}}, []string{"page"}},
		{"oversized page is left to the caller", domain.Query{Page: &domain.PageRequest{Page: 1, PageSize: 500}}, nil},
		{"unknown sort field", domain.Query{Sort: &domain.Sort{Field: "phone", Direction: domain.SortAsc}}, []string{"sort"}},
		{"bad direction", domain.Query{Sort: &domain.Sort{Field: domain.SortEmail, Direction: "up"}}, []string{"order"}},
		{"inverted range", domain.Query{Filter: domain.Filter{DateFrom: &from, DateTo: &to}}, []string{"dateFrom"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.q.Validate()
			if tc.fields == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, domain.ErrValidation)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			var got []string
			for _, p := range verr.Problems {
				got = append(got, p.Field)
			}
			assert.Equal(t, tc.fields, got)
		})
	}
}

func TestFilterInRange_Inclusive(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	f := domain.Filter{DateFrom: &from, DateTo: &to}

	assert.True(t, f.InRange(from))
	assert.True(t, f.InRange(to))
	assert.False(t, f.InRange(from.Add(-time.Nanosecond)))
	assert.False(t, f.InRange(to.Add(time.Nanosecond)))
}

func TestMatchesText(t *testing.T) {
	assert.True(t, domain.MatchesText("", "anything"))
	assert.True(t, domain.MatchesText("KHAN", "Ali", "Khan"))
	assert.False(t, domain.MatchesText("zzz", "Ali", "Khan"))
}
