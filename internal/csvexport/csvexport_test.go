package csvexport_test

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rupaladventures/basecamp/internal/csvexport"
)

func TestEncode_Empty(t *testing.T) {
	assert.Equal(t, "", csvexport.Encode(nil))
}

func TestEncode_QuotingRules(t *testing.T) {
	note := `said "hi", then left`
	rows := []csvexport.Row{
		{{"id", int64(7)}, {"name", "Ali"}, {"message", &note}, {"province", nil}, {"paid", true}},
		{{"id", int64(8)}, {"name", "O'Neil"}, {"message", (*string)(nil)}, {"province", "Punjab"}, {"paid", false}},
	}

	got := csvexport.Encode(rows)

	want := "id,name,message,province,paid\n" +
		`7,"Ali","said ""hi"", then left",,true` + "\n" +
		`8,"O'Neil",,"Punjab",false`
	assert.Equal(t, want, got)
}

func TestEncode_Time(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.FixedZone("PKT", 5*3600))

	got := csvexport.Encode([]csvexport.Row{{{"created_at", at}}})

	assert.Equal(t, "created_at\n"+`"2025-01-01T22:04:05Z"`, got)
}

func TestEncode_RoundTripsThroughCSVReader(t *testing.T) {
	msg := "line one\nline two, with comma and \"quotes\""
	rows := []csvexport.Row{
		{{"id", int64(1)}, {"message", msg}, {"country", "Pakistan"}},
		{{"id", int64(2)}, {"message", nil}, {"country", "USA"}},
	}

	records, err := csv.NewReader(strings.NewReader(csvexport.Encode(rows))).ReadAll()

	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"id", "message", "country"},
		{"1", msg, "Pakistan"},
		{"2", "", "USA"},
	}, records)
}
