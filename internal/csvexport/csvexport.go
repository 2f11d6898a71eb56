// Package csvexport renders uniform records as CSV text for admin download.
//
// Strings and timestamps are always quoted with embedded quotes doubled.
// Numbers and booleans are written bare, and nil is an empty field. The
// header is the bare key list of the first row.
package csvexport

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Cell is one keyed value of a row.
type Cell struct {
	Key   string
	Value any
}

// Row is an ordered record. Every row of one export carries the same keys in
// the same order.
type Row []Cell

// Encode returns the CSV text for rows, or "" when there are none.
// Records are newline-separated with no trailing newline.
func Encode(rows []Row) string {
	if len(rows) == 0 {
		return ""
	}

	var b strings.Builder
	for i, c := range rows[0] {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(c.Key)
	}
	for _, r := range rows {
		b.WriteByte('\n')
		for i, c := range r {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(field(c.Value))
		}
	}
	return b.String()
}

func field(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return quote(x)
	case *string:
		if x == nil {
			return ""
		}
		return quote(*x)
	case time.Time:
		return quote(x.UTC().Format(time.RFC3339Nano))
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
