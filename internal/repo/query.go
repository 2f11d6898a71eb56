package repo

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/rupaladventures/basecamp/internal/domain"
)

// table describes how the closed filter set maps onto one record table.
type table struct {
	name string
	// columns is the SELECT list, in scan order.
	columns string
	// hasStatus is false for inquiries, whose schema has no status column.
	hasStatus bool
	// searchColumns are OR-ed together for Filter.Search.
	searchColumns []string
}

// selectQuery is a parameterised SELECT and its matching COUNT. The SELECT
// carries the full match count as a trailing window column, so a non-empty
// page and its total come from one snapshot. count is only run when the
// page comes back empty.
type selectQuery struct {
	list  string
	count string
	args  pgx.NamedArgs
}

// buildSelect turns q into SQL for t. Every user-supplied value travels as a
// named argument; only whitelisted column names are spliced into the text.
func buildSelect(t table, q domain.Query) selectQuery {
	where, args := buildWhere(t, q.Filter)

	var list strings.Builder
	fmt.Fprintf(&list, "SELECT %s, count(*) OVER () AS total FROM %s%s ORDER BY %s", t.columns, t.name, where, orderBy(t, q.EffectiveSort()))
	if q.Page != nil {
		list.WriteString(" LIMIT @limit OFFSET @offset")
		args["limit"] = q.Page.PageSize
		args["offset"] = q.Page.Offset()
	}

	return selectQuery{
		list:  list.String(),
		count: fmt.Sprintf("SELECT count(*) FROM %s%s", t.name, where),
		args:  args,
	}
}

// countedRow scans a list row whose last column is the windowed total.
type countedRow struct {
	s     scanner
	total *int64
}

func (c countedRow) Scan(dest ...any) error {
	return c.s.Scan(append(dest, c.total)...)
}

func buildWhere(t table, f domain.Filter) (string, pgx.NamedArgs) {
	var conds []string
	args := pgx.NamedArgs{}

	if f.Status != "" && t.hasStatus {
		conds = append(conds, "status = @status")
		args["status"] = f.Status
	}
	if f.Country != "" {
		conds = append(conds, "country = @country")
		args["country"] = f.Country
	}
	if f.Organization != "" {
		conds = append(conds, "organization = @organization")
		args["organization"] = f.Organization
	}
	if f.DateFrom != nil {
		conds = append(conds, "created_at >= @date_from")
		args["date_from"] = *f.DateFrom
	}
	if f.DateTo != nil {
		conds = append(conds, "created_at <= @date_to")
		args["date_to"] = *f.DateTo
	}
	if f.Search != "" {
		ors := make([]string, len(t.searchColumns))
		for i, c := range t.searchColumns {
			ors[i] = c + " ILIKE @search"
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
		args["search"] = "%" + escapeLike(f.Search) + "%"
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// orderBy renders a whitelisted ORDER BY. Rows equal on the sort column fall
// back to insertion order (created_at, then id, ascending) whatever the
// direction, so ties keep their relative order and pages never overlap.
func orderBy(t table, s domain.Sort) string {
	const insertion = "created_at ASC, id ASC"
	dir := "DESC"
	if s.Direction == domain.SortAsc {
		dir = "ASC"
	}
	col := sortColumn(s.Field)
	switch {
	case col == "" || (s.Field == domain.SortStatus && !t.hasStatus):
		return insertion
	case s.Field == domain.SortCreatedAt:
		return "created_at " + dir + ", id ASC"
	}
	return col + " " + dir + ", " + insertion
}

func sortColumn(f domain.SortField) string {
	switch f {
	case domain.SortCreatedAt:
		return "created_at"
	case domain.SortFirstName:
		return "first_name"
	case domain.SortLastName:
		return "last_name"
	case domain.SortEmail:
		return "email"
	case domain.SortStatus:
		return "status"
	}
	return ""
}

// escapeLike escapes the ILIKE metacharacters so a search term is matched
// literally. Backslash is Postgres' default LIKE escape.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// assignments accumulates the SET list of a partial UPDATE.
type assignments struct {
	cols []string
	args pgx.NamedArgs
}

func newAssignments() *assignments {
	return &assignments{args: pgx.NamedArgs{}}
}

// required writes a trimmed value when v is supplied.
func (a *assignments) required(col string, v *string) {
	if v == nil {
		return
	}
	a.set(col, strings.TrimSpace(*v))
}

// optional writes a trimmed value when v is supplied; blank becomes NULL.
func (a *assignments) optional(col string, v *string) {
	if v == nil {
		return
	}
	a.set(col, domain.Optional(v))
}

func (a *assignments) set(col string, v any) {
	a.cols = append(a.cols, col+" = @"+col)
	a.args[col] = v
}

func (a *assignments) empty() bool { return len(a.cols) == 0 }

func (a *assignments) clause() string { return strings.Join(a.cols, ", ") }
