package query

import (
	"cmp"
	"math"
	"strings"
)

// Listing builds a filtered SELECT. Predicates are AND-joined in the order
// they are added and each gets its own parameter. The result is always ordered
// so identical filters return rows in the same order.
type Listing struct {
	base    string
	orderBy string
	where   []string
	binder  Binder
}

// NewListing starts a listing from a SELECT ... FROM skeleton.
func NewListing(base, orderBy string) *Listing {
	return &Listing{base: base, orderBy: orderBy}
}

// Where adds "column op $n" bound to value.
func (l *Listing) Where(column, op string, value any) *Listing {
	l.where = append(l.where, column+" "+op+" "+l.binder.Bind(value))
	return l
}

// Contains adds a case-insensitive substring match on column. The bound value
// is "%" + s + "%" with the LIKE metacharacters \, % and _ in s escaped by a
// backslash, so s matches as a literal substring: "50%" finds "50% remote"
// but not "500 remote".
func (l *Listing) Contains(column, s string) *Listing {
	return l.Where(column, "ILIKE", "%"+escapeLike(s)+"%")
}

// Build returns the statement. WHERE is omitted when no predicate was added.
func (l *Listing) Build() Statement {
	var sb strings.Builder
	sb.WriteString(l.base)
	if len(l.where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(l.where, " AND "))
	}
	sb.WriteString(" ORDER BY ")
	sb.WriteString(l.orderBy)
	return l.binder.Statement(sb.String())
}

// CheckRange fails when a present bound is NaN or infinite, or when both
// bounds are present and min > max.
func CheckRange[T cmp.Ordered](field string, lower, upper Optional[T]) error {
	lo, okLo := lower.Get()
	hi, okHi := upper.Get()
	if (okLo && !finite(lo)) || (okHi && !finite(hi)) {
		return &InvalidFilterError{Field: field, Min: lower.Value(), Max: upper.Value(), Reason: "bounds must be finite numbers"}
	}
	if okLo && okHi && lo > hi {
		return &InvalidFilterError{Field: field, Min: lo, Max: hi}
	}
	return nil
}

func finite[T cmp.Ordered](v T) bool {
	switch x := any(v).(type) {
	case float64:
		return !math.IsNaN(x) && !math.IsInf(x, 0)
	case float32:
		return !math.IsNaN(float64(x)) && !math.IsInf(float64(x), 0)
	}
	return true
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
