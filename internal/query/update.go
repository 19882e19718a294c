package query

import "strings"

// Field is one column assignment. Slices of Field keep the caller's order.
type Field struct {
	Column string
	Value  any
}

// Denylist names columns that may never be assigned through a partial update.
type Denylist map[string]struct{}

// Deny builds a Denylist from column names.
func Deny(columns ...string) Denylist {
	d := make(Denylist, len(columns))
	for _, c := range columns {
		d[c] = struct{}{}
	}
	return d
}

// Allows reports whether column may appear in a SET list.
func (d Denylist) Allows(column string) bool {
	_, denied := d[column]
	return !denied
}

// PartialUpdate builds
//
//	UPDATE table SET c1=$1, c2=$2, ... WHERE key=$k RETURNING *
//
// Fields are assigned in order. Denied columns and the key column itself are
// dropped. The key value is always the last argument.
func PartialUpdate(table string, fields []Field, key Field, deny Denylist) (Statement, error) {
	var b Binder
	sets := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Column == key.Column || !deny.Allows(f.Column) {
			continue
		}
		sets = append(sets, f.Column+"="+b.Bind(f.Value))
	}
	if len(sets) == 0 {
		return Statement{}, ErrEmptyUpdate
	}

	keyRef := b.Bind(key.Value)

	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(table)
	sb.WriteString(" SET ")
	sb.WriteString(strings.Join(sets, ", "))
	sb.WriteString(" WHERE ")
	sb.WriteString(key.Column)
	sb.WriteString("=")
	sb.WriteString(keyRef)
	sb.WriteString(" RETURNING *")

	return b.Statement(sb.String()), nil
}
