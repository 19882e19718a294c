// Package query assembles parameterized PostgreSQL statements.
//
// Every value supplied by a caller is bound as a positional parameter ($1, $2, ...)
// and travels in Statement.Args; only identifiers chosen by the storage layer
// (table and column names, operators) are written into the SQL text.
package query

import "strconv"

// Statement is SQL text plus the values for its positional parameters.
// Args[i] is the value for placeholder $(i+1).
type Statement struct {
	Text string
	Args []any
}

// Binder hands out positional placeholders in the order values are added.
// The zero value is ready to use.
type Binder struct {
	args []any
}

// Bind records v and returns its placeholder. Nil values are kept and get
// a position like any other value.
func (b *Binder) Bind(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

// Len returns the number of values bound so far.
func (b *Binder) Len() int {
	return len(b.args)
}

// Args returns the bound values aligned with the placeholders issued.
func (b *Binder) Args() []any {
	args := make([]any, len(b.args))
	copy(args, b.args)
	return args
}

// Statement pairs text with the values bound while building it.
func (b *Binder) Statement(text string) Statement {
	return Statement{Text: text, Args: b.Args()}
}

// Raw builds a Statement from hand-written SQL whose placeholders are already
// numbered in the order of args.
func Raw(text string, args ...any) Statement {
	return Statement{Text: text, Args: args}
}
