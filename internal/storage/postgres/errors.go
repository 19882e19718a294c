package postgres

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrDuplicateKey is returned when an insert or update hits a unique constraint.
	ErrDuplicateKey = errors.New("postgres: duplicate key")

	// ErrForeignKey is returned when a referenced row does not exist.
	ErrForeignKey = errors.New("postgres: foreign key violation")
)

// PostgreSQL SQLSTATE codes
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// mapError tags constraint violations with a sentinel. The driver error stays
// in the chain.
func mapError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: %w", ErrForeignKey, err)
	}
	return err
}
