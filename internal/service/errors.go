package service

import (
	"errors"
	"fmt"
	"strings"

	"conectaleads/internal/repository/postgres"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrNotFound       = errors.New("not found")
	ErrBrokerNotFound = errors.New("assigned broker does not exist")
	ErrConflict       = errors.New("a record with the same unique value already exists")
	ErrReaderNil      = errors.New("reader is nil")
	ErrFileTooLarge   = errors.New("file exceeds the maximum upload size")
	ErrInvalidPeriod  = errors.New("unknown period; use este-mes, mes-passado or ultimos-3-meses")
	ErrInvalidImage   = errors.New("avatar must be an image")
)

// ValidationError lists required fields that were left blank. It matches
// ErrValidation with errors.Is.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func validate(missing []string) error {
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Fields: missing}
}

// storeError translates known PostgreSQL conditions into service errors.
// what names the missing record for not-found errors.
func storeError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case postgres.IsNoRowsError(err):
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	case postgres.IsForeignKeyViolation(err):
		return ErrBrokerNotFound
	case postgres.IsUniqueViolation(err):
		return ErrConflict
	}
	return err
}
