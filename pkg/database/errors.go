package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict matches every *ConflictError.
	ErrConflict = errors.New("conflict")
	// ErrProtected is returned when a delete is refused because other rows still reference it.
	ErrProtected = errors.New("protected reference")
	// ErrInvalidReference is returned when a write points at a row that does not exist.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrCheckViolation is returned when a value breaks a column constraint.
	ErrCheckViolation = errors.New("value out of range")
)

// ConflictError reports a unique constraint violation on Field.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	if e.Field == "" {
		return "duplicate value"
	}
	return e.Field + " already exists"
}

// Is lets errors.Is(err, ErrConflict) match.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// Translate maps driver errors from inserts, updates and selects to package errors.
// Unknown errors are returned unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return &ConflictError{Field: fieldFromConstraint(pgErr.TableName, pgErr.ConstraintName)}
	case codeForeignKeyViolation:
		return ErrInvalidReference
	case codeCheckViolation:
		return ErrCheckViolation
	}
	return err
}

// TranslateDelete is Translate for DELETE statements, where a foreign key
// violation means the row is still referenced.
func TranslateDelete(err error) error {
	if IsForeignKeyViolation(err) {
		return ErrProtected
	}
	return Translate(err)
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation
}

// fieldFromConstraint turns "users_phone_key" on table "users" into "phone".
func fieldFromConstraint(table, constraint string) string {
	name := strings.TrimSuffix(constraint, "_key")
	if table != "" {
		name = strings.TrimPrefix(name, table+"_")
	}
	return name
}
