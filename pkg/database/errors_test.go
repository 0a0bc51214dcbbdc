package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	t.Run("no rows", func(t *testing.T) {
		require.ErrorIs(t, Translate(fmt.Errorf("scan: %w", pgx.ErrNoRows)), ErrNotFound)
	})

	t.Run("unique violation names the field", func(t *testing.T) {
		err := Translate(&pgconn.PgError{Code: "23505", TableName: "users", ConstraintName: "users_phone_key"})
		require.ErrorIs(t, err, ErrConflict)
		var conflict *ConflictError
		require.True(t, errors.As(err, &conflict))
		require.Equal(t, "phone", conflict.Field)
		require.Equal(t, "phone already exists", conflict.Error())
	})

	t.Run("ticket code constraint", func(t *testing.T) {
		err := Translate(&pgconn.PgError{Code: "23505", TableName: "tickets", ConstraintName: "tickets_ticket_code_key"})
		var conflict *ConflictError
		require.True(t, errors.As(err, &conflict))
		require.Equal(t, "ticket_code", conflict.Field)
	})

	t.Run("foreign key on write", func(t *testing.T) {
		require.ErrorIs(t, Translate(&pgconn.PgError{Code: "23503"}), ErrInvalidReference)
	})

	t.Run("check violation", func(t *testing.T) {
		require.ErrorIs(t, Translate(&pgconn.PgError{Code: "23514"}), ErrCheckViolation)
	})

	t.Run("unknown errors pass through", func(t *testing.T) {
		boom := errors.New("boom")
		require.Same(t, boom, Translate(boom))
		require.NoError(t, Translate(nil))
	})
}

func TestTranslateDelete(t *testing.T) {
	require.ErrorIs(t, TranslateDelete(&pgconn.PgError{Code: "23503"}), ErrProtected)
	require.ErrorIs(t, TranslateDelete(pgx.ErrNoRows), ErrNotFound)
}
