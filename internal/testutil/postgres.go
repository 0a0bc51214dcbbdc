// Package testutil provides a Postgres pool for repository tests.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/hosseinmostafavi2079/roydadpro/pkg/database"
)

// Serializes test packages that share one database.
const testLockID int64 = 720418552

// NewTestPool connects to TEST_DATABASE_URL, migrates and empties every table.
// The test is skipped when the variable is unset or the server is unreachable.
// Packages run in parallel, so the pool holds an advisory lock until cleanup.
func NewTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("postgres unavailable: %v", err)
	}

	lockConn, err := pool.Acquire(ctx)
	require.NoError(t, err)
	_, err = lockConn.Exec(ctx, `SELECT pg_advisory_lock($1)`, testLockID)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = lockConn.Exec(context.Background(), `SELECT pg_advisory_unlock($1)`, testLockID)
		lockConn.Release()
		pool.Close()
	})

	require.NoError(t, database.Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE tickets, events, categories, instructors, users, organizations RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return pool
}
