package postgres

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505"}
	assert.True(t, isUniqueViolation(pgErr))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", pgErr)))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("timeout")))
}

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/wms?sslmode=disable", migrateURL("postgres://u:p@db:5432/wms?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/wms", migrateURL("postgresql://u@db/wms"))
	assert.Equal(t, "pgx5://u@db/wms", migrateURL("pgx5://u@db/wms"))
}

func TestMigrations_ParesUpDown(t *testing.T) {
	ups, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrationsFS, "migrations/*.down.sql")
	require.NoError(t, err)
	assert.Len(t, ups, 3)
	assert.Equal(t, len(ups), len(downs))
}

func TestNullID(t *testing.T) {
	assert.Nil(t, nullID(0))
	require.NotNil(t, nullID(5))
	assert.Equal(t, int64(5), *nullID(5))
}
