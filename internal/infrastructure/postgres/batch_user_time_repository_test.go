package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/appwms-api/internal/domain/entity"
	"github.com/jhoicas/appwms-api/internal/domain/repository"
	"github.com/jhoicas/appwms-api/pkg/config"
)

// testPool conecta a DATABASE_URL y aplica las migraciones; sin la variable el test se omite.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL no definida")
	}
	require.NoError(t, Migrate(dsn))
	pool, err := NewPool(context.Background(), config.DBConfig{DatabaseURL: dsn, MaxConns: 2})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestBatchUserTimeRepo_InicioUnicoYFin(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	batchID := time.Now().UnixNano()
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM batch_user_times WHERE batch_id = $1`, batchID)
	})

	repo := NewBatchUserTimeRepository(pool)
	start := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)

	first := &entity.BatchUserTime{BatchID: batchID, UserID: 7, OperationType: "picking", StartTime: &start}
	ok, err := repo.InsertStart(ctx, first)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotZero(t, first.ID)

	later := start.Add(time.Minute)
	ok, err = repo.InsertStart(ctx, &entity.BatchUserTime{BatchID: batchID, UserID: 7, OperationType: "picking", StartTime: &later})
	require.NoError(t, err)
	assert.False(t, ok, "el segundo inicio choca con la restricción única")

	end := start.Add(30 * time.Minute)
	err = NewTxRunner(pool).Run(ctx, func(times repository.BatchUserTimeRepository) error {
		rec, err := times.GetForUpdate(ctx, batchID, 7, "picking")
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, first.ID, rec.ID)
		require.NotNil(t, rec.StartTime)
		assert.True(t, start.Equal(*rec.StartTime), "conserva el primer inicio")
		assert.Nil(t, rec.EndTime)
		return times.SetEnd(ctx, rec.ID, end)
	})
	require.NoError(t, err)

	rec, err := repo.GetForUpdate(ctx, batchID, 7, "picking")
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.NotNil(t, rec.EndTime)
	assert.True(t, end.Equal(*rec.EndTime))
}

func TestBatchUserTimeRepo_SinRegistro(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewBatchUserTimeRepository(pool)

	rec, err := repo.GetForUpdate(ctx, time.Now().UnixNano(), 7, "picking")
	require.NoError(t, err)
	assert.Nil(t, rec)

	assert.Error(t, repo.SetEnd(ctx, -1, time.Now()))
}
