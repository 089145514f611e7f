package timing_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/appwms-api/internal/application/dto"
	"github.com/jhoicas/appwms-api/internal/application/timing"
	"github.com/jhoicas/appwms-api/internal/domain"
	"github.com/jhoicas/appwms-api/internal/domain/entity"
	"github.com/jhoicas/appwms-api/internal/infrastructure/memory"
)

func newTiming(t *testing.T) (*timing.UseCase, *memory.Store) {
	t.Helper()
	s := memory.NewStore()
	s.AddUser(entity.User{ID: 7, Name: "Operario"}, "op", "op")
	s.AddBatch(entity.Batch{ID: 3, Name: "BATCH/00003"})
	return timing.NewUseCase(s.Batches(), s.Users(), s.BatchUserTimes(), s.Tx()), s
}

// ── Tiempos por usuario ──────────────────────────────────────────────────────

func TestEndBatchUser_SinInicio(t *testing.T) {
	uc, _ := newTiming(t)

	_, err := uc.EndBatchUser(context.Background(), dto.BatchUserEndRequest{
		IDBatch: 3, EndTime: "2024-05-10 10:00:00", UserID: 7, OperationType: "picking",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStartMissing))
}

func TestEndBatchUser_FinNoPosterior(t *testing.T) {
	uc, s := newTiming(t)
	ctx := context.Background()

	_, err := uc.StartBatchUser(ctx, dto.BatchUserStartRequest{
		IDBatch: 3, StartTime: "2024-05-10 10:00:00", UserID: 7, OperationType: "picking",
	})
	require.NoError(t, err)

	for _, end := range []string{"2024-05-10 10:00:00", "2024-05-10 09:59:59"} {
		_, err = uc.EndBatchUser(ctx, dto.BatchUserEndRequest{
			IDBatch: 3, EndTime: end, UserID: 7, OperationType: "picking",
		})
		require.Error(t, err, end)
		assert.True(t, errors.Is(err, domain.ErrEndBeforeStart), end)
	}
	assert.Nil(t, s.BatchUserTime(3, 7, "picking").EndTime, "el fin no debe persistirse")
}

func TestEndBatchUser_Correcto(t *testing.T) {
	uc, s := newTiming(t)
	ctx := context.Background()

	_, err := uc.StartBatchUser(ctx, dto.BatchUserStartRequest{
		IDBatch: 3, StartTime: "2024-05-10 10:00:00", UserID: 7, OperationType: "picking",
	})
	require.NoError(t, err)

	resp, err := uc.EndBatchUser(ctx, dto.BatchUserEndRequest{
		IDBatch: 3, EndTime: "2024-05-10 10:30:00", UserID: 7, OperationType: "picking",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-05-10 10:00:00", resp.StartTime)
	assert.Equal(t, "2024-05-10 10:30:00", resp.EndTime)
	require.NotNil(t, s.BatchUserTime(3, 7, "picking").EndTime)
}

func TestStartBatchUser_Duplicado(t *testing.T) {
	uc, _ := newTiming(t)
	ctx := context.Background()
	in := dto.BatchUserStartRequest{IDBatch: 3, StartTime: "2024-05-10 10:00:00", UserID: 7, OperationType: "picking"}

	_, err := uc.StartBatchUser(ctx, in)
	require.NoError(t, err)

	_, err = uc.StartBatchUser(ctx, in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
	assert.Equal(t, "Ya existe un registro con los mismos datos", err.Error())

	// otro tipo de operación es otra terna
	in.OperationType = "packing"
	_, err = uc.StartBatchUser(ctx, in)
	assert.NoError(t, err)
}

func TestStartBatchUser_Concurrente(t *testing.T) {
	uc, _ := newTiming(t)
	in := dto.BatchUserStartRequest{IDBatch: 3, StartTime: "2024-05-10 10:00:00", UserID: 7, OperationType: "picking"}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		oks  int
		dups int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.StartBatchUser(context.Background(), in)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				oks++
			} else if errors.Is(err, domain.ErrDuplicate) {
				dups++
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, oks)
	assert.Equal(t, 9, dups)
}

func TestStartBatchUser_BatchInexistente(t *testing.T) {
	uc, _ := newTiming(t)

	_, err := uc.StartBatchUser(context.Background(), dto.BatchUserStartRequest{
		IDBatch: 99, StartTime: "2024-05-10 10:00:00", UserID: 7, OperationType: "picking",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, "No se encontró el BATCH con ID 99", err.Error())
}

func TestStartBatchUser_FechaInvalida(t *testing.T) {
	uc, _ := newTiming(t)

	_, err := uc.StartBatchUser(context.Background(), dto.BatchUserStartRequest{
		IDBatch: 3, StartTime: "10/05/2024", UserID: 7, OperationType: "picking",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// ── Campos de tiempo del batch ───────────────────────────────────────────────

func TestUpdateEndTime_RequiereInicio(t *testing.T) {
	uc, _ := newTiming(t)

	_, err := uc.UpdateEndTime(context.Background(), dto.UpdateEndTimeRequest{
		PickingID: 3, EndTime: "2024-05-10 11:00:00", FieldName: "end_time_reception",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStartMissing))
}

func TestUpdateEndTime_Correcto(t *testing.T) {
	uc, _ := newTiming(t)
	ctx := context.Background()

	msg, err := uc.UpdateStartTime(ctx, dto.UpdateStartTimeRequest{
		PickingID: 3, StartTime: "2024-05-10 10:00:00", FieldName: "start_time_reception",
	})
	require.NoError(t, err)
	assert.Equal(t, "Tiempo de inicio actualizado correctamente", msg)

	_, err = uc.UpdateEndTime(ctx, dto.UpdateEndTimeRequest{
		PickingID: 3, EndTime: "2024-05-10 09:00:00", FieldName: "end_time_reception",
	})
	assert.True(t, errors.Is(err, domain.ErrEndBeforeStart))

	msg, err = uc.UpdateEndTime(ctx, dto.UpdateEndTimeRequest{
		PickingID: 3, EndTime: "2024-05-10 11:00:00", FieldName: "end_time_reception",
	})
	require.NoError(t, err)
	assert.Equal(t, "end_time_reception actualizado correctamente", msg)
}

func TestUpdateStartTime_CampoInvalido(t *testing.T) {
	uc, _ := newTiming(t)

	_, err := uc.UpdateStartTime(context.Background(), dto.UpdateStartTimeRequest{
		PickingID: 3, StartTime: "2024-05-10 10:00:00", FieldName: "end_time_reception",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
