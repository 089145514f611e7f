package timing

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jhoicas/appwms-api/internal/application/dto"
	"github.com/jhoicas/appwms-api/internal/application/validation"
	"github.com/jhoicas/appwms-api/internal/domain"
	"github.com/jhoicas/appwms-api/internal/domain/entity"
	"github.com/jhoicas/appwms-api/internal/domain/repository"
)

const (
	startPrefix = "start_"
	endPrefix   = "end_"
)

var fieldNameRe = regexp.MustCompile(`^(start|end)_[a-z0-9_]+$`)

// UseCase registro de tiempos sobre batches de picking.
// Las horas se guardan tal como las envía la app, sin conversión de zona horaria.
type UseCase struct {
	batches  repository.BatchRepository
	users    repository.UserRepository
	times    repository.BatchUserTimeRepository
	txRunner TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(batches repository.BatchRepository, users repository.UserRepository, times repository.BatchUserTimeRepository, txRunner TxRunner) *UseCase {
	return &UseCase{batches: batches, users: users, times: times, txRunner: txRunner}
}

// UpdateStartTime escribe un campo start_* del batch.
func (uc *UseCase) UpdateStartTime(ctx context.Context, in dto.UpdateStartTimeRequest) (string, error) {
	if err := validation.Struct(in); err != nil {
		return "", err
	}
	if err := checkField(in.FieldName, startPrefix); err != nil {
		return "", err
	}
	start, err := parseTime("start_time", in.StartTime)
	if err != nil {
		return "", err
	}
	if err := uc.requireBatch(ctx, in.PickingID, "No se encontró el picking con el ID proporcionado"); err != nil {
		return "", err
	}
	if err := uc.batches.WriteTime(ctx, in.PickingID, in.FieldName, start); err != nil {
		return "", err
	}
	return "Tiempo de inicio actualizado correctamente", nil
}

// UpdateEndTime escribe un campo end_* del batch. Exige el start_* correspondiente y que el fin sea posterior.
func (uc *UseCase) UpdateEndTime(ctx context.Context, in dto.UpdateEndTimeRequest) (string, error) {
	if err := validation.Struct(in); err != nil {
		return "", err
	}
	if err := checkField(in.FieldName, endPrefix); err != nil {
		return "", err
	}
	end, err := parseTime("end_time", in.EndTime)
	if err != nil {
		return "", err
	}
	if err := uc.requireBatch(ctx, in.PickingID, "No se encontró el picking con el ID proporcionado"); err != nil {
		return "", err
	}
	startField := startPrefix + strings.TrimPrefix(in.FieldName, endPrefix)
	start, err := uc.batches.ReadTime(ctx, in.PickingID, startField)
	if err != nil {
		return "", err
	}
	if start == nil {
		return "", domain.Detail(domain.ErrStartMissing, "No se puede registrar '%s' sin un '%s' previo", in.FieldName, startField)
	}
	if !end.After(*start) {
		return "", domain.Detail(domain.ErrEndBeforeStart, "'%s' debe ser mayor que '%s'", in.FieldName, startField)
	}
	if err := uc.batches.WriteTime(ctx, in.PickingID, in.FieldName, end); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s actualizado correctamente", in.FieldName), nil
}

// StartBatchUser registra el inicio de un usuario en un batch. La unicidad de
// (batch, usuario, tipo de operación) la garantiza la base de datos.
func (uc *UseCase) StartBatchUser(ctx context.Context, in dto.BatchUserStartRequest) (*dto.BatchUserTimeResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := uc.requireBatchAndUser(ctx, in.IDBatch, in.UserID); err != nil {
		return nil, err
	}
	start, err := parseTime("start_time", in.StartTime)
	if err != nil {
		return nil, err
	}
	rec := &entity.BatchUserTime{
		BatchID:       in.IDBatch,
		UserID:        in.UserID,
		OperationType: in.OperationType,
		StartTime:     &start,
	}
	inserted, err := uc.times.InsertStart(ctx, rec)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, domain.Detail(domain.ErrDuplicate, "Ya existe un registro con los mismos datos")
	}
	return toResponse(rec), nil
}

// EndBatchUser registra el fin dentro de una transacción con el registro bloqueado.
func (uc *UseCase) EndBatchUser(ctx context.Context, in dto.BatchUserEndRequest) (*dto.BatchUserTimeResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := uc.requireBatchAndUser(ctx, in.IDBatch, in.UserID); err != nil {
		return nil, err
	}
	end, err := parseTime("end_time", in.EndTime)
	if err != nil {
		return nil, err
	}

	var out *dto.BatchUserTimeResponse
	err = uc.txRunner.Run(ctx, func(times repository.BatchUserTimeRepository) error {
		rec, err := times.GetForUpdate(ctx, in.IDBatch, in.UserID, in.OperationType)
		if err != nil {
			return err
		}
		if rec == nil || rec.StartTime == nil {
			return domain.Detail(domain.ErrStartMissing, "No se encontró un registro de inicio con los datos proporcionados")
		}
		if !end.After(*rec.StartTime) {
			return domain.Detail(domain.ErrEndBeforeStart, "'end_time' debe ser mayor que 'start_time'")
		}
		if err := times.SetEnd(ctx, rec.ID, end); err != nil {
			return err
		}
		rec.EndTime = &end
		out = toResponse(rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *UseCase) requireBatch(ctx context.Context, id int64, msg string) error {
	b, err := uc.batches.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return domain.Detail(domain.ErrNotFound, "%s", msg)
	}
	return nil
}

func (uc *UseCase) requireBatchAndUser(ctx context.Context, batchID, userID int64) error {
	if err := uc.requireBatch(ctx, batchID, fmt.Sprintf("No se encontró el BATCH con ID %d", batchID)); err != nil {
		return err
	}
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.Detail(domain.ErrNotFound, "No se encontró el usuario con ID %d", userID)
	}
	return nil
}

func checkField(name, prefix string) error {
	if !strings.HasPrefix(name, prefix) || !fieldNameRe.MatchString(name) {
		return domain.Detail(domain.ErrInvalidInput, "El campo 'field_name' debe comenzar con '%s'", prefix)
	}
	return nil
}

func parseTime(field, s string) (time.Time, error) {
	t, err := time.Parse(dto.DateTimeLayout, s)
	if err != nil {
		return time.Time{}, domain.Detail(domain.ErrInvalidInput, "Formato de '%s' inválido. Debe ser 'YYYY-MM-DD HH:MM:SS'", field)
	}
	return t, nil
}

func toResponse(r *entity.BatchUserTime) *dto.BatchUserTimeResponse {
	return &dto.BatchUserTimeResponse{
		ID:            r.ID,
		BatchID:       r.BatchID,
		UserID:        r.UserID,
		OperationType: r.OperationType,
		StartTime:     dto.FormatTime(r.StartTime),
		EndTime:       dto.FormatTime(r.EndTime),
	}
}
