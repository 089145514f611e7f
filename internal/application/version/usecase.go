package version

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/jhoicas/appwms-api/internal/application/dto"
	"github.com/jhoicas/appwms-api/internal/application/validation"
	"github.com/jhoicas/appwms-api/internal/domain"
	"github.com/jhoicas/appwms-api/internal/domain/entity"
	"github.com/jhoicas/appwms-api/internal/domain/repository"
)

var (
	defaultNotes = []any{"Sin notas"}
	brokenNotes  = []any{"Error al procesar las notas"}
)

// UseCase registro de versiones de la app móvil.
type UseCase struct {
	repo repository.AppVersionRepository
	now  func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.AppVersionRepository) *UseCase {
	return &UseCase{repo: repo, now: time.Now}
}

// Create registra una versión. Sin notas se guarda []; si Notes no es una lista (null incluido) se reemplaza por ["Sin notas"].
func (uc *UseCase) Create(ctx context.Context, in dto.CreateVersionRequest) (*dto.VersionDetailResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	notes := parseNotes(in.Notes)
	raw, err := json.Marshal(notes)
	if err != nil {
		return nil, err
	}

	release := uc.now().UTC().Truncate(24 * time.Hour)
	if in.ReleaseDate != "" {
		t, err := time.Parse(dto.DateLayout, in.ReleaseDate)
		if err != nil {
			return nil, domain.Detail(domain.ErrInvalidInput, "Formato de 'release_date' inválido. Debe ser 'YYYY-MM-DD'")
		}
		release = t
	}

	v := &entity.AppVersion{
		Version:     in.Version,
		ReleaseDate: release,
		Notes:       string(raw),
		URLDownload: in.URLDownload,
	}
	if err := uc.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return toDetail(v, notes), nil
}

// parseNotes interpreta las notas recibidas tal como vinieron en el cuerpo.
func parseNotes(raw json.RawMessage) []any {
	if len(raw) == 0 {
		return []any{}
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return defaultNotes
	}
	if list, ok := v.([]any); ok {
		return list
	}
	return defaultNotes
}

// List devuelve todas las versiones con las notas en texto JSON.
func (uc *UseCase) List(ctx context.Context) ([]dto.VersionResponse, error) {
	versions, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VersionResponse, 0, len(versions))
	for _, v := range versions {
		out = append(out, dto.VersionResponse{
			ID:          v.ID,
			Version:     v.Version,
			ReleaseDate: v.ReleaseDate.Format(dto.DateLayout),
			Notes:       v.Notes,
			URLDownload: v.URLDownload,
		})
	}
	return out, nil
}

// Last devuelve la versión de mayor id con las notas decodificadas.
func (uc *UseCase) Last(ctx context.Context) (*dto.VersionDetailResponse, error) {
	v, err := uc.repo.Last(ctx)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.Detail(domain.ErrNotFound, "No se encontró ninguna versión")
	}
	notes := []any{}
	if v.Notes != "" {
		if err := json.Unmarshal([]byte(v.Notes), &notes); err != nil {
			notes = brokenNotes
		}
	}
	return toDetail(v, notes), nil
}

// Delete elimina una versión; si no existe devuelve domain.ErrNotFound.
func (uc *UseCase) Delete(ctx context.Context, in dto.DeleteVersionRequest) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	v, err := uc.repo.GetByID(ctx, in.VersionID)
	if err != nil {
		return err
	}
	if v == nil {
		return domain.Detail(domain.ErrNotFound, "No se encontró la versión con el ID proporcionado")
	}
	return uc.repo.Delete(ctx, v.ID)
}

func toDetail(v *entity.AppVersion, notes []any) *dto.VersionDetailResponse {
	return &dto.VersionDetailResponse{
		ID:          v.ID,
		Version:     v.Version,
		ReleaseDate: v.ReleaseDate.Format(dto.DateLayout),
		Notes:       notes,
		URLDownload: v.URLDownload,
	}
}
