package picking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/appwms-api/internal/application/picking"
	"github.com/jhoicas/appwms-api/internal/domain"
	"github.com/jhoicas/appwms-api/internal/domain/entity"
)

// fakeEngine motor que devuelve una acción fija y registra el método resuelto.
type fakeEngine struct {
	action   *entity.WizardAction
	resolved string
}

func (f *fakeEngine) Validate(context.Context, int64) (*entity.WizardAction, error) {
	return f.action, nil
}

func (f *fakeEngine) ResolveWizard(_ context.Context, _ *entity.WizardAction, _ int64, method string) (int64, error) {
	f.resolved = method
	return 77, nil
}

func (f *fakeEngine) CheckAvailability(context.Context, int64) error { return nil }

func (f *fakeEngine) Confirm(context.Context, int64) error { return nil }

// ── Finalización ─────────────────────────────────────────────────────────────

func TestComplete_Resoluciones(t *testing.T) {
	cases := []struct {
		name      string
		model     string
		backorder bool
		outcome   picking.Outcome
		method    string
	}{
		{"sin asistente", "", true, picking.OutcomeDone, ""},
		{"backorder", entity.WizardBackorder, true, picking.OutcomeBackorder, "process"},
		{"sin backorder", entity.WizardBackorder, false, picking.OutcomeNoBackorder, "process_cancel_backorder"},
		{"inmediata", entity.WizardImmediate, false, picking.OutcomeImmediate, "process"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eng := &fakeEngine{}
			if tc.model != "" {
				eng.action = &entity.WizardAction{Model: tc.model}
			}
			res, err := picking.NewCompleter(eng).Complete(context.Background(), 1, tc.backorder)
			require.NoError(t, err)
			assert.Equal(t, tc.outcome, res.Outcome)
			assert.Equal(t, tc.method, eng.resolved)
		})
	}
}

func TestComplete_AsistenteDesconocido(t *testing.T) {
	eng := &fakeEngine{action: &entity.WizardAction{Model: "stock.overprocessed.transfer"}}

	_, err := picking.NewCompleter(eng).Complete(context.Background(), 1, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedWizard))
	assert.Contains(t, err.Error(), "stock.overprocessed.transfer")
	assert.Empty(t, eng.resolved)
}

// ── Reloj ────────────────────────────────────────────────────────────────────

func TestTransactionTime_ConvierteAUTC(t *testing.T) {
	loc := time.FixedZone("COT", -5*3600)
	clock := picking.NewClock(loc)

	got, err := clock.TransactionTime("2024-05-10 08:00:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 10, 13, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestTransactionTime_VacioEsAhora(t *testing.T) {
	fixed := time.Date(2024, 5, 10, 9, 0, 0, 0, time.FixedZone("X", 3600))
	clock := picking.NewClock(nil).WithNow(func() time.Time { return fixed })

	got, err := clock.TransactionTime("")
	require.NoError(t, err)
	assert.True(t, got.Equal(fixed))
	assert.Equal(t, time.UTC, got.Location())
}

func TestTransactionTime_FormatoInvalido(t *testing.T) {
	_, err := picking.NewClock(nil).TransactionTime("2024-05-10T08:00:00Z")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// ── Auxiliares ───────────────────────────────────────────────────────────────

func TestWeight(t *testing.T) {
	p := &entity.Product{Weight: decimal.RequireFromString("0.25")}
	assert.True(t, decimal.RequireFromString("2.5").Equal(picking.Weight(p, decimal.NewFromInt(10))))
	assert.True(t, picking.Weight(nil, decimal.NewFromInt(10)).IsZero())
}

func TestBackorderFlag(t *testing.T) {
	no, yes := false, true
	assert.True(t, picking.BackorderFlag(nil))
	assert.True(t, picking.BackorderFlag(&yes))
	assert.False(t, picking.BackorderFlag(&no))
}
