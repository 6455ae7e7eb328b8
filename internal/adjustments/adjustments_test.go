package adjustments

import (
	"context"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"capital-engine/internal/model"
	"capital-engine/internal/simulation"
)

type presetLookup struct{}

func (presetLookup) Lookup(_ context.Context, name string) (simulation.RiskProfile, bool) {
	return simulation.ProfileByName(name)
}

func baseScenario() simulation.ScenarioParameters {
	return simulation.ScenarioParameters{
		Age:               35,
		InitialCapital:    20000,
		MonthlyExpenses:   1500,
		MonthlyInvestment: 400,
		AnnualReturnMean:  0.05,
		RetirementAge:     65,
		Housing:           simulation.HousingRent,
		HorizonYears:      30,
		NumTrajectories:   10,
	}
}

func adjustment(name, props string) *model.Adjustment {
	return &model.Adjustment{AdjustmentID: "adj-1", AdjustmentName: name, Properties: json.RawMessage(props)}
}

func run(t *testing.T, name, props string, state *simulation.ScenarioParameters) (validation, applied []model.CalculationMessage) {
	t.Helper()
	h, ok := NewRegistry(presetLookup{}).Get(name)
	require.True(t, ok, "handler %s not registered", name)

	adj := adjustment(name, props)
	validation = h.Validate(context.Background(), state, adj)
	for _, m := range validation {
		if m.Level == model.LevelCritical {
			return validation, nil
		}
	}
	return validation, h.Apply(context.Background(), state, adj)
}

func TestRegistry_Unknown(t *testing.T) {
	_, ok := NewRegistry(presetLookup{}).Get("buy_yacht")
	assert.False(t, ok)
}

func TestApplyRiskProfile(t *testing.T) {
	state := baseScenario()
	v, a := run(t, "apply_risk_profile", `{"profile":"high"}`, &state)

	assert.Empty(t, v)
	assert.Empty(t, a)
	assert.Equal(t, 0.08, state.AnnualReturnMean)
	assert.Equal(t, 0.15, state.AnnualReturnStdDev)
}

func TestApplyRiskProfile_Unknown(t *testing.T) {
	state := baseScenario()
	v, _ := run(t, "apply_risk_profile", `{"profile":"moonshot"}`, &state)

	require.Len(t, v, 1)
	assert.Equal(t, "UNKNOWN_RISK_PROFILE", v[0].Code)
	assert.Equal(t, 0.05, state.AnnualReturnMean)
}

func TestChangeHousing(t *testing.T) {
	state := baseScenario()
	v, _ := run(t, "change_housing", `{"housing":"owned"}`, &state)
	assert.Empty(t, v)
	assert.Equal(t, simulation.HousingOwned, state.Housing)

	v, _ = run(t, "change_housing", `{"housing":"OWNED"}`, &state)
	require.Len(t, v, 1)
	assert.Equal(t, model.LevelWarning, v[0].Level)
	assert.Equal(t, "HOUSING_UNCHANGED", v[0].Code)

	v, _ = run(t, "change_housing", `{"housing":"boat"}`, &state)
	require.Len(t, v, 1)
	assert.Equal(t, "INVALID_HOUSING", v[0].Code)
}

func TestShiftRetirement(t *testing.T) {
	state := baseScenario()
	v, a := run(t, "shift_retirement", `{"years":2}`, &state)
	assert.Empty(t, v)
	assert.Empty(t, a)
	assert.Equal(t, 67, state.RetirementAge)

	_, a = run(t, "shift_retirement", `{"years":-40}`, &state)
	require.Len(t, a, 1)
	assert.Equal(t, "ALREADY_RETIRED", a[0].Code)
	assert.Equal(t, 27, state.RetirementAge)

	v, _ = run(t, "shift_retirement", `{"years":-30}`, &state)
	require.Len(t, v, 1)
	assert.Equal(t, "INVALID_RETIREMENT_AGE", v[0].Code)

	v, _ = run(t, "shift_retirement", `{}`, &state)
	require.Len(t, v, 1)
	assert.Equal(t, "INVALID_PROPERTIES", v[0].Code)
}

func TestScaleExpenses(t *testing.T) {
	state := baseScenario()
	v, _ := run(t, "scale_expenses", `{"factor":0.5}`, &state)
	assert.Empty(t, v)
	assert.Equal(t, 750.0, state.MonthlyExpenses)

	for _, props := range []string{`{"factor":0}`, `{"factor":-2}`, `{}`} {
		v, _ = run(t, "scale_expenses", props, &state)
		require.Len(t, v, 1, props)
		assert.Equal(t, "INVALID_FACTOR", v[0].Code)
	}
	assert.Equal(t, 750.0, state.MonthlyExpenses)
}

func TestMalformedProperties(t *testing.T) {
	state := baseScenario()
	v, _ := run(t, "scale_expenses", `{"factor":"lots"}`, &state)
	require.Len(t, v, 1)
	assert.Equal(t, "INVALID_PROPERTIES", v[0].Code)

	v, _ = run(t, "change_housing", ``, &state)
	require.Len(t, v, 1)
	assert.Equal(t, "INVALID_PROPERTIES", v[0].Code)
}
