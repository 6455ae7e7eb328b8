package adjustments

import (
	"context"

	"capital-engine/internal/simulation"
)

// ProfileLookup resolves a risk profile name.
type ProfileLookup interface {
	Lookup(ctx context.Context, name string) (simulation.RiskProfile, bool)
}

type Registry struct {
	handlers map[string]Handler
}

func NewRegistry(profiles ProfileLookup) *Registry {
	return &Registry{handlers: map[string]Handler{
		"apply_risk_profile": &ApplyRiskProfileHandler{profiles: profiles},
		"change_housing":     &ChangeHousingHandler{},
		"shift_retirement":   &ShiftRetirementHandler{},
		"scale_expenses":     &ScaleExpensesHandler{},
	}}
}

func (r *Registry) Get(name string) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}
