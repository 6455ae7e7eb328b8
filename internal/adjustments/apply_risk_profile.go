package adjustments

import (
	"context"
	"fmt"

	"capital-engine/internal/model"
	"capital-engine/internal/simulation"
)

type applyRiskProfileProps struct {
	Profile string `json:"profile"`
}

type ApplyRiskProfileHandler struct {
	profiles ProfileLookup
}

func (h *ApplyRiskProfileHandler) Validate(ctx context.Context, state *simulation.ScenarioParameters, adj *model.Adjustment) []model.CalculationMessage {
	var props applyRiskProfileProps
	if msgs := decodeProps(adj, &props); msgs != nil {
		return msgs
	}
	if _, ok := h.profiles.Lookup(ctx, props.Profile); !ok {
		return []model.CalculationMessage{model.Critical("UNKNOWN_RISK_PROFILE", fmt.Sprintf("Unknown risk profile: %q", props.Profile))}
	}
	return nil
}

func (h *ApplyRiskProfileHandler) Apply(ctx context.Context, state *simulation.ScenarioParameters, adj *model.Adjustment) []model.CalculationMessage {
	var props applyRiskProfileProps
	decodeProps(adj, &props)

	rp, _ := h.profiles.Lookup(ctx, props.Profile)
	*state = state.WithRiskProfile(rp)
	return nil
}
