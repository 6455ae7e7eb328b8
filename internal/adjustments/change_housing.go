package adjustments

import (
	"context"

	"capital-engine/internal/model"
	"capital-engine/internal/simulation"
)

type changeHousingProps struct {
	Housing string `json:"housing"`
}

type ChangeHousingHandler struct{}

func (h *ChangeHousingHandler) Validate(ctx context.Context, state *simulation.ScenarioParameters, adj *model.Adjustment) []model.CalculationMessage {
	var props changeHousingProps
	if msgs := decodeProps(adj, &props); msgs != nil {
		return msgs
	}

	housing, ok := simulation.ParseHousing(props.Housing)
	if !ok {
		return []model.CalculationMessage{model.Critical("INVALID_HOUSING", "Housing must be RENT, MORTGAGE or OWNED")}
	}
	if housing == state.Housing {
		return []model.CalculationMessage{model.Warning("HOUSING_UNCHANGED", "Scenario already uses housing "+string(housing))}
	}
	return nil
}

func (h *ChangeHousingHandler) Apply(ctx context.Context, state *simulation.ScenarioParameters, adj *model.Adjustment) []model.CalculationMessage {
	var props changeHousingProps
	decodeProps(adj, &props)

	state.Housing, _ = simulation.ParseHousing(props.Housing)
	return nil
}
