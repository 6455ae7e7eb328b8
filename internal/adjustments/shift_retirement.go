package adjustments

import (
	"context"
	"fmt"

	"capital-engine/internal/model"
	"capital-engine/internal/simulation"
)

type shiftRetirementProps struct {
	Years *int `json:"years"`
}

type ShiftRetirementHandler struct{}

func (h *ShiftRetirementHandler) Validate(ctx context.Context, state *simulation.ScenarioParameters, adj *model.Adjustment) []model.CalculationMessage {
	var props shiftRetirementProps
	if msgs := decodeProps(adj, &props); msgs != nil {
		return msgs
	}
	if props.Years == nil {
		return []model.CalculationMessage{model.Critical("INVALID_PROPERTIES", "years is required")}
	}
	if state.RetirementAge+*props.Years <= 0 {
		return []model.CalculationMessage{model.Critical("INVALID_RETIREMENT_AGE", "Shifted retirement age must be positive")}
	}
	return nil
}

func (h *ShiftRetirementHandler) Apply(ctx context.Context, state *simulation.ScenarioParameters, adj *model.Adjustment) []model.CalculationMessage {
	var props shiftRetirementProps
	decodeProps(adj, &props)

	state.RetirementAge += *props.Years
	if state.RetirementAge <= state.Age {
		return []model.CalculationMessage{model.Warning(
			"ALREADY_RETIRED",
			fmt.Sprintf("Retirement age %d is not above current age %d; contributions stop immediately", state.RetirementAge, state.Age),
		)}
	}
	return nil
}
