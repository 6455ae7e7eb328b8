package adjustments

import (
	"context"
	"math"

	"capital-engine/internal/model"
	"capital-engine/internal/simulation"
)

type scaleExpensesProps struct {
	Factor float64 `json:"factor"`
}

type ScaleExpensesHandler struct{}

func (h *ScaleExpensesHandler) Validate(ctx context.Context, state *simulation.ScenarioParameters, adj *model.Adjustment) []model.CalculationMessage {
	var props scaleExpensesProps
	if msgs := decodeProps(adj, &props); msgs != nil {
		return msgs
	}
	if !(props.Factor > 0) || math.IsInf(props.Factor, 0) {
		return []model.CalculationMessage{model.Critical("INVALID_FACTOR", "Expense factor must be a positive number")}
	}
	return nil
}

func (h *ScaleExpensesHandler) Apply(ctx context.Context, state *simulation.ScenarioParameters, adj *model.Adjustment) []model.CalculationMessage {
	var props scaleExpensesProps
	decodeProps(adj, &props)

	state.MonthlyExpenses *= props.Factor
	return nil
}
