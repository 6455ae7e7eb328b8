package adjustments

import (
	"context"

	json "github.com/goccy/go-json"

	"capital-engine/internal/model"
	"capital-engine/internal/simulation"
)

// Handler defines the contract for all adjustment implementations.
// Validate reports problems without touching the scenario; Apply is only
// called when Validate produced no critical message.
type Handler interface {
	Validate(ctx context.Context, state *simulation.ScenarioParameters, adj *model.Adjustment) []model.CalculationMessage
	Apply(ctx context.Context, state *simulation.ScenarioParameters, adj *model.Adjustment) []model.CalculationMessage
}

func decodeProps(adj *model.Adjustment, v interface{}) []model.CalculationMessage {
	if len(adj.Properties) == 0 {
		return []model.CalculationMessage{model.Critical("INVALID_PROPERTIES", "Adjustment properties are missing")}
	}
	if err := json.Unmarshal(adj.Properties, v); err != nil {
		return []model.CalculationMessage{model.Critical("INVALID_PROPERTIES", "Adjustment properties are malformed: "+err.Error())}
	}
	return nil
}
