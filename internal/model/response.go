package model

import (
	"capital-engine/internal/jsonpatch"
	"capital-engine/internal/simulation"
)

type SimulationResponse struct {
	CalculationMetadata CalculationMetadata `json:"calculation_metadata"`
	CalculationResult   CalculationResult   `json:"calculation_result"`
}

type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	TenantID               string `json:"tenant_id"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
	CalculationOutcome     string `json:"calculation_outcome"`
}

type CalculationResult struct {
	Messages          []CalculationMessage           `json:"messages"`
	Adjustments       []ProcessedAdjustment          `json:"adjustments"`
	EffectiveScenario *simulation.ScenarioParameters `json:"effective_scenario"`
	ScenarioPatch     []jsonpatch.Op                 `json:"scenario_patch"`
	Seed              uint64                         `json:"seed"`
	Summary           *simulation.Summary            `json:"summary"`
	Ensemble          simulation.Ensemble            `json:"ensemble,omitempty"`
}

type ProcessedAdjustment struct {
	Adjustment                Adjustment `json:"adjustment"`
	CalculationMessageIndexes []int      `json:"calculation_message_indexes,omitempty"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)
