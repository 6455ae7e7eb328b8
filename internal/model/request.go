package model

import json "github.com/goccy/go-json"

type SimulationRequest struct {
	TenantID    string       `json:"tenant_id"`
	Scenario    Scenario     `json:"scenario"`
	Adjustments []Adjustment `json:"adjustments,omitempty"`
	Options     RunOptions   `json:"options"`
}

// Adjustment is a named what-if change applied to the base scenario
// before simulating. Adjustments run in order.
type Adjustment struct {
	AdjustmentID   string          `json:"adjustment_id"`
	AdjustmentName string          `json:"adjustment_name"`
	Properties     json.RawMessage `json:"properties"`
}

type RunOptions struct {
	// Seed makes the run reproducible. A random seed is chosen and echoed
	// back in the response when absent.
	Seed        *uint64   `json:"seed,omitempty"`
	Workers     int       `json:"workers,omitempty"`
	Percentiles []float64 `json:"percentiles,omitempty"`
	// OmitPaths drops the raw ensemble from the JSON response, keeping
	// only the summary.
	OmitPaths bool `json:"omit_paths,omitempty"`
}
