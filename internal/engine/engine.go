package engine

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"capital-engine/internal/adjustments"
	"capital-engine/internal/jsonpatch"
	"capital-engine/internal/model"
	"capital-engine/internal/simulation"
)

// Limits caps the work a single request may ask for.
type Limits struct {
	MaxTrajectories int
	MaxHorizonYears int
	MaxWorkers      int
}

// Calculator turns simulation requests into responses.
type Calculator struct {
	profiles    adjustments.ProfileLookup
	adjustments *adjustments.Registry
	limits      Limits
	log         zerolog.Logger
}

func NewCalculator(profiles adjustments.ProfileLookup, limits Limits, log zerolog.Logger) *Calculator {
	if limits.MaxWorkers < 1 {
		limits.MaxWorkers = 1
	}
	return &Calculator{
		profiles:    profiles,
		adjustments: adjustments.NewRegistry(profiles),
		limits:      limits,
		log:         log,
	}
}

func (c *Calculator) Process(ctx context.Context, req *model.SimulationRequest) *model.SimulationResponse {
	start := time.Now()

	var allMessages []model.CalculationMessage
	var processed []model.ProcessedAdjustment
	hasCritical := false

	record := func(msgs []model.CalculationMessage) []int {
		var idx []int
		for _, m := range msgs {
			m.ID = len(allMessages)
			allMessages = append(allMessages, m)
			idx = append(idx, m.ID)
			if m.Level == model.LevelCritical {
				hasCritical = true
			}
		}
		return idx
	}

	base, msgs := c.scenarioParameters(ctx, &req.Scenario)
	record(msgs)

	state := base
	if !hasCritical {
		for _, adj := range req.Adjustments {
			handler, ok := c.adjustments.Get(adj.AdjustmentName)
			if !ok {
				idx := record([]model.CalculationMessage{model.Critical(
					"UNKNOWN_ADJUSTMENT",
					fmt.Sprintf("Unknown adjustment: %s", adj.AdjustmentName),
				)})
				processed = append(processed, model.ProcessedAdjustment{Adjustment: adj, CalculationMessageIndexes: idx})
				break
			}

			idx := record(handler.Validate(ctx, &state, &adj))
			if !hasCritical {
				idx = append(idx, record(handler.Apply(ctx, &state, &adj))...)
			}
			processed = append(processed, model.ProcessedAdjustment{Adjustment: adj, CalculationMessageIndexes: idx})
			if hasCritical {
				break
			}
		}
	}

	if !hasCritical {
		record(c.checkLimits(state, req.Options))
	}

	var (
		eng  *simulation.Engine
		seed uint64
	)
	if !hasCritical {
		seed = rand.Uint64()
		if req.Options.Seed != nil {
			seed = *req.Options.Seed
		}
		var err error
		eng, err = simulation.New(state, simulation.PCGStreams{Seed: seed},
			simulation.WithWorkers(c.workers(req.Options.Workers)),
			simulation.WithLogger(c.log),
		)
		if err != nil {
			record(parameterMessages(err))
		}
	}

	result := model.CalculationResult{Adjustments: processed}
	if !hasCritical {
		patch, err := jsonpatch.Between(base, state)
		if err != nil {
			c.log.Error().Err(err).Msg("Failed to diff scenarios")
		}
		ens := eng.Simulate()
		summary := simulation.Summarize(ens, req.Options.Percentiles...)

		effective := eng.Params()
		result.EffectiveScenario = &effective
		result.ScenarioPatch = patch
		result.Seed = seed
		result.Summary = &summary
		result.Ensemble = ens
	}

	if allMessages == nil {
		allMessages = []model.CalculationMessage{}
	}
	if result.Adjustments == nil {
		result.Adjustments = []model.ProcessedAdjustment{}
	}
	if result.ScenarioPatch == nil {
		result.ScenarioPatch = []jsonpatch.Op{}
	}
	result.Messages = allMessages

	outcome := model.OutcomeSuccess
	if hasCritical {
		outcome = model.OutcomeFailure
	}

	elapsed := time.Since(start)
	now := time.Now().UTC()

	c.log.Info().
		Str("tenant_id", req.TenantID).
		Str("outcome", outcome).
		Int("messages", len(allMessages)).
		Dur("elapsed", elapsed).
		Msg("Calculation finished")

	return &model.SimulationResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          uuid.New().String(),
			TenantID:               req.TenantID,
			CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
			CalculationCompletedAt: now.Format(time.RFC3339),
			CalculationDurationMs:  elapsed.Milliseconds(),
			CalculationOutcome:     outcome,
		},
		CalculationResult: result,
	}
}

// scenarioParameters fills defaults and resolves the risk profile.
func (c *Calculator) scenarioParameters(ctx context.Context, s *model.Scenario) (simulation.ScenarioParameters, []model.CalculationMessage) {
	var msgs []model.CalculationMessage

	p := simulation.ScenarioParameters{
		Age:                        s.Age,
		InitialCapital:             s.InitialCapital,
		MonthlyExpenses:            s.MonthlyExpenses,
		MonthlyInvestment:          s.MonthlyInvestment,
		AnnualReturnMean:           s.AnnualReturnMean,
		AnnualReturnStdDev:         s.AnnualReturnStdDev,
		AnnualInflation:            s.AnnualInflation,
		VariableExpenseFraction:    s.VariableExpenseFraction,
		UnexpectedEventProbability: s.UnexpectedEventProbability,
		AnnualSalaryGrowth:         s.AnnualSalaryGrowth,
		RetirementAge:              s.RetirementAge,
		InvestmentTaxRate:          s.InvestmentTaxRate,
		Housing:                    simulation.HousingOwned,
		HorizonYears:               simulation.DefaultHorizonYears,
		NumTrajectories:            simulation.DefaultTrajectories,
	}
	if s.HorizonYears != nil {
		p.HorizonYears = *s.HorizonYears
	}
	if s.NumTrajectories != nil {
		p.NumTrajectories = *s.NumTrajectories
	}
	if s.Housing != "" {
		h, ok := simulation.ParseHousing(s.Housing)
		if !ok {
			msgs = append(msgs, model.Critical("INVALID_PARAMETER", "housing: must be RENT, MORTGAGE or OWNED"))
		}
		p.Housing = h
	}
	if s.RiskProfile != "" {
		rp, ok := c.profiles.Lookup(ctx, s.RiskProfile)
		if !ok {
			msgs = append(msgs, model.Critical("UNKNOWN_RISK_PROFILE", fmt.Sprintf("Unknown risk profile: %q", s.RiskProfile)))
		} else {
			if s.AnnualReturnMean != 0 || s.AnnualReturnStdDev != 0 {
				msgs = append(msgs, model.Warning("RISK_PROFILE_OVERRIDES_RETURNS", "Explicit return mean and deviation are replaced by risk profile "+rp.Name))
			}
			p = p.WithRiskProfile(rp)
		}
	}
	if p.RetirementAge > 0 && p.RetirementAge <= p.Age {
		msgs = append(msgs, model.Warning("ALREADY_RETIRED", fmt.Sprintf("Retirement age %d is not above current age %d; contributions stop immediately", p.RetirementAge, p.Age)))
	}
	return p, msgs
}

func (c *Calculator) checkLimits(p simulation.ScenarioParameters, opts model.RunOptions) []model.CalculationMessage {
	var msgs []model.CalculationMessage
	if c.limits.MaxTrajectories > 0 && p.NumTrajectories > c.limits.MaxTrajectories {
		msgs = append(msgs, model.Critical("LIMIT_EXCEEDED", fmt.Sprintf("num_trajectories %d exceeds the limit of %d", p.NumTrajectories, c.limits.MaxTrajectories)))
	}
	if c.limits.MaxHorizonYears > 0 && p.HorizonYears > c.limits.MaxHorizonYears {
		msgs = append(msgs, model.Critical("LIMIT_EXCEEDED", fmt.Sprintf("horizon_years %d exceeds the limit of %d", p.HorizonYears, c.limits.MaxHorizonYears)))
	}
	for _, pct := range opts.Percentiles {
		if !(pct >= 0 && pct <= 100) {
			msgs = append(msgs, model.Critical("INVALID_PERCENTILE", fmt.Sprintf("Percentile %v must be within [0, 100]", pct)))
		}
	}
	if opts.Workers < 0 {
		msgs = append(msgs, model.Critical("INVALID_WORKERS", "workers must not be negative"))
	}
	return msgs
}

func (c *Calculator) workers(requested int) int {
	if requested <= 0 || requested > c.limits.MaxWorkers {
		return c.limits.MaxWorkers
	}
	return requested
}

func parameterMessages(err error) []model.CalculationMessage {
	violations := simulation.Violations(err)
	if len(violations) == 0 {
		return []model.CalculationMessage{model.Critical("INVALID_PARAMETER", err.Error())}
	}
	msgs := make([]model.CalculationMessage, 0, len(violations))
	for _, v := range violations {
		msgs = append(msgs, model.Critical("INVALID_PARAMETER", fmt.Sprintf("%s: %s", v.Field, v.Reason)))
	}
	return msgs
}
