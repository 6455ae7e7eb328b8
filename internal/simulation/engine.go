package simulation

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat/distuv"
)

// Trajectory is the month-end capital of one simulated path.
type Trajectory []float64

// Ensemble is every trajectory of a run, ordered by trajectory index.
type Ensemble []Trajectory

const (
	defaultShockMin = 500
	defaultShockMax = 3000
)

// Engine generates Monte Carlo capital trajectories for a fixed scenario.
// Each Simulate call is a new run with its own draws; only the run counter
// survives between calls.
type Engine struct {
	runs     atomic.Uint64
	params   ScenarioParameters
	streams  Streams
	workers  int
	shockMin float64
	shockMax float64
	log      zerolog.Logger
}

type Option func(*Engine)

// WithWorkers spreads trajectories over n goroutines. Requires streams that
// give each trajectory its own source.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithShockBand overrides the uniform band unexpected expenses are drawn from.
func WithShockBand(lo, hi float64) Option {
	return func(e *Engine) {
		e.shockMin = lo
		e.shockMax = hi
	}
}

// New validates params and returns an engine ready to simulate.
func New(params ScenarioParameters, streams Streams, opts ...Option) (*Engine, error) {
	e := &Engine{
		params:   params,
		streams:  streams,
		workers:  1,
		shockMin: defaultShockMin,
		shockMax: defaultShockMax,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("scenario rejected: %w", err)
	}
	if streams == nil {
		return nil, &InvalidParameterError{Field: "streams", Value: nil, Reason: "a random source is required"}
	}
	if e.workers < 1 {
		return nil, &InvalidParameterError{Field: "workers", Value: e.workers, Reason: "must be positive"}
	}
	if _, shared := streams.(SharedStream); shared && e.workers > 1 {
		return nil, &InvalidParameterError{Field: "workers", Value: e.workers, Reason: "a shared stream cannot be used concurrently"}
	}
	if !finite(e.shockMin) || !finite(e.shockMax) || e.shockMin < 0 || e.shockMax < e.shockMin {
		return nil, &InvalidParameterError{Field: "shock_band", Value: [2]float64{e.shockMin, e.shockMax}, Reason: "must satisfy 0 <= min <= max"}
	}
	return e, nil
}

func (e *Engine) Params() ScenarioParameters {
	return e.params
}

// Simulate runs every trajectory and returns a fresh ensemble.
func (e *Engine) Simulate() Ensemble {
	start := time.Now()
	run := int(e.runs.Add(1) - 1)
	n := e.params.NumTrajectories
	ens := make(Ensemble, n)

	e.log.Debug().
		Int("run", run).
		Int("trajectories", n).
		Int("months", e.params.Months()).
		Int("workers", e.workers).
		Msg("Starting simulation")

	if e.workers == 1 {
		for i := range ens {
			ens[i] = e.trajectory(run, i)
		}
	} else {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < e.workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					ens[i] = e.trajectory(run, i)
				}
			}()
		}
		for i := 0; i < n; i++ {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	e.log.Debug().
		Dur("elapsed", time.Since(start)).
		Msg("Simulation complete")
	return ens
}

// trajectory applies the monthly transition rule for one path.
func (e *Engine) trajectory(run, idx int) Trajectory {
	p := e.params
	src := e.streams.Stream(run, idx)

	returns := distuv.Normal{
		Mu:    p.AnnualReturnMean / 12,
		Sigma: p.AnnualReturnStdDev / math.Sqrt(12),
		Src:   src,
	}
	variation := distuv.Uniform{
		Min: 1 - p.VariableExpenseFraction,
		Max: 1 + p.VariableExpenseFraction,
		Src: src,
	}
	unit := distuv.Uniform{Min: 0, Max: 1, Src: src}
	shock := distuv.Uniform{Min: e.shockMin, Max: e.shockMax, Src: src}

	inflationMonthly := math.Pow(1+p.AnnualInflation, 1.0/12) - 1
	eventChance := p.UnexpectedEventProbability / 12
	housing := p.Housing.MonthlyCost()

	capital := p.InitialCapital
	contribution := p.MonthlyInvestment
	retired := false
	path := make(Trajectory, p.Months())

	for month := range path {
		profit := capital * saturate(returns.Rand())
		if profit > 0 {
			profit *= 1 - p.InvestmentTaxRate
		}
		capital = saturate(capital + profit)

		expense := p.MonthlyExpenses * variation.Rand()
		expense *= saturate(math.Pow(1+inflationMonthly, float64(month)))
		if unit.Rand() < eventChance {
			expense += shock.Rand()
		}
		expense = saturate(expense)

		if !retired && float64(p.Age)+float64(month)/12 >= float64(p.RetirementAge) {
			retired = true
		}
		if retired {
			contribution = 0
		}

		capital += contribution
		capital -= expense
		capital -= housing
		capital = math.Max(saturate(capital), 0)

		if month%12 == 0 && month > 0 {
			contribution = saturate(contribution * (1 + p.AnnualSalaryGrowth))
		}
		path[month] = capital
	}
	return path
}

// saturate clamps v to [-CapitalCeiling, CapitalCeiling].
func saturate(v float64) float64 {
	return math.Max(-CapitalCeiling, math.Min(v, CapitalCeiling))
}
