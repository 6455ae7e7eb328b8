package simulation

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultPercentiles are reported when Summarize is called without any.
var DefaultPercentiles = []float64{10, 50, 90}

// Band is one percentile of capital at every month.
type Band struct {
	Percentile float64   `json:"percentile"`
	Values     []float64 `json:"values"`
}

// Summary condenses an ensemble for tabular inspection.
type Summary struct {
	Months               int       `json:"months"`
	Trajectories         int       `json:"trajectories"`
	MeanPath             []float64 `json:"mean_path"`
	Bands                []Band    `json:"bands"`
	FinalMin             float64   `json:"final_min"`
	FinalMax             float64   `json:"final_max"`
	FinalMean            float64   `json:"final_mean"`
	FinalStdDev          float64   `json:"final_std_dev"`
	DepletionProbability float64   `json:"depletion_probability"`
	// DepletionMonth is the median first month at which a depleted path hit
	// zero, or -1 when no path was depleted.
	DepletionMonth int `json:"depletion_month"`
}

// Summarize computes per-month bands and final-capital statistics.
// Percentiles are given on a 0-100 scale.
func Summarize(ens Ensemble, percentiles ...float64) Summary {
	if len(percentiles) == 0 {
		percentiles = DefaultPercentiles
	}
	s := Summary{Trajectories: len(ens), DepletionMonth: -1}
	if len(ens) == 0 {
		return s
	}
	months := len(ens[0])
	s.Months = months

	s.MeanPath = make([]float64, months)
	s.Bands = make([]Band, len(percentiles))
	for i, p := range percentiles {
		s.Bands[i] = Band{Percentile: p, Values: make([]float64, months)}
	}

	column := make([]float64, len(ens))
	for m := 0; m < months; m++ {
		for t, path := range ens {
			column[t] = path[m]
		}
		s.MeanPath[m] = stat.Mean(column, nil)
		sort.Float64s(column)
		for i, p := range percentiles {
			s.Bands[i].Values[m] = stat.Quantile(p/100, stat.Empirical, column, nil)
		}
	}

	finals := make([]float64, len(ens))
	var depletedAt []float64
	for t, path := range ens {
		if months > 0 {
			finals[t] = path[months-1]
		}
		if m := firstZero(path); m >= 0 {
			depletedAt = append(depletedAt, float64(m))
		}
	}
	s.FinalMin = floats.Min(finals)
	s.FinalMax = floats.Max(finals)
	s.FinalMean, s.FinalStdDev = stat.MeanStdDev(finals, nil)
	if math.IsNaN(s.FinalStdDev) || math.IsInf(s.FinalStdDev, 0) {
		s.FinalStdDev = 0
	}

	s.DepletionProbability = float64(len(depletedAt)) / float64(len(ens))
	if len(depletedAt) > 0 {
		sort.Float64s(depletedAt)
		s.DepletionMonth = int(stat.Quantile(0.5, stat.Empirical, depletedAt, nil))
	}
	return s
}

func firstZero(path Trajectory) int {
	for m, v := range path {
		if v <= 0 {
			return m
		}
	}
	return -1
}
