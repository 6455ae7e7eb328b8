package simulation

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	DefaultHorizonYears = 40
	DefaultTrajectories = 30

	// CapitalCeiling bounds input amounts and saturates simulated capital,
	// keeping every trajectory and its summary statistics finite.
	CapitalCeiling = 1e150
)

// Housing is the household's housing condition. Each condition carries a
// fixed monthly cost that is subtracted after contributions.
type Housing string

const (
	HousingRent     Housing = "RENT"
	HousingMortgage Housing = "MORTGAGE"
	HousingOwned    Housing = "OWNED"
)

// MonthlyCost returns the fixed housing cost charged every month.
func (h Housing) MonthlyCost() float64 {
	switch h {
	case HousingRent:
		return 500
	case HousingMortgage:
		return 700
	default:
		return 0
	}
}

func (h Housing) valid() bool {
	switch h {
	case HousingRent, HousingMortgage, HousingOwned:
		return true
	}
	return false
}

// ParseHousing accepts a housing condition in any letter case.
func ParseHousing(s string) (Housing, bool) {
	h := Housing(strings.ToUpper(strings.TrimSpace(s)))
	return h, h.valid()
}

// RiskProfile is a named pair of annual return mean and volatility.
type RiskProfile struct {
	Name               string  `json:"name"`
	AnnualReturnMean   float64 `json:"mean"`
	AnnualReturnStdDev float64 `json:"std_dev"`
}

var presets = map[string]RiskProfile{
	"low":    {Name: "low", AnnualReturnMean: 0.04, AnnualReturnStdDev: 0.05},
	"medium": {Name: "medium", AnnualReturnMean: 0.06, AnnualReturnStdDev: 0.10},
	"high":   {Name: "high", AnnualReturnMean: 0.08, AnnualReturnStdDev: 0.15},
}

// ProfileByName looks up one of the built-in risk profiles (low, medium, high).
func ProfileByName(name string) (RiskProfile, bool) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// ScenarioParameters is the full, already-parsed input of one simulation.
// Amounts are in currency units, rates are decimal fractions (0.06 = 6%).
type ScenarioParameters struct {
	Age                        int     `json:"age"`
	InitialCapital             float64 `json:"initial_capital"`
	MonthlyExpenses            float64 `json:"monthly_expenses"`
	MonthlyInvestment          float64 `json:"monthly_investment"`
	AnnualReturnMean           float64 `json:"annual_return_mean"`
	AnnualReturnStdDev         float64 `json:"annual_return_std_dev"`
	AnnualInflation            float64 `json:"annual_inflation"`
	VariableExpenseFraction    float64 `json:"variable_expense_fraction"`
	UnexpectedEventProbability float64 `json:"unexpected_event_probability"`
	AnnualSalaryGrowth         float64 `json:"annual_salary_growth"`
	RetirementAge              int     `json:"retirement_age"`
	InvestmentTaxRate          float64 `json:"investment_tax_rate"`
	Housing                    Housing `json:"housing"`
	HorizonYears               int     `json:"horizon_years"`
	NumTrajectories            int     `json:"num_trajectories"`
}

// Months is the number of monthly steps in every trajectory.
func (p ScenarioParameters) Months() int {
	return p.HorizonYears * 12
}

// WithRiskProfile returns a copy using the profile's return distribution.
func (p ScenarioParameters) WithRiskProfile(rp RiskProfile) ScenarioParameters {
	p.AnnualReturnMean = rp.AnnualReturnMean
	p.AnnualReturnStdDev = rp.AnnualReturnStdDev
	return p
}

// Validate reports every out-of-range field. The returned error matches
// ErrInvalidParameter and each violation can be extracted with errors.As.
func (p ScenarioParameters) Validate() error {
	var errs []error
	check := func(bad bool, field string, value interface{}, reason string) {
		if bad {
			errs = append(errs, &InvalidParameterError{Field: field, Value: value, Reason: reason})
		}
	}

	check(p.Age <= 0, "age", p.Age, "must be positive")
	check(!amount(p.InitialCapital), "initial_capital", p.InitialCapital, amountReason)
	check(!amount(p.MonthlyExpenses), "monthly_expenses", p.MonthlyExpenses, amountReason)
	check(!amount(p.MonthlyInvestment), "monthly_investment", p.MonthlyInvestment, amountReason)
	check(!finite(p.AnnualReturnMean), "annual_return_mean", p.AnnualReturnMean, "must be finite")
	check(p.AnnualReturnStdDev < 0 || !finite(p.AnnualReturnStdDev), "annual_return_std_dev", p.AnnualReturnStdDev, "must not be negative")
	check(!finite(p.AnnualInflation) || 1+p.AnnualInflation <= 0, "annual_inflation", p.AnnualInflation, "must be greater than -1")
	check(!fraction(p.VariableExpenseFraction), "variable_expense_fraction", p.VariableExpenseFraction, "must be within [0, 1]")
	check(!fraction(p.UnexpectedEventProbability), "unexpected_event_probability", p.UnexpectedEventProbability, "must be within [0, 1]")
	check(!finite(p.AnnualSalaryGrowth) || 1+p.AnnualSalaryGrowth <= 0, "annual_salary_growth", p.AnnualSalaryGrowth, "must be greater than -1")
	check(!fraction(p.InvestmentTaxRate), "investment_tax_rate", p.InvestmentTaxRate, "must be within [0, 1]")
	check(!p.Housing.valid(), "housing", string(p.Housing), "must be RENT, MORTGAGE or OWNED")
	check(p.HorizonYears <= 0, "horizon_years", p.HorizonYears, "must be positive")
	check(p.NumTrajectories <= 0, "num_trajectories", p.NumTrajectories, "must be positive")

	return errors.Join(errs...)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

var amountReason = fmt.Sprintf("must be within [0, %g]", CapitalCeiling)

func amount(v float64) bool {
	return v >= 0 && v <= CapitalCeiling
}

func fraction(v float64) bool {
	return v >= 0 && v <= 1
}
