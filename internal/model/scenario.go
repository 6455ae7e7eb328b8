package model

// Scenario is the household description as sent by clients. Amounts are in
// currency units, rates are decimal fractions.
type Scenario struct {
	Age                        int     `json:"age"`
	InitialCapital             float64 `json:"initial_capital"`
	MonthlyExpenses            float64 `json:"monthly_expenses"`
	MonthlyInvestment          float64 `json:"monthly_investment"`
	RiskProfile                string  `json:"risk_profile,omitempty"`
	AnnualReturnMean           float64 `json:"annual_return_mean"`
	AnnualReturnStdDev         float64 `json:"annual_return_std_dev"`
	AnnualInflation            float64 `json:"annual_inflation"`
	VariableExpenseFraction    float64 `json:"variable_expense_fraction"`
	UnexpectedEventProbability float64 `json:"unexpected_event_probability"`
	AnnualSalaryGrowth         float64 `json:"annual_salary_growth"`
	RetirementAge              int     `json:"retirement_age"`
	InvestmentTaxRate          float64 `json:"investment_tax_rate"`
	Housing                    string  `json:"housing,omitempty"`
	HorizonYears               *int    `json:"horizon_years,omitempty"`
	NumTrajectories            *int    `json:"num_trajectories,omitempty"`
}
