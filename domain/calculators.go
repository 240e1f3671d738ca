package domain

import "time"

// BorrowerProfile holds the inputs shared by every calculator.
// Rates are fractions (0.05 means 5%).
type BorrowerProfile struct {
	PlanID       string   `json:"plan"`
	Balance      float64  `json:"balance"`
	Salary       float64  `json:"salary"`
	SalaryGrowth float64  `json:"salary_growth"`
	InterestRate *float64 `json:"interest_rate,omitempty"` // overrides the plan's assumed rate
	HorizonYears int      `json:"horizon_years,omitempty"`
}

type RepaymentRequest struct {
	BorrowerProfile
	IncludeSchedule bool `json:"include_schedule"`
	Explain         bool `json:"explain"`
}

// DisplaySummary carries the same figures as ProjectionSummary, formatted for
// the page.
type DisplaySummary struct {
	FirstMonthlyRepayment string `json:"first_monthly_repayment"`
	TotalRepaid           string `json:"total_repaid"`
	TotalInterest         string `json:"total_interest"`
	WrittenOff            string `json:"written_off"`
	InterestRate          string `json:"interest_rate"`
}

type ProjectionSummary struct {
	PlanID                string          `json:"plan"`
	PlanName              string          `json:"plan_name"`
	FirstMonthlyRepayment float64         `json:"first_monthly_repayment"`
	TotalRepaid           float64         `json:"total_repaid"`
	TotalInterest         float64         `json:"total_interest"`
	FinalBalance          float64         `json:"final_balance"`
	WrittenOff            float64         `json:"written_off"`
	PaidOffAtMonth        int             `json:"paid_off_at_month,omitempty"`
	PaidOffYears          float64         `json:"paid_off_years,omitempty"`
	Months                int             `json:"months"`
	State                 ProjectionState `json:"state"`
	Display               DisplaySummary  `json:"display"`
}

// YearRow aggregates twelve monthly periods for charting.
type YearRow struct {
	Year           int     `json:"year"`
	AnnualIncome   float64 `json:"annual_income"`
	Interest       float64 `json:"interest"`
	Repaid         float64 `json:"repaid"`
	ClosingBalance float64 `json:"closing_balance"`
}

type RepaymentResult struct {
	ID          string            `json:"id,omitempty"`
	Summary     ProjectionSummary `json:"summary"`
	Yearly      []YearRow         `json:"yearly,omitempty"`
	Explanation string            `json:"explanation,omitempty"`
	Cached      bool              `json:"cached"`
}

type OverpaymentRequest struct {
	BorrowerProfile
	MonthlyOverpayment float64 `json:"monthly_overpayment"`
	LumpSum            float64 `json:"lump_sum"`
}

type OverpaymentResult struct {
	Baseline            ProjectionSummary `json:"baseline"`
	WithOverpayment     ProjectionSummary `json:"with_overpayment"`
	InterestSaved       float64           `json:"interest_saved"`
	MonthsSaved         int               `json:"months_saved"`
	TotalCostDifference float64           `json:"total_cost_difference"`
	Worthwhile          bool              `json:"worthwhile"`
	Verdict             string            `json:"verdict"`
}

type SalaryGrowthRequest struct {
	BorrowerProfile
	MinGrowth float64 `json:"min_growth"`
	MaxGrowth float64 `json:"max_growth"`
	Step      float64 `json:"step"`
}

type GrowthScenario struct {
	Growth  float64           `json:"growth"`
	Summary ProjectionSummary `json:"summary"`
}

type SalaryGrowthResult struct {
	Scenarios []GrowthScenario `json:"scenarios"`
	// PayoffGrowth is the lowest growth rate at which the loan is cleared
	// before write-off.
	PayoffGrowth *float64 `json:"payoff_growth,omitempty"`
}

type TotalCostRequest struct {
	BorrowerProfile
	Plans []string `json:"plans,omitempty"`
}

type PlanCost struct {
	PlanID  string            `json:"plan"`
	Summary ProjectionSummary `json:"summary"`
}

type TotalCostResult struct {
	Plans    []PlanCost `json:"plans"`
	Cheapest string     `json:"cheapest"`
}

// CalculationRecord is a stored repayment estimate.
type CalculationRecord struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Request   RepaymentRequest `json:"request"`
	Result    RepaymentResult  `json:"result"`
}
