package domain

import (
	"fmt"
	"math"
)

// IncomeFunc returns the gross annual income for the year containing the
// given monthly period (1-based).
type IncomeFunc func(period int) float64

// SteppedIncome grows the starting income once every 12 periods.
func SteppedIncome(start, annualGrowth float64) IncomeFunc {
	return func(period int) float64 {
		yearsElapsed := (period - 1) / 12
		return start * math.Pow(1+annualGrowth, float64(yearsElapsed))
	}
}

// FlatIncome returns the same income for every period.
func FlatIncome(income float64) IncomeFunc {
	return func(int) float64 { return income }
}

type ProjectionInput struct {
	StartingBalance float64
	IncomeAtPeriod  IncomeFunc
	Plan            LoanPlan
	MaxPeriods      int

	// ExtraMonthlyPayment is a voluntary payment on top of the required one.
	ExtraMonthlyPayment float64
}

// Validate rejects inputs the engine must never see. The income function is
// sampled over the whole horizon.
func (in ProjectionInput) Validate() error {
	if err := in.Plan.Validate(); err != nil {
		return err
	}
	if !finite(in.StartingBalance) || in.StartingBalance < 0 {
		return fmt.Errorf("%w: starting balance must be >= 0, got %v", ErrInvalidProjectionInput, in.StartingBalance)
	}
	if in.MaxPeriods <= 0 {
		return fmt.Errorf("%w: horizon must be > 0 periods, got %d", ErrInvalidProjectionInput, in.MaxPeriods)
	}
	if !finite(in.ExtraMonthlyPayment) || in.ExtraMonthlyPayment < 0 {
		return fmt.Errorf("%w: extra monthly payment must be >= 0, got %v", ErrInvalidProjectionInput, in.ExtraMonthlyPayment)
	}
	if in.IncomeAtPeriod == nil {
		return fmt.Errorf("%w: income function is required", ErrInvalidProjectionInput)
	}
	for p := 1; p <= in.MaxPeriods; p++ {
		income := in.IncomeAtPeriod(p)
		if !finite(income) || income < 0 {
			return fmt.Errorf("%w: income at period %d must be >= 0, got %v", ErrInvalidProjectionInput, p, income)
		}
	}
	return nil
}

type PeriodRecord struct {
	PeriodIndex               int     `json:"period"`
	AnnualIncomeForPeriod     float64 `json:"annual_income"`
	InterestAccruedThisPeriod float64 `json:"interest"`
	PaymentMadeThisPeriod     float64 `json:"payment"`
	BalanceAfterPeriod        float64 `json:"balance"`
}

type ProjectionState string

const (
	StateAccumulating ProjectionState = "accumulating"
	StatePaidOff      ProjectionState = "paid_off"
	StateWrittenOff   ProjectionState = "written_off"
)

type ProjectionResult struct {
	Schedule             []PeriodRecord
	TotalRepaid          float64
	TotalInterestAccrued float64
	FinalBalance         float64
	PaidOffAtPeriod      *int
	MaxPeriods           int
}

func (r ProjectionResult) PaidOff() bool {
	return r.PaidOffAtPeriod != nil
}

// WrittenOff is the balance cancelled at the end of the horizon.
func (r ProjectionResult) WrittenOff() float64 {
	if r.PaidOff() {
		return 0
	}
	return r.FinalBalance
}

func (r ProjectionResult) State() ProjectionState {
	switch {
	case r.PaidOff():
		return StatePaidOff
	case len(r.Schedule) >= r.MaxPeriods:
		return StateWrittenOff
	default:
		return StateAccumulating
	}
}

// BalanceAt reports the balance after period p. Periods past payoff report zero.
func (r ProjectionResult) BalanceAt(period int) float64 {
	if period <= 0 {
		if len(r.Schedule) == 0 {
			return r.FinalBalance
		}
		first := r.Schedule[0]
		return first.BalanceAfterPeriod + first.PaymentMadeThisPeriod - first.InterestAccruedThisPeriod
	}
	if period <= len(r.Schedule) {
		return r.Schedule[period-1].BalanceAfterPeriod
	}
	return r.FinalBalance
}

// MonthsToPayoff returns the payoff period, or 0 when the loan is never cleared.
func (r ProjectionResult) MonthsToPayoff() int {
	if r.PaidOffAtPeriod == nil {
		return 0
	}
	return *r.PaidOffAtPeriod
}
