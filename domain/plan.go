package domain

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidPlanParameter   = errors.New("invalid plan parameter")
	ErrInvalidProjectionInput = errors.New("invalid projection input")
)

// LoanPlan describes the repayment rules of a single loan plan.
type LoanPlan struct {
	ID                        string  `yaml:"id" json:"id"`
	Name                      string  `yaml:"name" json:"name"`
	ThresholdAnnual           float64 `yaml:"threshold_annual" json:"threshold_annual"`
	RepaymentRate             float64 `yaml:"repayment_rate" json:"repayment_rate"`
	WriteOffYears             int     `yaml:"write_off_years" json:"write_off_years"`
	AssumedAnnualInterestRate float64 `yaml:"assumed_annual_interest_rate" json:"assumed_annual_interest_rate"`
}

// Validate checks every field against its allowed domain.
func (p LoanPlan) Validate() error {
	if !finite(p.ThresholdAnnual) || p.ThresholdAnnual < 0 {
		return fmt.Errorf("%w: threshold must be >= 0, got %v", ErrInvalidPlanParameter, p.ThresholdAnnual)
	}
	if !finite(p.RepaymentRate) || p.RepaymentRate <= 0 || p.RepaymentRate > 1 {
		return fmt.Errorf("%w: repayment rate must be in (0, 1], got %v", ErrInvalidPlanParameter, p.RepaymentRate)
	}
	if p.WriteOffYears <= 0 {
		return fmt.Errorf("%w: write-off years must be > 0, got %d", ErrInvalidPlanParameter, p.WriteOffYears)
	}
	if !finite(p.AssumedAnnualInterestRate) || p.AssumedAnnualInterestRate < 0 {
		return fmt.Errorf("%w: interest rate must be >= 0, got %v", ErrInvalidPlanParameter, p.AssumedAnnualInterestRate)
	}
	return nil
}

// WriteOffMonths is the plan term expressed in monthly periods.
func (p LoanPlan) WriteOffMonths() int {
	return p.WriteOffYears * 12
}

// HorizonMonths returns the plan term, intersected with the requested horizon
// when one is given.
func HorizonMonths(plan LoanPlan, requested int) int {
	max := plan.WriteOffMonths()
	if requested > 0 && requested < max {
		return requested
	}
	return max
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
