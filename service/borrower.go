package service

import (
	"errors"
	"fmt"

	"student-loan-calc/domain"
	"student-loan-calc/format"
)

var ErrInvalidRequest = errors.New("invalid request")

// checkProfile applies the service limits. Domain constraints (negative
// balance, negative rate) are left to domain validation.
func checkProfile(p domain.BorrowerProfile) error {
	if p.Balance > MaxLoanBalance {
		return fmt.Errorf("%w: balance exceeds the maximum of %s", ErrInvalidRequest, format.GBP(MaxLoanBalance))
	}
	if p.Salary > MaxSalary {
		return fmt.Errorf("%w: salary exceeds the maximum of %s", ErrInvalidRequest, format.GBP(MaxSalary))
	}
	if p.SalaryGrowth < MinSalaryGrowth || p.SalaryGrowth > MaxSalaryGrowth {
		return fmt.Errorf("%w: salary growth must be between %s and %s", ErrInvalidRequest,
			format.Percent(MinSalaryGrowth), format.Percent(MaxSalaryGrowth))
	}
	if p.InterestRate != nil && *p.InterestRate > MaxInterestRate {
		return fmt.Errorf("%w: interest rate exceeds the maximum of %s", ErrInvalidRequest, format.Percent(MaxInterestRate))
	}
	if p.HorizonYears < 0 || p.HorizonYears > MaxHorizonYears {
		return fmt.Errorf("%w: horizon must be between 0 and %d years", ErrInvalidRequest, MaxHorizonYears)
	}
	return nil
}

// resolvePlan looks the plan up and applies any interest rate override.
func resolvePlan(plans *PlanRegistry, p domain.BorrowerProfile) (domain.LoanPlan, error) {
	plan, err := plans.Get(p.PlanID)
	if err != nil {
		return domain.LoanPlan{}, err
	}
	if p.InterestRate != nil {
		plan.AssumedAnnualInterestRate = *p.InterestRate
	}
	return plan, nil
}

// buildInput maps a borrower onto an engine input for the given plan.
func buildInput(plan domain.LoanPlan, p domain.BorrowerProfile, extraMonthly float64) domain.ProjectionInput {
	return domain.ProjectionInput{
		StartingBalance:     p.Balance,
		IncomeAtPeriod:      domain.SteppedIncome(p.Salary, p.SalaryGrowth),
		Plan:                plan,
		MaxPeriods:          domain.HorizonMonths(plan, p.HorizonYears*12),
		ExtraMonthlyPayment: extraMonthly,
	}
}

// summarize rounds engine output for display.
func summarize(plan domain.LoanPlan, result domain.ProjectionResult) domain.ProjectionSummary {
	first := 0.0
	if len(result.Schedule) > 0 {
		first = result.Schedule[0].PaymentMadeThisPeriod
	}
	s := domain.ProjectionSummary{
		PlanID:                plan.ID,
		PlanName:              plan.Name,
		FirstMonthlyRepayment: format.RoundMoney(first),
		TotalRepaid:           format.RoundMoney(result.TotalRepaid),
		TotalInterest:         format.RoundMoney(result.TotalInterestAccrued),
		FinalBalance:          format.RoundMoney(result.FinalBalance),
		WrittenOff:            format.RoundMoney(result.WrittenOff()),
		Months:                len(result.Schedule),
		State:                 result.State(),
	}
	if result.PaidOff() {
		s.PaidOffAtMonth = result.MonthsToPayoff()
		s.PaidOffYears = format.Years(s.PaidOffAtMonth)
	}
	s.Display = domain.DisplaySummary{
		FirstMonthlyRepayment: format.GBP(first),
		TotalRepaid:           format.GBP(result.TotalRepaid),
		TotalInterest:         format.GBP(result.TotalInterestAccrued),
		WrittenOff:            format.GBP(result.WrittenOff()),
		InterestRate:          format.Percent(plan.AssumedAnnualInterestRate),
	}
	return s
}

func roundRows(rows []domain.YearRow) []domain.YearRow {
	for i := range rows {
		rows[i].AnnualIncome = format.RoundMoney(rows[i].AnnualIncome)
		rows[i].Interest = format.RoundMoney(rows[i].Interest)
		rows[i].Repaid = format.RoundMoney(rows[i].Repaid)
		rows[i].ClosingBalance = format.RoundMoney(rows[i].ClosingBalance)
	}
	return rows
}
