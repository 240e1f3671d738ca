package service

import (
	"math"

	"student-loan-calc/domain"
)

// Project simulates the loan month by month. Interest accrues before the
// payment is taken. The input must already be valid; use ProjectChecked at
// untrusted boundaries.
func Project(input domain.ProjectionInput) domain.ProjectionResult {
	result := domain.ProjectionResult{MaxPeriods: input.MaxPeriods}

	// Nothing owed: paid off before the first period.
	if input.StartingBalance <= 0 {
		paidOff := 0
		result.PaidOffAtPeriod = &paidOff
		return result
	}

	plan := input.Plan
	monthlyRate := plan.AssumedAnnualInterestRate / 12
	balance := input.StartingBalance
	result.Schedule = make([]domain.PeriodRecord, 0, input.MaxPeriods)

	for p := 1; p <= input.MaxPeriods && balance > 0; p++ {
		income := input.IncomeAtPeriod(p)
		requiredAnnual := math.Max(0, income-plan.ThresholdAnnual) * plan.RepaymentRate
		requiredMonthly := requiredAnnual / 12

		interest := balance * monthlyRate
		balance += interest
		result.TotalInterestAccrued += interest

		payment := math.Min(balance, requiredMonthly+input.ExtraMonthlyPayment)
		balance -= payment
		result.TotalRepaid += payment

		paidOff := balance <= BalanceTolerance
		if paidOff {
			balance = 0
		}

		result.Schedule = append(result.Schedule, domain.PeriodRecord{
			PeriodIndex:               p,
			AnnualIncomeForPeriod:     income,
			InterestAccruedThisPeriod: interest,
			PaymentMadeThisPeriod:     payment,
			BalanceAfterPeriod:        balance,
		})

		if paidOff {
			period := p
			result.PaidOffAtPeriod = &period
			break
		}
	}

	result.FinalBalance = balance
	return result
}

// ProjectChecked validates the input and runs the projection.
func ProjectChecked(input domain.ProjectionInput) (domain.ProjectionResult, error) {
	if err := input.Validate(); err != nil {
		return domain.ProjectionResult{}, err
	}
	return Project(input), nil
}

// YearlyRows folds the monthly schedule into one row per year.
func YearlyRows(result domain.ProjectionResult) []domain.YearRow {
	rows := []domain.YearRow{}
	for _, rec := range result.Schedule {
		year := (rec.PeriodIndex-1)/12 + 1
		if len(rows) == 0 || rows[len(rows)-1].Year != year {
			rows = append(rows, domain.YearRow{Year: year, AnnualIncome: rec.AnnualIncomeForPeriod})
		}
		row := &rows[len(rows)-1]
		row.Interest += rec.InterestAccruedThisPeriod
		row.Repaid += rec.PaymentMadeThisPeriod
		row.ClosingBalance = result.BalanceAt(rec.PeriodIndex)
	}
	return rows
}
