package service

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"student-loan-calc/domain"
	"student-loan-calc/format"
)

type OverpaymentService struct {
	plans   *PlanRegistry
	metrics *Metrics
	log     logrus.FieldLogger
}

func NewOverpaymentService(plans *PlanRegistry, metrics *Metrics, logger logrus.FieldLogger) *OverpaymentService {
	return &OverpaymentService{
		plans:   plans,
		metrics: metrics,
		log:     logger.WithField("calculator", CalculatorOverpayment),
	}
}

// Compare runs the borrower with and without voluntary payments. The lump sum
// is paid on day one and counts towards the total cost.
func (s *OverpaymentService) Compare(req domain.OverpaymentRequest) (domain.OverpaymentResult, error) {
	if err := checkProfile(req.BorrowerProfile); err != nil {
		return domain.OverpaymentResult{}, err
	}
	if req.MonthlyOverpayment < 0 || req.LumpSum < 0 {
		return domain.OverpaymentResult{}, fmt.Errorf("%w: overpayments cannot be negative", ErrInvalidRequest)
	}
	if req.MonthlyOverpayment > MaxOverpayment {
		return domain.OverpaymentResult{}, fmt.Errorf("%w: monthly overpayment exceeds the maximum of %s",
			ErrInvalidRequest, format.GBP(MaxOverpayment))
	}
	if req.MonthlyOverpayment == 0 && req.LumpSum == 0 {
		return domain.OverpaymentResult{}, fmt.Errorf("%w: a monthly overpayment or lump sum is required", ErrInvalidRequest)
	}
	if req.LumpSum > req.Balance {
		return domain.OverpaymentResult{}, fmt.Errorf("%w: lump sum exceeds the balance", ErrInvalidRequest)
	}

	plan, err := resolvePlan(s.plans, req.BorrowerProfile)
	if err != nil {
		return domain.OverpaymentResult{}, err
	}

	started := time.Now()
	baseline, err := ProjectChecked(buildInput(plan, req.BorrowerProfile, 0))
	if err != nil {
		return domain.OverpaymentResult{}, err
	}

	reduced := req.BorrowerProfile
	reduced.Balance -= req.LumpSum
	overpaid, err := ProjectChecked(buildInput(plan, reduced, req.MonthlyOverpayment))
	if err != nil {
		return domain.OverpaymentResult{}, err
	}
	s.metrics.observe(CalculatorOverpayment, 2, started)

	baselineCost := baseline.TotalRepaid
	overpaidCost := overpaid.TotalRepaid + req.LumpSum
	difference := baselineCost - overpaidCost

	result := domain.OverpaymentResult{
		Baseline:            summarize(plan, baseline),
		WithOverpayment:     summarize(plan, overpaid),
		InterestSaved:       format.RoundMoney(baseline.TotalInterestAccrued - overpaid.TotalInterestAccrued),
		MonthsSaved:         len(baseline.Schedule) - len(overpaid.Schedule),
		TotalCostDifference: format.RoundMoney(difference),
		Worthwhile:          format.RoundMoney(difference) > 0,
	}
	result.Verdict = overpaymentVerdict(baseline, overpaid, difference)

	s.log.WithFields(logrus.Fields{
		"plan":       plan.ID,
		"difference": result.TotalCostDifference,
	}).Debug("overpayment compared")

	return result, nil
}

func overpaymentVerdict(baseline, overpaid domain.ProjectionResult, difference float64) string {
	switch {
	case format.RoundMoney(difference) > 0:
		return fmt.Sprintf("Overpaying saves %s over the life of the loan.", format.GBP(difference))
	case !baseline.PaidOff() && !overpaid.PaidOff():
		return fmt.Sprintf("The loan is written off either way; overpaying adds %s to what you pay.", format.GBP(-difference))
	case !baseline.PaidOff():
		return fmt.Sprintf("Without overpaying the balance would be written off; overpaying costs %s more in total.", format.GBP(-difference))
	default:
		return "Overpaying makes no difference to the total you repay."
	}
}
