package service

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"student-loan-calc/domain"
	"student-loan-calc/format"
)

type SalaryGrowthService struct {
	plans   *PlanRegistry
	metrics *Metrics
	log     logrus.FieldLogger
}

func NewSalaryGrowthService(plans *PlanRegistry, metrics *Metrics, logger logrus.FieldLogger) *SalaryGrowthService {
	return &SalaryGrowthService{
		plans:   plans,
		metrics: metrics,
		log:     logger.WithField("calculator", CalculatorSalaryGrowth),
	}
}

// Project runs the borrower once per growth rate in [MinGrowth, MaxGrowth].
// An all-zero range selects the default 0%..6% in 1% steps.
func (s *SalaryGrowthService) Project(req domain.SalaryGrowthRequest) (domain.SalaryGrowthResult, error) {
	if req.MinGrowth == 0 && req.MaxGrowth == 0 && req.Step == 0 {
		req.MinGrowth, req.MaxGrowth, req.Step = DefaultGrowthMin, DefaultGrowthMax, DefaultStep
	}
	rates, err := growthRates(req.MinGrowth, req.MaxGrowth, req.Step)
	if err != nil {
		return domain.SalaryGrowthResult{}, err
	}

	profile := req.BorrowerProfile
	profile.SalaryGrowth = 0
	if err := checkProfile(profile); err != nil {
		return domain.SalaryGrowthResult{}, err
	}
	plan, err := resolvePlan(s.plans, profile)
	if err != nil {
		return domain.SalaryGrowthResult{}, err
	}

	started := time.Now()
	result := domain.SalaryGrowthResult{Scenarios: make([]domain.GrowthScenario, 0, len(rates))}
	for _, rate := range rates {
		profile.SalaryGrowth = rate
		projection, err := ProjectChecked(buildInput(plan, profile, 0))
		if err != nil {
			return domain.SalaryGrowthResult{}, err
		}
		result.Scenarios = append(result.Scenarios, domain.GrowthScenario{
			Growth:  rate,
			Summary: summarize(plan, projection),
		})
		if projection.PaidOff() && result.PayoffGrowth == nil {
			g := rate
			result.PayoffGrowth = &g
		}
	}
	s.metrics.observe(CalculatorSalaryGrowth, len(rates), started)

	s.log.WithFields(logrus.Fields{
		"plan":      plan.ID,
		"scenarios": len(rates),
	}).Debug("salary growth projected")

	return result, nil
}

// growthRates expands the range into ascending rates, rounded to avoid
// accumulating float drift.
func growthRates(min, max, step float64) ([]float64, error) {
	if min < MinSalaryGrowth || max > MaxSalaryGrowth {
		return nil, fmt.Errorf("%w: growth range must lie within %s and %s", ErrInvalidRequest,
			format.Percent(MinSalaryGrowth), format.Percent(MaxSalaryGrowth))
	}
	if min > max {
		return nil, fmt.Errorf("%w: min growth is greater than max growth", ErrInvalidRequest)
	}
	if step < MinGrowthStep {
		return nil, fmt.Errorf("%w: step must be at least %s", ErrInvalidRequest, format.Percent(MinGrowthStep))
	}

	count := int(math.Floor((max-min)/step+1e-9)) + 1
	if count > MaxGrowthSteps {
		return nil, fmt.Errorf("%w: range produces %d scenarios, maximum is %d", ErrInvalidRequest, count, MaxGrowthSteps)
	}

	rates := make([]float64, count)
	for i := range rates {
		rates[i] = format.RoundRate(min + float64(i)*step)
	}
	return rates, nil
}
