package service

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"student-loan-calc/domain"
)

type TotalCostService struct {
	plans   *PlanRegistry
	metrics *Metrics
	log     logrus.FieldLogger
}

func NewTotalCostService(plans *PlanRegistry, metrics *Metrics, logger logrus.FieldLogger) *TotalCostService {
	return &TotalCostService{
		plans:   plans,
		metrics: metrics,
		log:     logger.WithField("calculator", CalculatorTotalCost),
	}
}

// Compare runs the same borrower on each requested plan (all plans when none
// are given) and ranks them by total repaid, cheapest first.
func (s *TotalCostService) Compare(req domain.TotalCostRequest) (domain.TotalCostResult, error) {
	if err := checkProfile(req.BorrowerProfile); err != nil {
		return domain.TotalCostResult{}, err
	}

	ids := req.Plans
	if len(ids) == 0 {
		for _, p := range s.plans.List() {
			ids = append(ids, p.ID)
		}
	}

	started := time.Now()
	seen := make(map[string]bool, len(ids))
	costs := make([]domain.PlanCost, 0, len(ids))
	for _, id := range ids {
		profile := req.BorrowerProfile
		profile.PlanID = id
		plan, err := resolvePlan(s.plans, profile)
		if err != nil {
			return domain.TotalCostResult{}, err
		}
		if seen[plan.ID] {
			continue
		}
		seen[plan.ID] = true

		projection, err := ProjectChecked(buildInput(plan, profile, 0))
		if err != nil {
			return domain.TotalCostResult{}, err
		}
		costs = append(costs, domain.PlanCost{
			PlanID:  plan.ID,
			Summary: summarize(plan, projection),
		})
	}
	s.metrics.observe(CalculatorTotalCost, len(costs), started)

	sort.SliceStable(costs, func(i, j int) bool {
		if costs[i].Summary.TotalRepaid != costs[j].Summary.TotalRepaid {
			return costs[i].Summary.TotalRepaid < costs[j].Summary.TotalRepaid
		}
		return costs[i].PlanID < costs[j].PlanID
	})

	s.log.WithField("plans", len(costs)).Debug("total cost compared")

	return domain.TotalCostResult{
		Plans:    costs,
		Cheapest: costs[0].PlanID,
	}, nil
}
