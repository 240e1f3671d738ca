package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"

	"student-loan-calc/domain"
	"student-loan-calc/repository"
)

type RepaymentService struct {
	plans     *PlanRegistry
	repo      repository.CalculationRepository
	cache     repository.CacheRepository
	explainer *ExplanationService
	metrics   *Metrics
	log       logrus.FieldLogger
}

// NewRepaymentService wires the estimator. explainer and metrics may be nil.
func NewRepaymentService(
	plans *PlanRegistry,
	repo repository.CalculationRepository,
	cache repository.CacheRepository,
	explainer *ExplanationService,
	metrics *Metrics,
	logger logrus.FieldLogger,
) *RepaymentService {
	return &RepaymentService{
		plans:     plans,
		repo:      repo,
		cache:     cache,
		explainer: explainer,
		metrics:   metrics,
		log:       logger.WithField("calculator", CalculatorRepayment),
	}
}

// Estimate projects a single borrower on their plan. Identical requests are
// served from cache; every estimate is recorded.
func (s *RepaymentService) Estimate(
	ctx context.Context,
	req domain.RepaymentRequest,
) (domain.RepaymentResult, error) {

	if err := checkProfile(req.BorrowerProfile); err != nil {
		return domain.RepaymentResult{}, err
	}
	plan, err := resolvePlan(s.plans, req.BorrowerProfile)
	if err != nil {
		return domain.RepaymentResult{}, err
	}
	input := buildInput(plan, req.BorrowerProfile, 0)
	if err := input.Validate(); err != nil {
		return domain.RepaymentResult{}, err
	}

	key := estimateCacheKey(plan, req)
	result, hit := s.fromCache(ctx, key)
	if hit {
		s.metrics.cacheHit()
	} else {
		started := time.Now()
		projection := Project(input)
		s.metrics.observe(CalculatorRepayment, 1, started)

		result = domain.RepaymentResult{Summary: summarize(plan, projection)}
		if req.IncludeSchedule {
			result.Yearly = roundRows(YearlyRows(projection))
		}
		if req.Explain && s.explainer != nil {
			result.Explanation = s.explainer.ExplainEstimate(ctx, result.Summary)
		}
		s.toCache(ctx, key, result)
	}
	result.Cached = hit

	// Recording is not critical; the estimate is still returned.
	id, err := s.repo.Save(ctx, domain.CalculationRecord{Request: req, Result: result})
	if err != nil {
		s.log.WithError(err).Warn("failed to save calculation")
	} else {
		result.ID = id
	}

	return result, nil
}

// Get returns a previously recorded estimate.
func (s *RepaymentService) Get(ctx context.Context, id string) (domain.CalculationRecord, error) {
	return s.repo.Get(ctx, id)
}

func (s *RepaymentService) fromCache(ctx context.Context, key string) (domain.RepaymentResult, bool) {
	if s.cache == nil {
		return domain.RepaymentResult{}, false
	}
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return domain.RepaymentResult{}, false
	}
	var result domain.RepaymentResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("discarding unreadable cache entry")
		return domain.RepaymentResult{}, false
	}
	return result, true
}

func (s *RepaymentService) toCache(ctx context.Context, key string, result domain.RepaymentResult) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		s.log.WithError(err).Warn("failed to encode result for cache")
		return
	}
	if err := s.cache.Set(ctx, key, string(data)); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("failed to cache result")
	}
}

// estimateCacheKey hashes the resolved plan with the request, so a changed
// plan table never serves stale figures.
func estimateCacheKey(plan domain.LoanPlan, req domain.RepaymentRequest) string {
	payload, _ := json.Marshal(struct {
		Plan    domain.LoanPlan         `json:"plan"`
		Request domain.RepaymentRequest `json:"request"`
	}{plan, req})
	return fmt.Sprintf("%s:%016x", CalculatorRepayment, xxhash.Sum64(payload))
}
