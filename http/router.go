package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type RouterDeps struct {
	Calculators    *CalculatorHandler
	Plans          *PlanHandler
	RateLimiter    *RateLimiter // nil disables rate limiting
	MetricsHandler http.Handler
	Logger         logrus.FieldLogger
}

// NewRouter mounts every endpoint. Calculator routes are rate limited;
// health, metrics and plan lookups are not.
func NewRouter(deps RouterDeps) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware(deps.Logger))

	r.HandleFunc("/health", Health).Methods(http.MethodGet)
	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler).Methods(http.MethodGet)
	}
	r.HandleFunc("/plans", deps.Plans.List).Methods(http.MethodGet)
	r.HandleFunc("/plans/{id}", deps.Plans.Get).Methods(http.MethodGet)

	calc := r.PathPrefix("/calculators").Subrouter()
	if deps.RateLimiter != nil {
		calc.Use(RateLimitMiddleware(deps.RateLimiter))
	}
	calc.HandleFunc("/repayment", deps.Calculators.Repayment)
	calc.HandleFunc("/overpayment", deps.Calculators.Overpayment)
	calc.HandleFunc("/salary-growth", deps.Calculators.SalaryGrowth)
	calc.HandleFunc("/total-cost", deps.Calculators.TotalCost)

	r.HandleFunc("/calculations/{id}", deps.Calculators.Calculation).Methods(http.MethodGet)

	return r
}
