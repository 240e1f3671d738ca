package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student-loan-calc/domain"
	"student-loan-calc/repository"
	"student-loan-calc/service"
)

func newTestRouter(t *testing.T, limiter *RateLimiter) http.Handler {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	plans, err := service.LoadPlanRegistry("")
	require.NoError(t, err)
	repayment := service.NewRepaymentService(
		plans,
		repository.NewCalculationRepositoryMemory(100),
		repository.NewMemoryCache(time.Minute, 100),
		service.NewExplanationService("", "", logger),
		nil,
		logger,
	)
	calculators := NewCalculatorHandler(
		repayment,
		service.NewOverpaymentService(plans, nil, logger),
		service.NewSalaryGrowthService(plans, nil, logger),
		service.NewTotalCostService(plans, nil, logger),
		logger,
	)

	return NewRouter(RouterDeps{
		Calculators: calculators,
		Plans:       NewPlanHandler(plans, logger),
		RateLimiter: limiter,
		Logger:      logger,
	})
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRepaymentHandler_OK(t *testing.T) {
	router := newTestRouter(t, nil)

	w := postJSON(t, router, "/calculators/repayment", `{
		"plan": "plan2",
		"balance": 45000,
		"salary": 30000,
		"salary_growth": 0.03,
		"include_schedule": true
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var result domain.RepaymentResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, domain.StateWrittenOff, result.Summary.State)
	assert.Len(t, result.Yearly, 30)

	get := httptest.NewRequest(http.MethodGet, "/calculations/"+result.ID, nil)
	gw := httptest.NewRecorder()
	router.ServeHTTP(gw, get)
	require.Equal(t, http.StatusOK, gw.Code)

	var record domain.CalculationRecord
	require.NoError(t, json.Unmarshal(gw.Body.Bytes(), &record))
	assert.Equal(t, result.ID, record.ID)
	assert.Equal(t, "plan2", record.Request.PlanID)
}

func TestRepaymentHandler_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/calculators/repayment", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRepaymentHandler_UnsupportedMediaType(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/calculators/repayment", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestRepaymentHandler_BadRequest(t *testing.T) {
	router := newTestRouter(t, nil)

	w := postJSON(t, router, "/calculators/repayment", `{invalid-json}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRepaymentHandler_UnknownFieldRejected(t *testing.T) {
	router := newTestRouter(t, nil)

	w := postJSON(t, router, "/calculators/repayment", `{"plan":"plan2","balance":45000,"salary":30000,"salary_grwth":0.05}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRepaymentHandler_ValidationErrors(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{name: "negative balance", body: `{"plan":"plan2","balance":-1,"salary":30000}`, status: http.StatusBadRequest},
		{name: "negative interest", body: `{"plan":"plan2","balance":1,"salary":30000,"interest_rate":-0.1}`, status: http.StatusBadRequest},
		{name: "unknown plan", body: `{"plan":"plan9","balance":1000,"salary":30000}`, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, router, "/calculators/repayment", tt.body)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestOverpaymentHandler_OK(t *testing.T) {
	router := newTestRouter(t, nil)

	w := postJSON(t, router, "/calculators/overpayment", `{
		"plan": "plan2", "balance": 20000, "salary": 100000, "monthly_overpayment": 200
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	var result domain.OverpaymentResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Worthwhile)
}

func TestSalaryGrowthHandler_OK(t *testing.T) {
	router := newTestRouter(t, nil)

	w := postJSON(t, router, "/calculators/salary-growth", `{
		"plan": "plan5", "balance": 40000, "salary": 30000,
		"min_growth": 0.01, "max_growth": 0.05, "step": 0.01
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	var result domain.SalaryGrowthResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Len(t, result.Scenarios, 5)
}

func TestTotalCostHandler_OK(t *testing.T) {
	router := newTestRouter(t, nil)

	w := postJSON(t, router, "/calculators/total-cost", `{"balance": 40000, "salary": 35000, "plans": ["plan2", "plan5"]}`)

	require.Equal(t, http.StatusOK, w.Code)
	var result domain.TotalCostResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Len(t, result.Plans, 2)
	assert.NotEmpty(t, result.Cheapest)
}

func TestPlanHandlers(t *testing.T) {
	router := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plans", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var plans []domain.LoanPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plans))
	assert.Len(t, plans, 5)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plans/plan3", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var plan domain.LoanPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))
	assert.Equal(t, "postgraduate", plan.ID)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plans/plan9", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCalculationHandler_NotFound(t *testing.T) {
	router := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/calculations/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCalculators_RateLimited(t *testing.T) {
	limiter := newRateLimiter(1, time.Minute, time.Now)
	router := newTestRouter(t, limiter)
	body := `{"plan":"plan2","balance":1000,"salary":30000}`

	first := postJSON(t, router, "/calculators/repayment", body)
	second := postJSON(t, router, "/calculators/repayment", body)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))

	// Plan lookups are not limited.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plans", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
