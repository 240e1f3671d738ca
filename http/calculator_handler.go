package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"student-loan-calc/domain"
	"student-loan-calc/service"
)

type CalculatorHandler struct {
	repayment    *service.RepaymentService
	overpayment  *service.OverpaymentService
	salaryGrowth *service.SalaryGrowthService
	totalCost    *service.TotalCostService
	log          logrus.FieldLogger
}

func NewCalculatorHandler(
	repayment *service.RepaymentService,
	overpayment *service.OverpaymentService,
	salaryGrowth *service.SalaryGrowthService,
	totalCost *service.TotalCostService,
	logger logrus.FieldLogger,
) *CalculatorHandler {
	return &CalculatorHandler{
		repayment:    repayment,
		overpayment:  overpayment,
		salaryGrowth: salaryGrowth,
		totalCost:    totalCost,
		log:          logger,
	}
}

func (h *CalculatorHandler) Repayment(w http.ResponseWriter, r *http.Request) {
	var input domain.RepaymentRequest
	if !decodeJSON(w, r, h.log, &input) {
		return
	}

	result, err := h.repayment.Estimate(r.Context(), input)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, result)
}

func (h *CalculatorHandler) Overpayment(w http.ResponseWriter, r *http.Request) {
	var input domain.OverpaymentRequest
	if !decodeJSON(w, r, h.log, &input) {
		return
	}

	result, err := h.overpayment.Compare(input)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, result)
}

func (h *CalculatorHandler) SalaryGrowth(w http.ResponseWriter, r *http.Request) {
	var input domain.SalaryGrowthRequest
	if !decodeJSON(w, r, h.log, &input) {
		return
	}

	result, err := h.salaryGrowth.Project(input)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, result)
}

func (h *CalculatorHandler) TotalCost(w http.ResponseWriter, r *http.Request) {
	var input domain.TotalCostRequest
	if !decodeJSON(w, r, h.log, &input) {
		return
	}

	result, err := h.totalCost.Compare(input)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, result)
}

// Calculation returns a stored repayment estimate by id.
func (h *CalculatorHandler) Calculation(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}

	record, err := h.repayment.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, record)
}
