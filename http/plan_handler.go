package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"student-loan-calc/service"
)

type PlanHandler struct {
	plans *service.PlanRegistry
	log   logrus.FieldLogger
}

func NewPlanHandler(plans *service.PlanRegistry, logger logrus.FieldLogger) *PlanHandler {
	return &PlanHandler{plans: plans, log: logger}
}

func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}
	writeJSON(w, h.log, h.plans.List())
}

func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}

	plan, err := h.plans.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, plan)
}
