package httpapi

import (
	"net/http"

	"soilpico/internal/modules/history/service"
	"soilpico/internal/utils"
)

type healthchecker interface {
	handleHealthz(w http.ResponseWriter, r *http.Request)
}

type healthcheckerImpl struct {
	svc *service.Service
}

func NewHealthchecker(svc *service.Service) healthchecker {
	return &healthcheckerImpl{svc: svc}
}

func (h *healthcheckerImpl) handleHealthz(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"readings": h.svc.Len(),
	})
}

func registerHealthcheck(mux *http.ServeMux, svc *service.Service) {
	healthchecker := NewHealthchecker(svc)
	mux.HandleFunc("GET /healthz", healthchecker.handleHealthz)
}
