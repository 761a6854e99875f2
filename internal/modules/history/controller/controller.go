package controller

import (
	"net/http"

	"soilpico/internal/modules/history/service"
)

type historyController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type historyControllerImpl struct {
	service   *service.Service
	stationID string
}

func NewHistoryController(svc *service.Service, stationID string) historyController {
	return &historyControllerImpl{service: svc, stationID: stationID}
}

func (c *historyControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /", c.handleDashboard)
	mux.HandleFunc("GET /partials/status", c.handleStatusPartial)
	mux.HandleFunc("GET /api/status", c.handleStatus)
	mux.HandleFunc("GET /api/history", c.handleHistory)
	mux.HandleFunc("GET /api/history.csv", c.handleHistoryCSV)
	mux.HandleFunc("POST /api/history/clear", c.handleClear)
}
