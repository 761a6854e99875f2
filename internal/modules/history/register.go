package history

import (
	"net/http"

	"soilpico/internal/modules/history/controller"
	"soilpico/internal/modules/history/service"
)

func RegisterFeature(mux *http.ServeMux, svc *service.Service, stationID string) {
	historyController := controller.NewHistoryController(svc, stationID)
	historyController.RegisterRoutes(mux)
}
