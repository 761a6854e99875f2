package httpapi

import (
	"net/http"

	"soilpico/internal/modules/history/service"
)

func NewMux(svc *service.Service) *http.ServeMux {
	mux := http.NewServeMux()
	registerHealthcheck(mux, svc)
	return mux
}
