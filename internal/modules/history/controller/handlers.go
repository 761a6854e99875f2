package controller

import (
	"bytes"
	"log/slog"
	"net/http"

	"soilpico/internal/modules/history/views"
	"soilpico/internal/utils"
)

func (c *historyControllerImpl) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data := c.dashboardData()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.RenderDashboard(w, data); err != nil {
		slog.Error("dashboard template render failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
}

func (c *historyControllerImpl) handleStatusPartial(w http.ResponseWriter, r *http.Request) {
	data := c.dashboardData()
	var buf bytes.Buffer
	if err := views.RenderStatusPartial(&buf, data); err != nil {
		slog.Error("status partial render failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("status partial: write response failed", "error", err)
	}
}

func (c *historyControllerImpl) handleStatus(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, c.service.CurrentSnapshot())
}

func (c *historyControllerImpl) handleHistory(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, c.service.FullHistory())
}

func (c *historyControllerImpl) handleHistoryCSV(w http.ResponseWriter, r *http.Request) {
	out, err := c.service.HistoryCSV()
	if err != nil {
		slog.Error("history csv render failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render csv")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="history.csv"`)
	if _, err := w.Write([]byte(out)); err != nil {
		slog.Error("history csv: write response failed", "error", err)
	}
}

func (c *historyControllerImpl) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := c.service.ClearHistory(); err != nil {
		slog.Error("clear history failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to clear history")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
