package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/parisxmas/sitesurvey/internal/chart"
	"github.com/parisxmas/sitesurvey/internal/service"
)

type DashboardHandler struct {
	sumSvc *service.SummaryService
	log    *zap.Logger
}

func NewDashboardHandler(sumSvc *service.SummaryService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{sumSvc: sumSvc, log: log}
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.sumSvc.Dashboard(r.Context()))
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.sumSvc.Summarize(r.Context(), r.URL.Query().Get("field"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	labels := chart.LabelsFor(s.Column)
	writeJSON(w, http.StatusOK, map[string]any{
		"summary": s,
		"title":   labels.Title,
		"xLabel":  labels.XLabel,
		"yLabel":  labels.YLabel,
	})
}

// Chart serves the grouped counts as a PNG bar chart.
func (h *DashboardHandler) Chart(w http.ResponseWriter, r *http.Request) {
	s, err := h.sumSvc.Summarize(r.Context(), r.URL.Query().Get("field"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	png, err := chart.PNG(s)
	if errors.Is(err, chart.ErrNoData) {
		writeError(w, http.StatusNotFound, msgNoData)
		return
	}
	if err != nil {
		h.log.Error("render chart", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
