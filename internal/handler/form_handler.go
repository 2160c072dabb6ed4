package handler

import (
	"net/http"

	"github.com/parisxmas/sitesurvey/internal/service"
)

type FormHandler struct {
	svc *service.FormService
}

func NewFormHandler(svc *service.FormService) *FormHandler {
	return &FormHandler{svc: svc}
}

// Get returns the survey definition: field names, labels, option sets, ranges.
func (h *FormHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Form())
}
