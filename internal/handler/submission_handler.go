package handler

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/parisxmas/sitesurvey/internal/models"
	"github.com/parisxmas/sitesurvey/internal/service"
)

const (
	defaultPageSize = 20
	maxPageSize     = 500
)

type SubmissionHandler struct {
	subSvc  *service.SubmissionService
	formSvc *service.FormService
	log     *zap.Logger
}

func NewSubmissionHandler(subSvc *service.SubmissionService, formSvc *service.FormService, log *zap.Logger) *SubmissionHandler {
	return &SubmissionHandler{subSvc: subSvc, formSvc: formSvc, log: log}
}

func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	subs, total := h.subSvc.List(r.Context(), skip, limit)
	writeJSON(w, http.StatusOK, map[string]any{
		"submissions": subs,
		"total":       total,
		"skip":        skip,
		"limit":       limit,
	})
}

func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.Record
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rec := h.formSvc.Normalize(req)

	err := h.subSvc.Submit(r.Context(), rec)
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   service.RejectionMessage(verr),
			"fields":  verr.Fields,
			"invalid": verr.Invalid,
		})
	case err != nil:
		h.log.Error("submission failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusCreated, map[string]any{
			"message":    service.MsgSubmitted,
			"submission": rec,
		})
	}
}
