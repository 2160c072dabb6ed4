package handler

import (
	"context"
	"embed"
	"encoding/base64"
	"errors"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/parisxmas/sitesurvey/internal/chart"
	"github.com/parisxmas/sitesurvey/internal/models"
	"github.com/parisxmas/sitesurvey/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

const msgNoData = "No data yet."

// StoreInitializer creates the backing store when it is missing.
type StoreInitializer interface {
	EnsureExists(ctx context.Context) error
}

// PageHandler serves the survey page. Every request runs the same cycle:
// ensure the store, build the form, apply a submission if there is one, then
// reload the store for the chart.
type PageHandler struct {
	store   StoreInitializer
	formSvc *service.FormService
	subSvc  *service.SubmissionService
	sumSvc  *service.SummaryService
	log     *zap.Logger
}

func NewPageHandler(store StoreInitializer, formSvc *service.FormService, subSvc *service.SubmissionService, sumSvc *service.SummaryService, log *zap.Logger) *PageHandler {
	return &PageHandler{store: store, formSvc: formSvc, subSvc: subSvc, sumSvc: sumSvc, log: log}
}

type fieldView struct {
	Def      models.FieldDefinition
	Value    string
	Min, Max int
}

type sectionView struct {
	Title  string
	Fields []fieldView
}

type pageView struct {
	Title       string
	Description string
	Sections    []sectionView
	Message     string
	MessageKind string // success, error, info
	ChartTitle  string
	XLabel      string
	YLabel      string
	ChartData   template.URL
	Counts      []models.Count
	NoData      string
}

func (h *PageHandler) Show(w http.ResponseWriter, r *http.Request) {
	if err := h.store.EnsureExists(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, h.formSvc.Defaults(), "", "")
}

func (h *PageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.store.EnsureExists(ctx); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, h.formSvc.Defaults(), "error", "invalid form submission")
		return
	}

	rec := h.formSvc.Candidate(r.PostForm)
	err := h.subSvc.Submit(ctx, rec)
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		h.render(w, r, http.StatusUnprocessableEntity, rec, "error", service.RejectionMessage(verr))
	case err != nil:
		h.fail(w, r, err)
	default:
		h.render(w, r, http.StatusOK, h.formSvc.Defaults(), "success", service.MsgSubmitted)
	}
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, values models.Record, kind, msg string) {
	form := h.formSvc.Form()
	view := pageView{
		Title:       form.Title,
		Description: form.Description,
		Sections:    sections(form.Fields, values),
		Message:     msg,
		MessageKind: kind,
	}

	summary, err := h.sumSvc.Summarize(r.Context(), models.ColMaterialQuality)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	labels := chart.LabelsFor(summary.Column)
	view.ChartTitle = labels.Title
	view.XLabel = labels.XLabel
	view.YLabel = labels.YLabel

	if summary.Empty {
		view.NoData = msgNoData
	} else {
		png, err := chart.PNG(summary)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		view.ChartData = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
		view.Counts = summary.Counts
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, view); err != nil {
		h.log.Error("render page", zap.Error(err))
	}
}

// fail reports an unrecovered error, e.g. a failed store write.
func (h *PageHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error("page request failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, "Internal Server Error: "+err.Error(), http.StatusInternalServerError)
}

func sections(fields []models.FieldDefinition, values models.Record) []sectionView {
	var out []sectionView
	for _, f := range fields {
		fv := fieldView{Def: f, Value: values.Value(f.Column)}
		if f.Min != nil {
			fv.Min = *f.Min
		}
		if f.Max != nil {
			fv.Max = *f.Max
		}
		if len(out) == 0 || out[len(out)-1].Title != f.Section {
			out = append(out, sectionView{Title: f.Section})
		}
		last := &out[len(out)-1]
		last.Fields = append(last.Fields, fv)
	}
	return out
}
