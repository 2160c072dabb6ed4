package router

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/parisxmas/sitesurvey/internal/handler"
	mw "github.com/parisxmas/sitesurvey/internal/middleware"
)

func New(
	log *zap.Logger,
	pageH *handler.PageHandler,
	formH *handler.FormHandler,
	subH *handler.SubmissionHandler,
	dashH *handler.DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.Logger(log))
	r.Use(mw.Recovery(log))

	// Survey page
	r.Get("/", pageH.Show)
	r.Post("/", pageH.Submit)
	r.Get("/chart.png", dashH.Chart)
	r.Get("/healthz", handler.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/form", formH.Get)

		r.Get("/submissions", subH.List)
		r.Post("/submissions", subH.Create)

		r.Get("/summary", dashH.Summary)
		r.Get("/dashboard", dashH.Dashboard)
	})

	return r
}
