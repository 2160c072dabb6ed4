package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/parisxmas/sitesurvey/internal/config"
	"github.com/parisxmas/sitesurvey/internal/handler"
	"github.com/parisxmas/sitesurvey/internal/repository"
	"github.com/parisxmas/sitesurvey/internal/router"
	"github.com/parisxmas/sitesurvey/internal/service"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the survey web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, logger)
	},
}

func newServer(cfg *config.Config, log *zap.Logger) (*http.Server, *repository.SheetRepo) {
	// Repositories
	store := repository.NewSheetRepo(cfg.Store.Path, log)

	// Services
	formSvc := service.NewFormService()
	subSvc := service.NewSubmissionService(store, log)
	sumSvc := service.NewSummaryService(store)

	// Handlers
	pageH := handler.NewPageHandler(store, formSvc, subSvc, sumSvc, log)
	formH := handler.NewFormHandler(formSvc)
	subH := handler.NewSubmissionHandler(subSvc, formSvc, log)
	dashH := handler.NewDashboardHandler(sumSvc, log)

	r := router.New(log, pageH, formH, subH, dashH)

	return &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout(),
		WriteTimeout: cfg.Server.WriteTimeout(),
	}, store
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	srv, store := newServer(cfg, log)
	if err := store.EnsureExists(ctx); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("sitesurvey server starting", zap.String("addr", cfg.Server.Addr), zap.String("store", store.Path()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
