package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/ndiayefarms/broodplan/internal/config"
	"github.com/ndiayefarms/broodplan/internal/engine/calculator"
	"github.com/ndiayefarms/broodplan/internal/repository/mongodb"
	"github.com/ndiayefarms/broodplan/internal/repository/sheets"
	"github.com/ndiayefarms/broodplan/internal/scheduler"
	"github.com/ndiayefarms/broodplan/internal/server/handlers"
	"github.com/ndiayefarms/broodplan/internal/server/router"
	planningsvc "github.com/ndiayefarms/broodplan/internal/service/planning"
	reportingsvc "github.com/ndiayefarms/broodplan/internal/service/reporting"
	taskssvc "github.com/ndiayefarms/broodplan/internal/service/tasks"
	whatsappclient "github.com/ndiayefarms/broodplan/pkg/clients/whatsapp"
	"github.com/ndiayefarms/broodplan/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := mongodb.NewStore(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName, baseLogger.Named("repo.mongodb"))
	if err != nil {
		baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	if err := store.SeedDefaultTemplates(context.Background()); err != nil {
		baseLogger.Fatal("failed to seed template catalog", zap.Error(err))
	}

	calc := calculator.New(cfg.Pricing.Apply(calculator.DefaultPricing()))
	planningSvc := planningsvc.NewService(calc, store, baseLogger.Named("svc.planning"))
	tasksSvc := taskssvc.NewService(store, store, store, baseLogger.Named("svc.tasks"))

	var exporter reportingsvc.Exporter
	if cfg.Sheets.Enabled() {
		sheetsExporter, err := sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		exporter = sheetsExporter
		baseLogger.Info("spreadsheet export enabled")
	} else {
		baseLogger.Warn("spreadsheet credentials missing, export disabled")
	}
	reportingSvc := reportingsvc.NewService(exporter, baseLogger.Named("svc.reporting"))

	if cfg.WhatsApp.Enabled() {
		notifier := whatsappclient.NewClient(cfg.WhatsApp)
		sched := scheduler.NewScheduler(cfg.Reminders, store, tasksSvc, reportingSvc, notifier, baseLogger.Named("scheduler"))
		sched.Start()
		defer sched.Stop()
		baseLogger.Info("daily reminders enabled")
	} else {
		baseLogger.Warn("whatsapp token missing, daily reminders disabled")
	}

	planningHandler := handlers.NewPlanningHandler(planningSvc, baseLogger.Named("handlers.planning"))
	tasksHandler := handlers.NewTasksHandler(tasksSvc, baseLogger.Named("handlers.tasks"))
	engine := router.New(planningHandler, tasksHandler, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
