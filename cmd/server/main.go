package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/baletrack/bizpulse/internal/config"
	"github.com/baletrack/bizpulse/internal/repository/mongodb"
	"github.com/baletrack/bizpulse/internal/repository/sheets"
	"github.com/baletrack/bizpulse/internal/scheduler"
	"github.com/baletrack/bizpulse/internal/server/handlers"
	"github.com/baletrack/bizpulse/internal/server/router"
	"github.com/baletrack/bizpulse/internal/service/digest"
	"github.com/baletrack/bizpulse/internal/service/export"
	"github.com/baletrack/bizpulse/internal/service/stats"
	"github.com/baletrack/bizpulse/pkg/clients/notify"
	"github.com/baletrack/bizpulse/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName, baseLogger.Named("repo.mongodb"))
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	statsSvc := stats.NewService(mongoRepo, baseLogger.Named("svc.stats"))
	exporter := export.NewExporter(baseLogger.Named("svc.export"))

	var notifier digest.Notifier
	if cfg.Digest.WebhookURL != "" {
		notifier = notify.NewClient(cfg.Digest.WebhookURL)
		baseLogger.Info("digest webhook notifier enabled")
	} else {
		baseLogger.Warn("digest webhook url missing, monthly digest delivery disabled")
	}

	var mirror digest.Mirror
	if cfg.Sheets.SpreadsheetID != "" {
		sheetMirror, err := sheets.NewGoogleSheetMirror(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets mirror", zap.Error(err))
		}
		mirror = sheetMirror
	}

	digestSvc := digest.NewService(mongoRepo, statsSvc, notifier, mirror, baseLogger.Named("svc.digest"))

	engine := router.New(router.Handlers{
		Bales:    handlers.NewBalesHandler(mongoRepo, statsSvc, baseLogger.Named("handlers.bales")),
		Expenses: handlers.NewExpensesHandler(mongoRepo, statsSvc, baseLogger.Named("handlers.expenses")),
		Savings:  handlers.NewSavingsHandler(mongoRepo, statsSvc, exporter, baseLogger.Named("handlers.savings")),
		Reports:  handlers.NewReportsHandler(statsSvc, exporter, baseLogger.Named("handlers.reports")),
	}, cfg.Auth.JWTSecret, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Digest, digestSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

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
