package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"invex/internal/classifier"
	"invex/internal/config"
	"invex/internal/extractor"
	"invex/internal/handler"
	"invex/internal/logging"
	"invex/internal/pdftext"
	"invex/internal/repository/postgres"
	"invex/internal/router"
	"invex/internal/service"
	"invex/internal/validator"
)

func main() {
	if err := run(); err != nil {
		logrus.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("INVEX_CONFIG_FILE"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logging.Setup(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The run store is only used for readiness when persistence is enabled
	var runStore handler.Pinger
	if cfg.DB.Enabled {
		db, err := postgres.NewDB(ctx, &cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		runStore = db
	}

	// Initialize services
	processor := service.NewInvoiceProcessor(
		classifier.NewFromConfig(cfg.Issuers),
		extractor.NewDefaultRegistry(cfg.Issuers),
		validator.NewEngine(validator.NewBuiltinRegistry()),
	)
	docSvc := service.NewDocumentService(pdftext.NewLoader(), processor)

	// Initialize handlers
	extractH := handler.NewExtractHandler(docSvc, cfg.Server.MaxUploadMB)
	healthH := handler.NewHealthHandler(runStore, cfg.Issuers)

	// Setup router
	r := router.Setup(cfg.Server, extractH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", cfg.Server.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
