package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/firdocs/fir-extract/internal/common"
	"github.com/firdocs/fir-extract/internal/extract"
	"github.com/firdocs/fir-extract/internal/normalize"
	"github.com/firdocs/fir-extract/internal/ocr"
	"github.com/firdocs/fir-extract/internal/patterns"
	"github.com/firdocs/fir-extract/internal/refine"
	"github.com/firdocs/fir-extract/internal/repository"
	"github.com/firdocs/fir-extract/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := patterns.NewStore(cfg.Patterns.OverridesPath, logger)
	if cfg.Patterns.Watch {
		go func() {
			if err := store.Watch(ctx, 0); err != nil {
				logger.Warn("pattern watcher stopped", "error", err)
			}
		}()
	}

	samples, closeSamples, err := openSampleRepository(cfg, logger)
	if err != nil {
		logger.Error("opening sample repository failed", "error", err)
		os.Exit(1)
	}
	defer closeSamples()

	ocrSvc := ocr.NewService(ocr.Config{
		Tesseract:     cfg.OCR.Tesseract,
		Pdftoppm:      cfg.OCR.Pdftoppm,
		TesseractLang: cfg.OCR.TesseractLang,
		TessdataDir:   cfg.OCR.TessdataDir,
		DPI:           cfg.OCR.DPI,
		MaxPages:      cfg.OCR.MaxPages,
	}, logger)

	srv := server.New(
		cfg,
		logger,
		ocrSvc,
		normalize.New(cfg.Extract.ConfidenceThreshold, logger),
		extract.NewEngine(store, logger),
		samples,
		refine.NewService(samples, store, logger),
	)

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	if err := srv.Start(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func openSampleRepository(cfg *common.Config, logger *slog.Logger) (repository.SampleRepository, func(), error) {
	if cfg.Storage.SampleStore == "sqlite" {
		repo, err := repository.NewSQLiteSampleRepository(cfg.Storage.SampleDB, logger)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil
	}
	repo, err := repository.NewFSSampleRepository(cfg.Storage.TrainingDir, logger)
	if err != nil {
		return nil, nil, err
	}
	return repo, func() {}, nil
}
