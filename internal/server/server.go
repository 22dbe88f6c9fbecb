// Package server exposes the thin JSON API around the extraction core:
// upload-and-extract, stored-file retrieval, training sample submission and
// pattern refinement. It holds no extraction logic of its own.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/firdocs/fir-extract/internal/common"
	"github.com/firdocs/fir-extract/internal/entity"
	"github.com/firdocs/fir-extract/internal/extract"
	"github.com/firdocs/fir-extract/internal/normalize"
	"github.com/firdocs/fir-extract/internal/refine"
	"github.com/firdocs/fir-extract/internal/repository"
)

// DocumentOCR is the upstream collaborator chain: document -> pages ->
// fragments. PDFs are rendered page by page; a single image is page 1.
type DocumentOCR interface {
	ProcessPDF(ctx context.Context, pdfPath string) (entity.PageFragments, error)
	ProcessImage(ctx context.Context, imagePath string) (entity.PageFragments, error)
}

type Server struct {
	cfg        *common.Config
	logger     *slog.Logger
	ocr        DocumentOCR
	normalizer *normalize.Normalizer
	engine     *extract.Engine
	samples    repository.SampleRepository
	refiner    *refine.Service

	httpSrv *http.Server
}

func New(
	cfg *common.Config,
	logger *slog.Logger,
	docOCR DocumentOCR,
	normalizer *normalize.Normalizer,
	engine *extract.Engine,
	samples repository.SampleRepository,
	refiner *refine.Service,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:        cfg,
		logger:     logger,
		ocr:        docOCR,
		normalizer: normalizer,
		engine:     engine,
		samples:    samples,
		refiner:    refiner,
	}
	s.httpSrv = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      s.routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/upload", s.handleUpload)
	mux.HandleFunc("GET /api/file/{id}", s.handleGetFile)
	mux.HandleFunc("POST /api/train/sample", s.handleSaveSample)
	mux.HandleFunc("GET /api/train/samples", s.handleListSamples)
	mux.HandleFunc("POST /api/train/retrain", s.handleRetrain)

	return s.withCORS(s.withLogging(mux))
}

func (s *Server) Start() error {
	s.logger.Info("server.listening", "addr", s.httpSrv.Addr)
	err := s.httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "healthy"})
}
