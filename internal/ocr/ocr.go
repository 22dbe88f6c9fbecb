// Package ocr wraps the external OCR collaborators: pdftoppm renders PDF
// pages to images, tesseract recognizes text with per-word confidence and
// bounding boxes. Binary locations are injected through Config — nothing in
// here hard-codes a tool path. The core engine only sees the resulting
// fragments.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/firdocs/fir-extract/internal/entity"
)

type Config struct {
	Tesseract string // binary name or absolute path; if empty -> "tesseract"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"

	TesseractLang string // default "eng+hin"
	TessdataDir   string
	DPI           int // rasterization DPI for scanned PDFs, default 300
	MaxPages      int // 0 = no limit

	PSM int // tesseract page segmentation mode; 0 = tool default
	OEM int // tesseract engine mode; 0 = tool default
}

// Recognizer is the `recognize(image) -> fragments` collaborator.
type Recognizer interface {
	Recognize(ctx context.Context, imagePath string) ([]entity.Fragment, error)
}

// PageRenderer is the `render_pages(pdf) -> images` collaborator. The
// returned cleanup removes the rendered images.
type PageRenderer interface {
	RenderPages(ctx context.Context, pdfPath string) (images []string, cleanup func(), err error)
}

// Service implements both collaborators by shelling out.
type Service struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewService(cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng+hin"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Service{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// RenderPages rasterizes every page of the PDF into PNGs in a temp dir.
func (s *Service) RenderPages(ctx context.Context, pdfPath string) ([]string, func(), error) {
	tmpDir, err := os.MkdirTemp("", "fir-pp-*")
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r <dpi> -png <in.pdf> <tmp/page>
	_, errb, err := s.runner.Run(ctx, s.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", s.cfg.DPI), "-png", pdfPath, prefix)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("pdftoppm: %w (%s)", err, truncate(string(errb), 512))
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...)
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if s.cfg.MaxPages > 0 && len(matches) > s.cfg.MaxPages {
		matches = matches[:s.cfg.MaxPages]
	}
	if len(matches) == 0 {
		cleanup()
		return nil, nil, fmt.Errorf("no pages rendered from %s", pdfPath)
	}
	return matches, cleanup, nil
}

// ProcessPDF renders every page and recognizes each one, keyed from page 1.
// Per-page recognition failures are logged and skipped; the call fails only
// when no page could be processed at all.
func (s *Service) ProcessPDF(ctx context.Context, pdfPath string) (entity.PageFragments, error) {
	images, cleanup, err := s.RenderPages(ctx, pdfPath)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	pages := make(entity.PageFragments, len(images))
	failed := 0
	for i, img := range images {
		frags, err := s.Recognize(ctx, img)
		if err != nil {
			s.logger.Warn("ocr.page_failed", "page", i+1, "error", err)
			failed++
			continue
		}
		pages[i+1] = frags
	}
	if failed == len(images) {
		return nil, fmt.Errorf("ocr failed on all %d pages of %s", len(images), pdfPath)
	}
	return pages, nil
}

// ProcessImage recognizes a single already-rendered image as page 1.
func (s *Service) ProcessImage(ctx context.Context, imagePath string) (entity.PageFragments, error) {
	frags, err := s.Recognize(ctx, imagePath)
	if err != nil {
		return nil, err
	}
	return entity.PageFragments{1: frags}, nil
}
