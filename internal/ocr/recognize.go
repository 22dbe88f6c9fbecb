package ocr

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/firdocs/fir-extract/internal/entity"
)

// Recognize runs tesseract in TSV mode and converts every detected word to
// a fragment with confidence (0..1) and a four-corner bounding box.
// Tesseract reports -1 confidence for non-word rows; those that still carry
// text are kept with confidence 0 (unknown/unscored).
func (s *Service) Recognize(ctx context.Context, imagePath string) ([]entity.Fragment, error) {
	args := []string{imagePath, "stdout", "-l", s.cfg.TesseractLang}
	if s.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(s.cfg.PSM))
	}
	if s.cfg.OEM > 0 {
		args = append(args, "--oem", strconv.Itoa(s.cfg.OEM))
	}
	if s.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", s.cfg.TessdataDir)
	}
	args = append(args, "tsv")

	out, errb, err := s.runner.Run(ctx, s.cfg.Tesseract, args...)
	if err != nil {
		return nil, fmt.Errorf("tesseract TSV: %w (%s)", err, truncate(string(errb), 512))
	}
	return parseTSV(string(out)), nil
}

// parseTSV reads tesseract's TSV output. Columns:
// level page block par line word left top width height conf text
func parseTSV(out string) []entity.Fragment {
	lines := strings.Split(out, "\n")
	fragments := make([]entity.Fragment, 0, len(lines))
	for i, ln := range lines {
		if i == 0 || len(ln) == 0 { // skip header
			continue
		}
		cols := strings.Split(ln, "\t")
		if len(cols) < 12 {
			continue
		}
		text := strings.TrimSpace(cols[len(cols)-1])
		if text == "" {
			continue
		}

		conf := 0.0
		if v, err := strconv.ParseFloat(cols[10], 64); err == nil && v >= 0 {
			conf = v / 100.0
		}

		left, _ := strconv.Atoi(cols[6])
		top, _ := strconv.Atoi(cols[7])
		width, _ := strconv.Atoi(cols[8])
		height, _ := strconv.Atoi(cols[9])

		fragments = append(fragments, entity.Fragment{
			Text:       text,
			Confidence: conf,
			BBox: []entity.Point{
				{left, top},
				{left + width, top},
				{left + width, top + height},
				{left, top + height},
			},
		})
	}
	return fragments
}
