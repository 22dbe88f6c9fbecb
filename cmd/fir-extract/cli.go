package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/firdocs/fir-extract/constants"
	"github.com/firdocs/fir-extract/internal/common"
	"github.com/firdocs/fir-extract/internal/entity"
	"github.com/firdocs/fir-extract/internal/export"
	"github.com/firdocs/fir-extract/internal/extract"
	"github.com/firdocs/fir-extract/internal/normalize"
	"github.com/firdocs/fir-extract/internal/ocr"
	"github.com/firdocs/fir-extract/internal/patterns"
	"github.com/firdocs/fir-extract/internal/refine"
	"github.com/firdocs/fir-extract/internal/repository"
)

// newExtractCmd extracts one document and prints the record as JSON.
// The input is a PDF or image (runs the OCR collaborators) or a JSON dump
// of fragments from a previous upload.
func newExtractCmd(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <file.pdf|image|fragments.json>",
		Short: "Extract a structured FIR record from one document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := common.LoadConfig()
			store := patterns.NewStore(cfg.Patterns.OverridesPath, logger)
			engine := extract.NewEngine(store, logger)
			normalizer := normalize.New(cfg.Extract.ConfidenceThreshold, logger)

			var fragments []entity.Fragment
			path := args[0]
			format := constants.MapExtToFormat(filepath.Ext(path))
			switch format {
			case constants.FormatPDF, constants.FormatImage:
				svc := ocr.NewService(ocr.Config{
					Tesseract:     cfg.OCR.Tesseract,
					Pdftoppm:      cfg.OCR.Pdftoppm,
					TesseractLang: cfg.OCR.TesseractLang,
					TessdataDir:   cfg.OCR.TessdataDir,
					DPI:           cfg.OCR.DPI,
					MaxPages:      cfg.OCR.MaxPages,
				}, logger)
				var pages entity.PageFragments
				var err error
				if format == constants.FormatPDF {
					pages, err = svc.ProcessPDF(cmd.Context(), path)
				} else {
					pages, err = svc.ProcessImage(cmd.Context(), path)
				}
				if err != nil {
					return fmt.Errorf("ocr: %w", err)
				}
				fragments = pages[1]
			default:
				b, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				if err := json.Unmarshal(b, &fragments); err != nil {
					return fmt.Errorf("decode fragments: %w", err)
				}
			}

			record := engine.Extract(normalizer.Normalize(fragments))
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(record)
		},
	}
	return cmd
}

// newRetrainCmd runs pattern refinement over the stored samples.
func newRetrainCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "retrain",
		Short: "Derive improved extraction patterns from stored training samples",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := common.LoadConfig()
			store := patterns.NewStore(cfg.Patterns.OverridesPath, logger)
			samples, closeRepo, err := openSamples(cfg, logger)
			if err != nil {
				return err
			}
			defer closeRepo()

			result := refine.NewService(samples, store, logger).Refine(cmd.Context())
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
}

// newExportCmd writes the stored ground-truth records to an XLSX workbook.
func newExportCmd(logger *slog.Logger) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored records to an XLSX workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := common.LoadConfig()
			samples, closeRepo, err := openSamples(cfg, logger)
			if err != nil {
				return err
			}
			defer closeRepo()

			stored, err := samples.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list samples: %w", err)
			}
			rows := make([]export.Row, 0, len(stored))
			for _, s := range stored {
				rows = append(rows, export.Row{FileID: s.FileID, Record: s.GroundTruth})
			}

			b, err := export.NewService(logger).ExportRecordsXLSX(rows)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, b, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records to %s\n", len(rows), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "fir-records.xlsx", "output workbook path")
	return cmd
}

func openSamples(cfg *common.Config, logger *slog.Logger) (repository.SampleRepository, func(), error) {
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
