// fir-extract is the operator CLI: run extraction on a PDF or a saved OCR
// dump, refine patterns from accumulated samples, export records to XLSX.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	root := &cobra.Command{
		Use:           "fir-extract",
		Short:         "Extract structured fields from scanned FIR documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newExtractCmd(logger))
	root.AddCommand(newRetrainCmd(logger))
	root.AddCommand(newExportCmd(logger))

	if err := root.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
