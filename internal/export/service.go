package export

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/firdocs/fir-extract/internal/entity"
)

// Service produces XLSX bytes from extracted FIR records, one row per
// document, for review spreadsheets.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// Row pairs an extracted record with the upload it came from.
type Row struct {
	FileID string
	Record entity.FIRRecord
}

// ExportRecordsXLSX returns an XLSX workbook with one row per record.
func (s *Service) ExportRecordsXLSX(rows []Row) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "FIR Records"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// drop the default sheet so the workbook has only ours
	if sheet != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"File ID",
		"FIR No",
		"Date/Time of FIR",
		"District",
		"Police Station",
		"Year",
		"Type of Information",
		"Complainant",
		"Father/Husband",
		"Phone",
		"Sections",
		"Accused",
		"Officer",
		"Contents",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	rowNum := 2
	for _, r := range rows {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, rowNum)
			_ = f.SetCellValue(sheet, cell, v)
		}

		sections := make([]string, 0, len(r.Record.FIR.ActsSections))
		for _, as := range r.Record.FIR.ActsSections {
			sections = append(sections, as.Section)
		}
		accused := make([]string, 0, len(r.Record.AccusedDetails))
		for _, a := range r.Record.AccusedDetails {
			if a.Name != "" {
				accused = append(accused, a.Name)
			}
		}

		write(1, r.FileID)
		write(2, r.Record.FIR.FIRNo)
		write(3, r.Record.FIR.DateTimeOfFIR)
		write(4, r.Record.FIR.District)
		write(5, r.Record.FIR.PoliceStation)
		if r.Record.FIR.Year > 0 {
			write(6, r.Record.FIR.Year)
		} else {
			write(6, "")
		}
		write(7, r.Record.FIR.TypeOfInformation)
		write(8, r.Record.ComplainantInformant.Name)
		write(9, r.Record.ComplainantInformant.FatherOrHusbandName)
		write(10, r.Record.ComplainantInformant.PhoneNumber)
		write(11, strings.Join(sections, ", "))
		write(12, strings.Join(accused, "; "))
		write(13, r.Record.ActionTaken.RegisteredCaseInvestigation.OfficerName)
		write(14, truncate(r.Record.FirstInformationContents, 140))

		rowNum++
	}

	// Widen the text-heavy columns
	_ = f.SetColWidth(sheet, "A", "A", 38) // file id (uuid)
	_ = f.SetColWidth(sheet, "D", "E", 20)
	_ = f.SetColWidth(sheet, "H", "I", 24)
	_ = f.SetColWidth(sheet, "N", "N", 60)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	s.logger.Info("export.done", "rows", len(rows), "bytes", buf.Len(), "duration_ms", time.Since(start).Milliseconds())
	return buf.Bytes(), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
