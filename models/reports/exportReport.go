package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"bitbucket.org/mmdatafocus/hours_backend/models"
	"github.com/xuri/excelize/v2"
)

const (
	sheetPrimary       = "Primary_Normalized"
	sheetSecondary     = "Secondary_Normalized"
	sheetDiscrepancies = "Discrepancies"
)

// BuildWorkbook bundles the session snapshot into a three-sheet workbook:
// both normalized sources plus the discrepancy table.
func BuildWorkbook(s *models.ReconciliationSession) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writePrimarySheet(f, s.PrimaryRecords); err != nil {
		return nil, err
	}
	if err := writeSecondarySheet(f, s.SecondaryRecords); err != nil {
		return nil, err
	}
	if err := writeDiscrepancySheet(f, s.Discrepancies); err != nil {
		return nil, err
	}

	// Drop the default sheet so the workbook opens on the Primary tab.
	f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex(sheetPrimary); err == nil {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

func writePrimarySheet(f *excelize.File, records []models.EmployeeHourRecord) error {
	if _, err := f.NewSheet(sheetPrimary); err != nil {
		return err
	}
	writeHeaderRow(f, sheetPrimary, "Identifier", "Name", "RegularHours", "OvertimeHours", "TotalHours")
	for i, r := range records {
		writeRow(f, sheetPrimary, i+2, r.Identifier, r.Name, r.RegularHours, r.OvertimeHours, r.TotalHours)
	}
	return nil
}

func writeSecondarySheet(f *excelize.File, records []models.EmployeeHourRecord) error {
	if _, err := f.NewSheet(sheetSecondary); err != nil {
		return err
	}
	writeHeaderRow(f, sheetSecondary, "Badge", "Identifier", "IdentifierValid", "BadgeSuffix", "Line", "PayableHours", "Name")
	for i, r := range records {
		writeRow(f, sheetSecondary, i+2, r.RawIdentifierText, r.Identifier, r.IdentifierValid, r.BadgeSuffix, r.WorkArea, r.TotalHours, r.Name)
	}
	return nil
}

func writeDiscrepancySheet(f *excelize.File, records []models.DiscrepancyRecord) error {
	if _, err := f.NewSheet(sheetDiscrepancies); err != nil {
		return err
	}
	writeHeaderRow(f, sheetDiscrepancies,
		"Identifier", "NamePrimary", "NameSecondary", "Badge", "Line",
		"PrimaryHours", "SecondaryHours", "Difference", "Category", "Status", "Override", "Note")
	for i, r := range records {
		override := ""
		if r.Override != nil {
			override = strconv.FormatFloat(*r.Override, 'f', -1, 64)
		}
		writeRow(f, sheetDiscrepancies, i+2,
			r.Identifier, r.NameFromPrimary, r.NameFromSecondary, r.RawIdentifierText, r.WorkArea,
			r.PrimaryHours, r.SecondaryHours, r.Difference, string(r.Category), string(r.Status), override, r.Note)
	}
	return nil
}

func writeHeaderRow(f *excelize.File, sheet string, headings ...any) {
	writeRow(f, sheet, 1, headings...)
}

func writeRow(f *excelize.File, sheet string, rowNo int, values ...any) {
	for j, v := range values {
		cell, err := excelize.CoordinatesToCellName(j+1, rowNo)
		if err != nil {
			continue
		}
		f.SetCellValue(sheet, cell, v)
	}
}

// WriteDiscrepancyCSV streams the overlay-resolved discrepancy table as
// CSV, the reviewer's download format.
func WriteDiscrepancyCSV(w io.Writer, rows []models.EffectiveHours) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"Identifier", "NamePrimary", "NameSecondary", "Badge", "Line",
		"PrimaryHours", "SecondaryHours", "Difference", "Category", "Status",
		"Override", "EffectivePrimary", "EffectiveSecondary", "Note",
	}); err != nil {
		return err
	}
	for _, r := range rows {
		override := ""
		if r.Override != nil {
			override = fmt.Sprintf("%g", *r.Override)
		}
		record := []string{
			r.Identifier, r.NameFromPrimary, r.NameFromSecondary, r.RawIdentifierText, r.WorkArea,
			fmt.Sprintf("%g", r.PrimaryHours), fmt.Sprintf("%g", r.SecondaryHours), fmt.Sprintf("%g", r.Difference),
			string(r.Category), string(r.Status),
			override, fmt.Sprintf("%g", r.EffectivePrimary), fmt.Sprintf("%g", r.EffectiveSecondary), r.Note,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
