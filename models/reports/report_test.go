package reports

import (
	"bytes"
	"strings"
	"testing"

	"bitbucket.org/mmdatafocus/hours_backend/models"
	"github.com/xuri/excelize/v2"
)

func buildWorkbookBytes(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return &buf
}

func TestReadWorkbook_HeaderOffset(t *testing.T) {
	// Agency reports carry two banner rows above the real header.
	buf := buildWorkbookBytes(t, [][]any{
		{"Weekly Hours Report"},
		{"Week of 2026-08-24"},
		{"File", "Name", "Mon - Reg Hrs"},
		{"123", "Ada Lovelace", 8.5},
	})

	table, err := ReadWorkbook(buf, 2)
	if err != nil {
		t.Fatalf("read workbook: %v", err)
	}
	if len(table.Headers) != 3 || table.Headers[0] != "File" {
		t.Fatalf("headers: %v", table.Headers)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("rows: %d", len(table.Rows))
	}
	if got := table.Cell(0, 0); got != "123" {
		t.Fatalf("identifier cell: %v", got)
	}
}

func TestReadWorkbook_MissingHeaderRowIsInputError(t *testing.T) {
	buf := buildWorkbookBytes(t, [][]any{{"only one row"}})
	_, err := ReadWorkbook(buf, 3)
	if err == nil {
		t.Fatalf("expected error for header offset past the data")
	}
	if _, ok := err.(*models.InputError); !ok {
		t.Fatalf("expected InputError, got %T: %v", err, err)
	}
}

func TestReadCSV(t *testing.T) {
	csvData := "Badge,Name,Payable hours,Line\nPLX-123-ABC,Ada,38.5,4\nXYZ-998-AB,Mystery,5.0,\n"
	table, err := ReadCSV(strings.NewReader(csvData), 0)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows: %d", len(table.Rows))
	}

	records, err := models.SecondaryNormalizerConfig().Normalize(table)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if records[0].Identifier != "123" || records[0].TotalHours != 38.5 {
		t.Fatalf("csv row survived badly: %+v", records[0])
	}
}

func TestBuildWorkbook_ThreeSheets(t *testing.T) {
	primary := &models.RawTable{
		Headers: []string{"File", "Name", "Mon - Reg Hrs"},
		Rows:    [][]any{{"123", "Ada", "40"}},
	}
	secondary := &models.RawTable{
		Headers: []string{"Badge", "Name", "Payable hours"},
		Rows:    [][]any{{"PLX-123-ABC", "Ada L", "38.5"}},
	}
	session, err := models.NewReconciliationSession("t", primary, secondary)
	if err != nil {
		t.Fatalf("session: %v", err)
	}

	f, err := BuildWorkbook(session)
	if err != nil {
		t.Fatalf("build workbook: %v", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	reopened, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	for _, sheet := range []string{"Primary_Normalized", "Secondary_Normalized", "Discrepancies"} {
		if idx, err := reopened.GetSheetIndex(sheet); err != nil || idx < 0 {
			t.Fatalf("missing sheet %s (idx=%d err=%v)", sheet, idx, err)
		}
	}

	// The 40 vs 38.5 mismatch must appear on the Discrepancies sheet.
	rows, err := reopened.GetRows("Discrepancies")
	if err != nil {
		t.Fatalf("discrepancy rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 discrepancy, got %d rows", len(rows))
	}
	if rows[1][0] != "123" || rows[1][8] != "Mismatched" {
		t.Fatalf("discrepancy row: %v", rows[1])
	}
}

func TestWriteDiscrepancyCSV(t *testing.T) {
	override := 40.0
	rows := []models.EffectiveHours{
		{
			DiscrepancyRecord: models.DiscrepancyRecord{
				Identifier:     "123",
				PrimaryHours:   40,
				SecondaryHours: 38.5,
				Category:       models.DiscrepancyCategoryMismatched,
				Status:         models.ReviewStatusSecondaryError,
				Override:       &override,
			},
			EffectivePrimary:   40,
			EffectiveSecondary: 40,
		},
	}

	var buf bytes.Buffer
	if err := WriteDiscrepancyCSV(&buf, rows); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "123") || !strings.Contains(lines[1], "Mismatched") {
		t.Fatalf("row content: %q", lines[1])
	}
}
