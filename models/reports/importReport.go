package reports

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"bitbucket.org/mmdatafocus/hours_backend/models"
	"github.com/xuri/excelize/v2"
)

// ReadReport parses an uploaded report into the engine's raw table form,
// picking the parser by file extension (.csv vs workbook formats).
func ReadReport(filename string, r io.Reader, cfg models.NormalizerConfig) (*models.RawTable, error) {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return ReadCSV(r, cfg.HeaderRowOffset)
	}
	return ReadWorkbook(r, cfg.HeaderRowOffset)
}

// ReadWorkbook reads the first sheet of an xlsx workbook. headerRowOffset
// is the zero-based index of the header row; everything above it (report
// titles, date banners) is discarded.
func ReadWorkbook(r io.Reader, headerRowOffset int) (*models.RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	return tableFromRows(rows, headerRowOffset)
}

// ReadCSV reads a CSV report. Ragged rows are tolerated; cells stay text
// and are coerced later by the normalizer.
func ReadCSV(r io.Reader, headerRowOffset int) (*models.RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return tableFromRows(rows, headerRowOffset)
}

func tableFromRows(rows [][]string, headerRowOffset int) (*models.RawTable, error) {
	if len(rows) <= headerRowOffset {
		return nil, models.NewInputError("report has no header row at the expected offset")
	}

	headers := make([]string, len(rows[headerRowOffset]))
	for i, h := range rows[headerRowOffset] {
		headers[i] = strings.TrimSpace(h)
	}

	table := &models.RawTable{Headers: headers}
	for _, row := range rows[headerRowOffset+1:] {
		cells := make([]any, len(row))
		for i, c := range row {
			cells[i] = c
		}
		table.Rows = append(table.Rows, cells)
	}
	return table, nil
}
