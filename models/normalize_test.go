package models

import (
	"errors"
	"testing"
)

func primaryTable(rows ...[]any) *RawTable {
	return &RawTable{
		Headers: []string{"File", "Name", "Mon - Reg Hrs", "Tue - Reg Hrs", "Mon - OT Hrs"},
		Rows:    rows,
	}
}

func secondaryTable(rows ...[]any) *RawTable {
	return &RawTable{
		Headers: []string{"Badge", "Name", "Payable hours", "Line"},
		Rows:    rows,
	}
}

func TestNormalizePrimary_DayAndOvertimeColumns(t *testing.T) {
	table := primaryTable(
		[]any{"123", "Ada Lovelace", "8", "8.5", "2"},
	)
	records, err := PrimaryNormalizerConfig().Normalize(table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Identifier != "123" || !rec.IdentifierValid {
		t.Fatalf("identifier: got (%q, %v)", rec.Identifier, rec.IdentifierValid)
	}
	if rec.RegularHours != 16.5 || rec.OvertimeHours != 2 || rec.TotalHours != 18.5 {
		t.Fatalf("hours: got reg=%v ot=%v total=%v", rec.RegularHours, rec.OvertimeHours, rec.TotalHours)
	}
	if rec.DayHours["Monday"] != 10 || rec.DayHours["Tuesday"] != 8.5 {
		t.Fatalf("day buckets: got %v", rec.DayHours)
	}
}

func TestNormalizePrimary_LenientCells(t *testing.T) {
	table := primaryTable(
		[]any{"EMP-456", nil, "N/A", "", "1,2 "},
	)
	records, err := PrimaryNormalizerConfig().Normalize(table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec := records[0]
	if rec.Identifier != "456" {
		t.Fatalf("identifier: got %q", rec.Identifier)
	}
	// Unparsable cells coerce to 0; "1,2" loses the thousands separator.
	if rec.RegularHours != 0 || rec.OvertimeHours != 12 {
		t.Fatalf("hours: got reg=%v ot=%v", rec.RegularHours, rec.OvertimeHours)
	}
}

func TestNormalize_DropsNoiseRows(t *testing.T) {
	table := primaryTable(
		[]any{"", "Weekly Subtotal", "", "", ""},
		[]any{"123", "Ada", "8", "", ""},
		[]any{"", "", "4", "", ""}, // no id but hours: kept
	)
	records, err := PrimaryNormalizerConfig().Normalize(table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records after noise drop, got %d", len(records))
	}
}

func TestNormalize_MissingIdentifierColumn(t *testing.T) {
	table := &RawTable{
		Headers: []string{"Who", "Mon - Reg"},
		Rows:    [][]any{{"Ada", "8"}},
	}
	records, err := PrimaryNormalizerConfig().Normalize(table)
	if err != nil {
		t.Fatalf("missing id column must not fail: %v", err)
	}
	if len(records) != 1 || records[0].Identifier != "" {
		t.Fatalf("expected one record with empty identifier, got %+v", records)
	}
}

func TestNormalize_EmptyTableIsInputError(t *testing.T) {
	_, err := PrimaryNormalizerConfig().Normalize(&RawTable{Headers: []string{"File"}})
	var inputErr *InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected InputError, got %v", err)
	}
}

func TestNormalizeSecondary_BadgeAndPayableHours(t *testing.T) {
	table := secondaryTable(
		[]any{"PLX-123-ABC", "Ada Lovelace", "38.5", "Line 4"},
		[]any{"XYZ-998-AB", "Grace Hopper", "5.0", ""},
	)
	records, err := SecondaryNormalizerConfig().Normalize(table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	valid := records[0]
	if valid.Identifier != "123" || !valid.IdentifierValid || valid.BadgeSuffix != "ABC" {
		t.Fatalf("valid badge row: %+v", valid)
	}
	if valid.TotalHours != 38.5 || valid.WorkArea != "Line 4" {
		t.Fatalf("valid badge row hours/area: %+v", valid)
	}
	invalid := records[1]
	if invalid.Identifier != "998" || invalid.IdentifierValid {
		t.Fatalf("malformed badge row: %+v", invalid)
	}
}

func TestFindColumn_CaseInsensitiveFirstMatch(t *testing.T) {
	headers := []string{"", "Associate NAME", "Employee ID", "EID old"}
	idx, ok := FindColumn(headers, []string{"eid", "employee id"})
	if !ok || idx != 2 {
		t.Fatalf("FindColumn = (%d, %v), want (2, true)", idx, ok)
	}
	if _, ok := FindColumn(headers, []string{"badge"}); ok {
		t.Fatalf("unexpected badge column")
	}
}
