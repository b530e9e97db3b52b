package models

import (
	"strings"
	"testing"
)

func TestBuildClientSummary_QualifyingRows(t *testing.T) {
	override := 40.0
	records := []DiscrepancyRecord{
		{
			NameFromPrimary:   "Ada Lovelace",
			WorkArea:          "4",
			RawIdentifierText: "PLX-123-ABC",
			PrimaryHours:      40,
			SecondaryHours:    38.5,
			Status:            ReviewStatusSecondaryError,
			Override:          &override,
		},
		// No override: skipped.
		{NameFromPrimary: "Grace", Status: ReviewStatusSecondaryError},
		// Resolved: skipped even with override.
		{NameFromPrimary: "Katherine", Status: ReviewStatusResolved, Override: &override},
	}

	got := BuildClientSummary(records)
	want := "1. Ada Lovelace - Worked Line 4 for 40 (correct hours), not 38.5 (incorrect hours).\n[PLX-123-ABC]"
	if got != want {
		t.Fatalf("summary:\n%q\nwant:\n%q", got, want)
	}
}

func TestBuildClientSummary_PrimaryErrorUsesPrimaryAsIncorrect(t *testing.T) {
	override := 38.5
	records := []DiscrepancyRecord{
		{NameFromSecondary: "Ada", PrimaryHours: 40, SecondaryHours: 38.5, Status: ReviewStatusPrimaryError, Override: &override},
	}
	got := BuildClientSummary(records)
	if !strings.Contains(got, "not 40 (incorrect hours)") {
		t.Fatalf("expected primary hours as incorrect value: %q", got)
	}
	if !strings.HasPrefix(got, "1. Ada for 38.5") {
		t.Fatalf("missing work area must collapse cleanly: %q", got)
	}
}

func TestBuildClientSummary_EmptySentinel(t *testing.T) {
	if got := BuildClientSummary(nil); got != EmptySummaryText {
		t.Fatalf("empty set sentinel: %q", got)
	}
	records := []DiscrepancyRecord{{Status: ReviewStatusResolved}}
	if got := BuildClientSummary(records); got != EmptySummaryText {
		t.Fatalf("no qualifying rows sentinel: %q", got)
	}
}

func TestBuildClientSummary_NumbersConsecutive(t *testing.T) {
	o1, o2 := 8.0, 9.0
	records := []DiscrepancyRecord{
		{NameFromPrimary: "A", Status: ReviewStatusSecondaryError, Override: &o1},
		{NameFromPrimary: "skip me", Status: ReviewStatusResolved},
		{NameFromPrimary: "B", Status: ReviewStatusPrimaryError, Override: &o2},
	}
	got := BuildClientSummary(records)
	if !strings.Contains(got, "1. A") || !strings.Contains(got, "2. B") {
		t.Fatalf("line numbering must skip non-qualifying rows: %q", got)
	}
}
