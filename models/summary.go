package models

import (
	"fmt"
	"strings"

	"bitbucket.org/mmdatafocus/hours_backend/utils"
)

// EmptySummaryText is returned when no row qualifies for the client
// narrative. Never an error.
const EmptySummaryText = "(No corrections entered.)"

// BuildClientSummary renders one narrative line per row marked erroneous on
// one side with a correction entered. The template identifies the employee,
// the work area when known, the asserted-correct value, the original
// incorrect value, and the badge text when present.
func BuildClientSummary(records []DiscrepancyRecord) string {
	var lines []string
	idx := 1
	for i := range records {
		rec := &records[i]
		if rec.Override == nil {
			continue
		}
		if rec.Status != ReviewStatusPrimaryError && rec.Status != ReviewStatusSecondaryError {
			continue
		}

		name := rec.NameFromPrimary
		if name == "" {
			name = rec.NameFromSecondary
		}
		if name == "" {
			name = "(Name N/A)"
		}

		incorrect := rec.SecondaryHours
		if rec.Status == ReviewStatusPrimaryError {
			incorrect = rec.PrimaryHours
		}

		line := fmt.Sprintf("%d. %s", idx, name)
		if rec.WorkArea != "" {
			line += fmt.Sprintf(" - Worked Line %s", rec.WorkArea)
		}
		line += fmt.Sprintf(" for %g (correct hours), not %g (incorrect hours).", utils.DereferencePtr(rec.Override), incorrect)
		if rec.RawIdentifierText != "" {
			line += fmt.Sprintf("\n[%s]", rec.RawIdentifierText)
		}
		lines = append(lines, line)
		idx++
	}
	if len(lines) == 0 {
		return EmptySummaryText
	}
	return strings.Join(lines, "\n\n")
}
