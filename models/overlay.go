package models

import "math"

// EffectiveHours is a discrepancy row with overlay-resolved hour values.
type EffectiveHours struct {
	DiscrepancyRecord
	EffectivePrimary   float64 `json:"effectivePrimary"`
	EffectiveSecondary float64 `json:"effectiveSecondary"`
}

// CorrectionSummary carries session-level totals after the overlay.
type CorrectionSummary struct {
	OriginalPrimaryTotal    float64 `json:"originalPrimaryTotal"`
	OriginalSecondaryTotal  float64 `json:"originalSecondaryTotal"`
	CorrectedPrimaryTotal   float64 `json:"correctedPrimaryTotal"`
	CorrectedSecondaryTotal float64 `json:"correctedSecondaryTotal"`
	Converged               bool    `json:"converged"`
}

// MatchStatus renders the convergence flag the way reviewers read it.
func (s CorrectionSummary) MatchStatus() string {
	if s.Converged {
		return "MATCH"
	}
	return "MISMATCH"
}

// ApplyCorrections computes effective per-row hours and corrected totals.
// An override only takes effect on the side the reviewer marked erroneous.
// matchedPrimary/matchedSecondary are the totals contributed by employees
// with no discrepancy; corrections never touch those. The function is pure:
// running it twice over the same records yields identical output.
func ApplyCorrections(records []DiscrepancyRecord, matchedPrimary, matchedSecondary float64) ([]EffectiveHours, CorrectionSummary) {
	effective := make([]EffectiveHours, 0, len(records))
	summary := CorrectionSummary{
		OriginalPrimaryTotal:    matchedPrimary,
		OriginalSecondaryTotal:  matchedSecondary,
		CorrectedPrimaryTotal:   matchedPrimary,
		CorrectedSecondaryTotal: matchedSecondary,
	}

	for i := range records {
		rec := records[i]
		eff := EffectiveHours{
			DiscrepancyRecord:  rec,
			EffectivePrimary:   rec.PrimaryHours,
			EffectiveSecondary: rec.SecondaryHours,
		}
		if rec.Override != nil {
			switch rec.Status {
			case ReviewStatusPrimaryError:
				eff.EffectivePrimary = *rec.Override
			case ReviewStatusSecondaryError:
				eff.EffectiveSecondary = *rec.Override
			}
		}
		summary.OriginalPrimaryTotal += rec.PrimaryHours
		summary.OriginalSecondaryTotal += rec.SecondaryHours
		summary.CorrectedPrimaryTotal += eff.EffectivePrimary
		summary.CorrectedSecondaryTotal += eff.EffectiveSecondary
		effective = append(effective, eff)
	}

	summary.Converged = math.Abs(summary.CorrectedPrimaryTotal-summary.CorrectedSecondaryTotal) <= Epsilon
	return effective, summary
}
