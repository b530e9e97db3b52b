package models

import (
	"math"

	"bitbucket.org/mmdatafocus/hours_backend/utils"
)

// ReviewInput is one reviewer edit, validated at the boundary before it is
// allowed to touch a discrepancy record.
type ReviewInput struct {
	Identifier        string   `json:"identifier"`
	Category          string   `json:"category" validate:"required,oneof=PrimaryOnly SecondaryOnly Mismatched InvalidIdentifier"`
	RawIdentifierText string   `json:"rawIdentifierText"`
	Status            string   `json:"status" validate:"omitempty,oneof=Resolved PrimaryError SecondaryError IdentifierCorrectionNeeded"`
	Override          *float64 `json:"override" validate:"omitempty,gte=0"`
	Note              string   `json:"note"`
}

// ReconciliationSession holds both aggregates, the current discrepancy set
// and the reviewer annotations that must survive recomputation. It lives in
// memory only and dies with the process.
type ReconciliationSession struct {
	Id string `json:"id"`

	PrimaryRecords   []EmployeeHourRecord `json:"primaryRecords"`
	SecondaryRecords []EmployeeHourRecord `json:"secondaryRecords"`

	PrimaryAggregate   []AggregatedEmployee `json:"primaryAggregate"`
	SecondaryAggregate []AggregatedEmployee `json:"secondaryAggregate"`

	Discrepancies []DiscrepancyRecord `json:"discrepancies"`

	// DayFilter restricts the Primary side of the comparison to one day of
	// week. Empty means all days. DayFilterApplied reports whether the
	// normalized Primary data actually carried that day's bucket; when it
	// did not, full totals are used instead.
	DayFilter        string `json:"dayFilter"`
	DayFilterApplied bool   `json:"dayFilterApplied"`

	matchedPrimaryTotal   float64
	matchedSecondaryTotal float64
}

// NewReconciliationSession normalizes both raw tables and computes the
// initial discrepancy set. Missing or empty tables are the engine's only
// hard failure.
func NewReconciliationSession(id string, primaryTable, secondaryTable *RawTable) (*ReconciliationSession, error) {
	if primaryTable.IsEmpty() && secondaryTable.IsEmpty() {
		return nil, NewInputError("both raw tables are missing or empty")
	}

	primary, err := PrimaryNormalizerConfig().Normalize(primaryTable)
	if err != nil {
		return nil, err
	}
	secondary, err := SecondaryNormalizerConfig().Normalize(secondaryTable)
	if err != nil {
		return nil, err
	}

	s := &ReconciliationSession{
		Id:               id,
		PrimaryRecords:   primary,
		SecondaryRecords: secondary,
	}
	s.Recompute()
	return s, nil
}

// Recompute rebuilds aggregates and the discrepancy set from the current
// normalized records, re-attaching prior reviewer annotations. Safe to run
// any number of times; callers serialize access around it.
func (s *ReconciliationSession) Recompute() {
	comparison := s.comparisonPrimaryRecords()

	s.PrimaryAggregate = Aggregate(comparison)

	// Secondary rows whose badge failed the strict pattern do not join;
	// they surface as InvalidIdentifier rows instead.
	var resolved, unresolved []EmployeeHourRecord
	for i := range s.SecondaryRecords {
		if s.SecondaryRecords[i].IdentifierValid {
			resolved = append(resolved, s.SecondaryRecords[i])
		} else {
			unresolved = append(unresolved, s.SecondaryRecords[i])
		}
	}
	s.SecondaryAggregate = Aggregate(resolved)

	prior := s.Discrepancies
	s.Discrepancies = Classify(s.PrimaryAggregate, s.SecondaryAggregate, unresolved)
	ReattachAnnotations(s.Discrepancies, prior)

	s.matchedPrimaryTotal, s.matchedSecondaryTotal = matchedTotals(s.PrimaryAggregate, s.SecondaryAggregate)
}

// comparisonPrimaryRecords applies the day filter: hours come from the
// selected day's bucket, overtime folded in. Falls back to full totals when
// no record carries that day.
func (s *ReconciliationSession) comparisonPrimaryRecords() []EmployeeHourRecord {
	if s.DayFilter == "" {
		s.DayFilterApplied = false
		return s.PrimaryRecords
	}

	dayPresent := false
	for i := range s.PrimaryRecords {
		if _, ok := s.PrimaryRecords[i].DayHours[s.DayFilter]; ok {
			dayPresent = true
			break
		}
	}
	if !dayPresent {
		s.DayFilterApplied = false
		return s.PrimaryRecords
	}

	s.DayFilterApplied = true
	out := make([]EmployeeHourRecord, len(s.PrimaryRecords))
	for i := range s.PrimaryRecords {
		rec := s.PrimaryRecords[i]
		rec.SetHours(rec.DayHours[s.DayFilter], 0)
		out[i] = rec
	}
	return out
}

func matchedTotals(primary, secondary []AggregatedEmployee) (float64, float64) {
	secondaryByID := make(map[string]float64, len(secondary))
	for i := range secondary {
		secondaryByID[secondary[i].Identifier] = secondary[i].TotalHours
	}
	var p, sTot float64
	for i := range primary {
		sHours, ok := secondaryByID[primary[i].Identifier]
		if !ok {
			continue
		}
		pHours := primary[i].TotalHours
		if pHours > 0 && sHours > 0 && math.Abs(pHours-sHours) <= Epsilon {
			p += pHours
			sTot += sHours
		}
	}
	return p, sTot
}

// SetDayFilter sets or clears ("" / "All Days") the day restriction and
// recomputes.
func (s *ReconciliationSession) SetDayFilter(day string) error {
	if day == "" || day == "All Days" {
		s.DayFilter = ""
		s.Recompute()
		return nil
	}
	for _, d := range DayNames {
		if d == day {
			s.DayFilter = d
			s.Recompute()
			return nil
		}
	}
	return NewInputError("unknown day of week: " + day)
}

// sanitizeEditedRecords rederives the invariants a grid edit can break:
// totals from components, and digits-only identifiers. A reviewer-corrected
// identifier re-enters matching.
func sanitizeEditedRecords(records []EmployeeHourRecord) {
	for i := range records {
		records[i].SetHours(records[i].RegularHours, records[i].OvertimeHours)
		records[i].Identifier = NormalizeIdentifier(records[i].Identifier)
		records[i].IdentifierValid = records[i].Identifier != ""
	}
}

// ReplacePrimaryRecords swaps in reviewer-edited normalized Primary data
// and recomputes.
func (s *ReconciliationSession) ReplacePrimaryRecords(records []EmployeeHourRecord) {
	sanitizeEditedRecords(records)
	s.PrimaryRecords = records
	s.Recompute()
}

func (s *ReconciliationSession) ReplaceSecondaryRecords(records []EmployeeHourRecord) {
	sanitizeEditedRecords(records)
	s.SecondaryRecords = records
	s.Recompute()
}

// ApplyReview validates one reviewer edit and writes its status, override
// and note onto the matching discrepancy row. Validation failures and
// unknown rows leave the session untouched.
func (s *ReconciliationSession) ApplyReview(input ReviewInput) error {
	if err := utils.ValidateStruct(input); err != nil {
		return err
	}
	category, err := ParseDiscrepancyCategory(input.Category)
	if err != nil {
		return err
	}
	status, err := ParseReviewStatus(input.Status)
	if err != nil {
		return err
	}

	for i := range s.Discrepancies {
		rec := &s.Discrepancies[i]
		if rec.Identifier != input.Identifier || rec.Category != category {
			continue
		}
		if category == DiscrepancyCategoryInvalidIdentifier && rec.RawIdentifierText != input.RawIdentifierText {
			continue
		}
		rec.Status = status
		rec.Override = input.Override
		rec.Note = input.Note
		return nil
	}
	return utils.ErrorRecordNotFound
}

// Validate runs the correction overlay over the current discrepancy set.
func (s *ReconciliationSession) Validate() ([]EffectiveHours, CorrectionSummary) {
	return ApplyCorrections(s.Discrepancies, s.matchedPrimaryTotal, s.matchedSecondaryTotal)
}

// Summary renders the client-facing narrative for the current state.
func (s *ReconciliationSession) Summary() string {
	return BuildClientSummary(s.Discrepancies)
}

// Tallies returns per-category discrepancy counts.
func (s *ReconciliationSession) Tallies() map[DiscrepancyCategory]int {
	return CategoryTallies(s.Discrepancies)
}
