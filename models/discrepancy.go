package models

import "math"

// DiscrepancyRecord is one reviewable disagreement between the sources.
// Category and the hour fields are computed once by Classify and are
// immutable thereafter; only Status, Override and Note are reviewer-mutable.
type DiscrepancyRecord struct {
	Identifier        string              `json:"identifier"`
	NameFromPrimary   string              `json:"nameFromPrimary"`
	NameFromSecondary string              `json:"nameFromSecondary"`
	RawIdentifierText string              `json:"rawIdentifierText"`
	BadgeSuffix       string              `json:"badgeSuffix,omitempty"`
	WorkArea          string              `json:"workArea,omitempty"`
	PrimaryHours      float64             `json:"primaryHours"`
	SecondaryHours    float64             `json:"secondaryHours"`
	Difference        float64             `json:"difference"`
	Category          DiscrepancyCategory `json:"category"`
	Status            ReviewStatus        `json:"status"`
	Override          *float64            `json:"override,omitempty"`
	Note              string              `json:"note"`
}

// Classify performs the full outer join of the two aggregates and buckets
// each joined identifier. Identifiers agreeing within Epsilon on both sides
// are an implicit match and produce no record. Unresolved Secondary rows
// with payable hours each produce one InvalidIdentifier record (not
// deduplicated; there is no identifier to deduplicate on).
func Classify(primary, secondary []AggregatedEmployee, unresolvedSecondary []EmployeeHourRecord) []DiscrepancyRecord {
	secondaryByID := make(map[string]*AggregatedEmployee, len(secondary))
	for i := range secondary {
		secondaryByID[secondary[i].Identifier] = &secondary[i]
	}
	primarySeen := make(map[string]bool, len(primary))

	var out []DiscrepancyRecord
	for i := range primary {
		p := &primary[i]
		primarySeen[p.Identifier] = true
		s := secondaryByID[p.Identifier]
		if rec, ok := joinRecord(p, s, p.Identifier); ok {
			out = append(out, rec)
		}
	}
	for i := range secondary {
		s := &secondary[i]
		if primarySeen[s.Identifier] {
			continue
		}
		if rec, ok := joinRecord(nil, s, s.Identifier); ok {
			out = append(out, rec)
		}
	}

	for i := range unresolvedSecondary {
		row := &unresolvedSecondary[i]
		if row.TotalHours <= 0 {
			continue
		}
		out = append(out, DiscrepancyRecord{
			// Best-effort digits stay on the row for the reviewer; they did
			// not participate in the join.
			Identifier:        row.Identifier,
			NameFromSecondary: row.Name,
			RawIdentifierText: row.RawIdentifierText,
			WorkArea:          row.WorkArea,
			PrimaryHours:      0,
			SecondaryHours:    row.TotalHours,
			Difference:        -row.TotalHours,
			Category:          DiscrepancyCategoryInvalidIdentifier,
			Note:              "badge format invalid; cannot match to identifier",
		})
	}
	return out
}

func joinRecord(p, s *AggregatedEmployee, identifier string) (DiscrepancyRecord, bool) {
	var pHours, sHours float64
	rec := DiscrepancyRecord{Identifier: identifier}
	if p != nil {
		pHours = p.TotalHours
		rec.NameFromPrimary = p.Name
	}
	if s != nil {
		sHours = s.TotalHours
		rec.NameFromSecondary = s.Name
		rec.RawIdentifierText = s.RawIdentifierText
		rec.BadgeSuffix = s.BadgeSuffix
		rec.WorkArea = s.WorkArea
	}

	switch {
	case pHours > 0 && sHours == 0:
		rec.Category = DiscrepancyCategoryPrimaryOnly
	case pHours == 0 && sHours > 0:
		rec.Category = DiscrepancyCategorySecondaryOnly
	case pHours > 0 && sHours > 0 && math.Abs(pHours-sHours) > Epsilon:
		rec.Category = DiscrepancyCategoryMismatched
	default:
		return DiscrepancyRecord{}, false
	}
	rec.PrimaryHours = pHours
	rec.SecondaryHours = sHours
	rec.Difference = pHours - sHours
	return rec, true
}

type annotationKey struct {
	identifier string
	category   DiscrepancyCategory
	badge      string
}

// ReattachAnnotations merges reviewer fields from a prior discrepancy set
// into freshly classified rows, keyed by (identifier, category). Invalid
// identifier rows all share the empty identifier, so the raw badge text
// participates in the key to keep them distinct. Prior entries with no
// matching recomputed row are discarded; new rows keep empty reviewer
// fields.
func ReattachAnnotations(current []DiscrepancyRecord, prior []DiscrepancyRecord) {
	if len(prior) == 0 {
		return
	}
	byKey := make(map[annotationKey]*DiscrepancyRecord, len(prior))
	for i := range prior {
		p := &prior[i]
		byKey[annotationKey{p.Identifier, p.Category, p.RawIdentifierText}] = p
	}
	for i := range current {
		c := &current[i]
		p, ok := byKey[annotationKey{c.Identifier, c.Category, c.RawIdentifierText}]
		if !ok {
			continue
		}
		c.Status = p.Status
		c.Override = p.Override
		if p.Note != "" {
			c.Note = p.Note
		}
	}
}

// CategoryTallies counts discrepancies per category.
func CategoryTallies(records []DiscrepancyRecord) map[DiscrepancyCategory]int {
	tallies := map[DiscrepancyCategory]int{
		DiscrepancyCategoryPrimaryOnly:       0,
		DiscrepancyCategorySecondaryOnly:     0,
		DiscrepancyCategoryMismatched:        0,
		DiscrepancyCategoryInvalidIdentifier: 0,
	}
	for i := range records {
		tallies[records[i].Category]++
	}
	return tallies
}
