package models

// Aggregate groups records by identifier within one source and sums their
// hour fields. Empty identifiers are excluded (those rows are handled by
// the invalid-identifier path of the classifier). Output order is the
// first-seen order of each identifier; the name and narrative fields keep
// the first non-empty value encountered, so the operation is commutative
// over hour values and stable over the carried text.
func Aggregate(records []EmployeeHourRecord) []AggregatedEmployee {
	byID := make(map[string]*AggregatedEmployee)
	var order []string

	for i := range records {
		rec := &records[i]
		if rec.Identifier == "" {
			continue
		}
		agg, ok := byID[rec.Identifier]
		if !ok {
			agg = &AggregatedEmployee{Source: rec.Source, Identifier: rec.Identifier}
			byID[rec.Identifier] = agg
			order = append(order, rec.Identifier)
		}
		agg.RegularHours += rec.RegularHours
		agg.OvertimeHours += rec.OvertimeHours
		agg.TotalHours = agg.RegularHours + agg.OvertimeHours
		if agg.Name == "" {
			agg.Name = rec.Name
		}
		if agg.RawIdentifierText == "" {
			agg.RawIdentifierText = rec.RawIdentifierText
		}
		if agg.BadgeSuffix == "" {
			agg.BadgeSuffix = rec.BadgeSuffix
		}
		if agg.WorkArea == "" {
			agg.WorkArea = rec.WorkArea
		}
	}

	out := make([]AggregatedEmployee, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	return out
}
