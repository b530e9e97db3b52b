package models

import (
	"math/rand"
	"testing"
)

func hourRec(id, name string, reg, ot float64) EmployeeHourRecord {
	rec := EmployeeHourRecord{
		Source:            ReportSourcePrimary,
		RawIdentifierText: id,
		Identifier:        id,
		IdentifierValid:   id != "",
		Name:              name,
	}
	rec.SetHours(reg, ot)
	return rec
}

func TestAggregate_SumsPerIdentifier(t *testing.T) {
	records := []EmployeeHourRecord{
		hourRec("123", "Ada", 8, 1),
		hourRec("123", "", 8.5, 0),
		hourRec("456", "Grace", 40, 0),
		hourRec("", "subtotal", 99, 0), // empty identifier excluded
	}
	aggs := Aggregate(records)
	if len(aggs) != 2 {
		t.Fatalf("expected 2 aggregates, got %d", len(aggs))
	}
	a := aggs[0]
	if a.Identifier != "123" || a.RegularHours != 16.5 || a.OvertimeHours != 1 || a.TotalHours != 17.5 {
		t.Fatalf("aggregate 123: %+v", a)
	}
	if a.Name != "Ada" {
		t.Fatalf("expected first non-empty name, got %q", a.Name)
	}
}

func TestAggregate_FirstNonEmptyNameWins(t *testing.T) {
	records := []EmployeeHourRecord{
		hourRec("123", "", 8, 0),
		hourRec("123", "Ada", 8, 0),
		hourRec("123", "A. Lovelace", 8, 0),
	}
	aggs := Aggregate(records)
	if aggs[0].Name != "Ada" {
		t.Fatalf("expected Ada, got %q", aggs[0].Name)
	}
}

func TestAggregate_OrderIndependent(t *testing.T) {
	records := []EmployeeHourRecord{
		hourRec("1", "A", 1, 0),
		hourRec("2", "B", 2, 0.5),
		hourRec("1", "", 3, 0),
		hourRec("3", "C", 4, 1),
		hourRec("2", "", 5, 0),
	}

	base := Aggregate(records)
	baseByID := map[string]AggregatedEmployee{}
	for _, a := range base {
		baseByID[a.Identifier] = a
	}

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 20; trial++ {
		shuffled := append([]EmployeeHourRecord(nil), records...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		got := Aggregate(shuffled)
		if len(got) != len(base) {
			t.Fatalf("trial %d: aggregate count changed: %d vs %d", trial, len(got), len(base))
		}
		for _, a := range got {
			want := baseByID[a.Identifier]
			if a.RegularHours != want.RegularHours || a.OvertimeHours != want.OvertimeHours || a.TotalHours != want.TotalHours {
				t.Fatalf("trial %d: %s hours changed under permutation: %+v vs %+v", trial, a.Identifier, a, want)
			}
		}
	}
}
