package models

// Epsilon is the tolerance for comparing hour totals across sources.
const Epsilon = 1e-6

// EmployeeHourRecord is one normalized input row, pre-aggregation.
type EmployeeHourRecord struct {
	Source            ReportSource `json:"source"`
	RawIdentifierText string       `json:"rawIdentifierText"`
	Identifier        string       `json:"identifier"`
	IdentifierValid   bool         `json:"identifierValid"`
	Name              string       `json:"name"`
	RegularHours      float64      `json:"regularHours"`
	OvertimeHours     float64      `json:"overtimeHours"`
	TotalHours        float64      `json:"totalHours"`
	// BadgeSuffix is the 3-letter badge tail, captured only when the badge
	// matched the strict pattern (Secondary source).
	BadgeSuffix string `json:"badgeSuffix,omitempty"`
	// WorkArea is the line/department label, carried for narrative output.
	WorkArea string `json:"workArea,omitempty"`
	// DayHours holds per-day-of-week hours (Primary source), used by the
	// day filter. Keys are full day names.
	DayHours map[string]float64 `json:"dayHours,omitempty"`
}

// SetHours mutates the hour components and rederives the total. TotalHours
// is never stored independently of its components.
func (r *EmployeeHourRecord) SetHours(regular, overtime float64) {
	r.RegularHours = regular
	r.OvertimeHours = overtime
	r.TotalHours = regular + overtime
}

// AggregatedEmployee is one row per source per unique identifier.
type AggregatedEmployee struct {
	Source            ReportSource `json:"source"`
	Identifier        string       `json:"identifier"`
	Name              string       `json:"name"`
	RegularHours      float64      `json:"regularHours"`
	OvertimeHours     float64      `json:"overtimeHours"`
	TotalHours        float64      `json:"totalHours"`
	RawIdentifierText string       `json:"rawIdentifierText,omitempty"`
	BadgeSuffix       string       `json:"badgeSuffix,omitempty"`
	WorkArea          string       `json:"workArea,omitempty"`
}
