package models

// RawTable is a loosely typed tabular input as handed over by the report
// readers: one ordered header row plus data rows whose cells may be text,
// numbers or nil. The engine never reads files itself.
type RawTable struct {
	Headers []string
	Rows    [][]any
}

func (t *RawTable) IsEmpty() bool {
	return t == nil || len(t.Rows) == 0
}

// Cell returns the cell at (row, col), nil when the row is ragged.
func (t *RawTable) Cell(row, col int) any {
	if col < 0 || col >= len(t.Rows[row]) {
		return nil
	}
	return t.Rows[row][col]
}

// InputError is the engine's only hard failure: raised when a raw table is
// missing or empty after header removal. Everything else degrades leniently.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return e.Reason
}

func NewInputError(reason string) *InputError {
	return &InputError{Reason: reason}
}
