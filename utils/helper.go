package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var thousandsCleaner = regexp.MustCompile(`[,$€£\s]`)

// ToNumber coerces a loosely typed spreadsheet cell to a float64.
// Unparsable or empty cells coerce to 0.0 — never an error. Source
// spreadsheets are irregular; a subtotal line or a stray "N/A" must not
// abort the whole report.
func ToNumber(cell any) float64 {
	switch v := cell.(type) {
	case nil:
		return 0.0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		s := thousandsCleaner.ReplaceAllString(strings.TrimSpace(v), "")
		if s == "" {
			return 0.0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0.0
		}
		return f
	default:
		return 0.0
	}
}

// CellString renders a loosely typed cell as trimmed text. Numeric cells
// keep their shortest representation (identifier columns often arrive as
// numbers from the spreadsheet engine).
func CellString(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func UniqueSlice[T comparable](slice []T) []T {
	inResult := make(map[T]bool)
	var result []T
	for _, elm := range slice {
		if _, ok := inResult[elm]; !ok {
			// if not exists in map, append it, otherwise do nothing
			inResult[elm] = true
			result = append(result, elm)
		}
	}
	return result
}

func DereferencePtr[T any](ptr *T, defaults ...T) T {
	var defaultValue T
	if len(defaults) > 0 {
		defaultValue = defaults[0]
	}
	if ptr == nil {
		return defaultValue
	}
	return *ptr
}

func NilIfEmpty[T comparable](ptr T) *T {
	var defaultZero T
	if ptr == defaultZero {
		return nil
	}
	return &ptr
}
