package models

import (
	"regexp"
	"strings"

	"bitbucket.org/mmdatafocus/hours_backend/utils"
)

var DayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// dayAliases maps short day spellings seen in report headers to full day
// names. Full names are matched as substrings as a fallback.
var dayAliases = map[string]string{
	"sun":   "Sunday",
	"mon":   "Monday",
	"tue":   "Tuesday",
	"tues":  "Tuesday",
	"wed":   "Wednesday",
	"thu":   "Thursday",
	"thur":  "Thursday",
	"thurs": "Thursday",
	"fri":   "Friday",
	"sat":   "Saturday",
}

// NormalizerConfig drives the single normalization path. The two report
// types differ only in configuration, not in code.
type NormalizerConfig struct {
	Source ReportSource

	// HeaderRowOffset is the zero-based row index of the header row in the
	// raw file. Consumed by the report readers, carried here so callers
	// configure one object per source.
	HeaderRowOffset int

	IdentifierKeywords []string
	NameKeywords       []string
	// HourKeywords locates the single payable-hours column (Secondary).
	HourKeywords     []string
	WorkAreaKeywords []string

	// UseDayColumns switches hour discovery to day-of-week columns with a
	// regular/overtime marker (Primary).
	UseDayColumns  bool
	OvertimeMarker *regexp.Regexp

	// BadgePrefix enables badge-scheme identity resolution (Secondary).
	// Empty means digit-run extraction from the identifying field.
	BadgePrefix string
}

// PrimaryNormalizerConfig matches the agency timesheet layout: headers on
// the 4th row, an employee-id column usually labeled "File", and per-day
// Reg/OT hour columns.
func PrimaryNormalizerConfig() NormalizerConfig {
	return NormalizerConfig{
		Source:             ReportSourcePrimary,
		HeaderRowOffset:    3,
		IdentifierKeywords: []string{"file", "eid", "employee id"},
		NameKeywords:       []string{"name"},
		WorkAreaKeywords:   []string{"line", "department", "work area"},
		UseDayColumns:      true,
		OvertimeMarker:     regexp.MustCompile(`(?i)\bot\b|\bovertime\b`),
	}
}

// SecondaryNormalizerConfig matches the client roster export: a Badge
// column encoding the employee id and a single payable-hours column.
func SecondaryNormalizerConfig() NormalizerConfig {
	return NormalizerConfig{
		Source:             ReportSourceSecondary,
		HeaderRowOffset:    0,
		IdentifierKeywords: []string{"badge"},
		NameKeywords:       []string{"name"},
		HourKeywords:       []string{"payable", "hours", "hrs"},
		WorkAreaKeywords:   []string{"line", "department", "work area"},
		BadgePrefix:        "PLX",
	}
}

// FindColumn returns the index of the first column whose header contains
// one of the keywords, case-insensitive. The absence case is an explicit
// second return, never an error: missing columns degrade to empty fields.
func FindColumn(headers []string, keywords []string) (int, bool) {
	for i, h := range headers {
		low := strings.ToLower(strings.TrimSpace(h))
		if low == "" {
			continue
		}
		for _, kw := range keywords {
			if strings.Contains(low, kw) {
				return i, true
			}
		}
	}
	return 0, false
}

type dayColumn struct {
	index    int
	day      string
	overtime bool
}

var wordSplit = regexp.MustCompile(`[^a-z]+`)

// findDayColumns discovers hour columns by day name or 3-4 letter alias
// (whole word), tagging each as regular or overtime via the marker.
func findDayColumns(headers []string, marker *regexp.Regexp) []dayColumn {
	var cols []dayColumn
	for i, h := range headers {
		low := strings.ToLower(strings.TrimSpace(h))
		if low == "" {
			continue
		}
		day := ""
		for _, word := range wordSplit.Split(low, -1) {
			if d, ok := dayAliases[word]; ok {
				day = d
				break
			}
		}
		if day == "" {
			for _, d := range DayNames {
				if strings.Contains(low, strings.ToLower(d)) {
					day = d
					break
				}
			}
		}
		if day == "" {
			continue
		}
		cols = append(cols, dayColumn{index: i, day: day, overtime: marker != nil && marker.MatchString(h)})
	}
	return cols
}

// Normalize converts a raw table into EmployeeHourRecords per the config.
// The only hard failure is an empty table; every malformed cell degrades.
func (cfg NormalizerConfig) Normalize(table *RawTable) ([]EmployeeHourRecord, error) {
	if table.IsEmpty() {
		return nil, NewInputError(strings.ToLower(string(cfg.Source)) + " report has no data rows after header removal")
	}

	idCol, idFound := FindColumn(table.Headers, cfg.IdentifierKeywords)
	nameCol, nameFound := FindColumn(table.Headers, cfg.NameKeywords)
	areaCol, areaFound := FindColumn(table.Headers, cfg.WorkAreaKeywords)

	var hourCol int
	hourFound := false
	var dayCols []dayColumn
	if cfg.UseDayColumns {
		dayCols = findDayColumns(table.Headers, cfg.OvertimeMarker)
	} else {
		hourCol, hourFound = FindColumn(table.Headers, cfg.HourKeywords)
	}

	records := make([]EmployeeHourRecord, 0, len(table.Rows))
	for i := range table.Rows {
		rec := EmployeeHourRecord{Source: cfg.Source}

		if idFound {
			rec.RawIdentifierText = utils.CellString(table.Cell(i, idCol))
		}
		if nameFound {
			rec.Name = utils.CellString(table.Cell(i, nameCol))
		}
		if areaFound {
			rec.WorkArea = utils.CellString(table.Cell(i, areaCol))
		}

		if cfg.BadgePrefix != "" {
			rec.Identifier, rec.BadgeSuffix, rec.IdentifierValid = ExtractBadgeIdentifier(rec.RawIdentifierText, cfg.BadgePrefix)
		} else {
			rec.Identifier = NormalizeIdentifier(rec.RawIdentifierText)
			rec.IdentifierValid = rec.Identifier != ""
		}

		if cfg.UseDayColumns {
			var reg, ot float64
			for _, dc := range dayCols {
				v := utils.ToNumber(table.Cell(i, dc.index))
				if dc.overtime {
					ot += v
				} else {
					reg += v
				}
				if v != 0 {
					if rec.DayHours == nil {
						rec.DayHours = map[string]float64{}
					}
					rec.DayHours[dc.day] += v
				}
			}
			rec.SetHours(reg, ot)
		} else if hourFound {
			rec.SetHours(utils.ToNumber(table.Cell(i, hourCol)), 0)
		} else {
			rec.SetHours(0, 0)
		}

		// Subtotal/footer noise: no identifying text and no hours.
		if rec.RawIdentifierText == "" && rec.TotalHours == 0 {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
