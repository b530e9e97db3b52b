package models

import (
	"regexp"
	"strings"
)

var (
	nonDigits   = regexp.MustCompile(`[^0-9]`)
	looseDigits = regexp.MustCompile(`[0-9]{3,}`)
)

// NormalizeIdentifier strips a raw identifying field down to its digits.
// Returns "" when nothing numeric is left.
func NormalizeIdentifier(raw string) string {
	return nonDigits.ReplaceAllString(strings.TrimSpace(raw), "")
}

// badgePattern matches the structured Secondary badge: PREFIX-<digits>-<3
// letters>, case-insensitive. The prefix is configurable per source.
func badgePattern(prefix string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(prefix) + `-([0-9]+)-([A-Za-z]{3})$`)
}

// ExtractBadgeIdentifier resolves a badge string to (identifier, suffix,
// valid). On a strict pattern match the digit group and uppercased 3-letter
// suffix are returned with valid=true. Otherwise the first run of 3+ digits
// anywhere in the badge is taken as a best-effort identifier with
// valid=false, so the row surfaces for review instead of silently dropping.
func ExtractBadgeIdentifier(badge string, prefix string) (identifier string, suffix string, valid bool) {
	trimmed := strings.TrimSpace(badge)
	if trimmed == "" {
		return "", "", false
	}
	if m := badgePattern(prefix).FindStringSubmatch(trimmed); m != nil {
		return m[1], strings.ToUpper(m[2]), true
	}
	if d := looseDigits.FindString(trimmed); d != "" {
		return d, "", false
	}
	return "", "", false
}
