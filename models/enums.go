package models

import "errors"

type ReportSource string

const (
	ReportSourcePrimary   ReportSource = "Primary"
	ReportSourceSecondary ReportSource = "Secondary"
)

type DiscrepancyCategory string

const (
	DiscrepancyCategoryPrimaryOnly       DiscrepancyCategory = "PrimaryOnly"
	DiscrepancyCategorySecondaryOnly     DiscrepancyCategory = "SecondaryOnly"
	DiscrepancyCategoryMismatched        DiscrepancyCategory = "Mismatched"
	DiscrepancyCategoryInvalidIdentifier DiscrepancyCategory = "InvalidIdentifier"
)

// convert input to enum type
func ParseDiscrepancyCategory(str string) (DiscrepancyCategory, error) {
	switch str {
	case "PrimaryOnly":
		return DiscrepancyCategoryPrimaryOnly, nil
	case "SecondaryOnly":
		return DiscrepancyCategorySecondaryOnly, nil
	case "Mismatched":
		return DiscrepancyCategoryMismatched, nil
	case "InvalidIdentifier":
		return DiscrepancyCategoryInvalidIdentifier, nil
	default:
		return "", errors.New("invalid discrepancy category")
	}
}

// ReviewStatus is reviewer-assigned. The empty status means unreviewed.
type ReviewStatus string

const (
	ReviewStatusNone                       ReviewStatus = ""
	ReviewStatusResolved                   ReviewStatus = "Resolved"
	ReviewStatusPrimaryError               ReviewStatus = "PrimaryError"
	ReviewStatusSecondaryError             ReviewStatus = "SecondaryError"
	ReviewStatusIdentifierCorrectionNeeded ReviewStatus = "IdentifierCorrectionNeeded"
)

func ParseReviewStatus(str string) (ReviewStatus, error) {
	switch str {
	case "":
		return ReviewStatusNone, nil
	case "Resolved":
		return ReviewStatusResolved, nil
	case "PrimaryError":
		return ReviewStatusPrimaryError, nil
	case "SecondaryError":
		return ReviewStatusSecondaryError, nil
	case "IdentifierCorrectionNeeded":
		return ReviewStatusIdentifierCorrectionNeeded, nil
	default:
		return "", errors.New("invalid review status")
	}
}
