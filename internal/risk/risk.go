// Package risk implements the risk scoring model for Ramspack.
// It provides the review classification bands applied to likelihood×severity
// scores and the RiskEntry type shared by RAMS documents and hazard templates.
package risk

import "fmt"

// ReviewLevel is the categorical review classification derived from a risk score.
type ReviewLevel string

// Review classification bands, lowest to highest.
const (
	ReviewVeryLow  ReviewLevel = "VERY_LOW"
	ReviewLow      ReviewLevel = "LOW"
	ReviewMedium   ReviewLevel = "MEDIUM"
	ReviewHigh     ReviewLevel = "HIGH"
	ReviewVeryHigh ReviewLevel = "VERY_HIGH"
)

// Label returns the display form of the review level.
func (r ReviewLevel) Label() string {
	switch r {
	case ReviewVeryLow:
		return "Very Low"
	case ReviewLow:
		return "Low"
	case ReviewMedium:
		return "Medium"
	case ReviewHigh:
		return "High"
	case ReviewVeryHigh:
		return "Very High"
	default:
		return string(r)
	}
}

// Classify maps a risk score to its review classification band.
// Bands are inclusive: <4 very low, 4-6 low, 7-12 medium, 13-19 high,
// >=20 very high. The function is total and monotonic over all non-negative
// integers. A negative score is a programming error and panics; validated
// inputs (likelihood and severity each in [1,5]) can never produce one.
func Classify(score int) ReviewLevel {
	if score < 0 {
		panic(fmt.Sprintf("risk: negative score %d", score))
	}

	switch {
	case score < 4:
		return ReviewVeryLow
	case score <= 6:
		return ReviewLow
	case score <= 12:
		return ReviewMedium
	case score <= 19:
		return ReviewHigh
	default:
		return ReviewVeryHigh
	}
}
