package parser

import (
	"strings"
	"unicode/utf8"

	"telegram-calls/internal/dto"
)

var (
	entryKeywords  = []string{"ABV", "ABOVE", "AT", "@"}
	optionKeywords = []string{"CE", "PE", "CALL", "PUT"}
)

func containsAny(msg string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(msg, keyword) {
			return true
		}
	}
	return false
}

// scoreConfidence turns extractor output into a 0-100 score. The number
// expresses extraction completeness, not probability. High confidence is
// reserved for fully specified calls: any score reaching 70 without all
// three essential fields is capped at 69.
func scoreConfidence(msg string, fields dto.ExtractedFields) int {
	confidence := 0
	essential := fields.EssentialCount()

	switch essential {
	case 3:
		confidence += 60
	case 2:
		confidence += 45
	case 1:
		confidence += 25
	default:
		confidence += 10
	}

	if fields.Instrument != "" {
		confidence += 10
	}
	if fields.StopLoss != "" {
		confidence += 8
	}
	if fields.Target != "" {
		confidence += 8
	}

	if containsAny(msg, entryKeywords) {
		confidence += 12
	}
	if containsAny(msg, optionKeywords) {
		confidence += 10
	}

	// Hype boosts are small on purpose, rewarding spam phrasing too much
	// would defeat the spam filter.
	if strings.Contains(msg, "ZERO HERO") {
		confidence += 15
	}
	if strings.Contains(msg, "SURESHOT") || strings.Contains(msg, "100%") {
		confidence += 8
	}

	if utf8.RuneCountInString(strings.TrimSpace(msg)) < 15 {
		confidence -= 25
	}
	if !containsAny(msg, optionKeywords) {
		confidence -= 35
	}
	if essential < 2 {
		confidence -= 20
	}

	if confidence >= dto.ConfidenceHigh && essential < 3 {
		confidence = dto.ConfidenceHigh - 1
	}

	if confidence < 0 {
		return 0
	}
	if confidence > 100 {
		return 100
	}
	return confidence
}
