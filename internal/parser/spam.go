package parser

import (
	"regexp"
	"strings"
)

// Promotional tokens that disqualify a plain-text message outright.
var textSpamIndicators = []string{
	"OFFER", "LIFETIME", "JOIN", "PREMIUM", "COURSE",
	"QUERY", "CONTACT", "HTTPS://", "HTTP://", "@",
	"SUBSCRIBE", "MEMBER", "PAYMENT", "DISCOUNT",
}

// Profit-announcement phrasing. "PROFIT" alone is fine in a call context,
// together with a celebration it is a brag, not a call.
var celebrationPhrases = []string{"KARA DIYA", "PARTY KARO"}

// Pure hype: a number followed only by celebratory symbols.
var hypeOnlyPattern = regexp.MustCompile(`^\d+[🔥💥🎉]+$`)

// Image captions use different promotional phrasing than text calls, so
// they get their own indicator list and pattern set.
var imageSpamIndicators = []string{
	"ZERO TO HERO", "PROFIT", "TIMES", "JACKPOT", "SURESHOT",
	"MAHA", "HIGH OF", "🔥", "💎", "🚀", "HERO", "BIG",
	"WAIT FOR TRIGGER", "BOOK PROFIT", "RETURN", "DURATION",
	"ENTRY DATE", "EXIT DATE", "ENTRY PRICE", "EXIT PRICE",
	"TAP TO SEE", "STOCK DETAILS", "NEW SHORT TERM", "RECOMMENDATION",
}

var imagePromoPatterns = []*regexp.Regexp{
	regexp.MustCompile(`ZERO\s+TO\s+HERO`),
	regexp.MustCompile(`PROFIT.*\d+.*TIMES`),
	regexp.MustCompile(`MAHA.*JACKPOT`),
	regexp.MustCompile(`SURESHOT.*CALL`),
	regexp.MustCompile(`HIGH OF \d+`),
	regexp.MustCompile(`BOOK PROFIT.*:`),
	regexp.MustCompile(`RETURN.*\d+%`),
	regexp.MustCompile(`DURATION.*MINUTES?`),
	regexp.MustCompile(`ENTRY.*DATE.*EXIT.*DATE`),
	regexp.MustCompile(`TAP TO SEE`),
}

// isTextSpam reports whether a normalized text message is promotional noise.
func isTextSpam(msg string) bool {
	for _, indicator := range textSpamIndicators {
		if strings.Contains(msg, indicator) {
			return true
		}
	}

	if strings.Contains(msg, "PROFIT") {
		for _, phrase := range celebrationPhrases {
			if strings.Contains(msg, phrase) {
				return true
			}
		}
	}

	return hypeOnlyPattern.MatchString(msg)
}

// isImageSpam reports whether a normalized image caption is promotional.
// A single indicator is tolerated since legitimate calls borrow hype words,
// two or more means the caption is an ad.
func isImageSpam(caption string) bool {
	if caption == "" {
		return false
	}

	count := 0
	for _, indicator := range imageSpamIndicators {
		if strings.Contains(caption, indicator) {
			count++
		}
	}
	if count >= 2 {
		return true
	}

	for _, pattern := range imagePromoPatterns {
		if pattern.MatchString(caption) {
			return true
		}
	}
	return false
}
