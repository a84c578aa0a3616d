package parser

import (
	"regexp"
	"strconv"
	"strings"

	"telegram-calls/internal/dto"
)

// Curated instrument vocabulary, indices first. Order is priority: the
// first instrument found in the message wins.
var instruments = []string{
	// Major indices
	"BANKNIFTY", "NIFTY", "SENSEX", "FINNIFTY",
	// Individual stocks
	"IDEA", "HAL", "DIXON", "TATAELXI", "MOHASIS", "MCX",
	"RELIANCE", "TCS", "INFY", "HDFCBANK", "ICICIBANK",
	"SBIN", "BHARTIARTL", "ITC", "HINDUNILVR", "KOTAKBANK",
	"ADANIENT", "TATAMOTORS", "MARUTI", "BAJFINANCE", "LT",
}

const optionToken = `(?:\bCE\b|\bPE\b|\bCALL\b|\bPUT\b)`

// extractRule is one entry of an ordered first-match-wins cascade.
type extractRule struct {
	pattern *regexp.Regexp
	group   int
}

func (r extractRule) apply(msg string) (string, bool) {
	m := r.pattern.FindStringSubmatch(msg)
	if m == nil {
		return "", false
	}
	return m[r.group], true
}

// PE is checked before CE so that the "PE" in a put message is never
// misread as containing a call token.
var (
	putPattern  = regexp.MustCompile(`\bPE\b|\bPUT\b`)
	callPattern = regexp.MustCompile(`\bCE\b|\bCALL\b`)
)

func extractOptionType(msg string) dto.OptionType {
	if putPattern.MatchString(msg) {
		return dto.OptionTypePE
	}
	if callPattern.MatchString(msg) {
		return dto.OptionTypeCE
	}
	return ""
}

func extractInstrument(msg string) string {
	for _, instrument := range instruments {
		if strings.Contains(msg, instrument) {
			return instrument
		}
	}
	return ""
}

// instrumentStrikeRules covers "<instrument> <digits> <option>" per
// instrument, in vocabulary order.
var instrumentStrikeRules = func() []extractRule {
	rules := make([]extractRule, 0, len(instruments))
	for _, instrument := range instruments {
		rules = append(rules, extractRule{
			pattern: regexp.MustCompile(instrument + `\s+(\d{1,6})\s*` + optionToken),
			group:   1,
		})
	}
	return rules
}()

var genericStrikeRules = []extractRule{
	// Digits directly before the option token
	{regexp.MustCompile(`(\d{1,6})\s*` + optionToken), 1},
	// Option token followed by digits
	{regexp.MustCompile(optionToken + `\s+(\d{1,6})`), 1},
	// Last resort: any bare 4-6 digit token. Can collide with trigger or
	// stop-loss digits in dense messages, precedence order is the only
	// disambiguation.
	{regexp.MustCompile(`\b(\d{4,6})\b`), 1},
}

// extractStrike runs the strike cascade. The already-resolved option type
// is taken as input so extraction order stays explicit, the patterns
// themselves accept any option token.
func extractStrike(msg string, _ dto.OptionType) string {
	for _, rule := range instrumentStrikeRules {
		if strike, ok := rule.apply(msg); ok {
			return strike
		}
	}

	for _, rule := range genericStrikeRules {
		for _, m := range rule.pattern.FindAllStringSubmatch(msg, -1) {
			strike, err := strconv.Atoi(m[rule.group])
			if err != nil {
				continue
			}
			if strike >= 1 && strike <= 999999 {
				return m[rule.group]
			}
		}
	}
	return ""
}

var triggerRules = []extractRule{
	// ABV supports a dash range, e.g. "ABV 50-60"
	{regexp.MustCompile(`ABV\s+(\d+(?:\.\d+)?(?:-\d+(?:\.\d+)?)?)`), 1},
	{regexp.MustCompile(`ABOVE\s+PRICE\s+(\d+(?:\.\d+)?)`), 1},
	{regexp.MustCompile(`ABOVE\s+(\d+(?:\.\d+)?)`), 1},
	{regexp.MustCompile(`PRICE\s+(\d+(?:\.\d+)?)`), 1},
	{regexp.MustCompile(`@\s*(\d+(?:\.\d+)?)`), 1},
	{regexp.MustCompile(`AT\s+(\d+(?:\.\d+)?)`), 1},
}

var stopLossRules = []extractRule{
	{regexp.MustCompile(`SL\s+(\d+(?:\.\d+)?)`), 1},
	{regexp.MustCompile(`STOPLOSS\s+(\d+(?:\.\d+)?)`), 1},
	{regexp.MustCompile(`STOP\s+LOSS\s+(\d+(?:\.\d+)?)`), 1},
}

var targetRules = []extractRule{
	{regexp.MustCompile(`TARGET\s+([0-9+/.\-]+)`), 1},
	{regexp.MustCompile(`TGT\s+([0-9+/.\-]+)`), 1},
	{regexp.MustCompile(`TARGET:\s*([0-9+/.\-]+)`), 1},
}

func firstMatch(msg string, rules []extractRule) string {
	for _, rule := range rules {
		if value, ok := rule.apply(msg); ok {
			return value
		}
	}
	return ""
}

// extractFields runs every extractor over the normalized message. The
// extractors are independent of each other, only the option type has to be
// resolved up front.
func extractFields(msg string, optionType dto.OptionType) dto.ExtractedFields {
	return dto.ExtractedFields{
		OptionType:   optionType,
		Instrument:   extractInstrument(msg),
		Strike:       extractStrike(msg, optionType),
		TriggerPrice: firstMatch(msg, triggerRules),
		StopLoss:     firstMatch(msg, stopLossRules),
		Target:       firstMatch(msg, targetRules),
	}
}
