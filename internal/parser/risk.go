package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TriggerLow parses the effective trigger magnitude out of an extracted
// trigger price, taking the low end of a dash range like "50-60".
func TriggerLow(trigger string) (float64, bool) {
	if trigger == "" {
		return 0, false
	}
	low, _, _ := strings.Cut(trigger, "-")
	value, err := strconv.ParseFloat(low, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// SmartRisk derives a price-tiered stop-loss and two risk-reward target
// levels from the trigger price. An absent or unparsable trigger yields no
// values, never an error: malformed numbers are routine in free text.
func SmartRisk(trigger string) (*float64, string) {
	value, ok := TriggerLow(trigger)
	if !ok {
		return nil, ""
	}

	var stopLoss float64
	switch {
	case value <= 2:
		// 50% stop for very low priced options, floored at 0.5
		stopLoss = math.Max(0.5, value*0.5)
	case value <= 10:
		stopLoss = value - 1
	case value <= 50:
		stopLoss = value - 5
	default:
		stopLoss = value - value*0.15
	}

	risk := value - stopLoss
	target1 := round2(value + risk*1.5)
	target2 := round2(value + risk*2.5)

	stopLoss = round2(stopLoss)
	return &stopLoss, fmt.Sprintf("%s/%s", formatPrice(target1), formatPrice(target2))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// formatPrice renders without trailing zeros, "416.5" not "416.50".
func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
