package telegram

import (
	"fmt"
	"strings"

	"telegram-calls/internal/dto"
	"telegram-calls/pkg/utils"
)

// FormatCallForTelegram renders a detected call as the Markdown summary
// forwarded to subscriber chats.
func FormatCallForTelegram(groupLabel string, call *dto.ParsedCall) string {
	var builder strings.Builder

	emoji := "📈"
	if call.Fields.OptionType == dto.OptionTypePE {
		emoji = "📉"
	}

	name := call.Fields.Instrument
	if name == "" {
		name = "?"
	}

	builder.WriteString(fmt.Sprintf("%s [%s] %s %s %s\n",
		emoji, groupLabel, name, call.Fields.Strike, call.Fields.OptionType))

	if call.Fields.TriggerPrice != "" {
		builder.WriteString(fmt.Sprintf("🎯 Entry above: %s\n", call.Fields.TriggerPrice))
	}
	if call.SmartStopLoss != nil {
		builder.WriteString(fmt.Sprintf("⚠️ Stop loss: %.2f\n", *call.SmartStopLoss))
	}
	if call.SmartTarget != "" {
		builder.WriteString(fmt.Sprintf("💰 Targets: %s\n", call.SmartTarget))
	}
	if call.RequiresManualReview {
		builder.WriteString("👀 Image call, manual review needed\n")
	}

	builder.WriteString(fmt.Sprintf("Confidence: %d%%\n", call.Confidence))
	builder.WriteString(utils.PrettyDate(call.Timestamp))
	return builder.String()
}
