package dto

import "time"

type OptionType string

const (
	OptionTypePE OptionType = "PE"
	OptionTypeCE OptionType = "CE"
)

type CallKind string

const (
	CallKindText  CallKind = "TEXT"
	CallKindImage CallKind = "IMAGE"
)

// Confidence tiers used by the caller to decide what happens to a call.
// The scorer only produces the number.
const (
	ConfidenceHigh   = 70
	ConfidenceMedium = 50
	ConfidenceLow    = 40
)

// InputMessage is the uniform view of a chat message handed to the parser.
// Text carries the caption when the message is an image.
type InputMessage struct {
	Text      string
	HasImage  bool
	Timestamp time.Time
	MessageID int
	ChatID    int64
}

// ExtractedFields holds what the extractors could pull out of one message.
// Empty string means the field was not found; that is never an error.
type ExtractedFields struct {
	OptionType   OptionType `json:"option_type,omitempty"`
	Instrument   string     `json:"instrument,omitempty"`
	Strike       string     `json:"strike,omitempty"`
	TriggerPrice string     `json:"trigger_price,omitempty"`
	StopLoss     string     `json:"stop_loss,omitempty"`
	Target       string     `json:"target,omitempty"`
}

// EssentialCount reports how many of instrument, strike and trigger price
// are present. Three means a fully specified call.
func (f ExtractedFields) EssentialCount() int {
	count := 0
	for _, v := range []string{f.Instrument, f.Strike, f.TriggerPrice} {
		if v != "" {
			count++
		}
	}
	return count
}

// ParsedCall is the result envelope for one detected call. It has no
// identity beyond a single pipeline run.
type ParsedCall struct {
	Kind                 CallKind        `json:"kind"`
	Fields               ExtractedFields `json:"fields"`
	Confidence           int             `json:"confidence"`
	RequiresManualReview bool            `json:"requires_manual_review"`
	SmartStopLoss        *float64        `json:"smart_stop_loss,omitempty"`
	SmartTarget          string          `json:"smart_target,omitempty"`
	RawText              string          `json:"raw_text"`
	Timestamp            time.Time       `json:"timestamp"`
	MessageID            int             `json:"message_id"`
}
