// Package parser implements the trading-call detection pipeline: spam
// filtering, field extraction, confidence scoring and derived risk values.
// Everything in here is pure and stateless, the only shared data is the
// read-only pattern tables, so a single Parser is safe for concurrent use.
package parser

import (
	"strings"

	"telegram-calls/internal/dto"
)

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// Classify decides whether a message encodes a trading call and extracts
// its structure. It returns nil for anything that is not a call: spam, text
// without an option token, scores below the detection threshold. It is a
// total function, adversarial input degrades to empty fields rather than
// errors, and the same input always yields the same result.
func (p *Parser) Classify(msg dto.InputMessage) *dto.ParsedCall {
	if msg.HasImage {
		return p.classifyImage(msg)
	}

	if strings.TrimSpace(msg.Text) == "" {
		return nil
	}

	call := p.classifyText(msg.Text, msg)
	if call == nil {
		return nil
	}

	// Smart risk values are only attached on the text path, image captions
	// keep the raw extracted fields.
	call.SmartStopLoss, call.SmartTarget = SmartRisk(call.Fields.TriggerPrice)
	return call
}

func (p *Parser) classifyText(text string, msg dto.InputMessage) *dto.ParsedCall {
	norm := normalize(text)
	if norm == "" {
		return nil
	}

	if isTextSpam(norm) {
		return nil
	}

	// No option side token, no call. This gate runs before any other
	// extractor.
	optionType := extractOptionType(norm)
	if optionType == "" {
		return nil
	}

	fields := extractFields(norm, optionType)
	confidence := scoreConfidence(norm, fields)
	if confidence < dto.ConfidenceLow {
		return nil
	}

	return &dto.ParsedCall{
		Kind:       dto.CallKindText,
		Fields:     fields,
		Confidence: confidence,
		RawText:    text,
		Timestamp:  msg.Timestamp,
		MessageID:  msg.MessageID,
	}
}

func (p *Parser) classifyImage(msg dto.InputMessage) *dto.ParsedCall {
	caption := msg.Text

	if isImageSpam(normalize(caption)) {
		return nil
	}

	// Only a truly absent caption gets this fallback, a whitespace caption
	// takes the caption path below and fails there like any other caption
	// without structure.
	if caption == "" {
		// Nothing to extract without OCR, which is out of scope. Flag for
		// manual review at floor confidence.
		return &dto.ParsedCall{
			Kind:                 dto.CallKindImage,
			Confidence:           30,
			RequiresManualReview: true,
			RawText:              caption,
			Timestamp:            msg.Timestamp,
			MessageID:            msg.MessageID,
		}
	}

	// A caption with no extractable structure is not a usable image call.
	call := p.classifyText(caption, msg)
	if call == nil {
		return nil
	}

	call.Kind = dto.CallKindImage
	call.Confidence = min(85, call.Confidence+10)
	call.RequiresManualReview = false
	return call
}
