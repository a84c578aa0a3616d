package dto

// TipRequest is the payload accepted by the downstream trading API.
type TipRequest struct {
	Instrument TipInstrument `json:"instrument"`
	Price      float64       `json:"price"`
	StopLoss   float64       `json:"stopLoss"`
	Target     string        `json:"target"`
	Confidence int           `json:"confidence"`
	Type       string        `json:"type"`
}

type TipInstrument struct {
	Name           string `json:"name"`
	Strike         string `json:"strike"`
	InstrumentType string `json:"instrumentType"`
}
