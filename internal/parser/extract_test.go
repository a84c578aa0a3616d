package parser

import (
	"testing"

	"telegram-calls/internal/dto"

	"github.com/stretchr/testify/assert"
)

func TestExtractOptionType(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want dto.OptionType
	}{
		{name: "word bounded PE", msg: "NIFTY 25000 PE ABV 100", want: dto.OptionTypePE},
		{name: "PUT keyword", msg: "BANKNIFTY 55600 PUT ABOVE 340", want: dto.OptionTypePE},
		{name: "word bounded CE", msg: "SENSEX 83000 CE ABV 50", want: dto.OptionTypeCE},
		{name: "CALL keyword", msg: "BUY NIFTY CALL 25000", want: dto.OptionTypeCE},
		{name: "PE wins when both present", msg: "25000 PE 26000 CE", want: dto.OptionTypePE},
		{name: "PE inside word does not match", msg: "OPEN INTEREST RISING", want: ""},
		{name: "CE inside word does not match", msg: "NICE MOVE TODAY", want: ""},
		{name: "no token", msg: "120 FIRE", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractOptionType(tt.msg))
		})
	}
}

func TestExtractInstrument(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want string
	}{
		{name: "index", msg: "BANKNIFTY 55600 PUT", want: "BANKNIFTY"},
		// BANKNIFTY contains NIFTY, list order decides
		{name: "banknifty before nifty", msg: "BANKNIFTY CALL", want: "BANKNIFTY"},
		{name: "equity", msg: "IDEA 9 PE ABV 2", want: "IDEA"},
		{name: "none", msg: "25000 CE ABV 100", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractInstrument(tt.msg))
		})
	}
}

func TestExtractStrike(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want string
	}{
		{name: "instrument strike option", msg: "BANKNIFTY 55600 PUT ABOVE 340", want: "55600"},
		{name: "digits before option", msg: "BUY 45000 CE ABV 100", want: "45000"},
		{name: "option then digits", msg: "BUY CE 45000 NOW PLEASE", want: "45000"},
		{name: "bare digits fallback", msg: "NIFTY PE ABOVE 25100", want: "25100"},
		{name: "single digit strike near option", msg: "IDEA 9 PE ABV 2", want: "9"},
		{name: "no digits", msg: "NIFTY PE WAIT", want: ""},
		{name: "seven digit run ignored by fallback", msg: "NIFTY PE REF 1234567", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractStrike(tt.msg, dto.OptionTypePE))
		})
	}
}

func TestExtractTriggerStopLossTarget(t *testing.T) {
	tests := []struct {
		name        string
		msg         string
		wantTrigger string
		wantSL      string
		wantTarget  string
	}{
		{
			name:        "abv range with sl and target",
			msg:         "SENSEX 81400 PE ABV 50-60 SL 40 TARGET 80/100",
			wantTrigger: "50-60",
			wantSL:      "40",
			wantTarget:  "80/100",
		},
		{
			name:        "above price",
			msg:         "BANKNIFTY 55600 PUT ABOVE PRICE 340",
			wantTrigger: "340",
		},
		{
			name:        "above plain",
			msg:         "NIFTY 25100 PUT ABOVE 20",
			wantTrigger: "20",
		},
		{
			name:        "stop loss spelled out",
			msg:         "BUY 45000 CE ABV 100 STOP LOSS 80 TGT 150",
			wantTrigger: "100",
			wantSL:      "80",
			wantTarget:  "150",
		},
		{
			name:        "decimal trigger",
			msg:         "IDEA 9 PE ABV 2.5",
			wantTrigger: "2.5",
		},
		{
			name:       "target with colon",
			msg:        "NIFTY 25000 CE TARGET: 120+",
			wantTarget: "120+",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantTrigger, firstMatch(tt.msg, triggerRules), "trigger")
			assert.Equal(t, tt.wantSL, firstMatch(tt.msg, stopLossRules), "stop loss")
			assert.Equal(t, tt.wantTarget, firstMatch(tt.msg, targetRules), "target")
		})
	}
}
