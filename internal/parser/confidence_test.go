package parser

import (
	"testing"

	"telegram-calls/internal/dto"

	"github.com/stretchr/testify/assert"
)

func TestScoreConfidence(t *testing.T) {
	tests := []struct {
		name   string
		msg    string
		fields dto.ExtractedFields
		want   int
	}{
		{
			name: "fully specified call",
			msg:  "BANKNIFTY 55600 PUT ABOVE 340",
			fields: dto.ExtractedFields{
				OptionType:   dto.OptionTypePE,
				Instrument:   "BANKNIFTY",
				Strike:       "55600",
				TriggerPrice: "340",
			},
			// 60 essential + 10 instrument + 12 entry + 10 option
			want: 92,
		},
		{
			name: "two essential fields short message",
			msg:  "9 PE ABV 2",
			fields: dto.ExtractedFields{
				OptionType:   dto.OptionTypePE,
				Strike:       "9",
				TriggerPrice: "2",
			},
			// 45 + 12 + 10 - 25 short
			want: 42,
		},
		{
			name:   "nothing extracted",
			msg:    "SOMETHING ABOUT MARKETS TODAY",
			fields: dto.ExtractedFields{},
			// 10 base - 35 no option keyword - 20 sparse, floored at 0
			want: 0,
		},
		{
			name: "secondary bonuses capped below high tier",
			msg:  "NIFTY 25000 PE SL 180 TARGET 200/250 SURESHOT",
			fields: dto.ExtractedFields{
				OptionType: dto.OptionTypePE,
				Instrument: "NIFTY",
				Strike:     "25000",
				StopLoss:   "180",
				Target:     "200/250",
			},
			// 45 + 10 + 8 + 8 + 10 + 8 = 89, clamped to 69
			want: 69,
		},
		{
			name: "hype bonus on full call clamps at 100",
			msg:  "ZERO HERO SENSEX 83000 CE ABV 50-60 SL 40 TARGET 80 SURESHOT",
			fields: dto.ExtractedFields{
				OptionType:   dto.OptionTypeCE,
				Instrument:   "SENSEX",
				Strike:       "83000",
				TriggerPrice: "50-60",
				StopLoss:     "40",
				Target:       "80",
			},
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scoreConfidence(tt.msg, tt.fields))
		})
	}
}
