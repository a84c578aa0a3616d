package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTextSpam(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want bool
	}{
		{name: "promotional token", msg: "LIFETIME OFFER JOIN NOW", want: true},
		{name: "url", msg: "NIFTY CALLS HTTPS://EXAMPLE.COM", want: true},
		{name: "handle", msg: "DM @TRADER FOR CALLS", want: true},
		{name: "profit with celebration", msg: "KARA DIYA 80,000 PROFIT", want: true},
		{name: "profit alone is not spam", msg: "BOOKED PROFIT ON NIFTY PE", want: false},
		{name: "hype only number", msg: "120🔥🔥", want: true},
		{name: "plain call", msg: "BANKNIFTY 55600 PUT ABOVE 340", want: false},
		{name: "empty", msg: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTextSpam(tt.msg))
		})
	}
}

func TestIsImageSpam(t *testing.T) {
	tests := []struct {
		name    string
		caption string
		want    bool
	}{
		{name: "two indicators", caption: "MAHA JACKPOT CALL TODAY", want: true},
		{name: "celebratory emoji pair", caption: "🔥 BIG MOVE LOADING", want: true},
		{name: "promo pattern zero to hero", caption: "ZERO TO HERO TRADE", want: true},
		{name: "profit times pattern", caption: "PROFIT 5 TIMES IN A WEEK", want: true},
		{name: "duration pattern", caption: "DURATION 15 MINUTES", want: true},
		{name: "single hype word passes", caption: "BUY ZERO HERO SENSEX 83000 CE ABV 50-60", want: false},
		{name: "plain caption", caption: "SENSEX 83000 CE ABV 50", want: false},
		{name: "empty caption", caption: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isImageSpam(tt.caption))
		})
	}
}
