package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmartRisk_Tiers(t *testing.T) {
	tests := []struct {
		name       string
		trigger    string
		wantSL     float64
		wantTarget string
	}{
		{name: "very low priced floor", trigger: "1", wantSL: 0.5, wantTarget: "1.75/2.25"},
		{name: "very low priced half", trigger: "2", wantSL: 1, wantTarget: "3.5/4.5"},
		{name: "low priced point stop", trigger: "5", wantSL: 4, wantTarget: "6.5/7.5"},
		{name: "mid range five points", trigger: "20", wantSL: 15, wantTarget: "27.5/32.5"},
		{name: "high priced percentage", trigger: "100", wantSL: 85, wantTarget: "122.5/137.5"},
		{name: "high priced 340", trigger: "340", wantSL: 289, wantTarget: "416.5/467.5"},
		{name: "range uses low end", trigger: "50-60", wantSL: 45, wantTarget: "57.5/62.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sl, target := SmartRisk(tt.trigger)
			require.NotNil(t, sl)
			assert.InDelta(t, tt.wantSL, *sl, 0.001)
			assert.Equal(t, tt.wantTarget, target)
		})
	}
}

func TestSmartRisk_Monotonic(t *testing.T) {
	triggers := []string{"1", "5", "20", "100"}

	prevSL := -1.0
	for _, trigger := range triggers {
		sl, target := SmartRisk(trigger)
		require.NotNil(t, sl, trigger)

		value, ok := TriggerLow(trigger)
		require.True(t, ok)

		assert.Greater(t, *sl, prevSL, "stop-loss must increase with trigger")
		assert.Less(t, *sl, value, "stop-loss must stay below trigger")
		assert.NotEmpty(t, target)
		prevSL = *sl
	}
}

func TestSmartRisk_Unparsable(t *testing.T) {
	for _, trigger := range []string{"", "ABC", "-5", "1.2.3"} {
		sl, target := SmartRisk(trigger)
		assert.Nil(t, sl, trigger)
		assert.Empty(t, target, trigger)
	}
}

func TestTriggerLow(t *testing.T) {
	tests := []struct {
		trigger string
		want    float64
		wantOK  bool
	}{
		{trigger: "340", want: 340, wantOK: true},
		{trigger: "50-60", want: 50, wantOK: true},
		{trigger: "2.5", want: 2.5, wantOK: true},
		{trigger: "", wantOK: false},
		{trigger: "N/A", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.trigger, func(t *testing.T) {
			got, ok := TriggerLow(tt.trigger)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 0.0001)
			}
		})
	}
}
