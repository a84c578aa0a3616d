package service

import (
	"testing"
	"time"

	"telegram-calls/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	session, err := NewSession(config.SessionConfig{
		Timezone:  "Asia/Kolkata",
		OpenTime:  "09:15",
		CloseTime: "15:30",
	})
	require.NoError(t, err)
	return session
}

func TestSession_IsOpen(t *testing.T) {
	session := newTestSession(t)
	ist, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{name: "weekday mid session", at: time.Date(2026, 8, 26, 11, 0, 0, 0, ist), want: true},
		{name: "weekday at open", at: time.Date(2026, 8, 26, 9, 15, 0, 0, ist), want: true},
		{name: "weekday before open", at: time.Date(2026, 8, 26, 9, 14, 0, 0, ist), want: false},
		{name: "weekday at close is shut", at: time.Date(2026, 8, 26, 15, 30, 0, 0, ist), want: false},
		{name: "weekday last minute", at: time.Date(2026, 8, 26, 15, 29, 59, 0, ist), want: true},
		{name: "saturday", at: time.Date(2026, 8, 29, 11, 0, 0, 0, ist), want: false},
		{name: "sunday", at: time.Date(2026, 8, 30, 11, 0, 0, 0, ist), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, session.IsOpen(tt.at))
		})
	}
}

func TestSession_IsOpen_ConvertsTimezone(t *testing.T) {
	session := newTestSession(t)

	// 05:30 UTC on a Wednesday is 11:00 IST, inside the window.
	assert.True(t, session.IsOpen(time.Date(2026, 8, 26, 5, 30, 0, 0, time.UTC)))

	// 11:00 UTC is 16:30 IST, after close.
	assert.False(t, session.IsOpen(time.Date(2026, 8, 26, 11, 0, 0, 0, time.UTC)))
}

func TestNewSession_InvalidClock(t *testing.T) {
	_, err := NewSession(config.SessionConfig{
		Timezone:  "Asia/Kolkata",
		OpenTime:  "nine fifteen",
		CloseTime: "15:30",
	})
	assert.Error(t, err)
}
