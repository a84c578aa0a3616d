package service

import (
	"time"

	"telegram-calls/config"
	"telegram-calls/pkg/utils"
)

// Session is the market-hours window. Messages outside it are stored for
// audit but never parsed or forwarded, calls seen overnight are stale by
// the next open.
type Session struct {
	location     *time.Location
	openMinutes  int
	closeMinutes int
}

func NewSession(cfg config.SessionConfig) (*Session, error) {
	open, err := utils.ParseClock(cfg.OpenTime)
	if err != nil {
		return nil, err
	}
	closeAt, err := utils.ParseClock(cfg.CloseTime)
	if err != nil {
		return nil, err
	}

	return &Session{
		location:     utils.MustLoadLocation(cfg.Timezone),
		openMinutes:  open,
		closeMinutes: closeAt,
	}, nil
}

// IsOpen reports whether t falls on a weekday inside the trading window.
func (s *Session) IsOpen(t time.Time) bool {
	local := t.In(s.location)

	switch local.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}

	minutes := local.Hour()*60 + local.Minute()
	return minutes >= s.openMinutes && minutes < s.closeMinutes
}
