package model

import "time"

// RawMessage is the audit copy of every channel message we saw, kept so
// calls can be re-parsed offline after rule changes.
type RawMessage struct {
	ID         uint      `gorm:"primarykey"`
	ChatID     int64     `gorm:"not null;index"`
	MessageID  int       `gorm:"not null"`
	GroupLabel string    `gorm:"not null"`
	Text       string    `gorm:"type:text"`
	HasImage   bool      `gorm:"not null;default:false"`
	SentAt     time.Time `gorm:"not null;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (RawMessage) TableName() string {
	return "raw_messages"
}

type GetRawMessageParam struct {
	ChatID    *int64
	SentAfter *time.Time
	SentUntil *time.Time
	Limit     int
}
