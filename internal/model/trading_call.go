package model

import (
	"time"

	"gorm.io/datatypes"
)

type TradingCall struct {
	ID            uint           `gorm:"primarykey"`
	RawMessageID  *uint          `gorm:"null"`
	GroupLabel    string         `gorm:"not null"`
	Kind          string         `gorm:"not null"`
	Instrument    string         `gorm:"null"`
	Strike        string         `gorm:"null"`
	OptionType    string         `gorm:"null"`
	TriggerPrice  string         `gorm:"null"`
	Confidence    int            `gorm:"not null"`
	Fields        datatypes.JSON `gorm:"type:jsonb"`
	SmartStopLoss *float64       `gorm:"null"`
	SmartTarget   string         `gorm:"null"`
	ManualReview  bool           `gorm:"not null;default:false"`
	Forwarded     bool           `gorm:"not null;default:false"`
	RawText       string         `gorm:"type:text"`
	MessageSentAt time.Time      `gorm:"not null"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	RawMessage *RawMessage `gorm:"foreignKey:RawMessageID"`
}

func (TradingCall) TableName() string {
	return "trading_calls"
}

type GetTradingCallParam struct {
	GroupLabel    *string
	MinConfidence *int
	Limit         int
}
