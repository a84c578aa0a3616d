package repository

import (
	"telegram-calls/config"
	"telegram-calls/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	RawMessageRepo  RawMessageRepository
	TradingCallRepo TradingCallRepository
	TradingAPIRepo  TradingAPIRepository
}

func NewRepository(cfg *config.Config, db *gorm.DB, log *logger.Logger) *Repository {
	return &Repository{
		RawMessageRepo:  NewRawMessageRepository(db),
		TradingCallRepo: NewTradingCallRepository(db),
		TradingAPIRepo:  NewTradingAPIRepository(cfg, log),
	}
}
