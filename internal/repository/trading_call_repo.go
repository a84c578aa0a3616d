package repository

import (
	"context"
	"time"

	"telegram-calls/internal/model"

	"gorm.io/gorm"
)

type TradingCallRepository interface {
	Create(ctx context.Context, call *model.TradingCall) error
	Get(ctx context.Context, param model.GetTradingCallParam) ([]model.TradingCall, error)
	MarkForwarded(ctx context.Context, id uint) error
	DeleteLowConfidenceOlderThan(ctx context.Context, maxConfidence int, cutoff time.Time) (int64, error)
}

type tradingCallRepository struct {
	db *gorm.DB
}

func NewTradingCallRepository(db *gorm.DB) TradingCallRepository {
	return &tradingCallRepository{db: db}
}

func (r *tradingCallRepository) Create(ctx context.Context, call *model.TradingCall) error {
	return r.db.WithContext(ctx).Create(call).Error
}

func (r *tradingCallRepository) Get(ctx context.Context, param model.GetTradingCallParam) ([]model.TradingCall, error) {
	var calls []model.TradingCall

	query := r.db.WithContext(ctx)
	if param.GroupLabel != nil {
		query = query.Where("group_label = ?", *param.GroupLabel)
	}
	if param.MinConfidence != nil {
		query = query.Where("confidence >= ?", *param.MinConfidence)
	}
	if param.Limit > 0 {
		query = query.Limit(param.Limit)
	}

	if err := query.Order("message_sent_at DESC").Find(&calls).Error; err != nil {
		return nil, err
	}
	return calls, nil
}

func (r *tradingCallRepository) MarkForwarded(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&model.TradingCall{}).
		Where("id = ?", id).
		Update("forwarded", true).Error
}

func (r *tradingCallRepository) DeleteLowConfidenceOlderThan(ctx context.Context, maxConfidence int, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("confidence < ? AND message_sent_at < ?", maxConfidence, cutoff).
		Delete(&model.TradingCall{})
	return result.RowsAffected, result.Error
}
