package repository

import (
	"context"
	"time"

	"telegram-calls/internal/model"

	"gorm.io/gorm"
)

type RawMessageRepository interface {
	Create(ctx context.Context, msg *model.RawMessage) error
	Get(ctx context.Context, param model.GetRawMessageParam) ([]model.RawMessage, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type rawMessageRepository struct {
	db *gorm.DB
}

func NewRawMessageRepository(db *gorm.DB) RawMessageRepository {
	return &rawMessageRepository{db: db}
}

func (r *rawMessageRepository) Create(ctx context.Context, msg *model.RawMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *rawMessageRepository) Get(ctx context.Context, param model.GetRawMessageParam) ([]model.RawMessage, error) {
	var messages []model.RawMessage

	query := r.db.WithContext(ctx)
	if param.ChatID != nil {
		query = query.Where("chat_id = ?", *param.ChatID)
	}
	if param.SentAfter != nil {
		query = query.Where("sent_at >= ?", *param.SentAfter)
	}
	if param.SentUntil != nil {
		query = query.Where("sent_at < ?", *param.SentUntil)
	}
	if param.Limit > 0 {
		query = query.Limit(param.Limit)
	}

	if err := query.Order("sent_at ASC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *rawMessageRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("sent_at < ?", cutoff).Delete(&model.RawMessage{})
	return result.RowsAffected, result.Error
}
