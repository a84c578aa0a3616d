package repository

import (
	"context"
	"fmt"
	"net/http"

	"telegram-calls/config"
	"telegram-calls/internal/dto"
	"telegram-calls/pkg/httpclient"
	"telegram-calls/pkg/logger"
	"telegram-calls/pkg/ratelimit"
)

// TradingAPIRepository forwards accepted calls to the downstream trading
// API. Which calls get forwarded is the call service's decision.
type TradingAPIRepository interface {
	SendTip(ctx context.Context, tip dto.TipRequest) error
}

type tradingAPIRepository struct {
	cfg     *config.Config
	log     *logger.Logger
	client  httpclient.HTTPClient
	limiter *ratelimit.TokenLimiter
}

func NewTradingAPIRepository(cfg *config.Config, log *logger.Logger) TradingAPIRepository {
	return &tradingAPIRepository{
		cfg:     cfg,
		log:     log,
		client:  httpclient.New(cfg.Forwarder.BaseURL, cfg.Forwarder.Timeout, ""),
		limiter: ratelimit.NewTokenLimiter(cfg.Forwarder.MaxRequestPerMin),
	}
}

func (r *tradingAPIRepository) SendTip(ctx context.Context, tip dto.TipRequest) error {
	if err := r.limiter.Wait(ctx, 1); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	resp, err := r.client.Post(ctx, "/tip", tip, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to send tip: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.log.WarnContext(ctx, "Trading API returned non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("instrument", tip.Instrument.Name),
		)
		return fmt.Errorf("trading API returned status %d", resp.StatusCode)
	}
	return nil
}
