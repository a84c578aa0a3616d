package service

import (
	"context"
	"fmt"
	"time"

	"telegram-calls/config"
	"telegram-calls/internal/dto"
	"telegram-calls/internal/repository"
	"telegram-calls/pkg/logger"

	"github.com/robfig/cron/v3"
)

type CleanupService interface {
	Start(ctx context.Context) error
	Stop()
	Run(ctx context.Context) error
}

// cleanupService purges expired audit rows on a cron schedule: raw
// messages past the retention window and stale calls that never reached
// the medium-confidence tier.
type cleanupService struct {
	cfg             *config.Config
	log             *logger.Logger
	cron            *cron.Cron
	rawMessageRepo  repository.RawMessageRepository
	tradingCallRepo repository.TradingCallRepository
}

func NewCleanupService(
	cfg *config.Config,
	log *logger.Logger,
	rawMessageRepo repository.RawMessageRepository,
	tradingCallRepo repository.TradingCallRepository,
) CleanupService {
	return &cleanupService{
		cfg:             cfg,
		log:             log,
		cron:            cron.New(),
		rawMessageRepo:  rawMessageRepo,
		tradingCallRepo: tradingCallRepo,
	}
}

func (s *cleanupService) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.cfg.Retention.CronSpec, func() {
		runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		defer cancel()

		if err := s.Run(runCtx); err != nil {
			s.log.Error("Retention cleanup failed", logger.ErrorField(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid retention cron spec %q: %w", s.cfg.Retention.CronSpec, err)
	}

	s.cron.Start()
	s.log.Info("Retention cleanup scheduled", logger.StringField("cron", s.cfg.Retention.CronSpec))
	return nil
}

func (s *cleanupService) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
}

func (s *cleanupService) Run(ctx context.Context) error {
	now := time.Now()

	rawCutoff := now.AddDate(0, 0, -s.cfg.Retention.RawMessageMaxDays)
	rawDeleted, err := s.rawMessageRepo.DeleteOlderThan(ctx, rawCutoff)
	if err != nil {
		return fmt.Errorf("delete raw messages: %w", err)
	}

	callCutoff := now.AddDate(0, 0, -s.cfg.Retention.LowConfMaxDays)
	callsDeleted, err := s.tradingCallRepo.DeleteLowConfidenceOlderThan(ctx, dto.ConfidenceMedium, callCutoff)
	if err != nil {
		return fmt.Errorf("delete low confidence calls: %w", err)
	}

	s.log.InfoContext(ctx, "Retention cleanup done",
		logger.Field("raw_messages_deleted", rawDeleted),
		logger.Field("calls_deleted", callsDeleted),
	)
	return nil
}
