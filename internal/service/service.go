package service

import (
	"telegram-calls/config"
	"telegram-calls/internal/parser"
	"telegram-calls/internal/repository"
	"telegram-calls/pkg/cache"
	"telegram-calls/pkg/logger"
	"telegram-calls/pkg/telegram"
)

type Service struct {
	CallService    CallService
	CleanupService CleanupService
	ReplayService  ReplayService
	Session        *Session
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	notifier *telegram.Notifier,
	inmemoryCache cache.Cache,
) (*Service, error) {
	p := parser.New()
	session, err := NewSession(cfg.Session)
	if err != nil {
		return nil, err
	}

	return &Service{
		CallService: NewCallService(
			cfg,
			log,
			p,
			session,
			repo.RawMessageRepo,
			repo.TradingCallRepo,
			repo.TradingAPIRepo,
			notifier,
			inmemoryCache,
		),
		CleanupService: NewCleanupService(cfg, log, repo.RawMessageRepo, repo.TradingCallRepo),
		ReplayService:  NewReplayService(cfg, log, p, repo.RawMessageRepo, repo.TradingCallRepo),
		Session:        session,
	}, nil
}
