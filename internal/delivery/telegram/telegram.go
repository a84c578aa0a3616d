package telegram

import (
	"context"
	"time"

	"telegram-calls/config"
	"telegram-calls/internal/service"
	"telegram-calls/pkg/logger"
	"telegram-calls/pkg/utils"

	"gopkg.in/telebot.v3"
)

type TelegramBotHandler struct {
	ctx     context.Context
	cfg     *config.Config
	bot     *telebot.Bot
	log     *logger.Logger
	service *service.Service
}

func NewTelegramBotHandler(
	ctx context.Context,
	cfg *config.Config,
	log *logger.Logger,
	bot *telebot.Bot,
	service *service.Service) *TelegramBotHandler {
	return &TelegramBotHandler{
		ctx:     ctx,
		cfg:     cfg,
		bot:     bot,
		log:     log,
		service: service,
	}
}

func (t *TelegramBotHandler) Start() {
	t.log.Info("Starting Telegram bot...")

	t.RegisterHandlers()

	utils.GoSafe(func() {
		t.bot.Start()
	})
}

func (t *TelegramBotHandler) Stop() {
	t.log.Info("Stopping Telegram bot...")

	ctx, cancel := context.WithTimeout(t.ctx, 10*time.Second)
	defer cancel()

	stopDone := make(chan struct{}, 1)
	go func() {
		t.bot.Stop()
		stopDone <- struct{}{}
	}()

	select {
	case <-stopDone:
		t.log.Info("Telegram bot stopped successfully")
	case <-ctx.Done():
		t.log.Warn("Timeout while stopping bot, forcing shutdown")
	}
}
