package telegram

import (
	"context"
	"strconv"
	"strings"
	"time"

	"telegram-calls/internal/dto"
	"telegram-calls/pkg/common"
	"telegram-calls/pkg/logger"
	"telegram-calls/pkg/middleware"
	"telegram-calls/pkg/utils"

	"gopkg.in/telebot.v3"
)

const handlerTimeout = 1 * time.Minute

func (t *TelegramBotHandler) RegisterHandlers() {
	t.bot.Handle(telebot.OnChannelPost, middleware.WithContext(t.ctx, handlerTimeout, t.log, t.handleIncoming))
	t.bot.Handle(telebot.OnText, middleware.WithContext(t.ctx, handlerTimeout, t.log, t.handleIncoming))
	t.bot.Handle(telebot.OnPhoto, middleware.WithContext(t.ctx, handlerTimeout, t.log, t.handleIncoming))
	t.bot.Handle(telebot.OnDocument, middleware.WithContext(t.ctx, handlerTimeout, t.log, t.handleIncoming))
}

// handleIncoming funnels every post from a watched channel or group into
// the call pipeline. Posts from chats outside the watchlist are ignored.
func (t *TelegramBotHandler) handleIncoming(ctx context.Context, c telebot.Context) error {
	msg := c.Message()
	if msg == nil || msg.Chat == nil {
		return nil
	}

	chatID := msg.Chat.ID
	if !utils.ContainsInt64(t.cfg.Telegram.Channels, chatID) {
		return nil
	}

	in := dto.InputMessage{
		Text:      messageText(msg),
		HasImage:  messageHasImage(msg),
		Timestamp: msg.Time(),
		MessageID: msg.ID,
		ChatID:    chatID,
	}

	if _, err := t.service.CallService.ProcessMessage(ctx, in, t.groupLabel(chatID)); err != nil {
		// chat and message IDs ride on the context logger.
		t.log.ErrorContext(ctx, "Failed to process channel message", logger.ErrorField(err))
	}
	return nil
}

func (t *TelegramBotHandler) groupLabel(chatID int64) string {
	if label, ok := t.cfg.Telegram.ChannelLabels[strconv.FormatInt(chatID, 10)]; ok {
		return label
	}
	return common.GroupLabelUnknown
}

func messageText(msg *telebot.Message) string {
	if msg.Text != "" {
		return msg.Text
	}
	return msg.Caption
}

func messageHasImage(msg *telebot.Message) bool {
	if msg.Photo != nil {
		return true
	}
	return msg.Document != nil && strings.HasPrefix(msg.Document.MIME, "image/")
}
