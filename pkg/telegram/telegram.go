package telegram

import (
	"context"
	"strconv"

	"telegram-calls/config"
	"telegram-calls/pkg/logger"
	"telegram-calls/pkg/ratelimit"

	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"
)

// Notifier sends bot messages under a global limiter plus a per-chat
// limiter, Telegram throttles both dimensions.
type Notifier struct {
	cfg           *config.TelegramConfig
	log           *logger.Logger
	bot           *telebot.Bot
	globalLimiter *rate.Limiter
	chatLimiters  *ratelimit.LimiterStore
}

func NewNotifier(cfg *config.TelegramConfig, log *logger.Logger, bot *telebot.Bot) *Notifier {
	return &Notifier{
		cfg:           cfg,
		log:           log,
		bot:           bot,
		globalLimiter: rate.NewLimiter(rate.Limit(cfg.MaxGlobalRequestPerSecond), cfg.MaxGlobalRequestPerSecond),
		chatLimiters:  ratelimit.NewLimiterStore(rate.Limit(1), 1),
	}
}

// SendMessage delivers text to a chat, blocking on the limiters first.
func (n *Notifier) SendMessage(ctx context.Context, chatID int64, message string, opts ...interface{}) error {
	if err := n.globalLimiter.Wait(ctx); err != nil {
		return err
	}
	if err := n.chatLimiters.GetLimiter(strconv.FormatInt(chatID, 10)).Wait(ctx); err != nil {
		return err
	}

	_, err := n.bot.Send(&telebot.Chat{ID: chatID}, message, opts...)
	if err != nil {
		n.log.ErrorContext(ctx, "Failed to send telegram message",
			logger.Int64Field("chat_id", chatID),
			logger.ErrorField(err),
		)
	}
	return err
}

// Broadcast sends the same message to every chat ID, continuing past
// per-chat failures.
func (n *Notifier) Broadcast(ctx context.Context, chatIDs []int64, message string, opts ...interface{}) {
	for _, chatID := range chatIDs {
		if ctx.Err() != nil {
			return
		}
		_ = n.SendMessage(ctx, chatID, message, opts...)
	}
}
