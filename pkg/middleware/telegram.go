package middleware

import (
	"context"
	"time"

	"telegram-calls/pkg/logger"

	"gopkg.in/telebot.v3"
)

// WithContext derives a bounded context for each bot handler invocation so
// a stuck handler cannot outlive the timeout. A per-update logger carrying
// the chat and message IDs is attached, every *Context log call downstream
// picks it up.
func WithContext(rootCtx context.Context, timeout time.Duration, log *logger.Logger, handler func(ctx context.Context, c telebot.Context) error) func(c telebot.Context) error {
	return func(c telebot.Context) error {
		ctx, cancel := context.WithTimeout(rootCtx, timeout)
		defer cancel()

		if msg := c.Message(); msg != nil && msg.Chat != nil {
			ctx = logger.NewContext(ctx, log.With(
				logger.Int64Field("chat_id", msg.Chat.ID),
				logger.IntField("message_id", msg.ID),
			))
		}

		return handler(ctx, c)
	}
}
