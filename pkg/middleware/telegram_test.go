package middleware

import (
	"context"
	"testing"
	"time"

	"telegram-calls/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"
)

// fakeTeleContext only needs Message, the wrapper touches nothing else.
type fakeTeleContext struct {
	telebot.Context
	msg *telebot.Message
}

func (f fakeTeleContext) Message() *telebot.Message { return f.msg }

func TestWithContext_AttachesPerUpdateLogger(t *testing.T) {
	log, err := logger.New("error", "console")
	require.NoError(t, err)

	var handlerCtx context.Context
	handler := WithContext(context.Background(), time.Second, log, func(ctx context.Context, c telebot.Context) error {
		handlerCtx = ctx
		return nil
	})

	c := fakeTeleContext{msg: &telebot.Message{
		ID:   42,
		Chat: &telebot.Chat{ID: -100123},
	}}
	require.NoError(t, handler(c))

	require.NotNil(t, handlerCtx)
	_, hasDeadline := handlerCtx.Deadline()
	assert.True(t, hasDeadline, "handler context must be bounded")

	assert.NotSame(t, log, log.FromContext(handlerCtx),
		"a per-update child logger must be attached to the context")
}

func TestWithContext_NoMessageFallsBackToDefaultLogger(t *testing.T) {
	log, err := logger.New("error", "console")
	require.NoError(t, err)

	var handlerCtx context.Context
	handler := WithContext(context.Background(), time.Second, log, func(ctx context.Context, c telebot.Context) error {
		handlerCtx = ctx
		return nil
	})

	require.NoError(t, handler(fakeTeleContext{}))
	assert.Same(t, log, log.FromContext(handlerCtx))
}
