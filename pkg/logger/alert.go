package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"telegram-calls/pkg/common"

	"go.uber.org/zap/zapcore"
)

// alertCore mirrors selected log entries to a Telegram chat so parser or
// forwarder failures show up without tailing logs.
type alertCore struct {
	core     zapcore.Core
	minLevel zapcore.Level
	botToken string
	chatID   string
}

func (a *alertCore) Enabled(lvl zapcore.Level) bool {
	return a.core.Enabled(lvl)
}

func (a *alertCore) With(fields []zapcore.Field) zapcore.Core {
	return &alertCore{
		core:     a.core.With(fields),
		minLevel: a.minLevel,
		botToken: a.botToken,
		chatID:   a.chatID,
	}
}

func (a *alertCore) Check(entry zapcore.Entry, checkedEntry *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if a.Enabled(entry.Level) {
		return a.core.Check(entry, checkedEntry).AddCore(entry, a)
	}
	return checkedEntry
}

func (a *alertCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	shouldSend := false
	for _, f := range fields {
		if f.Key == common.KeyLogHookSendAlert && f.Type == zapcore.BoolType && f.Integer == 1 {
			shouldSend = true
			break
		}
	}
	if entry.Level >= a.minLevel && shouldSend && a.botToken != "" {
		go a.sendTelegramAlert(entry, fields) // async so logging never blocks
	}
	return a.core.Write(entry, fields)
}

func (a *alertCore) Sync() error {
	return a.core.Sync()
}

func (a *alertCore) sendTelegramAlert(entry zapcore.Entry, fields []zapcore.Field) {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}

	fieldStr := ""
	for k, v := range enc.Fields {
		fieldStr += fmt.Sprintf("• %s: %v\n", k, v)
	}

	message := fmt.Sprintf(
		"🚨 *%s Alert*\n\n*Message:* %s\n\n*Fields:*\n%s\n*Time:* %s",
		entry.Level.CapitalString(),
		entry.Message,
		fieldStr,
		entry.Time.Format("2006-01-02 15:04:05"),
	)

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", a.botToken)
	payload := map[string]interface{}{
		"chat_id":    a.chatID,
		"text":       message,
		"parse_mode": "Markdown",
	}

	jsonBody, _ := json.Marshal(payload)
	http.Post(url, "application/json", bytes.NewBuffer(jsonBody))
}
