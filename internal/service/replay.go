package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"telegram-calls/config"
	"telegram-calls/internal/dto"
	"telegram-calls/internal/model"
	"telegram-calls/internal/parser"
	"telegram-calls/internal/repository"
	"telegram-calls/pkg/logger"
	"telegram-calls/pkg/utils"

	"gorm.io/datatypes"
)

type ReplayService interface {
	ReplayDay(ctx context.Context, day time.Time) (*ReplayResult, error)
}

type ReplayResult struct {
	Scanned  int
	Detected int
	Stored   int
}

// replayService re-runs the classifier over stored raw messages. Replayed
// calls are persisted for inspection only, nothing is forwarded and no
// subscriber is notified.
type replayService struct {
	cfg             *config.Config
	log             *logger.Logger
	parser          *parser.Parser
	rawMessageRepo  repository.RawMessageRepository
	tradingCallRepo repository.TradingCallRepository
}

func NewReplayService(
	cfg *config.Config,
	log *logger.Logger,
	p *parser.Parser,
	rawMessageRepo repository.RawMessageRepository,
	tradingCallRepo repository.TradingCallRepository,
) ReplayService {
	return &replayService{
		cfg:             cfg,
		log:             log,
		parser:          p,
		rawMessageRepo:  rawMessageRepo,
		tradingCallRepo: tradingCallRepo,
	}
}

func (s *replayService) ReplayDay(ctx context.Context, day time.Time) (*ReplayResult, error) {
	loc := utils.MustLoadLocation(s.cfg.Session.Timezone)
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)

	messages, err := s.rawMessageRepo.Get(ctx, model.GetRawMessageParam{
		SentAfter: utils.ToPointer(start),
		SentUntil: utils.ToPointer(end),
	})
	if err != nil {
		return nil, fmt.Errorf("load raw messages: %w", err)
	}

	result := &ReplayResult{Scanned: len(messages)}
	for _, msg := range messages {
		if !utils.ShouldContinue(ctx, s.log) {
			return result, ctx.Err()
		}

		call := s.parser.Classify(dto.InputMessage{
			Text:      msg.Text,
			HasImage:  msg.HasImage,
			Timestamp: msg.SentAt,
			MessageID: msg.MessageID,
			ChatID:    msg.ChatID,
		})
		if call == nil {
			continue
		}
		result.Detected++

		fields, err := json.Marshal(call.Fields)
		if err != nil {
			s.log.WarnContext(ctx, "Replay marshal fields failed", logger.ErrorField(err))
			continue
		}

		stored := &model.TradingCall{
			RawMessageID:  &msg.ID,
			GroupLabel:    msg.GroupLabel,
			Kind:          string(call.Kind),
			Instrument:    call.Fields.Instrument,
			Strike:        call.Fields.Strike,
			OptionType:    string(call.Fields.OptionType),
			TriggerPrice:  call.Fields.TriggerPrice,
			Fields:        datatypes.JSON(fields),
			Confidence:    call.Confidence,
			ManualReview:  call.RequiresManualReview,
			SmartStopLoss: call.SmartStopLoss,
			SmartTarget:   call.SmartTarget,
			RawText:       call.RawText,
			MessageSentAt: msg.SentAt,
		}
		if err := s.tradingCallRepo.Create(ctx, stored); err != nil {
			s.log.WarnContext(ctx, "Replay store call failed", logger.ErrorField(err))
			continue
		}
		result.Stored++
	}

	s.log.InfoContext(ctx, "Replay finished",
		logger.StringField("day", start.Format("2006-01-02")),
		logger.IntField("scanned", result.Scanned),
		logger.IntField("detected", result.Detected),
		logger.IntField("stored", result.Stored),
	)
	return result, nil
}
