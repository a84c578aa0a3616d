package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"telegram-calls/config"
	"telegram-calls/internal/dto"
	"telegram-calls/internal/model"
	"telegram-calls/internal/parser"
	"telegram-calls/internal/repository"
	"telegram-calls/pkg/cache"
	"telegram-calls/pkg/common"
	"telegram-calls/pkg/logger"
	"telegram-calls/pkg/telegram"
	"telegram-calls/pkg/utils"

	"gorm.io/datatypes"
)

type CallService interface {
	// ProcessMessage runs one channel message through the whole pipeline:
	// audit store, session gate, classification, persistence and the
	// confidence-tier forwarding policy.
	ProcessMessage(ctx context.Context, in dto.InputMessage, groupLabel string) (*dto.ParsedCall, error)

	// Parse classifies without any side effects, used by the HTTP API.
	Parse(in dto.InputMessage) *dto.ParsedCall

	GetRecentCalls(ctx context.Context, param model.GetTradingCallParam) ([]model.TradingCall, error)
}

type callService struct {
	cfg             *config.Config
	log             *logger.Logger
	parser          *parser.Parser
	session         *Session
	rawMessageRepo  repository.RawMessageRepository
	tradingCallRepo repository.TradingCallRepository
	tradingAPIRepo  repository.TradingAPIRepository
	notifier        *telegram.Notifier
	inmemoryCache   cache.Cache
}

func NewCallService(
	cfg *config.Config,
	log *logger.Logger,
	p *parser.Parser,
	session *Session,
	rawMessageRepo repository.RawMessageRepository,
	tradingCallRepo repository.TradingCallRepository,
	tradingAPIRepo repository.TradingAPIRepository,
	notifier *telegram.Notifier,
	inmemoryCache cache.Cache,
) CallService {
	return &callService{
		cfg:             cfg,
		log:             log,
		parser:          p,
		session:         session,
		rawMessageRepo:  rawMessageRepo,
		tradingCallRepo: tradingCallRepo,
		tradingAPIRepo:  tradingAPIRepo,
		notifier:        notifier,
		inmemoryCache:   inmemoryCache,
	}
}

func (s *callService) Parse(in dto.InputMessage) *dto.ParsedCall {
	return s.parser.Classify(in)
}

func (s *callService) GetRecentCalls(ctx context.Context, param model.GetTradingCallParam) ([]model.TradingCall, error) {
	return s.tradingCallRepo.Get(ctx, param)
}

func (s *callService) ProcessMessage(ctx context.Context, in dto.InputMessage, groupLabel string) (*dto.ParsedCall, error) {
	raw := &model.RawMessage{
		ChatID:     in.ChatID,
		MessageID:  in.MessageID,
		GroupLabel: groupLabel,
		Text:       utils.SafeText(in.Text),
		HasImage:   in.HasImage,
		SentAt:     in.Timestamp,
	}
	if err := s.rawMessageRepo.Create(ctx, raw); err != nil {
		// Audit trail failure should not lose the call itself.
		s.log.ErrorContext(ctx, "Failed to store raw message", logger.ErrorField(err))
	}

	if !s.session.IsOpen(in.Timestamp) {
		s.log.DebugContext(ctx, "Outside trading hours, skipping message",
			logger.StringField("group", groupLabel),
		)
		return nil, nil
	}

	call := s.parser.Classify(in)
	if call == nil {
		return nil, nil
	}

	s.log.InfoContext(ctx, "Trading call detected",
		logger.StringField("kind", string(call.Kind)),
		logger.StringField("group", groupLabel),
		logger.IntField("confidence", call.Confidence),
		logger.StringField("instrument", call.Fields.Instrument),
		logger.StringField("strike", call.Fields.Strike),
	)

	stored, err := s.storeCall(ctx, raw, call, groupLabel)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to store trading call", logger.ErrorField(err))
	}

	s.applyTierPolicy(ctx, call, stored, groupLabel)
	return call, nil
}

// applyTierPolicy decides what happens to a detected call: >=70 forwards,
// 50-69 is logged only, below that the image path still forwards with a
// caveat while text calls are dropped.
func (s *callService) applyTierPolicy(ctx context.Context, call *dto.ParsedCall, stored *model.TradingCall, groupLabel string) {
	switch {
	case call.RequiresManualReview:
		s.log.WarnContext(ctx, "Image call requires manual review",
			logger.StringField("group", groupLabel),
			logger.Field(common.KeyLogHookSendAlert, true),
		)
		s.notifySubscribers(ctx, groupLabel, call)

	case call.Confidence >= dto.ConfidenceHigh:
		s.forward(ctx, call, stored, groupLabel, false)

	case call.Confidence >= dto.ConfidenceMedium:
		s.log.InfoContext(ctx, "Medium confidence call logged, not forwarded",
			logger.StringField("group", groupLabel),
			logger.IntField("confidence", call.Confidence),
		)

	case call.Kind == dto.CallKindImage:
		s.forward(ctx, call, stored, groupLabel, true)

	default:
		s.log.InfoContext(ctx, "Low confidence call dropped",
			logger.StringField("group", groupLabel),
			logger.IntField("confidence", call.Confidence),
		)
	}
}

func (s *callService) forward(ctx context.Context, call *dto.ParsedCall, stored *model.TradingCall, groupLabel string, withCaveat bool) {
	if call.Fields.Strike == "" || call.Fields.TriggerPrice == "" {
		s.log.WarnContext(ctx, "Incomplete trading data, skipping forward",
			logger.StringField("group", groupLabel),
		)
		return
	}

	trigger, ok := parser.TriggerLow(call.Fields.TriggerPrice)
	if !ok {
		s.log.WarnContext(ctx, "Unparsable trigger price, skipping forward",
			logger.StringField("trigger", call.Fields.TriggerPrice),
		)
		return
	}

	dedupeKey := fmt.Sprintf(common.KeyForwardedCall, s.callHash(call))
	if _, alreadySent := s.inmemoryCache.Get(dedupeKey); alreadySent {
		s.log.DebugContext(ctx, "Call already forwarded recently, skipping",
			logger.StringField("strike", call.Fields.Strike),
		)
		return
	}

	stopLoss, target := s.riskValues(call, trigger)

	tip := dto.TipRequest{
		Instrument: dto.TipInstrument{
			Name:           call.Fields.Instrument,
			Strike:         call.Fields.Strike,
			InstrumentType: string(call.Fields.OptionType),
		},
		Price:      trigger,
		StopLoss:   stopLoss,
		Target:     target,
		Confidence: call.Confidence,
		Type:       groupLabel,
	}

	if withCaveat {
		s.log.WarnContext(ctx, "Forwarding low-confidence image call",
			logger.IntField("confidence", call.Confidence),
			logger.StringField("group", groupLabel),
		)
	}

	if err := s.tradingAPIRepo.SendTip(ctx, tip); err != nil {
		s.log.ErrorContext(ctx, "Failed to forward call to trading API",
			logger.ErrorField(err),
			logger.StringField("group", groupLabel),
			logger.Field(common.KeyLogHookSendAlert, true),
		)
		return
	}

	s.inmemoryCache.Set(dedupeKey, true, s.cfg.Forwarder.DedupeDuration)

	if stored != nil {
		if err := s.tradingCallRepo.MarkForwarded(ctx, stored.ID); err != nil {
			s.log.ErrorContext(ctx, "Failed to mark call forwarded", logger.ErrorField(err))
		}
	}

	s.log.InfoContext(ctx, "Trading call forwarded",
		logger.StringField("instrument", tip.Instrument.Name),
		logger.StringField("strike", tip.Instrument.Strike),
		logger.IntField("confidence", tip.Confidence),
	)

	s.notifySubscribers(ctx, groupLabel, call)
}

// riskValues prefers the smart values, falling back to the coarse offsets
// when the smart calculation had nothing to work with.
func (s *callService) riskValues(call *dto.ParsedCall, trigger float64) (float64, string) {
	if call.SmartStopLoss != nil && call.SmartTarget != "" {
		return *call.SmartStopLoss, call.SmartTarget
	}

	var stopLoss float64
	if trigger > 5 {
		stopLoss = trigger - 5
		if stopLoss < 0.5 {
			stopLoss = 0.5
		}
	} else {
		stopLoss = trigger * 0.5
	}
	return stopLoss, strconv.FormatFloat(trigger+10, 'f', -1, 64)
}

func (s *callService) notifySubscribers(ctx context.Context, groupLabel string, call *dto.ParsedCall) {
	if len(s.cfg.Telegram.SubscriberChatIDs) == 0 {
		return
	}
	message := telegram.FormatCallForTelegram(groupLabel, call)
	utils.GoSafe(func() {
		// Detach from the handler context, broadcasting may outlive it.
		sendCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		s.notifier.Broadcast(sendCtx, s.cfg.Telegram.SubscriberChatIDs, message)
	})
}

func (s *callService) storeCall(ctx context.Context, raw *model.RawMessage, call *dto.ParsedCall, groupLabel string) (*model.TradingCall, error) {
	fieldsJSON, err := json.Marshal(call.Fields)
	if err != nil {
		return nil, fmt.Errorf("marshal extracted fields: %w", err)
	}

	stored := &model.TradingCall{
		GroupLabel:    groupLabel,
		Kind:          string(call.Kind),
		Instrument:    call.Fields.Instrument,
		Strike:        call.Fields.Strike,
		OptionType:    string(call.Fields.OptionType),
		TriggerPrice:  call.Fields.TriggerPrice,
		Confidence:    call.Confidence,
		Fields:        datatypes.JSON(fieldsJSON),
		SmartStopLoss: call.SmartStopLoss,
		SmartTarget:   call.SmartTarget,
		ManualReview:  call.RequiresManualReview,
		RawText:       call.RawText,
		MessageSentAt: call.Timestamp,
	}
	if raw != nil && raw.ID != 0 {
		stored.RawMessageID = &raw.ID
	}

	if err := s.tradingCallRepo.Create(ctx, stored); err != nil {
		return nil, err
	}
	return stored, nil
}

// callHash identifies a call for dedupe purposes: same instrument, strike,
// side and trigger means the same tip.
func (s *callService) callHash(call *dto.ParsedCall) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%s",
		call.Fields.Instrument,
		call.Fields.Strike,
		call.Fields.OptionType,
		call.Fields.TriggerPrice,
	)
	return hex.EncodeToString(h.Sum(nil))
}
