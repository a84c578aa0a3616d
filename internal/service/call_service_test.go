package service

import (
	"context"
	"testing"
	"time"

	"telegram-calls/config"
	"telegram-calls/internal/dto"
	"telegram-calls/internal/model"
	"telegram-calls/internal/parser"
	"telegram-calls/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rawRepoStub struct {
	created       []*model.RawMessage
	getResult     []model.RawMessage
	deletedBefore *time.Time
}

func (r *rawRepoStub) Create(_ context.Context, msg *model.RawMessage) error {
	msg.ID = uint(len(r.created) + 1)
	r.created = append(r.created, msg)
	return nil
}

func (r *rawRepoStub) Get(_ context.Context, _ model.GetRawMessageParam) ([]model.RawMessage, error) {
	return r.getResult, nil
}

func (r *rawRepoStub) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.deletedBefore = &cutoff
	return 3, nil
}

type callRepoStub struct {
	created       []*model.TradingCall
	forwarded     []uint
	deletedBelow  int
	deletedBefore *time.Time
}

func (r *callRepoStub) Create(_ context.Context, call *model.TradingCall) error {
	call.ID = uint(len(r.created) + 1)
	r.created = append(r.created, call)
	return nil
}

func (r *callRepoStub) Get(_ context.Context, _ model.GetTradingCallParam) ([]model.TradingCall, error) {
	return nil, nil
}

func (r *callRepoStub) MarkForwarded(_ context.Context, id uint) error {
	r.forwarded = append(r.forwarded, id)
	return nil
}

func (r *callRepoStub) DeleteLowConfidenceOlderThan(_ context.Context, maxConfidence int, cutoff time.Time) (int64, error) {
	r.deletedBelow = maxConfidence
	r.deletedBefore = &cutoff
	return 2, nil
}

type apiRepoStub struct {
	tips []dto.TipRequest
	err  error
}

func (r *apiRepoStub) SendTip(_ context.Context, tip dto.TipRequest) error {
	if r.err != nil {
		return r.err
	}
	r.tips = append(r.tips, tip)
	return nil
}

type cacheStub struct {
	entries map[string]interface{}
}

func newCacheStub() *cacheStub {
	return &cacheStub{entries: map[string]interface{}{}}
}

func (c *cacheStub) Set(key string, value interface{}, _ time.Duration) { c.entries[key] = value }

func (c *cacheStub) Get(key string) (interface{}, bool) {
	v, ok := c.entries[key]
	return v, ok
}

func (c *cacheStub) Delete(key string) { delete(c.entries, key) }

func (c *cacheStub) Flush() { c.entries = map[string]interface{}{} }

type callServiceFixture struct {
	service  CallService
	rawRepo  *rawRepoStub
	callRepo *callRepoStub
	apiRepo  *apiRepoStub
	cache    *cacheStub
}

func newCallServiceFixture(t *testing.T) *callServiceFixture {
	t.Helper()

	cfg := &config.Config{
		Telegram: config.TelegramConfig{},
		Forwarder: config.ForwarderConfig{
			DedupeDuration: time.Minute,
		},
		Session: config.SessionConfig{
			Timezone:  "UTC",
			OpenTime:  "00:01",
			CloseTime: "23:59",
		},
	}

	log, err := logger.New("error", "console")
	require.NoError(t, err)

	session, err := NewSession(cfg.Session)
	require.NoError(t, err)

	f := &callServiceFixture{
		rawRepo:  &rawRepoStub{},
		callRepo: &callRepoStub{},
		apiRepo:  &apiRepoStub{},
		cache:    newCacheStub(),
	}
	f.service = NewCallService(cfg, log, parser.New(), session, f.rawRepo, f.callRepo, f.apiRepo, nil, f.cache)
	return f
}

// Wednesday inside the session window.
var testSentAt = time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)

func TestProcessMessage_HighConfidenceForwards(t *testing.T) {
	f := newCallServiceFixture(t)

	call, err := f.service.ProcessMessage(context.Background(), dto.InputMessage{
		Text:      "BUY BANKNIFTY 51000 CE ABOVE 340 SL 280 TARGET 380/420",
		Timestamp: testSentAt,
		MessageID: 11,
		ChatID:    -100,
	}, "VIP")
	require.NoError(t, err)
	require.NotNil(t, call)
	assert.GreaterOrEqual(t, call.Confidence, dto.ConfidenceHigh)

	require.Len(t, f.rawRepo.created, 1)
	require.Len(t, f.callRepo.created, 1)
	stored := f.callRepo.created[0]
	assert.Equal(t, "BANKNIFTY", stored.Instrument)
	assert.Equal(t, "51000", stored.Strike)
	assert.Equal(t, "CE", stored.OptionType)
	assert.Equal(t, "BUY BANKNIFTY 51000 CE ABOVE 340 SL 280 TARGET 380/420", stored.RawText)

	require.Len(t, f.apiRepo.tips, 1)
	tip := f.apiRepo.tips[0]
	assert.InDelta(t, 340, tip.Price, 0.001)
	assert.InDelta(t, 289, tip.StopLoss, 0.001)
	assert.Equal(t, "416.5/467.5", tip.Target)
	assert.Equal(t, "VIP", tip.Type)

	assert.Equal(t, []uint{stored.ID}, f.callRepo.forwarded)
}

func TestProcessMessage_DuplicateForwardsOnce(t *testing.T) {
	f := newCallServiceFixture(t)
	msg := dto.InputMessage{
		Text:      "BUY BANKNIFTY 51000 CE ABOVE 340 SL 280 TARGET 380/420",
		Timestamp: testSentAt,
	}

	_, err := f.service.ProcessMessage(context.Background(), msg, "VIP")
	require.NoError(t, err)
	_, err = f.service.ProcessMessage(context.Background(), msg, "VIP")
	require.NoError(t, err)

	assert.Len(t, f.apiRepo.tips, 1, "same call must not be forwarded twice")
	assert.Len(t, f.callRepo.created, 2, "both sightings are still stored")
}

func TestProcessMessage_MediumConfidenceStoredNotForwarded(t *testing.T) {
	f := newCallServiceFixture(t)

	call, err := f.service.ProcessMessage(context.Background(), dto.InputMessage{
		Text:      "NIFTY 25000 PE SL 180 TARGET 200/250 SURESHOT",
		Timestamp: testSentAt,
	}, "FREE")
	require.NoError(t, err)
	require.NotNil(t, call)
	assert.GreaterOrEqual(t, call.Confidence, dto.ConfidenceMedium)
	assert.Less(t, call.Confidence, dto.ConfidenceHigh)

	assert.Len(t, f.callRepo.created, 1)
	assert.Empty(t, f.apiRepo.tips)
	assert.Empty(t, f.callRepo.forwarded)
}

func TestProcessMessage_SpamStoredAsRawOnly(t *testing.T) {
	f := newCallServiceFixture(t)

	call, err := f.service.ProcessMessage(context.Background(), dto.InputMessage{
		Text:      "JOIN VIP HTTPS://T.ME/BIGCALLS",
		Timestamp: testSentAt,
	}, "FREE")
	require.NoError(t, err)
	assert.Nil(t, call)

	assert.Len(t, f.rawRepo.created, 1)
	assert.Empty(t, f.callRepo.created)
	assert.Empty(t, f.apiRepo.tips)
}

func TestProcessMessage_OutsideSessionSkipsParsing(t *testing.T) {
	f := newCallServiceFixture(t)

	saturday := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	call, err := f.service.ProcessMessage(context.Background(), dto.InputMessage{
		Text:      "BUY BANKNIFTY 51000 CE ABOVE 340 SL 280 TARGET 380/420",
		Timestamp: saturday,
	}, "VIP")
	require.NoError(t, err)
	assert.Nil(t, call)

	assert.Len(t, f.rawRepo.created, 1, "audit copy is kept even off hours")
	assert.Empty(t, f.callRepo.created)
	assert.Empty(t, f.apiRepo.tips)
}

func TestProcessMessage_ImageWithoutCaptionNeedsReview(t *testing.T) {
	f := newCallServiceFixture(t)

	call, err := f.service.ProcessMessage(context.Background(), dto.InputMessage{
		Text:      "",
		HasImage:  true,
		Timestamp: testSentAt,
	}, "VIP")
	require.NoError(t, err)
	require.NotNil(t, call)
	assert.True(t, call.RequiresManualReview)

	require.Len(t, f.callRepo.created, 1)
	assert.True(t, f.callRepo.created[0].ManualReview)
	assert.Empty(t, f.apiRepo.tips)
}

func TestProcessMessage_ForwardErrorLeavesCallUnmarked(t *testing.T) {
	f := newCallServiceFixture(t)
	f.apiRepo.err = assert.AnError

	call, err := f.service.ProcessMessage(context.Background(), dto.InputMessage{
		Text:      "BUY BANKNIFTY 51000 CE ABOVE 340 SL 280 TARGET 380/420",
		Timestamp: testSentAt,
	}, "VIP")
	require.NoError(t, err)
	require.NotNil(t, call)

	assert.Empty(t, f.callRepo.forwarded)
	assert.Empty(t, f.cache.entries, "failed forward must not poison the dedupe cache")
}
