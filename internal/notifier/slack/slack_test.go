package slack

import (
	"context"
	"errors"
	"testing"
	"time"

	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauv0809/keybet/internal/history"
	"github.com/mauv0809/keybet/internal/metrics"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
	calls                  int
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	m.calls++
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func testRecord() *history.Record {
	return &history.Record{
		ID:        "r1",
		Home:      "Arsenal",
		Away:      "Chelsea",
		Country:   "England",
		League:    "Premier League",
		Schema:    "keybet",
		Numbers:   map[string]float64{"FTHG": 2, "FTAG": 1, "FTR": 1},
		HomeShare: 66,
		AwayShare: 34,
		CreatedAt: time.Now(),
	}
}

func TestSendMessage_DryRun(t *testing.T) {
	m := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", m)

	require.NoError(t, notifier.SendPrediction(testRecord(), true))
	assert.Zero(t, m.Count(metrics.KeySlackNotifSent))
}

func TestSendPrediction_Success(t *testing.T) {
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}
	m := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", m)

	require.NoError(t, notifier.SendPrediction(testRecord(), false))
	assert.Equal(t, 1, api.calls)
	assert.Equal(t, 1, m.Count(metrics.KeySlackNotifSent))
	assert.Zero(t, m.Count(metrics.KeySlackNotifFailed))
}

func TestSendPrediction_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}
	m := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", m)

	err := notifier.SendPrediction(testRecord(), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 1, m.Count(metrics.KeySlackNotifFailed))
	assert.Zero(t, m.Count(metrics.KeySlackNotifSent))
}

func TestFormatPrediction(t *testing.T) {
	msg := formatPrediction(testRecord())

	require.Len(t, msg.Blocks.BlockSet, 4)
	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok)
	assert.Equal(t, "⚽ Arsenal vs Chelsea", header.Text.Text)

	fields, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok)
	require.Len(t, fields.Fields, 2)
	assert.Equal(t, "*Full time*\n2.00 - 1.00", fields.Fields[0].Text)
	assert.Equal(t, "*Result*\n1.00", fields.Fields[1].Text)

	share, ok := msg.Blocks.BlockSet[3].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, share.Text.Text, "66% / 34%")
	assert.Equal(t, "Prediction for Arsenal vs Chelsea", msg.Text)
}

func TestFormatHistorySummary(t *testing.T) {
	empty := formatHistorySummary(nil)
	assert.Equal(t, "No predictions yet.", empty.Text)

	msg := formatHistorySummary([]*history.Record{testRecord()})
	require.Len(t, msg.Blocks.BlockSet, 2)
	section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "1. *Arsenal* vs *Chelsea*: 66% / 34% (2.00 - 1.00)\n", section.Text.Text)
}
