package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"

	"github.com/mauv0809/keybet/internal/history"
	"github.com/mauv0809/keybet/internal/metrics"
	"github.com/mauv0809/keybet/internal/notifier"
	"github.com/mauv0809/keybet/internal/predictor"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, metrics)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionText(message.Text, false),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// SendPrediction posts a single prediction.
func (s *Notifier) SendPrediction(record *history.Record, dryRun bool) error {
	_, _, err := s.sendMessage(formatPrediction(record), dryRun)
	return err
}

// SendHistorySummary posts a digest of records.
func (s *Notifier) SendHistorySummary(records []*history.Record, dryRun bool) error {
	_, _, err := s.sendMessage(formatHistorySummary(records), dryRun)
	return err
}

func formatPrediction(record *history.Record) slack.Message {
	blocks := make([]slack.Block, 0, 4)

	title := fmt.Sprintf("⚽ %s vs %s", record.Home, record.Away)
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", title, true, false)))

	if record.Country != "" || record.League != "" {
		where := strings.Trim(record.Country+" · "+record.League, " ·")
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", where, true, false)))
	}

	var fields []*slack.TextBlockObject
	for _, line := range predictionLines(record) {
		fields = append(fields, slack.NewTextBlockObject("mrkdwn", line, false, false))
	}
	if len(fields) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(nil, fields, nil))
	}

	share := fmt.Sprintf("Win share: *%s* %d%% / %d%% *%s*", record.Home, record.HomeShare, record.AwayShare, record.Away)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", share, false, false), nil, nil))

	msg := slack.NewBlockMessage(blocks...)
	msg.Text = fmt.Sprintf("Prediction for %s vs %s", record.Home, record.Away)
	return msg
}

// predictionLines renders the headline values of a record as Slack fields.
func predictionLines(record *history.Record) []string {
	var lines []string
	if home, ok := record.Numbers[predictor.FieldFTHG]; ok {
		lines = append(lines, fmt.Sprintf("*Full time*\n%.2f - %.2f", home, record.Numbers[predictor.FieldFTAG]))
	}
	if home, ok := record.Numbers[predictor.FieldHTHG]; ok {
		lines = append(lines, fmt.Sprintf("*Half time*\n%.2f - %.2f", home, record.Numbers[predictor.FieldHTAG]))
	}
	if v := resultValue(record, predictor.FieldFTR); v != "" {
		lines = append(lines, "*Result*\n"+v)
	}
	if home, ok := record.Numbers[predictor.FieldHC]; ok {
		lines = append(lines, fmt.Sprintf("*Corners*\n%.2f - %.2f", home, record.Numbers[predictor.FieldAC]))
	}
	return lines
}

func resultValue(record *history.Record, name string) string {
	if t, ok := record.Texts[name]; ok {
		return t
	}
	if n, ok := record.Numbers[name]; ok {
		return strconv.FormatFloat(n, 'f', 2, 64)
	}
	return ""
}

func formatHistorySummary(records []*history.Record) slack.Message {
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", "📋 Recent predictions", true, false)),
	}

	if len(records) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No predictions yet.", false, false), nil, nil))
		msg := slack.NewBlockMessage(blocks...)
		msg.Text = "No predictions yet."
		return msg
	}

	var b strings.Builder
	for i, r := range records {
		fmt.Fprintf(&b, "%d. *%s* vs *%s*: %d%% / %d%%", i+1, r.Home, r.Away, r.HomeShare, r.AwayShare)
		if home, ok := r.Numbers[predictor.FieldFTHG]; ok {
			fmt.Fprintf(&b, " (%.2f - %.2f)", home, r.Numbers[predictor.FieldFTAG])
		}
		b.WriteString("\n")
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", b.String(), false, false), nil, nil))

	msg := slack.NewBlockMessage(blocks...)
	msg.Text = fmt.Sprintf("%d recent predictions", len(records))
	return msg
}
