package processor

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/mauv0809/keybet/internal/history"
	"github.com/mauv0809/keybet/internal/metrics"
	"github.com/mauv0809/keybet/internal/predictor"
	"github.com/mauv0809/keybet/internal/pubsub"
)

// New creates a new Processor. Pass nil for any side effect that is not
// configured.
func New(client predictor.PredictionClient, lookup Lookup, store Store, notifier Notifier, m metrics.Metrics, ps pubsub.PubSubClient) *Processor {
	if m == nil {
		m = metrics.Noop{}
	}
	return &Processor{
		client:   client,
		lookup:   lookup,
		store:    store,
		notifier: notifier,
		metrics:  m,
		pubsub:   ps,
	}
}

// Predict validates req, asks the server for a prediction and, unless
// dryRun is set, records it, notifies Slack and publishes an event.
// Failures of those side effects are logged, not returned.
func (p *Processor) Predict(ctx context.Context, req Request, dryRun bool) (*Prediction, error) {
	if err := predictor.ValidateTeams(req.Home, req.Away); err != nil {
		return nil, err
	}
	if err := p.checkCatalog(req); err != nil {
		return nil, err
	}

	result, err := p.client.Predict(ctx, req.Home, req.Away)
	if err != nil {
		return nil, err
	}

	record := history.NewRecord(req.Home, req.Away, req.Country, req.League, result)
	log.Info("Prediction made", "id", record.ID, "home", record.Home, "away", record.Away, "home_share", record.HomeShare, "away_share", record.AwayShare)

	if dryRun {
		log.Info("[Dry Run] Would record and announce prediction", "id", record.ID)
		if p.notifier != nil {
			p.notify(record, true)
		}
		return &Prediction{Record: record, Result: result}, nil
	}

	if p.store != nil {
		if err := p.store.Add(record); err != nil {
			log.Error("Failed to record prediction", "error", err, "id", record.ID)
		}
	}
	if p.notifier != nil {
		p.notify(record, false)
	}
	if p.pubsub != nil {
		if err := p.pubsub.SendMessage(ctx, pubsub.EventPredictionMade, record); err != nil {
			log.Error("Failed to publish prediction event", "error", err, "id", record.ID)
		} else {
			p.metrics.IncEventsPublished()
		}
	}
	return &Prediction{Record: record, Result: result}, nil
}

func (p *Processor) notify(record *history.Record, dryRun bool) {
	if err := p.notifier.SendPrediction(record, dryRun); err != nil {
		log.Error("Failed to send prediction notification", "error", err, "id", record.ID)
	}
}

// checkCatalog rejects teams that do not play in the selected league. It is
// skipped when no catalog is loaded or no league is selected.
func (p *Processor) checkCatalog(req Request) error {
	if p.lookup == nil || req.Country == "" || req.League == "" {
		return nil
	}
	if len(p.lookup.Countries()) == 0 {
		return nil
	}
	for _, team := range []string{req.Home, req.Away} {
		if !p.lookup.Contains(req.Country, req.League, team) {
			return &predictor.ValidationError{
				Message: fmt.Sprintf("team %q does not play in %s / %s", team, req.Country, req.League),
			}
		}
	}
	return nil
}

// RecordEvent stores a prediction received from another instance.
func (p *Processor) RecordEvent(record *history.Record, dryRun bool) error {
	if record == nil || record.ID == "" {
		return fmt.Errorf("prediction event has no id")
	}
	if dryRun {
		log.Info("[Dry Run] Would record prediction event", "id", record.ID)
		return nil
	}
	if p.store == nil {
		log.Warn("No history store configured, dropping prediction event", "id", record.ID)
		return nil
	}
	if err := p.store.Add(record); err != nil {
		return fmt.Errorf("failed to record prediction event: %w", err)
	}
	log.Info("Recorded prediction event", "id", record.ID)
	return nil
}

// History returns recent predictions, newest first.
func (p *Processor) History(limit int) ([]*history.Record, error) {
	if p.store == nil {
		return []*history.Record{}, nil
	}
	return p.store.List(limit)
}

// SendSummary posts the latest limit predictions to the notifier.
func (p *Processor) SendSummary(limit int, dryRun bool) error {
	if p.notifier == nil {
		return fmt.Errorf("no notifier configured")
	}
	records, err := p.History(limit)
	if err != nil {
		return err
	}
	return p.notifier.SendHistorySummary(records, dryRun)
}
