package notifier

import "github.com/mauv0809/keybet/internal/history"

// Notifier defines a high-level interface for announcing predictions.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For a single prediction as it is made
	SendPrediction(record *history.Record, dryRun bool) error
	// For a digest of recent predictions
	SendHistorySummary(records []*history.Record, dryRun bool) error
}
