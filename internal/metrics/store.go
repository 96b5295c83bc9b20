package metrics

import (
	"database/sql"

	"github.com/charmbracelet/log"
)

// Keys under which Usage persists counters.
const (
	KeyPredictionRequests = "prediction_requests"
	KeyPredictionFailures = "prediction_failures"
	KeyLoginAttempts      = "login_attempts"
	KeyLoginFailures      = "login_failures"
	KeyCatalogRequests    = "catalog_requests"
	KeySlackNotifSent     = "slack_notifications_sent"
	KeySlackNotifFailed   = "slack_notifications_failed"
	KeyEventsPublished    = "events_published"
)

const incrementQuery = `
	INSERT INTO metrics (key, value) VALUES (?, 1)
	ON CONFLICT(key) DO UPDATE SET value = value + 1`

// New creates a MetricsStore backed by the metrics table.
func New(db *sql.DB) MetricsStore {
	return &store{
		db: db,
	}
}

// Increment adds one to key, creating it on first use. Failures are logged
// and otherwise ignored so counting never breaks the caller.
func (s *store) Increment(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(incrementQuery, key); err != nil {
		log.Error("Failed to increment metric", "error", err, "key", key)
		return
	}
	log.Debug("Incremented metric", "key", key)
}

// GetAll returns every stored counter.
func (s *store) GetAll() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT key, value FROM metrics ORDER BY key")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counters := make(map[string]int)
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		counters[key] = value
	}
	return counters, rows.Err()
}
