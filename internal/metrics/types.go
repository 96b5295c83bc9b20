package metrics

import (
	"database/sql"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Service holds all the Prometheus metrics for the application.
type Service struct {
	PredictionRequests prometheus.Counter
	PredictionFailures prometheus.Counter
	PredictionDuration prometheus.Histogram
	LoginAttempts      prometheus.Counter
	LoginFailures      prometheus.Counter
	CatalogRequests    prometheus.Counter
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	EventsPublished    prometheus.Counter
	CatalogTeams       prometheus.Gauge
	StartupTimeSeconds prometheus.Gauge
}

// Usage records metrics as persistent counters in a MetricsStore.
// Gauges and durations are not meaningful across runs and are dropped.
type Usage struct {
	store MetricsStore
}

// store handles metric-related database operations.
type store struct {
	db *sql.DB
	mu sync.Mutex
}
