package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncPredictionRequests()
	IncPredictionFailures()
	ObservePredictionDuration(duration float64)
	IncLoginAttempts()
	IncLoginFailures()
	IncCatalogRequests()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	IncEventsPublished()
	SetCatalogTeams(count int)
	SetStartupTime(duration float64)
}

// MetricsStore keeps named counters in the database so they survive
// between CLI runs.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
