package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// Counters are keyed by the same names Usage persists.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	counters            map[string]int
	predictionDurations []float64
	catalogTeams        int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		counters: make(map[string]int),
	}
}

func (m *Mock) inc(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[key]++
}

func (m *Mock) IncPredictionRequests() { m.inc(KeyPredictionRequests) }
func (m *Mock) IncPredictionFailures() { m.inc(KeyPredictionFailures) }
func (m *Mock) IncLoginAttempts()      { m.inc(KeyLoginAttempts) }
func (m *Mock) IncLoginFailures()      { m.inc(KeyLoginFailures) }
func (m *Mock) IncCatalogRequests()    { m.inc(KeyCatalogRequests) }
func (m *Mock) IncSlackNotifSent()     { m.inc(KeySlackNotifSent) }
func (m *Mock) IncSlackNotifFailed()   { m.inc(KeySlackNotifFailed) }
func (m *Mock) IncEventsPublished()    { m.inc(KeyEventsPublished) }

func (m *Mock) ObservePredictionDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.predictionDurations = append(m.predictionDurations, duration)
}

func (m *Mock) SetCatalogTeams(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalogTeams = count
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// Count returns how often the counter stored under key was incremented.
func (m *Mock) Count(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[key]
}

// PredictionDurations returns every observed prediction duration.
func (m *Mock) PredictionDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.predictionDurations...)
}

// CatalogTeams returns the last value passed to SetCatalogTeams.
func (m *Mock) CatalogTeams() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.catalogTeams
}
