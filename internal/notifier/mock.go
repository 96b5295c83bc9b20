package notifier

import (
	"sync"

	"github.com/mauv0809/keybet/internal/history"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SendPredictionFunc     func(record *history.Record, dryRun bool) error
	SendHistorySummaryFunc func(records []*history.Record, dryRun bool) error

	// Call records
	SendPredictionCalls []struct {
		Record *history.Record
		DryRun bool
	}
	SendHistorySummaryCalls [][]*history.Record
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPredictionCalls = nil
	m.SendHistorySummaryCalls = nil
}

func (m *Mock) SendPrediction(record *history.Record, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPredictionCalls = append(m.SendPredictionCalls, struct {
		Record *history.Record
		DryRun bool
	}{record, dryRun})
	if m.SendPredictionFunc != nil {
		return m.SendPredictionFunc(record, dryRun)
	}
	return nil
}

func (m *Mock) SendHistorySummary(records []*history.Record, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendHistorySummaryCalls = append(m.SendHistorySummaryCalls, records)
	if m.SendHistorySummaryFunc != nil {
		return m.SendHistorySummaryFunc(records, dryRun)
	}
	return nil
}
