package history

import "sync"

var _ Store = (*Mock)(nil)

// Mock is a mock implementation of the Store interface for testing.
// Without a Func set it behaves as an in-memory store.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	AddFunc   func(record *Record) error
	ListFunc  func(limit int) ([]*Record, error)
	CountFunc func() (int, error)

	AddCalls  []*Record
	ListCalls []int
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddCalls = nil
	m.ListCalls = nil
}

func (m *Mock) Add(record *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddCalls = append(m.AddCalls, record)
	if m.AddFunc != nil {
		return m.AddFunc(record)
	}
	return nil
}

func (m *Mock) List(limit int) ([]*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls = append(m.ListCalls, limit)
	if m.ListFunc != nil {
		return m.ListFunc(limit)
	}
	out := []*Record{}
	for i := len(m.AddCalls) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, m.AddCalls[i])
	}
	return out, nil
}

func (m *Mock) Count() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CountFunc != nil {
		return m.CountFunc()
	}
	return len(m.AddCalls), nil
}
