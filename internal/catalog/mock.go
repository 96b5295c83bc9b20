package catalog

import (
	"context"
	"sync"
)

// MockStore is a mock implementation of the CatalogStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	ReplaceEntriesFunc func(entries []TeamEntry) error
	GetEntriesFunc     func() ([]TeamEntry, error)

	ReplaceEntriesCalls [][]TeamEntry
	GetEntriesCalls     int
}

// NewMockStore creates a new mock instance.
func NewMockStore() *MockStore {
	return &MockStore{}
}

func (m *MockStore) ReplaceEntries(entries []TeamEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReplaceEntriesCalls = append(m.ReplaceEntriesCalls, entries)
	if m.ReplaceEntriesFunc != nil {
		return m.ReplaceEntriesFunc(entries)
	}
	return nil
}

func (m *MockStore) GetEntries() ([]TeamEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetEntriesCalls++
	if m.GetEntriesFunc != nil {
		return m.GetEntriesFunc()
	}
	return nil, nil
}

// MockRemote is an in-memory RemoteSource backed by a nested map.
type MockRemote struct {
	mu sync.Mutex

	Data map[string]map[string][]string
	Err  error

	Calls []string
}

func (m *MockRemote) GetCountries(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, "countries")
	if m.Err != nil {
		return nil, m.Err
	}
	return sortedKeys(m.Data), nil
}

func (m *MockRemote) GetLeagues(ctx context.Context, country string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, "leagues/"+country)
	if m.Err != nil {
		return nil, m.Err
	}
	return sortedKeys(m.Data[country]), nil
}

func (m *MockRemote) GetTeams(ctx context.Context, country, league string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, "teams/"+country+"/"+league)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Data[country][league], nil
}
