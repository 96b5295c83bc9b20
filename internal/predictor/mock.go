package predictor

import (
	"context"
	"sync"
)

var _ PredictionClient = (*MockClient)(nil)

// PredictCall records the arguments of a Predict call.
type PredictCall struct {
	Home string
	Away string
}

// MockClient is a mock implementation of the PredictionClient interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	LoginFunc        func(ctx context.Context, username, password string) (bool, error)
	PredictFunc      func(ctx context.Context, home, away string) (*Result, error)
	GetCountriesFunc func(ctx context.Context) ([]string, error)
	GetLeaguesFunc   func(ctx context.Context, country string) ([]string, error)
	GetTeamsFunc     func(ctx context.Context, country, league string) ([]string, error)
	HealthFunc       func(ctx context.Context) error

	SchemaValue   Schema
	RequireLogin  bool
	Authenticated bool

	LoginCalls   []string
	PredictCalls []PredictCall
	HealthCalls  int
}

// NewMockClient creates a mock using the keybet schema.
func NewMockClient() *MockClient {
	s := KeyBetSchema()
	return &MockClient{SchemaValue: s, RequireLogin: s.RequireLogin}
}

func (m *MockClient) Login(ctx context.Context, username, password string) (bool, error) {
	m.mu.Lock()
	m.LoginCalls = append(m.LoginCalls, username)
	fn := m.LoginFunc
	m.mu.Unlock()

	ok := true
	var err error
	if fn != nil {
		ok, err = fn(ctx, username, password)
	}
	if ok && err == nil {
		m.mu.Lock()
		m.Authenticated = true
		m.mu.Unlock()
	}
	return ok, err
}

func (m *MockClient) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Authenticated
}

func (m *MockClient) RequiresLogin() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.RequireLogin
}

func (m *MockClient) Predict(ctx context.Context, home, away string) (*Result, error) {
	m.mu.Lock()
	m.PredictCalls = append(m.PredictCalls, PredictCall{Home: home, Away: away})
	fn := m.PredictFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, home, away)
	}
	return &Result{
		Schema:  m.SchemaValue.Name,
		Numbers: map[string]float64{FieldFTHG: 1, FieldFTAG: 1},
		Texts:   map[string]string{},
	}, nil
}

func (m *MockClient) GetCountries(ctx context.Context) ([]string, error) {
	if m.GetCountriesFunc != nil {
		return m.GetCountriesFunc(ctx)
	}
	return []string{}, nil
}

func (m *MockClient) GetLeagues(ctx context.Context, country string) ([]string, error) {
	if m.GetLeaguesFunc != nil {
		return m.GetLeaguesFunc(ctx, country)
	}
	return []string{}, nil
}

func (m *MockClient) GetTeams(ctx context.Context, country, league string) ([]string, error) {
	if m.GetTeamsFunc != nil {
		return m.GetTeamsFunc(ctx, country, league)
	}
	return []string{}, nil
}

func (m *MockClient) Health(ctx context.Context) error {
	m.mu.Lock()
	m.HealthCalls++
	m.mu.Unlock()
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return nil
}

func (m *MockClient) Schema() Schema {
	return m.SchemaValue
}
