package predictor

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauv0809/keybet/internal/metrics"
)

// countingTransport counts requests before handing them to next.
type countingTransport struct {
	next  http.RoundTripper
	calls atomic.Int32
}

func (t *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.calls.Add(1)
	return t.next.RoundTrip(req)
}

// newKeyBetServer fakes an authenticated prediction server. /predict only
// answers when the session cookie set by /login is presented.
func newKeyBetServer(t *testing.T, prediction map[string]any) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.Username != "alice" || req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", Path: "/"})
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /predict", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("session"); err != nil || c.Value != "abc" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
			return
		}
		var req predictRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.HomeTeam == "Nowhere FC" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "Unknown team"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(prediction)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func keyBetPrediction() map[string]any {
	return map[string]any{
		"FTHG": 2.0, "FTAG": 1.0, "HTHG": 1.0, "HTAG": 0.5,
		"Winner_numeric": 1.0, "HTWinner_numeric": 0.0,
		"HC": 6.2, "AC": 4.1, "HS": 14.0, "AS": 9.0, "HST": 5.0, "AST": 3.0,
	}
}

func TestPredict_SameTeamMakesNoRequest(t *testing.T) {
	srv := newKeyBetServer(t, keyBetPrediction())
	transport := &countingTransport{next: http.DefaultTransport}
	c := NewClient(srv.URL, WithHTTPClient(&http.Client{Transport: transport}), WithRequireLogin(false))

	result, err := c.Predict(context.Background(), "Arsenal", "Arsenal")
	assert.Nil(t, result)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, int32(0), transport.calls.Load())
}

func TestPredict_EmptyTeamIsValidationError(t *testing.T) {
	c := NewClient("localhost:1")

	_, err := c.Predict(context.Background(), "", "Chelsea")
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestPredict_RequiresLogin(t *testing.T) {
	srv := newKeyBetServer(t, keyBetPrediction())
	transport := &countingTransport{next: http.DefaultTransport}
	c := NewClient(srv.URL, WithHTTPClient(&http.Client{Transport: transport}))

	_, err := c.Predict(context.Background(), "Arsenal", "Chelsea")
	var authErr *NotAuthenticatedError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, int32(0), transport.calls.Load())
}

func TestLogin_Success(t *testing.T) {
	srv := newKeyBetServer(t, keyBetPrediction())
	m := metrics.NewMock()
	c := NewClient(srv.URL, WithMetrics(m))

	ok, err := c.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, c.IsAuthenticated())

	result, err := c.Predict(context.Background(), "Arsenal", "Chelsea")
	require.NoError(t, err)

	home, away := result.Goals()
	assert.Equal(t, 2.0, home)
	assert.Equal(t, 1.0, away)
	ftr, ok := result.Number(FieldFTR)
	require.True(t, ok)
	assert.Equal(t, 1.0, ftr)

	assert.Equal(t, 1, m.Count(metrics.KeyLoginAttempts))
	assert.Equal(t, 1, m.Count(metrics.KeyPredictionRequests))
	assert.Zero(t, m.Count(metrics.KeyPredictionFailures))
	assert.Len(t, m.PredictionDurations(), 1)
}

func TestLogin_Rejected(t *testing.T) {
	srv := newKeyBetServer(t, keyBetPrediction())
	m := metrics.NewMock()
	c := NewClient(srv.URL, WithMetrics(m))

	ok, err := c.Login(context.Background(), "alice", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, c.IsAuthenticated())
	assert.Equal(t, 1, m.Count(metrics.KeyLoginFailures))

	_, err = c.Predict(context.Background(), "Arsenal", "Chelsea")
	var authErr *NotAuthenticatedError
	assert.ErrorAs(t, err, &authErr)
}

func TestLogin_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url)
	ok, err := c.Login(context.Background(), "alice", "secret")
	assert.False(t, ok)

	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "login", connErr.Op)
	assert.False(t, c.IsAuthenticated())
}

func TestPredict_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	m := metrics.NewMock()
	c := NewClient(url, WithRequireLogin(false), WithMetrics(m))
	result, err := c.Predict(context.Background(), "Arsenal", "Chelsea")
	assert.Nil(t, result)

	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "predict", connErr.Op)
	assert.Equal(t, 1, m.Count(metrics.KeyPredictionFailures))
}

func TestPredict_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(srv.URL, WithRequireLogin(false), WithTimeout(50*time.Millisecond))
	_, err := c.Predict(context.Background(), "Arsenal", "Chelsea")

	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "predict", connErr.Op)
	var netErr net.Error
	require.ErrorAs(t, err, &netErr)
	assert.True(t, netErr.Timeout())
}

func TestPredict_ServerError(t *testing.T) {
	srv := newKeyBetServer(t, keyBetPrediction())
	m := metrics.NewMock()
	c := NewClient(srv.URL, WithMetrics(m))
	_, err := c.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)

	_, err = c.Predict(context.Background(), "Nowhere FC", "Chelsea")
	var pErr *PredictionError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, http.StatusBadRequest, pErr.StatusCode)
	assert.Equal(t, "Unknown team", pErr.Message)
	assert.Equal(t, 1, m.Count(metrics.KeyPredictionFailures))
}

func TestPredict_ServerErrorWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithSchema(LegacySchema()))
	_, err := c.Predict(context.Background(), "Arsenal", "Chelsea")

	var pErr *PredictionError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, http.StatusInternalServerError, pErr.StatusCode)
	assert.Equal(t, "unknown error", pErr.Message)
}

func TestPredict_MissingRequiredField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"FTHG": 1.5}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithSchema(ClassicSchema()))
	_, err := c.Predict(context.Background(), "Arsenal", "Chelsea")

	var dErr *DecodeError
	require.ErrorAs(t, err, &dErr)
	assert.Equal(t, "FTAG", dErr.Field)
}

func TestCatalogEndpoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/get_countries":
			w.Write([]byte(`["England","Spain"]`))
		case "/get_leagues/England":
			w.Write([]byte(`["Premier League"]`))
		case "/get_teams/England/Premier League":
			w.Write([]byte(`["Arsenal","Chelsea"]`))
		case "/get_leagues/Atlantis":
			w.Write([]byte(`null`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"not found"}`))
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	c := NewClient(srv.URL + "/")

	countries, err := c.GetCountries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"England", "Spain"}, countries)

	leagues, err := c.GetLeagues(ctx, "England")
	require.NoError(t, err)
	assert.Equal(t, []string{"Premier League"}, leagues)

	teams, err := c.GetTeams(ctx, "England", "Premier League")
	require.NoError(t, err)
	assert.Equal(t, []string{"Arsenal", "Chelsea"}, teams)

	empty, err := c.GetLeagues(ctx, "Atlantis")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = c.GetTeams(ctx, "Spain", "Segunda")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "not found", apiErr.Message)
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.Write([]byte("OK!"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	assert.NoError(t, NewClient(srv.URL).Health(context.Background()))
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := map[string]string{
		"34.83.220.67:5000":        "http://34.83.220.67:5000",
		" http://localhost:5000/ ": "http://localhost:5000",
		"https://keybet.example/":  "https://keybet.example",
		"":                         "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeBaseURL(in), "input %q", in)
	}
}

func TestNewClient_DefaultsAndOptions(t *testing.T) {
	c := NewClient("localhost:5000")
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
	assert.NotNil(t, c.httpClient.Jar)
	assert.True(t, c.RequiresLogin(), "keybet schema requires login")

	legacy := NewClient("localhost:5000", WithSchema(LegacySchema()))
	assert.False(t, legacy.RequiresLogin())

	forced := NewClient("localhost:5000", WithSchema(LegacySchema()), WithRequireLogin(true))
	assert.True(t, forced.RequiresLogin())
}
