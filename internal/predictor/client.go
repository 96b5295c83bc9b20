package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mauv0809/keybet/internal/catalog"
	"github.com/mauv0809/keybet/internal/metrics"
)

// DefaultTimeout bounds every request when no other timeout is configured.
const DefaultTimeout = 10 * time.Second

// Ensure APIClient implements the PredictionClient interface.
var (
	_ PredictionClient     = (*APIClient)(nil)
	_ catalog.RemoteSource = (*APIClient)(nil)
)

// WithSchema sets the response schema. It also decides whether login is
// required unless WithRequireLogin is given.
func WithSchema(s Schema) Option {
	return func(c *APIClient) {
		c.schema = s
	}
}

// WithTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *APIClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient sends requests through hc. A copy is taken; it receives a
// cookie jar and the client timeout when it has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *APIClient) {
		if hc != nil {
			cp := *hc
			c.httpClient = &cp
		}
	}
}

// WithMetrics records request counters in m.
func WithMetrics(m metrics.Metrics) Option {
	return func(c *APIClient) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithRequireLogin overrides the schema's login requirement.
func WithRequireLogin(required bool) Option {
	return func(c *APIClient) {
		c.requireLogin = &required
	}
}

// NewClient creates a client for the prediction server at baseURL. A bare
// host:port is accepted and treated as plain HTTP.
func NewClient(baseURL string, opts ...Option) *APIClient {
	c := &APIClient{
		baseURL: NormalizeBaseURL(baseURL),
		timeout: DefaultTimeout,
		schema:  KeyBetSchema(),
		metrics: metrics.Noop{},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.httpClient.Timeout == 0 {
		c.httpClient.Timeout = c.timeout
	}
	if c.httpClient.Jar == nil {
		// cookiejar.New only fails for a broken PublicSuffixList.
		jar, _ := cookiejar.New(nil)
		c.httpClient.Jar = jar
	}

	log.Debug("Created prediction client", "base_url", c.baseURL, "schema", c.schema.Name, "require_login", c.RequiresLogin())
	return c
}

// NormalizeBaseURL trims whitespace and trailing slashes and adds http://
// when no scheme is present.
func NormalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw != "" && !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	return strings.TrimRight(raw, "/")
}

// BaseURL returns the normalized server address.
func (c *APIClient) BaseURL() string {
	return c.baseURL
}

// Schema returns the schema used to decode predictions.
func (c *APIClient) Schema() Schema {
	return c.schema
}

// RequiresLogin reports whether Predict needs a successful Login first.
func (c *APIClient) RequiresLogin() bool {
	if c.requireLogin != nil {
		return *c.requireLogin
	}
	return c.schema.RequireLogin
}

// IsAuthenticated reports whether a Login call has succeeded.
func (c *APIClient) IsAuthenticated() bool {
	return c.authenticated.Load()
}

// Login posts the credentials to /login. A 200 answer marks the session as
// authenticated; any other status returns false and leaves the session as
// it was. Only transport failures are returned as errors.
func (c *APIClient) Login(ctx context.Context, username, password string) (bool, error) {
	c.metrics.IncLoginAttempts()

	resp, err := c.do(ctx, http.MethodPost, "/login", loginRequest{Username: username, Password: password})
	if err != nil {
		return false, &ConnectionError{Op: "login", Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		c.metrics.IncLoginFailures()
		log.Warn("Login rejected", "username", username, "status", resp.StatusCode)
		return false, nil
	}

	c.authenticated.Store(true)
	log.Info("Logged in", "username", username)
	return true, nil
}

// Predict asks the server for a prediction of home against away.
func (c *APIClient) Predict(ctx context.Context, home, away string) (*Result, error) {
	if err := ValidateTeams(home, away); err != nil {
		return nil, err
	}
	if c.RequiresLogin() && !c.IsAuthenticated() {
		return nil, &NotAuthenticatedError{}
	}

	c.metrics.IncPredictionRequests()
	start := time.Now()
	result, err := c.predict(ctx, home, away)
	c.metrics.ObservePredictionDuration(time.Since(start).Seconds())
	if err != nil {
		c.metrics.IncPredictionFailures()
		return nil, err
	}

	log.Debug("Received prediction", "home", home, "away", away, "values", len(result.Numbers)+len(result.Texts))
	return result, nil
}

func (c *APIClient) predict(ctx context.Context, home, away string) (*Result, error) {
	resp, err := c.do(ctx, http.MethodPost, "/predict", predictRequest{HomeTeam: home, AwayTeam: away})
	if err != nil {
		return nil, &ConnectionError{Op: "predict", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectionError{Op: "predict", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		perr := &PredictionError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
		log.Warn("Prediction request failed", "status", resp.StatusCode, "error", perr.Message)
		return nil, perr
	}
	return c.schema.Decode(body)
}

// ValidateTeams rejects empty team names and a team playing itself.
func ValidateTeams(home, away string) error {
	if strings.TrimSpace(home) == "" || strings.TrimSpace(away) == "" {
		return &ValidationError{Message: "home and away teams must both be selected"}
	}
	if home == away {
		return &ValidationError{Message: "home and away teams cannot be the same"}
	}
	return nil
}

// GetCountries fetches the country list from the server.
func (c *APIClient) GetCountries(ctx context.Context) ([]string, error) {
	return c.getList(ctx, "/get_countries")
}

// GetLeagues fetches the leagues of country from the server.
func (c *APIClient) GetLeagues(ctx context.Context, country string) ([]string, error) {
	return c.getList(ctx, "/get_leagues/"+url.PathEscape(country))
}

// GetTeams fetches the teams of a league from the server.
func (c *APIClient) GetTeams(ctx context.Context, country, league string) ([]string, error) {
	return c.getList(ctx, "/get_teams/"+url.PathEscape(country)+"/"+url.PathEscape(league))
}

func (c *APIClient) getList(ctx context.Context, path string) ([]string, error) {
	c.metrics.IncCatalogRequests()

	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, &ConnectionError{Op: "GET " + path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectionError{Op: "GET " + path, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Path: path, StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	var list []string
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}

// Health checks that the server answers /health with 200.
func (c *APIClient) Health(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return &ConnectionError{Op: "health", Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &APIError{Path: "/health", StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return nil
}

// do sends a request, encoding payload as JSON when it is non-nil.
func (c *APIClient) do(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	if c.baseURL == "" {
		return nil, errors.New("no server address configured")
	}

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	log.Debug("Sending request", "method", method, "url", req.URL.String())
	return c.httpClient.Do(req)
}

// errorMessage extracts the "error" member of a JSON error body.
func errorMessage(body []byte) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return e.Error
	}
	return "unknown error"
}
