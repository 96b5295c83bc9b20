package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		PredictionRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "keybet_prediction_requests_total",
			Help: "The total number of prediction requests sent.",
		}),
		PredictionFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "keybet_prediction_failures_total",
			Help: "The total number of prediction requests that did not yield a result.",
		}),
		PredictionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "keybet_prediction_duration_seconds",
			Help:    "Round trip time of prediction requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		LoginAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "keybet_login_attempts_total",
			Help: "The total number of login attempts.",
		}),
		LoginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "keybet_login_failures_total",
			Help: "The total number of rejected login attempts.",
		}),
		CatalogRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "keybet_catalog_requests_total",
			Help: "The total number of team catalog lookups served or fetched.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "keybet_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "keybet_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "keybet_events_published_total",
			Help: "The total number of prediction events published to Pub/Sub.",
		}),
		CatalogTeams: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "keybet_catalog_teams",
			Help: "Number of teams in the loaded catalog.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "keybet_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.PredictionRequests,
		s.PredictionFailures,
		s.PredictionDuration,
		s.LoginAttempts,
		s.LoginFailures,
		s.CatalogRequests,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.EventsPublished,
		s.CatalogTeams,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncPredictionRequests() {
	s.PredictionRequests.Inc()
}

func (s *Service) IncPredictionFailures() {
	s.PredictionFailures.Inc()
}

func (s *Service) ObservePredictionDuration(duration float64) {
	s.PredictionDuration.Observe(duration)
}

func (s *Service) IncLoginAttempts() {
	s.LoginAttempts.Inc()
}

func (s *Service) IncLoginFailures() {
	s.LoginFailures.Inc()
}

func (s *Service) IncCatalogRequests() {
	s.CatalogRequests.Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) IncEventsPublished() {
	s.EventsPublished.Inc()
}

func (s *Service) SetCatalogTeams(count int) {
	s.CatalogTeams.Set(float64(count))
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
