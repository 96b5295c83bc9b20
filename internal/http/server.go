package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/mauv0809/keybet/internal/catalog"
	"github.com/mauv0809/keybet/internal/config"
	"github.com/mauv0809/keybet/internal/history"
	"github.com/mauv0809/keybet/internal/metrics"
	"github.com/mauv0809/keybet/internal/processor"
	"github.com/mauv0809/keybet/internal/pubsub"
)

// NewServer wires the routes. A zero rate limit disables limiting.
func NewServer(lookup catalog.Lookup, store history.Store, proc *processor.Processor, metricsSvc metrics.Metrics, metricsHandler http.Handler, ps pubsub.PubSubClient, cfg config.HTTPConfig) *Server {
	server := &Server{
		Catalog:        lookup,
		History:        store,
		Processor:      proc,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		PubSub:         ps,
		Router:         mux.NewRouter().UseEncodedPath(),
	}
	if cfg.RateLimit > 0 {
		burst := max(cfg.RateBurst, 1)
		server.Limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	api := []Middleware{paramsMiddleware, rateLimitMiddleware(s.Limiter)}

	s.Router.Handle("/metrics", s.MetricsHandler).Methods(http.MethodGet)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware)).Methods(http.MethodGet)
	s.Router.Handle("/get_countries", Chain(s.CountriesHandler(), api...)).Methods(http.MethodGet)
	s.Router.Handle("/get_leagues/{country}", Chain(s.LeaguesHandler(), api...)).Methods(http.MethodGet)
	s.Router.Handle("/get_teams/{country}/{league}", Chain(s.TeamsHandler(), api...)).Methods(http.MethodGet)
	s.Router.Handle("/history", Chain(s.HistoryHandler(), api...)).Methods(http.MethodGet)
	s.Router.Handle("/pubsub/prediction", Chain(s.PredictionEventHandler(), paramsMiddleware)).Methods(http.MethodPost)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
