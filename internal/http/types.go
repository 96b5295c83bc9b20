package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/mauv0809/keybet/internal/catalog"
	"github.com/mauv0809/keybet/internal/history"
	"github.com/mauv0809/keybet/internal/metrics"
	"github.com/mauv0809/keybet/internal/processor"
	"github.com/mauv0809/keybet/internal/pubsub"
)

// Server serves the team catalog contract plus operational endpoints.
type Server struct {
	Catalog        catalog.Lookup
	History        history.Store
	Processor      *processor.Processor
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	PubSub         pubsub.PubSubClient
	Limiter        *rate.Limiter
	Router         *mux.Router
}

// errorResponse matches the error body prediction clients understand.
type errorResponse struct {
	Error string `json:"error"`
}
