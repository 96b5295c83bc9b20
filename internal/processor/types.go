package processor

import (
	"github.com/mauv0809/keybet/internal/history"
	"github.com/mauv0809/keybet/internal/metrics"
	"github.com/mauv0809/keybet/internal/predictor"
	"github.com/mauv0809/keybet/internal/pubsub"
)

// Processor runs the predict use case and its side effects. Every
// dependency except the client is optional.
type Processor struct {
	client   predictor.PredictionClient
	lookup   Lookup
	store    Store
	notifier Notifier
	metrics  metrics.Metrics
	pubsub   pubsub.PubSubClient
}

// Request selects the two teams of a match. Country and League are only
// used to check the teams against the catalog.
type Request struct {
	Country string
	League  string
	Home    string
	Away    string
}

// Prediction is the outcome of Predict.
type Prediction struct {
	Record *history.Record
	Result *predictor.Result
}
