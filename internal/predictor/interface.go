package predictor

import (
	"context"

	"github.com/mauv0809/keybet/internal/catalog"
)

// PredictionClient talks to a remote prediction server over one session.
type PredictionClient interface {
	catalog.RemoteSource

	Login(ctx context.Context, username, password string) (bool, error)
	IsAuthenticated() bool
	RequiresLogin() bool
	Predict(ctx context.Context, home, away string) (*Result, error)
	Health(ctx context.Context) error
	Schema() Schema
}
