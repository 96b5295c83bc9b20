package history

import (
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/mauv0809/keybet/internal/predictor"
)

// NewRecord captures a prediction result with a fresh ID and the derived
// win shares.
func NewRecord(home, away, country, league string, result *predictor.Result) *Record {
	homeGoals, awayGoals := result.Goals()
	homeShare, awayShare := predictor.WinShare(homeGoals, awayGoals)

	return &Record{
		ID:        uuid.NewString(),
		Home:      home,
		Away:      away,
		Country:   country,
		League:    league,
		Schema:    result.Schema,
		Numbers:   maps.Clone(result.Numbers),
		Texts:     maps.Clone(result.Texts),
		HomeShare: homeShare,
		AwayShare: awayShare,
		CreatedAt: time.Now().UTC(),
	}
}

// Result rebuilds the decoded prediction the record was made from. The raw
// response is not kept.
func (r *Record) Result() *predictor.Result {
	return &predictor.Result{
		Schema:  r.Schema,
		Numbers: maps.Clone(r.Numbers),
		Texts:   maps.Clone(r.Texts),
	}
}
