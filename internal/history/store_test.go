package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauv0809/keybet/internal/database"
	"github.com/mauv0809/keybet/internal/predictor"
)

func setupTestStore(t *testing.T) Store {
	t.Helper()
	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)
	return New(db)
}

func newTestRecord(home, away string, homeGoals, awayGoals float64, at time.Time) *Record {
	r := NewRecord(home, away, "England", "Premier League", &predictor.Result{
		Schema:  predictor.SchemaClassic,
		Numbers: map[string]float64{predictor.FieldFTHG: homeGoals, predictor.FieldFTAG: awayGoals},
		Texts:   map[string]string{predictor.FieldFTR: "H"},
	})
	r.CreatedAt = at
	return r
}

func TestNewRecord(t *testing.T) {
	r := newTestRecord("Arsenal", "Chelsea", 2, 1, time.Now())

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, 66, r.HomeShare)
	assert.Equal(t, 34, r.AwayShare)
	assert.Equal(t, predictor.SchemaClassic, r.Schema)

	other := newTestRecord("Arsenal", "Chelsea", 2, 1, time.Now())
	assert.NotEqual(t, r.ID, other.ID)
}

func TestStore_AddListCount(t *testing.T) {
	s := setupTestStore(t)
	base := time.Date(2025, 8, 16, 15, 0, 0, 0, time.UTC)

	first := newTestRecord("Arsenal", "Chelsea", 2, 1, base)
	second := newTestRecord("Leeds United", "Hull City", 0, 0, base.Add(time.Hour))
	require.NoError(t, s.Add(first))
	require.NoError(t, s.Add(second))
	require.NoError(t, s.Add(first), "adding the same record twice is a no-op")

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	records, err := s.List(0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, second.ID, records[0].ID, "newest record first")
	assert.Equal(t, first.ID, records[1].ID)

	got := records[1]
	assert.Equal(t, "Arsenal", got.Home)
	assert.Equal(t, "Chelsea", got.Away)
	assert.Equal(t, "England", got.Country)
	assert.Equal(t, map[string]float64{"FTHG": 2, "FTAG": 1}, got.Numbers)
	assert.Equal(t, map[string]string{"FTR": "H"}, got.Texts)
	assert.Equal(t, 66, got.HomeShare)
	assert.True(t, base.Equal(got.CreatedAt))

	limited, err := s.List(1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, second.ID, limited[0].ID)
}

func TestStore_ListEmpty(t *testing.T) {
	s := setupTestStore(t)

	records, err := s.List(10)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}
