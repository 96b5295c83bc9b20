package metrics

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauv0809/keybet/internal/database"
)

func setupTestStore(t *testing.T) MetricsStore {
	t.Helper()

	db, teardown, err := database.InitDB(filepath.Join(t.TempDir(), "metrics.db"), "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	return New(db)
}

func TestIncrementAndGetAll(t *testing.T) {
	store := setupTestStore(t)

	counters, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, counters)

	store.Increment(KeyPredictionRequests)
	counters, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{KeyPredictionRequests: 1}, counters)

	store.Increment(KeyPredictionRequests)
	store.Increment(KeySlackNotifSent)
	counters, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		KeyPredictionRequests: 2,
		KeySlackNotifSent:     1,
	}, counters)
}

func TestUsage_PersistsCounters(t *testing.T) {
	store := setupTestStore(t)
	usage := NewUsage(store)

	usage.IncLoginAttempts()
	usage.IncLoginAttempts()
	usage.IncLoginFailures()
	usage.IncPredictionRequests()
	usage.ObservePredictionDuration(0.2)
	usage.SetCatalogTeams(40)

	counters, err := store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		KeyLoginAttempts:      2,
		KeyLoginFailures:      1,
		KeyPredictionRequests: 1,
	}, counters)
}
