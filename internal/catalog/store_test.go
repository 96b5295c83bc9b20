package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauv0809/keybet/internal/database"
)

func setupStore(t *testing.T) CatalogStore {
	t.Helper()
	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)
	return NewStore(db)
}

func TestStore_ReplaceAndGetEntries(t *testing.T) {
	s := setupStore(t)

	err := s.ReplaceEntries([]TeamEntry{
		{Country: "England", League: "Premier League", Team: "Chelsea"},
		{Country: "England", League: "Premier League", Team: "Arsenal"},
		{Country: "England", League: "Premier League", Team: "Arsenal"},
		{Country: "Spain", League: "", Team: "Sevilla"},
	})
	require.NoError(t, err)

	entries, err := s.GetEntries()
	require.NoError(t, err)
	assert.Equal(t, []TeamEntry{
		{Country: "England", League: "Premier League", Team: "Arsenal"},
		{Country: "England", League: "Premier League", Team: "Chelsea"},
	}, entries)

	require.NoError(t, s.ReplaceEntries([]TeamEntry{
		{Country: "Spain", League: "La Liga", Team: "Sevilla"},
	}))
	entries, err = s.GetEntries()
	require.NoError(t, err)
	assert.Equal(t, []TeamEntry{{Country: "Spain", League: "La Liga", Team: "Sevilla"}}, entries, "replace should drop the previous catalog")
}

func TestLoadStore(t *testing.T) {
	s := setupStore(t)
	require.NoError(t, s.ReplaceEntries([]TeamEntry{
		{Country: "England", League: "Premier League", Team: "Chelsea"},
		{Country: "England", League: "Premier League", Team: "Arsenal"},
	}))

	c, err := LoadStore(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"Arsenal", "Chelsea"}, c.Teams("England", "Premier League"))
}

func TestLoadStore_Error(t *testing.T) {
	boom := errors.New("database is locked")
	m := NewMockStore()
	m.GetEntriesFunc = func() ([]TeamEntry, error) { return nil, boom }

	c, err := LoadStore(m)
	assert.Nil(t, c)

	var loadErr *DataLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "database", loadErr.Source)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, m.GetEntriesCalls)
}
