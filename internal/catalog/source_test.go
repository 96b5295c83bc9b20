package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauv0809/keybet/internal/config"
)

func TestLoadSource(t *testing.T) {
	ctx := context.Background()

	c, err := LoadSource(ctx, config.CatalogConfig{Source: config.SourceFile, Path: writeCSV(t, sampleCSV)}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Len())

	store := NewMockStore()
	store.GetEntriesFunc = func() ([]TeamEntry, error) {
		return []TeamEntry{{Country: "Spain", League: "La Liga", Team: "Sevilla"}}, nil
	}
	c, err = LoadSource(ctx, config.CatalogConfig{Source: config.SourceDB}, store, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Spain"}, c.Countries())

	remote := &MockRemote{Data: map[string]map[string][]string{"Italy": {"Serie A": {"Roma"}}}}
	c, err = LoadSource(ctx, config.CatalogConfig{Source: config.SourceRemote}, nil, remote)
	require.NoError(t, err)
	assert.Equal(t, []string{"Roma"}, c.Teams("Italy", "Serie A"))
}

func TestLoadSource_Errors(t *testing.T) {
	ctx := context.Background()
	var loadErr *DataLoadError

	_, err := LoadSource(ctx, config.CatalogConfig{Source: config.SourceDB}, nil, nil)
	assert.ErrorAs(t, err, &loadErr)

	boom := errors.New("connection refused")
	_, err = LoadSource(ctx, config.CatalogConfig{Source: config.SourceRemote}, nil, &MockRemote{Err: boom})
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "remote", loadErr.Source)
	assert.ErrorIs(t, err, boom)

	_, err = LoadSource(ctx, config.CatalogConfig{Source: "ftp"}, nil, nil)
	assert.Error(t, err)
}
