package catalog

import "context"

// Lookup is the read side of a team catalog. Unknown keys yield empty
// results, never errors, so selectors can clear dependent choices freely.
type Lookup interface {
	Countries() []string
	Leagues(country string) []string
	Teams(country, league string) []string
	Contains(country, league, team string) bool
}

var _ Lookup = (*Catalog)(nil)

// RemoteSource is a server exposing the catalog over HTTP.
type RemoteSource interface {
	GetCountries(ctx context.Context) ([]string, error)
	GetLeagues(ctx context.Context, country string) ([]string, error)
	GetTeams(ctx context.Context, country, league string) ([]string, error)
}

// CatalogStore persists catalog entries.
type CatalogStore interface {
	ReplaceEntries(entries []TeamEntry) error
	GetEntries() ([]TeamEntry, error)
}
