package catalog

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
)

// LoadRemote builds a catalog by walking the countries, leagues and teams
// endpoints of a remote source.
func LoadRemote(ctx context.Context, src RemoteSource) (*Catalog, error) {
	countries, err := src.GetCountries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch countries: %w", err)
	}

	var entries []TeamEntry
	for _, country := range countries {
		leagues, err := src.GetLeagues(ctx, country)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch leagues for %s: %w", country, err)
		}
		for _, league := range leagues {
			teams, err := src.GetTeams(ctx, country, league)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch teams for %s/%s: %w", country, league, err)
			}
			log.Debug("Fetched remote teams", "country", country, "league", league, "count", len(teams))
			for _, team := range teams {
				entries = append(entries, TeamEntry{Country: country, League: league, Team: team})
			}
		}
	}

	c := New(entries)
	log.Info("Loaded remote team catalog", "countries", len(countries), "teams", c.Len())
	return c, nil
}
