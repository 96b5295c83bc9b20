package catalog

import (
	"context"
	"fmt"

	"github.com/mauv0809/keybet/internal/config"
)

// LoadSource loads the catalog from the source named in cfg. store is only
// consulted for the db source and remote only for the remote source.
func LoadSource(ctx context.Context, cfg config.CatalogConfig, store CatalogStore, remote RemoteSource) (*Catalog, error) {
	switch cfg.Source {
	case config.SourceFile, "":
		return Load(cfg.Path)
	case config.SourceDB:
		if store == nil {
			return nil, &DataLoadError{Source: "database", Err: fmt.Errorf("no database configured")}
		}
		return LoadStore(store)
	case config.SourceRemote:
		if remote == nil {
			return nil, &DataLoadError{Source: "remote", Err: fmt.Errorf("no server configured")}
		}
		c, err := LoadRemote(ctx, remote)
		if err != nil {
			return nil, &DataLoadError{Source: "remote", Err: err}
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
}
