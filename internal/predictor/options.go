package predictor

import (
	"fmt"

	"github.com/mauv0809/keybet/internal/config"
	"github.com/mauv0809/keybet/internal/metrics"
)

// SchemaFromConfig resolves the named schema and applies the configured
// wire key overrides and optional fields.
func SchemaFromConfig(cfg config.SchemaConfig) (Schema, error) {
	schema, err := SchemaByName(cfg.Name)
	if err != nil {
		return Schema{}, err
	}
	if len(cfg.Keys) > 0 {
		if schema, err = schema.WithKeys(cfg.Keys); err != nil {
			return Schema{}, err
		}
	}
	if len(cfg.Optional) > 0 {
		if schema, err = schema.WithOptional(cfg.Optional); err != nil {
			return Schema{}, err
		}
	}
	return schema, nil
}

// NewClientFromConfig builds a client for cfg.Server.URL using the
// configured schema, login mode and timeout.
func NewClientFromConfig(cfg config.Config, m metrics.Metrics) (*APIClient, error) {
	if cfg.Server.URL == "" {
		return nil, &ValidationError{Message: fmt.Sprintf("no server address configured; set server.url or create %s", cfg.Server.IPFile)}
	}
	schema, err := SchemaFromConfig(cfg.Schema)
	if err != nil {
		return nil, err
	}

	opts := []Option{WithSchema(schema), WithTimeout(cfg.Timeout())}
	if m != nil {
		opts = append(opts, WithMetrics(m))
	}
	switch cfg.Schema.Login {
	case config.LoginRequired:
		opts = append(opts, WithRequireLogin(true))
	case config.LoginDisabled:
		opts = append(opts, WithRequireLogin(false))
	}
	return NewClient(cfg.Server.URL, opts...), nil
}
