package config

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Catalog CatalogConfig `mapstructure:"catalog" yaml:"catalog"`
	Schema  SchemaConfig  `mapstructure:"schema" yaml:"schema"`
	DB      DBConfig      `mapstructure:"db" yaml:"db"`
	HTTP    HTTPConfig    `mapstructure:"http" yaml:"http"`
	Slack   SlackConfig   `mapstructure:"slack" yaml:"slack"`
	PubSub  PubSubConfig  `mapstructure:"pubsub" yaml:"pubsub"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// ServerConfig points at the remote prediction server.
type ServerConfig struct {
	URL            string `mapstructure:"url" yaml:"url"`
	IPFile         string `mapstructure:"ip_file" yaml:"ip_file"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	Username       string `mapstructure:"username" yaml:"username,omitempty"`
}

// CatalogConfig selects where the team catalog comes from.
type CatalogConfig struct {
	Source string `mapstructure:"source" yaml:"source"`
	Path   string `mapstructure:"path" yaml:"path"`
}

// SchemaConfig selects the prediction response schema.
type SchemaConfig struct {
	Name string `mapstructure:"name" yaml:"name"`
	// Login is "auto" (follow the schema), "required" or "disabled".
	Login string `mapstructure:"login" yaml:"login"`
	// Keys maps logical field names to the wire keys of this deployment.
	Keys map[string]string `mapstructure:"keys" yaml:"keys,omitempty"`
	// Optional lists logical fields this deployment may leave out of a
	// prediction. Every other field of the schema is required.
	Optional []string `mapstructure:"optional" yaml:"optional,omitempty"`
}

type DBConfig struct {
	Path       string `mapstructure:"path" yaml:"path"`
	TursoURL   string `mapstructure:"turso_url" yaml:"turso_url,omitempty"`
	TursoToken string `mapstructure:"turso_token" yaml:"turso_token,omitempty"`
}

type HTTPConfig struct {
	Port      string  `mapstructure:"port" yaml:"port"`
	RateLimit float64 `mapstructure:"rate_limit" yaml:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst" yaml:"rate_burst"`
}

type SlackConfig struct {
	Token     string `mapstructure:"token" yaml:"token,omitempty"`
	ChannelID string `mapstructure:"channel_id" yaml:"channel_id,omitempty"`
}

type PubSubConfig struct {
	ProjectID string `mapstructure:"project_id" yaml:"project_id,omitempty"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}
