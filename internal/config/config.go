package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Catalog sources.
const (
	SourceFile   = "file"
	SourceRemote = "remote"
	SourceDB     = "db"
)

// Login modes.
const (
	LoginAuto     = "auto"
	LoginRequired = "required"
	LoginDisabled = "disabled"
)

// EnvPrefix is prepended to every configuration key when read from the
// environment, e.g. KEYBET_SERVER_URL.
const EnvPrefix = "KEYBET"

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Server: ServerConfig{
			IPFile:         "server_ip.txt",
			TimeoutSeconds: 10,
		},
		Catalog: CatalogConfig{
			Source: SourceFile,
			Path:   "teams.csv",
		},
		Schema: SchemaConfig{
			Name:  "keybet",
			Login: LoginAuto,
		},
		DB: DBConfig{
			Path: "keybet.db",
		},
		HTTP: HTTPConfig{
			Port:      "8080",
			RateLimit: 10,
			RateBurst: 20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// legacyEnv lists environment variables read without the KEYBET_ prefix.
var legacyEnv = map[string][]string{
	"db.path":           {"DB_NAME"},
	"db.turso_url":      {"TURSO_PRIMARY_URL"},
	"db.turso_token":    {"TURSO_AUTH_TOKEN"},
	"http.port":         {"PORT"},
	"slack.token":       {"SLACK_BOT_TOKEN"},
	"slack.channel_id":  {"SLACK_CHANNEL_ID"},
	"pubsub.project_id": {"GCP_PROJECT"},
}

// NewViper returns a viper instance with the defaults and environment
// bindings in place. Callers may bind flags on it before calling Load.
func NewViper() *viper.Viper {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, reading from environment variables")
	}

	v := viper.New()
	def := Default()
	v.SetDefault("server.url", def.Server.URL)
	v.SetDefault("server.ip_file", def.Server.IPFile)
	v.SetDefault("server.timeout_seconds", def.Server.TimeoutSeconds)
	v.SetDefault("server.username", def.Server.Username)
	v.SetDefault("catalog.source", def.Catalog.Source)
	v.SetDefault("catalog.path", def.Catalog.Path)
	v.SetDefault("schema.name", def.Schema.Name)
	v.SetDefault("schema.login", def.Schema.Login)
	v.SetDefault("db.path", def.DB.Path)
	v.SetDefault("db.turso_url", def.DB.TursoURL)
	v.SetDefault("db.turso_token", def.DB.TursoToken)
	v.SetDefault("http.port", def.HTTP.Port)
	v.SetDefault("http.rate_limit", def.HTTP.RateLimit)
	v.SetDefault("http.rate_burst", def.HTTP.RateBurst)
	v.SetDefault("slack.token", def.Slack.Token)
	v.SetDefault("slack.channel_id", def.Slack.ChannelID)
	v.SetDefault("pubsub.project_id", def.PubSub.ProjectID)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range legacyEnv {
		envKey := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		_ = v.BindEnv(append([]string{key, envKey}, names...)...)
	}
	return v
}

// Load reads configFile (or the first keybet.yaml found in the working
// directory or ~/.keybet) into v and returns the resulting configuration.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("keybet")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".keybet"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Debug("No config file found, using defaults and environment")
	} else {
		log.Debug("Using config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.Server.URL == "" && cfg.Server.IPFile != "" {
		ip, err := readIPFile(cfg.Server.IPFile)
		if err != nil {
			return Config{}, err
		}
		cfg.Server.URL = ip
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// readIPFile returns the trimmed content of path, or "" when it does not
// exist.
func readIPFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read server address from %s: %w", path, err)
	}
	log.Debug("Read server address", "path", path)
	return strings.TrimSpace(string(b)), nil
}

// Validate checks enumerated values and ranges.
func (c Config) Validate() error {
	switch c.Catalog.Source {
	case SourceFile, SourceRemote, SourceDB:
	default:
		return fmt.Errorf("invalid catalog source %q (want %s, %s or %s)", c.Catalog.Source, SourceFile, SourceRemote, SourceDB)
	}
	switch c.Schema.Login {
	case LoginAuto, LoginRequired, LoginDisabled:
	default:
		return fmt.Errorf("invalid login mode %q (want %s, %s or %s)", c.Schema.Login, LoginAuto, LoginRequired, LoginDisabled)
	}
	if c.Server.TimeoutSeconds <= 0 || c.Server.TimeoutSeconds > 300 {
		return fmt.Errorf("server timeout must be between 1 and 300 seconds, got %d", c.Server.TimeoutSeconds)
	}
	if c.HTTP.RateLimit < 0 || c.HTTP.RateBurst < 0 {
		return errors.New("rate limit and burst must not be negative")
	}
	return nil
}

// Timeout returns the request timeout of the prediction client.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSeconds) * time.Second
}

// Redacted returns a copy with secrets masked, for display.
func (c Config) Redacted() Config {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return "********"
	}
	c.DB.TursoToken = mask(c.DB.TursoToken)
	c.Slack.Token = mask(c.Slack.Token)
	return c
}

// YAML renders c as a YAML document.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteDefault writes the default configuration to path. An existing file
// is left untouched unless force is set.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := Default().YAML()
	if err != nil {
		return err
	}
	header := []byte("# KeyBet configuration. Environment variables KEYBET_<SECTION>_<KEY> override these values.\n")
	return os.WriteFile(path, append(header, data...), 0o600)
}
