package config

import (
	"strings"

	"github.com/charmbracelet/log"
)

// ApplyLogging sets the level and formatter of the default logger. Unknown
// levels fall back to info.
func (l LogConfig) ApplyLogging() {
	level, err := log.ParseLevel(l.Level)
	if err != nil {
		log.Warn("Unknown log level, using info", "level", l.Level)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	switch strings.ToLower(l.Format) {
	case "json":
		log.SetFormatter(log.JSONFormatter)
	case "logfmt":
		log.SetFormatter(log.LogfmtFormatter)
	default:
		log.SetFormatter(log.TextFormatter)
	}
}
