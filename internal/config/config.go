package config

import "time"

// Config holds runtime settings for the coffeechat CLI.
//
// Fields:
//   - SnapshotPath: path of the sqlite file persisting drafts and settings.
//   - TemplatePath: path of the invitation template loaded at startup.
//   - LogLevel: minimum log level (debug, info, warn, error).
//   - PollInterval: how often the REPL polls a running operation.
type Config struct {
	SnapshotPath string
	TemplatePath string
	LogLevel     string
	PollInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.SnapshotPath = "coffeechat.db"
	c.TemplatePath = "invite.tmpl"
	c.LogLevel = "info"
	c.PollInterval = 200 * time.Millisecond
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
