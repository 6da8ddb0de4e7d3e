package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/coffeechat/internal/flagx"
	"github.com/dmitrijs2005/coffeechat/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "200ms" or as integer nanoseconds.
type JsonConfig struct {
	SnapshotPath string         `json:"snapshot_path"`
	TemplatePath string         `json:"template_path"`
	LogLevel     string         `json:"log_level"`
	PollInterval timex.Duration `json:"poll_interval"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c/-config flags via flagx.JsonConfigFlags();
// when no path is given the function returns without touching cfg. Read or
// unmarshal errors panic, startup cannot proceed on a broken config file.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.SnapshotPath != "" {
		cfg.SnapshotPath = jc.SnapshotPath
	}
	if jc.TemplatePath != "" {
		cfg.TemplatePath = jc.TemplatePath
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.PollInterval.Duration != 0 {
		cfg.PollInterval = time.Duration(jc.PollInterval.Duration)
	}
}
