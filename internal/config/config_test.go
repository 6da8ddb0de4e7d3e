package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "coffeechat.db", c.SnapshotPath)
	assert.Equal(t, "invite.tmpl", c.TemplatePath)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 200*time.Millisecond, c.PollInterval)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "coffeechat.db", cfg.SnapshotPath)
	assert.Equal(t, "invite.tmpl", cfg.TemplatePath)
}
