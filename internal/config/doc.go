// Package config loads runtime configuration for the coffeechat CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path of the sqlite snapshot file
//	-t string   path of the invitation template file
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "200ms" or integer nanoseconds:
//
//	{
//	  "snapshot_path": "coffeechat.db",
//	  "template_path": "invite.tmpl",
//	  "log_level": "info",
//	  "poll_interval": "200ms"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
