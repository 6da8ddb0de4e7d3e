package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/coffeechat/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path of the sqlite snapshot file
//	-t string   path of the invitation template file
//	-l string   log level (debug, info, warn, error)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.SnapshotPath, "d", cfg.SnapshotPath, "path of the sqlite snapshot file")
	fs.StringVar(&cfg.TemplatePath, "t", cfg.TemplatePath, "path of the invitation template file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
