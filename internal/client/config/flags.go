package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/technai/internal/flagx"
)

// parseFlags overlays cfg with command-line flags:
//
//	-a string   REST backend base URL
//	-d string   session database path
//	-l string   message locale (en, ko)
//	-v string   log level
//	-r float    outbound requests per second (0 = unlimited)
//
// Only these flags are looked at; the rest of os.Args is ignored.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-l", "-v", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "REST backend base URL")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "session database path")
	fs.StringVar(&cfg.Locale, "l", cfg.Locale, "message locale")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")
	fs.Float64Var(&cfg.RequestsPerSecond, "r", cfg.RequestsPerSecond, "outbound requests per second")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
