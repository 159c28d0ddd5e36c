package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/dmitrijs2005/technai/internal/flagx"
	"github.com/joho/godotenv"
)

// Environment variables understood by parseEnv.
const (
	EnvAPIBaseURL = "TECHNAI_API_URL"
	EnvDBPath     = "TECHNAI_DB_PATH"
	EnvLocale     = "TECHNAI_LOCALE"
	EnvLogLevel   = "TECHNAI_LOG_LEVEL"
	EnvRPS        = "TECHNAI_RPS"
)

// parseEnv loads the dotenv file named by -env (default ".env"; a missing
// file is fine) and overlays any TECHNAI_* variables that are set. Values
// already present in the process environment are not overridden by the file.
func parseEnv(cfg *Config) {
	if err := godotenv.Load(flagx.EnvFileFlag()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(EnvLocale); v != "" {
		cfg.Locale = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvRPS); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			panic(err)
		}
		cfg.RequestsPerSecond = rps
	}
}
