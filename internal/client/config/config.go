package config

import "time"

// Config holds runtime settings for the technai CLI.
type Config struct {
	// APIBaseURL is the scheme://host[:port] of the REST backend.
	APIBaseURL string
	// DBPath is the SQLite file holding the persisted session.
	DBPath   string
	Locale   string
	LogLevel string

	// RequestsPerSecond throttles outbound calls; 0 disables throttling.
	RequestsPerSecond float64
	RequestBurst      int

	CatalogPageSize  int
	BookmarkPageSize int
	HistoryPageSize  int
	ChatPageSize     int
	SessionPageSize  int

	// ToastTTL is how long a notification stays visible.
	ToastTTL  time.Duration
	TrashDays int
}

// LoadDefaults populates c with defaults matching the web client.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.DBPath = "technai.db"
	c.Locale = "en"
	c.LogLevel = "info"
	c.RequestsPerSecond = 0
	c.RequestBurst = 5
	c.CatalogPageSize = 20
	c.BookmarkPageSize = 10
	c.HistoryPageSize = 10
	c.ChatPageSize = 50
	c.SessionPageSize = 20
	c.ToastTTL = 3 * time.Second
	c.TrashDays = 30
}

// LoadConfig applies defaults, then .env/environment, then the JSON file
// (if -c/-config is given), then command-line flags. Later sources win.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
