package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/technai/internal/flagx"
	"github.com/dmitrijs2005/technai/internal/timex"
)

// JsonConfig is the on-disk shape of the optional JSON config file.
// Zero values leave the corresponding Config field untouched.
type JsonConfig struct {
	APIBaseURL        string         `json:"api_base_url"`
	DBPath            string         `json:"db_path"`
	Locale            string         `json:"locale"`
	LogLevel          string         `json:"log_level"`
	RequestsPerSecond float64        `json:"requests_per_second"`
	RequestBurst      int            `json:"request_burst"`
	CatalogPageSize   int            `json:"catalog_page_size"`
	BookmarkPageSize  int            `json:"bookmark_page_size"`
	ChatPageSize      int            `json:"chat_page_size"`
	ToastTTL          timex.Duration `json:"toast_ttl"`
	TrashDays         int            `json:"trash_days"`
}

// parseJson overlays cfg with the JSON file named by -c/-config. It panics
// on read or decode errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.DBPath, jc.DBPath)
	setString(&cfg.Locale, jc.Locale)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestsPerSecond > 0 {
		cfg.RequestsPerSecond = jc.RequestsPerSecond
	}
	setInt(&cfg.RequestBurst, jc.RequestBurst)
	setInt(&cfg.CatalogPageSize, jc.CatalogPageSize)
	setInt(&cfg.BookmarkPageSize, jc.BookmarkPageSize)
	setInt(&cfg.ChatPageSize, jc.ChatPageSize)
	setInt(&cfg.TrashDays, jc.TrashDays)
	if jc.ToastTTL.Duration > 0 {
		cfg.ToastTTL = jc.ToastTTL.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}
