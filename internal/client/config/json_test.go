package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	path := writeTempJSON(t, dir, "cfg.json", map[string]any{
		"api_base_url":        "https://api.example",
		"locale":              "ko",
		"requests_per_second": 10,
		"chat_page_size":      25,
		"toast_ttl":           "5s",
	})

	t.Run("overlays present fields only", func(t *testing.T) {
		os.Args = []string{"bin", "-config", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "https://api.example", cfg.APIBaseURL)
		assert.Equal(t, "ko", cfg.Locale)
		assert.Equal(t, float64(10), cfg.RequestsPerSecond)
		assert.Equal(t, 25, cfg.ChatPageSize)
		assert.Equal(t, 5*time.Second, cfg.ToastTTL)
		assert.Equal(t, "technai.db", cfg.DBPath)
		assert.Equal(t, 20, cfg.CatalogPageSize)
	})

	t.Run("no flag leaves config alone", func(t *testing.T) {
		os.Args = []string{"bin"}
		cfg := &Config{APIBaseURL: "keep"}
		parseJson(cfg)
		assert.Equal(t, "keep", cfg.APIBaseURL)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ nope`), 0o600))
		os.Args = []string{"bin", "-c", bad}
		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"bin", "-c", filepath.Join(dir, "absent.json")}
		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
