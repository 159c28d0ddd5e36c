package config

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "http://127.0.0.1:9090", "-d", "s.db", "-l", "ko", "-v", "debug", "-r", "4"},
			expected: &Config{
				APIBaseURL: "http://127.0.0.1:9090", DBPath: "s.db", Locale: "ko",
				LogLevel: "debug", RequestsPerSecond: 4,
			},
		},
		{
			name:     "foreign flags ignored",
			args:     []string{"cmd", "-c", "x.json", "-a", "http://h"},
			expected: &Config{APIBaseURL: "http://h"},
		},
		{name: "bad rate", args: []string{"cmd", "-r", "fast"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := os.Args
			t.Cleanup(func() { os.Args = orig })
			os.Args = tt.args

			cfg := &Config{}
			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg) })
				return
			}
			require.NotPanics(t, func() { parseFlags(cfg) })
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}
