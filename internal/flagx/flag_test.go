package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		owned []string
		want  []string
	}{
		{
			name:  "separate value",
			args:  []string{"-c", "conf.json", "-a", "http://localhost:8080"},
			owned: []string{"-c", "-config"},
			want:  []string{"-c", "conf.json"},
		},
		{
			name:  "equals form",
			args:  []string{"-config=alt.json", "-a", "x"},
			owned: []string{"-c", "-config"},
			want:  []string{"-config=alt.json"},
		},
		{
			name:  "foreign flags dropped",
			args:  []string{"-x", "1", "--y=2", "positional"},
			owned: []string{"-c"},
			want:  []string{},
		},
		{
			name:  "trailing flag without value",
			args:  []string{"-c"},
			owned: []string{"-c"},
			want:  []string{"-c"},
		},
		{
			name:  "next token is a flag, not a value",
			args:  []string{"-c", "-v", "debug"},
			owned: []string{"-c"},
			want:  []string{"-c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.owned))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"bin", "-a", "http://x", "-c", "cfg.json"}
	assert.Equal(t, "cfg.json", ConfigFileFlag())

	os.Args = []string{"bin", "-config=other.json"}
	assert.Equal(t, "other.json", ConfigFileFlag())

	os.Args = []string{"bin"}
	assert.Equal(t, "", ConfigFileFlag())
}

func TestEnvFileFlag(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"bin"}
	assert.Equal(t, ".env", EnvFileFlag())

	os.Args = []string{"bin", "-env", "prod.env", "-v", "debug"}
	assert.Equal(t, "prod.env", EnvFileFlag())
}
