package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/av-efi/eficonv/pkg/efi"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_AllFields(t *testing.T) {
	path := writeConfig(t, `limits:
  line: 120
  text: 4000

checks:
  dangling: false

schema:
  file: /tmp/avefi.json
  ref: "#/$defs/WorkVariant"
  source: https://example.org/schema.json

approval:
  countdown: 5s
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 120, cfg.Limits.Line)
	assert.Equal(t, 4000, cfg.Limits.Text)
	assert.False(t, cfg.DanglingEnabled())
	assert.Equal(t, "/tmp/avefi.json", cfg.Schema.File)
	assert.Equal(t, "#/$defs/WorkVariant", cfg.Schema.Ref)
	assert.Equal(t, "https://example.org/schema.json", cfg.Schema.Source)
	assert.Equal(t, 5*time.Second, cfg.Countdown())
}

func TestLoad_MinimalYAML(t *testing.T) {
	path := writeConfig(t, `limits:
  line: 100
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 100, cfg.Limits.Line)
	assert.Equal(t, efi.DefaultTextLimit, cfg.Limits.Text)
	assert.True(t, cfg.DanglingEnabled())
	assert.Equal(t, DefaultSchemaSource, cfg.Schema.Source)
	assert.Equal(t, time.Duration(0), cfg.Countdown())
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), ConfigFileName))
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{{invalid"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, efi.DefaultLineLimit, cfg.Limits.Line)
	assert.Equal(t, efi.DefaultTextLimit, cfg.Limits.Text)
	assert.True(t, cfg.DanglingEnabled())
	assert.Equal(t, DefaultSchemaFile(), cfg.Schema.File)
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvLineLimit:  "80",
		EnvTextLimit:  "",
		EnvSchemaFile: "/data/schema.json",
		EnvSchemaRef:  "#/$defs/Item",
	}
	lookup := func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(lookup))

	assert.Equal(t, 80, cfg.Limits.Line)
	assert.Equal(t, efi.DefaultTextLimit, cfg.Limits.Text)
	assert.Equal(t, "/data/schema.json", cfg.Schema.File)
	assert.Equal(t, "#/$defs/Item", cfg.Schema.Ref)
	assert.Equal(t, DefaultSchemaSource, cfg.Schema.Source)
}

func TestApplyEnv_InvalidInteger(t *testing.T) {
	lookup := func(name string) (string, bool) {
		if name == EnvLineLimit || name == EnvTextLimit {
			return "many", true
		}
		return "", false
	}

	err := Default().ApplyEnv(lookup)
	require.Error(t, err)
	assert.True(t, errors.Is(err, efi.ErrInvalidConfig))
	assert.Contains(t, err.Error(), EnvLineLimit)
	assert.Contains(t, err.Error(), EnvTextLimit)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr []string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{
			name:    "zero line limit",
			mutate:  func(c *Config) { c.Limits.Line = 0 },
			wantErr: []string{"limits.line"},
		},
		{
			name: "all problems reported",
			mutate: func(c *Config) {
				c.Limits.Line = -1
				c.Limits.Text = 0
				c.Approval.Countdown = "soon"
			},
			wantErr: []string{"limits.line", "limits.text", "approval.countdown"},
		},
		{
			name:    "negative countdown",
			mutate:  func(c *Config) { c.Approval.Countdown = "-3s" },
			wantErr: []string{"must not be negative"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, efi.ErrInvalidConfig))
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestResolve_ExplicitPathMustExist(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigNotFound))
}

func TestResolve_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `limits:
  line: 100
`)
	t.Setenv(EnvLineLimit, "90")

	cfg, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, 90, cfg.Limits.Line)
}

func TestResolve_InvalidFile(t *testing.T) {
	path := writeConfig(t, `limits:
  text: -5
`)

	_, err := Resolve(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, efi.ErrInvalidConfig))
}
