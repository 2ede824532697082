package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/av-efi/eficonv/pkg/efi"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

const ConfigFileName = "efi.yaml"

// DefaultSchemaSource is where the AVefi JSON schema is published. Relative
// references inside a local copy resolve against it.
const DefaultSchemaSource = "https://raw.githubusercontent.com/AV-EFI/av-efi-schema/main/project/jsonschema/avefi_schema/model.schema.json"

// Environment variables overriding file settings.
const (
	EnvLineLimit    = efi.EnvPrefix + "LINE_LIMIT"
	EnvTextLimit    = efi.EnvPrefix + "TEXT_LIMIT"
	EnvSchemaFile   = efi.EnvPrefix + "SCHEMA_FILE"
	EnvSchemaRef    = efi.EnvPrefix + "SCHEMA_REF"
	EnvSchemaSource = efi.EnvPrefix + "SCHEMA_SOURCE"
)

type LimitsConfig struct {
	Line int `yaml:"line"`
	Text int `yaml:"text"`
}

type ChecksConfig struct {
	Dangling *bool `yaml:"dangling,omitempty"`
}

type SchemaConfig struct {
	File   string `yaml:"file,omitempty"`
	Ref    string `yaml:"ref,omitempty"`
	Source string `yaml:"source,omitempty"`
}

type ApprovalConfig struct {
	Countdown string `yaml:"countdown,omitempty"`
}

type Config struct {
	Limits   LimitsConfig   `yaml:"limits"`
	Checks   ChecksConfig   `yaml:"checks"`
	Schema   SchemaConfig   `yaml:"schema"`
	Approval ApprovalConfig `yaml:"approval"`
}

// DefaultSchemaFile is the cached schema location, or "" when the
// platform has no user cache directory.
func DefaultSchemaFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "efi_conv", "avefi_schema.json")
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Limits: LimitsConfig{Line: efi.DefaultLineLimit, Text: efi.DefaultTextLimit},
		Schema: SchemaConfig{File: DefaultSchemaFile(), Source: DefaultSchemaSource},
	}
}

// Load reads path on top of the defaults. Settings absent from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve loads .env from the working directory, then the config file at
// path (or ./efi.yaml when path is empty), then environment overrides,
// and validates the result. A missing efi.yaml is only an error when path
// was given explicitly.
func Resolve(path string) (*Config, error) {
	_ = godotenv.Load()

	explicit := path != ""
	if !explicit {
		path = ConfigFileName
	}

	cfg, err := Load(path)
	switch {
	case errors.Is(err, ErrConfigNotFound) && !explicit:
		cfg = Default()
	case err != nil:
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from the EFI_CONV_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	intVar := func(name string, dst *int) {
		v, ok := lookup(name)
		if !ok || v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q is not an integer", efi.ErrInvalidConfig, name, v))
			return
		}
		*dst = n
	}
	stringVar := func(name string, dst *string) {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}

	intVar(EnvLineLimit, &c.Limits.Line)
	intVar(EnvTextLimit, &c.Limits.Text)
	stringVar(EnvSchemaFile, &c.Schema.File)
	stringVar(EnvSchemaRef, &c.Schema.Ref)
	stringVar(EnvSchemaSource, &c.Schema.Source)
	return errors.Join(errs...)
}

// Validate reports every invalid setting at once. Each error wraps
// efi.ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	if c.Limits.Line <= 0 {
		errs = append(errs, fmt.Errorf("%w: limits.line must be positive, got %d", efi.ErrInvalidConfig, c.Limits.Line))
	}
	if c.Limits.Text <= 0 {
		errs = append(errs, fmt.Errorf("%w: limits.text must be positive, got %d", efi.ErrInvalidConfig, c.Limits.Text))
	}
	if c.Approval.Countdown != "" {
		d, err := time.ParseDuration(c.Approval.Countdown)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: approval.countdown: %v", efi.ErrInvalidConfig, err))
		} else if d < 0 {
			errs = append(errs, fmt.Errorf("%w: approval.countdown must not be negative", efi.ErrInvalidConfig))
		}
	}
	return errors.Join(errs...)
}

// DanglingEnabled reports whether dangling record detection is on.
// Unset means on.
func (c *Config) DanglingEnabled() bool {
	return c.Checks.Dangling == nil || *c.Checks.Dangling
}

// Countdown returns the parsed approval countdown. Call Validate first.
func (c *Config) Countdown() time.Duration {
	if c.Approval.Countdown == "" {
		return efi.DefaultForceApprovalCountdown
	}
	d, _ := time.ParseDuration(c.Approval.Countdown)
	return d
}
