// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config resolves the server configuration once at startup from
// defaults, an optional YAML or TOML file, the environment and the OS
// keychain, in that order.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"

	kerrors "github.com/tombee/kontent-mcp/pkg/errors"
	"github.com/tombee/kontent-mcp/pkg/kontent"
)

// Transports accepted in Config.Transport.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
	TransportHTTP  = "http"
)

const (
	DefaultManagementAPIURL = "https://manage.kontent.ai/v2"
	DefaultDeliveryAPIURL   = "https://deliver.kontent.ai"
	DefaultPort             = 3001
)

// Config is the resolved server configuration.
type Config struct {
	// APIKey is the Management API key. In http mode each request brings
	// its own key and this may be empty.
	APIKey string `yaml:"api_key" toml:"api_key" env:"KONTENT_API_KEY"`

	// EnvironmentID is the Kontent.ai environment (project) id.
	EnvironmentID string `yaml:"environment_id" toml:"environment_id" env:"KONTENT_ENVIRONMENT_ID"`

	ManagementAPIURL string `yaml:"management_api_url" toml:"management_api_url" env:"KONTENT_MANAGE_API_URL"`
	DeliveryAPIURL   string `yaml:"delivery_api_url" toml:"delivery_api_url" env:"KONTENT_DELIVER_API_URL"`

	// Transport is stdio, sse or http.
	Transport string `yaml:"transport" toml:"transport" env:"KONTENT_MCP_TRANSPORT"`

	// Port is the listen port for the sse and http transports.
	Port int `yaml:"port" toml:"port" env:"PORT"`

	Log       LogConfig       `yaml:"log" toml:"log"`
	HTTP      HTTPConfig      `yaml:"http" toml:"http"`
	Telemetry TelemetryConfig `yaml:"telemetry" toml:"telemetry"`

	// Source records where each credential came from, for `config show`.
	Source Sources `yaml:"-" toml:"-"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" toml:"level" env:"LOG_LEVEL"`
	Format string `json:"format" yaml:"format" toml:"format" env:"LOG_FORMAT"`
}

// HTTPConfig configures the outbound Kontent.ai client.
type HTTPConfig struct {
	Timeout           time.Duration `json:"timeout" yaml:"timeout" toml:"timeout" env:"KONTENT_HTTP_TIMEOUT"`
	RetryAttempts     int           `json:"retry_attempts" yaml:"retry_attempts" toml:"retry_attempts" env:"KONTENT_HTTP_RETRY_ATTEMPTS"`
	RequestsPerSecond float64       `json:"requests_per_second" yaml:"requests_per_second" toml:"requests_per_second" env:"KONTENT_HTTP_REQUESTS_PER_SECOND"`
	Burst             int           `json:"burst" yaml:"burst" toml:"burst" env:"KONTENT_HTTP_BURST"`
}

// TelemetryConfig configures metrics and trace export.
type TelemetryConfig struct {
	Metrics       bool    `json:"metrics" yaml:"metrics" toml:"metrics" env:"KONTENT_MCP_METRICS"`
	TraceExporter string  `json:"trace_exporter" yaml:"trace_exporter" toml:"trace_exporter" env:"KONTENT_MCP_TRACE_EXPORTER"`
	Endpoint      string  `json:"endpoint" yaml:"endpoint" toml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Insecure      bool    `json:"insecure" yaml:"insecure" toml:"insecure" env:"OTEL_EXPORTER_OTLP_INSECURE"`
	SampleRate    float64 `json:"sample_rate" yaml:"sample_rate" toml:"sample_rate" env:"KONTENT_MCP_TRACE_SAMPLE_RATE"`
}

// Sources names where the credentials were resolved from.
type Sources struct {
	File   string
	APIKey string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ManagementAPIURL: DefaultManagementAPIURL,
		DeliveryAPIURL:   DefaultDeliveryAPIURL,
		Transport:        TransportStdio,
		Port:             DefaultPort,
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		HTTP: HTTPConfig{
			Timeout:           60 * time.Second,
			RequestsPerSecond: 10,
			Burst:             10,
		},
		Telemetry: TelemetryConfig{
			Metrics:       true,
			TraceExporter: "none",
			SampleRate:    1.0,
		},
	}
}

// Load resolves the configuration using the system keychain. An empty path
// falls back to DefaultPath when that file exists.
func Load(path string) (*Config, error) {
	return LoadWith(path, Keychain{})
}

// LoadWith is Load with an explicit key store.
func LoadWith(path string, keys KeyStore) (*Config, error) {
	cfg := Default()

	if path == "" {
		if p, err := DefaultPath(); err == nil {
			if _, statErr := os.Stat(p); statErr == nil {
				path = p
			}
		}
	}
	if path != "" {
		if err := cfg.loadFromFile(path); err != nil {
			return nil, &kerrors.ConfigError{
				Key:    "config_file",
				Reason: fmt.Sprintf("failed to load from %s", path),
				Cause:  err,
			}
		}
		cfg.Source.File = path
	}
	if cfg.APIKey != "" {
		cfg.Source.APIKey = "file"
	}

	envKey := cfg.APIKey
	if err := cfg.loadFromEnv(); err != nil {
		return nil, &kerrors.ConfigError{
			Key:    "environment",
			Reason: "failed to decode environment variables",
			Cause:  err,
		}
	}
	if cfg.APIKey != envKey {
		cfg.Source.APIKey = "env"
	}

	if cfg.APIKey == "" && cfg.EnvironmentID != "" && keys != nil {
		key, err := keys.Get(cfg.EnvironmentID)
		switch {
		case err == nil:
			cfg.APIKey = key
			cfg.Source.APIKey = "keychain"
		case !errors.Is(err, ErrKeyNotFound):
			slog.Debug("keychain lookup failed", "environment_id", cfg.EnvironmentID, "error", err)
		}
	}

	cfg.ManagementAPIURL = strings.TrimRight(cfg.ManagementAPIURL, "/")
	cfg.DeliveryAPIURL = strings.TrimRight(cfg.DeliveryAPIURL, "/")
	return cfg, nil
}

// loadFromFile decodes YAML or TOML depending on the file extension.
func (c *Config) loadFromFile(path string) error {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), c); err != nil {
			return fmt.Errorf("failed to parse TOML: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
	}
	return nil
}

// loadFromEnv overrides fields whose environment variable is set.
func (c *Config) loadFromEnv() error {
	err := envdecode.Decode(c)
	if err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return err
	}
	return nil
}

// Validate checks the configuration. Credentials are required only for
// the stdio and sse transports; in http mode they arrive per request.
func (c *Config) Validate() error {
	switch c.Transport {
	case TransportStdio, TransportSSE:
		if c.APIKey == "" {
			return &kerrors.ConfigError{Key: "api_key", Reason: "KONTENT_API_KEY is required for the " + c.Transport + " transport"}
		}
		if c.EnvironmentID == "" {
			return &kerrors.ConfigError{Key: "environment_id", Reason: "KONTENT_ENVIRONMENT_ID is required for the " + c.Transport + " transport"}
		}
	case TransportHTTP:
	default:
		return &kerrors.ConfigError{Key: "transport", Reason: fmt.Sprintf("unknown transport %q (want stdio, sse or http)", c.Transport)}
	}

	if c.EnvironmentID != "" && !kontent.IsUUID(c.EnvironmentID) {
		return &kerrors.ConfigError{Key: "environment_id", Reason: fmt.Sprintf("%q is not a valid UUID", c.EnvironmentID)}
	}
	for key, raw := range map[string]string{
		"management_api_url": c.ManagementAPIURL,
		"delivery_api_url":   c.DeliveryAPIURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return &kerrors.ConfigError{Key: key, Reason: fmt.Sprintf("%q is not an absolute URL", raw), Cause: err}
		}
	}
	if c.Transport != TransportStdio && (c.Port < 1 || c.Port > 65535) {
		return &kerrors.ConfigError{Key: "port", Reason: fmt.Sprintf("port must be between 1 and 65535, got %d", c.Port)}
	}
	return nil
}

// MaskedAPIKey returns the API key with all but the last four characters
// hidden.
func (c *Config) MaskedAPIKey() string {
	if c.APIKey == "" {
		return ""
	}
	if len(c.APIKey) <= 4 {
		return "****"
	}
	return strings.Repeat("*", 8) + c.APIKey[len(c.APIKey)-4:]
}
