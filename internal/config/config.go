// Package config loads the quotient settings from defaults, an optional YAML file
// and QUOTIENT_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	LogLevel string       `mapstructure:"log_level"`
	HTTP     HTTPConfig   `mapstructure:"http"`
	Limits   LimitsConfig `mapstructure:"limits"`
	Redis    RedisConfig  `mapstructure:"redis"`
}

// HTTPConfig configures the HTTP transport.
type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	CORSOrigin      string        `mapstructure:"cors_origin"`
	StaticDir       string        `mapstructure:"static_dir"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LimitsConfig bounds the work a single request may cause. Zero disables a limit.
type LimitsConfig struct {
	MaxStates        int `mapstructure:"max_states"`
	MaxDfaStates     int `mapstructure:"max_dfa_states"`
	BatchConcurrency int `mapstructure:"batch_concurrency"`
}

// RedisConfig enables the Redis store and locker when Addr is set.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

func defaults() map[string]any {
	return map[string]any{
		"log_level": "info",
		"http": map[string]any{
			"addr":             ":8080",
			"cors_origin":      "*",
			"static_dir":       "",
			"max_body_bytes":   1 << 20,
			"shutdown_timeout": "5s",
		},
		"limits": map[string]any{
			"max_states":        10_000,
			"max_dfa_states":    100_000,
			"batch_concurrency": 4,
		},
		"redis": map[string]any{
			"addr":     "",
			"password": "",
			"db":       0,
			"prefix":   "quotient:conversion:",
			"ttl":      "0s",
		},
	}
}

// envKeys maps each environment variable to its settings path.
var envKeys = map[string][]string{
	"QUOTIENT_LOG_LEVEL":                {"log_level"},
	"QUOTIENT_HTTP_ADDR":                {"http", "addr"},
	"QUOTIENT_HTTP_CORS_ORIGIN":         {"http", "cors_origin"},
	"QUOTIENT_HTTP_STATIC_DIR":          {"http", "static_dir"},
	"QUOTIENT_HTTP_MAX_BODY_BYTES":      {"http", "max_body_bytes"},
	"QUOTIENT_HTTP_SHUTDOWN_TIMEOUT":    {"http", "shutdown_timeout"},
	"QUOTIENT_LIMITS_MAX_STATES":        {"limits", "max_states"},
	"QUOTIENT_LIMITS_MAX_DFA_STATES":    {"limits", "max_dfa_states"},
	"QUOTIENT_LIMITS_BATCH_CONCURRENCY": {"limits", "batch_concurrency"},
	"QUOTIENT_REDIS_ADDR":               {"redis", "addr"},
	"QUOTIENT_REDIS_PASSWORD":           {"redis", "password"},
	"QUOTIENT_REDIS_DB":                 {"redis", "db"},
	"QUOTIENT_REDIS_PREFIX":             {"redis", "prefix"},
	"QUOTIENT_REDIS_TTL":                {"redis", "ttl"},
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := decode(defaults())
	if err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return cfg
}

// Load reads the configuration. path may be empty; a missing file is an error
// only when path was given explicitly.
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with a custom environment lookup.
func LoadWithEnv(path string, lookup func(string) (string, bool)) (*Config, error) {
	settings := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		var file map[string]any
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		merge(settings, file)
	}

	names := make([]string, 0, len(envKeys))
	for name := range envKeys {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if v, ok := lookup(name); ok {
			set(settings, envKeys[name], v)
		}
	}

	cfg, err := decode(settings)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings that cannot work.
func (c *Config) Validate() error {
	var errs []error
	if c.HTTP.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("http.max_body_bytes must be positive"))
	}
	if c.Limits.MaxStates < 0 || c.Limits.MaxDfaStates < 0 {
		errs = append(errs, errors.New("limits must not be negative"))
	}
	if c.Limits.BatchConcurrency <= 0 {
		errs = append(errs, errors.New("limits.batch_concurrency must be positive"))
	}
	return errors.Join(errs...)
}

func decode(settings map[string]any) (*Config, error) {
	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(settings); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// merge overlays src onto dst, descending into nested sections.
func merge(dst, src map[string]any) {
	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			if existing, ok := dst[k].(map[string]any); ok {
				merge(existing, sub)
				continue
			}
		}
		dst[k] = v
	}
}

func set(settings map[string]any, path []string, value string) {
	m := settings
	for _, key := range path[:len(path)-1] {
		sub, ok := m[key].(map[string]any)
		if !ok {
			sub = map[string]any{}
			m[key] = sub
		}
		m = sub
	}
	m[path[len(path)-1]] = value
}
