// Package config loads monitor settings from an optional YAML file and
// STEPMON_* environment variables (a .env file is honored).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/penwyp/go-step-monitor/internal/core/constants"
	"github.com/penwyp/go-step-monitor/internal/data/kv"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

const (
	DefaultDir        = "~/.go-step-monitor"
	DefaultConfigFile = "~/.go-step-monitor/config.yaml"
	DefaultLogFile    = "~/.go-step-monitor/logs/app.log"
	DefaultSensorFile = "~/.go-step-monitor/sensor.txt"

	envPrefix = "STEPMON_"
)

// Config holds the monitor settings
type Config struct {
	Dir             string        `yaml:"dir"`
	Backend         string        `yaml:"backend"`
	Timezone        string        `yaml:"timezone"`
	SensorFile      string        `yaml:"sensor_file"`
	PersistInterval time.Duration `yaml:"persist_interval"`
	LogLevel        string        `yaml:"log_level"`
	LogFormat       string        `yaml:"log_format"` // text, json
	LogFile         string        `yaml:"log_file"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Dir:             DefaultDir,
		Backend:         kv.BackendFile,
		Timezone:        "Local",
		SensorFile:      DefaultSensorFile,
		PersistInterval: constants.PersistInterval,
		LogLevel:        "info",
		LogFormat:       "text",
		LogFile:         DefaultLogFile,
	}
}

// Load builds the configuration: defaults, then the YAML file at path (when
// it exists), then environment variables. envFile names an optional dotenv
// file whose values apply unless the process environment sets the same key.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	env, err := readEnv(envFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(env); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), c); err != nil {
		return fmt.Errorf("failed to unmarshal config %s: %w", path, err)
	}
	return nil
}

// readEnv merges the dotenv file with the process environment, the latter
// winning
func readEnv(envFile string) (map[string]string, error) {
	env := make(map[string]string)
	if envFile != "" {
		values, err := godotenv.Read(envFile)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read env file %s: %w", envFile, err)
		}
		for k, v := range values {
			if strings.HasPrefix(k, envPrefix) {
				env[k] = v
			}
		}
	}

	for _, entry := range os.Environ() {
		k, v, ok := strings.Cut(entry, "=")
		if ok && strings.HasPrefix(k, envPrefix) {
			env[k] = v
		}
	}
	return env, nil
}

func (c *Config) applyEnv(env map[string]string) error {
	strs := map[string]*string{
		"DIR":         &c.Dir,
		"BACKEND":     &c.Backend,
		"TIMEZONE":    &c.Timezone,
		"SENSOR_FILE": &c.SensorFile,
		"LOG_LEVEL":   &c.LogLevel,
		"LOG_FORMAT":  &c.LogFormat,
		"LOG_FILE":    &c.LogFile,
	}
	for name, dst := range strs {
		if v, ok := env[envPrefix+name]; ok && v != "" {
			*dst = v
		}
	}

	if v, ok := env[envPrefix+"PERSIST_INTERVAL"]; ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %sPERSIST_INTERVAL: %v", ErrInvalidConfig, envPrefix, err)
		}
		c.PersistInterval = d
	}
	return nil
}

// Validate checks the settings for values the monitor cannot run with
func (c *Config) Validate() error {
	switch c.Backend {
	case kv.BackendFile, kv.BackendSQLite, kv.BackendMemory:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Backend)
	}

	if c.PersistInterval <= 0 {
		return fmt.Errorf("%w: persist_interval must be positive, got %s", ErrInvalidConfig, c.PersistInterval)
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Timezone, err)
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.LogFormat)
	}

	if c.Dir == "" {
		return fmt.Errorf("%w: dir must not be empty", ErrInvalidConfig)
	}
	return nil
}
