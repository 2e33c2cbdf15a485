package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppName is the project name, also used for the config directory (~/.ac-garden)
const AppName = "ac-garden"

// DefaultThrottleMillis is the minimum gap between submission page requests
const DefaultThrottleMillis = 1500

// Config holds all configuration for the archiver
type Config struct {
	// AtCoder service settings: where the archive lives and who commits
	AtCoder ServiceConfig `json:"atcoder" yaml:"atcoder"`

	// Throttling of submission page requests
	Throttle ThrottleConfig `json:"throttle" yaml:"throttle"`

	// Logging configuration
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// ServiceConfig holds the per-service settings consumed by the pipeline
type ServiceConfig struct {
	RepositoryPath string `json:"repository_path" yaml:"repository_path"`
	UserID         string `json:"user_id" yaml:"user_id"`
	UserEmail      string `json:"user_email" yaml:"user_email"`
}

// ThrottleConfig holds the page retrieval throttle settings
type ThrottleConfig struct {
	MinIntervalMillis int `json:"min_interval_ms" yaml:"min_interval_ms"`
}

// MinInterval returns the throttle floor as a duration
func (t ThrottleConfig) MinInterval() time.Duration {
	if t.MinIntervalMillis <= 0 {
		return DefaultThrottleMillis * time.Millisecond
	}
	return time.Duration(t.MinIntervalMillis) * time.Millisecond
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `json:"level" yaml:"level"`
	File  string `json:"file" yaml:"file"`
}

// DefaultConfig returns a Config with sensible defaults. The service
// fields are intentionally empty; init writes this skeleton for the user
// to fill in.
func DefaultConfig() *Config {
	return &Config{
		AtCoder: ServiceConfig{},
		Throttle: ThrottleConfig{
			MinIntervalMillis: DefaultThrottleMillis,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Dir returns the configuration directory (~/.ac-garden)
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, "."+AppName), nil
}

// File returns the canonical configuration file path (~/.ac-garden/config.json)
func File() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFromFile loads configuration from a JSON or YAML file. An empty
// path means the canonical file; a missing canonical file is not an error
// (first run).
func (c *Config) LoadFromFile(path string) error {
	canonical := path == ""
	if canonical {
		var err error
		path, err = File()
		if err != nil {
			return err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if canonical && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	return nil
}

// LoadFromEnv overrides configuration from ACGARDEN_* environment variables
func (c *Config) LoadFromEnv() error {
	if repo := os.Getenv("ACGARDEN_REPOSITORY_PATH"); repo != "" {
		c.AtCoder.RepositoryPath = repo
	}
	if user := os.Getenv("ACGARDEN_USER_ID"); user != "" {
		c.AtCoder.UserID = user
	}
	if email := os.Getenv("ACGARDEN_USER_EMAIL"); email != "" {
		c.AtCoder.UserEmail = email
	}
	if ms := os.Getenv("ACGARDEN_THROTTLE_MS"); ms != "" {
		if val, err := strconv.Atoi(ms); err == nil && val > 0 {
			c.Throttle.MinIntervalMillis = val
		}
	}
	if level := os.Getenv("ACGARDEN_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if file := os.Getenv("ACGARDEN_LOG_FILE"); file != "" {
		c.Logging.File = file
	}
	return nil
}

// MergeCommandLineFlags merges command line flag values into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if repo, ok := flags["repository"].(string); ok && repo != "" {
		c.AtCoder.RepositoryPath = repo
	}
	if user, ok := flags["user"].(string); ok && user != "" {
		c.AtCoder.UserID = user
	}
	if email, ok := flags["email"].(string); ok && email != "" {
		c.AtCoder.UserEmail = email
	}
	if ms, ok := flags["throttle-ms"].(int); ok && ms > 0 {
		c.Throttle.MinIntervalMillis = ms
	}
	if level, ok := flags["log-level"].(string); ok && level != "" {
		c.Logging.Level = level
	}
}

// Validate checks that the configuration can drive an archive run
func (c *Config) Validate() error {
	var errs []error

	if c.AtCoder.RepositoryPath == "" {
		errs = append(errs, errors.New("atcoder repository_path is required"))
	}
	if c.AtCoder.UserID == "" {
		errs = append(errs, errors.New("atcoder user_id is required"))
	}
	if c.AtCoder.UserEmail == "" {
		errs = append(errs, errors.New("atcoder user_email is required"))
	}
	if c.Throttle.MinIntervalMillis < 0 {
		errs = append(errs, errors.New("throttle min_interval_ms cannot be negative"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "fatal": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("invalid log level: %s", c.Logging.Level))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Save writes the configuration to path as pretty-printed JSON
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Init creates the canonical config file with default values and returns
// its path. An existing file is left alone unless force is set.
func Init(force bool) (string, error) {
	path, err := File()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if err := DefaultConfig().Save(path); err != nil {
		return "", err
	}
	return path, nil
}

// Load loads configuration from all sources.
// Precedence: command line flags > environment > .env files > config file > defaults.
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	_ = godotenv.Load(".env")
	if home, err := os.UserHomeDir(); err == nil {
		_ = godotenv.Load(filepath.Join(home, "."+AppName, ".env"))
	}

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	return config, nil
}
