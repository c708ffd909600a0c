package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the stash service configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
	Search   SearchConfig   `yaml:"search"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings. No keys disables auth.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds item store connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // valkey, redis (default: valkey)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// SearchConfig tunes the in-memory search engine.
type SearchConfig struct {
	DefaultPageSize     int           `yaml:"default_page_size"`
	MaxPageSize         int           `yaml:"max_page_size"`
	DeferMs             int           `yaml:"defer_ms"` // 0 resolves synchronously
	RecencyWindowHours  int           `yaml:"recency_window_hours"`
	RecencyBonus        float64       `yaml:"recency_bonus"`
	FuzzyFloor          float64       `yaml:"fuzzy_floor"` // 0 drops fuzzy-only matches
	MaxEditDistance     int           `yaml:"max_edit_distance"`
	SuggestionPrefixLen int           `yaml:"suggestion_prefix_len"`
	MaxSuggestions      int           `yaml:"max_suggestions"`
	PopularQueries      []string      `yaml:"popular_queries"`
	Weights             WeightsConfig `yaml:"weights"`
}

// WeightsConfig holds per-field relevance points.
type WeightsConfig struct {
	Title            float64 `yaml:"title"`
	TitleExact       float64 `yaml:"title_exact"`
	Description      float64 `yaml:"description"`
	DescriptionExact float64 `yaml:"description_exact"`
	Tag              float64 `yaml:"tag"`
	TagExact         float64 `yaml:"tag_exact"`
	URL              float64 `yaml:"url"`
	URLExact         float64 `yaml:"url_exact"`
}

// IsZero reports whether no weight is configured.
func (w WeightsConfig) IsZero() bool {
	return w == WeightsConfig{}
}

func (w WeightsConfig) values() map[string]float64 {
	return map[string]float64{
		"title":             w.Title,
		"title_exact":       w.TitleExact,
		"description":       w.Description,
		"description_exact": w.DescriptionExact,
		"tag":               w.Tag,
		"tag_exact":         w.TagExact,
		"url":               w.URL,
		"url_exact":         w.URLExact,
	}
}

// DefaultPopularQueries is used when search.popular_queries is empty.
var DefaultPopularQueries = []string{
	"productivity tips",
	"recipes",
	"design inspiration",
	"tutorials",
	"reading list",
}

// Load reads configuration from a YAML file by environment name (local, dev, docker, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "valkey"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "stash:"
	}
	c.Search.applyDefaults()
}

func (s *SearchConfig) applyDefaults() {
	if s.DefaultPageSize <= 0 {
		s.DefaultPageSize = 20
	}
	if s.MaxPageSize <= 0 {
		s.MaxPageSize = 100
	}
	if s.RecencyWindowHours <= 0 {
		s.RecencyWindowHours = 7 * 24
	}
	if s.RecencyBonus == 0 {
		s.RecencyBonus = 5
	}
	if s.MaxEditDistance == 0 {
		s.MaxEditDistance = 2
	}
	if s.SuggestionPrefixLen <= 0 {
		s.SuggestionPrefixLen = 3
	}
	if s.MaxSuggestions <= 0 {
		s.MaxSuggestions = 5
	}
	if len(s.PopularQueries) == 0 {
		s.PopularQueries = append([]string(nil), DefaultPopularQueries...)
	}
	if s.Weights.IsZero() {
		s.Weights = WeightsConfig{
			Title: 50, TitleExact: 100,
			Description: 25, DescriptionExact: 25,
			Tag: 20, TagExact: 40,
			URL: 10, URLExact: 10,
		}
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case "valkey", "redis":
	default:
		return fmt.Errorf("database.driver must be \"valkey\" or \"redis\", got %q", c.Database.Driver)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	return c.Search.validate()
}

func (s *SearchConfig) validate() error {
	if s.MaxPageSize < s.DefaultPageSize {
		return fmt.Errorf("search.max_page_size (%d) must be >= default_page_size (%d)",
			s.MaxPageSize, s.DefaultPageSize)
	}
	if s.DeferMs < 0 {
		return fmt.Errorf("search.defer_ms must not be negative, got %d", s.DeferMs)
	}
	if s.RecencyBonus < 0 {
		return fmt.Errorf("search.recency_bonus must not be negative, got %v", s.RecencyBonus)
	}
	if s.FuzzyFloor < 0 {
		return fmt.Errorf("search.fuzzy_floor must not be negative, got %v", s.FuzzyFloor)
	}
	if s.MaxEditDistance < 0 {
		return fmt.Errorf("search.max_edit_distance must not be negative, got %d", s.MaxEditDistance)
	}
	for name, v := range s.Weights.values() {
		if v < 0 {
			return fmt.Errorf("search.weights.%s must not be negative, got %v", name, v)
		}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// Relative to the source file, for tests and go run from subdirectories.
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
