package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultAPIURL is used when neither the config file nor the environment name an API
const DefaultAPIURL = "http://localhost:8083"

// Environment overrides
const (
	EnvAPIURL   = "AVALIACCESS_API_URL"
	EnvLogLevel = "AVALIACCESS_LOG_LEVEL"
)

// Config represents the application configuration
type Config struct {
	Version   int            `toml:"version"`
	APIURL    string         `toml:"api_url"`
	LogFile   string         `toml:"log_file"`
	LogLevel  string         `toml:"log_level"`
	TokenFile string         `toml:"token_file"`
	Search    SearchSettings `toml:"search"`
	UI        UISettings     `toml:"ui"`
}

// SearchSettings tunes the autosuggest and listing searches
type SearchSettings struct {
	DebounceMS         int `toml:"debounce_ms"`
	MinQueryLength     int `toml:"min_query_length"`
	SuggestionPageSize int `toml:"suggestion_page_size"`
	ListingPageSize    int `toml:"listing_page_size"`
	RequestTimeoutMS   int `toml:"request_timeout_ms"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Mouse     bool `toml:"mouse"`
	AltScreen bool `toml:"alt_screen"`
}

// Debounce returns the debounce interval as a duration
func (s SearchSettings) Debounce() time.Duration {
	return time.Duration(s.DebounceMS) * time.Millisecond
}

// RequestTimeout returns the per-request timeout as a duration
func (s SearchSettings) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutMS) * time.Millisecond
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// Dir returns the avaliaccess directory under the user's config dir
func Dir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "avaliaccess")
}

// NewConfigService creates a config service backed by the default file
func NewConfigService() ConfigService {
	return &configService{
		filePath: filepath.Join(Dir(), "config.toml"),
	}
}

// NewConfigServiceAt creates a config service backed by path
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when it does not exist
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start from defaults so keys missing in the file keep sane values
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides config values from the environment
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvAPIURL); v != "" {
		c.APIURL = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid api_url %q: %w", c.APIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_url must be an http(s) URL, got %q", c.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("api_url %q has no host", c.APIURL)
	}
	if c.Search.DebounceMS <= 0 {
		return fmt.Errorf("search.debounce_ms must be positive, got %d", c.Search.DebounceMS)
	}
	if c.Search.MinQueryLength < 0 {
		return fmt.Errorf("search.min_query_length must not be negative, got %d", c.Search.MinQueryLength)
	}
	if c.Search.SuggestionPageSize <= 0 || c.Search.ListingPageSize <= 0 {
		return fmt.Errorf("search page sizes must be positive")
	}
	if c.Search.RequestTimeoutMS <= 0 {
		return fmt.Errorf("search.request_timeout_ms must be positive, got %d", c.Search.RequestTimeoutMS)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	dir := Dir()
	return &Config{
		Version:   1,
		APIURL:    DefaultAPIURL,
		LogFile:   "avaliaccess.log",
		LogLevel:  "info",
		TokenFile: filepath.Join(dir, "session.json"),
		Search: SearchSettings{
			DebounceMS:         300,
			MinQueryLength:     2,
			SuggestionPageSize: 10,
			ListingPageSize:    12,
			RequestTimeoutMS:   10000,
		},
		UI: UISettings{
			Mouse:     true,
			AltScreen: true,
		},
	}
}
