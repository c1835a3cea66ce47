package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported database drivers.
const (
	DriverMongo = "mongo"
	DriverRedis = "redis"
)

// Config holds the ipadhilfe API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	CORS     CORSConfig     `yaml:"cors"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Query    QueryConfig    `yaml:"query"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// CORSConfig holds cross-origin settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DatabaseConfig holds database connection settings.
// URI and Name apply to mongo; Addrs and DB apply to redis.
// ServerSelectionTimeout (mongo) and DialTimeout (redis) bound every store call while the
// server is unreachable and must stay below http.write_timeout_sec.
type DatabaseConfig struct {
	Driver                 string   `yaml:"driver"` // mongo, redis (default: mongo)
	URI                    string   `yaml:"uri"`
	Name                   string   `yaml:"name"`
	Addrs                  []string `yaml:"addrs"`
	Username               string   `yaml:"username"`
	Password               string   `yaml:"password"`
	DB                     int      `yaml:"db"`
	ReadinessTimeout       int      `yaml:"readiness_timeout_sec"`
	ServerSelectionTimeout int      `yaml:"server_selection_timeout_sec"`
	DialTimeout            int      `yaml:"dial_timeout_sec"`
}

// StorageConfig holds key and collection naming.
type StorageConfig struct {
	KeyPrefix             string `yaml:"key_prefix"`
	ItemsCollection       string `yaml:"items_collection"`
	PreferencesCollection string `yaml:"preferences_collection"`
}

// CatalogConfig points at an alternative seed catalog. Empty means the built-in one.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// QueryConfig holds default result limits.
type QueryConfig struct {
	ListDefaultLimit   int `yaml:"list_default_limit"`
	SearchDefaultLimit int `yaml:"search_default_limit"`
}

// Load reads configuration from a YAML file by environment name (local, docker, prod).
// A .env file in the working directory is loaded first; it never overrides variables already set.
func Load(env string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse expands env variables in data, decodes it, applies defaults and validates.
func Parse(data []byte) (Config, error) {
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

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8001
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverMongo
	}
	if c.Database.Name == "" {
		c.Database.Name = "ipad_hilfe"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Database.ServerSelectionTimeout <= 0 {
		c.Database.ServerSelectionTimeout = 3
	}
	if c.Database.DialTimeout <= 0 {
		c.Database.DialTimeout = 3
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "ipadhilfe:"
	}
	if c.Storage.ItemsCollection == "" {
		c.Storage.ItemsCollection = "faq_items"
	}
	if c.Storage.PreferencesCollection == "" {
		c.Storage.PreferencesCollection = "user_preferences"
	}
	if c.Query.ListDefaultLimit <= 0 {
		c.Query.ListDefaultLimit = 100
	}
	if c.Query.SearchDefaultLimit <= 0 {
		c.Query.SearchDefaultLimit = 20
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case DriverMongo:
		if c.Database.URI == "" {
			return errors.New("database.uri is required for the mongo driver")
		}
	case DriverRedis:
		if len(c.Database.Addrs) == 0 {
			return errors.New("database.addrs is required for the redis driver")
		}
		if c.Database.DB < 0 {
			return fmt.Errorf("database.db must not be negative, got %d", c.Database.DB)
		}
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", DriverMongo, DriverRedis, c.Database.Driver)
	}
	if wt := c.HTTP.WriteTimeoutSec; wt > 0 {
		if c.Database.ServerSelectionTimeout >= wt {
			return fmt.Errorf("database.server_selection_timeout_sec (%d) must be below http.write_timeout_sec (%d)",
				c.Database.ServerSelectionTimeout, wt)
		}
		if c.Database.DialTimeout >= wt {
			return fmt.Errorf("database.dial_timeout_sec (%d) must be below http.write_timeout_sec (%d)",
				c.Database.DialTimeout, wt)
		}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
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
