/* config.go
 * Contains the runtime configuration, read from BRACKET_ prefixed environment variables. main loads .env first and
 * lets command line flags override what is read here
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const envPrefix = "BRACKET_"

// Watched set backends
const (
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

const (
	defaultDBName      = "bracket_viewer"
	defaultHTTPAddr    = ":8080"
	defaultSnapshotTTL = 30 * time.Minute
)

type Config struct {
	MongoURI       string
	DBName         string
	APIBaseURL     string
	HTTPAddr       string
	DiscordToken   string // The bot is only started when set
	WatchedBackend string
	RedisURL       string
	MockFallback   bool
	SnapshotTTL    time.Duration
}

// NewConfigFromEnv reads the configuration from the environment and validates it
// Preconditions: None
// Postconditions: Returns the config with defaults filled in, or an error if a value can't be parsed or a required
// value is missing
func NewConfigFromEnv() (*Config, error) {
	conf, err := LoadFromEnv()
	if err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// LoadFromEnv reads the configuration from the environment without validating it, so that flags can fill in
// required values before Validate is called
func LoadFromEnv() (*Config, error) {
	conf := &Config{
		MongoURI:       getEnv("MONGO_URI"),
		DBName:         getEnvDefault("DB_NAME", defaultDBName),
		APIBaseURL:     getEnv("API_BASE_URL"),
		HTTPAddr:       getEnvDefault("HTTP_ADDR", defaultHTTPAddr),
		DiscordToken:   getEnv("DISCORD_TOKEN"),
		WatchedBackend: strings.ToLower(getEnvDefault("WATCHED_BACKEND", BackendMongo)),
		RedisURL:       getEnv("REDIS_URL"),
		SnapshotTTL:    defaultSnapshotTTL,
	}

	if v := getEnv("MOCK_FALLBACK"); v != "" {
		b, err := convertStrToBool(v)
		if err != nil {
			return nil, fmt.Errorf("%sMOCK_FALLBACK: %w", envPrefix, err)
		}
		conf.MockFallback = b
	}

	if v := getEnv("SNAPSHOT_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%sSNAPSHOT_TTL: %w", envPrefix, err)
		}
		conf.SnapshotTTL = d
	}
	return conf, nil
}

// Validate checks that the values needed by the selected backends are present
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New(envPrefix + "API_BASE_URL is required")
	}

	switch c.WatchedBackend {
	case BackendMongo:
		if c.MongoURI == "" {
			return errors.New(envPrefix + "MONGO_URI is required for the mongo watched backend")
		}
	case BackendRedis:
		if c.RedisURL == "" {
			return errors.New(envPrefix + "REDIS_URL is required for the redis watched backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown watched backend %q", c.WatchedBackend)
	}

	if c.SnapshotTTL < 0 {
		return errors.New(envPrefix + "SNAPSHOT_TTL can't be negative")
	}
	return nil
}

func getEnv(name string) string {
	return strings.TrimSpace(os.Getenv(envPrefix + name))
}

func getEnvDefault(name, fallback string) string {
	if v := getEnv(name); v != "" {
		return v
	}
	return fallback
}
