/* config_test.go
 * Contains unit tests for config.go and utils.go
 */

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// region NewConfigFromEnv

func TestNewConfigFromEnv_AllSet(t *testing.T) {
	t.Setenv("BRACKET_MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("BRACKET_DB_NAME", "viewer")
	t.Setenv("BRACKET_API_BASE_URL", "http://backend.test/api")
	t.Setenv("BRACKET_HTTP_ADDR", ":9000")
	t.Setenv("BRACKET_DISCORD_TOKEN", "token")
	t.Setenv("BRACKET_WATCHED_BACKEND", "Redis")
	t.Setenv("BRACKET_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("BRACKET_MOCK_FALLBACK", "true")
	t.Setenv("BRACKET_SNAPSHOT_TTL", "5m")

	conf, err := NewConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017", conf.MongoURI)
	assert.Equal(t, "viewer", conf.DBName)
	assert.Equal(t, "http://backend.test/api", conf.APIBaseURL)
	assert.Equal(t, ":9000", conf.HTTPAddr)
	assert.Equal(t, "token", conf.DiscordToken)
	assert.Equal(t, BackendRedis, conf.WatchedBackend)
	assert.Equal(t, "redis://localhost:6379/0", conf.RedisURL)
	assert.True(t, conf.MockFallback)
	assert.Equal(t, 5*time.Minute, conf.SnapshotTTL)
}

func TestNewConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("BRACKET_MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("BRACKET_API_BASE_URL", "http://backend.test/api")

	conf, err := NewConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, defaultDBName, conf.DBName)
	assert.Equal(t, defaultHTTPAddr, conf.HTTPAddr)
	assert.Equal(t, BackendMongo, conf.WatchedBackend)
	assert.False(t, conf.MockFallback)
	assert.Equal(t, defaultSnapshotTTL, conf.SnapshotTTL)
	assert.Empty(t, conf.DiscordToken)
}

func TestNewConfigFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name: "missing API_BASE_URL",
			envVars: map[string]string{
				"BRACKET_MONGO_URI": "mongodb://localhost:27017",
			},
		},
		{
			name: "mongo backend without MONGO_URI",
			envVars: map[string]string{
				"BRACKET_API_BASE_URL": "http://backend.test",
			},
		},
		{
			name: "redis backend without REDIS_URL",
			envVars: map[string]string{
				"BRACKET_API_BASE_URL":    "http://backend.test",
				"BRACKET_WATCHED_BACKEND": "redis",
			},
		},
		{
			name: "unknown backend",
			envVars: map[string]string{
				"BRACKET_API_BASE_URL":    "http://backend.test",
				"BRACKET_WATCHED_BACKEND": "cassandra",
			},
		},
		{
			name: "bad MOCK_FALLBACK",
			envVars: map[string]string{
				"BRACKET_API_BASE_URL":    "http://backend.test",
				"BRACKET_WATCHED_BACKEND": "memory",
				"BRACKET_MOCK_FALLBACK":   "maybe",
			},
		},
		{
			name: "bad SNAPSHOT_TTL",
			envVars: map[string]string{
				"BRACKET_API_BASE_URL":    "http://backend.test",
				"BRACKET_WATCHED_BACKEND": "memory",
				"BRACKET_SNAPSHOT_TTL":    "soon",
			},
		},
		{
			name: "negative SNAPSHOT_TTL",
			envVars: map[string]string{
				"BRACKET_API_BASE_URL":    "http://backend.test",
				"BRACKET_WATCHED_BACKEND": "memory",
				"BRACKET_SNAPSHOT_TTL":    "-1m",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}
			_, err := NewConfigFromEnv()
			assert.Error(t, err)
		})
	}
}

func TestNewConfigFromEnv_MemoryBackendNeedsNoStore(t *testing.T) {
	t.Setenv("BRACKET_API_BASE_URL", "http://backend.test")
	t.Setenv("BRACKET_WATCHED_BACKEND", "memory")

	conf, err := NewConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, conf.WatchedBackend)
}

// endregion

// region convertStrToBool

func TestConvertStrToBool(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
		wantErr  bool
	}{
		{"true", true, false},
		{"false", false, false},
		{"TRUE", true, false},
		{"FALSE", false, false},
		{"TrUe", true, false},
		{"  true  ", true, false},
		{"1", true, false},
		{"no", false, false},
		{"", false, true},
		{"maybe", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := convertStrToBool(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// endregion

func TestLoadFromEnv_DoesNotValidate(t *testing.T) {
	t.Setenv("BRACKET_WATCHED_BACKEND", "redis")

	conf, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Error(t, conf.Validate())

	conf.APIBaseURL = "http://backend.test"
	conf.RedisURL = "redis://localhost:6379"
	assert.NoError(t, conf.Validate())
}
