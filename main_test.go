/* main_test.go
 * Contains unit tests for main.go functions
 */

package main

import (
	"context"
	"testing"

	"bracket-viewer/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() *config.Config {
	return &config.Config{
		APIBaseURL:     "http://env.test",
		HTTPAddr:       ":8080",
		WatchedBackend: config.BackendMongo,
		MongoURI:       "mongodb://localhost:27017",
	}
}

// region applyFlags tests

func TestApplyFlags_NoFlagsKeepsEnv(t *testing.T) {
	conf := baseConfig()

	opts, err := applyFlags(conf, nil)
	require.NoError(t, err)

	assert.Equal(t, "http://env.test", conf.APIBaseURL)
	assert.Equal(t, ":8080", conf.HTTPAddr)
	assert.Equal(t, config.BackendMongo, conf.WatchedBackend)
	assert.False(t, conf.MockFallback)
	assert.False(t, opts.debug)
	assert.False(t, opts.noBot)
}

func TestApplyFlags_Overrides(t *testing.T) {
	conf := baseConfig()

	opts, err := applyFlags(conf, []string{"-api", "http://flag.test", "-addr", ":9090", "-backend", "memory", "-mock", "-no-bot", "-debug"})
	require.NoError(t, err)

	assert.Equal(t, "http://flag.test", conf.APIBaseURL)
	assert.Equal(t, ":9090", conf.HTTPAddr)
	assert.Equal(t, config.BackendMemory, conf.WatchedBackend)
	assert.True(t, conf.MockFallback)
	assert.True(t, opts.debug)
	assert.True(t, opts.noBot)
}

func TestApplyFlags_Unknown(t *testing.T) {
	_, err := applyFlags(baseConfig(), []string{"-format", "swiss"})
	assert.Error(t, err)
}

// endregion

// region newWatchedStore tests

func TestNewWatchedStore_Memory(t *testing.T) {
	conf := baseConfig()
	conf.WatchedBackend = config.BackendMemory

	w, closeFn, err := newWatchedStore(context.Background(), conf, nil)
	require.NoError(t, err)
	assert.Nil(t, w)
	assert.NotPanics(t, closeFn)
}

func TestNewWatchedStore_MongoWithoutStore(t *testing.T) {
	_, _, err := newWatchedStore(context.Background(), baseConfig(), nil)
	assert.Error(t, err)
}

func TestNewWatchedStore_BadRedisURL(t *testing.T) {
	conf := baseConfig()
	conf.WatchedBackend = config.BackendRedis
	conf.RedisURL = "not a url"

	_, _, err := newWatchedStore(context.Background(), conf, nil)
	assert.Error(t, err)
}

func TestNewWatchedStore_Unknown(t *testing.T) {
	conf := baseConfig()
	conf.WatchedBackend = "cassandra"

	_, _, err := newWatchedStore(context.Background(), conf, nil)
	assert.Error(t, err)
}

// endregion
