/* setup.go
 * Contains the startup helpers used by main: flag handling and choosing the watched backend
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"

	"bracket-viewer/api/kv"
	"bracket-viewer/api/reveal"
	"bracket-viewer/api/store"
	"bracket-viewer/config"
)

type options struct {
	debug bool
	noBot bool
}

// applyFlags parses args and overrides conf with every flag that was set
// Preconditions: Receives the config loaded from the environment and the command line arguments
// Postconditions: Returns the options that only exist as flags, or an error if the arguments can't be parsed
func applyFlags(conf *config.Config, args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("bracket-viewer", flag.ContinueOnError)

	addr := fs.String("addr", conf.HTTPAddr, "HTTP listen address, e.g. :8080")
	apiURL := fs.String("api", conf.APIBaseURL, "Tournament backend base url, e.g. https://bracket.example.com/api")
	backend := fs.String("backend", conf.WatchedBackend, "Where watched matchups are stored: mongo, redis or memory")
	mock := fs.Bool("mock", conf.MockFallback, "Serve the mock tournament when the backend can't be reached")
	fs.BoolVar(&opts.noBot, "no-bot", false, "Don't start the Discord bot even if a token is set")
	fs.BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	conf.HTTPAddr = *addr
	conf.APIBaseURL = *apiURL
	conf.WatchedBackend = *backend
	conf.MockFallback = *mock
	return opts, nil
}

// newWatchedStore returns the store selected by the watched backend, and a function releasing it
func newWatchedStore(ctx context.Context, conf *config.Config, mongoStore *store.Store) (reveal.WatchedStore, func(), error) {
	noop := func() {}

	switch conf.WatchedBackend {
	case config.BackendMongo:
		if mongoStore == nil {
			return nil, noop, fmt.Errorf("mongo watched backend needs a mongo uri")
		}
		return mongoStore, noop, nil
	case config.BackendRedis:
		r, err := kv.NewRedisWatchedStore(ctx, conf.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		return r, func() {
			if err := r.Close(); err != nil {
				slog.Warn("failed to close redis", "error", err)
			}
		}, nil
	case config.BackendMemory:
		slog.Warn("watched matchups are kept in memory and will be lost on restart")
		return nil, noop, nil
	}
	return nil, noop, fmt.Errorf("unknown watched backend %q", conf.WatchedBackend)
}
