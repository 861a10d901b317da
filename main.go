//go:build !test

/* main.go
 * The "main" method for running the bracket viewer. Configuration comes from BRACKET_ environment variables (a .env
 * file is loaded first), command line flags override them.
 * Usage: go run . -api="<backend url>" -addr=":8080" -backend="mongo"
 */

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "bracket-viewer/api/api"
	"bracket-viewer/api/external"
	"bracket-viewer/api/ratelimit"
	"bracket-viewer/api/store"
	"bracket-viewer/bot"
	"bracket-viewer/config"
	"bracket-viewer/web"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const limiterCleanupInterval = 5 * time.Minute

func main() {
	if err := godotenv.Load(); err != nil {
		// Running without a .env file is normal in containers
		slog.Debug("no .env file loaded", "error", err)
	}

	conf, err := config.LoadFromEnv()
	if err != nil {
		slog.Error("failed to load env", "error", err)
		os.Exit(1)
	}

	opts, err := applyFlags(conf, os.Args[1:])
	if err != nil {
		slog.Error("invalid flags", "error", err)
		os.Exit(2)
	}
	if err := conf.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if opts.debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, conf, opts); err != nil {
		slog.Error("bracket viewer stopped", "error", err)
		os.Exit(1)
	}
}

// run wires the stores, the api and both surfaces together and blocks until ctx is cancelled or one of them fails
func run(ctx context.Context, conf *config.Config, opts options) error {
	var snapshots store.Interface
	var mongoStore *store.Store
	if conf.MongoURI != "" {
		s, err := store.NewStore(ctx, conf.DBName, conf.MongoURI, conf.APIBaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize store: %w", err)
		}
		s.SnapshotTTL = conf.SnapshotTTL
		defer func() {
			if err := s.Client.Disconnect(context.Background()); err != nil {
				slog.Warn("failed to disconnect from mongo", "error", err)
			}
		}()
		mongoStore = s
		snapshots = s
	}

	watched, closeWatched, err := newWatchedStore(ctx, conf, mongoStore)
	if err != nil {
		return err
	}
	defer closeWatched()

	fetch := func(ctx context.Context) (external.Tournament, error) {
		return external.FetchTournamentData(ctx, conf.APIBaseURL)
	}
	a, err := api.NewAPI(snapshots, watched, fetch, conf.MockFallback)
	if err != nil {
		return fmt.Errorf("failed to initialize API: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	skipLimiter := ratelimit.NewKeyedLimiter(rate.Limit(2), 5)
	g.Go(func() error {
		skipLimiter.RunCleanup(ctx, limiterCleanupInterval)
		return nil
	})
	g.Go(func() error {
		return web.Start(ctx, web.Config{
			Addr:    conf.HTTPAddr,
			API:     a,
			Source:  conf.APIBaseURL,
			Limiter: skipLimiter,
		})
	})

	if conf.DiscordToken != "" && !opts.noBot {
		commandLimiter := ratelimit.NewKeyedLimiter(rate.Limit(1), 3)
		b, err := bot.NewBot(conf.DiscordToken, a, commandLimiter)
		if err != nil {
			return err
		}
		g.Go(func() error {
			commandLimiter.RunCleanup(ctx, limiterCleanupInterval)
			return nil
		})
		g.Go(func() error {
			return b.Run(ctx)
		})
	} else {
		slog.Info("discord bot disabled")
	}

	return g.Wait()
}
