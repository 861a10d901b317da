/* api.go
 * This file contains the public methods for interacting with this package. The web server and the bot should only
 * call the methods in this file, not the sub packages for bracket and reveal, so both surfaces stay spoiler-safe in
 * the same way
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"bracket-viewer/api/bracket"
	"bracket-viewer/api/external"
	"bracket-viewer/api/reveal"
	"bracket-viewer/api/store"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/patrickmn/go-cache"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	sessionExpiry  = 30 * time.Minute
	sessionCleanup = 10 * time.Minute
)

var (
	// ErrTournamentUnavailable is returned when the tournament can't be fetched and there is no fallback
	ErrTournamentUnavailable = errors.New("tournament data unavailable")
	// ErrMatchupNotFound is returned when no matchup has the requested number
	ErrMatchupNotFound = errors.New("matchup not found")
	// ErrRoundNotFound is returned when the requested bracket has no rounds
	ErrRoundNotFound = errors.New("round not found")
)

// FetchFunc loads the tournament from the backend
type FetchFunc func(ctx context.Context) (external.Tournament, error)

// API provides methods for interacting with the bracket viewer data layer
type API struct {
	Store        store.Interface     // Snapshot cache, may be nil
	Watched      reveal.WatchedStore // Where watched sets are persisted, may be nil
	Fetch        FetchFunc
	MockFallback bool
	Sessions     *cache.Cache

	sessionMu sync.Mutex
	logger    *slog.Logger
}

// NewAPI creates a new API instance
// Preconditions: Receives the snapshot store, the watched store, the fetch function and whether to fall back to the
// mock tournament when fetching fails
// Postconditions: Returns the API, or an error if fetch is nil
func NewAPI(s store.Interface, watched reveal.WatchedStore, fetch FetchFunc, mockFallback bool) (*API, error) {
	if fetch == nil {
		return nil, fmt.Errorf("fetch function is required")
	}

	// Without a watched store the session is the only record of what was revealed, so it never expires
	expiry := sessionExpiry
	if watched == nil {
		expiry = cache.NoExpiration
	}

	return &API{
		Store:        s,
		Watched:      watched,
		Fetch:        fetch,
		MockFallback: mockFallback,
		Sessions:     cache.New(expiry, sessionCleanup),
		logger:       slog.Default().With("component", "api"),
	}, nil
}

// LoadTournament returns the current tournament.
// Preconditions: Receives a context
// Postconditions: Returns the cached snapshot if it is still valid, else fetches from the backend and caches the
// result. If the fetch fails the mock tournament is returned when MockFallback is set, otherwise the error is
// returned wrapping ErrTournamentUnavailable
func (a *API) LoadTournament(ctx context.Context) (external.Tournament, error) {
	if a.Store != nil {
		t, err := a.Store.FetchTournamentSnapshot(ctx)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) && !errors.Is(err, store.ErrSnapshotExpired) {
			a.logger.Warn("failed to read tournament snapshot", "error", err)
		}
	}

	t, err := a.Fetch(ctx)
	if err != nil {
		if a.MockFallback {
			a.logger.Warn("tournament fetch failed, using mock data", "error", err)
			return external.MockTournamentData(), nil
		}
		return external.Tournament{}, fmt.Errorf("%w: %w", ErrTournamentUnavailable, err)
	}
	t.Normalize()

	if a.Store != nil {
		if err := a.Store.StoreTournamentSnapshot(ctx, t); err != nil {
			a.logger.Warn("failed to store tournament snapshot", "error", err)
		}
	}
	return t, nil
}

// RefreshTournament fetches the tournament from the backend and replaces the cached snapshot, ignoring its TTL
// Preconditions: Receives a context
// Postconditions: Returns nil once the snapshot has been replaced, or an error if fetching or storing fails
func (a *API) RefreshTournament(ctx context.Context) error {
	t, err := a.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTournamentUnavailable, err)
	}
	t.Normalize()
	if a.Store == nil {
		return nil
	}
	if err := a.Store.StoreTournamentSnapshot(ctx, t); err != nil {
		return err
	}
	return nil
}

// SessionFor returns the viewer's session, loading their watched set the first time they are seen or after their
// session has been idle long enough to expire. Every call pushes the expiry back
func (a *API) SessionFor(ctx context.Context, viewerID string) *reveal.Session {
	if v, ok := a.Sessions.Get(viewerID); ok {
		// go-cache doesn't extend an item on Get
		a.Sessions.SetDefault(viewerID, v)
		return v.(*reveal.Session)
	}

	a.sessionMu.Lock()
	defer a.sessionMu.Unlock()
	if v, ok := a.Sessions.Get(viewerID); ok {
		return v.(*reveal.Session)
	}

	sess := reveal.NewSession(ctx, a.Watched, viewerID)
	a.Sessions.SetDefault(viewerID, sess)
	return sess
}

// GetBracketOverview lists the brackets that can be navigated and the rounds in each.
// Preconditions: Receives a context
// Postconditions: Returns the overview, or an error if the tournament can't be loaded
func (a *API) GetBracketOverview(ctx context.Context) (BracketOverview, error) {
	t, err := a.LoadTournament(ctx)
	if err != nil {
		return BracketOverview{}, err
	}

	groups := bracket.Group(t.Matchups)
	overview := BracketOverview{
		Brackets: []BracketSummary{},
		Unplaced: []external.ID{},
	}

	for _, b := range groups.Brackets() {
		summary := BracketSummary{Bracket: b, Label: b.Label(), Rounds: []RoundSummary{}}
		for _, g := range groups.Rounds(b) {
			summary.Rounds = append(summary.Rounds, RoundSummary{
				Key:          g.Key(),
				Round:        g.Round,
				DisplayName:  g.DisplayName,
				MatchupCount: len(g.Matchups),
			})
		}
		overview.Brackets = append(overview.Brackets, summary)
	}

	for _, m := range bracket.Unplaced(t.Matchups) {
		overview.Unplaced = append(overview.Unplaced, m.ID)
	}
	return overview, nil
}

// GetRoundByKey parses a round key such as "losers-3" and returns that round
func (a *API) GetRoundByKey(ctx context.Context, viewerID string, key string) (RoundView, error) {
	b, round, err := bracket.ParseRoundKey(key)
	if err != nil {
		return RoundView{}, err
	}
	return a.GetRound(ctx, viewerID, b, round)
}

// GetRound returns the matchups of one round as the viewer is allowed to see them.
// Preconditions: Receives a context, the viewer id, the bracket and the round number
// Postconditions: Returns the round. If the round doesn't exist the first round of the bracket is returned with
// FellBack set. Returns bracket.ErrInvalidRoundKey for an unknown bracket, ErrRoundNotFound when the bracket has no
// rounds, or an error if the tournament can't be loaded
func (a *API) GetRound(ctx context.Context, viewerID string, b bracket.Bracket, round int) (RoundView, error) {
	if !b.Valid() {
		return RoundView{}, fmt.Errorf("%w: unknown bracket %q", bracket.ErrInvalidRoundKey, b)
	}

	t, err := a.LoadTournament(ctx)
	if err != nil {
		return RoundView{}, err
	}

	groups := bracket.Group(t.Matchups)
	g, ok := groups.Resolve(b, round)
	if !ok {
		return RoundView{}, fmt.Errorf("%w: %s has no rounds", ErrRoundNotFound, b.Label())
	}

	sess := a.SessionFor(ctx, viewerID)
	roster := reveal.NewRoster(t.Contestants)

	view := RoundView{
		Key:         g.Key(),
		Bracket:     g.Bracket,
		Round:       g.Round,
		DisplayName: g.DisplayName,
		FellBack:    g.Round != round,
		Matchups:    []MatchupView{},
	}
	for _, m := range bracket.SortedMatchups(g) {
		view.Matchups = append(view.Matchups, newMatchupView(m, roster, sess.Verdict(m)))
	}

	rounds := groups.Rounds(b)
	for i, r := range rounds {
		if r != g {
			continue
		}
		if i > 0 {
			view.Prev = rounds[i-1].Key()
		}
		if i < len(rounds)-1 {
			view.Next = rounds[i+1].Key()
		}
	}
	return view, nil
}

// GetMatchup returns a single matchup by its number as the viewer is allowed to see it
// Preconditions: Receives a context, the viewer id and the matchup number
// Postconditions: Returns the matchup, ErrMatchupNotFound if no matchup has that number, or an error if the
// tournament can't be loaded
func (a *API) GetMatchup(ctx context.Context, viewerID string, number int) (MatchupView, error) {
	t, m, err := a.findMatchup(ctx, number)
	if err != nil {
		return MatchupView{}, err
	}
	sess := a.SessionFor(ctx, viewerID)
	return newMatchupView(m, reveal.NewRoster(t.Contestants), sess.Verdict(m)), nil
}

// SkipMatchup reveals a matchup for the viewer and returns it with the result showing
// Preconditions: Receives a context, the viewer id and the matchup number
// Postconditions: Returns the revealed matchup. The watched set is persisted the first time a matchup is revealed,
// a failed write is logged by the session and not returned. Returns ErrMatchupNotFound if no matchup has that number
func (a *API) SkipMatchup(ctx context.Context, viewerID string, number int) (MatchupView, error) {
	t, m, err := a.findMatchup(ctx, number)
	if err != nil {
		return MatchupView{}, err
	}
	sess := a.SessionFor(ctx, viewerID)
	if sess.Reveal(ctx, m.ID) {
		a.logger.Debug("matchup revealed", "viewer_id", viewerID, "matchup_id", m.ID, "number", number)
	}
	return newMatchupView(m, reveal.NewRoster(t.Contestants), sess.Verdict(m)), nil
}

// FindContestant searches contestants by name. A case insensitive exact match is returned alone, otherwise every
// fuzzy match is returned best first
// Preconditions: Receives a context and the name to search for
// Postconditions: Returns the matching contestants, possibly none, or an error if the tournament can't be loaded
func (a *API) FindContestant(ctx context.Context, query string) ([]external.Contestant, error) {
	t, err := a.LoadTournament(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return []external.Contestant{}, nil
	}

	names := make([]string, len(t.Contestants))
	for i, c := range t.Contestants {
		names[i] = c.Name
		if strings.EqualFold(c.Name, query) {
			return []external.Contestant{c}, nil
		}
	}

	ranks := fuzzy.RankFindFold(query, names)
	sort.Sort(ranks)

	out := make([]external.Contestant, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, t.Contestants[r.OriginalIndex])
	}
	return out, nil
}

func (a *API) findMatchup(ctx context.Context, number int) (external.Tournament, external.Matchup, error) {
	if number <= 0 {
		return external.Tournament{}, external.Matchup{}, fmt.Errorf("%w: %d", ErrMatchupNotFound, number)
	}

	t, err := a.LoadTournament(ctx)
	if err != nil {
		return external.Tournament{}, external.Matchup{}, err
	}

	for _, m := range t.Matchups {
		if m.Number == number {
			return t, m, nil
		}
	}
	return external.Tournament{}, external.Matchup{}, fmt.Errorf("%w: %d", ErrMatchupNotFound, number)
}
