/* session.go
 * Contains the per viewer revelation state machine. A matchup starts Hidden and moves to Revealed when the viewer
 * skips it, or when it was already in the persisted watched set at load time. There is no way back to Hidden
 */

package reveal

import (
	"context"
	"log/slog"
	"sync"

	"bracket-viewer/api/external"
)

// Status is the presentation state of a matchup result
type Status string

const (
	StatusHidden     Status = "hidden"
	StatusComplete   Status = "complete"
	StatusResultless Status = "resultless"
)

// Verdict is what the presentation layer is allowed to show for a matchup. WinnerID and LoserID are empty while
// the matchup is hidden or when the outcome can't be determined
type Verdict struct {
	WinnerID external.ID `json:"winnerId"`
	LoserID  external.ID `json:"loserId"`
	Revealed bool        `json:"revealed"`
	Status   Status      `json:"status"`
}

// Session holds one viewer's watched set. It is safe for concurrent use
type Session struct {
	viewerID string
	store    WatchedStore
	logger   *slog.Logger

	mu      sync.Mutex
	watched *WatchedSet
}

// NewSession loads the viewer's watched set from the store.
// Preconditions: Receives a context, a store and the viewer id
// Postconditions: Returns a session. A failed load is logged and the session starts with an empty set, the viewer
// sees every result hidden rather than an error
func NewSession(ctx context.Context, store WatchedStore, viewerID string) *Session {
	logger := slog.Default().With("viewer_id", viewerID)

	var ids []external.ID
	if store != nil {
		loaded, err := store.LoadWatched(ctx, viewerID)
		if err != nil {
			logger.Warn("failed to load watched matchups, starting empty", "error", err)
		} else {
			ids = loaded
		}
	}

	return &Session{
		viewerID: viewerID,
		store:    store,
		logger:   logger,
		watched:  NewWatchedSet(ids),
	}
}

// ViewerID returns the viewer this session belongs to
func (s *Session) ViewerID() string {
	return s.viewerID
}

// IsRevealed reports whether the matchup has been revealed for this viewer
func (s *Session) IsRevealed(id external.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watched.Has(id)
}

// Watched returns the watched ids in the order they were revealed
func (s *Session) Watched() []external.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watched.IDs()
}

// Reveal moves the matchup from Hidden to Revealed.
// Preconditions: Receives a context and the matchup id
// Postconditions: Returns true if this call made the transition. On a transition the full watched set is written
// to the store; a failed write is logged and not retried. Revealing an already revealed matchup writes nothing
func (s *Session) Reveal(ctx context.Context, id external.ID) bool {
	// Held across the save so concurrent reveals can't persist an older set over a newer one
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.watched.Add(id) {
		return false
	}

	if s.store != nil {
		if err := s.store.SaveWatched(ctx, s.viewerID, s.watched.IDs()); err != nil {
			s.logger.Warn("failed to persist watched matchups", "matchup_id", id, "error", err)
		}
	}
	return true
}

// Verdict returns what may be shown for the matchup
func (s *Session) Verdict(m external.Matchup) Verdict {
	return VerdictFor(m, s.IsRevealed(m.ID))
}

// VerdictFor builds the verdict for a matchup given its revelation state. The outcome is only consulted once the
// matchup is revealed
func VerdictFor(m external.Matchup, revealed bool) Verdict {
	if !revealed {
		return Verdict{Status: StatusHidden}
	}
	winner, loser, ok := ResolveOutcome(m)
	if !ok {
		return Verdict{Revealed: true, Status: StatusResultless}
	}
	return Verdict{WinnerID: winner, LoserID: loser, Revealed: true, Status: StatusComplete}
}
