/* watched.go
 * Contains the watched set, the collection of matchup ids a viewer has watched or skipped, and the interface used to
 * persist it
 */

package reveal

import (
	"context"

	"bracket-viewer/api/external"
)

// WatchedStore loads and saves a viewer's watched set. SaveWatched overwrites the whole entry
type WatchedStore interface {
	LoadWatched(ctx context.Context, viewerID string) ([]external.ID, error)
	SaveWatched(ctx context.Context, viewerID string, ids []external.ID) error
}

// WatchedSet is a set of matchup ids that remembers insertion order, so the persisted array is stable
type WatchedSet struct {
	ids   map[external.ID]struct{}
	order []external.ID
}

// NewWatchedSet creates a set from previously persisted ids. Empty ids and duplicates are dropped
func NewWatchedSet(ids []external.ID) *WatchedSet {
	s := &WatchedSet{ids: make(map[external.ID]struct{}, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id and reports whether the set grew
func (s *WatchedSet) Add(id external.ID) bool {
	if id.IsZero() {
		return false
	}
	if _, ok := s.ids[id]; ok {
		return false
	}
	s.ids[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

// Has reports whether id is in the set
func (s *WatchedSet) Has(id external.ID) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of ids in the set
func (s *WatchedSet) Len() int {
	return len(s.order)
}

// IDs returns a copy of the ids in insertion order
func (s *WatchedSet) IDs() []external.ID {
	out := make([]external.ID, len(s.order))
	copy(out, s.order)
	return out
}
