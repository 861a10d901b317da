/* reveal_test.go
 * Contains unit tests for the watched set, sessions and outcome resolution
 */

package reveal

import (
	"context"
	"errors"
	"sync"
	"testing"

	"bracket-viewer/api/external"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in memory WatchedStore that records every save
type fakeStore struct {
	mu      sync.Mutex
	entries map[string][]external.ID
	saves   int

	LoadError error
	SaveError error
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[string][]external.ID)}
}

func (f *fakeStore) LoadWatched(ctx context.Context, viewerID string) ([]external.ID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LoadError != nil {
		return nil, f.LoadError
	}
	return f.entries[viewerID], nil
}

func (f *fakeStore) SaveWatched(ctx context.Context, viewerID string, ids []external.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.SaveError != nil {
		return f.SaveError
	}
	f.entries[viewerID] = ids
	return nil
}

// region WatchedSet tests

func TestWatchedSet_AddIsIdempotent(t *testing.T) {
	s := NewWatchedSet(nil)

	assert.True(t, s.Add("7"))
	assert.False(t, s.Add("7"))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, []external.ID{"7"}, s.IDs())
}

func TestWatchedSet_FromPersisted(t *testing.T) {
	s := NewWatchedSet([]external.ID{"3", "1", "3", ""})

	assert.Equal(t, []external.ID{"3", "1"}, s.IDs())
	assert.True(t, s.Has("1"))
	assert.False(t, s.Has("2"))
}

func TestWatchedSet_IDsIsCopy(t *testing.T) {
	s := NewWatchedSet([]external.ID{"1"})
	ids := s.IDs()
	ids[0] = "changed"

	assert.True(t, s.Has("1"))
}

// endregion

// region Session tests

// TestSession_SkipPersistsOnce is the skip scenario: an empty set, a skip on 7 persists [7], a second skip changes nothing
func TestSession_SkipPersistsOnce(t *testing.T) {
	store := newFakeStore()
	session := NewSession(context.Background(), store, "viewer")

	assert.False(t, session.IsRevealed("7"))
	assert.True(t, session.Reveal(context.Background(), "7"))
	assert.True(t, session.IsRevealed("7"))
	assert.Equal(t, []external.ID{"7"}, store.entries["viewer"])
	assert.Equal(t, 1, store.saves)

	assert.False(t, session.Reveal(context.Background(), "7"))
	assert.Equal(t, []external.ID{"7"}, session.Watched())
	assert.Equal(t, 1, store.saves)
}

func TestSession_SavesFullSet(t *testing.T) {
	store := newFakeStore()
	store.entries["viewer"] = []external.ID{"1"}
	session := NewSession(context.Background(), store, "viewer")

	session.Reveal(context.Background(), "2")

	assert.Equal(t, []external.ID{"1", "2"}, store.entries["viewer"])
}

func TestSession_RehydratesFromStore(t *testing.T) {
	store := newFakeStore()
	store.entries["viewer"] = []external.ID{"5"}

	session := NewSession(context.Background(), store, "viewer")

	assert.True(t, session.IsRevealed("5"))
	assert.False(t, session.Reveal(context.Background(), "5"))
	assert.Equal(t, 0, store.saves)
}

func TestSession_ViewersAreIsolated(t *testing.T) {
	store := newFakeStore()
	a := NewSession(context.Background(), store, "a")
	b := NewSession(context.Background(), store, "b")

	a.Reveal(context.Background(), "1")

	assert.True(t, a.IsRevealed("1"))
	assert.False(t, b.IsRevealed("1"))
	assert.Equal(t, "b", b.ViewerID())
}

func TestSession_LoadErrorStartsEmpty(t *testing.T) {
	store := newFakeStore()
	store.LoadError = errors.New("connection refused")

	session := NewSession(context.Background(), store, "viewer")

	assert.Empty(t, session.Watched())
}

func TestSession_SaveErrorIsBestEffort(t *testing.T) {
	store := newFakeStore()
	store.SaveError = errors.New("write failed")
	session := NewSession(context.Background(), store, "viewer")

	assert.True(t, session.Reveal(context.Background(), "9"))
	assert.True(t, session.IsRevealed("9"), "the reveal stands even if persisting failed")
}

func TestSession_NilStore(t *testing.T) {
	session := NewSession(context.Background(), nil, "viewer")

	assert.True(t, session.Reveal(context.Background(), "1"))
	assert.True(t, session.IsRevealed("1"))
}

func TestSession_ConcurrentReveals(t *testing.T) {
	store := newFakeStore()
	session := NewSession(context.Background(), store, "viewer")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			session.Reveal(context.Background(), external.NewID(i%10))
		}(i)
	}
	wg.Wait()

	assert.Len(t, session.Watched(), 10)
	assert.Equal(t, 10, store.saves)
	assert.Len(t, store.entries["viewer"], 10)
}

// endregion

// region Verdict tests

// TestVerdict_Winner is the resolution scenario: outcome "1" with contestants 1 and 3
func TestVerdict_Winner(t *testing.T) {
	m := external.Matchup{ID: "5", ContestantOneID: "1", ContestantTwoID: "3", Outcome: "1"}
	session := NewSession(context.Background(), newFakeStore(), "viewer")
	session.Reveal(context.Background(), m.ID)

	v := session.Verdict(m)

	assert.Equal(t, Verdict{WinnerID: "1", LoserID: "3", Revealed: true, Status: StatusComplete}, v)
}

func TestVerdict_Resultless(t *testing.T) {
	m := external.Matchup{ID: "6"}

	v := VerdictFor(m, true)

	assert.Equal(t, Verdict{Revealed: true, Status: StatusResultless}, v)
	assert.True(t, v.WinnerID.IsZero())
	assert.True(t, v.LoserID.IsZero())
}

func TestVerdict_HiddenNeverLeaksOutcome(t *testing.T) {
	m := external.Matchup{ID: "5", ContestantOneID: "1", ContestantTwoID: "3", Outcome: "1"}
	session := NewSession(context.Background(), newFakeStore(), "viewer")

	v := session.Verdict(m)

	assert.Equal(t, Verdict{Status: StatusHidden}, v)
}

// endregion

// region ResolveOutcome tests

func TestResolveOutcome(t *testing.T) {
	tests := []struct {
		name   string
		m      external.Matchup
		winner external.ID
		loser  external.ID
		ok     bool
	}{
		{"first side", external.Matchup{ContestantOneID: "1", ContestantTwoID: "2", Outcome: "1"}, "1", "2", true},
		{"second side", external.Matchup{ContestantOneID: "1", ContestantTwoID: "2", Outcome: "2"}, "2", "1", true},
		{"no outcome", external.Matchup{ContestantOneID: "1", ContestantTwoID: "2"}, "", "", false},
		{"neither side", external.Matchup{ContestantOneID: "1", ContestantTwoID: "2", Outcome: "9"}, "", "", false},
		{"both sides", external.Matchup{ContestantOneID: "1", ContestantTwoID: "1", Outcome: "1"}, "", "", false},
		{"opponent tbd", external.Matchup{ContestantOneID: "1", Outcome: "1"}, "1", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			winner, loser, ok := ResolveOutcome(tt.m)
			assert.Equal(t, tt.winner, winner)
			assert.Equal(t, tt.loser, loser)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

// TestResolveOutcome_NumericAndStringIDs checks ids that arrived as numbers and strings still compare equal
func TestResolveOutcome_NumericAndStringIDs(t *testing.T) {
	m := external.Matchup{
		ContestantOneID: external.NewID(1),
		ContestantTwoID: external.NewID(3.0),
		Outcome:         external.NewID("3"),
	}

	winner, loser, ok := ResolveOutcome(m)

	require.True(t, ok)
	assert.Equal(t, external.ID("3"), winner)
	assert.Equal(t, external.ID("1"), loser)
}

func TestRoleOf(t *testing.T) {
	v := Verdict{WinnerID: "1", LoserID: "3", Revealed: true, Status: StatusComplete}

	assert.Equal(t, RoleWinner, RoleOf(v, "1"))
	assert.Equal(t, RoleLoser, RoleOf(v, "3"))
	assert.Equal(t, RoleNone, RoleOf(v, "4"))
	assert.Equal(t, RoleNone, RoleOf(v, ""))
	assert.Equal(t, RoleNone, RoleOf(Verdict{Status: StatusHidden}, "1"))
}

// endregion

// region Roster tests

func TestRoster_Name(t *testing.T) {
	roster := NewRoster([]external.Contestant{{ID: "1", Name: "Alice"}, {ID: "2", Name: ""}, {ID: "", Name: "Ghost"}})

	assert.Equal(t, "Alice", roster.Name("1"))
	assert.Equal(t, TBD, roster.Name("2"))
	assert.Equal(t, TBD, roster.Name("99"))
	assert.Equal(t, TBD, roster.Name(""))
	assert.Len(t, roster, 2)
}

// endregion
