/* test_mocks.go
 * Contains mock structures for testing the API package and the packages built on it
 */

package api

import (
	"context"
	"sync"

	"bracket-viewer/api/external"
	"bracket-viewer/api/store"

	"go.mongodb.org/mongo-driver/mongo"
)

// MockStore implements store.Interface in memory
type MockStore struct {
	mu sync.Mutex

	// Storage for mock data
	Watched  map[string][]external.ID
	Snapshot *external.Tournament
	Source   string

	// Call counters
	SaveWatchedCalls   int
	StoreSnapshotCalls int

	// Error injection for testing error paths
	LoadWatchedError   error
	SaveWatchedError   error
	FetchSnapshotError error
	StoreSnapshotError error
}

var _ store.Interface = (*MockStore)(nil)

// NewMockStore creates a new MockStore with no snapshot and no watched sets
func NewMockStore() *MockStore {
	return &MockStore{
		Watched: make(map[string][]external.ID),
		Source:  "http://mock.test",
	}
}

// LoadWatched mock implementation
func (m *MockStore) LoadWatched(_ context.Context, viewerID string) ([]external.ID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadWatchedError != nil {
		return nil, m.LoadWatchedError
	}
	ids := m.Watched[viewerID]
	out := make([]external.ID, len(ids))
	copy(out, ids)
	return out, nil
}

// SaveWatched mock implementation
func (m *MockStore) SaveWatched(_ context.Context, viewerID string, ids []external.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveWatchedCalls++
	if m.SaveWatchedError != nil {
		return m.SaveWatchedError
	}
	saved := make([]external.ID, len(ids))
	copy(saved, ids)
	m.Watched[viewerID] = saved
	return nil
}

// FetchTournamentSnapshot mock implementation
func (m *MockStore) FetchTournamentSnapshot(_ context.Context) (external.Tournament, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FetchSnapshotError != nil {
		return external.Tournament{}, m.FetchSnapshotError
	}
	if m.Snapshot == nil {
		return external.Tournament{}, mongo.ErrNoDocuments
	}
	return *m.Snapshot, nil
}

// StoreTournamentSnapshot mock implementation
func (m *MockStore) StoreTournamentSnapshot(_ context.Context, t external.Tournament) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoreSnapshotCalls++
	if m.StoreSnapshotError != nil {
		return m.StoreSnapshotError
	}
	m.Snapshot = &t
	return nil
}

// SetSnapshot sets the cached tournament
func (m *MockStore) SetSnapshot(t external.Tournament) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Snapshot = &t
}

// GetSource mock implementation
func (m *MockStore) GetSource() string {
	return m.Source
}

// GetClient mock implementation
func (m *MockStore) GetClient() interface{ Disconnect(context.Context) error } {
	return nil
}

// StaticFetch returns a FetchFunc that always returns t and counts its calls in calls, if given
func StaticFetch(t external.Tournament, calls *int) FetchFunc {
	return func(context.Context) (external.Tournament, error) {
		if calls != nil {
			*calls++
		}
		return t, nil
	}
}

// FailingFetch returns a FetchFunc that always fails with err
func FailingFetch(err error) FetchFunc {
	return func(context.Context) (external.Tournament, error) {
		return external.Tournament{}, err
	}
}

// NewMockAPI creates an API over a MockStore serving t
func NewMockAPI(t external.Tournament) (*API, *MockStore) {
	ms := NewMockStore()
	a, _ := NewAPI(ms, ms, StaticFetch(t, nil), false)
	return a, ms
}
