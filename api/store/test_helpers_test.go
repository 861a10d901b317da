/* test_helpers.go
 * Contains test helper functions for store package tests
 */

package store

import (
	"context"
	"os"
	"testing"
)

const testSource = "http://bracket.test/api"

// NewTestStore connects to the database named by MONGO_TEST_URI and drops both collections so every test starts
// empty. The test is skipped when the variable is unset or the server can't be reached
func NewTestStore(t *testing.T) *Store {
	t.Helper()

	mongoURI := os.Getenv("MONGO_TEST_URI")
	if mongoURI == "" {
		t.Skip("MONGO_TEST_URI not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := NewStore(ctx, "bracket_viewer_test", mongoURI, testSource)
	if err != nil {
		t.Skipf("could not connect to MongoDB: %v", err)
	}
	if err := s.Client.Ping(ctx, nil); err != nil {
		t.Skipf("could not reach MongoDB: %v", err)
	}

	_ = s.Collections.Watched.Drop(ctx)
	_ = s.Collections.Snapshots.Drop(ctx)

	t.Cleanup(func() {
		_ = s.Database.Drop(context.Background())
		_ = s.Client.Disconnect(context.Background())
	})
	return s
}
