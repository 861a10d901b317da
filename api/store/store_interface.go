/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 */

package store

import (
	"context"

	"bracket-viewer/api/external"
	"bracket-viewer/api/reveal"
)

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	reveal.WatchedStore

	FetchTournamentSnapshot(ctx context.Context) (external.Tournament, error)
	StoreTournamentSnapshot(ctx context.Context, tournament external.Tournament) error

	// Getter methods for accessing fields
	GetSource() string
	GetClient() interface{ Disconnect(context.Context) error }
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)

// GetSource returns the tournament source url
func (s *Store) GetSource() string {
	return s.Source
}

// GetClient returns the MongoDB client
func (s *Store) GetClient() interface{ Disconnect(context.Context) error } {
	return s.Client
}
