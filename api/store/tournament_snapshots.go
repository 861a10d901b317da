/* tournament_snapshots.go
 * Contains the methods for interacting with the tournament_snapshots collection. The last payload fetched from the
 * backend is cached here with a TTL so every viewer doesn't cause a request upstream
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bracket-viewer/api/external"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	shortTTL  = 3 * time.Minute  // While matchups are still being decided
	normalTTL = 30 * time.Minute // Once every matchup has an outcome
)

// FetchTournamentSnapshot returns the cached tournament for this store's source
// Preconditions: Receives a context
// Postconditions: Returns the snapshot, mongo.ErrNoDocuments if there is none, ErrSnapshotExpired if its TTL has
// passed, or an error if it occurs
func (s *Store) FetchTournamentSnapshot(ctx context.Context) (external.Tournament, error) {
	var res SnapshotRecord
	err := s.Collections.Snapshots.FindOne(ctx, bson.D{{Key: "source", Value: s.Source}}).Decode(&res)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return external.Tournament{}, err
		}
		return external.Tournament{}, fmt.Errorf("error fetching tournament snapshot from db: %w", err)
	}

	if res.Expired(time.Now()) {
		return external.Tournament{}, ErrSnapshotExpired
	}

	res.Tournament.Normalize()
	return res.Tournament, nil
}

// StoreTournamentSnapshot updates the cached tournament for this store's source
// Preconditions: Receives a context and the tournament fetched from the backend
// Postconditions: Upserts the snapshot with a TTL from DetermineTTL and returns nil, or an error if it occurs
func (s *Store) StoreTournamentSnapshot(ctx context.Context, tournament external.Tournament) error {
	tournament.Normalize()
	record := SnapshotRecord{
		Source:     s.Source,
		TTL:        DetermineTTL(tournament, s.SnapshotTTL),
		FetchedAt:  time.Now().UTC(),
		Tournament: tournament,
	}

	filter := bson.M{"source": s.Source}
	update := bson.M{"$set": record}
	opts := options.Update().SetUpsert(true)

	_, err := s.Collections.Snapshots.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to store tournament snapshot: %w", err)
	}
	return nil
}

// DetermineTTL calculates the TTL for snapshot caching. If any matchup is ready to be played but has no outcome the
// bracket is live and the TTL is short, else it is the normal TTL
// Preconditions: Receives the tournament to be cached and the normal TTL, zero or less means the default
// Postconditions: Returns the expiry as a unix timestamp
func DetermineTTL(tournament external.Tournament, normal time.Duration) int64 {
	if normal <= 0 {
		normal = normalTTL
	}

	for _, m := range tournament.Matchups {
		ready := !m.ContestantOneID.IsZero() && !m.ContestantTwoID.IsZero()
		if ready && m.Outcome.IsZero() {
			return time.Now().Add(min(shortTTL, normal)).Unix()
		}
	}
	return time.Now().Add(normal).Unix()
}
