/* watched_matches.go
 * Contains the methods for interacting with the watched_matches collection
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

// LoadWatched returns the matchup ids a viewer has watched
// Preconditions: Receives a context and the viewer id
// Postconditions: Returns the stored ids, an empty slice if the viewer has no entry yet, or an error if it occurs
func (s *Store) LoadWatched(ctx context.Context, viewerID string) ([]external.ID, error) {
	var res WatchedRecord
	err := s.Collections.Watched.FindOne(ctx, watchedFilter(viewerID)).Decode(&res)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []external.ID{}, nil
		}
		return nil, fmt.Errorf("error fetching watched matchups from db: %w", err)
	}

	if res.Matchups == nil {
		return []external.ID{}, nil
	}
	return res.Matchups, nil
}

// SaveWatched overwrites the viewer's watched entry with ids
// Preconditions: Receives a context, the viewer id and the full watched set
// Postconditions: Replaces (or creates) the viewer's entry and returns nil, or an error if it occurs
func (s *Store) SaveWatched(ctx context.Context, viewerID string, ids []external.ID) error {
	if ids == nil {
		ids = []external.ID{}
	}
	record := WatchedRecord{
		Key:       WatchedKey,
		ViewerID:  viewerID,
		Matchups:  ids,
		UpdatedAt: time.Now().UTC(),
	}

	opts := options.Replace().SetUpsert(true)
	_, err := s.Collections.Watched.ReplaceOne(ctx, watchedFilter(viewerID), record, opts)
	if err != nil {
		return fmt.Errorf("failed to save watched matchups: %w", err)
	}
	return nil
}

func watchedFilter(viewerID string) bson.D {
	return bson.D{{Key: "key", Value: WatchedKey}, {Key: "viewer_id", Value: viewerID}}
}
