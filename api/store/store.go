/* store.go
 * Contains the store struct and NewStore function. The methods for this package are split into two files:
 * watched_matches and tournament_snapshots. Each of these files contain methods for interacting with that part of the
 * database
 */

package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	watchedCollection   = "watched_matches"
	snapshotsCollection = "tournament_snapshots"

	connectTimeout = 10 * time.Second
)

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Source      string        // Backend base url the tournament data is fetched from, snapshots are keyed by it
	SnapshotTTL time.Duration // TTL of a snapshot once the bracket has settled, zero means the default
	Collections struct {
		Watched   *mongo.Collection
		Snapshots *mongo.Collection
	}
}

// NewStore initialises the db connection and collections.
// Preconditions: Receives a context, the database name, mongo uri and the tournament source url
// Postconditions: Returns pointer to the Store object, or error if it occurs
func NewStore(ctx context.Context, dbName string, mongoURI string, source string) (*Store, error) {
	if dbName == "" || source == "" {
		return nil, fmt.Errorf("dbName and source cannot be empty")
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	db := client.Database(dbName)

	s := &Store{
		Client:   client,
		Database: db,
		Source:   source,
	}
	s.Collections.Watched = db.Collection(watchedCollection)
	s.Collections.Snapshots = db.Collection(snapshotsCollection)

	return s, nil
}
