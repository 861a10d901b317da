/* models.go
 * This file contain the structs and helper functions that relate to DB objects
 */

package store

import (
	"errors"
	"time"

	"bracket-viewer/api/external"
)

// WatchedKey is the name of the entry holding a viewer's watched matchups
const WatchedKey = "watchedMatches"

// ErrSnapshotExpired is returned when a snapshot exists but its TTL has passed
var ErrSnapshotExpired = errors.New("tournament snapshot expired")

// WatchedRecord is a viewer's watched set as stored in the db. The whole document is replaced on every write
type WatchedRecord struct {
	Key       string        `bson:"key"`
	ViewerID  string        `bson:"viewer_id"`
	Matchups  []external.ID `bson:"matchups"`
	UpdatedAt time.Time     `bson:"updated_at"`
}

// SnapshotRecord is the last tournament payload fetched from a source
type SnapshotRecord struct {
	Source     string              `bson:"source"`
	TTL        int64               `bson:"ttl"`
	FetchedAt  time.Time           `bson:"fetched_at"`
	Tournament external.Tournament `bson:"tournament"`
}

// Expired reports whether the snapshot's TTL has passed
func (r SnapshotRecord) Expired(now time.Time) bool {
	return r.TTL < now.Unix()
}
