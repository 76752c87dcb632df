package ws

import (
	"context"
	"errors"
)

// Snapshot is the persisted form of a store's state at a revision.
type Snapshot struct {
	Id        StoreId   `json:"id"`
	Revision  Revision  `json:"revision"`
	Timestamp Timestamp `json:"timestamp"`
	State     Data      `json:"state"`
}

var ErrSnapshotNotFound = errors.New("snapshot-not-found")
var RevisionConflict = errors.New("revision-conflict")

// SnapshotStore is a keyed snapshot read and write. Load returns
// ErrSnapshotNotFound when no snapshot exists for the id. Save without an
// expected revision succeeds only when the snapshot is newer than the
// stored one; with an expected revision it succeeds only when the stored
// revision matches. Either failure is reported as RevisionConflict.
type SnapshotStore interface {
	Load(ctx context.Context, id StoreId) (*Snapshot, error)
	Save(ctx context.Context, snapshot Snapshot, options SaveOptions) error
	Remove(ctx context.Context, id StoreId) error
}

type SaveOptions struct {
	ExpectedRevision Revision
}

type SaveOption func(modifier *SaveOptions)

func Options(options ...SaveOption) SaveOptions {
	modifiers := &SaveOptions{}
	for _, option := range options {
		option(modifiers)
	}

	return *modifiers
}

func WithExpectedRevision(expectedRevision Revision) SaveOption {
	return func(modifier *SaveOptions) {
		modifier.ExpectedRevision = expectedRevision
	}
}
