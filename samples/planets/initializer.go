package planets

import (
	"context"

	"github.com/weegigs/wee-state-go/ws"
)

// RestoredCatalogue prefers a persisted catalogue snapshot over the
// default initial state.
func RestoredCatalogue(snapshots ws.SnapshotStore, id ws.StoreId) ws.Initializer[Catalogue, Catalogue] {
	return ws.Restored(snapshots, id, ws.Seeded[Catalogue]())
}

// NewRestoredStore builds a catalogue store whose initial state is read
// from the snapshot store when a snapshot exists.
func NewRestoredStore(ctx context.Context, snapshots ws.SnapshotStore, id ws.StoreId, options ...ws.StoreOption[Catalogue]) (*ws.Store[Catalogue], error) {
	initializer := RestoredCatalogue(snapshots, id)

	options = append(options, ws.WithId[Catalogue](id), ws.WithSnapshots[Catalogue](snapshots))

	return ws.NewLazy(ctx, NewReducer(), Initial(), initializer, options...)
}
