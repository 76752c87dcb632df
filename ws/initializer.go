package ws

import (
	"context"

	"github.com/pkg/errors"
)

// Initializer computes the initial state from a seed. A store invokes it
// exactly once, at construction. It must be pure apart from one-time
// reads such as a snapshot lookup.
type Initializer[Seed any, S any] interface {
	Initialize(ctx context.Context, seed Seed) (*S, error)
}

type InitializerFunction[Seed any, S any] func(seed Seed) (*S, error)

func (f InitializerFunction[Seed, S]) Initialize(ctx context.Context, seed Seed) (*S, error) {
	return f(seed)
}

// Seeded adopts the seed itself as the initial state.
func Seeded[S any]() Initializer[S, S] {
	var initializer InitializerFunction[S, S] = func(seed S) (*S, error) {
		state := seed
		return &state, nil
	}

	return initializer
}

// Restored prefers a persisted snapshot over the seed. A snapshot hit is
// decoded and adopted; a miss falls through to the wrapped initializer.
func Restored[Seed any, S any](snapshots SnapshotStore, id StoreId, fallback Initializer[Seed, S]) Initializer[Seed, S] {
	return &restoredInitializer[Seed, S]{
		snapshots: snapshots,
		id:        id,
		fallback:  fallback,
	}
}

type restoredInitializer[Seed any, S any] struct {
	snapshots SnapshotStore
	id        StoreId
	fallback  Initializer[Seed, S]
}

func (r *restoredInitializer[Seed, S]) Initialize(ctx context.Context, seed Seed) (*S, error) {
	snapshot, err := r.snapshots.Load(ctx, r.id)
	if err != nil {
		if errors.Is(err, ErrSnapshotNotFound) {
			return r.fallback.Initialize(ctx, seed)
		}

		return nil, errors.Wrap(err, "failed to read snapshot")
	}

	var state S
	if err := UnmarshalFromData(snapshot.State, &state); err != nil {
		return nil, errors.Wrap(err, "failed to decode snapshot")
	}

	return &state, nil
}
