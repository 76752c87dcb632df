package ws

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
)

const tracerName = "state-store"

// Listener observes successful dispatches. Whether the new state differs
// from the old is left to the listener; the store makes no equality
// judgement.
type Listener[S any] func(state S, action RecordedAction)

type StoreOption[S any] func(store *Store[S])

func WithId[S any](id StoreId) StoreOption[S] {
	return func(store *Store[S]) {
		store.id = id
	}
}

func WithLogger[S any](logger *zerolog.Logger) StoreOption[S] {
	return func(store *Store[S]) {
		store.log = logger
	}
}

// WithJournal records every applied action to the log.
func WithJournal[S any](journal ActionLog) StoreOption[S] {
	return func(store *Store[S]) {
		store.journal = journal
	}
}

// WithSnapshots persists the state after every applied action.
func WithSnapshots[S any](snapshots SnapshotStore) StoreOption[S] {
	return func(store *Store[S]) {
		store.snapshots = snapshots
	}
}

// Store owns a single state value. Dispatch is the only mutation path:
// actions are applied in call order, each reduction over the result of
// the previous one.
type Store[S any] struct {
	lk        sync.Mutex
	id        StoreId
	reducer   Reducer[S]
	state     S
	revision  Revision
	revisions *RevisionGenerator
	journal   ActionLog
	snapshots SnapshotStore
	listeners map[int]Listener[S]
	sequence  int
	log       *zerolog.Logger
}

func New[S any](reducer Reducer[S], initial S, options ...StoreOption[S]) *Store[S] {
	store := &Store[S]{
		reducer:   reducer,
		state:     initial,
		revision:  InitialRevision,
		revisions: NewRevisionGenerator(),
		listeners: make(map[int]Listener[S]),
	}

	for _, option := range options {
		option(store)
	}

	if store.log == nil {
		store.log = &log.Logger
	}

	if store.id == (StoreId{}) {
		store.id = StoreId{
			Type: stateTypeName[S](),
			Key:  store.revisions.NewRevision(time.Now()).String(),
		}
	}

	return store
}

// NewLazy defers the initial state to an initializer, invoked exactly
// once regardless of how many actions are later dispatched.
func NewLazy[Seed any, S any](
	ctx context.Context,
	reducer Reducer[S],
	seed Seed,
	initializer Initializer[Seed, S],
	options ...StoreOption[S],
) (*Store[S], error) {
	state, err := initializer.Initialize(ctx, seed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize state")
	}

	if state == nil {
		return nil, errors.New("initializer returned no state")
	}

	return New(reducer, *state, options...), nil
}

func stateTypeName[S any]() string {
	var state S
	return NameOf(state)
}

func (s *Store[S]) Id() StoreId {
	return s.id
}

func (s *Store[S]) State() S {
	s.lk.Lock()
	defer s.lk.Unlock()

	return s.state
}

func (s *Store[S]) Revision() Revision {
	s.lk.Lock()
	defer s.lk.Unlock()

	return s.revision
}

func (s *Store[S]) Initialized() bool {
	return s.Revision() != InitialRevision
}

// Subscribe registers a listener for subsequent dispatches. The returned
// function cancels the subscription.
func (s *Store[S]) Subscribe(listener Listener[S]) func() {
	s.lk.Lock()
	defer s.lk.Unlock()

	token := s.sequence
	s.sequence = s.sequence + 1
	s.listeners[token] = listener

	return func() {
		s.lk.Lock()
		defer s.lk.Unlock()

		delete(s.listeners, token)
	}
}

// Dispatch applies an action through the reducer and adopts the result.
// On failure the error propagates to the caller and the state, revision
// and journal are untouched. Snapshots are a restore cache: a failed
// save is logged and does not fail the dispatch.
func (s *Store[S]) Dispatch(ctx context.Context, action Action) error {
	kind := ActionKindOf(action)

	ctx, span := otel.Tracer(tracerName).Start(ctx, fmt.Sprintf("dispatch %s", kind))
	defer span.End()

	s.lk.Lock()

	next := s.state
	if err := s.reducer.Reduce(&next, action); err != nil {
		s.lk.Unlock()
		return errors.Wrap(err, fmt.Sprintf("failed to apply %s", kind))
	}

	now := time.Now()
	revision := s.revisions.NewRevision(now)

	data, err := actionData(action)
	if err != nil {
		s.lk.Unlock()
		return errors.Wrap(err, fmt.Sprintf("failed to encode %s", kind))
	}

	recorded := RecordedAction{
		Store:     s.id,
		Revision:  revision,
		ActionID:  ActionID(revision),
		Kind:      kind,
		Timestamp: TimestampFromTime(now),
		Data:      data,
	}

	if s.journal != nil {
		if err := s.journal.Append(ctx, s.id, recorded); err != nil {
			s.lk.Unlock()
			return errors.Wrap(err, "failed to record action")
		}
	}

	s.state = next
	s.revision = revision

	if s.snapshots != nil {
		s.saveSnapshot(ctx, next, recorded)
	}

	listeners := make([]Listener[S], 0, len(s.listeners))
	for _, listener := range s.listeners {
		listeners = append(listeners, listener)
	}

	s.lk.Unlock()

	s.log.Debug().
		Str("store", s.id.Encode().String()).
		Str("action", kind.String()).
		Str("revision", revision.String()).
		Msg("applied action")

	for _, listener := range listeners {
		listener(next, recorded)
	}

	return nil
}

// saveSnapshot runs after the state is adopted; callers hold the lock so
// saves stay in revision order.
func (s *Store[S]) saveSnapshot(ctx context.Context, state S, recorded RecordedAction) {
	encoded, err := MarshalToData(state)
	if err != nil {
		s.log.Warn().Err(err).
			Str("store", s.id.Encode().String()).
			Str("revision", recorded.Revision.String()).
			Msg("failed to encode snapshot")
		return
	}

	snapshot := Snapshot{
		Id:        s.id,
		Revision:  recorded.Revision,
		Timestamp: recorded.Timestamp,
		State:     encoded,
	}

	if err := s.snapshots.Save(ctx, snapshot, Options()); err != nil {
		s.log.Warn().Err(err).
			Str("store", s.id.Encode().String()).
			Str("revision", recorded.Revision.String()).
			Msg("failed to save snapshot")
	}
}

func actionData(action Action) (Data, error) {
	if remote, ok := action.(RemoteAction); ok {
		return remote.Payload, nil
	}

	return MarshalToData(action)
}
