// Package memory provides in-process snapshot and action-log storage,
// primarily for tests and single-process hosts.
package memory

import (
	"context"
	"sync"

	"github.com/weegigs/wee-state-go/ws"
)

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		snapshots: make(map[ws.EncodedStoreId]ws.Snapshot),
	}
}

type SnapshotStore struct {
	lk        sync.Mutex
	snapshots map[ws.EncodedStoreId]ws.Snapshot
}

func (s *SnapshotStore) Load(ctx context.Context, id ws.StoreId) (*ws.Snapshot, error) {
	s.lk.Lock()
	defer s.lk.Unlock()

	snapshot, ok := s.snapshots[id.Encode()]
	if !ok {
		return nil, ws.ErrSnapshotNotFound
	}

	return &snapshot, nil
}

func (s *SnapshotStore) Save(ctx context.Context, snapshot ws.Snapshot, options ws.SaveOptions) error {
	s.lk.Lock()
	defer s.lk.Unlock()

	key := snapshot.Id.Encode()
	stored, exists := s.snapshots[key]

	if len(options.ExpectedRevision) == 0 {
		if exists && stored.Revision >= snapshot.Revision {
			return ws.RevisionConflict
		}
	} else if options.ExpectedRevision == ws.InitialRevision {
		if exists {
			return ws.RevisionConflict
		}
	} else if !exists || stored.Revision != options.ExpectedRevision {
		return ws.RevisionConflict
	}

	s.snapshots[key] = snapshot

	return nil
}

func (s *SnapshotStore) Remove(ctx context.Context, id ws.StoreId) error {
	s.lk.Lock()
	defer s.lk.Unlock()

	delete(s.snapshots, id.Encode())

	return nil
}

func NewActionLog() *ActionLog {
	return &ActionLog{
		histories: make(map[ws.EncodedStoreId][]ws.RecordedAction),
	}
}

type ActionLog struct {
	lk        sync.Mutex
	histories map[ws.EncodedStoreId][]ws.RecordedAction
}

func (l *ActionLog) Append(ctx context.Context, id ws.StoreId, actions ...ws.RecordedAction) error {
	l.lk.Lock()
	defer l.lk.Unlock()

	key := id.Encode()
	l.histories[key] = append(l.histories[key], actions...)

	return nil
}

func (l *ActionLog) Read(ctx context.Context, id ws.StoreId) (ws.History, error) {
	l.lk.Lock()
	defer l.lk.Unlock()

	stored := l.histories[id.Encode()]
	actions := make([]ws.RecordedAction, len(stored))
	copy(actions, stored)

	revision := ws.InitialRevision
	if len(actions) > 0 {
		revision = actions[len(actions)-1].Revision
	}

	return ws.History{
		Id:       id,
		Actions:  actions,
		Revision: revision,
	}, nil
}
