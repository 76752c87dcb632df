package ws

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/jaswdr/faker"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
)

var entropy = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)

type ValidationState struct {
	TestStringValue string `json:"test_string_value"`
	TestIntValue    int    `json:"test_int_value"`
}

func NewSnapshotStoreValidationSuite(ctx context.Context, store SnapshotStore) *SnapshotStoreValidationSuite {
	faker := faker.New()
	return &SnapshotStoreValidationSuite{
		store:     store,
		ctx:       ctx,
		faker:     faker,
		revisions: NewRevisionGenerator(),
	}
}

// SnapshotStoreValidationSuite checks a SnapshotStore implementation
// against the store contract.
type SnapshotStoreValidationSuite struct {
	store     SnapshotStore
	ctx       context.Context
	faker     faker.Faker
	revisions *RevisionGenerator
}

func (s *SnapshotStoreValidationSuite) Run(t *testing.T) {
	t.Run("misses on an unknown id", s.MissesOnUnknownId)
	t.Run("round trips a snapshot", s.RoundTripsSnapshot)
	t.Run("replaces with a newer revision", s.ReplacesWithNewerRevision)
	t.Run("rejects a stale revision", s.RejectsStaleRevision)
	t.Run("conflicts on a mismatched expected revision", s.ConflictsOnMismatchedExpectedRevision)
	t.Run("saves against an expected revision", s.SavesAgainstExpectedRevision)
	t.Run("removes a snapshot", s.RemovesSnapshot)
}

func (s *SnapshotStoreValidationSuite) MakeTestStoreId() StoreId {
	return StoreId{
		Type: "go-test",
		Key:  ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String(),
	}
}

func (s *SnapshotStoreValidationSuite) MakeTestSnapshot(id StoreId) Snapshot {
	now := time.Now()

	state, _ := MarshalToData(ValidationState{
		TestStringValue: s.faker.Lorem().Sentence(10),
		TestIntValue:    s.faker.Int(),
	})

	return Snapshot{
		Id:        id,
		Revision:  s.revisions.NewRevision(now),
		Timestamp: TimestampFromTime(now),
		State:     state,
	}
}

func (s *SnapshotStoreValidationSuite) MissesOnUnknownId(t *testing.T) {
	id := s.MakeTestStoreId()

	snapshot, err := s.store.Load(s.ctx, id)

	assert.Nil(t, snapshot)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func (s *SnapshotStoreValidationSuite) RoundTripsSnapshot(t *testing.T) {
	id := s.MakeTestStoreId()
	snapshot := s.MakeTestSnapshot(id)

	err := s.store.Save(s.ctx, snapshot, Options())
	if !assert.Nil(t, err) {
		return
	}

	loaded, err := s.store.Load(s.ctx, id)
	if !assert.Nil(t, err) {
		return
	}

	assert.Equal(t, snapshot.Revision, loaded.Revision)
	assert.Equal(t, snapshot.State, loaded.State)
	assert.EqualValues(t, id, loaded.Id)
}

func (s *SnapshotStoreValidationSuite) ReplacesWithNewerRevision(t *testing.T) {
	id := s.MakeTestStoreId()
	first := s.MakeTestSnapshot(id)
	second := s.MakeTestSnapshot(id)

	err := s.store.Save(s.ctx, first, Options())
	if !assert.Nil(t, err) {
		return
	}

	err = s.store.Save(s.ctx, second, Options())
	if !assert.Nil(t, err) {
		return
	}

	loaded, err := s.store.Load(s.ctx, id)
	if !assert.Nil(t, err) {
		return
	}

	assert.Equal(t, second.Revision, loaded.Revision)
}

func (s *SnapshotStoreValidationSuite) RejectsStaleRevision(t *testing.T) {
	id := s.MakeTestStoreId()
	first := s.MakeTestSnapshot(id)
	second := s.MakeTestSnapshot(id)

	err := s.store.Save(s.ctx, second, Options())
	if !assert.Nil(t, err) {
		return
	}

	err = s.store.Save(s.ctx, first, Options())
	assert.ErrorIs(t, err, RevisionConflict)
}

func (s *SnapshotStoreValidationSuite) ConflictsOnMismatchedExpectedRevision(t *testing.T) {
	id := s.MakeTestStoreId()
	first := s.MakeTestSnapshot(id)
	second := s.MakeTestSnapshot(id)

	err := s.store.Save(s.ctx, first, Options())
	if !assert.Nil(t, err) {
		return
	}

	err = s.store.Save(s.ctx, second, Options(WithExpectedRevision(second.Revision)))
	assert.ErrorIs(t, err, RevisionConflict)
}

func (s *SnapshotStoreValidationSuite) SavesAgainstExpectedRevision(t *testing.T) {
	id := s.MakeTestStoreId()
	first := s.MakeTestSnapshot(id)
	second := s.MakeTestSnapshot(id)

	err := s.store.Save(s.ctx, first, Options())
	if !assert.Nil(t, err) {
		return
	}

	err = s.store.Save(s.ctx, second, Options(WithExpectedRevision(first.Revision)))
	assert.Nil(t, err)
}

func (s *SnapshotStoreValidationSuite) RemovesSnapshot(t *testing.T) {
	id := s.MakeTestStoreId()
	snapshot := s.MakeTestSnapshot(id)

	err := s.store.Save(s.ctx, snapshot, Options())
	if !assert.Nil(t, err) {
		return
	}

	err = s.store.Remove(s.ctx, id)
	if !assert.Nil(t, err) {
		return
	}

	loaded, err := s.store.Load(s.ctx, id)
	assert.Nil(t, loaded)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}
