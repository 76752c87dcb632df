package ws

import (
	"context"
	"testing"
	"time"

	"github.com/jaswdr/faker"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
)

func NewActionLogValidationSuite(ctx context.Context, log ActionLog) *ActionLogValidationSuite {
	faker := faker.New()
	return &ActionLogValidationSuite{
		log:       log,
		ctx:       ctx,
		faker:     faker,
		revisions: NewRevisionGenerator(),
	}
}

// ActionLogValidationSuite checks an ActionLog implementation against the
// log contract.
type ActionLogValidationSuite struct {
	log       ActionLog
	ctx       context.Context
	faker     faker.Faker
	revisions *RevisionGenerator
}

func (s *ActionLogValidationSuite) Run(t *testing.T) {
	t.Run("reads an empty history", s.ReadsEmptyHistory)
	t.Run("appends a single action", s.AppendsSingleAction)
	t.Run("appends multiple actions", s.AppendsMultipleActions)
	t.Run("preserves append order", s.PreservesAppendOrder)
	t.Run("round trips action data", s.RoundTripsActionData)
}

func (s *ActionLogValidationSuite) MakeTestStoreId() StoreId {
	return StoreId{
		Type: "go-test",
		Key:  ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String(),
	}
}

func (s *ActionLogValidationSuite) MakeTestAction(id StoreId) RecordedAction {
	now := time.Now()
	revision := s.revisions.NewRevision(now)

	data, _ := MarshalToData(ValidationState{
		TestStringValue: s.faker.Lorem().Sentence(10),
		TestIntValue:    s.faker.Int(),
	})

	return RecordedAction{
		Store:     id,
		Revision:  revision,
		ActionID:  ActionID(revision),
		Kind:      ActionKind("go-test:validate"),
		Timestamp: TimestampFromTime(now),
		Data:      data,
	}
}

func (s *ActionLogValidationSuite) MakeTestActions(id StoreId, count int) []RecordedAction {
	actions := make([]RecordedAction, count)
	for i := 0; i < count; i++ {
		actions[i] = s.MakeTestAction(id)
	}

	return actions
}

func (s *ActionLogValidationSuite) ReadsEmptyHistory(t *testing.T) {
	id := s.MakeTestStoreId()

	history, err := s.log.Read(s.ctx, id)
	if !assert.Nil(t, err) {
		return
	}

	assert.Empty(t, history.Actions)
	assert.Equal(t, InitialRevision, history.Revision)
	assert.EqualValues(t, id, history.Id)
}

func (s *ActionLogValidationSuite) AppendsSingleAction(t *testing.T) {
	id := s.MakeTestStoreId()
	action := s.MakeTestAction(id)

	err := s.log.Append(s.ctx, id, action)
	if !assert.Nil(t, err) {
		return
	}

	history, err := s.log.Read(s.ctx, id)
	if !assert.Nil(t, err) {
		return
	}

	assert.Len(t, history.Actions, 1)
	assert.Equal(t, action.Revision, history.Revision)
}

func (s *ActionLogValidationSuite) AppendsMultipleActions(t *testing.T) {
	id := s.MakeTestStoreId()
	actions := s.MakeTestActions(id, 17)

	err := s.log.Append(s.ctx, id, actions...)
	if !assert.Nil(t, err) {
		return
	}

	history, err := s.log.Read(s.ctx, id)
	if !assert.Nil(t, err) {
		return
	}

	assert.Len(t, history.Actions, 17)
}

func (s *ActionLogValidationSuite) PreservesAppendOrder(t *testing.T) {
	id := s.MakeTestStoreId()
	actions := s.MakeTestActions(id, 5)

	for _, action := range actions {
		if !assert.Nil(t, s.log.Append(s.ctx, id, action)) {
			return
		}
	}

	history, err := s.log.Read(s.ctx, id)
	if !assert.Nil(t, err) {
		return
	}

	if !assert.Len(t, history.Actions, 5) {
		return
	}

	for i, action := range actions {
		assert.Equal(t, action.Revision, history.Actions[i].Revision)
	}
}

func (s *ActionLogValidationSuite) RoundTripsActionData(t *testing.T) {
	id := s.MakeTestStoreId()
	action := s.MakeTestAction(id)

	err := s.log.Append(s.ctx, id, action)
	if !assert.Nil(t, err) {
		return
	}

	history, err := s.log.Read(s.ctx, id)
	if !assert.Nil(t, err) {
		return
	}

	if !assert.Len(t, history.Actions, 1) {
		return
	}

	recorded := history.Actions[0]
	assert.Equal(t, action.Kind, recorded.Kind)

	var expected ValidationState
	var actual ValidationState
	assert.Nil(t, UnmarshalFromData(action.Data, &expected))
	assert.Nil(t, UnmarshalFromData(recorded.Data, &actual))
	assert.Equal(t, expected, actual)
}
