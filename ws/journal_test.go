package ws

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func replaysEmptyHistory(t *testing.T) {
	initial := TestCounter{Current: 3}

	replayed, err := Replay(testReducers(), initial, History{})

	assert.Nil(t, err)
	assert.Equal(t, initial, replayed)
}

func replaysRecordedActions(t *testing.T) {
	generator := NewRevisionGenerator()
	id := StoreId{Type: "counter", Key: "replayed"}

	var actions []RecordedAction
	for _, amount := range []int{3, 4, 5} {
		data, err := MarshalToData(Incremented{Amount: amount})
		if !assert.Nil(t, err) {
			return
		}

		actions = append(actions, RecordedAction{
			Store:    id,
			Revision: generator.NewRevision(time.Now()),
			Kind:     ActionKindOf(Incremented{}),
			Data:     data,
		})
	}

	replayed, err := Replay(testReducers(), TestCounter{}, History{Id: id, Actions: actions})

	assert.Nil(t, err)
	assert.Equal(t, 12, replayed.Current)
}

func replayFailsOnUnknownKind(t *testing.T) {
	history := History{
		Actions: []RecordedAction{
			{Kind: "test:unknown", Data: Data{Encoding: JSONEncoding, Data: []byte("{}")}},
		},
	}

	_, err := Replay(testReducers(), TestCounter{}, history)

	assert.NotNil(t, err)
}

func TestReplay(t *testing.T) {
	t.Run("replays empty history", replaysEmptyHistory)
	t.Run("replays recorded actions", replaysRecordedActions)
	t.Run("replay fails on unknown kind", replayFailsOnUnknownKind)
}
