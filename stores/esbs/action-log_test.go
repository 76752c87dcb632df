package esbs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/weegigs/wee-state-go/ws"
)

func TestActionLog(t *testing.T) {
	ctx := context.Background()

	log, cleanup, err := NewESDBTestLog(ctx, PageSize(5))
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()

	t.Run("esdb action log validation", func(t *testing.T) {
		suite := ws.NewActionLogValidationSuite(ctx, log)
		suite.Run(t)
	})

	t.Run("pages through a long history", func(t *testing.T) {
		id := ws.StoreId{Type: "test", Key: "pages-through-a-long-history"}

		generator := ws.NewRevisionGenerator()
		actions := make([]ws.RecordedAction, 12)
		for i := range actions {
			now := time.Now()
			revision := generator.NewRevision(now)
			data, err := ws.MarshalToData(map[string]int{"index": i})
			if !assert.Nil(t, err) {
				return
			}

			actions[i] = ws.RecordedAction{
				Store:     id,
				Revision:  revision,
				ActionID:  ws.ActionID(revision),
				Kind:      "test:paged",
				Timestamp: ws.TimestampFromTime(now),
				Data:      data,
			}
		}

		if !assert.Nil(t, log.Append(ctx, id, actions...)) {
			return
		}

		history, err := log.Read(ctx, id)
		if !assert.Nil(t, err) {
			return
		}

		assert.Equal(t, 12, len(history.Actions))
		assert.Equal(t, actions[11].Revision, history.Revision)
	})
}
