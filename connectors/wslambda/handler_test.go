package wslambda

import (
	"context"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/weegigs/wee-state-go/ws"
)

type testCounter struct {
	Current int `json:"current"`
}

type incremented struct {
	Amount int `json:"amount"`
}

func (incremented) ActionKind() ws.ActionKind {
	return "counter:incremented"
}

func counterReducers() ws.Reducers[testCounter] {
	var increment ws.ReducerFunction[testCounter, incremented] = func(counter *testCounter, action *incremented) error {
		counter.Current = counter.Current + action.Amount
		return nil
	}

	return ws.Reducers[testCounter]{
		ws.ActionKindOf(incremented{}): increment,
	}
}

func remoteIncrement(t *testing.T, amount int) string {
	payload, err := ws.MarshalToData(incremented{Amount: amount})
	if err != nil {
		t.Fatalf("failed to encode action. %+v", err)
	}

	body, err := json.Marshal(ws.RemoteAction{Kind: "counter:incremented", Payload: payload})
	if err != nil {
		t.Fatalf("failed to encode remote action. %+v", err)
	}

	return string(body)
}

func TestGatewayHandlers(t *testing.T) {
	ctx := context.Background()
	store := ws.New(counterReducers(), testCounter{Current: 3})

	t.Run("returns current state", func(t *testing.T) {
		response, err := NewStateHandler(store)(ctx, events.APIGatewayV2HTTPRequest{})

		assert.Nil(t, err)
		assert.Equal(t, http.StatusOK, response.StatusCode)

		var resource struct {
			State testCounter `json:"state"`
		}
		assert.Nil(t, json.Unmarshal([]byte(response.Body), &resource))
		assert.Equal(t, 3, resource.State.Current)
	})

	t.Run("dispatches remote action", func(t *testing.T) {
		request := events.APIGatewayV2HTTPRequest{Body: remoteIncrement(t, 4)}

		response, err := NewDispatchHandler(store)(ctx, request)

		assert.Nil(t, err)
		assert.Equal(t, http.StatusOK, response.StatusCode)
		assert.Equal(t, 7, store.State().Current)
	})

	t.Run("rejects unknown action kind", func(t *testing.T) {
		body, err := json.Marshal(ws.RemoteAction{Kind: "counter:unknown"})
		if !assert.Nil(t, err) {
			return
		}

		response, err := NewDispatchHandler(store)(ctx, events.APIGatewayV2HTTPRequest{Body: string(body)})

		assert.Nil(t, err)
		assert.Equal(t, http.StatusBadRequest, response.StatusCode)
		assert.Equal(t, 7, store.State().Current)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		response, err := NewDispatchHandler(store)(ctx, events.APIGatewayV2HTTPRequest{Body: "not json"})

		assert.Nil(t, err)
		assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	})
}
