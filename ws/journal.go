package ws

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

type ActionID string

func (id ActionID) String() string {
	return string(id)
}

// RecordedAction is a dispatched action as it was applied: its kind, its
// encoded payload and the revision the store adopted afterwards.
type RecordedAction struct {
	Store     StoreId    `json:"store"`
	Revision  Revision   `json:"revision"`
	ActionID  ActionID   `json:"id"`
	Kind      ActionKind `json:"kind"`
	Timestamp Timestamp  `json:"timestamp"`
	Data      Data       `json:"data"`
}

// Remote converts a recorded action back into its dispatchable form.
func (a RecordedAction) Remote() RemoteAction {
	return RemoteAction{Kind: a.Kind, Payload: a.Data}
}

type History struct {
	Id       StoreId          `json:"id"`
	Actions  []RecordedAction `json:"actions,omitempty"`
	Revision Revision         `json:"revision"`
}

// ActionLog persists the sequence of applied actions for a store.
type ActionLog interface {
	Append(ctx context.Context, id StoreId, actions ...RecordedAction) error
	Read(ctx context.Context, id StoreId) (History, error)
}

// Replay folds a recorded history through a reducer, rebuilding the state
// the dispatches produced. Initial is returned unchanged when the history
// is empty.
func Replay[S any](reducer Reducer[S], initial S, history History) (S, error) {
	state := initial

	for _, recorded := range history.Actions {
		if err := reducer.Reduce(&state, recorded.Remote()); err != nil {
			return initial, errors.Wrap(
				err,
				fmt.Sprintf("failed to replay %s at %s", recorded.Kind, recorded.Revision),
			)
		}
	}

	return state, nil
}
