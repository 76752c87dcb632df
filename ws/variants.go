package ws

import (
	"github.com/weegigs/wee-state-go/ws/internal/merge"
)

// Replace produces a reducer that adopts the action value as the next
// state. The action must be an S, an *S, or a remote action encoding an S.
func Replace[S any]() Reducer[S] {
	return replaceReducer[S]{}
}

type replaceReducer[S any] struct{}

func (replaceReducer[S]) Reduce(state *S, action Action) error {
	if remote, ok := action.(RemoteAction); ok {
		var decoded S
		if err := UnmarshalFromData(remote.Payload, &decoded); err != nil {
			return err
		}

		*state = decoded
		return nil
	}

	if next, ok := action.(S); ok {
		*state = next
		return nil
	}

	if next, ok := action.(*S); ok {
		*state = *next
		return nil
	}

	return UnexpectedAction(action)
}

// Merge produces a reducer that lays a partial update over the current
// state. The action may be a partially populated S (zero fields are
// carried over unchanged) or a map keyed by field or JSON tag name.
// An empty partial leaves the state as it was.
func Merge[S any]() Reducer[S] {
	return mergeReducer[S]{}
}

type mergeReducer[S any] struct{}

func (mergeReducer[S]) Reduce(state *S, action Action) error {
	if remote, ok := action.(RemoteAction); ok {
		var decoded S
		if err := UnmarshalFromData(remote.Payload, &decoded); err != nil {
			return err
		}

		return merge.Struct(state, &decoded)
	}

	if partial, ok := action.(S); ok {
		return merge.Struct(state, &partial)
	}

	if partial, ok := action.(*S); ok {
		return merge.Struct(state, partial)
	}

	if fields, ok := action.(map[string]any); ok {
		return merge.Map(state, fields)
	}

	return UnexpectedAction(action)
}
