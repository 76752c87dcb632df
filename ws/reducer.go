package ws

// Reducer computes the next state from the current state and an action.
// Reduce writes the next value through state and must be deterministic and
// free of side effects. On error the caller discards the written value.
type Reducer[S any] interface {
	Reduce(state *S, action Action) error
}

// ReducerFunction adapts a function over a concrete action type. Remote
// actions are decoded into A before the function is applied.
type ReducerFunction[S any, A any] func(state *S, action *A) error

func (f ReducerFunction[S, A]) Reduce(state *S, action Action) error {
	if remote, ok := action.(RemoteAction); ok {
		var decoded A
		if err := UnmarshalFromData(remote.Payload, &decoded); err != nil {
			return err
		}

		return f(state, &decoded)
	}

	if a, ok := action.(A); ok {
		return f(state, &a)
	}

	if a, ok := action.(*A); ok {
		return f(state, a)
	}

	return UnexpectedAction(action)
}

// Reducers routes actions by kind. A kind outside the map is a failure,
// never a silent no-op.
type Reducers[S any] map[ActionKind]Reducer[S]

func (r Reducers[S]) Reduce(state *S, action Action) error {
	kind := ActionKindOf(action)

	reducer := r[kind]
	if nil == reducer {
		return UnsupportedAction(kind)
	}

	return reducer.Reduce(state, action)
}
