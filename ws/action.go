package ws

// Action describes a requested state transition. Any value can act as an
// action; the reducer decides what it means.
type Action any

type ActionKind string

func (k ActionKind) String() string {
	return string(k)
}

// TaggedAction carries an explicit discriminant. Actions without one are
// assigned an implicit kind derived from their Go type.
type TaggedAction interface {
	ActionKind() ActionKind
}

func ActionKindOf(action Action) ActionKind {
	var kind ActionKind
	switch a := action.(type) {
	case RemoteAction:
		kind = a.Kind
	case TaggedAction:
		kind = a.ActionKind()
	default:
		kind = ActionKind(NameOf(action))
	}

	return kind
}

// RemoteAction is the transport form of an action: a kind plus an encoded
// payload. Typed reducers decode the payload before applying it.
type RemoteAction struct {
	Kind    ActionKind `json:"action"`
	Payload Data       `json:"payload"`
}
