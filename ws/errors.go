package ws

import (
	"errors"
	"fmt"
)

func UnsupportedAction(kind ActionKind) UnsupportedActionError {
	return UnsupportedActionError{Kind: kind}
}

// UnsupportedActionError signals an action whose kind is outside the
// reducer's recognized set. It is a programmer error, not a transient
// fault; the triggering state is left untouched.
type UnsupportedActionError struct {
	Kind ActionKind
}

func (e UnsupportedActionError) Error() string {
	return fmt.Sprintf("unsupported action: %s", e.Kind)
}

func UnexpectedAction(action Action) error {
	return errors.New(fmt.Sprintf("unexpected action %s", ActionKindOf(action)))
}
