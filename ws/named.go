package ws

import (
	"reflect"
	"strings"

	"github.com/iancoleman/strcase"
)

type Named interface {
	TypeName() string
}

// name assigned when the value carries no type, such as a nil action or
// an interface-typed state
const untypedName = "untyped:nil"

func NameOf(value any) string {
	if typed, ok := value.(Named); ok == true {
		return typed.TypeName()
	}

	t := reflect.TypeOf(value)
	if t == nil {
		return untypedName
	}

	split := strings.Split(t.String(), ".")
	segments := make([]string, len(split))
	for i, segment := range split {
		s := strings.TrimLeft(segment, "*")
		segments[i] = strcase.ToKebab(s)
	}

	namespace := segments[0]
	name := strings.Join(segments[1:], "-")

	return namespace + ":" + name
}
