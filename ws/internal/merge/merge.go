package merge

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

func extractDestValue(v interface{}) (reflect.Value, error) {
	if v == nil {
		return reflect.Value{}, errors.New("destination must be a non-nil pointer")
	}

	rv := reflect.ValueOf(v)

	if rv.Kind() != reflect.Ptr {
		return reflect.Value{}, fmt.Errorf("destination must be a pointer, not %s", rv.Kind())
	}

	if rv.IsNil() {
		return reflect.Value{}, errors.New("destination must be a non-nil pointer")
	}

	if rv.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("destination must point to a struct, not %s", rv.Elem().Kind())
	}

	return rv.Elem(), nil
}

// Struct copies the non-zero exported fields of partial onto dest. Both
// must point to values of the same struct type. Zero fields in partial
// are treated as absent.
func Struct(dest interface{}, partial interface{}) error {
	dv, err := extractDestValue(dest)
	if err != nil {
		return err
	}

	pv, err := extractDestValue(partial)
	if err != nil {
		return err
	}

	if dv.Type() != pv.Type() {
		return fmt.Errorf("cannot merge %s into %s", pv.Type(), dv.Type())
	}

	for i := 0; i < pv.NumField(); i++ {
		field := pv.Field(i)
		if !field.CanInterface() || field.IsZero() {
			continue
		}

		dv.Field(i).Set(field)
	}

	return nil
}

// Map copies the named values onto dest, matching keys against field
// names and json tags, case insensitively.
func Map(dest interface{}, fields map[string]interface{}) error {
	dv, err := extractDestValue(dest)
	if err != nil {
		return err
	}

	for key, value := range fields {
		field, err := fieldNamed(dv, key)
		if err != nil {
			return err
		}

		if value == nil {
			field.Set(reflect.Zero(field.Type()))
			continue
		}

		rv := reflect.ValueOf(value)
		if !rv.Type().AssignableTo(field.Type()) {
			if !rv.Type().ConvertibleTo(field.Type()) {
				return fmt.Errorf("cannot assign %s to field %s", rv.Type(), key)
			}

			rv = rv.Convert(field.Type())
		}

		field.Set(rv)
	}

	return nil
}

func fieldNamed(dv reflect.Value, key string) (reflect.Value, error) {
	dt := dv.Type()
	for i := 0; i < dt.NumField(); i++ {
		field := dt.Field(i)
		if field.PkgPath != "" {
			continue
		}

		tag := strings.Split(field.Tag.Get("json"), ",")[0]
		if strings.EqualFold(field.Name, key) || strings.EqualFold(tag, key) {
			return dv.Field(i), nil
		}
	}

	return reflect.Value{}, fmt.Errorf("no field matches %s", key)
}
