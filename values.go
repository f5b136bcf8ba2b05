package pathtoregexp

import (
	"fmt"
	"reflect"

	"github.com/spf13/cast"
)

// stringValues converts a data value to strings.
// It returns nil for a missing value, and reports whether v was a sequence.
func stringValues(v any) ([]string, bool, error) {
	if v == nil {
		return nil, false, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		// []byte is a string, not a sequence of numbers
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			break
		}

		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, false, nil
		}

		values := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			s, err := cast.ToStringE(rv.Index(i).Interface())
			if err != nil {
				return nil, true, err
			}

			values = append(values, s)
		}

		return values, true, nil

	case reflect.Pointer:
		if rv.IsNil() {
			return nil, false, nil
		}

		if _, ok := v.(fmt.Stringer); ok {
			break
		}

		return stringValues(rv.Elem().Interface())
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return nil, false, err
	}

	return []string{s}, false, nil
}
