package clipboard

import (
	"fmt"
	"reflect"
	"strconv"
)

// Text converts v to the string that Copy puts on the clipboard.
//
// Strings and byte slices are taken as is, booleans and numbers are formatted
// with strconv, fmt.Stringer values with their String method. Anything else,
// nil and nil pointers included, fails with ErrUnsupportedType.
func Text(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.FormatInt(int64(t), 10), nil
	case int8:
		return strconv.FormatInt(int64(t), 10), nil
	case int16:
		return strconv.FormatInt(int64(t), 10), nil
	case int32:
		return strconv.FormatInt(int64(t), 10), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case uint:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint64:
		return strconv.FormatUint(t, 10), nil
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), nil
	case fmt.Stringer:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return "", fmt.Errorf("%w: nil %T", ErrUnsupportedType, v)
		}
		return t.String(), nil
	default:
		return "", fmt.Errorf(
			"%w: only string, []byte, bool, integer, float and fmt.Stringer values are accepted, not %T",
			ErrUnsupportedType, v,
		)
	}
}
