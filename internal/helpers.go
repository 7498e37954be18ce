package internal

import (
	"reflect"
	"strconv"
)

// ContextValue retrieves a typed value from the request context.
// Returns the zero value if the key is missing or holds another type.
//
// Example:
//
//	id := folio.ContextValue[string](c, requestIDKey{})
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}

// QueryDefault retrieves a typed query parameter with a default value.
// Returns defaultValue if the parameter is empty or cannot be parsed.
//
// Example:
//
//	limit := folio.QueryDefault(c, "limit", 0)
func QueryDefault[T ~string | ~int | ~bool](c Context, name string, defaultValue T) T {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}
	v, ok := convertParam[T](raw)
	if !ok {
		return defaultValue
	}
	return v
}

// convertParam converts raw to T by T's underlying kind, so named types
// such as content.Kind work too.
func convertParam[T ~string | ~int | ~bool](raw string) (T, bool) {
	var zero T
	v := reflect.ValueOf(&zero).Elem()
	switch v.Kind() {
	case reflect.String:
		v.SetString(raw)
	case reflect.Int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return zero, false
		}
		v.SetInt(int64(n))
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return zero, false
		}
		v.SetBool(b)
	default:
		return zero, false
	}
	return zero, true
}
