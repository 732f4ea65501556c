package domain

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is a loosely typed attribute bag for one property or booking, as
// received from a client before it is trusted.
type Document map[string]any

// Lookup resolves a dot-separated path such as "address.location.type".
// The second result is false when any segment is missing or a parent is not
// an object.
func (d Document) Lookup(path string) (any, bool) {
	var current any = map[string]any(d)
	for _, segment := range strings.Split(path, ".") {
		obj, ok := AsObject(current)
		if !ok {
			return nil, false
		}
		current, ok = obj[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Set assigns value at a top-level key.
func (d Document) Set(key string, value any) {
	d[key] = value
}

// AsObject returns v as a plain map when it is one.
func AsObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Document:
		return map[string]any(m), true
	case primitive.M:
		return map[string]any(m), true
	default:
		return nil, false
	}
}
