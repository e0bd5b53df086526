package backend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrShape reports a payload that decoded as JSON but is missing fields or
// carries values of the wrong type. Callers match it with errors.Is.
var ErrShape = errors.New("unexpected payload shape")

func shapeErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrShape, fmt.Sprintf(format, args...))
}

// object is a decoded JSON object whose fields are looked up under any of
// several spellings. The backend serialises camelCase aliases while older
// builds and fixtures use snake_case.
type object map[string]json.RawMessage

func decodeObject(data []byte, what string) (object, error) {
	if isNull(data) {
		return nil, shapeErrorf("%s is null", what)
	}
	var obj object
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, shapeErrorf("%s is not an object", what)
	}
	return obj, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func (o object) lookup(names ...string) (json.RawMessage, bool) {
	for _, name := range names {
		if raw, ok := o[name]; ok && !isNull(raw) {
			return raw, true
		}
	}
	return nil, false
}

func (o object) requiredString(what string, names ...string) (string, error) {
	raw, ok := o.lookup(names...)
	if !ok {
		return "", shapeErrorf("%s: missing %s", what, names[0])
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", shapeErrorf("%s: %s is not a string", what, names[0])
	}
	return s, nil
}

func (o object) optionalString(what string, names ...string) (string, error) {
	raw, ok := o.lookup(names...)
	if !ok {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", shapeErrorf("%s: %s is not a string", what, names[0])
	}
	return s, nil
}

func (o object) requiredInt(what string, names ...string) (int, error) {
	raw, ok := o.lookup(names...)
	if !ok {
		return 0, shapeErrorf("%s: missing %s", what, names[0])
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, shapeErrorf("%s: %s is not an integer", what, names[0])
	}
	return n, nil
}

func (o object) optionalInt(what string, names ...string) (int, error) {
	if _, ok := o.lookup(names...); !ok {
		return 0, nil
	}
	return o.requiredInt(what, names...)
}

func (o object) requiredBool(what string, names ...string) (bool, error) {
	raw, ok := o.lookup(names...)
	if !ok {
		return false, shapeErrorf("%s: missing %s", what, names[0])
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, shapeErrorf("%s: %s is not a boolean", what, names[0])
	}
	return b, nil
}

func (o object) optionalStrings(what string, names ...string) ([]string, error) {
	raw, ok := o.lookup(names...)
	if !ok {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, shapeErrorf("%s: %s is not a list of strings", what, names[0])
	}
	return list, nil
}

// requiredList decodes a top-level list field. A missing or null list fails
// the whole payload; an empty list is valid.
func requiredList[T any](o object, what string, names ...string) ([]T, error) {
	raw, ok := o.lookup(names...)
	if !ok {
		return nil, shapeErrorf("%s: missing %s", what, names[0])
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		if errors.Is(err, ErrShape) {
			return nil, err
		}
		return nil, shapeErrorf("%s: %s is not a list", what, names[0])
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
