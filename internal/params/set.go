package params

import (
	"errors"
	"fmt"
	"sort"
)

// Parameter access errors.
var (
	// ErrKeyNotFound indicates a required parameter key is absent.
	ErrKeyNotFound = errors.New("params: key not found")

	// ErrWrongType indicates a parameter exists but has an unexpected type.
	ErrWrongType = errors.New("params: wrong value type")
)

// Set is a read-only view over one named parameter set. Values come from a
// YAML document (or Defaults), so scalars arrive as float64, int, string or
// bool, and nested mappings as map[string]any. Sets are never mutated after
// construction; Store edits install fresh copies.
type Set struct {
	values map[string]any
}

// NewSet wraps the given values. The map is copied so later edits by the
// caller do not leak into the set.
func NewSet(values map[string]any) *Set {
	copied := make(map[string]any, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &Set{values: copied}
}

// Has reports whether the key exists.
func (s *Set) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Keys returns all parameter keys in sorted order.
func (s *Set) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the raw value for key.
func (s *Set) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Float returns a numeric parameter as float64. Integer values are widened.
func (s *Set) Float(key string) (float64, error) {
	v, ok := s.values[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%w: %q is %T, want number", ErrWrongType, key, v)
	}
}

// FloatOr returns the numeric parameter or def when the key is absent.
// A present-but-mistyped value still fails, surfaced as def here; use Float
// when the caller needs to distinguish.
func (s *Set) FloatOr(key string, def float64) float64 {
	f, err := s.Float(key)
	if err != nil {
		return def
	}
	return f
}

// Int returns an integer parameter.
func (s *Set) Int(key string) (int, error) {
	v, ok := s.values[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n == float64(int(n)) {
			return int(n), nil
		}
		return 0, fmt.Errorf("%w: %q is non-integral %v", ErrWrongType, key, n)
	default:
		return 0, fmt.Errorf("%w: %q is %T, want integer", ErrWrongType, key, v)
	}
}

// IntOr returns the integer parameter or def when the key is absent.
func (s *Set) IntOr(key string, def int) int {
	n, err := s.Int(key)
	if err != nil {
		return def
	}
	return n
}

// String returns a string parameter.
func (s *Set) String(key string) (string, error) {
	v, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	str, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is %T, want string", ErrWrongType, key, v)
	}
	return str, nil
}

// StringOr returns the string parameter or def when the key is absent.
func (s *Set) StringOr(key, def string) string {
	str, err := s.String(key)
	if err != nil {
		return def
	}
	return str
}

// Bool returns a boolean parameter.
func (s *Set) Bool(key string) (bool, error) {
	v, ok := s.values[key]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q is %T, want bool", ErrWrongType, key, v)
	}
	return b, nil
}

// Sub returns a nested sub-configuration.
func (s *Set) Sub(key string) (*Set, error) {
	v, ok := s.values[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	switch m := v.(type) {
	case map[string]any:
		return NewSet(m), nil
	case *Set:
		return m, nil
	default:
		return nil, fmt.Errorf("%w: %q is %T, want mapping", ErrWrongType, key, v)
	}
}

// clone returns a mutable copy of the underlying values.
func (s *Set) clone() map[string]any {
	copied := make(map[string]any, len(s.values))
	for k, v := range s.values {
		copied[k] = v
	}
	return copied
}
