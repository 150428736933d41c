package envsetting

import (
	"iter"
	"log/slog"
	"reflect"
	"slices"
)

// entry is one resolved setting.
type entry struct {
	value  any
	origin Origin
	secret bool
}

// Settings is the immutable result of a schema-mode load: every declared
// key mapped to its resolved value, in declaration order. Looking up a key
// that was not declared fails with an UnknownKeyError.
//
// Settings is safe for concurrent reads.
type Settings struct {
	keys    []string
	entries map[string]entry
}

func newSettings(size int) *Settings {
	return &Settings{
		keys:    make([]string, 0, size),
		entries: make(map[string]entry, size),
	}
}

func (s *Settings) add(key string, e entry) {
	if _, ok := s.entries[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.entries[key] = e
}

// Get returns the resolved value for key. The dynamic type is string,
// bool, Number, []string, or whatever a custom parser returned.
func (s *Settings) Get(key string) (any, error) {
	e, ok := s.entries[key]
	if !ok {
		return nil, &UnknownKeyError{Key: key}
	}
	return copyValue(e.value), nil
}

// MustGet is like Get but panics on an unknown key.
func (s *Settings) MustGet(key string) any {
	v, err := s.Get(key)
	if err != nil {
		panic(err)
	}
	return v
}

// Lookup returns the value for key as a T. It fails with UnknownKeyError
// for undeclared keys and TypeError when the value is not a T.
func Lookup[T any](s *Settings, key string) (T, error) {
	var zero T
	v, err := s.Get(key)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, &TypeError{Key: key, Want: reflect.TypeFor[T]().String(), Got: v}
	}
	return t, nil
}

// String returns the value of a string setting.
func (s *Settings) String(key string) (string, error) {
	return Lookup[string](s, key)
}

// Bool returns the value of a boolean setting.
func (s *Settings) Bool(key string) (bool, error) {
	return Lookup[bool](s, key)
}

// Number returns the value of a number setting.
func (s *Settings) Number(key string) (Number, error) {
	return Lookup[Number](s, key)
}

// List returns a copy of the value of a list setting.
func (s *Settings) List(key string) ([]string, error) {
	return Lookup[[]string](s, key)
}

// Origin reports where the value for key came from.
func (s *Settings) Origin(key string) (Origin, error) {
	e, ok := s.entries[key]
	if !ok {
		return "", &UnknownKeyError{Key: key}
	}
	return e.origin, nil
}

// Has reports whether key was declared.
func (s *Settings) Has(key string) bool {
	_, ok := s.entries[key]
	return ok
}

// Keys returns the declared keys in declaration order.
func (s *Settings) Keys() []string {
	return slices.Clone(s.keys)
}

// Len returns the number of settings.
func (s *Settings) Len() int {
	return len(s.keys)
}

// All iterates over every key and value in declaration order.
func (s *Settings) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, key := range s.keys {
			if !yield(key, copyValue(s.entries[key].value)) {
				return
			}
		}
	}
}

// Map returns a copy of all key-value pairs.
func (s *Settings) Map() map[string]any {
	result := make(map[string]any, len(s.keys))
	for key, e := range s.entries {
		result[key] = copyValue(e.value)
	}
	return result
}

// LogValue implements slog.LogValuer. Secret values are masked.
func (s *Settings) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(s.keys))
	for _, key := range s.keys {
		e := s.entries[key]
		if e.secret {
			attrs = append(attrs, slog.String(key, maskedValue))
			continue
		}
		attrs = append(attrs, slog.Any(key, e.value))
	}
	return slog.GroupValue(attrs...)
}

// copyValue keeps list values from aliasing the container's storage.
func copyValue(v any) any {
	if list, ok := v.([]string); ok {
		return slices.Clone(list)
	}
	return v
}
