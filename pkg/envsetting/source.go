package envsetting

import "os"

// Source is the key to raw-string mapping settings are resolved against.
// Lookup must report whether the key is present; an empty string is a
// present value.
type Source interface {
	Lookup(key string) (string, bool)
}

// Map is a Source backed by a plain map.
type Map map[string]string

// Lookup implements Source.
func (m Map) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// SourceFunc adapts a lookup function to the Source interface.
type SourceFunc func(key string) (string, bool)

// Lookup implements Source.
func (f SourceFunc) Lookup(key string) (string, bool) {
	return f(key)
}

// Environment returns a Source that reads the process environment at
// lookup time. A nil Source passed to Load or Extract means Environment().
func Environment() Source {
	return SourceFunc(os.LookupEnv)
}
