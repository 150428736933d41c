package source

import (
	"os"
	"strings"

	"github.com/randalmurphal/envsetting/pkg/envsetting"
)

// FromEnviron builds a mapping from KEY=VALUE entries in the format of
// os.Environ. Entries without "=" are skipped; a later duplicate wins.
func FromEnviron(environ []string) envsetting.Map {
	m := make(envsetting.Map, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		m[key] = value
	}
	return m
}

// Snapshot copies the current process environment. Unlike
// envsetting.Environment, later changes to the environment are not seen.
func Snapshot() envsetting.Map {
	return FromEnviron(os.Environ())
}
