// Package source builds envsetting source mappings from places other than
// the live process environment: YAML, JSON and dotenv files, KEY=VALUE
// environ slices, and key/value tables in SQLite.
//
// Every constructor returns a flat envsetting.Map. Sources are never merged;
// pick one per load.
//
//	src, err := source.FromFile("settings.yaml")
//	if err != nil {
//	    return err
//	}
//	settings, err := envsetting.Load(src, declare)
package source
