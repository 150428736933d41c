package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/envsetting/pkg/envsetting"
)

// ErrNestedValue indicates a file value that is a mapping or a sequence.
var ErrNestedValue = errors.New("nested values are not supported")

// FromFile loads a source mapping from a file, detecting the format by
// extension. Supported extensions: .yaml, .yml, .json, .env; files named
// .env.<suffix> are read as dotenv too.
func FromFile(path string) (envsetting.Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if base := filepath.Base(path); base == ".env" || strings.HasPrefix(base, ".env.") {
		ext = ".env"
	}
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	case ".env":
		return FromDotenv(data)
	default:
		return nil, fmt.Errorf("unsupported source file extension: %s", ext)
	}
}

// FromYAML parses a top-level YAML mapping of scalars. Scalars keep their
// literal text, so `port: 08080` yields "08080". Null values become "".
func FromYAML(data []byte) (envsetting.Map, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	m := envsetting.Map{}
	if len(doc.Content) == 0 {
		return m, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse yaml: top level must be a mapping")
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if value.Kind == yaml.AliasNode {
			value = value.Alias
		}
		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("yaml key %q: %w", key.Value, ErrNestedValue)
		}
		if value.Tag == "!!null" {
			m[key.Value] = ""
			continue
		}
		m[key.Value] = value.Value
	}
	return m, nil
}

// FromJSON parses a top-level JSON object of scalars. Numbers keep their
// literal text and null becomes "".
func FromJSON(data []byte) (envsetting.Map, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	m := make(envsetting.Map, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			m[key] = v
		case json.Number:
			m[key] = v.String()
		case bool:
			if v {
				m[key] = "true"
			} else {
				m[key] = "false"
			}
		case nil:
			m[key] = ""
		default:
			return nil, fmt.Errorf("json key %q: %w", key, ErrNestedValue)
		}
	}
	return m, nil
}

// FromDotenv parses dotenv content: KEY=VALUE lines, comments, quoting,
// and an optional export prefix.
func FromDotenv(data []byte) (envsetting.Map, error) {
	values, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse dotenv: %w", err)
	}
	return envsetting.Map(values), nil
}
