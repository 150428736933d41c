package envsetting

import (
	"fmt"
	"regexp"
)

// Kind identifies how a setting's raw value is coerced.
type Kind int

const (
	// KindString returns the raw value unchanged.
	KindString Kind = iota + 1
	// KindBool maps any non-empty value to true.
	KindBool
	// KindNumber parses an integer or, with a decimal point, a float.
	KindNumber
	// KindList splits the raw value on a delimiter.
	KindList
	// KindCustom hands the raw value to a caller-supplied ParseFunc.
	KindCustom
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindList:
		return "list"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Origin indicates where a resolved value came from.
type Origin string

const (
	// OriginSource means the key was present in the source.
	OriginSource Origin = "source"

	// OriginDefault means the declared default was used.
	OriginDefault Origin = "default"

	// OriginAbsent means the key was missing and the setting degraded
	// without a default: false, an empty list, or whatever the custom
	// parser returned for the absence marker.
	OriginAbsent Origin = "absent"
)

// ParseFunc converts a raw value into a custom setting value. present is
// false when the key is missing from the source, in which case raw is "".
type ParseFunc func(raw string, present bool) (any, error)

// defaultDelimiter consumes whitespace on either side of each comma.
var defaultDelimiter = regexp.MustCompile(`\s*,\s*`)

// Setting is one declared setting: a key, a kind, and the options that
// apply to that kind. Settings are immutable once constructed.
type Setting struct {
	key    string
	kind   Kind
	secret bool

	str     optional[string]
	boolean optional[bool]
	number  optional[Number]
	list    optional[[]string]
	delim   *regexp.Regexp
	parse   ParseFunc

	// err is a declaration problem, reported when the setting is resolved.
	err error
}

// StringSetting declares a string setting. It is required unless a
// Default is given.
func StringSetting(key string, opts ...SettingOption) Setting {
	return newSetting(key, KindString, nil, opts)
}

// BoolSetting declares a boolean setting. Boolean settings are never
// required; a missing key resolves to the default, or false.
func BoolSetting(key string, opts ...SettingOption) Setting {
	return newSetting(key, KindBool, nil, opts)
}

// NumberSetting declares a number setting. It is required unless a
// Default is given.
func NumberSetting(key string, opts ...SettingOption) Setting {
	return newSetting(key, KindNumber, nil, opts)
}

// ListSetting declares a list setting. A missing or empty value resolves
// to the default, or an empty list.
func ListSetting(key string, opts ...SettingOption) Setting {
	return newSetting(key, KindList, nil, opts)
}

// CustomSetting declares a setting whose raw value is converted by parse.
// parse is called even when the key is missing.
func CustomSetting(key string, parse ParseFunc, opts ...SettingOption) Setting {
	return newSetting(key, KindCustom, parse, opts)
}

func newSetting(key string, kind Kind, parse ParseFunc, opts []SettingOption) Setting {
	s := Setting{key: key, kind: kind, parse: parse}
	if kind == KindList {
		s.delim = defaultDelimiter
	}
	if key == "" {
		s.invalid("empty key")
	}
	if kind == KindCustom && parse == nil {
		s.invalid("nil parse function")
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

// invalid records the first declaration problem.
func (s *Setting) invalid(format string, args ...any) {
	if s.err == nil {
		s.err = &DeclarationError{Key: s.key, Kind: s.kind, Reason: fmt.Sprintf(format, args...)}
	}
}

// Key returns the setting's key.
func (s Setting) Key() string { return s.key }

// Kind returns the setting's kind.
func (s Setting) Kind() Kind { return s.kind }

// IsSecret reports whether the setting's value is masked in output.
func (s Setting) IsSecret() bool { return s.secret }

// HasDefault reports whether a default was declared.
func (s Setting) HasDefault() bool {
	switch s.kind {
	case KindString:
		return s.str.ok
	case KindBool:
		return s.boolean.ok
	case KindNumber:
		return s.number.ok
	case KindList:
		return s.list.ok
	default:
		return false
	}
}

// SettingOption configures a Setting at declaration time.
type SettingOption func(*Setting)

// DefaultValue lists the types accepted by Default.
type DefaultValue interface {
	string | bool | int | int64 | float64 | Number | []string
}

// Default declares the value used when the key is missing. The type must
// match the setting's kind: string for string settings, bool for boolean
// settings, int, int64, float64 or Number for number settings, and
// []string for list settings. Custom settings take no default; their
// parser handles absence.
func Default[T DefaultValue](v T) SettingOption {
	return func(s *Setting) {
		switch d := any(v).(type) {
		case string:
			if s.kind == KindString {
				s.str = some(d)
				return
			}
		case bool:
			if s.kind == KindBool {
				s.boolean = some(d)
				return
			}
		case int:
			if s.kind == KindNumber {
				s.number = some(Int(int64(d)))
				return
			}
		case int64:
			if s.kind == KindNumber {
				s.number = some(Int(d))
				return
			}
		case float64:
			if s.kind == KindNumber {
				s.number = some(Float(d))
				return
			}
		case Number:
			if s.kind == KindNumber {
				s.number = some(d)
				return
			}
		case []string:
			if s.kind == KindList {
				s.list = some(append([]string{}, d...))
				return
			}
		}
		s.invalid("default of type %T does not fit a %s setting", v, s.kind)
	}
}

// Delimiter splits a list setting on a literal separator instead of the
// default comma pattern.
func Delimiter(sep string) SettingOption {
	return func(s *Setting) {
		if s.kind != KindList {
			s.invalid("delimiter on a %s setting", s.kind)
			return
		}
		s.delim = regexp.MustCompile(regexp.QuoteMeta(sep))
	}
}

// DelimiterPattern splits a list setting on a regular expression.
func DelimiterPattern(re *regexp.Regexp) SettingOption {
	return func(s *Setting) {
		if s.kind != KindList {
			s.invalid("delimiter on a %s setting", s.kind)
			return
		}
		if re == nil {
			s.invalid("nil delimiter pattern")
			return
		}
		s.delim = re
	}
}

// Secret masks the setting's value in logs, Settings.LogValue, and parse
// errors.
func Secret() SettingOption {
	return func(s *Setting) {
		s.secret = true
	}
}
