package envsetting

import (
	"errors"
	"fmt"
)

// maskedValue replaces secret values in output.
const maskedValue = "***"

// Sentinel errors. The typed errors below unwrap to these, so callers can
// test with errors.Is.
var (
	// ErrMissingSetting indicates a required setting was absent from the source.
	ErrMissingSetting = errors.New("missing required setting")

	// ErrUnknownKey indicates a Settings lookup used an undeclared key.
	ErrUnknownKey = errors.New("unknown setting key")

	// ErrParse indicates a raw value could not be coerced.
	ErrParse = errors.New("malformed setting value")

	// ErrInvalidDeclaration indicates a setting was declared with options
	// that do not fit its kind.
	ErrInvalidDeclaration = errors.New("invalid setting declaration")

	// ErrWrongType indicates a typed lookup on a setting of another kind.
	ErrWrongType = errors.New("setting has a different type")
)

// MissingSettingError reports a required setting with no value and no default.
type MissingSettingError struct {
	// Key is the setting that was missing.
	Key string
}

// Error implements the error interface.
func (e *MissingSettingError) Error() string {
	return fmt.Sprintf("missing required setting %s", e.Key)
}

// Unwrap returns ErrMissingSetting for errors.Is support.
func (e *MissingSettingError) Unwrap() error {
	return ErrMissingSetting
}

// UnknownKeyError reports a lookup of a key that was never declared.
type UnknownKeyError struct {
	Key string
}

// Error implements the error interface.
func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown setting key %s", e.Key)
}

// Unwrap returns ErrUnknownKey for errors.Is support.
func (e *UnknownKeyError) Unwrap() error {
	return ErrUnknownKey
}

// ParseError reports a raw value that could not be coerced to its kind.
type ParseError struct {
	// Key is the setting being resolved.
	Key string
	// Kind is the setting kind.
	Kind Kind
	// Value is the raw value. It is not rendered by Error when Secret is set.
	Value string
	// Secret marks Value as sensitive.
	Secret bool
	// Err is the underlying parse failure.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	value := e.Value
	if e.Secret {
		value = maskedValue
	}
	return fmt.Sprintf("setting %s: cannot parse %q as %s: %v", e.Key, value, e.Kind, e.Err)
}

// Unwrap returns ErrParse and the underlying error.
func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

// DeclarationError reports a setting declared with options that do not
// fit its kind.
type DeclarationError struct {
	Key    string
	Kind   Kind
	Reason string
}

// Error implements the error interface.
func (e *DeclarationError) Error() string {
	return fmt.Sprintf("invalid %s setting %q: %s", e.Kind, e.Key, e.Reason)
}

// Unwrap returns ErrInvalidDeclaration for errors.Is support.
func (e *DeclarationError) Unwrap() error {
	return ErrInvalidDeclaration
}

// TypeError reports a typed lookup whose type does not match the stored value.
type TypeError struct {
	Key string
	// Want is the requested Go type.
	Want string
	// Got is the stored value.
	Got any
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("setting %s holds %T, not %s", e.Key, e.Got, e.Want)
}

// Unwrap returns ErrWrongType for errors.Is support.
func (e *TypeError) Unwrap() error {
	return ErrWrongType
}

// IsMissingSetting reports whether err is or wraps a missing-setting error.
func IsMissingSetting(err error) bool {
	return errors.Is(err, ErrMissingSetting)
}

// IsUnknownKey reports whether err is or wraps an unknown-key error.
func IsUnknownKey(err error) bool {
	return errors.Is(err, ErrUnknownKey)
}

// IsParseError reports whether err is or wraps a parse error.
func IsParseError(err error) bool {
	return errors.Is(err, ErrParse)
}
