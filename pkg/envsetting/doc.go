/*
Package envsetting loads typed settings from environment variables.

# Overview

Callers declare named settings with a kind (string, boolean, number, list,
or custom) and envsetting validates presence, applies defaults, and coerces
the raw strings. A setting is required exactly when it has no default.

Settings resolve against a Source. The process environment is the default;
any key to string mapping works:

	src := envsetting.Map{"PORT": "8080"}

# Schema Mode

Declare every setting up front, then resolve them together into an
immutable Settings container:

	settings, err := envsetting.Load(nil, func(b *envsetting.Builder) {
	    b.String("DATABASE_URL")
	    b.Number("PORT", envsetting.Default(8080))
	    b.Bool("DEBUG")
	    b.List("ALLOWED_HOSTS", envsetting.Default([]string{"localhost"}))
	})
	if err != nil {
	    log.Fatal(err)
	}

	url, _ := settings.String("DATABASE_URL")
	_, err = settings.Get("DATABSE_URL") // UnknownKeyError

Loading is fail-fast: the first setting that cannot be resolved aborts the
load and no Settings are returned.

# Extraction Mode

Resolve settings inline while building your own value:

	cfg, err := envsetting.Extract(nil, func(e *envsetting.Extractor) Config {
	    return Config{
	        URL:   e.String("DATABASE_URL"),
	        Port:  e.Number("PORT", envsetting.Default(8080)).Int64(),
	        Debug: e.Bool("DEBUG"),
	    }
	})

The first failure is remembered; Extract discards the built value and
returns that error.

# Coercion Rules

  - string: a present key returns its raw value, even when empty.
  - boolean: any non-empty value is true, empty is false. A missing key is
    the default, or false; boolean settings are never required.
  - number: a value with a decimal point parses as a float, otherwise as a
    base-10 integer. Malformed values fail with ParseError.
  - list: splits on `\s*,\s*` unless Delimiter or DelimiterPattern is
    given. A missing or empty value is the default, or an empty list.
  - custom: the ParseFunc receives the raw value and whether it was
    present, and its result is returned as-is.

# Errors

MissingSettingError, UnknownKeyError, ParseError, DeclarationError and
TypeError unwrap to the sentinels ErrMissingSetting, ErrUnknownKey,
ErrParse, ErrInvalidDeclaration and ErrWrongType.

# Observability

WithLogger, WithMetrics and WithSpanManager attach slog logging and
OpenTelemetry metrics and tracing to a load. Values of settings declared
with Secret are masked everywhere they would be rendered.

# Thread Safety

Settings is safe for concurrent reads. Builder and Extractor belong to a
single goroutine.
*/
package envsetting
