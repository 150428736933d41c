package envsetting

import "context"

// Extractor resolves settings one call at a time against a fixed source.
// Each method returns a typed value immediately.
//
// Errors are sticky: after the first failure every later call returns the
// zero value without resolving, and Err reports that first failure.
// An Extractor is not safe for concurrent use.
type Extractor struct {
	run *run
	err error
}

// NewExtractor returns an Extractor bound to src. A nil src means the
// process environment. It does no logging or tracing; use Extract for that.
func NewExtractor(src Source) *Extractor {
	return &Extractor{run: newRun(context.Background(), ModeExtract, src, nil)}
}

// Err returns the first error encountered, if any.
func (e *Extractor) Err() error {
	return e.err
}

func (e *Extractor) resolve(s Setting) any {
	if e.err != nil {
		return nil
	}
	v, _, err := e.run.resolve(s)
	if err != nil {
		e.err = err
		return nil
	}
	return v
}

// String resolves a string setting.
func (e *Extractor) String(key string, opts ...SettingOption) string {
	v, _ := e.resolve(StringSetting(key, opts...)).(string)
	return v
}

// Bool resolves a boolean setting.
func (e *Extractor) Bool(key string, opts ...SettingOption) bool {
	v, _ := e.resolve(BoolSetting(key, opts...)).(bool)
	return v
}

// Number resolves a number setting.
func (e *Extractor) Number(key string, opts ...SettingOption) Number {
	v, _ := e.resolve(NumberSetting(key, opts...)).(Number)
	return v
}

// List resolves a list setting.
func (e *Extractor) List(key string, opts ...SettingOption) []string {
	v, _ := e.resolve(ListSetting(key, opts...)).([]string)
	return v
}

// Custom resolves a custom-parsed setting and returns the parser's result.
func (e *Extractor) Custom(key string, parse ParseFunc, opts ...SettingOption) any {
	return e.resolve(CustomSetting(key, parse, opts...))
}

// ExtractCustom is Custom with a typed parser.
//
// Example:
//
//	levels := envsetting.ExtractCustom(e, "POWER_LEVELS", func(raw string, ok bool) ([]int, error) {
//	    if !ok {
//	        return nil, nil
//	    }
//	    return parseLevels(raw)
//	})
func ExtractCustom[T any](e *Extractor, key string, parse func(raw string, present bool) (T, error), opts ...SettingOption) T {
	var fn ParseFunc
	if parse != nil {
		fn = func(raw string, present bool) (any, error) {
			return parse(raw, present)
		}
	}
	v, _ := e.Custom(key, fn, opts...).(T)
	return v
}

// Extract binds an Extractor to src, calls fn with it, and returns fn's
// result verbatim. If any extraction failed, the zero T and the first
// error are returned instead. A nil src means the process environment.
//
// Example:
//
//	cfg, err := envsetting.Extract(nil, func(e *envsetting.Extractor) Config {
//	    return Config{
//	        Name:    e.String("APP_NAME"),
//	        Debug:   e.Bool("APP_DEBUG"),
//	        Workers: int(e.Number("APP_WORKERS", envsetting.Default(4)).Int64()),
//	    }
//	})
func Extract[T any](src Source, fn func(*Extractor) T, opts ...Option) (T, error) {
	return ExtractContext(context.Background(), src, fn, opts...)
}

// ExtractContext is Extract with a context for trace propagation.
func ExtractContext[T any](ctx context.Context, src Source, fn func(*Extractor) T, opts ...Option) (T, error) {
	var zero T
	e := &Extractor{run: newRun(ctx, ModeExtract, src, opts)}
	if fn == nil {
		return zero, e.run.finish(nil)
	}
	out := fn(e)
	if err := e.run.finish(e.err); err != nil {
		return zero, err
	}
	return out, nil
}
