package envsetting

import "context"

// Builder accumulates setting declarations for schema mode. Declaring a
// key twice replaces the earlier declaration but keeps its position.
//
// A Builder is not safe for concurrent use. Once declared it may be loaded
// any number of times, against any number of sources.
type Builder struct {
	order []string
	decls map[string]Setting
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{decls: make(map[string]Setting)}
}

// Declare adds s, replacing any earlier declaration of the same key.
func (b *Builder) Declare(s Setting) *Builder {
	if _, exists := b.decls[s.key]; !exists {
		b.order = append(b.order, s.key)
	}
	b.decls[s.key] = s
	return b
}

// String declares a string setting.
func (b *Builder) String(key string, opts ...SettingOption) *Builder {
	return b.Declare(StringSetting(key, opts...))
}

// Bool declares a boolean setting.
func (b *Builder) Bool(key string, opts ...SettingOption) *Builder {
	return b.Declare(BoolSetting(key, opts...))
}

// Number declares a number setting.
func (b *Builder) Number(key string, opts ...SettingOption) *Builder {
	return b.Declare(NumberSetting(key, opts...))
}

// List declares a list setting.
func (b *Builder) List(key string, opts ...SettingOption) *Builder {
	return b.Declare(ListSetting(key, opts...))
}

// Custom declares a custom-parsed setting.
func (b *Builder) Custom(key string, parse ParseFunc, opts ...SettingOption) *Builder {
	return b.Declare(CustomSetting(key, parse, opts...))
}

// Settings returns the declarations in declaration order.
func (b *Builder) Settings() []Setting {
	out := make([]Setting, 0, len(b.order))
	for _, key := range b.order {
		out = append(out, b.decls[key])
	}
	return out
}

// Len returns the number of declared settings.
func (b *Builder) Len() int {
	return len(b.order)
}

// Load resolves every declaration against src. The first failure aborts
// the load and is returned; there is no partial result. A nil src means
// the process environment.
func (b *Builder) Load(src Source, opts ...Option) (*Settings, error) {
	return b.LoadContext(context.Background(), src, opts...)
}

// LoadContext is Load with a context for trace propagation.
func (b *Builder) LoadContext(ctx context.Context, src Source, opts ...Option) (*Settings, error) {
	r := newRun(ctx, ModeSchema, src, opts)
	out := newSettings(len(b.order))
	for _, key := range b.order {
		s := b.decls[key]
		v, origin, err := r.resolve(s)
		if err != nil {
			return nil, r.finish(err)
		}
		out.add(key, entry{value: v, origin: origin, secret: s.secret})
	}
	r.finish(nil)
	return out, nil
}

// Load runs declare against a fresh Builder and loads the result from src.
//
// Example:
//
//	settings, err := envsetting.Load(nil, func(b *envsetting.Builder) {
//	    b.String("DATABASE_URL")
//	    b.Number("PORT", envsetting.Default(8080))
//	    b.Bool("DEBUG")
//	})
func Load(src Source, declare func(*Builder), opts ...Option) (*Settings, error) {
	return LoadContext(context.Background(), src, declare, opts...)
}

// LoadContext is Load with a context for trace propagation.
func LoadContext(ctx context.Context, src Source, declare func(*Builder), opts ...Option) (*Settings, error) {
	b := NewBuilder()
	if declare != nil {
		declare(b)
	}
	return b.LoadContext(ctx, src, opts...)
}
