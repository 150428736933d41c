package envsetting_test

import (
	"errors"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/envsetting/pkg/envsetting"
)

// resolveOne loads a single declaration and returns its value.
func resolveOne(t *testing.T, src envsetting.Source, s envsetting.Setting) (any, error) {
	t.Helper()
	settings, err := envsetting.NewBuilder().Declare(s).Load(src)
	if err != nil {
		return nil, err
	}
	return settings.Get(s.Key())
}

func TestStringSetting(t *testing.T) {
	tests := []struct {
		name    string
		src     envsetting.Map
		opts    []envsetting.SettingOption
		want    string
		missing bool
	}{
		{"present", envsetting.Map{"FOO": "bar"}, nil, "bar", false},
		{"present empty", envsetting.Map{"FOO": ""}, nil, "", false},
		{"missing without default", envsetting.Map{}, nil, "", true},
		{"missing with default", envsetting.Map{}, []envsetting.SettingOption{envsetting.Default("frob")}, "frob", false},
		{"present ignores default", envsetting.Map{"FOO": "bar"}, []envsetting.SettingOption{envsetting.Default("frob")}, "bar", false},
		{"present empty ignores default", envsetting.Map{"FOO": ""}, []envsetting.SettingOption{envsetting.Default("frob")}, "", false},
		{"empty default", envsetting.Map{}, []envsetting.SettingOption{envsetting.Default("")}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveOne(t, tt.src, envsetting.StringSetting("FOO", tt.opts...))
			if tt.missing {
				require.Error(t, err)
				assert.True(t, envsetting.IsMissingSetting(err))

				var missing *envsetting.MissingSettingError
				require.True(t, errors.As(err, &missing))
				assert.Equal(t, "FOO", missing.Key)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBoolSetting(t *testing.T) {
	tests := []struct {
		name string
		src  envsetting.Map
		opts []envsetting.SettingOption
		want bool
	}{
		{"non-empty is true", envsetting.Map{"FOO": "bar"}, nil, true},
		{"false text is still true", envsetting.Map{"FOO": "false"}, nil, true},
		{"empty is false", envsetting.Map{"FOO": ""}, nil, false},
		{"missing is false", envsetting.Map{}, nil, false},
		{"missing with default true", envsetting.Map{}, []envsetting.SettingOption{envsetting.Default(true)}, true},
		{"missing with default false", envsetting.Map{}, []envsetting.SettingOption{envsetting.Default(false)}, false},
		{"present empty overrides default true", envsetting.Map{"FOO": ""}, []envsetting.SettingOption{envsetting.Default(true)}, false},
		{"present overrides default false", envsetting.Map{"FOO": "1"}, []envsetting.SettingOption{envsetting.Default(false)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveOne(t, tt.src, envsetting.BoolSetting("FOO", tt.opts...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNumberSetting(t *testing.T) {
	tests := []struct {
		name string
		src  envsetting.Map
		opts []envsetting.SettingOption
		want envsetting.Number
	}{
		{"integer", envsetting.Map{"FOO": "42"}, nil, envsetting.Int(42)},
		{"negative integer", envsetting.Map{"FOO": "-7"}, nil, envsetting.Int(-7)},
		{"float", envsetting.Map{"FOO": "3.25"}, nil, envsetting.Float(3.25)},
		{"float without leading digit", envsetting.Map{"FOO": ".5"}, nil, envsetting.Float(0.5)},
		{"integral float stays float", envsetting.Map{"FOO": "2.0"}, nil, envsetting.Float(2)},
		{"surrounding whitespace", envsetting.Map{"FOO": " 8 "}, nil, envsetting.Int(8)},
		{"int default", envsetting.Map{}, []envsetting.SettingOption{envsetting.Default(8080)}, envsetting.Int(8080)},
		{"int64 default", envsetting.Map{}, []envsetting.SettingOption{envsetting.Default(int64(9))}, envsetting.Int(9)},
		{"float default", envsetting.Map{}, []envsetting.SettingOption{envsetting.Default(0.75)}, envsetting.Float(0.75)},
		{"Number default", envsetting.Map{}, []envsetting.SettingOption{envsetting.Default(envsetting.Float(1))}, envsetting.Float(1)},
		{"present overrides default", envsetting.Map{"FOO": "1"}, []envsetting.SettingOption{envsetting.Default(8080)}, envsetting.Int(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveOne(t, tt.src, envsetting.NumberSetting("FOO", tt.opts...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNumberSetting_Errors(t *testing.T) {
	t.Run("missing without default", func(t *testing.T) {
		_, err := resolveOne(t, envsetting.Map{}, envsetting.NumberSetting("FOO"))
		assert.True(t, envsetting.IsMissingSetting(err))
	})

	malformed := []string{"abc", "", "1.2.3", "1e5", "12px", "99999999999999999999"}
	for _, raw := range malformed {
		t.Run("malformed "+strconv.Quote(raw), func(t *testing.T) {
			_, err := resolveOne(t, envsetting.Map{"FOO": raw}, envsetting.NumberSetting("FOO"))
			require.Error(t, err)
			assert.True(t, envsetting.IsParseError(err))

			var pe *envsetting.ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, "FOO", pe.Key)
			assert.Equal(t, envsetting.KindNumber, pe.Kind)
			assert.Equal(t, raw, pe.Value)
		})
	}

	t.Run("out of range unwraps to strconv.ErrRange", func(t *testing.T) {
		_, err := resolveOne(t, envsetting.Map{"FOO": "99999999999999999999"}, envsetting.NumberSetting("FOO"))
		assert.ErrorIs(t, err, strconv.ErrRange)
	})

	t.Run("secret value is masked", func(t *testing.T) {
		_, err := resolveOne(t, envsetting.Map{"FOO": "hunter2"}, envsetting.NumberSetting("FOO", envsetting.Secret()))
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "hunter2")
		assert.Contains(t, err.Error(), "***")
	})
}

func TestListSetting(t *testing.T) {
	tests := []struct {
		name string
		src  envsetting.Map
		opts []envsetting.SettingOption
		want []string
	}{
		{"empty value", envsetting.Map{"FOO": ""}, nil, []string{}},
		{"default delimiter consumes whitespace", envsetting.Map{"FOO": "foo, bar, baz  , bat"}, nil, []string{"foo", "bar", "baz", "bat"}},
		{"single item", envsetting.Map{"FOO": "solo"}, nil, []string{"solo"}},
		{"outer whitespace is kept", envsetting.Map{"FOO": " a , b "}, nil, []string{" a", "b "}},
		{"empty fields are kept", envsetting.Map{"FOO": "a,,b"}, nil, []string{"a", "", "b"}},
		{"duplicates are kept", envsetting.Map{"FOO": "a,a"}, nil, []string{"a", "a"}},
		{"literal delimiter", envsetting.Map{"FOO": "a:b:c:d"}, []envsetting.SettingOption{envsetting.Delimiter(":")}, []string{"a", "b", "c", "d"}},
		{"literal delimiter is not a pattern", envsetting.Map{"FOO": "a.b|c"}, []envsetting.SettingOption{envsetting.Delimiter("|")}, []string{"a.b", "c"}},
		{"pattern delimiter", envsetting.Map{"FOO": "a;b  c"}, []envsetting.SettingOption{envsetting.DelimiterPattern(regexp.MustCompile(`[;\s]+`))}, []string{"a", "b", "c"}},
		{"missing without default", envsetting.Map{}, nil, []string{}},
		{"missing with default", envsetting.Map{}, []envsetting.SettingOption{envsetting.Default([]string{"foo", "bar"})}, []string{"foo", "bar"}},
		{"present empty with default", envsetting.Map{"FOO": ""}, []envsetting.SettingOption{envsetting.Default([]string{"foo"})}, []string{"foo"}},
		{"present overrides default", envsetting.Map{"FOO": "x,y"}, []envsetting.SettingOption{envsetting.Default([]string{"foo", "bar"})}, []string{"x", "y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveOne(t, tt.src, envsetting.ListSetting("FOO", tt.opts...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListSetting_DefaultNotAliased(t *testing.T) {
	def := []string{"left", "right"}
	s := envsetting.ListSetting("ZONES", envsetting.Default(def))
	def[0] = "changed"

	got, err := resolveOne(t, envsetting.Map{}, s)
	require.NoError(t, err)
	assert.Equal(t, []string{"left", "right"}, got)

	got.([]string)[1] = "mutated"
	again, err := resolveOne(t, envsetting.Map{}, s)
	require.NoError(t, err)
	assert.Equal(t, []string{"left", "right"}, again)
}

// powerLevels splits on colons, converts to ints and sorts.
func powerLevels(raw string, present bool) (any, error) {
	if !present {
		return []int{}, nil
	}
	var levels []int
	for _, part := range strings.Split(raw, ":") {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		levels = append(levels, n)
	}
	slices.Sort(levels)
	return levels, nil
}

func TestCustomSetting(t *testing.T) {
	t.Run("parses present value", func(t *testing.T) {
		got, err := resolveOne(t, envsetting.Map{"FOO_POWER_LEVELS": "8:2:4:1"}, envsetting.CustomSetting("FOO_POWER_LEVELS", powerLevels))
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 4, 8}, got)
	})

	t.Run("missing key calls parser with absence marker", func(t *testing.T) {
		var gotRaw string
		var gotPresent = true
		parse := func(raw string, present bool) (any, error) {
			gotRaw, gotPresent = raw, present
			return "fallback", nil
		}

		got, err := resolveOne(t, envsetting.Map{}, envsetting.CustomSetting("FOO", parse))
		require.NoError(t, err)
		assert.Equal(t, "fallback", got)
		assert.Equal(t, "", gotRaw)
		assert.False(t, gotPresent)
	})

	t.Run("present empty is reported present", func(t *testing.T) {
		parse := func(raw string, present bool) (any, error) {
			return present, nil
		}
		got, err := resolveOne(t, envsetting.Map{"FOO": ""}, envsetting.CustomSetting("FOO", parse))
		require.NoError(t, err)
		assert.Equal(t, true, got)
	})

	t.Run("parser result is returned verbatim", func(t *testing.T) {
		type span struct{ lo, hi int }
		parse := func(string, bool) (any, error) { return span{1, 5}, nil }
		got, err := resolveOne(t, envsetting.Map{}, envsetting.CustomSetting("FOO", parse))
		require.NoError(t, err)
		assert.Equal(t, span{1, 5}, got)
	})

	t.Run("parser error becomes ParseError", func(t *testing.T) {
		_, err := resolveOne(t, envsetting.Map{"FOO_POWER_LEVELS": "1:two"}, envsetting.CustomSetting("FOO_POWER_LEVELS", powerLevels))
		require.Error(t, err)
		assert.True(t, envsetting.IsParseError(err))

		var numErr *strconv.NumError
		assert.True(t, errors.As(err, &numErr), "underlying parser error is reachable")
	})
}
