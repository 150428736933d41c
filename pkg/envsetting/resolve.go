package envsetting

import "slices"

// boolSentinel stands in for a true default when a boolean setting is
// routed through the string coercer.
const boolSentinel = "true"

// resolve coerces one setting against src.
func resolve(src Source, s Setting) (any, Origin, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	switch s.kind {
	case KindString:
		return resolveString(src, s.key, s.str)
	case KindBool:
		return resolveBool(src, s)
	case KindNumber:
		return resolveNumber(src, s)
	case KindList:
		return resolveList(src, s)
	case KindCustom:
		return resolveCustom(src, s)
	default:
		return nil, "", &DeclarationError{Key: s.key, Kind: s.kind, Reason: "unknown kind"}
	}
}

// resolveString is the presence/default rule every other kind builds on:
// a present key wins, then the default, and with neither the setting is
// missing.
func resolveString(src Source, key string, def optional[string]) (string, Origin, error) {
	if raw, ok := src.Lookup(key); ok {
		return raw, OriginSource, nil
	}
	if d, ok := def.get(); ok {
		return d, OriginDefault, nil
	}
	return "", "", &MissingSettingError{Key: key}
}

func resolveBool(src Source, s Setting) (bool, Origin, error) {
	def := some("")
	if d, _ := s.boolean.get(); d {
		def = some(boolSentinel)
	}
	raw, origin, err := resolveString(src, s.key, def)
	if err != nil {
		return false, origin, err
	}
	if origin == OriginDefault && !s.boolean.ok {
		origin = OriginAbsent
	}
	return raw != "", origin, nil
}

func resolveNumber(src Source, s Setting) (Number, Origin, error) {
	var def optional[string]
	if d, ok := s.number.get(); ok {
		def = some(d.String())
	}
	raw, origin, err := resolveString(src, s.key, def)
	if err != nil {
		return Number{}, origin, err
	}
	if origin == OriginDefault {
		return s.number.value, origin, nil
	}
	n, err := parseNumber(raw)
	if err != nil {
		return Number{}, origin, &ParseError{Key: s.key, Kind: s.kind, Value: raw, Secret: s.secret, Err: err}
	}
	return n, origin, nil
}

func resolveList(src Source, s Setting) ([]string, Origin, error) {
	raw, origin, err := resolveString(src, s.key, some(""))
	if err != nil {
		return nil, origin, err
	}
	if raw == "" {
		if d, ok := s.list.get(); ok {
			return slices.Clone(d), OriginDefault, nil
		}
		if origin == OriginDefault {
			origin = OriginAbsent
		}
		return []string{}, origin, nil
	}
	return s.delim.Split(raw, -1), origin, nil
}

func resolveCustom(src Source, s Setting) (any, Origin, error) {
	raw, ok := src.Lookup(s.key)
	origin := OriginSource
	if !ok {
		origin = OriginAbsent
	}
	v, err := s.parse(raw, ok)
	if err != nil {
		return nil, origin, &ParseError{Key: s.key, Kind: s.kind, Value: raw, Secret: s.secret, Err: err}
	}
	return v, origin, nil
}
