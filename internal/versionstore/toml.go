package versionstore

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// tomlCodec round-trips TOML through go-toml's generic map form. Keys are
// emitted in sorted order; floats and date/time values are carried as native
// scalars so their types survive re-encoding.
type tomlCodec struct{}

func (tomlCodec) decode(data []byte) (Value, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return Value{}, err
	}
	return fromTOML(doc), nil
}

func fromTOML(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]Field, 0, len(keys))
		for _, k := range keys {
			fields = append(fields, Field{Key: k, Value: fromTOML(t[k])})
		}
		return Object(fields...)
	case []any:
		items := make([]Value, 0, len(t))
		for _, item := range t {
			items = append(items, fromTOML(item))
		}
		return Array(items...)
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case int64:
		return Number(strconv.FormatInt(t, 10))
	default:
		return Native(t)
	}
}

func (tomlCodec) encode(v Value) ([]byte, error) {
	if v.kind != KindObject {
		return nil, fmt.Errorf("TOML document root must be a table, got %s", v.kind)
	}
	doc, err := toTOML(v)
	if err != nil {
		return nil, err
	}
	return toml.Marshal(doc)
}

func toTOML(v Value) (any, error) {
	switch v.kind {
	case KindString:
		return v.text, nil
	case KindBool:
		return v.text == "true", nil
	case KindNumber:
		if n, err := strconv.ParseInt(v.text, 10, 64); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(v.text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", v.text)
		}
		return f, nil
	case KindNative:
		return v.native, nil
	case KindArray:
		items := make([]any, 0, len(v.items))
		for _, item := range v.items {
			c, err := toTOML(item)
			if err != nil {
				return nil, err
			}
			items = append(items, c)
		}
		return items, nil
	case KindObject:
		m := make(map[string]any, len(v.fields))
		for _, f := range v.fields {
			c, err := toTOML(f.Value)
			if err != nil {
				return nil, err
			}
			m[f.Key] = c
		}
		return m, nil
	}
	return nil, fmt.Errorf("cannot encode %s as TOML", v.kind)
}
