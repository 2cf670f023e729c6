package versionstore

import (
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
	// KindNative holds a format-specific scalar (for example a TOML date)
	// that is carried through untouched.
	KindNative
)

// String returns the name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindNative:
		return "native value"
	default:
		return "unknown"
	}
}

// Value is a generic document node. Objects keep their key order so a
// document re-serializes in the order it was read.
type Value struct {
	kind   Kind
	text   string // string contents, number literal or "true"/"false"
	items  []Value
	fields []Field
	native any
}

// Field is one key/value pair of an object.
type Field struct {
	Key   string
	Value Value
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, text: s} }

// Number returns a number value holding its literal text.
func Number(lit string) Value { return Value{kind: KindNumber, text: lit} }

// Array returns an array value.
func Array(items ...Value) Value { return Value{kind: KindArray, items: items} }

// Object returns an object value with fields in the given order.
func Object(fields ...Field) Value { return Value{kind: KindObject, fields: fields} }

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, text: strconv.FormatBool(b)}
}

// Native wraps a format-specific scalar.
func Native(v any) Value {
	return Value{kind: KindNative, native: v}
}

// Kind returns the variant of v.
func (v Value) Kind() Kind { return v.kind }

// Text returns the string contents, number literal or boolean text.
func (v Value) Text() string { return v.text }

// Items returns the elements of an array.
func (v Value) Items() []Value { return v.items }

// Fields returns the key/value pairs of an object in document order.
func (v Value) Fields() []Field { return v.fields }

// NativeValue returns the wrapped scalar of a KindNative value.
func (v Value) NativeValue() any { return v.native }

// child returns the element addressed by seg: an object key or an array index.
func (v Value) child(seg string) (Value, bool) {
	switch v.kind {
	case KindObject:
		for _, f := range v.fields {
			if f.Key == seg {
				return f.Value, true
			}
		}
	case KindArray:
		i, err := strconv.Atoi(seg)
		if err == nil && i >= 0 && i < len(v.items) {
			return v.items[i], true
		}
	}
	return Value{}, false
}

// withChild returns a copy of v with the element addressed by seg replaced.
func (v Value) withChild(seg string, c Value) Value {
	switch v.kind {
	case KindObject:
		fields := make([]Field, len(v.fields))
		copy(fields, v.fields)
		for i := range fields {
			if fields[i].Key == seg {
				fields[i].Value = c
			}
		}
		v.fields = fields
	case KindArray:
		items := make([]Value, len(v.items))
		copy(items, v.items)
		if i, err := strconv.Atoi(seg); err == nil && i >= 0 && i < len(items) {
			items[i] = c
		}
		v.items = items
	}
	return v
}

// Lookup walks path and returns the string stored at its end.
func (v Value) Lookup(path []string) (string, error) {
	leaf, err := v.walk(path)
	if err != nil {
		return "", err
	}
	return leaf.text, nil
}

// Replace walks path and returns a copy of v with the string leaf set to s.
// The receiver is not modified.
func (v Value) Replace(path []string, s string) (Value, error) {
	if _, err := v.walk(path); err != nil {
		return Value{}, err
	}
	return v.replace(path, s), nil
}

func (v Value) replace(path []string, s string) Value {
	if len(path) == 0 {
		return String(s)
	}
	c, _ := v.child(path[0])
	return v.withChild(path[0], c.replace(path[1:], s))
}

// walk resolves path to a string leaf, reporting the first segment whose
// container is missing or has the wrong kind.
func (v Value) walk(path []string) (Value, error) {
	if len(path) == 0 {
		return Value{}, &PathError{Message: "property path is empty"}
	}

	cur := v
	for i, seg := range path {
		if cur.kind != KindObject && cur.kind != KindArray {
			return Value{}, &PathError{Path: path, Segment: i, Expected: KindObject, Actual: cur.kind}
		}
		next, ok := cur.child(seg)
		if !ok {
			return Value{}, &PathError{Path: path, Segment: i, Missing: true}
		}
		cur = next
	}

	if cur.kind != KindString {
		return Value{}, &PathError{Path: path, Segment: len(path) - 1, Expected: KindString, Actual: cur.kind}
	}
	return cur, nil
}

// SplitPath turns "a.b.c" into its segments. Empty segments are dropped.
func SplitPath(dotted string) []string {
	var out []string
	for _, seg := range strings.Split(dotted, ".") {
		if seg = strings.TrimSpace(seg); seg != "" {
			out = append(out, seg)
		}
	}
	return out
}
