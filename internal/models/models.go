package models

import (
	"fmt"
	"iter"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMapping
)

// String returns the lowercase name of the kind
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a format-agnostic document node. It is the pivot between the
// JSON, TOML and YAML parsers and formatters.
// The zero Value is null.
type Value struct {
	kind  Kind
	b     bool
	n     Number
	s     string
	items []Value
	m     *Mapping
}

// NewNull returns a null value
func NewNull() Value {
	return Value{kind: KindNull}
}

// NewBool returns a boolean value
func NewBool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// NewNumber returns a numeric value
func NewNumber(n Number) Value {
	return Value{kind: KindNumber, n: n}
}

// NewString returns a string value
func NewString(s string) Value {
	return Value{kind: KindString, s: s}
}

// NewSequence returns a sequence holding items in order
func NewSequence(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindSequence, items: items}
}

// NewMappingValue wraps m. A nil m becomes an empty mapping.
func NewMappingValue(m *Mapping) Value {
	if m == nil {
		m = NewMapping()
	}
	return Value{kind: KindMapping, m: m}
}

// Kind reports the variant held by v
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is null
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsBool returns the boolean held by v, false for other kinds
func (v Value) AsBool() bool {
	return v.b
}

// AsNumber returns the number held by v, the zero Number for other kinds
func (v Value) AsNumber() Number {
	return v.n
}

// AsString returns the string held by v, "" for other kinds
func (v Value) AsString() string {
	return v.s
}

// Items returns the elements of a sequence, nil for other kinds
func (v Value) Items() []Value {
	return v.items
}

// Mapping returns the mapping held by v, nil for other kinds
func (v Value) Mapping() *Mapping {
	return v.m
}

// Equal reports structural equality. Mapping key order is ignored and numbers
// compare by value, so 1.0 and 1.00 are equal while 1 and 1.0 are not.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.n.Equal(other.n)
	case KindString:
		return v.s == other.s
	case KindSequence:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if v.m.Len() != other.m.Len() {
			return false
		}
		for key, val := range v.m.All() {
			o, ok := other.m.Get(key)
			if !ok || !val.Equal(o) {
				return false
			}
		}
		return true
	}
	return false
}

// RenameKeys returns a copy of v with every mapping key passed through rename.
// Keys that collide after renaming keep the position of the first and the
// value of the last.
func (v Value) RenameKeys(rename func(string) string) Value {
	switch v.kind {
	case KindSequence:
		items := make([]Value, len(v.items))
		for i, item := range v.items {
			items[i] = item.RenameKeys(rename)
		}
		return NewSequence(items...)
	case KindMapping:
		m := NewMapping()
		for key, val := range v.m.All() {
			m.Set(rename(key), val.RenameKeys(rename))
		}
		return NewMappingValue(m)
	default:
		return v
	}
}

// Mapping is a string-keyed map that remembers insertion order.
type Mapping struct {
	keys   []string
	values map[string]Value
}

// NewMapping creates an empty Mapping
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]Value)}
}

// Set stores val under key. An existing key keeps its position.
func (m *Mapping) Set(key string, val Value) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = val
}

// Get returns the value stored under key
func (m *Mapping) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	val, ok := m.values[key]
	return val, ok
}

// Len returns the number of entries
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// All iterates over the entries in insertion order
func (m *Mapping) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if m == nil {
			return
		}
		for _, key := range m.keys {
			if !yield(key, m.values[key]) {
				return
			}
		}
	}
}
