package entities

import (
	"fmt"
	"slices"

	"marktrans/internal/domain"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindString Kind = iota
	KindSequence
	KindMapping
	// KindOpaque carries a non-string leaf (number, bool, null) through
	// resolution untouched.
	KindOpaque
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	case KindOpaque:
		return "opaque"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Field is one entry of a Mapping, kept in document order.
type Field struct {
	Key   string
	Value Value
}

// Value is a node of a translatable tree. The zero Value is the empty string.
type Value struct {
	kind   Kind
	text   string
	items  []Value
	fields []Field
	opaque any
}

func String(s string) Value {
	return Value{kind: KindString, text: s}
}

func Sequence(items ...Value) Value {
	return Value{kind: KindSequence, items: items}
}

func Mapping(fields ...Field) Value {
	return Value{kind: KindMapping, fields: fields}
}

func Opaque(v any) Value {
	return Value{kind: KindOpaque, opaque: v}
}

func (v Value) Kind() Kind { return v.kind }

// IsContainer reports whether v is a Sequence or a Mapping.
func (v Value) IsContainer() bool {
	return v.kind == KindSequence || v.kind == KindMapping
}

// Text returns the string of a KindString value, "" otherwise.
func (v Value) Text() string { return v.text }

// Items returns the children of a Sequence. Callers must not modify the slice.
func (v Value) Items() []Value { return v.items }

// Fields returns the entries of a Mapping. Callers must not modify the slice.
func (v Value) Fields() []Field { return v.fields }

// Raw returns the payload of a KindOpaque value.
func (v Value) Raw() any { return v.opaque }

// Len returns the number of children of a container, 0 for leaves.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.items)
	case KindMapping:
		return len(v.fields)
	default:
		return 0
	}
}

// Get returns the first mapping entry stored under key.
func (v Value) Get(key string) (Value, bool) {
	for _, f := range v.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Index returns the i-th sequence item, or false when out of range.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindSequence || i < 0 || i >= len(v.items) {
		return Value{}, false
	}
	return v.items[i], true
}

// Path walks v following mapping keys (string) and sequence indexes (int).
func (v Value) Path(steps ...any) (Value, bool) {
	cur := v
	for _, step := range steps {
		var ok bool
		switch s := step.(type) {
		case string:
			cur, ok = cur.Get(s)
		case int:
			cur, ok = cur.Index(s)
		}
		if !ok {
			return Value{}, false
		}
	}
	return cur, true
}

// FromAny converts decoded data (as produced by encoding/json or by hand) into
// a Value. Map keys are sorted since Go maps carry no order.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case Value:
		return t, nil
	case string:
		return String(t), nil
	case nil, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return Opaque(t), nil
	case []string:
		items := make([]Value, len(t))
		for i, s := range t {
			items[i] = String(s)
		}
		return Sequence(items...), nil
	case []any:
		items := make([]Value, len(t))
		for i, child := range t {
			item, err := FromAny(child)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = item
		}
		return Sequence(items...), nil
	case map[string]string:
		keys := sortedKeys(t)
		fields := make([]Field, len(keys))
		for i, k := range keys {
			fields[i] = Field{Key: k, Value: String(t[k])}
		}
		return Mapping(fields...), nil
	case map[string]any:
		keys := sortedKeys(t)
		fields := make([]Field, len(keys))
		for i, k := range keys {
			child, err := FromAny(t[k])
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			fields[i] = Field{Key: k, Value: child}
		}
		return Mapping(fields...), nil
	default:
		return Value{}, fmt.Errorf("%w: unsupported type %T", domain.ErrMalformedInput, x)
	}
}

// Any converts v back into plain Go data. Mappings become map[string]any and
// lose their order.
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.text
	case KindSequence:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Any()
		}
		return out
	case KindMapping:
		out := make(map[string]any, len(v.fields))
		for _, f := range v.fields {
			out[f.Key] = f.Value.Any()
		}
		return out
	default:
		return v.opaque
	}
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
