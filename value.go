package unionwire

import (
	"bytes"
	"encoding/hex"
	"slices"
	"strconv"
)

// Value is the payload of the active union field. The set of implementations
// is closed: Int16, Int32, Int64, Str, Bytes and Mapping.
type Value interface {
	Kind() Kind
	isValue()
}

type (
	Int16   int16
	Int32   int32
	Int64   int64
	Str     string
	Bytes   []byte
	Mapping map[int32]string
)

func (Int16) Kind() Kind   { return KindI16 }
func (Int32) Kind() Kind   { return KindI32 }
func (Int64) Kind() Kind   { return KindI64 }
func (Str) Kind() Kind     { return KindString }
func (Bytes) Kind() Kind   { return KindBinary }
func (Mapping) Kind() Kind { return KindMap }

func (Int16) isValue()   {}
func (Int32) isValue()   {}
func (Int64) isValue()   {}
func (Str) isValue()     {}
func (Bytes) isValue()   {}
func (Mapping) isValue() {}

// isNilValue reports payloads that are absent rather than empty.
func isNilValue(v Value) bool {
	switch x := v.(type) {
	case nil:
		return true
	case Bytes:
		return x == nil
	case Mapping:
		return x == nil
	}
	return false
}

// CloneValue returns a copy of v that shares no mutable storage with it.
func CloneValue(v Value) Value {
	switch x := v.(type) {
	case Bytes:
		if x == nil {
			return Bytes(nil)
		}
		return Bytes(bytes.Clone(x))
	case Mapping:
		if x == nil {
			return Mapping(nil)
		}
		m := make(Mapping, len(x))
		for k, s := range x {
			m[k] = s
		}
		return m
	default:
		return v
	}
}

// EqualValues compares payloads by kind and content. Mappings compare as sets
// of pairs.
func EqualValues(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case Bytes:
		return bytes.Equal(x, b.(Bytes))
	case Mapping:
		y := b.(Mapping)
		if len(x) != len(y) {
			return false
		}
		for k, s := range x {
			t, ok := y[k]
			if !ok || t != s {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

func formatValue(v Value) string {
	switch x := v.(type) {
	case Int16:
		return strconv.FormatInt(int64(x), 10)
	case Int32:
		return strconv.FormatInt(int64(x), 10)
	case Int64:
		return strconv.FormatInt(int64(x), 10)
	case Str:
		return strconv.Quote(string(x))
	case Bytes:
		return "0x" + hex.EncodeToString(x)
	case Mapping:
		var b bytes.Buffer
		b.WriteByte('{')
		for i, k := range sortedKeys(x) {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.FormatInt(int64(k), 10))
			b.WriteByte(':')
			b.WriteString(strconv.Quote(x[k]))
		}
		b.WriteByte('}')
		return b.String()
	}
	return "<nil>"
}

func sortedKeys(m Mapping) []int32 {
	keys := make([]int32, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
