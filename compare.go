package unionwire

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"strings"

	"github.com/zeebo/blake3"
)

// Equal reports whether u and o are both non-empty unions of the same type
// with the same active field and equal payloads. Empty unions are never equal,
// not even to themselves.
func (u *Union) Equal(o *Union) bool {
	if u == nil || o == nil || u.field == 0 || o.field == 0 {
		return false
	}
	if u.typeName() != o.typeName() || u.field != o.field {
		return false
	}
	return EqualValues(u.value, o.value)
}

// Compare orders unions by type name, then active field id (an empty union
// sorts first), then payload. A nil union sorts before any other. Mapping
// payloads have no natural order and fail with comparison_unsupported.
func (u *Union) Compare(o *Union) (int, error) {
	switch {
	case u == nil && o == nil:
		return 0, nil
	case u == nil:
		return -1, nil
	case o == nil:
		return 1, nil
	}
	if c := strings.Compare(u.typeName(), o.typeName()); c != 0 {
		return c, nil
	}
	switch {
	case u.field == 0 && o.field == 0:
		return 0, nil
	case u.field == 0:
		return -1, nil
	case o.field == 0:
		return 1, nil
	}
	if c := cmp.Compare(u.field, o.field); c != 0 {
		return c, nil
	}
	// Same name but differently declared tables.
	if c := cmp.Compare(u.value.Kind(), o.value.Kind()); c != 0 {
		return c, nil
	}
	switch x := u.value.(type) {
	case Int16:
		return cmp.Compare(x, o.value.(Int16)), nil
	case Int32:
		return cmp.Compare(x, o.value.(Int32)), nil
	case Int64:
		return cmp.Compare(x, o.value.(Int64)), nil
	case Str:
		return strings.Compare(string(x), string(o.value.(Str))), nil
	case Bytes:
		return bytes.Compare(x, o.value.(Bytes)), nil
	}
	name := u.activeName()
	return 0, IssueAt(fieldPath(u.typeName(), name), CodeComparisonUnsupported, "", nil, map[string]string{"field": name})
}

// Hash returns a 64-bit hash consistent with Equal.
func (u *Union) Hash() uint64 {
	sum := u.Fingerprint()
	return binary.LittleEndian.Uint64(sum[:8])
}

// Fingerprint returns the BLAKE3 digest of the union's canonical form: type
// tag, active field id, payload kind and payload bytes (maps in key order).
func (u *Union) Fingerprint() [32]byte {
	h := blake3.New()
	var scratch [8]byte
	writeChunk := func(b []byte) {
		binary.BigEndian.PutUint32(scratch[:4], uint32(len(b)))
		h.Write(scratch[:4])
		h.Write(b)
	}
	writeChunk([]byte(u.typeName()))
	if u.field != 0 {
		binary.BigEndian.PutUint16(scratch[:2], uint16(u.field))
		h.Write(scratch[:2])
		h.Write([]byte{byte(u.value.Kind())})
		switch x := u.value.(type) {
		case Int16:
			binary.BigEndian.PutUint64(scratch[:], uint64(int64(x)))
			h.Write(scratch[:])
		case Int32:
			binary.BigEndian.PutUint64(scratch[:], uint64(int64(x)))
			h.Write(scratch[:])
		case Int64:
			binary.BigEndian.PutUint64(scratch[:], uint64(x))
			h.Write(scratch[:])
		case Str:
			writeChunk([]byte(x))
		case Bytes:
			writeChunk(x)
		case Mapping:
			binary.BigEndian.PutUint32(scratch[:4], uint32(len(x)))
			h.Write(scratch[:4])
			for _, k := range sortedKeys(x) {
				binary.BigEndian.PutUint32(scratch[:4], uint32(k))
				h.Write(scratch[:4])
				writeChunk([]byte(x[k]))
			}
		}
	}
	var out [32]byte
	h.Sum(out[:0])
	return out
}

func (u *Union) typeName() string {
	if u.table == nil {
		return ""
	}
	return u.table.name
}
