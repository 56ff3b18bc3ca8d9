package unionwire

import (
	"context"
	"strconv"
)

// mapPreallocCap caps the storage reserved from a transmitted map size; the
// size is only a hint.
const mapPreallocCap = 64

// writeValue emits v using the primitive or container writer matching d.
func writeValue(ctx context.Context, w ProtocolWriter, t *Table, d FieldDescriptor, v Value) error {
	switch x := v.(type) {
	case Int16:
		return w.WriteI16(ctx, int16(x))
	case Int32:
		return w.WriteI32(ctx, int32(x))
	case Int64:
		return w.WriteI64(ctx, int64(x))
	case Str:
		return w.WriteString(ctx, string(x))
	case Bytes:
		return w.WriteBinary(ctx, x)
	case Mapping:
		return writeMapping(ctx, w, d, x)
	}
	return errTypeMismatch(t, d, v)
}

// writeMapping emits pairs in ascending key order so equal mappings always
// produce identical bytes.
func writeMapping(ctx context.Context, w ProtocolWriter, d FieldDescriptor, m Mapping) error {
	if err := w.WriteMapBegin(ctx, d.KeyType(), d.ValueType(), len(m)); err != nil {
		return err
	}
	for _, k := range sortedKeys(m) {
		if err := w.WriteI32(ctx, k); err != nil {
			return err
		}
		if err := w.WriteString(ctx, m[k]); err != nil {
			return err
		}
	}
	return w.WriteMapEnd(ctx)
}

// readValue reads a payload of d's declared shape. skipped is true when the
// value was consumed without being decoded (only possible when tolerant is
// set and a map header disagrees with the declaration).
func readValue(ctx context.Context, r ProtocolReader, path string, d FieldDescriptor, tolerant bool) (v Value, skipped bool, err error) {
	switch d.Kind {
	case KindI16:
		x, err := r.ReadI16(ctx)
		return Int16(x), false, err
	case KindI32:
		x, err := r.ReadI32(ctx)
		return Int32(x), false, err
	case KindI64:
		x, err := r.ReadI64(ctx)
		return Int64(x), false, err
	case KindString:
		x, err := r.ReadString(ctx)
		return Str(x), false, err
	case KindBinary:
		x, err := r.ReadBinary(ctx)
		if err == nil && x == nil {
			x = []byte{}
		}
		return Bytes(x), false, err
	case KindMap:
		return readMapping(ctx, r, path, d, tolerant)
	}
	return nil, false, errProtocol(path, "unsupported field kind "+d.Kind.String(), nil)
}

func readMapping(ctx context.Context, r ProtocolReader, path string, d FieldDescriptor, tolerant bool) (Value, bool, error) {
	kt, vt, size, err := r.ReadMapBegin(ctx)
	if err != nil {
		return nil, false, err
	}
	if size < 0 {
		return nil, false, errProtocol(path, "negative map size "+strconv.Itoa(size), nil)
	}
	// Empty maps may carry no element types (compact protocol), so only
	// non-empty headers are checked.
	if size > 0 && (kt != d.KeyType() || vt != d.ValueType()) {
		if !tolerant {
			return nil, false, errProtocol(path, "map element types "+kt.String()+","+vt.String()+" do not match declaration", nil)
		}
		for i := 0; i < size; i++ {
			if err := r.Skip(ctx, kt); err != nil {
				return nil, false, err
			}
			if err := r.Skip(ctx, vt); err != nil {
				return nil, false, err
			}
		}
		return nil, true, r.ReadMapEnd(ctx)
	}
	m := make(Mapping, min(size, mapPreallocCap))
	for i := 0; i < size; i++ {
		k, err := r.ReadI32(ctx)
		if err != nil {
			return nil, false, err
		}
		s, err := r.ReadString(ctx)
		if err != nil {
			return nil, false, err
		}
		m[k] = s
	}
	if len(m) != size {
		return nil, false, errProtocol(path, "map declares "+strconv.Itoa(size)+" entries but holds "+strconv.Itoa(len(m))+" distinct keys", nil)
	}
	if err := r.ReadMapEnd(ctx); err != nil {
		return nil, false, err
	}
	return m, false, nil
}
