package unionwire

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"
	"strconv"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// The natural form of a union is a single-key object {fieldName: payload}; an
// empty union is {}. Bytes travel as standard base64 and mapping keys as
// decimal strings where the target format requires string keys.

// Natural returns the natural form with Go-native payloads (int16, int32,
// int64, string, []byte, map[int32]string).
func (u *Union) Natural() map[string]any {
	out := map[string]any{}
	d, ok := u.ActiveDescriptor()
	if !ok {
		return out
	}
	switch x := u.value.(type) {
	case Int16:
		out[d.Name] = int16(x)
	case Int32:
		out[d.Name] = int32(x)
	case Int64:
		out[d.Name] = int64(x)
	case Str:
		out[d.Name] = string(x)
	case Bytes:
		out[d.Name] = []byte(x)
	case Mapping:
		out[d.Name] = map[int32]string(x)
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (u *Union) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.Natural())
}

// UnmarshalJSON implements json.Unmarshaler. The union must be bound to a
// table. A JSON null leaves the union unchanged; a repeated key is a
// protocol_error rather than last-wins.
func (u *Union) UnmarshalJSON(data []byte) error {
	if u.table == nil {
		return errNoTable()
	}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	path := fieldPath(u.table.name, "")
	n, err := countJSONKeys(data)
	if err != nil {
		return errProtocol(path, "expected a JSON object", err)
	}
	if n > 1 {
		return errProtocol(path, "natural form holds "+strconv.Itoa(n)+" keys; a union holds at most one field", nil)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errProtocol(path, "expected a JSON object", err)
	}
	entries := make([]naturalEntry, 0, len(raw))
	for name, msg := range raw {
		entries = append(entries, naturalEntry{name: name, decode: func(dst any) error { return json.Unmarshal(msg, dst) }})
	}
	return u.decodeNatural(entries)
}

// countJSONKeys counts the top-level keys of a JSON object token by token, so
// a repeated key is counted twice instead of being folded by map decoding.
func countJSONKeys(data []byte) (int, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var stack []json.Delim
	n := 0
	expectKey := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return 0, err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				stack = append(stack, d)
			default:
				if len(stack) == 0 {
					return 0, errors.New("unbalanced delimiter")
				}
				stack = stack[:len(stack)-1]
			}
			// Back in the top-level object a key comes next.
			expectKey = len(stack) == 1 && stack[0] == '{'
			continue
		}
		if len(stack) == 1 && stack[0] == '{' {
			if expectKey {
				n++
			}
			expectKey = !expectKey
		}
	}
}

// MarshalYAML implements yaml.Marshaler.
func (u *Union) MarshalYAML() (any, error) {
	out := u.Natural()
	for k, v := range out {
		if b, ok := v.([]byte); ok {
			out[k] = base64.StdEncoding.EncodeToString(b)
		}
	}
	return out, nil
}

// UnmarshalYAML implements yaml.Unmarshaler. The union must be bound to a
// table. A null node leaves the union unchanged.
func (u *Union) UnmarshalYAML(node *yaml.Node) error {
	if u.table == nil {
		return errNoTable()
	}
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return errProtocol(fieldPath(u.table.name, ""), "expected a YAML mapping", nil)
	}
	entries := make([]naturalEntry, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		val := node.Content[i+1]
		entries = append(entries, naturalEntry{name: node.Content[i].Value, decode: func(dst any) error {
			b, ok := dst.(*[]byte)
			if !ok {
				return val.Decode(dst)
			}
			var s string
			if err := val.Decode(&s); err != nil {
				return err
			}
			decoded, err := base64.StdEncoding.DecodeString(s)
			*b = decoded
			return err
		}})
	}
	return u.decodeNatural(entries)
}

// naturalDecoder decodes one payload into dst (a pointer to a Go-native type).
type naturalDecoder func(dst any) error

type naturalEntry struct {
	name   string
	decode naturalDecoder
}

// decodeNatural resolves the single entry of a natural-form object and sets
// it. u is unchanged on error.
func (u *Union) decodeNatural(entries []naturalEntry) error {
	t := u.table
	if len(entries) > 1 {
		return errProtocol(fieldPath(t.name, ""), "natural form holds "+strconv.Itoa(len(entries))+" fields; a union holds at most one", nil)
	}
	scratch := Union{table: t}
	for _, e := range entries {
		d, ok := t.LookupByName(e.name)
		if !ok {
			return errUnknownFieldName(t.name, e.name)
		}
		v, err := decodeNaturalValue(d, e.decode)
		if err != nil {
			return errProtocol(fieldPath(t.name, d.Name), "payload does not decode as "+d.Kind.String(), err)
		}
		if err := scratch.setDescriptor(d, v); err != nil {
			return err
		}
	}
	u.commit(&scratch)
	return nil
}

func decodeNaturalValue(d FieldDescriptor, decode naturalDecoder) (Value, error) {
	switch d.Kind {
	case KindI16:
		var x int16
		err := decode(&x)
		return Int16(x), err
	case KindI32:
		var x int32
		err := decode(&x)
		return Int32(x), err
	case KindI64:
		var x int64
		err := decode(&x)
		return Int64(x), err
	case KindString:
		var x string
		err := decode(&x)
		return Str(x), err
	case KindBinary:
		x := []byte{}
		err := decode(&x)
		if x == nil {
			x = []byte{}
		}
		return Bytes(x), err
	case KindMap:
		x := map[int32]string{}
		err := decode(&x)
		if x == nil {
			x = map[int32]string{}
		}
		return Mapping(x), err
	}
	return nil, errProtocol("/", "unsupported field kind "+d.Kind.String(), nil)
}
