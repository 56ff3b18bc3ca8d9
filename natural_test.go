package unionwire

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestJSON_RoundTrip(t *testing.T) {
	for id, v := range samples {
		in := mustNewWith(t, id, v)
		b, err := in.MarshalJSON()
		if err != nil {
			t.Fatalf("%d marshal: %v", id, err)
		}
		out := New(testTable)
		if err := out.UnmarshalJSON(b); err != nil {
			t.Fatalf("%d unmarshal %s: %v", id, b, err)
		}
		if !out.Equal(in) {
			t.Fatalf("%d: got %v from %s", id, out, b)
		}
	}
}

func TestJSON_Shapes(t *testing.T) {
	cases := map[string]*Union{
		`{"AnID":42}`:                   mustNewWith(t, 1, Int64(42)),
		`{"bin_field_in_union":"AP8Q"}`: mustNewWith(t, 6, Bytes{0x00, 0xff, 0x10}),
		`{}`:                            New(testTable),
	}
	for want, u := range cases {
		b, err := u.MarshalJSON()
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(b) != want {
			t.Fatalf("got %s, want %s", b, want)
		}
	}
}

func TestJSON_Rejects(t *testing.T) {
	cases := map[string]string{
		`{"AnID":1,"aString":"x"}`: CodeProtocolError,
		`{"nope":1}`:               CodeUnknownField,
		`{"AnID":"forty-two"}`:     CodeProtocolError,
		`[1,2]`:                    CodeProtocolError,
	}
	for in, code := range cases {
		u := mustNewWith(t, 4, Int16(1))
		if err := u.UnmarshalJSON([]byte(in)); !HasCode(err, code) {
			t.Fatalf("%s: expected %s, got %v", in, code, err)
		}
		if !u.IsSet(4) {
			t.Fatalf("%s: failed decode changed the union", in)
		}
	}
	var unbound Union
	if err := unbound.UnmarshalJSON([]byte(`{}`)); !HasCode(err, CodeInvalidDescriptor) {
		t.Fatalf("expected invalid_descriptor, got %v", err)
	}
}

func TestJSON_DuplicateKeyRejected(t *testing.T) {
	for _, in := range []string{`{"AnID":1,"AnID":2}`, `{"AnID":1,"AnID":2,"AnID":3}`} {
		u := mustNewWith(t, 4, Int16(7))
		err := u.UnmarshalJSON([]byte(in))
		if !HasCode(err, CodeProtocolError) {
			t.Fatalf("%s: expected protocol_error, got %v", in, err)
		}
		if v, _ := GetAs[Int16](u, 4); v != 7 {
			t.Fatalf("%s: failed decode changed the union to %v", in, u)
		}
	}
	// Repeated keys inside a payload are not the union's concern.
	u := New(testTable)
	if err := u.UnmarshalJSON([]byte(`{"Requests":{"1":"a"}}`)); err != nil {
		t.Fatalf("nested object: %v", err)
	}
}

func TestNatural_NullLeavesUnionUnchanged(t *testing.T) {
	u := mustNewWith(t, 1, Int64(42))
	if err := u.UnmarshalJSON([]byte(" null ")); err != nil {
		t.Fatalf("json null: %v", err)
	}
	if err := u.UnmarshalYAML(&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "~"}); err != nil {
		t.Fatalf("yaml null: %v", err)
	}
	if err := u.UnmarshalCBOR([]byte{0xf6}); err != nil {
		t.Fatalf("cbor null: %v", err)
	}
	if v, _ := GetAs[Int64](u, 1); v != 42 {
		t.Fatalf("null changed the union to %v", u)
	}
}

func TestYAML_RoundTrip(t *testing.T) {
	for id, v := range samples {
		in := mustNewWith(t, id, v)
		b, err := yaml.Marshal(in)
		if err != nil {
			t.Fatalf("%d marshal: %v", id, err)
		}
		out := New(testTable)
		if err := yaml.Unmarshal(b, out); err != nil {
			t.Fatalf("%d unmarshal:\n%s\n%v", id, b, err)
		}
		if !out.Equal(in) {
			t.Fatalf("%d: got %v from\n%s", id, out, b)
		}
	}
}

func TestYAML_MappingKeysStayIntegers(t *testing.T) {
	b, err := yaml.Marshal(mustNewWith(t, 5, Mapping{1: "a"}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := strings.TrimSpace(string(b)); got != "Requests:\n    1: a" {
		t.Fatalf("yaml = %q", got)
	}
}

func TestCBOR_RoundTripAndDeterminism(t *testing.T) {
	for id, v := range samples {
		in := mustNewWith(t, id, v)
		b1, err := in.MarshalCBOR()
		if err != nil {
			t.Fatalf("%d marshal: %v", id, err)
		}
		b2, _ := in.Clone().MarshalCBOR()
		if string(b1) != string(b2) {
			t.Fatalf("%d: encoding not deterministic", id)
		}
		out := New(testTable)
		if err := out.UnmarshalCBOR(b1); err != nil {
			t.Fatalf("%d unmarshal: %v", id, err)
		}
		if !out.Equal(in) {
			t.Fatalf("%d: got %v", id, out)
		}
	}
}

func TestCBOR_Diagnose(t *testing.T) {
	d, err := mustNewWith(t, 1, Int64(42)).DiagnoseCBOR()
	if err != nil {
		t.Fatalf("diagnose: %v", err)
	}
	if d != `{"AnID": 42}` {
		t.Fatalf("diag = %s", d)
	}
}
