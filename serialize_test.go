package unionwire

import (
	"context"
	"testing"

	"github.com/apache/thrift/lib/go/thrift"
)

func TestMarshalBinary_RoundTrip(t *testing.T) {
	for id, v := range samples {
		in := mustNewWith(t, id, v)
		b, err := in.MarshalBinary()
		if err != nil {
			t.Fatalf("%d marshal: %v", id, err)
		}
		out := New(testTable)
		if err := out.UnmarshalBinary(b); err != nil {
			t.Fatalf("%d unmarshal: %v", id, err)
		}
		if !out.Equal(in) {
			t.Fatalf("%d: got %v", id, out)
		}
	}
}

func TestMarshalBinary_Deterministic(t *testing.T) {
	a, _ := mustNewWith(t, 5, Mapping{3: "c", 1: "a", 2: "b"}).MarshalBinary()
	b, _ := mustNewWith(t, 5, Mapping{2: "b", 3: "c", 1: "a"}).MarshalBinary()
	if string(a) != string(b) {
		t.Fatalf("equal mappings must encode identically")
	}
}

func TestUnion_IsThriftStruct(t *testing.T) {
	var _ thrift.TStruct = (*Union)(nil)
	ctx := context.Background()
	p := newBinaryProto()
	in := mustNewWith(t, 3, Int32(12))
	if err := in.Write(ctx, p); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := New(testTable)
	if err := out.Read(ctx, p); err != nil {
		t.Fatalf("read: %v", err)
	}
	if !out.Equal(in) {
		t.Fatalf("got %v", out)
	}
}
