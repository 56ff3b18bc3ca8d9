package variety

import (
	"bytes"
	"context"
	"maps"
	"sync"
	"testing"

	"github.com/apache/thrift/lib/go/thrift"

	"github.com/reoring/unionwire"
)

func newBinary() (*thrift.TMemoryBuffer, thrift.TProtocol) {
	buf := thrift.NewTMemoryBuffer()
	return buf, thrift.NewTBinaryProtocolConf(buf, &thrift.TConfiguration{})
}

func TestTestingUnions_AnID_TupleRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, p := newBinary()
	if err := AnID(42).WriteTuple(ctx, p); err != nil {
		t.Fatalf("write: %v", err)
	}
	got := NewTestingUnions()
	if err := got.ReadTuple(ctx, p); err != nil {
		t.Fatalf("read: %v", err)
	}
	if !got.IsSetAnID() {
		t.Fatalf("AnID not set: %v", got)
	}
	if v, err := got.GetAnID(); err != nil || v != 42 {
		t.Fatalf("GetAnID = %d, %v", v, err)
	}
}

func TestTestingUnions_AnID_StandardFrame(t *testing.T) {
	ctx := context.Background()
	buf, p := newBinary()
	in := AnID(42)
	if err := in.Write(ctx, p); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := p.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
	encoded := bytes.Clone(buf.Bytes())

	// Inspect the frames directly.
	frames := thrift.NewTBinaryProtocolConf(thrift.NewStreamTransportR(bytes.NewReader(encoded)), &thrift.TConfiguration{})
	if _, err := frames.ReadStructBegin(ctx); err != nil {
		t.Fatalf("struct begin: %v", err)
	}
	_, typ, id, err := frames.ReadFieldBegin(ctx)
	if err != nil {
		t.Fatalf("field begin: %v", err)
	}
	if typ != thrift.I64 || id != 1 {
		t.Fatalf("field header = (%v, %d), want (I64, 1)", typ, id)
	}
	if v, err := frames.ReadI64(ctx); err != nil || v != 42 {
		t.Fatalf("value = %d, %v", v, err)
	}
	if err := frames.ReadFieldEnd(ctx); err != nil {
		t.Fatalf("field end: %v", err)
	}
	if _, typ, _, err := frames.ReadFieldBegin(ctx); err != nil || typ != thrift.STOP {
		t.Fatalf("expected stop, got %v, %v", typ, err)
	}

	out := &TestingUnions{}
	if err := out.Read(ctx, p); err != nil {
		t.Fatalf("read: %v", err)
	}
	if !out.Equals(in) {
		t.Fatalf("round trip mismatch: %v != %v", out, in)
	}
}

func TestTestingUnions_Requests_BothSchemes(t *testing.T) {
	ctx := context.Background()
	in, err := Requests(map[int32]string{2: "b", 1: "a"})
	if err != nil {
		t.Fatalf("Requests: %v", err)
	}
	for _, tuple := range []bool{false, true} {
		_, p := newBinary()
		out := NewTestingUnions()
		if tuple {
			err = in.WriteTuple(ctx, p)
			if err == nil {
				err = out.ReadTuple(ctx, p)
			}
		} else {
			err = in.Write(ctx, p)
			if err == nil {
				err = out.Read(ctx, p)
			}
		}
		if err != nil {
			t.Fatalf("tuple=%v: %v", tuple, err)
		}
		got, err := out.GetRequests()
		if err != nil {
			t.Fatalf("tuple=%v: %v", tuple, err)
		}
		if !maps.Equal(got, map[int32]string{1: "a", 2: "b"}) {
			t.Fatalf("tuple=%v: got %v", tuple, got)
		}
		if !out.Equals(in) || out.HashCode() != in.HashCode() {
			t.Fatalf("tuple=%v: equality/hash mismatch", tuple)
		}
	}
}

func TestTestingUnions_LastWriteWins(t *testing.T) {
	p := AnID(1)
	p.SetAString("x")
	if p.IsSetAnID() {
		t.Fatalf("AnID still set")
	}
	if !p.IsSetAString() {
		t.Fatalf("aString not set")
	}
	_, err := p.GetAnID()
	if !unionwire.HasCode(err, unionwire.CodeWrongActiveField) {
		t.Fatalf("expected wrong_active_field, got %v", err)
	}
	if f, ok := p.ActiveField(); !ok || f != FieldAString {
		t.Fatalf("active = %v, %v", f, ok)
	}
}

func TestTestingUnions_NilPayloads(t *testing.T) {
	if _, err := Requests(nil); !unionwire.HasCode(err, unionwire.CodeTypeMismatch) {
		t.Fatalf("expected type_mismatch, got %v", err)
	}
	p := AnInt16(3)
	if err := p.SetBinFieldInUnion(nil); !unionwire.HasCode(err, unionwire.CodeTypeMismatch) {
		t.Fatalf("expected type_mismatch, got %v", err)
	}
	if !p.IsSetAnInt16() {
		t.Fatalf("failed set must leave AnInt16 active")
	}
	if p, err := BinFieldInUnion([]byte{}); err != nil || !p.IsSetBinFieldInUnion() {
		t.Fatalf("empty binary must be accepted: %v", err)
	}
}

func TestTestingUnions_ZeroValue(t *testing.T) {
	var p TestingUnions
	if p.IsSet() {
		t.Fatalf("zero value must be empty")
	}
	p.SetSomeotherthing(7)
	if v, err := p.GetSomeotherthing(); err != nil || v != 7 {
		t.Fatalf("GetSomeotherthing = %d, %v", v, err)
	}
	var q TestingUnions
	_, err := q.MarshalBinary()
	if !unionwire.HasCode(err, unionwire.CodeNoActiveField) {
		t.Fatalf("expected no_active_field, got %v", err)
	}
}

func TestTestingUnions_DeepCopy(t *testing.T) {
	p, _ := BinFieldInUnion([]byte("abc"))
	c := p.DeepCopy()
	b, _ := c.GetBinFieldInUnion()
	b[0] = 'X'
	orig, _ := p.GetBinFieldInUnion()
	if !bytes.Equal(orig, []byte("abc")) {
		t.Fatalf("copy aliases payload: %q", orig)
	}
}

func TestTestingUnions_CompareTo(t *testing.T) {
	c, err := AnID(5).CompareTo(AString("a"))
	if err != nil || c >= 0 {
		t.Fatalf("AnID vs aString = %d, %v", c, err)
	}
	c, err = AnID(5).CompareTo(AnID(9))
	if err != nil || c >= 0 {
		t.Fatalf("5 vs 9 = %d, %v", c, err)
	}
	r, _ := Requests(map[int32]string{1: "a"})
	if _, err := r.CompareTo(r.DeepCopy()); !unionwire.HasCode(err, unionwire.CodeComparisonUnsupported) {
		t.Fatalf("expected comparison_unsupported, got %v", err)
	}
}

func TestTestingUnions_NaturalForms(t *testing.T) {
	in, _ := Requests(map[int32]string{1: "a"})
	js, err := in.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(js) != `{"Requests":{"1":"a"}}` {
		t.Fatalf("json = %s", js)
	}
	out := NewTestingUnions()
	if err := out.UnmarshalJSON(js); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !out.Equals(in) {
		t.Fatalf("json round trip: %v", out)
	}
	bin, err := in.MarshalBinary()
	if err != nil {
		t.Fatalf("binary: %v", err)
	}
	var back TestingUnions
	if err := back.UnmarshalBinary(bin); err != nil || !back.Equals(in) {
		t.Fatalf("binary round trip: %v, %v", &back, err)
	}
}

func TestFieldForID(t *testing.T) {
	f, ok := FieldForID(6)
	if !ok || f.String() != "bin_field_in_union" {
		t.Fatalf("FieldForID(6) = %v, %v", f, ok)
	}
	if _, ok := FieldForID(999); ok {
		t.Fatalf("FieldForID(999) must fail")
	}
	if f, ok := FieldForName("someotherthing"); !ok || f != FieldSomeotherthing {
		t.Fatalf("FieldForName = %v, %v", f, ok)
	}
}

// Run with -race: reads of a zero value must not bind the table in place.
func TestTestingUnions_ZeroValueConcurrentReads(t *testing.T) {
	var p TestingUnions
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = p.HashCode()
			if _, err := p.GetAnID(); !unionwire.HasCode(err, unionwire.CodeWrongActiveField) {
				t.Errorf("expected wrong_active_field, got %v", err)
			}
			_ = p.Equals(&p)
			_, _ = p.CompareTo(&p)
			_ = p.String()
			_, _ = p.MarshalJSON()
			_ = p.DeepCopy()
		}()
	}
	wg.Wait()
	if p.u.Table() != nil {
		t.Fatalf("read-only calls bound the table in place")
	}
	if p.String() != "TestingUnions{}" {
		t.Fatalf("String() = %s", p.String())
	}
}

func TestTestingUnions_CompareToNil(t *testing.T) {
	var none *TestingUnions
	if c, err := AnID(1).CompareTo(none); err != nil || c != 1 {
		t.Fatalf("set vs nil = %d, %v", c, err)
	}
	if c, err := none.CompareTo(AnID(1)); err != nil || c != -1 {
		t.Fatalf("nil vs set = %d, %v", c, err)
	}
	if AnID(1).Equals(none) {
		t.Fatalf("nil is never equal")
	}
}
