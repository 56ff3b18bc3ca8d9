package unionwire

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/apache/thrift/lib/go/thrift"
)

// testTable mirrors the TestingUnions fixture.
var testTable = MustTable("TestingUnions",
	FieldDescriptor{ID: 1, Name: "AnID", Kind: KindI64, Typedef: "id"},
	FieldDescriptor{ID: 2, Name: "aString", Kind: KindString},
	FieldDescriptor{ID: 3, Name: "someotherthing", Kind: KindI32, Typedef: "int"},
	FieldDescriptor{ID: 4, Name: "AnInt16", Kind: KindI16},
	FieldDescriptor{ID: 5, Name: "Requests", Kind: KindMap, Key: KindI32, Elem: KindString, Typedef: "request"},
	FieldDescriptor{ID: 6, Name: "bin_field_in_union", Kind: KindBinary},
)

// samples holds one representative payload per declared field.
var samples = map[int16]Value{
	1: Int64(42),
	2: Str("hello"),
	3: Int32(-7),
	4: Int16(3),
	5: Mapping{1: "a", 2: "b"},
	6: Bytes{0x00, 0xff, 0x10},
}

type protoFactory struct {
	name string
	new  func(thrift.TTransport) thrift.TProtocol
}

var protocols = []protoFactory{
	{"binary", func(t thrift.TTransport) thrift.TProtocol {
		return thrift.NewTBinaryProtocolConf(t, &thrift.TConfiguration{})
	}},
	{"compact", func(t thrift.TTransport) thrift.TProtocol {
		return thrift.NewTCompactProtocolConf(t, &thrift.TConfiguration{})
	}},
	{"json", func(t thrift.TTransport) thrift.TProtocol { return thrift.NewTJSONProtocol(t) }},
}

func newBinaryProto() thrift.TProtocol {
	return thrift.NewTBinaryProtocolConf(thrift.NewTMemoryBuffer(), &thrift.TConfiguration{})
}

func mustNewWith(t *testing.T, id int16, v Value) *Union {
	t.Helper()
	u, err := NewWith(testTable, id, v)
	if err != nil {
		t.Fatalf("NewWith(%d): %v", id, err)
	}
	return u
}

// frameWriter hand-assembles standard-scheme streams, including ones this
// package would never produce.
type frameWriter struct {
	t   *testing.T
	ctx context.Context
	p   thrift.TProtocol
}

func newFrameWriter(t *testing.T) *frameWriter {
	w := &frameWriter{t: t, ctx: context.Background(), p: newBinaryProto()}
	w.check(w.p.WriteStructBegin(w.ctx, "TestingUnions"))
	return w
}

func (w *frameWriter) check(err error) {
	w.t.Helper()
	if err != nil {
		w.t.Fatalf("frame write: %v", err)
	}
}

func (w *frameWriter) field(id int16, typ thrift.TType, write func(context.Context, thrift.TProtocol) error) *frameWriter {
	w.check(w.p.WriteFieldBegin(w.ctx, "", typ, id))
	w.check(write(w.ctx, w.p))
	w.check(w.p.WriteFieldEnd(w.ctx))
	return w
}

func (w *frameWriter) i64(id int16, v int64) *frameWriter {
	return w.field(id, thrift.I64, func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI64(ctx, v) })
}

func (w *frameWriter) str(id int16, v string) *frameWriter {
	return w.field(id, thrift.STRING, func(ctx context.Context, p thrift.TProtocol) error { return p.WriteString(ctx, v) })
}

// done terminates the struct and returns the protocol positioned for reading.
func (w *frameWriter) done() thrift.TProtocol {
	w.check(w.p.WriteFieldStop(w.ctx))
	w.check(w.p.WriteStructEnd(w.ctx))
	w.check(w.p.Flush(w.ctx))
	return w.p
}

var errRecorded = errors.New("recorded failure")

// recordingWriter is a ProtocolWriter that logs every call in order. A call
// whose log line starts with failOn returns errRecorded.
type recordingWriter struct {
	calls  []string
	failOn string
}

func (r *recordingWriter) rec(format string, args ...any) error {
	line := fmt.Sprintf(format, args...)
	r.calls = append(r.calls, line)
	if r.failOn != "" && strings.HasPrefix(line, r.failOn) {
		return errRecorded
	}
	return nil
}

func (r *recordingWriter) WriteStructBegin(_ context.Context, name string) error {
	return r.rec("StructBegin(%s)", name)
}
func (r *recordingWriter) WriteStructEnd(context.Context) error { return r.rec("StructEnd") }
func (r *recordingWriter) WriteFieldBegin(_ context.Context, name string, typeID WireType, id int16) error {
	return r.rec("FieldBegin(%s,%v,%d)", name, typeID, id)
}
func (r *recordingWriter) WriteFieldEnd(context.Context) error  { return r.rec("FieldEnd") }
func (r *recordingWriter) WriteFieldStop(context.Context) error { return r.rec("FieldStop") }
func (r *recordingWriter) WriteMapBegin(_ context.Context, k, v WireType, size int) error {
	return r.rec("MapBegin(%v,%v,%d)", k, v, size)
}
func (r *recordingWriter) WriteMapEnd(context.Context) error { return r.rec("MapEnd") }
func (r *recordingWriter) WriteI16(_ context.Context, v int16) error {
	return r.rec("I16(%d)", v)
}
func (r *recordingWriter) WriteI32(_ context.Context, v int32) error {
	return r.rec("I32(%d)", v)
}
func (r *recordingWriter) WriteI64(_ context.Context, v int64) error {
	return r.rec("I64(%d)", v)
}
func (r *recordingWriter) WriteString(_ context.Context, v string) error {
	return r.rec("String(%q)", v)
}
func (r *recordingWriter) WriteBinary(_ context.Context, v []byte) error {
	return r.rec("Binary(%x)", v)
}
func (r *recordingWriter) Flush(context.Context) error { return r.rec("Flush") }

func (r *recordingWriter) log() string { return strings.Join(r.calls, " ") }
