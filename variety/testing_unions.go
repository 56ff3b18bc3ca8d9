// Package variety holds the TestingUnions union, the six-variant fixture the
// wire schemes are exercised against.
package variety

import (
	"context"

	"github.com/apache/thrift/lib/go/thrift"
	"gopkg.in/yaml.v3"

	"github.com/reoring/unionwire"
)

// TestingUnionsField identifies a declared field of TestingUnions.
type TestingUnionsField int16

const (
	FieldAnID            TestingUnionsField = 1
	FieldAString         TestingUnionsField = 2
	FieldSomeotherthing  TestingUnionsField = 3
	FieldAnInt16         TestingUnionsField = 4
	FieldRequests        TestingUnionsField = 5
	FieldBinFieldInUnion TestingUnionsField = 6
)

// TestingUnionsTable is the descriptor table of TestingUnions.
var TestingUnionsTable = unionwire.MustTable("TestingUnions",
	unionwire.FieldDescriptor{ID: 1, Name: "AnID", Kind: unionwire.KindI64, Typedef: "id"},
	unionwire.FieldDescriptor{ID: 2, Name: "aString", Kind: unionwire.KindString},
	unionwire.FieldDescriptor{ID: 3, Name: "someotherthing", Kind: unionwire.KindI32, Typedef: "int"},
	unionwire.FieldDescriptor{ID: 4, Name: "AnInt16", Kind: unionwire.KindI16},
	unionwire.FieldDescriptor{ID: 5, Name: "Requests", Kind: unionwire.KindMap, Key: unionwire.KindI32, Elem: unionwire.KindString, Typedef: "request"},
	unionwire.FieldDescriptor{ID: 6, Name: "bin_field_in_union", Kind: unionwire.KindBinary},
)

// FieldForID returns the field declared under id.
func FieldForID(id int16) (TestingUnionsField, bool) {
	if _, ok := TestingUnionsTable.LookupByID(id); !ok {
		return 0, false
	}
	return TestingUnionsField(id), true
}

// FieldForName returns the field declared under name.
func FieldForName(name string) (TestingUnionsField, bool) {
	d, ok := TestingUnionsTable.LookupByName(name)
	if !ok {
		return 0, false
	}
	return TestingUnionsField(d.ID), true
}

// ID returns the wire id of f.
func (f TestingUnionsField) ID() int16 { return int16(f) }

func (f TestingUnionsField) String() string {
	if d, ok := TestingUnionsTable.LookupByID(int16(f)); ok {
		return d.Name
	}
	return "unknown"
}

// TestingUnions holds at most one of its six fields. The zero value is an
// empty union ready to use.
type TestingUnions struct {
	u unionwire.Union
}

// NewTestingUnions returns an empty TestingUnions.
func NewTestingUnions() *TestingUnions {
	return &TestingUnions{u: unionwire.Of(TestingUnionsTable)}
}

// NewTestingUnionsWith returns a TestingUnions with field f set to v.
func NewTestingUnionsWith(f TestingUnionsField, v unionwire.Value) (*TestingUnions, error) {
	p := NewTestingUnions()
	if err := p.SetField(f, v); err != nil {
		return nil, err
	}
	return p, nil
}

// AnID returns a union with AnID set.
func AnID(v int64) *TestingUnions {
	p := NewTestingUnions()
	p.SetAnID(v)
	return p
}

// AString returns a union with aString set.
func AString(v string) *TestingUnions {
	p := NewTestingUnions()
	p.SetAString(v)
	return p
}

// Someotherthing returns a union with someotherthing set.
func Someotherthing(v int32) *TestingUnions {
	p := NewTestingUnions()
	p.SetSomeotherthing(v)
	return p
}

// AnInt16 returns a union with AnInt16 set.
func AnInt16(v int16) *TestingUnions {
	p := NewTestingUnions()
	p.SetAnInt16(v)
	return p
}

// Requests returns a union with Requests set. A nil map fails with
// type_mismatch.
func Requests(v map[int32]string) (*TestingUnions, error) {
	p := NewTestingUnions()
	if err := p.SetRequests(v); err != nil {
		return nil, err
	}
	return p, nil
}

// BinFieldInUnion returns a union with bin_field_in_union set. A nil slice
// fails with type_mismatch.
func BinFieldInUnion(v []byte) (*TestingUnions, error) {
	p := NewTestingUnions()
	if err := p.SetBinFieldInUnion(v); err != nil {
		return nil, err
	}
	return p, nil
}

// Union exposes the underlying generic union for mutation. On a zero value it
// binds the table first, so it must not race with other calls on p.
func (p *TestingUnions) Union() *unionwire.Union {
	if p.u.Table() == nil {
		p.u = unionwire.Of(TestingUnionsTable)
	}
	return &p.u
}

// view returns a table-bound union for reading without storing anything in
// p, so concurrent readers of a zero value do not race.
func (p *TestingUnions) view() *unionwire.Union {
	if p.u.Table() == nil {
		return unionwire.New(TestingUnionsTable)
	}
	return &p.u
}

// SetField sets field f to v.
func (p *TestingUnions) SetField(f TestingUnionsField, v unionwire.Value) error {
	return p.Union().Set(int16(f), v)
}

// GetField returns the payload of field f.
func (p *TestingUnions) GetField(f TestingUnionsField) (unionwire.Value, error) {
	return p.view().Get(int16(f))
}

// ActiveField returns the active field.
func (p *TestingUnions) ActiveField() (TestingUnionsField, bool) {
	id, ok := p.u.ActiveField()
	return TestingUnionsField(id), ok
}

// IsSet reports whether any field is active.
func (p *TestingUnions) IsSet() bool { return !p.u.IsEmpty() }

// Clear empties the union.
func (p *TestingUnions) Clear() { p.u.Clear() }

func (p *TestingUnions) SetAnID(v int64) { p.mustSet(FieldAnID, unionwire.Int64(v)) }

func (p *TestingUnions) GetAnID() (int64, error) {
	v, err := unionwire.GetAs[unionwire.Int64](p.view(), int16(FieldAnID))
	return int64(v), err
}

func (p *TestingUnions) IsSetAnID() bool { return p.u.IsSet(int16(FieldAnID)) }

func (p *TestingUnions) SetAString(v string) { p.mustSet(FieldAString, unionwire.Str(v)) }

func (p *TestingUnions) GetAString() (string, error) {
	v, err := unionwire.GetAs[unionwire.Str](p.view(), int16(FieldAString))
	return string(v), err
}

func (p *TestingUnions) IsSetAString() bool { return p.u.IsSet(int16(FieldAString)) }

func (p *TestingUnions) SetSomeotherthing(v int32) {
	p.mustSet(FieldSomeotherthing, unionwire.Int32(v))
}

func (p *TestingUnions) GetSomeotherthing() (int32, error) {
	v, err := unionwire.GetAs[unionwire.Int32](p.view(), int16(FieldSomeotherthing))
	return int32(v), err
}

func (p *TestingUnions) IsSetSomeotherthing() bool { return p.u.IsSet(int16(FieldSomeotherthing)) }

func (p *TestingUnions) SetAnInt16(v int16) { p.mustSet(FieldAnInt16, unionwire.Int16(v)) }

func (p *TestingUnions) GetAnInt16() (int16, error) {
	v, err := unionwire.GetAs[unionwire.Int16](p.view(), int16(FieldAnInt16))
	return int16(v), err
}

func (p *TestingUnions) IsSetAnInt16() bool { return p.u.IsSet(int16(FieldAnInt16)) }

// SetRequests stores v without copying it.
func (p *TestingUnions) SetRequests(v map[int32]string) error {
	return p.Union().Set(int16(FieldRequests), unionwire.Mapping(v))
}

func (p *TestingUnions) GetRequests() (map[int32]string, error) {
	v, err := unionwire.GetAs[unionwire.Mapping](p.view(), int16(FieldRequests))
	return map[int32]string(v), err
}

func (p *TestingUnions) IsSetRequests() bool { return p.u.IsSet(int16(FieldRequests)) }

// SetBinFieldInUnion stores v without copying it.
func (p *TestingUnions) SetBinFieldInUnion(v []byte) error {
	return p.Union().Set(int16(FieldBinFieldInUnion), unionwire.Bytes(v))
}

func (p *TestingUnions) GetBinFieldInUnion() ([]byte, error) {
	v, err := unionwire.GetAs[unionwire.Bytes](p.view(), int16(FieldBinFieldInUnion))
	return []byte(v), err
}

func (p *TestingUnions) IsSetBinFieldInUnion() bool { return p.u.IsSet(int16(FieldBinFieldInUnion)) }

// mustSet is used by the scalar setters, whose payload always matches the
// declared kind.
func (p *TestingUnions) mustSet(f TestingUnionsField, v unionwire.Value) {
	if err := p.Union().Set(int16(f), v); err != nil {
		panic(err)
	}
}

// DeepCopy returns a copy that shares no payload storage with p.
func (p *TestingUnions) DeepCopy() *TestingUnions {
	return &TestingUnions{u: *p.view().Clone()}
}

// Equals reports whether both unions are set to the same field and payload.
func (p *TestingUnions) Equals(o *TestingUnions) bool {
	if p == nil || o == nil {
		return false
	}
	return p.view().Equal(o.view())
}

// CompareTo orders p against o by active field id, then payload. A nil
// union sorts first.
func (p *TestingUnions) CompareTo(o *TestingUnions) (int, error) {
	var pu, ou *unionwire.Union
	if p != nil {
		pu = p.view()
	}
	if o != nil {
		ou = o.view()
	}
	return pu.Compare(ou)
}

// HashCode returns a hash consistent with Equals.
func (p *TestingUnions) HashCode() uint64 { return p.view().Hash() }

// Write encodes p with the standard scheme; TestingUnions is a thrift.TStruct.
func (p *TestingUnions) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return unionwire.Standard().Write(ctx, oprot, p.view())
}

// Read decodes p with the standard scheme.
func (p *TestingUnions) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return unionwire.Standard().Read(ctx, iprot, p.Union())
}

// WriteTuple encodes p with the tuple scheme: an i16 id then the raw value.
func (p *TestingUnions) WriteTuple(ctx context.Context, oprot thrift.TProtocol) error {
	return unionwire.Tuple().Write(ctx, oprot, p.view())
}

// ReadTuple decodes p with the tuple scheme.
func (p *TestingUnions) ReadTuple(ctx context.Context, iprot thrift.TProtocol) error {
	return unionwire.Tuple().Read(ctx, iprot, p.Union())
}

func (p *TestingUnions) String() string {
	if p == nil {
		return "<nil>"
	}
	return p.view().String()
}

func (p *TestingUnions) MarshalJSON() ([]byte, error)     { return p.view().MarshalJSON() }
func (p *TestingUnions) UnmarshalJSON(data []byte) error  { return p.Union().UnmarshalJSON(data) }
func (p *TestingUnions) MarshalYAML() (any, error)        { return p.view().MarshalYAML() }
func (p *TestingUnions) UnmarshalYAML(n *yaml.Node) error { return p.Union().UnmarshalYAML(n) }
func (p *TestingUnions) MarshalCBOR() ([]byte, error)     { return p.view().MarshalCBOR() }
func (p *TestingUnions) UnmarshalCBOR(data []byte) error  { return p.Union().UnmarshalCBOR(data) }
func (p *TestingUnions) MarshalBinary() ([]byte, error)   { return p.view().MarshalBinary() }
func (p *TestingUnions) UnmarshalBinary(data []byte) error {
	return p.Union().UnmarshalBinary(data)
}
