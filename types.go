package unionwire

import "github.com/apache/thrift/lib/go/thrift"

// WireType is the on-the-wire shape of an encoded value. It is the thrift
// TType so that any thrift protocol can be driven directly.
type WireType = thrift.TType

const (
	TypeStop   WireType = thrift.STOP
	TypeI16    WireType = thrift.I16
	TypeI32    WireType = thrift.I32
	TypeI64    WireType = thrift.I64
	TypeString WireType = thrift.STRING // Also carries binary payloads.
	TypeMap    WireType = thrift.MAP
)

// Kind is the in-memory shape of a field payload. Several kinds may share a
// WireType (string and binary both travel as TypeString).
type Kind int

const (
	KindInvalid Kind = iota
	KindI16
	KindI32
	KindI64
	KindString
	KindBinary
	KindMap
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindI16:     "i16",
	KindI32:     "i32",
	KindI64:     "i64",
	KindString:  "string",
	KindBinary:  "binary",
	KindMap:     "map",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}

// WireType returns the wire type used to transmit a payload of kind k.
func (k Kind) WireType() WireType {
	switch k {
	case KindI16:
		return TypeI16
	case KindI32:
		return TypeI32
	case KindI64:
		return TypeI64
	case KindString, KindBinary:
		return TypeString
	case KindMap:
		return TypeMap
	default:
		return thrift.VOID
	}
}

// ParseKind resolves a kind from its schema name (i16, i32, i64, string,
// binary, map).
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if k != int(KindInvalid) && n == name {
			return Kind(k), true
		}
	}
	return KindInvalid, false
}

// Requirement mirrors the IDL requiredness of a field.
type Requirement int

const (
	RequirementDefault  Requirement = iota // Neither required nor optional in the IDL.
	RequirementOptional                    // Declared optional.
	RequirementRequired                    // Declared required.
)

func (r Requirement) String() string {
	switch r {
	case RequirementOptional:
		return "optional"
	case RequirementRequired:
		return "required"
	default:
		return "default"
	}
}

// Limits bounds what a decoder accepts from the wire. A zero field disables
// that check.
type Limits struct {
	MaxMapSize     int // Maximum declared element count of a map header.
	MaxStringBytes int // Maximum length of a string or binary value, checked once the value is read.
}

// DefaultLimits is applied by schemes constructed without explicit limits.
var DefaultLimits = Limits{
	MaxMapSize:     1 << 20,
	MaxStringBytes: 16 << 20,
}

// CodecOpt bundles scheme options.
type CodecOpt struct {
	Limits Limits
	// NoLimits disables enforcement entirely; Limits is ignored.
	NoLimits bool
}

func resolveLimits(opt []CodecOpt) Limits {
	if len(opt) == 0 {
		return DefaultLimits
	}
	o := opt[0]
	if o.NoLimits {
		return Limits{}
	}
	if o.Limits == (Limits{}) {
		return DefaultLimits
	}
	return o.Limits
}
