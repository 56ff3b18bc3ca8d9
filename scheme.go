package unionwire

import (
	"context"
	"errors"
)

// Scheme moves a Union to and from a protocol. The two implementations differ
// only in framing: StandardScheme is self-describing, TupleScheme assumes both
// ends share the schema.
type Scheme interface {
	Name() string
	Write(ctx context.Context, w ProtocolWriter, u *Union) error
	Read(ctx context.Context, r ProtocolReader, u *Union) error
}

// Scheme names accepted by SchemeByName.
const (
	SchemeStandard = "standard"
	SchemeTuple    = "tuple"
)

// SchemeByName returns a scheme with default limits.
func SchemeByName(name string, opt ...CodecOpt) (Scheme, bool) {
	switch name {
	case SchemeStandard:
		return Standard(opt...), true
	case SchemeTuple:
		return Tuple(opt...), true
	}
	return nil, false
}

// protocolErr turns a raw protocol failure into a protocol_error issue.
// Issues raised below the field level (limit checks report at "/") are
// re-pathed to path; other issues pass through untouched.
func protocolErr(path string, err error) error {
	if err == nil {
		return nil
	}
	var iss Issues
	if !errors.As(err, &iss) {
		return errProtocol(path, "", err)
	}
	out := make(Issues, len(iss))
	copy(out, iss)
	for i := range out {
		if out[i].Path == "/" {
			out[i].Path = path
		}
	}
	return out
}

// activeFor resolves the descriptor of u's active field for writing.
func activeFor(u *Union) (FieldDescriptor, error) {
	if u.table == nil {
		return FieldDescriptor{}, errNoTable()
	}
	d, ok := u.ActiveDescriptor()
	if !ok {
		return FieldDescriptor{}, errNoActiveField(u.table.name)
	}
	return d, nil
}
