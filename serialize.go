package unionwire

import (
	"context"

	"github.com/apache/thrift/lib/go/thrift"
)

// MarshalBinary implements encoding.BinaryMarshaler: the standard scheme over
// the thrift compact protocol.
func (u *Union) MarshalBinary() ([]byte, error) {
	ctx := context.Background()
	buf := thrift.NewTMemoryBuffer()
	p := thrift.NewTCompactProtocolConf(buf, &thrift.TConfiguration{})
	if err := Standard().Write(ctx, p, u); err != nil {
		return nil, err
	}
	if err := p.Flush(ctx); err != nil {
		return nil, protocolErr(fieldPath(u.typeName(), ""), err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler for data produced by
// MarshalBinary. The union must be bound to a table.
func (u *Union) UnmarshalBinary(data []byte) error {
	if u.table == nil {
		return errNoTable()
	}
	buf := thrift.NewTMemoryBufferLen(len(data))
	if _, err := buf.Write(data); err != nil {
		return protocolErr(fieldPath(u.table.name, ""), err)
	}
	return Standard().Read(context.Background(), thrift.NewTCompactProtocolConf(buf, &thrift.TConfiguration{}), u)
}

// Write encodes u with the standard scheme. Together with Read it makes a
// Union a thrift.TStruct.
func (u *Union) Write(ctx context.Context, p thrift.TProtocol) error {
	return Standard().Write(ctx, p, u)
}

// Read decodes u with the standard scheme.
func (u *Union) Read(ctx context.Context, p thrift.TProtocol) error {
	return Standard().Read(ctx, p, u)
}
