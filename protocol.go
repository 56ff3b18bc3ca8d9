package unionwire

import "context"

// ProtocolWriter is the write half of the protocol contract the schemes rely
// on. Every thrift.TProtocol satisfies it.
type ProtocolWriter interface {
	WriteStructBegin(ctx context.Context, name string) error
	WriteStructEnd(ctx context.Context) error
	WriteFieldBegin(ctx context.Context, name string, typeID WireType, id int16) error
	WriteFieldEnd(ctx context.Context) error
	WriteFieldStop(ctx context.Context) error
	WriteMapBegin(ctx context.Context, keyType WireType, valueType WireType, size int) error
	WriteMapEnd(ctx context.Context) error
	WriteI16(ctx context.Context, value int16) error
	WriteI32(ctx context.Context, value int32) error
	WriteI64(ctx context.Context, value int64) error
	WriteString(ctx context.Context, value string) error
	WriteBinary(ctx context.Context, value []byte) error
	Flush(ctx context.Context) (err error)
}

// ProtocolReader is the read half of the protocol contract. Skip consumes an
// encoded value of the given type without producing a result.
type ProtocolReader interface {
	ReadStructBegin(ctx context.Context) (name string, err error)
	ReadStructEnd(ctx context.Context) error
	ReadFieldBegin(ctx context.Context) (name string, typeID WireType, id int16, err error)
	ReadFieldEnd(ctx context.Context) error
	ReadMapBegin(ctx context.Context) (keyType WireType, valueType WireType, size int, err error)
	ReadMapEnd(ctx context.Context) error
	ReadI16(ctx context.Context) (value int16, err error)
	ReadI32(ctx context.Context) (value int32, err error)
	ReadI64(ctx context.Context) (value int64, err error)
	ReadString(ctx context.Context) (value string, err error)
	ReadBinary(ctx context.Context) (value []byte, err error)
	Skip(ctx context.Context, fieldType WireType) (err error)
}

// Protocol is both halves.
type Protocol interface {
	ProtocolReader
	ProtocolWriter
}
