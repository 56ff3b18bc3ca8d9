// Package codec turns unions into bytes and back through a protocol driver
// and a wire scheme.
package codec

import (
	"context"

	"github.com/apache/thrift/lib/go/thrift"

	"github.com/reoring/unionwire"
	"github.com/reoring/unionwire/protocol"
)

// Opt configures a Codec. Zero fields fall back to protocol.Default() and the
// standard scheme.
type Opt struct {
	Driver protocol.Driver
	Scheme unionwire.Scheme
}

// Codec encodes and decodes unions of a single table. It holds no per-call
// state and is safe for concurrent use.
type Codec struct {
	table  *unionwire.Table
	driver protocol.Driver
	scheme unionwire.Scheme
	tuple  *unionwire.TupleScheme
}

// New returns a Codec for unions bound to t. A nil table, or the tuple
// scheme over a driver that cannot delimit bare values (the JSON protocol),
// fails with invalid_descriptor.
func New(t *unionwire.Table, opt ...Opt) (*Codec, error) {
	if t == nil {
		return nil, unionwire.IssueAt("/", unionwire.CodeInvalidDescriptor, "codec needs a descriptor table", nil, nil)
	}
	c := &Codec{table: t}
	if len(opt) > 0 {
		c.driver, c.scheme = opt[0].Driver, opt[0].Scheme
	}
	if c.driver == nil {
		c.driver = protocol.Default()
	}
	if c.scheme == nil {
		c.scheme = unionwire.Standard()
	}
	if ts, ok := c.scheme.(*unionwire.TupleScheme); ok {
		c.tuple = ts
		if !protocol.DelimitsValues(c.driver) {
			return nil, unionwire.IssueAt("/"+t.Name(), unionwire.CodeInvalidDescriptor,
				"the "+c.driver.Name()+" protocol cannot delimit the tuple scheme's bare id and value", nil,
				map[string]string{"struct": t.Name()})
		}
	} else {
		c.tuple = unionwire.Tuple()
	}
	return c, nil
}

// MustNew is New for package-level codecs; it panics on error.
func MustNew(t *unionwire.Table, opt ...Opt) *Codec {
	c, err := New(t, opt...)
	if err != nil {
		panic("codec.MustNew: " + err.Error())
	}
	return c
}

// Table returns the table the codec is bound to.
func (c *Codec) Table() *unionwire.Table { return c.table }

// Driver returns the protocol driver in use.
func (c *Codec) Driver() protocol.Driver { return c.driver }

// Scheme returns the wire scheme in use.
func (c *Codec) Scheme() unionwire.Scheme { return c.scheme }

// Encode writes u with the codec's scheme and returns the flushed bytes.
func (c *Codec) Encode(ctx context.Context, u *unionwire.Union) ([]byte, error) {
	if err := c.check(u); err != nil {
		return nil, err
	}
	buf := thrift.NewTMemoryBuffer()
	p := c.driver.NewProtocol(buf)
	if err := c.scheme.Write(ctx, p, u); err != nil {
		return nil, err
	}
	if err := p.Flush(ctx); err != nil {
		return nil, c.protocolErr(err)
	}
	return buf.Bytes(), nil
}

// Decode reads a new union from b.
func (c *Codec) Decode(ctx context.Context, b []byte) (*unionwire.Union, error) {
	u := unionwire.New(c.table)
	if err := c.DecodeInto(ctx, b, u); err != nil {
		return nil, err
	}
	return u, nil
}

// DecodeInto reads b into u. u is unchanged on error.
func (c *Codec) DecodeInto(ctx context.Context, b []byte, u *unionwire.Union) error {
	if err := c.check(u); err != nil {
		return err
	}
	p, err := c.reader(b)
	if err != nil {
		return err
	}
	return c.scheme.Read(ctx, p, u)
}

// EncodeValue writes only the raw value of u's active field and returns the
// field id, which the caller frames.
func (c *Codec) EncodeValue(ctx context.Context, u *unionwire.Union) (int16, []byte, error) {
	if err := c.check(u); err != nil {
		return 0, nil, err
	}
	buf := thrift.NewTMemoryBuffer()
	p := c.driver.NewProtocol(buf)
	id, err := c.tuple.WriteValue(ctx, p, u)
	if err != nil {
		return 0, nil, err
	}
	if err := p.Flush(ctx); err != nil {
		return 0, nil, c.protocolErr(err)
	}
	return id, buf.Bytes(), nil
}

// DecodeValue reads the raw value of field id from b. An id the table does
// not declare fails with unknown_field.
func (c *Codec) DecodeValue(ctx context.Context, id int16, b []byte) (*unionwire.Union, error) {
	p, err := c.reader(b)
	if err != nil {
		return nil, err
	}
	u := unionwire.New(c.table)
	if err := c.tuple.ReadValue(ctx, p, id, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (c *Codec) reader(b []byte) (thrift.TProtocol, error) {
	buf := thrift.NewTMemoryBufferLen(len(b))
	if _, err := buf.Write(b); err != nil {
		return nil, c.protocolErr(err)
	}
	return c.driver.NewProtocol(buf), nil
}

func (c *Codec) check(u *unionwire.Union) error {
	if u == nil || u.Table() != c.table {
		return unionwire.IssueAt("/"+c.table.Name(), unionwire.CodeInvalidDescriptor,
			"union is not bound to the codec's table", nil, map[string]string{"struct": c.table.Name()})
	}
	return nil
}

func (c *Codec) protocolErr(err error) error {
	return unionwire.IssueAt("/"+c.table.Name(), unionwire.CodeProtocolError, "", err, nil)
}
