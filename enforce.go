package unionwire

import (
	"context"
	"strconv"
)

// EnforceReader wraps a ProtocolReader with limit checks on map headers and
// string/binary lengths. Map sizes are rejected before any storage is
// allocated for them. String and binary lengths are checked after the
// underlying protocol has returned the value, so MaxStringBytes bounds what is
// accepted, not what is read: the read itself is bounded by the protocol's
// TConfiguration.MaxMessageSize (see protocol.Configuration), and thrift grows
// the buffer only as bytes actually arrive. Values skipped through Skip are
// bounded by the same configuration.
func EnforceReader(r ProtocolReader, lim Limits) ProtocolReader {
	if er, ok := r.(*enforcingReader); ok {
		// Re-wrapping keeps the innermost reader and the newest limits.
		return &enforcingReader{ProtocolReader: er.ProtocolReader, lim: lim}
	}
	return &enforcingReader{ProtocolReader: r, lim: lim}
}

// EnforceReaderIfNeeded returns r unchanged when lim disables every check,
// preventing unnecessary overhead.
func EnforceReaderIfNeeded(r ProtocolReader, lim Limits) ProtocolReader {
	if lim.MaxMapSize == 0 && lim.MaxStringBytes == 0 {
		return r
	}
	return EnforceReader(r, lim)
}

type enforcingReader struct {
	ProtocolReader
	lim Limits
}

func (e *enforcingReader) ReadMapBegin(ctx context.Context) (WireType, WireType, int, error) {
	kt, vt, size, err := e.ProtocolReader.ReadMapBegin(ctx)
	if err != nil {
		return kt, vt, size, err
	}
	if size < 0 {
		return kt, vt, 0, errProtocol("/", "negative map size "+strconv.Itoa(size), nil)
	}
	if e.lim.MaxMapSize > 0 && size > e.lim.MaxMapSize {
		return kt, vt, 0, errProtocol("/", "map size "+strconv.Itoa(size)+" exceeds limit "+strconv.Itoa(e.lim.MaxMapSize), nil)
	}
	return kt, vt, size, nil
}

func (e *enforcingReader) ReadString(ctx context.Context) (string, error) {
	s, err := e.ProtocolReader.ReadString(ctx)
	if err != nil {
		return s, err
	}
	if err := e.checkLen(len(s)); err != nil {
		return "", err
	}
	return s, nil
}

func (e *enforcingReader) ReadBinary(ctx context.Context) ([]byte, error) {
	b, err := e.ProtocolReader.ReadBinary(ctx)
	if err != nil {
		return b, err
	}
	if err := e.checkLen(len(b)); err != nil {
		return nil, err
	}
	return b, nil
}

func (e *enforcingReader) checkLen(n int) error {
	if e.lim.MaxStringBytes > 0 && n > e.lim.MaxStringBytes {
		return errProtocol("/", "value length "+strconv.Itoa(n)+" exceeds limit "+strconv.Itoa(e.lim.MaxStringBytes), nil)
	}
	return nil
}
