package protocol

import (
	"github.com/apache/thrift/lib/go/thrift"
)

// Binary returns a driver for the thrift binary protocol. A nil conf uses
// thrift's defaults (strict writes, lenient reads).
func Binary(conf *thrift.TConfiguration) Driver {
	return binaryDriver{conf: orDefault(conf)}
}

// Compact returns a driver for the thrift compact protocol.
func Compact(conf *thrift.TConfiguration) Driver {
	return compactDriver{conf: orDefault(conf)}
}

// JSON returns a driver for the thrift JSON protocol. Top-level values carry
// no separators, so pair it with the standard scheme; the tuple envelope's
// bare id and value cannot be told apart.
func JSON() Driver { return jsonDriver{} }

type binaryDriver struct{ conf *thrift.TConfiguration }

func (binaryDriver) Name() string { return NameBinary }
func (d binaryDriver) NewProtocol(trans thrift.TTransport) thrift.TProtocol {
	return thrift.NewTBinaryProtocolConf(trans, d.conf)
}

type compactDriver struct{ conf *thrift.TConfiguration }

func (compactDriver) Name() string { return NameCompact }
func (d compactDriver) NewProtocol(trans thrift.TTransport) thrift.TProtocol {
	return thrift.NewTCompactProtocolConf(trans, d.conf)
}

type jsonDriver struct{}

func (jsonDriver) Name() string         { return NameJSON }
func (jsonDriver) DelimitsValues() bool { return false }
func (jsonDriver) NewProtocol(trans thrift.TTransport) thrift.TProtocol {
	return thrift.NewTJSONProtocol(trans)
}

func orDefault(conf *thrift.TConfiguration) *thrift.TConfiguration {
	if conf == nil {
		return &thrift.TConfiguration{}
	}
	return conf
}
