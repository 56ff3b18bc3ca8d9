// Package protocol provides the thrift protocol drivers a Union travels over
// and a process-wide default driver.
package protocol

import (
	"sort"
	"sync"

	"github.com/apache/thrift/lib/go/thrift"
)

// Driver builds a thrift protocol on top of a transport. The built-in drivers
// are Binary, Compact and JSON; callers may register their own with Register.
type Driver interface {
	Name() string
	NewProtocol(trans thrift.TTransport) thrift.TProtocol
}

// ValueDelimiter is implemented by drivers that know whether back-to-back
// top-level values (outside any struct) can be read back one at a time.
type ValueDelimiter interface {
	DelimitsValues() bool
}

// DelimitsValues reports whether d can carry the tuple scheme's bare id
// followed by a bare value. Drivers that do not implement ValueDelimiter are
// assumed to delimit.
func DelimitsValues(d Driver) bool {
	if vd, ok := d.(ValueDelimiter); ok {
		return vd.DelimitsValues()
	}
	return true
}

// Built-in driver names.
const (
	NameBinary  = "binary"
	NameCompact = "compact"
	NameJSON    = "json"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]Driver{}

	defaultMu      sync.RWMutex
	currentDefault Driver = Binary(nil)
)

func init() {
	Register(Binary(nil))
	Register(Compact(nil))
	Register(JSON())
}

// Register makes d available to Lookup under d.Name(), replacing any driver
// registered under the same name. nil values are ignored.
func Register(d Driver) {
	if d == nil {
		return
	}
	registryMu.Lock()
	registry[d.Name()] = d
	registryMu.Unlock()
}

// Lookup returns the driver registered under name.
func Lookup(name string) (Driver, bool) {
	registryMu.RLock()
	d, ok := registry[name]
	registryMu.RUnlock()
	return d, ok
}

// Names returns the registered driver names in sorted order.
func Names() []string {
	registryMu.RLock()
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	registryMu.RUnlock()
	sort.Strings(out)
	return out
}

// SetDefault replaces the process-wide default driver; nil values are ignored.
func SetDefault(d Driver) {
	if d == nil {
		return
	}
	defaultMu.Lock()
	currentDefault = d
	defaultMu.Unlock()
}

// UseBuiltinDefault restores the binary driver as the default.
func UseBuiltinDefault() {
	defaultMu.Lock()
	currentDefault = Binary(nil)
	defaultMu.Unlock()
}

// Default returns the process-wide default driver.
func Default() Driver {
	defaultMu.RLock()
	d := currentDefault
	defaultMu.RUnlock()
	return d
}

// Configuration returns a thrift configuration bounding the size of a single
// message. maxMessageSize <= 0 keeps thrift's default.
func Configuration(maxMessageSize int32) *thrift.TConfiguration {
	conf := &thrift.TConfiguration{}
	if maxMessageSize > 0 {
		conf.MaxMessageSize = maxMessageSize
	}
	return conf
}
