package unionwire

import (
	"github.com/fxamacker/cbor/v2"
)

// cborEnc uses Core Deterministic Encoding (RFC 8949 §4.2): equal unions
// always produce identical bytes.
var cborEnc cbor.EncMode

var cborDec cbor.DecMode

func init() {
	var err error
	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("unionwire: CBOR encoder initialization failed: " + err.Error())
	}
	cborDec, err = cbor.DecOptions{
		// Duplicate map keys would make "the" active field ambiguous.
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("unionwire: CBOR decoder initialization failed: " + err.Error())
	}
}

// MarshalCBOR implements cbor.Marshaler using the natural form. Bytes become
// CBOR byte strings and mapping keys stay integers.
func (u *Union) MarshalCBOR() ([]byte, error) {
	return cborEnc.Marshal(u.Natural())
}

// UnmarshalCBOR implements cbor.Unmarshaler. The union must be bound to a
// table. CBOR null leaves the union unchanged and duplicate map keys are
// rejected.
func (u *Union) UnmarshalCBOR(data []byte) error {
	if u.table == nil {
		return errNoTable()
	}
	if len(data) == 1 && data[0] == 0xf6 {
		return nil
	}
	var raw map[string]cbor.RawMessage
	if err := cborDec.Unmarshal(data, &raw); err != nil {
		return errProtocol(fieldPath(u.table.name, ""), "expected a CBOR map", err)
	}
	entries := make([]naturalEntry, 0, len(raw))
	for name, msg := range raw {
		entries = append(entries, naturalEntry{name: name, decode: func(dst any) error { return cborDec.Unmarshal(msg, dst) }})
	}
	return u.decodeNatural(entries)
}

// DiagnoseCBOR returns the CBOR diagnostic notation (RFC 8949 §8) of the
// union's CBOR encoding.
func (u *Union) DiagnoseCBOR() (string, error) {
	data, err := u.MarshalCBOR()
	if err != nil {
		return "", err
	}
	return cbor.Diagnose(data)
}
