package unionwire

import (
	"context"
)

// TupleScheme is the compact encoding for peers that share the schema out of
// band. The value travels without struct or field framing; which field it
// belongs to is framed by the caller (WriteValue/ReadValue) or by a leading
// i16 id (Write/Read).
type TupleScheme struct {
	Limits Limits
}

// Tuple returns a TupleScheme. Without options DefaultLimits apply.
func Tuple(opt ...CodecOpt) *TupleScheme {
	return &TupleScheme{Limits: resolveLimits(opt)}
}

func (*TupleScheme) Name() string { return SchemeTuple }

// WriteValue writes only the raw value of the active field and returns its id
// for the caller to frame.
func (s *TupleScheme) WriteValue(ctx context.Context, w ProtocolWriter, u *Union) (int16, error) {
	d, err := activeFor(u)
	if err != nil {
		return 0, err
	}
	if err := writeValue(ctx, w, u.table, d, u.value); err != nil {
		return 0, protocolErr(fieldPath(u.table.name, d.Name), err)
	}
	return d.ID, nil
}

// ReadValue reads the raw value of field id and makes it active. An id with
// no descriptor fails with unknown_field; nothing is skipped.
func (s *TupleScheme) ReadValue(ctx context.Context, r ProtocolReader, id int16, u *Union) error {
	if u.table == nil {
		return errNoTable()
	}
	d, err := u.table.LookupByIDOrFail(id)
	if err != nil {
		return err
	}
	r = EnforceReaderIfNeeded(r, s.Limits)
	path := fieldPath(u.table.name, d.Name)
	v, _, err := readValue(ctx, r, path, d, false)
	if err != nil {
		return protocolErr(path, err)
	}
	u.field, u.value = d.ID, v
	return nil
}

// Write emits the active field id as an i16 followed by the raw value.
func (s *TupleScheme) Write(ctx context.Context, w ProtocolWriter, u *Union) error {
	d, err := activeFor(u)
	if err != nil {
		return err
	}
	if err := w.WriteI16(ctx, d.ID); err != nil {
		return protocolErr(fieldPath(u.table.name, d.Name), err)
	}
	_, err = s.WriteValue(ctx, w, u)
	return err
}

// Read reads an i16 field id followed by that field's raw value.
func (s *TupleScheme) Read(ctx context.Context, r ProtocolReader, u *Union) error {
	if u.table == nil {
		return errNoTable()
	}
	id, err := r.ReadI16(ctx)
	if err != nil {
		return protocolErr(fieldPath(u.table.name, ""), err)
	}
	return s.ReadValue(ctx, r, id, u)
}
