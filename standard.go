package unionwire

import (
	"context"
)

// StandardScheme is the self-describing encoding: a struct frame holding one
// field frame (name, wire type, id) and a stop marker. Reading tolerates
// unknown and re-typed fields by skipping them.
type StandardScheme struct {
	Limits Limits
}

// Standard returns a StandardScheme. Without options DefaultLimits apply.
func Standard(opt ...CodecOpt) *StandardScheme {
	return &StandardScheme{Limits: resolveLimits(opt)}
}

func (*StandardScheme) Name() string { return SchemeStandard }

// Write emits the active field. An empty union fails with no_active_field
// before anything is written.
func (s *StandardScheme) Write(ctx context.Context, w ProtocolWriter, u *Union) error {
	d, err := activeFor(u)
	if err != nil {
		return err
	}
	name := u.table.name
	path := fieldPath(name, d.Name)
	if err := w.WriteStructBegin(ctx, name); err != nil {
		return protocolErr(path, err)
	}
	if err := w.WriteFieldBegin(ctx, d.Name, d.WireType(), d.ID); err != nil {
		return protocolErr(path, err)
	}
	if err := writeValue(ctx, w, u.table, d, u.value); err != nil {
		return protocolErr(path, err)
	}
	if err := w.WriteFieldEnd(ctx); err != nil {
		return protocolErr(path, err)
	}
	if err := w.WriteFieldStop(ctx); err != nil {
		return protocolErr(path, err)
	}
	if err := w.WriteStructEnd(ctx); err != nil {
		return protocolErr(path, err)
	}
	return nil
}

// Read decodes field frames until the stop marker. The last recognized field
// wins; unknown ids and wire-type mismatches are skipped; a stream with no
// recognized field leaves u empty. u is only modified when the whole struct
// was read successfully.
func (s *StandardScheme) Read(ctx context.Context, r ProtocolReader, u *Union) error {
	if u.table == nil {
		return errNoTable()
	}
	r = EnforceReaderIfNeeded(r, s.Limits)
	t := u.table
	structPath := fieldPath(t.name, "")
	if _, err := r.ReadStructBegin(ctx); err != nil {
		return protocolErr(structPath, err)
	}
	scratch := Union{table: t}
	for {
		_, typeID, id, err := r.ReadFieldBegin(ctx)
		if err != nil {
			return protocolErr(structPath, err)
		}
		if typeID == TypeStop {
			break
		}
		d, ok := t.LookupByID(id)
		if ok && typeID == d.WireType() {
			path := fieldPath(t.name, d.Name)
			v, skipped, err := readValue(ctx, r, path, d, true)
			if err != nil {
				return protocolErr(path, err)
			}
			if !skipped {
				scratch.field, scratch.value = d.ID, v
			}
		} else if err := r.Skip(ctx, typeID); err != nil {
			return protocolErr(fieldPath(t.name, idString(id)), err)
		}
		if err := r.ReadFieldEnd(ctx); err != nil {
			return protocolErr(structPath, err)
		}
	}
	if err := r.ReadStructEnd(ctx); err != nil {
		return protocolErr(structPath, err)
	}
	u.commit(&scratch)
	return nil
}
