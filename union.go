package unionwire

import (
	"strings"
)

// Union holds at most one active field of the union described by its Table.
// A Union is a plain value: it is not safe for concurrent mutation, and
// readers must not race with writers.
type Union struct {
	table *Table
	field int16 // 0 when empty; declared ids are always positive.
	value Value
}

// New returns an empty union bound to t.
func New(t *Table) *Union { return &Union{table: t} }

// Of returns an empty union value bound to t, for embedding in generated
// types.
func Of(t *Table) Union { return Union{table: t} }

// NewWith returns a union bound to t with field id set to v.
func NewWith(t *Table, id int16, v Value) (*Union, error) {
	u := New(t)
	if err := u.Set(id, v); err != nil {
		return nil, err
	}
	return u, nil
}

// Table returns the descriptor table the union is bound to.
func (u *Union) Table() *Table { return u.table }

// Set makes field id active with payload v, replacing any previous field.
// On error the union is left unchanged.
func (u *Union) Set(id int16, v Value) error {
	if u.table == nil {
		return errNoTable()
	}
	d, ok := u.table.LookupByID(id)
	if !ok {
		return errUnknownField(u.table.name, id)
	}
	return u.setDescriptor(d, v)
}

// SetByName is Set addressing the field by its declared name.
func (u *Union) SetByName(name string, v Value) error {
	if u.table == nil {
		return errNoTable()
	}
	d, ok := u.table.LookupByName(name)
	if !ok {
		return errUnknownFieldName(u.table.name, name)
	}
	return u.setDescriptor(d, v)
}

func (u *Union) setDescriptor(d FieldDescriptor, v Value) error {
	if isNilValue(v) || v.Kind() != d.Kind {
		return errTypeMismatch(u.table, d, v)
	}
	u.field, u.value = d.ID, v
	return nil
}

// Get returns the payload of field id. It fails with wrong_active_field when
// another field, or none, is active.
func (u *Union) Get(id int16) (Value, error) {
	if u.table == nil {
		return nil, errNoTable()
	}
	if u.field != 0 && u.field == id {
		return u.value, nil
	}
	requested := idString(id)
	if d, ok := u.table.LookupByID(id); ok {
		requested = d.Name
	}
	return nil, errWrongActiveField(u.table, requested, u.activeName())
}

// GetAs returns the payload of field id as T.
func GetAs[T Value](u *Union, id int16) (T, error) {
	var zero T
	v, err := u.Get(id)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		d, _ := u.table.LookupByID(id)
		return zero, errTypeMismatch(u.table, d, zero)
	}
	return t, nil
}

// IsSet reports whether field id is the active field.
func (u *Union) IsSet(id int16) bool { return u.field != 0 && u.field == id }

// IsEmpty reports whether no field is active.
func (u *Union) IsEmpty() bool { return u.field == 0 }

// ActiveField returns the id of the active field.
func (u *Union) ActiveField() (int16, bool) { return u.field, u.field != 0 }

// ActiveDescriptor returns the descriptor of the active field.
func (u *Union) ActiveDescriptor() (FieldDescriptor, bool) {
	if u.field == 0 || u.table == nil {
		return FieldDescriptor{}, false
	}
	return u.table.LookupByID(u.field)
}

// Payload returns the payload of the active field.
func (u *Union) Payload() (Value, bool) { return u.value, u.field != 0 }

// Clear empties the union.
func (u *Union) Clear() { u.field, u.value = 0, nil }

// Clone returns a deep copy. Map and byte payloads get their own storage.
func (u *Union) Clone() *Union {
	return &Union{table: u.table, field: u.field, value: CloneValue(u.value)}
}

// Validate reports a union with no active field.
func (u *Union) Validate() error {
	if u.table == nil {
		return errNoTable()
	}
	if u.field == 0 {
		return errNoActiveField(u.table.name)
	}
	return nil
}

func (u *Union) activeName() string {
	if u.field == 0 {
		return "none"
	}
	if d, ok := u.table.LookupByID(u.field); ok {
		return d.Name
	}
	return idString(u.field)
}

func (u *Union) String() string {
	var b strings.Builder
	if u.table != nil {
		b.WriteString(u.table.name)
	}
	b.WriteByte('{')
	if u.field != 0 {
		b.WriteString(u.activeName())
		b.WriteByte(':')
		b.WriteString(formatValue(u.value))
	}
	b.WriteByte('}')
	return b.String()
}

// commit replaces u's state with src's, used by decoders after a complete read.
func (u *Union) commit(src *Union) { u.field, u.value = src.field, src.value }
