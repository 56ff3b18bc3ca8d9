package unionwire

import (
	"sort"
	"strconv"
)

// FieldDescriptor identifies one declared alternative of a union.
type FieldDescriptor struct {
	ID          int16
	Name        string
	Kind        Kind
	Key         Kind // KindMap only.
	Elem        Kind // KindMap only.
	Requirement Requirement
	Typedef     string // IDL typedef the field was declared with, if any.
}

// WireType returns the declared wire type of the field.
func (d FieldDescriptor) WireType() WireType { return d.Kind.WireType() }

// KeyType returns the wire type of map keys (KindMap only).
func (d FieldDescriptor) KeyType() WireType { return d.Key.WireType() }

// ValueType returns the wire type of map values (KindMap only).
func (d FieldDescriptor) ValueType() WireType { return d.Elem.WireType() }

// Table is the immutable descriptor table of one union type. It is safe for
// concurrent use once built.
type Table struct {
	name   string
	fields []FieldDescriptor
	byID   map[int16]int
	byName map[string]int
}

// NewTable validates the descriptors and builds a table. All problems are
// reported together.
func NewTable(name string, fields ...FieldDescriptor) (*Table, error) {
	t := &Table{
		name:   name,
		fields: make([]FieldDescriptor, 0, len(fields)),
		byID:   make(map[int16]int, len(fields)),
		byName: make(map[string]int, len(fields)),
	}
	var iss Issues
	if name == "" {
		iss = AppendIssues(iss, Issue{Path: "/", Code: CodeInvalidDescriptor, Message: "struct name must not be empty"})
	}
	seenID := make(map[int16]bool, len(fields))
	seenName := make(map[string]bool, len(fields))
	for i, f := range fields {
		path := "/" + name + "/" + strconv.Itoa(i)
		if f.ID <= 0 {
			iss = AppendIssues(iss, Issue{Path: path, Code: CodeInvalidDescriptor, Message: "field id must be positive", Params: map[string]any{"id": f.ID}})
		}
		if seenID[f.ID] {
			iss = AppendIssues(iss, Issue{Path: path, Code: CodeInvalidDescriptor, Message: "duplicate field id", Params: map[string]any{"id": f.ID}})
		}
		if f.Name == "" {
			iss = AppendIssues(iss, Issue{Path: path, Code: CodeInvalidDescriptor, Message: "field name must not be empty"})
		} else if seenName[f.Name] {
			iss = AppendIssues(iss, Issue{Path: path, Code: CodeInvalidDescriptor, Message: "duplicate field name", Params: map[string]any{"name": f.Name}})
		}
		switch f.Kind {
		case KindI16, KindI32, KindI64, KindString, KindBinary:
			f.Key, f.Elem = KindInvalid, KindInvalid
		case KindMap:
			// Mapping is the only container variant.
			if f.Key != KindI32 || f.Elem != KindString {
				iss = AppendIssues(iss, Issue{Path: path, Code: CodeInvalidDescriptor, Message: "map fields must be map<i32,string>",
					Params: map[string]any{"key": f.Key.String(), "value": f.Elem.String()}})
			}
		default:
			iss = AppendIssues(iss, Issue{Path: path, Code: CodeInvalidDescriptor, Message: "unsupported field kind", Params: map[string]any{"kind": f.Kind.String()}})
		}
		seenID[f.ID] = true
		seenName[f.Name] = true
		t.fields = append(t.fields, f)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	sort.Slice(t.fields, func(i, j int) bool { return t.fields[i].ID < t.fields[j].ID })
	for i, f := range t.fields {
		t.byID[f.ID] = i
		t.byName[f.Name] = i
	}
	return t, nil
}

// MustTable is NewTable for package-level tables; it panics on invalid
// descriptors.
func MustTable(name string, fields ...FieldDescriptor) *Table {
	t, err := NewTable(name, fields...)
	if err != nil {
		panic("unionwire.MustTable: " + err.Error())
	}
	return t
}

// Name returns the struct name written in struct-begin frames.
func (t *Table) Name() string { return t.name }

// Len returns the number of declared fields.
func (t *Table) Len() int { return len(t.fields) }

// Fields returns a copy of the descriptors ordered by id.
func (t *Table) Fields() []FieldDescriptor {
	return append([]FieldDescriptor(nil), t.fields...)
}

// LookupByID returns the descriptor declared with id.
func (t *Table) LookupByID(id int16) (FieldDescriptor, bool) {
	i, ok := t.byID[id]
	if !ok {
		return FieldDescriptor{}, false
	}
	return t.fields[i], true
}

// LookupByName returns the descriptor declared with name.
func (t *Table) LookupByName(name string) (FieldDescriptor, bool) {
	i, ok := t.byName[name]
	if !ok {
		return FieldDescriptor{}, false
	}
	return t.fields[i], true
}

// LookupByIDOrFail is LookupByID reporting a miss as an unknown_field issue.
func (t *Table) LookupByIDOrFail(id int16) (FieldDescriptor, error) {
	d, ok := t.LookupByID(id)
	if !ok {
		return FieldDescriptor{}, errUnknownField(t.name, id)
	}
	return d, nil
}
