// Package schemafile loads union descriptor tables from YAML, one union per
// document:
//
//	name: TestingUnions
//	fields:
//	  - {id: 1, name: AnID, type: i64, typedef: id}
//	  - {id: 5, name: Requests, type: map, key: i32, value: string}
package schemafile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/reoring/unionwire"
)

// Document is the YAML shape of one union.
type Document struct {
	Name   string  `yaml:"name"`
	Fields []Field `yaml:"fields"`
}

// Field is the YAML shape of one field descriptor.
type Field struct {
	ID          int16  `yaml:"id"`
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Key         string `yaml:"key,omitempty"`
	Value       string `yaml:"value,omitempty"`
	Requirement string `yaml:"requirement,omitempty"`
	Typedef     string `yaml:"typedef,omitempty"`
}

// Load decodes every document of r into a table. Unknown YAML keys are
// rejected; descriptor problems are reported as invalid_descriptor issues.
func Load(r io.Reader) ([]*unionwire.Table, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var out []*unionwire.Table
	for i := 0; ; i++ {
		var doc Document
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("schemafile: document %d: %w", i, err)
		}
		t, err := doc.Table()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, errors.New("schemafile: no union documents")
	}
	return out, nil
}

// LoadBytes is Load over a byte slice.
func LoadBytes(b []byte) ([]*unionwire.Table, error) { return Load(bytes.NewReader(b)) }

// LoadFile is Load over the named file.
func LoadFile(path string) ([]*unionwire.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Find returns the table named name.
func Find(tables []*unionwire.Table, name string) (*unionwire.Table, bool) {
	for _, t := range tables {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// Table builds the descriptor table of doc.
func (doc Document) Table() (*unionwire.Table, error) {
	var iss unionwire.Issues
	fields := make([]unionwire.FieldDescriptor, 0, len(doc.Fields))
	for _, f := range doc.Fields {
		d, err := f.descriptor(doc.Name)
		if err != nil {
			iss = unionwire.AppendIssues(iss, err...)
			continue
		}
		fields = append(fields, d)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return unionwire.NewTable(doc.Name, fields...)
}

// Encode renders t back into its YAML document.
func Encode(w io.Writer, t *unionwire.Table) error {
	doc := Document{Name: t.Name()}
	for _, d := range t.Fields() {
		f := Field{ID: d.ID, Name: d.Name, Type: d.Kind.String(), Typedef: d.Typedef}
		if d.Kind == unionwire.KindMap {
			f.Key, f.Value = d.Key.String(), d.Elem.String()
		}
		if d.Requirement != unionwire.RequirementDefault {
			f.Requirement = d.Requirement.String()
		}
		doc.Fields = append(doc.Fields, f)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func (f Field) descriptor(structName string) (unionwire.FieldDescriptor, unionwire.Issues) {
	d := unionwire.FieldDescriptor{ID: f.ID, Name: f.Name, Typedef: f.Typedef}
	var iss unionwire.Issues
	bad := func(what, got string) {
		iss = unionwire.AppendIssues(iss, unionwire.Issue{
			Path:    "/" + structName + "/" + f.Name,
			Code:    unionwire.CodeInvalidDescriptor,
			Message: fmt.Sprintf("unknown %s %q", what, got),
		})
	}
	k, ok := unionwire.ParseKind(f.Type)
	if !ok {
		bad("type", f.Type)
	}
	d.Kind = k
	if k == unionwire.KindMap {
		if d.Key, ok = unionwire.ParseKind(f.Key); !ok {
			bad("map key type", f.Key)
		}
		if d.Elem, ok = unionwire.ParseKind(f.Value); !ok {
			bad("map value type", f.Value)
		}
	}
	switch f.Requirement {
	case "", "default":
	case "optional":
		d.Requirement = unionwire.RequirementOptional
	case "required":
		d.Requirement = unionwire.RequirementRequired
	default:
		bad("requirement", f.Requirement)
	}
	return d, iss
}
