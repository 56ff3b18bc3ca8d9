package unionwire

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeTypeMismatch          = "type_mismatch"
	CodeWrongActiveField      = "wrong_active_field"
	CodeUnknownField          = "unknown_field"
	CodeNoActiveField         = "no_active_field"
	CodeProtocolError         = "protocol_error"
	CodeComparisonUnsupported = "comparison_unsupported"
	CodeInvalidDescriptor     = "invalid_descriptor"
)

// Issue represents a single failure entry.
type Issue struct {
	Path    string // Struct-relative path, e.g. /TestingUnions/AnID.
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, expected shapes, etc.
	Cause   error  // Optional: underlying error (usually from the protocol).
	// Params carries structured parameters (e.g., {"field":"AnID","active":"aString"})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. wrong_active_field at /TestingUnions/AnID: cannot get field ...
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Message != "" {
			b.WriteString(": ")
			b.WriteString(it.Message)
		}
		if it.Hint != "" {
			b.WriteString(" (")
			b.WriteString(it.Hint)
			b.WriteByte(')')
		}
		if it.Cause != nil {
			b.WriteString(": ")
			b.WriteString(it.Cause.Error())
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the causes so errors.Is/As reach protocol errors.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// HasCode reports whether err carries an issue with the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

func fieldPath(structName, field string) string {
	if field == "" {
		return "/" + structName
	}
	return "/" + structName + "/" + field
}

func idString(id int16) string { return strconv.Itoa(int(id)) }

func errTypeMismatch(t *Table, d FieldDescriptor, got Value) error {
	gotName := "nil"
	if got != nil {
		gotName = got.Kind().String()
	}
	return IssueAt(fieldPath(t.Name(), d.Name), CodeTypeMismatch, "expected non-nil "+d.Kind.String(), nil,
		map[string]string{"field": d.Name, "expected": d.Kind.String(), "got": gotName})
}

func errWrongActiveField(t *Table, requested, active string) error {
	return IssueAt(fieldPath(t.Name(), requested), CodeWrongActiveField, "", nil,
		map[string]string{"field": requested, "active": active})
}

func errUnknownField(structName string, id int16) error {
	return IssueAt(fieldPath(structName, idString(id)), CodeUnknownField, "", nil,
		map[string]string{"id": idString(id), "struct": structName})
}

func errUnknownFieldName(structName, name string) error {
	return IssueAt(fieldPath(structName, name), CodeUnknownField, "", nil,
		map[string]string{"id": name, "struct": structName})
}

func errNoActiveField(structName string) error {
	return IssueAt(fieldPath(structName, ""), CodeNoActiveField, "", nil, map[string]string{"struct": structName})
}

func errProtocol(path, hint string, cause error) error {
	return IssueAt(path, CodeProtocolError, hint, cause, nil)
}

func errNoTable() error {
	return IssueAt("/", CodeInvalidDescriptor, "union has no descriptor table; construct it with New or Of", nil, nil)
}
