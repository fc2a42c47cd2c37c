package catalogpatch

import (
	"fmt"
	"strings"

	j "github.com/goccy/go-json"

	"github.com/reoring/catalogpatch/jsonschema"
)

// FieldSpec is the type-erased view of a Field used by the mapper and the
// validator.
type FieldSpec[P any] interface {
	Name() string
	Nullable() bool
	JSONType() string
	// decode stores raw into the field of p. A JSON null leaves the field nil
	// and reports isNull.
	decode(p *P, raw []byte) (isNull bool, err error)
	exportSchema() *jsonschema.Schema
}

// Field describes one updatable field of the partial document P. V is the
// value type carried by the field; P holds it as a *V so absence and null
// both read as nil.
type Field[P, V any] struct {
	name     string
	jsonType string
	nullable bool
	get      func(*P) **V
	decoder  func(raw []byte) (V, error)
	desc     string
	maxLen   int
	minimum  *float64
	format   string
}

// NewField declares a field named name whose value lives at get(p).
// jsonType is the JSON Schema type used for export ("string", "number").
func NewField[P, V any](name, jsonType string, get func(*P) **V) *Field[P, V] {
	return &Field[P, V]{name: name, jsonType: jsonType, get: get}
}

// AllowNull marks the field nullable: an explicit null resolves to Cleared.
func (f *Field[P, V]) AllowNull() *Field[P, V] { f.nullable = true; return f }

// DecodeWith replaces the default goccy/go-json decoder.
func (f *Field[P, V]) DecodeWith(fn func(raw []byte) (V, error)) *Field[P, V] {
	f.decoder = fn
	return f
}

// Describe sets export-only metadata for the JSON Schema document.
func (f *Field[P, V]) Describe(desc string) *Field[P, V] { f.desc = desc; return f }

// MaxLength records a maximum length for export.
func (f *Field[P, V]) MaxLength(n int) *Field[P, V] { f.maxLen = n; return f }

// Minimum records an inclusive numeric minimum for export.
func (f *Field[P, V]) Minimum(v float64) *Field[P, V] { f.minimum = &v; return f }

// Format records a JSON Schema format (e.g. "uri") for export.
func (f *Field[P, V]) Format(format string) *Field[P, V] { f.format = format; return f }

func (f *Field[P, V]) Name() string     { return f.name }
func (f *Field[P, V]) Nullable() bool   { return f.nullable }
func (f *Field[P, V]) JSONType() string { return f.jsonType }

// Get returns the decoded value pointer of p, nil when absent or null.
func (f *Field[P, V]) Get(p P) *V { return *f.get(&p) }

func (f *Field[P, V]) decode(p *P, raw []byte) (bool, error) {
	slot := f.get(p)
	if isJSONNull(raw) {
		*slot = nil
		return true, nil
	}
	var (
		v   V
		err error
	)
	if f.decoder != nil {
		v, err = f.decoder(raw)
	} else {
		err = j.Unmarshal(raw, &v)
	}
	if err != nil {
		return false, &MalformedFieldError{Field: f.name, Cause: err}
	}
	*slot = &v
	return false, nil
}

func (f *Field[P, V]) exportSchema() *jsonschema.Schema {
	s := &jsonschema.Schema{Type: f.jsonType, Description: f.desc, Format: f.format, Minimum: f.minimum}
	if f.maxLen > 0 {
		n := f.maxLen
		s.MaxLength = &n
	}
	if f.nullable {
		s.Nullable = true
	}
	return s
}

func isJSONNull(raw []byte) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

// Schema is the closed, ordered table of updatable fields of P.
type Schema[P any] struct {
	fields []FieldSpec[P]
	index  map[string]FieldSpec[P]
}

// NewSchema builds a schema from field descriptors. It panics on an empty
// table, an empty name or two names equal ignoring case; schemas are package
// level values so the panic fires at init.
func NewSchema[P any](fields ...FieldSpec[P]) *Schema[P] {
	if len(fields) == 0 {
		panic("catalogpatch: schema without fields")
	}
	s := &Schema[P]{fields: fields, index: make(map[string]FieldSpec[P], len(fields))}
	for _, f := range fields {
		if f.Name() == "" {
			panic("catalogpatch: field without name")
		}
		key := strings.ToLower(f.Name())
		if _, dup := s.index[key]; dup {
			panic(fmt.Sprintf("catalogpatch: duplicate field %q", f.Name()))
		}
		s.index[key] = f
	}
	return s
}

// Lookup finds a field by name ignoring case.
func (s *Schema[P]) Lookup(key string) (FieldSpec[P], bool) {
	f, ok := s.index[strings.ToLower(key)]
	return f, ok
}

// Names returns the canonical field names in declaration order.
func (s *Schema[P]) Names() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Name()
	}
	return out
}

// JSONSchema exports the merge patch document schema: an object whose
// properties are all optional.
func (s *Schema[P]) JSONSchema() *jsonschema.Schema {
	props := make(map[string]*jsonschema.Schema, len(s.fields))
	for _, f := range s.fields {
		props[f.Name()] = f.exportSchema()
	}
	return &jsonschema.Schema{
		Type:                 "object",
		Properties:           props,
		AdditionalProperties: true,
	}
}
