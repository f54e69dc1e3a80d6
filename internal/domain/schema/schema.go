// Package schema holds the inferred schema data model: one entry per field
// path with a unified type and a bounded set of example values.
package schema

import "encoding/json"

// Type is the inferred type of a field, decided from sampled values.
type Type string

// Inferred field types.
const (
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeFloat   Type = "float"
	TypeBoolean Type = "boolean"
	TypeList    Type = "list"
	TypeUnknown Type = "unknown"
)

// Field is one schema entry: the field's unified type plus up to a handful
// of distinct stringified example values observed in the sample.
type Field struct {
	Name        string   `json:"name,omitempty"`
	Type        Type     `json:"type"`
	Description string   `json:"description,omitempty"`
	Examples    []string `json:"examples,omitempty"`
}

// Schema maps field paths to entries for one collection. Entries keep
// insertion order; the schema is immutable once handed to a caller.
type Schema struct {
	entries map[string]Field
	order   []string
}

// New creates an empty Schema.
func New() *Schema {
	return &Schema{entries: make(map[string]Field)}
}

// Put adds or replaces the entry for a field path.
func (s *Schema) Put(path string, f Field) {
	if _, ok := s.entries[path]; !ok {
		s.order = append(s.order, path)
	}
	s.entries[path] = f
}

// Get returns the entry for a field path.
func (s *Schema) Get(path string) (Field, bool) {
	f, ok := s.entries[path]
	return f, ok
}

// Len returns the number of entries.
func (s *Schema) Len() int { return len(s.entries) }

// Paths returns field paths in insertion order.
func (s *Schema) Paths() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Fields returns the legacy list representation: entries in insertion order
// with the field path injected as the entry name.
func (s *Schema) Fields() []Field {
	out := make([]Field, 0, len(s.order))
	for _, path := range s.order {
		f := s.entries[path]
		f.Name = path
		out = append(out, f)
	}
	return out
}

// MarshalJSON serializes the schema as {"fields": [...]} using the legacy
// list representation, which preserves entry order.
func (s *Schema) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Fields []Field `json:"fields"`
	}{Fields: s.Fields()})
}
