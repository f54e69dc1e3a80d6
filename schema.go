package fieldprobe

import "github.com/kailas-cloud/fieldprobe/internal/domain/schema"

// FieldType is the inferred type of a schema field.
type FieldType string

// Inferred field types.
const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeFloat   FieldType = "float"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeList    FieldType = "list"
	FieldTypeUnknown FieldType = "unknown"
)

// Field is one inferred schema entry.
type Field struct {
	Name        string    `json:"name"`
	Type        FieldType `json:"type"`
	Description string    `json:"description,omitempty"`
	Examples    []string  `json:"examples,omitempty"`
}

// Schema is the inferred schema of a collection: fields in discovery order.
type Schema []Field

// Get returns the field with the given name.
func (s Schema) Get(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func fromInternalField(f schema.Field) Field {
	examples := make([]string, len(f.Examples))
	copy(examples, f.Examples)
	return Field{
		Name:        f.Name,
		Type:        FieldType(f.Type),
		Description: f.Description,
		Examples:    examples,
	}
}

func fromInternalSchema(s *schema.Schema) Schema {
	fields := s.Fields()
	out := make(Schema, len(fields))
	for i, f := range fields {
		out[i] = fromInternalField(f)
	}
	return out
}
