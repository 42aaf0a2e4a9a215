// Package schema defines the catalog class descriptor model consumed by the
// code generator. Descriptors are produced once per generation run, read by
// the classifier, the reference resolver and both backend emitters, and are
// never mutated after construction.
package schema

// Class describes one catalog entity type: its name, an optional doc
// comment, and an ordered list of fields. Field order is significant; it
// drives emission order and forward-declaration order in the generated code.
type Class struct {
	Name    string   `yaml:"name" json:"name"`
	Comment string   `yaml:"comment,omitempty" json:"comment,omitempty"`
	Fields  []*Field `yaml:"fields" json:"fields,omitempty"`
}

// Field describes one field of a class. RawType holds the unclassified type
// token from the spec source: `string`, `int`, `bool`, a class name with a
// trailing `*` (child collection) or a class name with a trailing `?`
// (nullable reference).
type Field struct {
	Name    string `yaml:"name" json:"name"`
	RawType string `yaml:"type" json:"type"`
	Comment string `yaml:"comment,omitempty" json:"comment,omitempty"`
}

// HasComment reports whether the class carries a doc comment.
func (c *Class) HasComment() bool { return c.Comment != "" }

// HasComment reports whether the field carries a doc comment.
func (f *Field) HasComment() bool { return f.Comment != "" }

// Parser turns raw catalog spec source into class descriptors. The legacy
// spec-text parser lives outside this module; implementations are supplied
// by the caller. The YAML descriptor loader in compiler/load is the input
// path used by the catgen command.
type Parser interface {
	Parse(src string) ([]*Class, error)
}
