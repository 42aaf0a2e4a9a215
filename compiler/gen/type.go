package gen

import (
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/syssam/catgen/schema"
	"github.com/syssam/catgen/schema/field"
)

// The following types and their exported methods are used by the backend
// emitters to generate the assets.
type (
	// Type represents one class in the resolved catalog model: its
	// descriptor, its classified fields, and the reference information
	// computed by the resolver.
	Type struct {
		def *schema.Class
		// Name holds the class name, case-sensitive.
		Name string
		// Comment holds the optional class doc comment.
		Comment string
		// Fields holds the classified fields in descriptor order.
		Fields []*Field
		fields map[string]*Field
		// RefClasses holds the distinct classes referenced by this
		// type's reference and collection fields, in first-appearance
		// order. A self-reference is valid and recorded here.
		RefClasses []string
		// ForwardDecls is RefClasses minus the type itself. The manual
		// backend emits one forward declaration per entry; the managed
		// backend resolves types by name and ignores it.
		ForwardDecls []string
	}

	// Field holds one classified field of a type.
	Field struct {
		def *schema.Field
		// Name holds the field name, unique within its class.
		Name string
		// Comment holds the optional field doc comment.
		Comment string
		// RawType holds the original type token from the descriptor.
		RawType string
		// Info holds the classification computed from RawType.
		Info field.Info
	}
)

// NewType classifies the fields of a class descriptor and returns the
// resolved type. It fails on a duplicate field name or on the first field
// whose type token does not classify.
func NewType(cls *schema.Class) (*Type, error) {
	t := &Type{
		def:     cls,
		Name:    cls.Name,
		Comment: cls.Comment,
		Fields:  make([]*Field, 0, len(cls.Fields)),
		fields:  make(map[string]*Field, len(cls.Fields)),
	}
	for _, fd := range cls.Fields {
		if _, ok := t.fields[fd.Name]; ok {
			return nil, NewResolveError(cls.Name, fd.Name, "", "field redeclared")
		}
		info, err := field.Classify(fd.RawType)
		if err != nil {
			return nil, NewClassifyError(cls.Name, fd.Name, fd.RawType, err)
		}
		f := &Field{
			def:     fd,
			Name:    fd.Name,
			Comment: fd.Comment,
			RawType: fd.RawType,
			Info:    info,
		}
		t.Fields = append(t.Fields, f)
		t.fields[f.Name] = f
	}
	return t, nil
}

// HasComment reports whether the type carries a doc comment.
func (t *Type) HasComment() bool { return t.Comment != "" }

// ValueFields returns the non-collection fields (scalars and references) in
// descriptor order. These are the fields enumerated by the managed backend's
// getFields and coerced by the manual backend's update.
func (t *Type) ValueFields() []*Field {
	fields := make([]*Field, 0, len(t.Fields))
	for _, f := range t.Fields {
		if !f.IsCollection() {
			fields = append(fields, f)
		}
	}
	return fields
}

// Collections returns the child collection fields in descriptor order.
func (t *Type) Collections() []*Field {
	fields := make([]*Field, 0, len(t.Fields))
	for _, f := range t.Fields {
		if f.IsCollection() {
			fields = append(fields, f)
		}
	}
	return fields
}

// HasCollections reports whether the type owns any child collections.
func (t *Type) HasCollections() bool {
	for _, f := range t.Fields {
		if f.IsCollection() {
			return true
		}
	}
	return false
}

// FileBase returns the lower-cased class name used by the manual backend for
// its header/definition file pair.
func (t *Type) FileBase() string { return strings.ToLower(t.Name) }

// HasComment reports whether the field carries a doc comment.
func (f *Field) HasComment() bool { return f.Comment != "" }

// IsScalar reports whether the field holds a plain value.
func (f *Field) IsScalar() bool { return f.Info.IsScalar() }

// IsReference reports whether the field is a nullable typed reference.
func (f *Field) IsReference() bool { return f.Info.IsReference() }

// IsCollection reports whether the field is a named child collection.
func (f *Field) IsCollection() bool { return f.Info.IsCollection() }

// Target returns the referenced class name for references and collections,
// and the empty string for scalars.
func (f *Field) Target() string { return f.Info.Target }

// Scalar returns the scalar kind. Valid only when IsScalar reports true.
func (f *Field) Scalar() field.ScalarKind { return f.Info.Scalar }

// Accessor returns the capitalized field name used to form the managed
// backend's accessor method names (getX/setX).
func (f *Field) Accessor() string { return inflect.Capitalize(f.Name) }

// StorageName returns the member variable name shared by both backends.
func (f *Field) StorageName() string { return "m_" + f.Name }
