// Package field defines the field kind system of the catalog model and the
// classifier that maps raw spec type tokens onto it.
package field

import "fmt"

// A Kind classifies a catalog field into one of the three storage shapes
// shared by both generated backends.
type Kind uint8

const (
	// KindScalar is a plain value field: string, int or bool.
	KindScalar Kind = iota
	// KindReference is a nullable typed reference to another catalog
	// entity, resolved by path in a later linking pass.
	KindReference
	// KindCollection is an ordered, name-keyed collection of child
	// entities owned by the enclosing class.
	KindCollection
)

// String returns the kind name as used in error messages.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindReference:
		return "reference"
	case KindCollection:
		return "collection"
	default:
		return fmt.Sprintf("invalid kind %d", k)
	}
}

// A ScalarKind enumerates the value types a scalar field may hold.
type ScalarKind uint8

const (
	ScalarString ScalarKind = iota
	ScalarInt
	ScalarBool
)

// String returns the spec token for the scalar kind.
func (s ScalarKind) String() string {
	switch s {
	case ScalarString:
		return "string"
	case ScalarInt:
		return "int"
	case ScalarBool:
		return "bool"
	default:
		return fmt.Sprintf("invalid scalar kind %d", s)
	}
}

// Info is the resolved kind of a single field.
type Info struct {
	Kind   Kind
	Scalar ScalarKind // valid only when Kind is KindScalar
	Target string     // referenced class name for references and collections
}

// IsScalar reports whether the field holds a plain value.
func (i Info) IsScalar() bool { return i.Kind == KindScalar }

// IsReference reports whether the field is a nullable typed reference.
func (i Info) IsReference() bool { return i.Kind == KindReference }

// IsCollection reports whether the field is a named child collection.
func (i Info) IsCollection() bool { return i.Kind == KindCollection }

// Classify maps a raw field type token to its kind. Rules, checked in order:
// the exact tokens "string", "int" and "bool" classify as scalars; a token
// with a trailing '*' classifies as a collection of the named class; a token
// with a trailing '?' classifies as a nullable reference to the named class.
// Any other token is a classification error, which is fatal for the whole
// generation run.
func Classify(token string) (Info, error) {
	switch token {
	case "string":
		return Info{Kind: KindScalar, Scalar: ScalarString}, nil
	case "int":
		return Info{Kind: KindScalar, Scalar: ScalarInt}, nil
	case "bool":
		return Info{Kind: KindScalar, Scalar: ScalarBool}, nil
	}
	if n := len(token); n > 1 {
		switch token[n-1] {
		case '*':
			return Info{Kind: KindCollection, Target: token[:n-1]}, nil
		case '?':
			return Info{Kind: KindReference, Target: token[:n-1]}, nil
		}
	}
	return Info{}, fmt.Errorf("field: unrecognized type token %q", token)
}
