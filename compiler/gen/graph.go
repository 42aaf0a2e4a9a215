package gen

import (
	"github.com/syssam/catgen/schema"
)

// Graph holds the resolved catalog model: all types in descriptor order with
// their classified fields and reference information. A Graph is read-only
// after construction; both backend emitters consume it concurrently.
type Graph struct {
	// Nodes holds all types in descriptor order.
	Nodes []*Type
	nodes map[string]*Type
}

// NewGraph classifies every field of every class and resolves the reference
// graph. Classification runs to completion before resolution so that a bad
// type token anywhere in the model aborts the run before any output exists.
// A reference or collection field whose target class is absent from the
// model is a fatal resolution error.
func NewGraph(classes []*schema.Class) (*Graph, error) {
	g := &Graph{
		Nodes: make([]*Type, 0, len(classes)),
		nodes: make(map[string]*Type, len(classes)),
	}
	for _, cls := range classes {
		if _, ok := g.nodes[cls.Name]; ok {
			return nil, NewResolveError(cls.Name, "", "", "class redeclared")
		}
		t, err := NewType(cls)
		if err != nil {
			return nil, err
		}
		g.Nodes = append(g.Nodes, t)
		g.nodes[t.Name] = t
	}
	for _, t := range g.Nodes {
		if err := g.resolve(t); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Type returns the type with the given name, or nil.
func (g *Graph) Type(name string) *Type { return g.nodes[name] }

// resolve computes the referenced-class sets of a single type. RefClasses
// keeps first-appearance order over reference and collection fields;
// ForwardDecls drops the type itself, since a class never forward-declares
// its own name.
func (g *Graph) resolve(t *Type) error {
	seen := make(map[string]bool)
	for _, f := range t.Fields {
		if f.IsScalar() {
			continue
		}
		target := f.Target()
		if _, ok := g.nodes[target]; !ok {
			return NewResolveError(t.Name, f.Name, target, "target class not in model")
		}
		if !seen[target] {
			seen[target] = true
			t.RefClasses = append(t.RefClasses, target)
		}
	}
	t.ForwardDecls = make([]string, 0, len(t.RefClasses))
	for _, name := range t.RefClasses {
		if name != t.Name {
			t.ForwardDecls = append(t.ForwardDecls, name)
		}
	}
	return nil
}
