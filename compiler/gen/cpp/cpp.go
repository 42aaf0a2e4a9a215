// Package cpp implements the manual backend: a header/definition pair per
// catalog entity with explicit ownership. Collections are owning name-keyed
// containers whose entries are deleted one by one in the destructor;
// references are non-owning CatalogType pointers refreshed from the generic
// field-value table by update(), using the same textual conventions as the
// managed backend's set().
package cpp

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/syssam/catgen/compiler/gen"
	"github.com/syssam/catgen/schema/field"
)

// supportFiles is the fixed set of hand-written runtime sources copied
// verbatim into the output root on every run.
var supportFiles = []string{
	"catalog.h",
	"catalogtype.h",
	"catalogmap.h",
	"catalog.cpp",
	"catalogtype.cpp",
}

// Backend emits the manual-backend source tree.
type Backend struct {
	out     string
	support string
	header  string
}

// New creates the manual backend from the run configuration.
func New(cfg *gen.Config) *Backend {
	return &Backend{
		out:     cfg.CppOut,
		support: cfg.CppSupport,
		header:  cfg.Header,
	}
}

// Name implements gen.Backend.
func (b *Backend) Name() string { return "cpp" }

// OutDir implements gen.Backend.
func (b *Backend) OutDir() string { return b.out }

// SupportDir implements gen.Backend.
func (b *Backend) SupportDir() string { return b.support }

// SupportFiles implements gen.Backend.
func (b *Backend) SupportFiles() []string { return supportFiles }

// Files renders <classname>.h and <classname>.cpp per type. Classes are
// emitted in reverse descriptor order; only forward-declaration placement
// depends on it, never the correctness of a single class's output.
func (b *Backend) Files(g *gen.Graph) ([]gen.File, error) {
	files := make([]gen.File, 0, 2*len(g.Nodes))
	for i := len(g.Nodes) - 1; i >= 0; i-- {
		t := g.Nodes[i]
		files = append(files,
			gen.File{Name: t.FileBase() + ".h", Body: b.headerFile(t)},
			gen.File{Name: t.FileBase() + ".cpp", Body: b.defFile(t)},
		)
	}
	return files, nil
}

// TypeOf returns the C++ storage type of a field. References are stored as
// generic non-owning CatalogType pointers; the typed getter downcasts.
func TypeOf(f *gen.Field) string {
	switch {
	case f.IsCollection():
		return "CatalogMap<" + f.Target() + ">"
	case f.IsReference():
		return "CatalogType*"
	}
	switch f.Scalar() {
	case field.ScalarString:
		return "std::string"
	case field.ScalarInt:
		return "int32_t"
	default:
		return "bool"
	}
}

type writer struct{ bytes.Buffer }

func (w *writer) p(format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

func (b *Backend) headerFile(t *gen.Type) []byte {
	w := &writer{}
	guard := "CATALOG_" + strings.ToUpper(t.Name) + "_H_"
	w.p("/* %s */", b.header)
	w.p("")
	w.p("#ifndef %s", guard)
	w.p("#define %s", guard)
	w.p("")
	w.p("#include <string>")
	w.p(`#include "catalogtype.h"`)
	w.p(`#include "catalogmap.h"`)
	w.p("")
	w.p("namespace catalog {")
	w.p("")
	for _, name := range t.ForwardDecls {
		w.p("class %s;", name)
	}
	if len(t.ForwardDecls) > 0 {
		w.p("")
	}
	if t.HasComment() {
		w.p("/**")
		w.p(" * %s", t.Comment)
		w.p(" */")
	}
	w.p("class %s : public CatalogType {", t.Name)
	w.p("    friend class Catalog;")
	w.p("    friend class CatalogMap<%s>;", t.Name)
	w.p("")
	w.p("protected:")
	w.p("    %s(Catalog * catalog, CatalogType * parent, const std::string &path, const std::string &name);", t.Name)
	for _, f := range t.Fields {
		w.p("    %s %s;", TypeOf(f), f.StorageName())
	}
	w.p("")
	w.p("    virtual void update();")
	w.p("")
	w.p("    virtual CatalogType * addChild(const std::string &collectionName, const std::string &name);")
	w.p("    virtual CatalogType * getChild(const std::string &collectionName, const std::string &childName) const;")
	w.p("    virtual bool removeChild(const std::string &collectionName, const std::string &childName);")
	w.p("")
	w.p("public:")
	w.p("    ~%s();", t.Name)
	w.p("")
	for _, f := range t.Fields {
		if f.HasComment() {
			w.p("    /** GETTER: %s */", f.Comment)
		}
		switch {
		case f.IsReference():
			w.p("    const %s * %s() const;", f.Target(), f.Name)
		case f.IsCollection():
			w.p("    const %s & %s() const;", TypeOf(f), f.Name)
		case f.Scalar() == field.ScalarString:
			w.p("    const std::string & %s() const;", f.Name)
		default:
			w.p("    %s %s() const;", TypeOf(f), f.Name)
		}
	}
	w.p("};")
	w.p("")
	w.p("} // namespace catalog")
	w.p("")
	w.p("#endif // %s", guard)
	return w.Bytes()
}

func (b *Backend) defFile(t *gen.Type) []byte {
	w := &writer{}
	w.p("/* %s */", b.header)
	w.p("")
	w.p("#include <cassert>")
	w.p("#include %q", t.FileBase()+".h")
	w.p(`#include "catalog.h"`)
	for _, name := range t.RefClasses {
		if name == t.Name {
			continue
		}
		w.p("#include %q", strings.ToLower(name)+".h")
	}
	w.p("")
	w.p("using namespace catalog;")
	w.p("using namespace std;")
	w.p("")

	b.constructor(w, t)
	b.destructor(w, t)
	b.update(w, t)
	b.addChild(w, t)
	b.getChild(w, t)
	b.removeChild(w, t)
	b.getters(w, t)

	return w.Bytes()
}

// constructor links the instance into the catalog graph. Each collection is
// constructed with its scoped path segment, and every non-collection field
// is registered in the generic value table read later by update().
func (b *Backend) constructor(w *writer, t *gen.Type) {
	w.p("%s::%s(Catalog *catalog, CatalogType *parent, const string &path, const string &name)", t.Name, t.Name)
	collections := t.Collections()
	base := ": CatalogType(catalog, parent, path, name)"
	if len(collections) > 0 {
		base += ","
	}
	w.p("%s", base)
	if len(collections) > 0 {
		inits := make([]string, len(collections))
		for i, f := range collections {
			inits[i] = fmt.Sprintf("%s(catalog, this, path + \"/\" + %q)", f.StorageName(), f.Name)
		}
		w.p("  %s", strings.Join(inits, ", "))
	}
	w.p("{")
	w.p("    CatalogValue value;")
	for _, f := range t.Fields {
		if f.IsCollection() {
			w.p("    m_childCollections[%q] = &%s;", f.Name, f.StorageName())
		} else {
			w.p("    m_fields[%q] = value;", f.Name)
		}
	}
	w.p("}")
	w.p("")
}

// destructor walks every owned collection and deletes each child exactly
// once. Child pointers are exclusively owned by their container; there is no
// shared ownership anywhere in the manual backend.
func (b *Backend) destructor(w *writer, t *gen.Type) {
	w.p("%s::~%s() {", t.Name, t.Name)
	for _, f := range t.Collections() {
		iter := strings.ToLower(f.Target()) + "_iter"
		w.p("    std::map<std::string, %s*>::const_iterator %s = %s.begin();", f.Target(), iter, f.StorageName())
		w.p("    while (%s != %s.end()) {", iter, f.StorageName())
		w.p("        delete %s->second;", iter)
		w.p("        %s++;", iter)
		w.p("    }")
		w.p("    %s.clear();", f.StorageName())
		w.p("")
	}
	w.p("}")
	w.p("")
}

// update refreshes each non-collection field's typed storage from the
// generic value table, using the same textual conventions as the managed
// backend's set().
func (b *Backend) update(w *writer, t *gen.Type) {
	w.p("void %s::update() {", t.Name)
	for _, f := range t.ValueFields() {
		switch {
		case f.IsReference():
			w.p("    %s = m_fields[%q].typeValue;", f.StorageName(), f.Name)
		case f.Scalar() == field.ScalarString:
			w.p("    %s = m_fields[%q].strValue.c_str();", f.StorageName(), f.Name)
		default:
			w.p("    %s = m_fields[%q].intValue;", f.StorageName(), f.Name)
		}
	}
	w.p("}")
	w.p("")
}

// addChild refuses to overwrite: an existing entry of the same name yields
// NULL, otherwise creation is delegated to the container.
func (b *Backend) addChild(w *writer, t *gen.Type) {
	w.p("CatalogType * %s::addChild(const std::string &collectionName, const std::string &childName) {", t.Name)
	for _, f := range t.Collections() {
		w.p("    if (collectionName.compare(%q) == 0) {", f.Name)
		w.p("        CatalogType *exists = %s.get(childName);", f.StorageName())
		w.p("        if (exists)")
		w.p("            return NULL;")
		w.p("        return %s.add(childName);", f.StorageName())
		w.p("    }")
	}
	w.p("    return NULL;")
	w.p("}")
	w.p("")
}

func (b *Backend) getChild(w *writer, t *gen.Type) {
	w.p("CatalogType * %s::getChild(const std::string &collectionName, const std::string &childName) const {", t.Name)
	for _, f := range t.Collections() {
		w.p("    if (collectionName.compare(%q) == 0)", f.Name)
		w.p("        return %s.get(childName);", f.StorageName())
	}
	w.p("    return NULL;")
	w.p("}")
	w.p("")
}

// removeChild asserts that the collection name itself is registered; a
// missing child within a valid collection is a plain boolean failure.
func (b *Backend) removeChild(w *writer, t *gen.Type) {
	w.p("bool %s::removeChild(const std::string &collectionName, const std::string &childName) {", t.Name)
	w.p("    assert (m_childCollections.find(collectionName) != m_childCollections.end());")
	for _, f := range t.Collections() {
		w.p("    if (collectionName.compare(%q) == 0) {", f.Name)
		w.p("        return %s.remove(childName);", f.StorageName())
		w.p("    }")
	}
	w.p("    return false;")
	w.p("}")
	w.p("")
}

func (b *Backend) getters(w *writer, t *gen.Type) {
	for _, f := range t.Fields {
		switch {
		case f.IsReference():
			w.p("const %s * %s::%s() const {", f.Target(), t.Name, f.Name)
			w.p("    return dynamic_cast<%s*>(%s);", f.Target(), f.StorageName())
			w.p("}")
		case f.IsCollection():
			w.p("const %s & %s::%s() const {", TypeOf(f), t.Name, f.Name)
			w.p("    return %s;", f.StorageName())
			w.p("}")
		case f.Scalar() == field.ScalarString:
			w.p("const string & %s::%s() const {", t.Name, f.Name)
			w.p("    return %s;", f.StorageName())
			w.p("}")
		default:
			w.p("%s %s::%s() const {", TypeOf(f), t.Name, f.Name)
			w.p("    return %s;", f.StorageName())
			w.p("}")
		}
		w.p("")
	}
}
