// Package java implements the managed backend: one Java class per catalog
// entity, extending the hand-written CatalogType runtime base. Generated
// classes store fields by value, hold references behind deferred path-based
// handles, own child collections as CatalogMap containers, and implement the
// textual field protocol (getField/set), deep field copy and shallow
// structural equality.
package java

import (
	"bytes"
	"fmt"

	"github.com/syssam/catgen/compiler/gen"
	"github.com/syssam/catgen/schema/field"
)

// supportFiles is the fixed set of hand-written runtime sources copied
// verbatim into the output root on every run.
var supportFiles = []string{
	"Catalog.java",
	"CatalogType.java",
	"CatalogMap.java",
	"CatalogException.java",
	"CatalogChangeGroup.java",
	"CatalogDiffEngine.java",
	"FilteredCatalogDiffEngine.java",
}

// Backend emits the managed-backend source tree.
type Backend struct {
	out     string
	support string
	pkg     string
	header  string
}

// New creates the managed backend from the run configuration.
func New(cfg *gen.Config) *Backend {
	return &Backend{
		out:     cfg.JavaOut,
		support: cfg.JavaSupport,
		pkg:     cfg.JavaPackage,
		header:  cfg.Header,
	}
}

// Name implements gen.Backend.
func (b *Backend) Name() string { return "java" }

// OutDir implements gen.Backend.
func (b *Backend) OutDir() string { return b.out }

// SupportDir implements gen.Backend.
func (b *Backend) SupportDir() string { return b.support }

// SupportFiles implements gen.Backend.
func (b *Backend) SupportFiles() []string { return supportFiles }

// Files renders one <ClassName>.java per type, in descriptor order.
func (b *Backend) Files(g *gen.Graph) ([]gen.File, error) {
	files := make([]gen.File, 0, len(g.Nodes))
	for _, t := range g.Nodes {
		files = append(files, gen.File{
			Name: t.Name + ".java",
			Body: b.classFile(t),
		})
	}
	return files, nil
}

// TypeOf returns the Java storage type of a field: String/int/boolean for
// scalars, the target class for references (behind a handle), and
// CatalogMap<Target> for collections.
func TypeOf(f *gen.Field) string {
	switch {
	case f.IsCollection():
		return "CatalogMap<" + f.Target() + ">"
	case f.IsReference():
		return f.Target()
	}
	switch f.Scalar() {
	case field.ScalarString:
		return "String"
	case field.ScalarInt:
		return "int"
	default:
		return "boolean"
	}
}

type writer struct{ bytes.Buffer }

func (w *writer) p(format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

func (b *Backend) classFile(t *gen.Type) []byte {
	w := &writer{}
	w.p("/* %s */", b.header)
	w.p("")
	w.p("package %s;", b.pkg)
	w.p("")
	if t.HasComment() {
		w.p("/**")
		w.p(" * %s", t.Comment)
		w.p(" */")
	}
	w.p("public class %s extends CatalogType {", t.Name)
	w.p("")

	b.storage(w, t)
	b.setBaseValues(w, t)
	b.fieldLists(w, t)
	b.getField(w, t)
	b.getters(w, t)
	b.setters(w, t)
	b.set(w, t)
	b.copyFields(w, t)
	b.equals(w, t)

	w.p("}")
	return w.Bytes()
}

// storage declares one member per field. Strings initialize to an empty
// String, references to an empty unresolved handle; collections are
// constructed later in setBaseValues because the container needs the parent
// map's depth, which exists only after attachment to the catalog graph.
func (b *Backend) storage(w *writer, t *gen.Type) {
	for _, f := range t.Fields {
		switch {
		case f.IsReference():
			w.p("    Catalog.CatalogReference<%s> %s = new CatalogReference<>();", TypeOf(f), f.StorageName())
		case f.IsScalar() && f.Scalar() == field.ScalarString:
			w.p("    String %s = new String();", f.StorageName())
		default:
			w.p("    %s %s;", TypeOf(f), f.StorageName())
		}
	}
	w.p("")
}

func (b *Backend) setBaseValues(w *writer, t *gen.Type) {
	w.p("    void setBaseValues(CatalogMap<? extends CatalogType> parentMap, String name) {")
	w.p("        super.setBaseValues(parentMap, name);")
	for _, f := range t.Collections() {
		w.p("        %s = new %s(getCatalog(), this, %q, %s.class, m_parentMap.m_depth + 1);",
			f.StorageName(), TypeOf(f), f.Name, f.Target())
	}
	w.p("    }")
	w.p("")
}

// fieldLists emits getFields (non-collection names, descriptor order) and
// getChildCollections (collection names, descriptor order).
func (b *Backend) fieldLists(w *writer, t *gen.Type) {
	w.p("    public String[] getFields() {")
	w.p("        return new String[] {")
	for _, f := range t.ValueFields() {
		w.p("            %q,", f.Name)
	}
	w.p("        };")
	w.p("    };")
	w.p("")
	w.p("    String[] getChildCollections() {")
	w.p("        return new String[] {")
	for _, f := range t.Collections() {
		w.p("            %q,", f.Name)
	}
	w.p("        };")
	w.p("    };")
	w.p("")
}

// getField dispatches by name over every field, collections included. The
// switch is exhaustive over the declared fields; an unknown name throws,
// which is the generated program's contract, not the generator's.
func (b *Backend) getField(w *writer, t *gen.Type) {
	w.p("    public Object getField(String field) {")
	w.p("        switch (field) {")
	for _, f := range t.Fields {
		w.p("        case %q:", f.Name)
		w.p("            return get%s();", f.Accessor())
	}
	w.p("        default:")
	w.p("            throw new CatalogException(\"Unknown field\");")
	w.p("        }")
	w.p("    }")
	w.p("")
}

func (b *Backend) getters(w *writer, t *gen.Type) {
	for _, f := range t.Fields {
		if f.HasComment() {
			w.p("    /** GETTER: %s */", f.Comment)
		}
		w.p("    public %s get%s() {", TypeOf(f), f.Accessor())
		if f.IsReference() {
			w.p("        return %s.get();", f.StorageName())
		} else {
			w.p("        return %s;", f.StorageName())
		}
		w.p("    }")
		w.p("")
	}
}

// setters covers non-collection fields only. Reference setters go through
// the handle rather than assigning a resolved object; resolution happens in
// a later linking pass outside the generated classes.
func (b *Backend) setters(w *writer, t *gen.Type) {
	for _, f := range t.ValueFields() {
		if f.HasComment() {
			w.p("    /** SETTER: %s */", f.Comment)
		}
		w.p("    public void set%s(%s value) {", f.Accessor(), TypeOf(f))
		if f.IsReference() {
			w.p("        %s.set(value);", f.StorageName())
		} else {
			w.p("        %s = value;", f.StorageName())
		}
		w.p("    }")
		w.p("")
	}
}

// set parses a raw textual value into the field's native representation:
// base-10 ints, case-sensitive boolean literals, quoted strings with a
// leading-"null" sentinel, and reference paths where "null" means unresolved
// with no path. The manual backend's update() applies the same conventions
// so both backends read the same persisted text identically.
func (b *Backend) set(w *writer, t *gen.Type) {
	w.p("    @Override")
	w.p("    void set(String field, String value) {")
	w.p("        if ((field == null) || (value == null)) {")
	w.p("            throw new CatalogException(\"Null value where it shouldn't be.\");")
	w.p("        }")
	w.p("")
	w.p("        switch (field) {")
	for _, f := range t.ValueFields() {
		w.p("        case %q:", f.Name)
		switch {
		case f.IsReference():
			w.p("            value = value.trim();")
			w.p("            if (value.startsWith(\"null\")) value = null;")
			w.p("            assert((value == null) || value.startsWith(\"/\"));")
			w.p("            %s.setUnresolved(value);", f.StorageName())
		case f.Scalar() == field.ScalarInt:
			w.p("            assert(value != null);")
			w.p("            %s = Integer.parseInt(value);", f.StorageName())
		case f.Scalar() == field.ScalarBool:
			w.p("            assert(value != null);")
			w.p("            %s = Boolean.parseBoolean(value);", f.StorageName())
		default:
			w.p("            value = value.trim();")
			w.p("            if (value.startsWith(\"null\")) value = null;")
			w.p("            if (value != null) {")
			w.p("                assert(value.startsWith(\"\\\"\") && value.endsWith(\"\\\"\"));")
			w.p("                value = value.substring(1, value.length() - 1);")
			w.p("            }")
			w.p("            %s = value;", f.StorageName())
		}
		w.p("            break;")
	}
	w.p("        default:")
	w.p("            throw new CatalogException(\"Unknown field\");")
	w.p("        }")
	w.p("    }")
	w.p("")
}

// copyFields copies scalars by value, references by unresolved path (not by
// resolved identity), and collections by recursive copyFrom (deep).
func (b *Backend) copyFields(w *writer, t *gen.Type) {
	w.p("    @Override")
	w.p("    void copyFields(CatalogType obj) {")
	if len(t.Fields) > 0 {
		w.p("        // this is safe from the caller")
		w.p("        %s other = (%s) obj;", t.Name, t.Name)
		w.p("")
		for _, f := range t.Fields {
			switch {
			case f.IsCollection():
				w.p("        other.%s.copyFrom(%s);", f.StorageName(), f.StorageName())
			case f.IsReference():
				w.p("        other.%s.setUnresolved(%s.getPath());", f.StorageName(), f.StorageName())
			default:
				w.p("        other.%s = %s;", f.StorageName(), f.StorageName())
			}
		}
	}
	w.p("    }")
	w.p("")
}

// equals compares the declared non-collection fields only. Child collection
// contents are excluded on purpose: equality is shallow over declared
// fields while copyFields is deep for collections.
func (b *Backend) equals(w *writer, t *gen.Type) {
	w.p("    public boolean equals(Object obj) {")
	w.p("        // this isn't really the convention for null handling")
	w.p("        if ((obj == null) || (obj.getClass().equals(getClass()) == false))")
	w.p("            return false;")
	w.p("")
	w.p("        // Do the identity check")
	w.p("        if (obj == this)")
	w.p("            return true;")
	w.p("")
	w.p("        // this is safe because of the class check")
	w.p("        // it is also known that the childCollections var will be the same")
	w.p("        //  from the class check")
	w.p("        %s other = (%s) obj;", t.Name, t.Name)
	w.p("")
	w.p("        // are the fields the same? (deep compare, skipping child collections)")
	for _, f := range t.ValueFields() {
		if f.IsScalar() && f.Scalar() != field.ScalarString {
			w.p("        if (%s != other.%s) return false;", f.StorageName(), f.StorageName())
			continue
		}
		w.p("        if ((%s == null) != (other.%s == null)) return false;", f.StorageName(), f.StorageName())
		w.p("        if ((%s != null) && !%s.equals(other.%s)) return false;", f.StorageName(), f.StorageName(), f.StorageName())
	}
	w.p("")
	w.p("        return true;")
	w.p("    }")
	w.p("")
}
