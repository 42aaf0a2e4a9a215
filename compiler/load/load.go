// Package load reads catalog class descriptor documents. A document is the
// YAML form of the descriptor model in the schema package; the legacy
// spec-text format is parsed outside this module behind schema.Parser.
package load

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/syssam/catgen/schema"
)

// Document is the top-level shape of a descriptor file:
//
//	classes:
//	  - name: Table
//	    comment: A table in the catalog
//	    fields:
//	      - {name: name, type: string}
//	      - {name: columns, type: "Column*"}
type Document struct {
	Classes []*schema.Class `yaml:"classes"`
}

// FromFile reads and decodes a descriptor document from disk.
func FromFile(path string) ([]*schema.Class, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: read descriptor document %s: %w", path, err)
	}
	classes, err := FromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("load: %s: %w", path, err)
	}
	return classes, nil
}

// FromBytes decodes a descriptor document. It checks only that names and
// type tokens are present; classification and target resolution happen when
// the gen.Graph is built.
func FromBytes(data []byte) ([]*schema.Class, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode descriptor document: %w", err)
	}
	if len(doc.Classes) == 0 {
		return nil, fmt.Errorf("descriptor document declares no classes")
	}
	for _, cls := range doc.Classes {
		if cls.Name == "" {
			return nil, fmt.Errorf("class with empty name")
		}
		for _, f := range cls.Fields {
			if f.Name == "" {
				return nil, fmt.Errorf("class %q: field with empty name", cls.Name)
			}
			if f.RawType == "" {
				return nil, fmt.Errorf("class %q: field %q has no type", cls.Name, f.Name)
			}
		}
	}
	return doc.Classes, nil
}
