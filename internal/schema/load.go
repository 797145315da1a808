package schema

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// #region documents

// Schema documents look like:
//
//	name: Enemy
//	package: behaviors
//	variants:
//	  - name: Idle
//	  - name: Chase
//	    fields:
//	      - name: target
//	        type: world.EntityID
//	        role: key
//	      - name: distance
//	        type: float32
//	        role: input
//
// Decoding is strict: unknown keys anywhere in the document are errors.

type document struct {
	Name     string       `yaml:"name"`
	Package  string       `yaml:"package"`
	Imports  []string     `yaml:"imports"`
	Variants []variantDoc `yaml:"variants"`
}

type variantDoc struct {
	Name   string     `yaml:"name"`
	Fields []fieldDoc `yaml:"fields"`
}

type fieldDoc struct {
	Name       string
	Type       string
	Role       string
	positional bool
}

// UnmarshalYAML decodes one field entry by hand: a scalar entry is a
// positional (unnamed) field, kept so validation can reject it with a
// message naming its position; a mapping entry must use only the keys
// name, type and role, each at most once.
func (f *fieldDoc) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		f.positional = true
		f.Type = node.Value
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: field entry must be a mapping or a bare type", node.Line)
	}
	seen := make(map[string]bool, 3)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		value := node.Content[i+1]
		if seen[key.Value] {
			return fmt.Errorf("line %d: field key %q given more than once", key.Line, key.Value)
		}
		seen[key.Value] = true
		switch key.Value {
		case "name":
			f.Name = value.Value
		case "type":
			f.Type = value.Value
		case "role":
			if value.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: field role must be a single scalar", value.Line)
			}
			f.Role = value.Value
		default:
			return fmt.Errorf("line %d: unknown field key %q, expected name, type or role", key.Line, key.Value)
		}
	}
	return nil
}

// #endregion documents

// #region loading

// Parse decodes and validates a schema document.
func Parse(data []byte) (*Schema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	s := doc.toSchema()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads and parses a schema file.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", path, err)
	}
	return s, nil
}

func (d *document) toSchema() *Schema {
	s := &Schema{
		Name:    d.Name,
		Package: d.Package,
		Imports: d.Imports,
	}
	for _, vd := range d.Variants {
		v := Variant{Name: vd.Name}
		for _, fd := range vd.Fields {
			v.Fields = append(v.Fields, Field{
				Name:       fd.Name,
				Type:       fd.Type,
				Role:       Role(fd.Role),
				positional: fd.positional,
			})
		}
		s.Variants = append(s.Variants, v)
	}
	return s
}

// #endregion loading
