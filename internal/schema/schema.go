// Package schema models the declarative suggestion schema the generator
// compiles: an ordered list of behavior variants, each with named fields,
// each field carrying exactly one role. Validation here is the only fatal
// error path in the system; everything downstream of a valid schema is
// recoverable.
package schema

import (
	"fmt"
	"go/token"
)

// #region roles

// Role classifies how a variant field behaves once its behavior is chosen.
type Role string

const (
	// RoleKey fields carry identity: two suggestions of the same variant
	// are the same behavior iff their key fields are equal.
	RoleKey Role = "key"
	// RoleInput fields are refreshed every cycle the suggestion wins again.
	RoleInput Role = "input"
	// RoleState fields are initialized once at variant entry and then owned
	// by whatever system acts on the behavior.
	RoleState Role = "state"
)

func (r Role) valid() bool {
	switch r {
	case RoleKey, RoleInput, RoleState:
		return true
	}
	return false
}

// #endregion roles

// #region model

// Field is one named, role-tagged field of a variant.
type Field struct {
	Name string
	Type string
	Role Role

	// positional marks a field that was declared as a bare type with no
	// name; Validate rejects it.
	positional bool
}

// Variant is one alternative behavior in the schema, in declaration order.
type Variant struct {
	Name   string
	Fields []Field
}

// KeyFields returns the variant's key-role fields in declaration order.
func (v *Variant) KeyFields() []Field {
	return v.fieldsWithRole(RoleKey)
}

// InputFields returns the variant's input-role fields in declaration order.
func (v *Variant) InputFields() []Field {
	return v.fieldsWithRole(RoleInput)
}

// StateFields returns the variant's state-role fields in declaration order.
func (v *Variant) StateFields() []Field {
	return v.fieldsWithRole(RoleState)
}

func (v *Variant) fieldsWithRole(r Role) []Field {
	var out []Field
	for _, f := range v.Fields {
		if f.Role == r {
			out = append(out, f)
		}
	}
	return out
}

// Schema is a full suggestion schema document.
type Schema struct {
	// Name prefixes every generated type, e.g. "Enemy".
	Name string
	// Package is the target package for generated code. The generator flag
	// can override it.
	Package string
	// Imports lists extra import paths the field types need.
	Imports []string
	// Variants in declaration order; order fixes the slot indices.
	Variants []Variant
}

// #endregion model

// #region validate

// Validate checks the schema and returns the first problem found, naming
// the offending variant and field. A schema that passes Validate always
// generates compilable code.
func (s *Schema) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("schema: missing name")
	}
	if !token.IsIdentifier(s.Name) || !token.IsExported(s.Name) {
		return fmt.Errorf("schema: name %q must be an exported Go identifier", s.Name)
	}
	if s.Package != "" && !token.IsIdentifier(s.Package) {
		return fmt.Errorf("schema %q: package %q is not a valid Go identifier", s.Name, s.Package)
	}
	if len(s.Variants) == 0 {
		return fmt.Errorf("schema %q: no variants declared", s.Name)
	}

	seenVariants := make(map[string]bool, len(s.Variants))
	for vi := range s.Variants {
		v := &s.Variants[vi]
		if v.Name == "" {
			return fmt.Errorf("schema %q: variant %d: missing name", s.Name, vi)
		}
		if !token.IsIdentifier(v.Name) || !token.IsExported(v.Name) {
			return fmt.Errorf("schema %q: variant %q must be an exported Go identifier", s.Name, v.Name)
		}
		if seenVariants[v.Name] {
			return fmt.Errorf("schema %q: variant %q declared twice", s.Name, v.Name)
		}
		seenVariants[v.Name] = true

		if err := validateFields(s.Name, v); err != nil {
			return err
		}
	}
	return nil
}

func validateFields(schemaName string, v *Variant) error {
	seen := make(map[string]bool, len(v.Fields))
	for fi := range v.Fields {
		f := &v.Fields[fi]
		if f.positional {
			return fmt.Errorf("schema %q: variant %q: field %d: positional (unnamed) fields are unsupported, give the field a name",
				schemaName, v.Name, fi)
		}
		if f.Name == "" {
			return fmt.Errorf("schema %q: variant %q: field %d: missing name", schemaName, v.Name, fi)
		}
		if !token.IsIdentifier(goFieldName(f.Name)) {
			return fmt.Errorf("schema %q: variant %q: field %q: not a valid identifier", schemaName, v.Name, f.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("schema %q: variant %q: field %q declared twice", schemaName, v.Name, f.Name)
		}
		seen[f.Name] = true

		if f.Type == "" {
			return fmt.Errorf("schema %q: variant %q: field %q: missing type", schemaName, v.Name, f.Name)
		}
		if f.Role == "" {
			return fmt.Errorf("schema %q: variant %q: field %q: missing role, tag it key, input or state",
				schemaName, v.Name, f.Name)
		}
		if !f.Role.valid() {
			return fmt.Errorf("schema %q: variant %q: field %q: unknown role %q, expected key, input or state",
				schemaName, v.Name, f.Name, f.Role)
		}
	}
	return nil
}

// #endregion validate

// #region naming

// GoName converts a snake_case schema field name to the exported Go field
// name used in generated records.
func (f *Field) GoName() string {
	return goFieldName(f.Name)
}

func goFieldName(name string) string {
	out := make([]rune, 0, len(name))
	upperNext := true
	for _, r := range name {
		if r == '_' {
			upperNext = true
			continue
		}
		if upperNext {
			if 'a' <= r && r <= 'z' {
				r = r - 'a' + 'A'
			}
			upperNext = false
		}
		out = append(out, r)
	}
	return string(out)
}

// #endregion naming
