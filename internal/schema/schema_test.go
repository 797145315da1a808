package schema

import (
	"strings"
	"testing"
)

// #region helpers

func validSchema() *Schema {
	return &Schema{
		Name:    "Enemy",
		Package: "behaviors",
		Variants: []Variant{
			{Name: "Idle"},
			{Name: "Chase", Fields: []Field{
				{Name: "target", Type: "world.EntityID", Role: RoleKey},
				{Name: "distance", Type: "float32", Role: RoleInput},
			}},
			{Name: "Flee", Fields: []Field{
				{Name: "threat", Type: "world.EntityID", Role: RoleKey},
				{Name: "regroup_at", Type: "float32", Role: RoleState},
			}},
		},
	}
}

func expectInvalid(t *testing.T, s *Schema, fragment string) {
	t.Helper()
	err := s.Validate()
	if err == nil {
		t.Fatalf("expected validation error containing %q", fragment)
	}
	if !strings.Contains(err.Error(), fragment) {
		t.Errorf("expected error containing %q, got: %v", fragment, err)
	}
}

// #endregion helpers

// #region validate-tests

func TestValidate_AcceptsWellFormedSchema(t *testing.T) {
	if err := validSchema().Validate(); err != nil {
		t.Fatalf("expected valid schema, got: %v", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(s *Schema)
		fragment string
	}{
		{"missing name", func(s *Schema) { s.Name = "" }, "missing name"},
		{"unexported name", func(s *Schema) { s.Name = "enemy" }, "exported Go identifier"},
		{"invalid name", func(s *Schema) { s.Name = "Enemy AI" }, "exported Go identifier"},
		{"invalid package", func(s *Schema) { s.Package = "my-pkg" }, "not a valid Go identifier"},
		{"no variants", func(s *Schema) { s.Variants = nil }, "no variants"},
		{"unexported variant", func(s *Schema) { s.Variants[0].Name = "idle" }, "exported Go identifier"},
		{"duplicate variant", func(s *Schema) { s.Variants[0].Name = "Chase" }, "declared twice"},
		{"unnamed field", func(s *Schema) { s.Variants[1].Fields[0].Name = "" }, "missing name"},
		{"duplicate field", func(s *Schema) { s.Variants[1].Fields[1].Name = "target" }, "declared twice"},
		{"missing type", func(s *Schema) { s.Variants[1].Fields[0].Type = "" }, "missing type"},
		{"missing role", func(s *Schema) { s.Variants[1].Fields[0].Role = "" }, "missing role"},
		{"unknown role", func(s *Schema) { s.Variants[1].Fields[0].Role = "mutable" }, "unknown role"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := validSchema()
			tc.mutate(s)
			expectInvalid(t, s, tc.fragment)
		})
	}
}

// Errors name the coordinates of the offending declaration.
func TestValidate_ErrorsCarryCoordinates(t *testing.T) {
	s := validSchema()
	s.Variants[1].Fields[0].Role = "mutable"
	err := s.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, fragment := range []string{"Enemy", "Chase", "target", "mutable"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("expected error to name %q, got: %v", fragment, err)
		}
	}
}

// #endregion validate-tests

// #region role-tests

func TestVariant_FieldsByRole(t *testing.T) {
	v := Variant{Name: "Attack", Fields: []Field{
		{Name: "target", Type: "string", Role: RoleKey},
		{Name: "range", Type: "float32", Role: RoleInput},
		{Name: "speed", Type: "float32", Role: RoleInput},
		{Name: "cooldown", Type: "float32", Role: RoleState},
	}}

	if keys := v.KeyFields(); len(keys) != 1 || keys[0].Name != "target" {
		t.Errorf("unexpected key fields: %v", keys)
	}
	inputs := v.InputFields()
	if len(inputs) != 2 || inputs[0].Name != "range" || inputs[1].Name != "speed" {
		t.Errorf("expected inputs in declaration order, got: %v", inputs)
	}
	if states := v.StateFields(); len(states) != 1 || states[0].Name != "cooldown" {
		t.Errorf("unexpected state fields: %v", states)
	}
}

func TestField_GoName(t *testing.T) {
	cases := map[string]string{
		"target":          "Target",
		"regroup_at":      "RegroupAt",
		"max_chase_speed": "MaxChaseSpeed",
		"x":               "X",
	}
	for in, want := range cases {
		f := Field{Name: in}
		if got := f.GoName(); got != want {
			t.Errorf("GoName(%q): expected %q, got %q", in, want, got)
		}
	}
}

// #endregion role-tests

// #region parse-tests

func TestParse_RoundTrip(t *testing.T) {
	doc := `
name: Enemy
package: behaviors
imports:
  - example.com/game/nav
variants:
  - name: Idle
  - name: Chase
    fields:
      - name: target
        type: world.EntityID
        role: key
      - name: distance
        type: float32
        role: input
`
	s, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Name != "Enemy" || s.Package != "behaviors" {
		t.Errorf("unexpected header: %+v", s)
	}
	if len(s.Imports) != 1 || s.Imports[0] != "example.com/game/nav" {
		t.Errorf("unexpected imports: %v", s.Imports)
	}
	if len(s.Variants) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(s.Variants))
	}
	chase := s.Variants[1]
	if len(chase.Fields) != 2 || chase.Fields[0].Role != RoleKey || chase.Fields[1].Role != RoleInput {
		t.Errorf("unexpected chase fields: %+v", chase.Fields)
	}
}

func TestParse_RejectsUnknownDocumentKey(t *testing.T) {
	doc := `
name: Enemy
flavour: spicy
variants:
  - name: Idle
`
	if _, err := Parse([]byte(doc)); err == nil {
		t.Fatal("expected error for unknown document key")
	}
}

func TestParse_RejectsUnknownFieldKey(t *testing.T) {
	doc := `
name: Enemy
variants:
  - name: Chase
    fields:
      - name: target
        type: string
        role: key
        default: none
`
	_, err := Parse([]byte(doc))
	if err == nil {
		t.Fatal("expected error for unknown field key")
	}
	if !strings.Contains(err.Error(), "default") {
		t.Errorf("expected error naming the unknown key, got: %v", err)
	}
}

func TestParse_RejectsDuplicateFieldKey(t *testing.T) {
	doc := `
name: Enemy
variants:
  - name: Chase
    fields:
      - name: target
        type: string
        type: int
        role: key
`
	_, err := Parse([]byte(doc))
	if err == nil {
		t.Fatal("expected error for duplicate field key")
	}
	if !strings.Contains(err.Error(), "more than once") {
		t.Errorf("expected duplicate-key error, got: %v", err)
	}
}

func TestParse_RejectsPositionalField(t *testing.T) {
	doc := `
name: Enemy
variants:
  - name: Chase
    fields:
      - float32
`
	_, err := Parse([]byte(doc))
	if err == nil {
		t.Fatal("expected error for positional field")
	}
	if !strings.Contains(err.Error(), "positional") {
		t.Errorf("expected positional-field error, got: %v", err)
	}
}

func TestParse_RejectsMultiRoleField(t *testing.T) {
	doc := `
name: Enemy
variants:
  - name: Chase
    fields:
      - name: target
        type: string
        role: [key, input]
`
	_, err := Parse([]byte(doc))
	if err == nil {
		t.Fatal("expected error for multiple roles on one field")
	}
	if !strings.Contains(err.Error(), "single scalar") {
		t.Errorf("expected single-scalar role error, got: %v", err)
	}
}

// #endregion parse-tests
