// Package codegen turns a validated suggestion schema into Go source: the
// kind discriminant, one behavior record per variant, the identity type,
// the suggestion union with its four transition operations, the record
// accessor, and the advisor instantiation helpers. The emitted file is the
// whole schema-specific surface; the decision engine itself stays generic.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"sort"
	"strings"

	"github.com/danielpatrickdp/utility-advisor/internal/schema"
)

// #region options

const modulePath = "github.com/danielpatrickdp/utility-advisor"

// Options controls one generation run.
type Options struct {
	// PackageName overrides the schema's package directive.
	PackageName string
	// Source names the schema document in the generated-file header.
	Source string
}

// #endregion options

// #region generate

// Generate validates the schema and renders its Go source, gofmt-formatted.
func Generate(s *schema.Schema, opts Options) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	pkg := opts.PackageName
	if pkg == "" {
		pkg = s.Package
	}
	if pkg == "" {
		return nil, fmt.Errorf("schema %q: no target package, set package in the schema or pass one to the generator", s.Name)
	}

	g := &generator{schema: s}
	g.header(pkg, opts.Source)
	g.imports()
	g.kinds()
	g.records()
	g.identity()
	g.suggestion()
	g.operations()
	g.accessor()
	g.advisorHelpers()

	out, err := format.Source(g.buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated code for schema %q: %w", s.Name, err)
	}
	return out, nil
}

// #endregion generate

// #region generator

type generator struct {
	schema *schema.Schema
	buf    bytes.Buffer
}

func (g *generator) pf(formatStr string, args ...any) {
	fmt.Fprintf(&g.buf, formatStr, args...)
}

func (g *generator) header(pkg, source string) {
	if source != "" {
		g.pf("// Code generated by advisorgen from %s. DO NOT EDIT.\n\n", source)
	} else {
		g.pf("// Code generated by advisorgen. DO NOT EDIT.\n\n")
	}
	g.pf("package %s\n\n", pkg)
}

func (g *generator) imports() {
	paths := []string{
		"fmt",
		modulePath + "/internal/advisor",
		modulePath + "/internal/pipeline",
		modulePath + "/internal/world",
	}
	paths = append(paths, g.schema.Imports...)
	sort.Strings(paths)
	paths = dedup(paths)

	g.pf("import (\n")
	for _, p := range paths {
		g.pf("\t%q\n", p)
	}
	g.pf(")\n\n")
}

// #endregion generator

// #region kinds

func (g *generator) kinds() {
	name := g.schema.Name
	g.pf("// %sKind discriminates the %s variants. Values double as slot indices.\n", name, name)
	g.pf("type %sKind uint8\n\n", name)

	g.pf("const (\n")
	for i, v := range g.schema.Variants {
		if i == 0 {
			g.pf("\t%s %sKind = iota\n", g.kindConst(v.Name), name)
		} else {
			g.pf("\t%s\n", g.kindConst(v.Name))
		}
	}
	g.pf(")\n\n")

	g.pf("// %sVariantCount sizes an entity's behavior slot table for this schema.\n", name)
	g.pf("const %sVariantCount = %d\n\n", name, len(g.schema.Variants))

	g.pf("// String returns the variant name.\n")
	g.pf("func (k %sKind) String() string {\n", name)
	g.pf("\tswitch k {\n")
	for _, v := range g.schema.Variants {
		g.pf("\tcase %s:\n", g.kindConst(v.Name))
		g.pf("\t\treturn %q\n", v.Name)
	}
	g.pf("\t}\n")
	g.pf("\treturn fmt.Sprintf(\"%sKind(%%d)\", uint8(k))\n", name)
	g.pf("}\n\n")
}

func (g *generator) kindConst(variant string) string {
	return g.schema.Name + "Kind" + variant
}

// #endregion kinds

// #region records

func (g *generator) records() {
	for _, v := range g.schema.Variants {
		recName := g.recordType(v.Name)
		g.pf("// %s is the behavior record attached while %s is active.\n", recName, v.Name)
		g.pf("type %s struct {\n", recName)
		for _, f := range v.Fields {
			g.pf("\t%s %s // %s\n", f.GoName(), f.Type, f.Role)
		}
		g.pf("}\n\n")
	}
}

func (g *generator) recordType(variant string) string {
	return g.schema.Name + variant
}

// #endregion records

// #region identity

func (g *generator) identity() {
	name := g.schema.Name
	idName := name + "Identity"

	g.pf("// %s identifies a %s suggestion by variant tag and key fields.\n", idName, name)
	g.pf("// Two suggestions are the same behavior iff their identities are equal.\n")
	g.pf("type %s struct {\n", idName)
	g.pf("\tKind %sKind\n", name)
	for _, v := range g.schema.Variants {
		for _, f := range v.KeyFields() {
			g.pf("\t%s %s\n", g.identityField(v.Name, f), f.Type)
		}
	}
	g.pf("}\n\n")

	g.pf("// String renders the identity for diagnostics and the decision journal.\n")
	g.pf("func (id %s) String() string {\n", idName)
	anyKeys := false
	for _, v := range g.schema.Variants {
		if len(v.KeyFields()) > 0 {
			anyKeys = true
		}
	}
	if anyKeys {
		g.pf("\tswitch id.Kind {\n")
		for _, v := range g.schema.Variants {
			keys := v.KeyFields()
			if len(keys) == 0 {
				continue
			}
			g.pf("\tcase %s:\n", g.kindConst(v.Name))
			var formatParts []string
			var args []string
			for _, f := range keys {
				formatParts = append(formatParts, f.Name+"=%v")
				args = append(args, "id."+g.identityField(v.Name, f))
			}
			g.pf("\t\treturn fmt.Sprintf(%q, %s)\n",
				v.Name+"("+strings.Join(formatParts, " ")+")", strings.Join(args, ", "))
		}
		g.pf("\t}\n")
	}
	g.pf("\treturn id.Kind.String()\n")
	g.pf("}\n\n")

	g.pf("// Detach schedules removal of the record for this identity's variant.\n")
	g.pf("func (id %s) Detach(cmd world.EntityCommands) {\n", idName)
	g.pf("\tcmd.Remove(int(id.Kind))\n")
	g.pf("}\n\n")
}

func (g *generator) identityField(variant string, f schema.Field) string {
	return variant + f.GoName()
}

// #endregion identity

// #region suggestion

func (g *generator) suggestion() {
	name := g.schema.Name
	sugName := name + "Suggestion"

	g.pf("// %s is one candidate %s behavior offered for a single cycle.\n", sugName, name)
	g.pf("type %s struct {\n", sugName)
	g.pf("\tKind %sKind\n", name)
	for _, v := range g.schema.Variants {
		g.pf("\t%s *%s\n", v.Name, g.recordType(v.Name))
	}
	g.pf("}\n\n")

	for _, v := range g.schema.Variants {
		ctor := name + v.Name + "Suggestion"
		g.pf("// %s builds a %s suggestion.\n", ctor, v.Name)
		var params []string
		for _, f := range v.Fields {
			params = append(params, g.paramName(f)+" "+f.Type)
		}
		g.pf("func %s(%s) %s {\n", ctor, strings.Join(params, ", "), sugName)
		if len(v.Fields) == 0 {
			g.pf("\treturn %s{Kind: %s, %s: &%s{}}\n", sugName, g.kindConst(v.Name), v.Name, g.recordType(v.Name))
		} else {
			g.pf("\treturn %s{Kind: %s, %s: &%s{\n", sugName, g.kindConst(v.Name), v.Name, g.recordType(v.Name))
			for _, f := range v.Fields {
				g.pf("\t\t%s: %s,\n", f.GoName(), g.paramName(f))
			}
			g.pf("\t}}\n")
		}
		g.pf("}\n\n")
	}
}

func (g *generator) paramName(f schema.Field) string {
	n := f.GoName()
	n = strings.ToLower(n[:1]) + n[1:]
	if token.IsKeyword(n) {
		n += "Arg"
	}
	return n
}

// #endregion suggestion

// #region operations

func (g *generator) operations() {
	name := g.schema.Name
	sugName := name + "Suggestion"

	// Identity: tag-preserving projection onto key fields.
	g.pf("// Identity projects the suggestion onto its variant tag and key fields.\n")
	g.pf("func (s %s) Identity() %sIdentity {\n", sugName, name)
	g.pf("\tid := %sIdentity{Kind: s.Kind}\n", name)
	anyKeys := false
	for _, v := range g.schema.Variants {
		if len(v.KeyFields()) > 0 {
			anyKeys = true
		}
	}
	if anyKeys {
		g.pf("\tswitch s.Kind {\n")
		for _, v := range g.schema.Variants {
			keys := v.KeyFields()
			if len(keys) == 0 {
				continue
			}
			g.pf("\tcase %s:\n", g.kindConst(v.Name))
			for _, f := range keys {
				g.pf("\t\tid.%s = s.%s.%s\n", g.identityField(v.Name, f), v.Name, f.GoName())
			}
		}
		g.pf("\t}\n")
	}
	g.pf("\treturn id\n")
	g.pf("}\n\n")

	// Attach: full initialization from every field, key, input and state.
	g.pf("// Attach schedules insertion of a behavior record populated from all of\n")
	g.pf("// the suggestion's fields; state fields are initialized here and never\n")
	g.pf("// overwritten again by the engine.\n")
	g.pf("func (s %s) Attach(cmd world.EntityCommands) {\n", sugName)
	g.pf("\tswitch s.Kind {\n")
	for _, v := range g.schema.Variants {
		g.pf("\tcase %s:\n", g.kindConst(v.Name))
		g.pf("\t\tcmd.Insert(int(%s), s.%s)\n", g.kindConst(v.Name), v.Name)
	}
	g.pf("\t}\n")
	g.pf("}\n\n")

	// Patch: input-only refresh against the attached record.
	g.pf("// Patch copies the suggestion's input fields into the record already\n")
	g.pf("// attached for its variant, leaving key and state fields untouched.\n")
	g.pf("// Returns advisor.ErrRecordMissing when the slot is empty.\n")
	g.pf("func (s %s) Patch(acc %sRecords) error {\n", sugName, name)
	g.pf("\tswitch s.Kind {\n")
	for _, v := range g.schema.Variants {
		g.pf("\tcase %s:\n", g.kindConst(v.Name))
		g.pf("\t\tif acc.%s == nil {\n", v.Name)
		g.pf("\t\t\treturn advisor.ErrRecordMissing\n")
		g.pf("\t\t}\n")
		for _, f := range v.InputFields() {
			g.pf("\t\tacc.%s.%s = s.%s.%s\n", v.Name, f.GoName(), v.Name, f.GoName())
		}
	}
	g.pf("\t}\n")
	g.pf("\treturn nil\n")
	g.pf("}\n\n")
}

// #endregion operations

// #region accessor

func (g *generator) accessor() {
	name := g.schema.Name
	accName := name + "Records"

	g.pf("// %s references whichever single %s record is currently attached.\n", accName, name)
	g.pf("type %s struct {\n", accName)
	for _, v := range g.schema.Variants {
		g.pf("\t%s *%s\n", v.Name, g.recordType(v.Name))
	}
	g.pf("}\n\n")

	g.pf("// View%s builds a record view over an entity's slot table.\n", accName)
	g.pf("func View%s(slots world.Slots) %s {\n", accName, accName)
	g.pf("\tvar acc %s\n", accName)
	for _, v := range g.schema.Variants {
		g.pf("\tif r, ok := slots.Get(int(%s)).(*%s); ok {\n", g.kindConst(v.Name), g.recordType(v.Name))
		g.pf("\t\tacc.%s = r\n", v.Name)
		g.pf("\t}\n")
	}
	g.pf("\treturn acc\n")
	g.pf("}\n\n")

	g.pf("// Active returns the kind of the attached record, if any.\n")
	g.pf("func (r %s) Active() (%sKind, bool) {\n", accName, name)
	for _, v := range g.schema.Variants {
		g.pf("\tif r.%s != nil {\n", v.Name)
		g.pf("\t\treturn %s, true\n", g.kindConst(v.Name))
		g.pf("\t}\n")
	}
	g.pf("\treturn 0, false\n")
	g.pf("}\n\n")

	g.pf("// Populated counts attached records; the engine keeps this at most one.\n")
	g.pf("func (r %s) Populated() int {\n", accName)
	g.pf("\tn := 0\n")
	for _, v := range g.schema.Variants {
		g.pf("\tif r.%s != nil {\n", v.Name)
		g.pf("\t\tn++\n")
		g.pf("\t}\n")
	}
	g.pf("\treturn n\n")
	g.pf("}\n\n")
}

// #endregion accessor

// #region advisor-helpers

func (g *generator) advisorHelpers() {
	name := g.schema.Name
	instantiation := fmt.Sprintf("%sSuggestion, %sIdentity, %sRecords", name, name, name)

	g.pf("// %sAdvisor is the decision engine instantiation for this schema.\n", name)
	g.pf("type %sAdvisor = advisor.Advisor[%s]\n\n", name, instantiation)

	g.pf("// New%sAdvisor creates an advisor with the given consistency bonus.\n", name)
	g.pf("func New%sAdvisor(consistencyBonus float32) *%sAdvisor {\n", name, name)
	g.pf("\treturn advisor.New[%s](consistencyBonus)\n", instantiation)
	g.pf("}\n\n")

	g.pf("// Grant%sAdvisor attaches a fresh advisor and slot table to the entity.\n", name)
	g.pf("func Grant%sAdvisor(e *world.Entity, consistencyBonus float32) *%sAdvisor {\n", name, name)
	g.pf("\tadv := New%sAdvisor(consistencyBonus)\n", name)
	g.pf("\te.GrantAdvisor(adv, %sVariantCount)\n", name)
	g.pf("\treturn adv\n")
	g.pf("}\n\n")

	g.pf("// %sAdvisorFor returns the entity's %s advisor, if granted.\n", name, name)
	g.pf("func %sAdvisorFor(e *world.Entity) (*%sAdvisor, bool) {\n", name, name)
	g.pf("\tadv, ok := e.Advisor().(*%sAdvisor)\n", name)
	g.pf("\treturn adv, ok\n")
	g.pf("}\n\n")

	g.pf("// %sUpdateSystem returns the Decide-phase stage for %s advisors.\n", name, name)
	g.pf("func %sUpdateSystem(sink advisor.Sink) pipeline.Stage {\n", name)
	g.pf("\treturn advisor.UpdateSystem[%s](View%sRecords, sink)\n", instantiation, name)
	g.pf("}\n\n")
}

// #endregion advisor-helpers

// #region helpers

func dedup(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || sorted[i-1] != s {
			out = append(out, s)
		}
	}
	return out
}

// #endregion helpers
