// Package synth emits the generated sum type for one expansion.
//
// Go has no payload-carrying enums, so the sum is produced in the sealed
// interface encoding: one interface named after the function's declared
// error type, plus one struct per variant named Type_Variant, each
// carrying an Error method and the unexported sealing method. Variant
// order exactly follows first-occurrence order from the collection pass;
// downstream tooling may be order-sensitive and readers expect
// declaration order to mirror code-reading order.
package synth

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"unicode"
	"unicode/utf8"

	"github.com/aatifsyed/errgo/internal/shape"
)

// Result is the synthesized type definition, both as formatted source and
// as parsed declarations. The two are always consistent: the declarations
// are parsed from the source.
type Result struct {
	Source []byte
	Decls  []ast.Decl
	Fset   *token.FileSet
}

// Synthesize builds the sum type for the given spec. It is pure and
// deterministic; all validation has already happened upstream, so the only
// possible failures are internal rendering bugs.
func Synthesize(spec *shape.ErrorTypeSpec) (*Result, error) {
	var b bytes.Buffer

	writeAttrs(&b, spec.Attrs)
	fmt.Fprintf(&b, "type %s interface {\n", spec.Name)
	b.WriteString("\terror\n")
	fmt.Fprintf(&b, "\t%s()\n", sealMethod(spec.Name))
	b.WriteString("}\n")

	for _, v := range spec.Variants {
		b.WriteString("\n")
		writeAttrs(&b, v.Attrs)
		writeVariant(&b, spec.Name, v)
	}

	src, err := format.Source(b.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated type %s: %w", spec.Name, err)
	}
	if len(src) == 0 || src[len(src)-1] != '\n' {
		src = append(src, '\n')
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, spec.Name+".errgo.go", "package p\n\n"+string(src), parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("reparse generated type %s: %w", spec.Name, err)
	}

	return &Result{Source: src, Decls: file.Decls, Fset: fset}, nil
}

// VariantTypeName returns the generated struct name for a variant, the
// conventional generated-code spelling of Type::Variant.
func VariantTypeName(typeName, variant string) string {
	return typeName + "_" + variant
}

func writeVariant(b *bytes.Buffer, typeName string, v *shape.VariantShape) {
	name := VariantTypeName(typeName, v.Name)

	if len(v.Fields) == 0 {
		fmt.Fprintf(b, "type %s struct{}\n", name)
	} else {
		fmt.Fprintf(b, "type %s struct {\n", name)
		for _, f := range v.Fields {
			fmt.Fprintf(b, "\t%s %s\n", f.Name, f.TypeSrc)
		}
		b.WriteString("}\n")
	}

	b.WriteString("\n")
	fmt.Fprintf(b, "func (%s) Error() string { return %q }\n", name, v.Name)
	b.WriteString("\n")
	fmt.Fprintf(b, "func (%s) %s() {}\n", name, sealMethod(typeName))
}

// writeAttrs emits passthrough attributes verbatim, one comment line per
// attribute, in the order they were supplied.
func writeAttrs(b *bytes.Buffer, attrs []string) {
	for _, a := range attrs {
		fmt.Fprintf(b, "// %s\n", a)
	}
}

// sealMethod is the unexported method that closes the variant set.
func sealMethod(typeName string) string {
	r, size := utf8.DecodeRuneInString(typeName)
	if size == 0 {
		return "is"
	}
	return "is" + string(unicode.ToUpper(r)) + typeName[size:]
}
