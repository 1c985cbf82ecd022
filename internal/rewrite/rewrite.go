// Package rewrite implements the substitution pass: every marker
// invocation is replaced, in place, by a direct construction expression of
// the generated type. The replacement is computed as text edits against
// the original source bytes, so every byte outside a marker span is
// carried over unchanged and value expressions keep their exact relative
// evaluation positions.
package rewrite

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"sort"
	"strings"

	"github.com/aatifsyed/errgo/internal/shape"
	"github.com/aatifsyed/errgo/internal/synth"
)

// Edit replaces the bytes of the half-open range [Off,End) with Text.
// Offsets address the same source slice the function was parsed from.
type Edit struct {
	Off  int
	End  int
	Text string
}

// Result is the rewritten function: the edits that produce it, the
// resulting declaration text, and that text re-parsed.
type Result struct {
	Edits  []Edit
	Source []byte
	Func   *ast.FuncDecl
}

// Rewrite replaces every call site with a construction expression of the
// named type. Field values are copied byte-for-byte from the call site,
// reordered to the canonical field order of the variant's first
// occurrence; unit-like shapes construct an empty literal.
func Rewrite(
	fset *token.FileSet,
	src []byte,
	fn *ast.FuncDecl,
	typeName string,
	sites []*shape.CallSite,
) (*Result, error) {
	tf := fset.File(fn.Pos())

	edits := make([]Edit, 0, len(sites))
	for _, site := range sites {
		edits = append(edits, Edit{
			Off:  tf.Offset(site.Span.Pos),
			End:  tf.Offset(site.Span.End),
			Text: Construction(typeName, site),
		})
	}

	fnOff := tf.Offset(fn.Pos())
	fnEnd := tf.Offset(fn.End())
	local := make([]Edit, len(edits))
	for i, e := range edits {
		local[i] = Edit{Off: e.Off - fnOff, End: e.End - fnOff, Text: e.Text}
	}
	text, err := Apply(src[fnOff:fnEnd], local)
	if err != nil {
		return nil, err
	}

	decl, err := parseFuncDecl(text)
	if err != nil {
		return nil, fmt.Errorf("reparse rewritten %s: %w", fn.Name.Name, err)
	}

	return &Result{Edits: edits, Source: text, Func: decl}, nil
}

// Construction renders the replacement expression for one call site.
func Construction(typeName string, site *shape.CallSite) string {
	name := synth.VariantTypeName(typeName, site.Shape.Name)
	if site.Shape.UnitLike() {
		return name + "{}"
	}
	var b strings.Builder
	b.WriteString(name)
	b.WriteString("{")
	for i, v := range site.Values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.Name)
		b.WriteString(": ")
		b.WriteString(v.ValueSrc)
	}
	b.WriteString("}")
	return b.String()
}

// Apply splices the edits into src and returns the result. Edits must be
// disjoint; they are applied back to front so earlier offsets stay valid.
// A pure insertion (Off==End) may share its offset with the start of a
// replacement and is applied after it.
func Apply(src []byte, edits []Edit) ([]byte, error) {
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Off != sorted[j].Off {
			return sorted[i].Off > sorted[j].Off
		}
		return sorted[i].End > sorted[j].End
	})

	out := make([]byte, len(src))
	copy(out, src)
	prev := len(src) + 1
	for _, e := range sorted {
		if e.Off < 0 || e.End < e.Off || e.End > len(src) {
			return nil, fmt.Errorf("edit range [%d,%d) out of bounds", e.Off, e.End)
		}
		if e.End > prev {
			return nil, fmt.Errorf("overlapping edit at offset %d", e.Off)
		}
		prev = e.Off
		out = append(out[:e.Off], append([]byte(e.Text), out[e.End:]...)...)
	}
	return out, nil
}

func parseFuncDecl(text []byte) (*ast.FuncDecl, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "rewritten.go", "package p\n\n"+string(text), parser.ParseComments)
	if err != nil {
		return nil, err
	}
	for _, d := range file.Decls {
		if fd, ok := d.(*ast.FuncDecl); ok {
			return fd, nil
		}
	}
	return nil, fmt.Errorf("no function declaration in rewritten text")
}
