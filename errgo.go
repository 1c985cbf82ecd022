package errgo

import (
	"go/ast"
	"go/token"
	"go/types"

	"github.com/aatifsyed/errgo/internal/collect"
	"github.com/aatifsyed/errgo/internal/diag"
	"github.com/aatifsyed/errgo/internal/rewrite"
	"github.com/aatifsyed/errgo/internal/shape"
	"github.com/aatifsyed/errgo/internal/synth"
)

// DefaultMarkerPath is the import path marker invocations are recognized
// under unless overridden through Args.
const DefaultMarkerPath = "github.com/aatifsyed/errgo"

// Args carries the per-expansion arguments a front-end supplies.
type Args struct {
	// Attrs are opaque type-level attribute lines, forwarded verbatim as
	// comment lines above the generated type, in order.
	Attrs []string

	// MarkerPath overrides the marker package's import path.
	// DefaultMarkerPath applies when empty.
	MarkerPath string
}

func (a Args) markerPath() string {
	if a.MarkerPath == "" {
		return DefaultMarkerPath
	}
	return a.MarkerPath
}

// Expansion is the output of one successful expansion: the generated type
// definition and the rewritten function, each as both formatted source
// and parsed syntax, plus the text edits that turn the original marker
// spans into construction expressions.
type Expansion struct {
	Spec *ErrorTypeSpec

	// TypeSource and TypeDecls are the generated sum type definition.
	TypeSource []byte
	TypeDecls  []ast.Decl

	// FuncSource and Func are the rewritten function declaration. All
	// bytes outside marker spans are identical to the input.
	FuncSource []byte
	Func       *ast.FuncDecl

	// Edits are the marker replacements, as offsets into the source the
	// function was parsed from.
	Edits []Edit
}

// Expand runs the whole pipeline for one annotated function: validate the
// signature, collect marker shapes, synthesize the sum type, rewrite the
// body. src must be the bytes file and fn were parsed from, with fset
// offsets intact.
//
// The first detected failure aborts the expansion and is returned as a
// *Diagnostic; no partial output is ever produced.
func Expand(
	fset *token.FileSet,
	src []byte,
	file *ast.File,
	fn *ast.FuncDecl,
	args Args,
) (*Expansion, error) {
	name, d := errorTypeName(file, fn)
	if d != nil {
		return nil, d
	}

	col, err := collect.Collect(fset, src, file, fn, args.markerPath())
	if err != nil {
		return nil, err
	}

	spec := &shape.ErrorTypeSpec{
		Name:     name,
		Exported: ast.IsExported(name),
		Attrs:    args.Attrs,
		Variants: col.Catalog.Variants(),
	}

	ty, err := synth.Synthesize(spec)
	if err != nil {
		return nil, err
	}
	rw, err := rewrite.Rewrite(fset, src, fn, name, col.Sites)
	if err != nil {
		return nil, err
	}

	return &Expansion{
		Spec:       spec,
		TypeSource: ty.Source,
		TypeDecls:  ty.Decls,
		FuncSource: rw.Source,
		Func:       rw.Func,
		Edits:      rw.Edits,
	}, nil
}

// errorTypeName validates the function's signature and extracts the name
// of the type to generate. The function must return exactly two results;
// the trailing result is the error slot and must reduce to a simple name:
// a plain identifier, or a selector of which only the final segment is
// used (a documented identity). The name must not be predeclared and must
// not already be declared in this file.
func errorTypeName(file *ast.File, fn *ast.FuncDecl) (string, *diag.Diagnostic) {
	sig := diag.NodeSpan(fn.Type)

	results := fn.Type.Results
	if results == nil || countFields(results) != 2 {
		return "", diag.Errorf(diag.ERRGO001UnsupportedSignature, sig,
			"function %s must return exactly two results (T, E)", fn.Name.Name)
	}

	last := results.List[len(results.List)-1]
	var name string
	switch t := last.Type.(type) {
	case *ast.Ident:
		name = t.Name
	case *ast.SelectorExpr:
		name = t.Sel.Name
	default:
		return "", diag.Errorf(diag.ERRGO001UnsupportedSignature, diag.NodeSpan(last.Type),
			"error result of %s must be a simple type name", fn.Name.Name)
	}

	if types.Universe.Lookup(name) != nil {
		return "", diag.Errorf(diag.ERRGO001UnsupportedSignature, diag.NodeSpan(last.Type),
			"error result of %s names the predeclared type %s", fn.Name.Name, name)
	}
	if prior := declaredType(file, name); prior != nil {
		return "", diag.Errorf(diag.ERRGO001UnsupportedSignature, diag.NodeSpan(last.Type),
			"type %s is already declared in this file", name).
			WithNote(diag.NodeSpan(prior), "%s declared here", name)
	}

	return name, nil
}

func countFields(fl *ast.FieldList) int {
	n := 0
	for _, f := range fl.List {
		if len(f.Names) == 0 {
			n++
		} else {
			n += len(f.Names)
		}
	}
	return n
}

func declaredType(file *ast.File, name string) *ast.TypeSpec {
	for _, d := range file.Decls {
		gd, ok := d.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, s := range gd.Specs {
			if ts, ok := s.(*ast.TypeSpec); ok && ts.Name.Name == name {
				return ts
			}
		}
	}
	return nil
}
