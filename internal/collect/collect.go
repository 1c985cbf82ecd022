package collect

import (
	"go/ast"
	"go/token"

	"github.com/aatifsyed/errgo/internal/diag"
	"github.com/aatifsyed/errgo/internal/shape"
)

// Result is the outcome of one collection pass: every marker call site in
// source order, plus the deduplicated shape catalog.
type Result struct {
	Sites   []*shape.CallSite
	Catalog *shape.Catalog
}

// Collect walks the function body depth-first, left to right, and records
// every marker invocation. The walk descends into nested blocks, function
// literals, switch and select arms, loop bodies and argument lists; the
// input AST is left untouched.
//
// The first malformed or conflicting site aborts the pass with a
// *diag.Diagnostic.
func Collect(
	fset *token.FileSet,
	src []byte,
	file *ast.File,
	fn *ast.FuncDecl,
	markerPath string,
) (*Result, error) {
	res := &Result{Catalog: shape.NewCatalog()}

	pkg, ok := markerPackageName(file, markerPath)
	if !ok || fn.Body == nil {
		return res, nil
	}

	sc := source{file: fset.File(fn.Pos()), src: src}
	index := newSpanIndex()

	var failure *diag.Diagnostic
	ast.Inspect(fn.Body, func(n ast.Node) bool {
		if failure != nil {
			return false
		}
		call, ok := n.(*ast.CallExpr)
		if !ok || !isMarker(call, pkg) {
			return true
		}

		span := diag.NodeSpan(call)
		if outer, overlaps := index.insert(span); overlaps {
			failure = diag.Errorf(diag.ERRGO002MalformedShape, span,
				"marker invocation may not appear inside another marker invocation").
				WithNote(outer, "enclosing marker invocation")
			return false
		}

		s, d := parseShape(sc, call, pkg)
		if d != nil {
			failure = d
			return false
		}
		site, d := res.Catalog.Add(span, s)
		if d != nil {
			failure = d
			return false
		}
		res.Sites = append(res.Sites, site)

		// Keep descending: value expressions may contain further marker
		// invocations, which the span index then rejects as nested.
		return true
	})

	if failure != nil {
		return nil, failure
	}
	return res, nil
}
