package errgo

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/aatifsyed/errgo/internal/rewrite"
)

// Directives recognized in a function's doc comment. The annotate line
// marks the function for expansion; each attr line contributes one opaque
// type-level attribute, verbatim. Both are consumed by the expansion.
const (
	directiveAnnotate = "//errgo:errors"
	directiveAttr     = "//errgo:attr "
)

// FuncExpansion is one expanded function within a file, with the
// whole-file edits that realize it: the generated type spliced
// immediately before the function, the directive lines removed, and every
// marker invocation replaced.
type FuncExpansion struct {
	Func      *ast.FuncDecl
	Expansion *Expansion
	Edits     []Edit
}

// FileResult is the outcome of expanding every annotated function in one
// file. Output is the complete rewritten file; when nothing in the file
// is annotated it is the input, unchanged.
type FileResult struct {
	Funcs  []*FuncExpansion
	Output []byte
}

// ExpandFile expands every function in the file whose doc comment carries
// the //errgo:errors directive. Per-function attribute lines are appended
// after args.Attrs. Once all functions are expanded, the marker import is
// dropped if nothing in the file still references it.
//
// The first failing function aborts the whole file; no partial output.
func ExpandFile(fset *token.FileSet, src []byte, file *ast.File, args Args) (*FileResult, error) {
	tf := fset.File(file.Pos())
	res := &FileResult{}

	var all []Edit
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		annotated, attrs, lines := functionDirectives(fn)
		if !annotated {
			continue
		}

		fnArgs := args
		fnArgs.Attrs = append(append([]string(nil), args.Attrs...), attrs...)
		exp, err := Expand(fset, src, file, fn, fnArgs)
		if err != nil {
			return nil, err
		}

		edits := make([]Edit, 0, len(exp.Edits)+len(lines)+1)

		// The generated type goes immediately before the function,
		// above its doc comment.
		insOff := tf.Offset(fn.Pos())
		if fn.Doc != nil {
			insOff = tf.Offset(fn.Doc.Pos())
		}
		edits = append(edits, Edit{Off: insOff, End: insOff, Text: string(exp.TypeSource) + "\n"})

		// The expansion consumes its directive lines.
		for _, c := range lines {
			off, end := tf.Offset(c.Pos()), tf.Offset(c.End())
			if end < len(src) && src[end] == '\n' {
				end++
			}
			edits = append(edits, Edit{Off: off, End: end})
		}

		edits = append(edits, exp.Edits...)

		res.Funcs = append(res.Funcs, &FuncExpansion{Func: fn, Expansion: exp, Edits: edits})
		all = append(all, edits...)
	}

	if len(res.Funcs) == 0 {
		res.Output = src
		return res, nil
	}

	out, err := rewrite.Apply(src, all)
	if err != nil {
		return nil, err
	}
	out, err = trimMarkerImport(out, args.markerPath())
	if err != nil {
		return nil, err
	}
	res.Output = out
	return res, nil
}

// Annotated reports whether fn carries the //errgo:errors directive.
func Annotated(fn *ast.FuncDecl) bool {
	annotated, _, _ := functionDirectives(fn)
	return annotated
}

// functionDirectives scans a function's doc comment for errgo directives.
// It returns whether the function is annotated, the attribute lines in
// order, and the directive comment lines themselves so the expansion can
// remove them.
func functionDirectives(fn *ast.FuncDecl) (annotated bool, attrs []string, lines []*ast.Comment) {
	if fn.Doc == nil {
		return false, nil, nil
	}
	for _, c := range fn.Doc.List {
		text := strings.TrimRight(c.Text, " \t")
		switch {
		case text == directiveAnnotate:
			annotated = true
			lines = append(lines, c)
		case strings.HasPrefix(c.Text, directiveAttr):
			attrs = append(attrs, c.Text[len(directiveAttr):])
			lines = append(lines, c)
		}
	}
	return annotated, attrs, lines
}

// trimMarkerImport drops the marker package import from the rewritten
// file when no reference to it survived expansion. The deletion is a text
// edit over the import's own lines; the rest of the file is not
// reformatted.
func trimMarkerImport(out []byte, markerPath string) ([]byte, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "expanded.go", out, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("reparse expanded file: %w", err)
	}
	if astutil.UsesImport(file, markerPath) {
		return out, nil
	}

	tf := fset.File(file.Pos())
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.IMPORT {
			continue
		}
		for _, spec := range gd.Specs {
			is, ok := spec.(*ast.ImportSpec)
			if !ok {
				continue
			}
			path, perr := strconv.Unquote(is.Path.Value)
			if perr != nil || path != markerPath {
				continue
			}

			var off, end int
			if len(gd.Specs) == 1 {
				// Sole import of its declaration: drop the whole decl.
				off, end = tf.Offset(gd.Pos()), tf.Offset(gd.End())
			} else {
				off, end = tf.Offset(is.Pos()), tf.Offset(is.End())
			}
			if end < len(out) && out[end] == '\n' {
				end++
			}
			return rewrite.Apply(out, []Edit{{Off: off, End: end}})
		}
	}
	return out, nil
}
