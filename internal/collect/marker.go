package collect

import (
	"go/ast"
	"go/token"
	"strconv"
	"strings"

	"github.com/aatifsyed/errgo/internal/diag"
	"github.com/aatifsyed/errgo/internal/shape"
)

// markerPackageName resolves the local name the marker package is imported
// under in this file. Aliased imports are honored; blank and dot imports
// yield no marker name, so such files simply contain no recognizable sites.
func markerPackageName(file *ast.File, markerPath string) (string, bool) {
	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil || path != markerPath {
			continue
		}
		if spec.Name == nil {
			if i := strings.LastIndexByte(path, '/'); i >= 0 {
				path = path[i+1:]
			}
			return path, true
		}
		switch spec.Name.Name {
		case "_", ".":
			return "", false
		default:
			return spec.Name.Name, true
		}
	}
	return "", false
}

// isMarker reports whether call is pkg.New(...). Purely syntactic: a local
// variable shadowing the package name is not detected here.
func isMarker(call *ast.CallExpr, pkg string) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "New" {
		return false
	}
	x, ok := sel.X.(*ast.Ident)
	return ok && x.Name == pkg
}

// source maps AST nodes back to the verbatim bytes they were parsed from.
type source struct {
	file *token.File
	src  []byte
}

func (s source) text(n ast.Node) string {
	return string(s.src[s.file.Offset(n.Pos()):s.file.Offset(n.End())])
}

// parseShape extracts the variant shape from a recognized marker call.
// The first argument is the shape (a bare identifier or an identifier
// with a field block); any further arguments are opaque string-literal
// attributes forwarded verbatim onto the generated variant.
func parseShape(sc source, call *ast.CallExpr, pkg string) (*shape.VariantShape, *diag.Diagnostic) {
	span := diag.NodeSpan(call)
	if len(call.Args) == 0 {
		return nil, diag.Errorf(diag.ERRGO002MalformedShape, span,
			"marker invocation needs a variant shape argument")
	}

	s := &shape.VariantShape{}
	switch arg := call.Args[0].(type) {
	case *ast.Ident:
		s.Name = arg.Name

	case *ast.CompositeLit:
		name, ok := arg.Type.(*ast.Ident)
		if !ok {
			return nil, diag.Errorf(diag.ERRGO002MalformedShape, diag.NodeSpan(arg),
				"variant name must be a plain identifier")
		}
		s.Name = name.Name
		s.Struct = true
		for _, el := range arg.Elts {
			f, d := parseField(sc, el, pkg)
			if d != nil {
				return nil, d
			}
			if _, dup := s.Field(f.Name); dup {
				return nil, diag.Errorf(diag.ERRGO002MalformedShape, diag.NodeSpan(el),
					"duplicate field %s in variant %s", f.Name, s.Name)
			}
			s.Fields = append(s.Fields, f)
		}

	default:
		return nil, diag.Errorf(diag.ERRGO002MalformedShape, diag.NodeSpan(arg),
			"variant shape must be an identifier or an identifier with a field block")
	}

	for _, a := range call.Args[1:] {
		lit, ok := a.(*ast.BasicLit)
		if !ok || lit.Kind != token.STRING {
			return nil, diag.Errorf(diag.ERRGO002MalformedShape, diag.NodeSpan(a),
				"variant attribute must be a string literal")
		}
		attr, err := strconv.Unquote(lit.Value)
		if err != nil {
			return nil, diag.Errorf(diag.ERRGO002MalformedShape, diag.NodeSpan(a),
				"variant attribute is not a valid string literal")
		}
		s.Attrs = append(s.Attrs, attr)
	}

	return s, nil
}

// parseField parses one `Name: pkg.Val[Type](value)` element of a struct
// shape. The type argument is the field's declared type, taken verbatim;
// the call argument is the value expression, also taken verbatim.
func parseField(sc source, el ast.Expr, pkg string) (shape.NamedField, *diag.Diagnostic) {
	var f shape.NamedField

	kv, ok := el.(*ast.KeyValueExpr)
	if !ok {
		return f, diag.Errorf(diag.ERRGO002MalformedShape, diag.NodeSpan(el),
			"field entry must have the form name: %s.Val[Type](value)", pkg)
	}
	key, ok := kv.Key.(*ast.Ident)
	if !ok {
		return f, diag.Errorf(diag.ERRGO002MalformedShape, diag.NodeSpan(kv.Key),
			"field name must be a plain identifier")
	}

	val, ok := kv.Value.(*ast.CallExpr)
	if !ok {
		return f, diag.Errorf(diag.ERRGO002MalformedShape, diag.NodeSpan(kv.Value),
			"field %s is missing its %s.Val[Type](value) wrapper", key.Name, pkg)
	}
	if _, multi := val.Fun.(*ast.IndexListExpr); multi {
		return f, diag.Errorf(diag.ERRGO002MalformedShape, diag.NodeSpan(val.Fun),
			"%s.Val takes exactly one type argument", pkg)
	}
	idx, ok := val.Fun.(*ast.IndexExpr)
	if !ok || !isValSelector(idx.X, pkg) {
		return f, diag.Errorf(diag.ERRGO002MalformedShape, diag.NodeSpan(kv.Value),
			"field %s is missing its %s.Val[Type](value) wrapper", key.Name, pkg)
	}
	if len(val.Args) != 1 {
		return f, diag.Errorf(diag.ERRGO002MalformedShape, diag.NodeSpan(val),
			"%s.Val takes exactly one value expression", pkg)
	}

	f.Name = key.Name
	f.Type = idx.Index
	f.TypeSrc = sc.text(idx.Index)
	f.Value = val.Args[0]
	f.ValueSrc = sc.text(val.Args[0])
	return f, nil
}

func isValSelector(x ast.Expr, pkg string) bool {
	sel, ok := x.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Val" {
		return false
	}
	id, ok := sel.X.(*ast.Ident)
	return ok && id.Name == pkg
}
