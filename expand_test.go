package errgo

import (
	"bytes"
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"
)

func parseSrc(t *testing.T, src string) (*token.FileSet, *ast.File, *ast.FuncDecl) {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "demo.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("parse test source: %v", err)
	}
	for _, d := range file.Decls {
		if fn, ok := d.(*ast.FuncDecl); ok {
			return fset, file, fn
		}
	}
	t.Fatal("no function declaration in test source")
	return nil, nil, nil
}

func expandSrc(t *testing.T, src string, args Args) (*Expansion, error) {
	t.Helper()
	fset, file, fn := parseSrc(t, src)
	return Expand(fset, []byte(src), file, fn, args)
}

const yaksSrc = `package demo

import "github.com/aatifsyed/errgo"

func shaveYaks(numYaks, emptyBuckets, numRazors int) (int, ShaveYaksError) {
	if numRazors == 0 {
		return 0, errgo.New(NotEnoughRazors)
	}
	if numYaks > emptyBuckets {
		return 0, errgo.New(NotEnoughBuckets{
			Got:      errgo.Val[int](emptyBuckets),
			Required: errgo.Val[int](numYaks),
		})
	}
	return numYaks, nil
}
`

func TestExpandShaveYaks(t *testing.T) {
	exp, err := expandSrc(t, yaksSrc, Args{})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}

	if exp.Spec.Name != "ShaveYaksError" || !exp.Spec.Exported {
		t.Fatalf("wrong spec identity: %+v", exp.Spec)
	}

	ty := string(exp.TypeSource)
	for _, want := range []string{
		"type ShaveYaksError interface {",
		"isShaveYaksError()",
		"type ShaveYaksError_NotEnoughRazors struct{}",
		"type ShaveYaksError_NotEnoughBuckets struct {",
		"Got      int",
		"Required int",
	} {
		if !strings.Contains(ty, want) {
			t.Fatalf("generated type missing %q:\n%s", want, ty)
		}
	}

	fnSrc := string(exp.FuncSource)
	if !strings.Contains(fnSrc, "return 0, ShaveYaksError_NotEnoughRazors{}") {
		t.Fatalf("unit site not rewritten:\n%s", fnSrc)
	}
	if !strings.Contains(fnSrc, "ShaveYaksError_NotEnoughBuckets{Got: emptyBuckets, Required: numYaks}") {
		t.Fatalf("struct site not rewritten:\n%s", fnSrc)
	}
}

func TestExpandDeterminism(t *testing.T) {
	a, err := expandSrc(t, yaksSrc, Args{})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	b, err := expandSrc(t, yaksSrc, Args{})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if !bytes.Equal(a.TypeSource, b.TypeSource) || !bytes.Equal(a.FuncSource, b.FuncSource) {
		t.Fatal("repeated expansion is not byte-identical")
	}
}

func TestExpandUnitReuse(t *testing.T) {
	exp, err := expandSrc(t, `package demo

import "github.com/aatifsyed/errgo"

func foo(ok bool) (int, FooError) {
	if ok {
		return 0, errgo.New(Bar)
	}
	return 0, errgo.New(Bar)
}
`, Args{})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(exp.Spec.Variants) != 1 {
		t.Fatalf("reused variant duplicated: %d variants", len(exp.Spec.Variants))
	}
	if got := strings.Count(string(exp.FuncSource), "FooError_Bar{}"); got != 2 {
		t.Fatalf("both sites must construct identically, got %d", got)
	}
}

func TestExpandConflictProducesNoOutput(t *testing.T) {
	exp, err := expandSrc(t, `package demo

import "github.com/aatifsyed/errgo"

func foo(ok bool) (int, FooError) {
	if ok {
		return 0, errgo.New(Bar)
	}
	return 0, errgo.New(Bar{X: errgo.Val[int32](1)})
}
`, Args{})
	if exp != nil {
		t.Fatal("conflicting expansion produced output")
	}
	var d *Diagnostic
	if !errors.As(err, &d) || d.Code != ShapeConflictError {
		t.Fatalf("want ShapeConflictError, got %v", err)
	}
	if len(d.Notes) != 1 {
		t.Fatalf("conflict must carry both spans: %+v", d)
	}
}

func TestExpandMalformedShape(t *testing.T) {
	_, err := expandSrc(t, `package demo

import "github.com/aatifsyed/errgo"

func foo() (int, FooError) {
	return 0, errgo.New("a literal")
}
`, Args{})
	var d *Diagnostic
	if !errors.As(err, &d) || d.Code != MalformedShapeError {
		t.Fatalf("want MalformedShapeError, got %v", err)
	}
}

func TestExpandTypeAttrs(t *testing.T) {
	exp, err := expandSrc(t, yaksSrc, Args{Attrs: []string{"errgo:derive json"}})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if !strings.Contains(string(exp.TypeSource), "// errgo:derive json\ntype ShaveYaksError interface {") {
		t.Fatalf("type attribute not forwarded verbatim:\n%s", exp.TypeSource)
	}
}

func TestExpandEmptySum(t *testing.T) {
	exp, err := expandSrc(t, `package demo

func foo() (int, FooError) {
	return 0, nil
}
`, Args{})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(exp.Spec.Variants) != 0 {
		t.Fatalf("expected an empty sum, got %d variants", len(exp.Spec.Variants))
	}
	if !strings.Contains(string(exp.TypeSource), "type FooError interface {") {
		t.Fatalf("empty sum type not generated:\n%s", exp.TypeSource)
	}
}

func TestExpandSignatureValidation(t *testing.T) {
	cases := []struct {
		name string
		sig  string
	}{
		{"no results", `func foo()`},
		{"one result", `func foo() error`},
		{"three results", `func foo() (int, int, FooError)`},
		{"composite error type", `func foo() (int, *FooError)`},
		{"generic error type", `func foo() (int, Foo[int])`},
		{"predeclared error type", `func foo() (int, error)`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := expandSrc(t, "package demo\n\n"+tc.sig+" {\n\tpanic(\"x\")\n}\n", Args{})
			var d *Diagnostic
			if !errors.As(err, &d) || d.Code != UnsupportedSignatureError {
				t.Fatalf("want UnsupportedSignatureError, got %v", err)
			}
		})
	}
}

func TestExpandRejectsAlreadyDeclaredType(t *testing.T) {
	_, err := expandSrc(t, `package demo

func foo() (int, FooError) {
	return 0, nil
}

type FooError struct{}
`, Args{})
	var d *Diagnostic
	if !errors.As(err, &d) || d.Code != UnsupportedSignatureError {
		t.Fatalf("want UnsupportedSignatureError, got %v", err)
	}
	if len(d.Notes) != 1 {
		t.Fatalf("diagnostic must note the existing declaration: %+v", d)
	}
}

// A qualified error type is accepted; only the final segment names the
// generated type. This is a documented identity.
func TestExpandSelectorErrorType(t *testing.T) {
	exp, err := expandSrc(t, `package demo

func foo() (int, apierr.FooError) {
	return 0, nil
}
`, Args{})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if exp.Spec.Name != "FooError" {
		t.Fatalf("got type name %q, want final segment FooError", exp.Spec.Name)
	}
}
