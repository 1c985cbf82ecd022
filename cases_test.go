package errgo

import (
	"embed"
	"fmt"
	"go/parser"
	"go/token"
	"reflect"
	"strings"
	"testing"

	"github.com/sirkon/deepequal"
)

//go:embed testdata
var expandCases embed.FS

func TestExpandCases(t *testing.T) {
	// Variant names each case is expected to collect, in source order.
	expected := map[string][]string{
		"case_shave_yaks.go":  {"NotEnoughRazors", "NotEnoughBuckets"},
		"case_unit_reuse.go":  {"OutOfRange"},
		"case_closures.go":    {"NilJob", "JobFailed"},
		"case_empty_sum.go":   {},
		"case_attrs.go":       {"Empty"},
		"case_alias_error.go": {"EmptyPath", "Unreadable"},
		"case_get_config.go":  {"NoConfig", "Unparseable"},
	}

	files, err := expandCases.ReadDir("testdata/cases")
	if err != nil {
		t.Fatal(fmt.Errorf("list expansion case files: %w", err))
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasPrefix(file.Name(), "case_") {
			continue
		}

		t.Run(file.Name(), func(t *testing.T) {
			src, err := expandCases.ReadFile("testdata/cases/" + file.Name())
			if err != nil {
				t.Fatalf("read file %s: %s", file.Name(), err)
			}

			wantVariants, ok := expected[file.Name()]
			if !ok {
				t.Fatal("no expectation found for", file.Name())
			}

			fset := token.NewFileSet()
			parsed, err := parser.ParseFile(fset, file.Name(), src, parser.ParseComments)
			if err != nil {
				t.Fatalf("parse case file: %v", err)
			}

			res, err := ExpandFile(fset, src, parsed, Args{})
			if err != nil {
				t.Fatalf("expand case file: %v", err)
			}
			if len(res.Funcs) != 1 {
				t.Fatalf("expected one expanded function, got %d", len(res.Funcs))
			}

			got := []string{}
			for _, v := range res.Funcs[0].Expansion.Spec.Variants {
				got = append(got, v.Name)
			}
			if !reflect.DeepEqual(wantVariants, got) {
				deepequal.SideBySide(t, "variants", wantVariants, got)
			}

			// The rewritten file must parse, carry no leftover
			// directives or marker references, and a second pass over
			// it must change nothing.
			out := res.Output
			if _, err := parser.ParseFile(token.NewFileSet(), "out.go", out, parser.ParseComments); err != nil {
				t.Fatalf("output does not parse: %v\n%s", err, out)
			}
			for _, leftover := range []string{"//errgo:errors", "//errgo:attr", "errgo.New", "errgo.Val", "github.com/aatifsyed/errgo"} {
				if strings.Contains(string(out), leftover) {
					t.Fatalf("output still contains %q:\n%s", leftover, out)
				}
			}

			fset = token.NewFileSet()
			parsed, err = parser.ParseFile(fset, "out.go", out, parser.ParseComments)
			if err != nil {
				t.Fatalf("reparse output: %v", err)
			}
			again, err := ExpandFile(fset, out, parsed, Args{})
			if err != nil {
				t.Fatalf("second pass: %v", err)
			}
			if string(again.Output) != string(out) {
				t.Fatal("second pass modified the file")
			}
		})
	}
}
