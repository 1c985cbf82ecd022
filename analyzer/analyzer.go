// Package analyzer exposes the errgo expansion as a go/analysis pass, so
// editors and analysis drivers can surface expansion failures as
// diagnostics and apply the expansion itself as a suggested fix.
package analyzer

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/aatifsyed/errgo"
	"github.com/aatifsyed/errgo/internal/config"
)

const doc = `report errgo marker diagnostics and offer the expansion as a fix

For every function annotated with //errgo:errors, the analyzer runs the
expansion pipeline. Malformed markers, conflicting variant shapes and
unsupported signatures become diagnostics; a clean expansion becomes a
suggested fix that splices the generated sum type before the function and
rewrites every marker invocation.

The -config flag names an errgo config file supplying the marker import
override and global attributes; without it, ` + config.DefaultFile + ` in
the working directory is used when present.`

// Analyzer is the main entry point for the pass.
var Analyzer = &analysis.Analyzer{
	Name:     "errgo",
	Doc:      doc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

var configPath string

func init() {
	Analyzer.Flags.StringVar(&configPath, "config",
		"", "errgo config file path (default "+config.DefaultFile+" if present)")
}

// expansionArgs resolves the expansion arguments from the config file the
// -config flag names, falling back to the default lookup.
func expansionArgs() (errgo.Args, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return errgo.Args{}, err
	}
	return errgo.Args{
		Attrs:      cfg.Attributes,
		MarkerPath: cfg.MarkerImport,
	}, nil
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	byToken := make(map[*token.File]*ast.File, len(pass.Files))
	for _, f := range pass.Files {
		byToken[pass.Fset.File(f.Pos())] = f
	}

	// One expansion per file holding at least one annotated function.
	need := make(map[*ast.File]bool)
	insp.Preorder([]ast.Node{(*ast.FuncDecl)(nil)}, func(node ast.Node) {
		fn := node.(*ast.FuncDecl) // No need to assert check since we only get func decls.
		if !errgo.Annotated(fn) {
			return
		}
		if f := byToken[pass.Fset.File(fn.Pos())]; f != nil {
			need[f] = true
		}
	})

	args, err := expansionArgs()
	if err != nil {
		return nil, err
	}

	for _, file := range pass.Files {
		if !need[file] {
			continue
		}
		if err := expandFile(pass, file, args); err != nil {
			return nil, err
		}
	}

	return nil, nil
}

func expandFile(pass *analysis.Pass, file *ast.File, args errgo.Args) error {
	tf := pass.Fset.File(file.Pos())
	src, err := pass.ReadFile(tf.Name())
	if err != nil {
		return err
	}

	res, err := errgo.ExpandFile(pass.Fset, src, file, args)
	if err != nil {
		var d *errgo.Diagnostic
		if errors.As(err, &d) {
			pass.Report(toAnalysis(d))
			return nil
		}
		return err
	}

	for _, fe := range res.Funcs {
		edits := make([]analysis.TextEdit, 0, len(fe.Edits))
		for _, e := range fe.Edits {
			edits = append(edits, analysis.TextEdit{
				Pos:     tf.Pos(e.Off),
				End:     tf.Pos(e.End),
				NewText: []byte(e.Text),
			})
		}
		pass.Report(analysis.Diagnostic{
			Pos: fe.Func.Pos(),
			End: fe.Func.Name.End(),
			Message: fmt.Sprintf("function %s uses errgo markers and awaits expansion",
				fe.Func.Name.Name),
			SuggestedFixes: []analysis.SuggestedFix{{
				Message:   fmt.Sprintf("generate %s and rewrite marker invocations", fe.Expansion.Spec.Name),
				TextEdits: edits,
			}},
		})
	}
	return nil
}

func toAnalysis(d *errgo.Diagnostic) analysis.Diagnostic {
	out := analysis.Diagnostic{
		Pos:     d.Span.Pos,
		End:     d.Span.End,
		Message: fmt.Sprintf("%s: %s", d.Code, d.Message),
	}
	for _, n := range d.Notes {
		out.Related = append(out.Related, analysis.RelatedInformation{
			Pos:     n.Span.Pos,
			End:     n.Span.End,
			Message: n.Msg,
		})
	}
	return out
}
