package diag

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"
)

// Span is a half-open [Pos,End) region of source covered by one construct.
type Span struct {
	Pos token.Pos
	End token.Pos
}

// NodeSpan returns the span covering an AST node.
func NodeSpan(n ast.Node) Span {
	return Span{Pos: n.Pos(), End: n.End()}
}

// Note is a secondary location attached to a diagnostic, such as the first
// occurrence of a conflicting variant shape.
type Note struct {
	Span Span
	Msg  string
}

// Diagnostic is a single expansion failure: a code, a human-readable message
// and the precise span of the offending construct. The first diagnostic
// aborts the expansion; they are never batched.
type Diagnostic struct {
	Code    Code
	Message string
	Span    Span
	Notes   []Note
}

// Errorf builds a diagnostic for the given code and span.
func Errorf(code Code, span Span, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
	}
}

// WithNote attaches a secondary location and returns the diagnostic itself.
func (d *Diagnostic) WithNote(span Span, format string, args ...any) *Diagnostic {
	d.Notes = append(d.Notes, Note{Span: span, Msg: fmt.Sprintf(format, args...)})
	return d
}

// Error implements the error interface. Positions are not resolved here
// because the FileSet is not carried by the diagnostic; use Render for
// position-qualified output.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

// Render formats the diagnostic with file:line:column positions resolved
// through the given FileSet, one line per note.
func (d *Diagnostic) Render(fset *token.FileSet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s: %s", fset.Position(d.Span.Pos), d.Code, d.Message)
	for _, n := range d.Notes {
		fmt.Fprintf(&b, "\n%s: note: %s", fset.Position(n.Span.Pos), n.Msg)
	}
	return b.String()
}
