package main

import (
	"fmt"
	"go/token"
	"os"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/aatifsyed/errgo"
)

// diagPrinter renders diagnostics to stderr in
// "file:line:col: CODE: message" form, one extra line per note.
type diagPrinter struct {
	mu   sync.Mutex
	code *color.Color
	note *color.Color
	pos  *color.Color
}

func newDiagPrinter(mode string) *diagPrinter {
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !term.IsTerminal(int(os.Stderr.Fd()))
	}
	return &diagPrinter{
		code: color.New(color.FgRed, color.Bold),
		note: color.New(color.FgCyan),
		pos:  color.New(color.Bold),
	}
}

func (p *diagPrinter) print(fset *token.FileSet, d *errgo.Diagnostic) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(os.Stderr, "%s: %s: %s\n",
		p.pos.Sprint(fset.Position(d.Span.Pos)),
		p.code.Sprint(d.Code),
		d.Message)
	for _, n := range d.Notes {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n",
			p.pos.Sprint(fset.Position(n.Span.Pos)),
			p.note.Sprint("note"),
			n.Msg)
	}
}
