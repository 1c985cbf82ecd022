package main

import (
	"bytes"
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/aatifsyed/errgo"
	"github.com/aatifsyed/errgo/internal/config"
)

const defaultConfigNote = config.DefaultFile + " if present"

type runMode int

const (
	modeWrite runMode = iota
	modeStdout
	modeCheck
)

// processor expands a set of files. Files are independent, so they are
// expanded concurrently; stdout and diagnostic output are serialized.
type processor struct {
	cfg     *config.Config
	mode    runMode
	jobs    int
	printer *diagPrinter

	mu       sync.Mutex // guards stdout in modeStdout
	failures atomic.Int64
	expanded atomic.Int64
}

func newProcessor(cmd *cobra.Command) (*processor, error) {
	cfgPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		return nil, err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return nil, err
	}

	var cfg *config.Config
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	return &processor{
		cfg:     cfg,
		jobs:    jobs,
		printer: newDiagPrinter(colorMode),
	}, nil
}

func (p *processor) run(paths []string) error {
	files, err := gatherFiles(paths, p.cfg)
	if err != nil {
		return err
	}

	var g errgroup.Group
	if p.jobs > 0 {
		g.SetLimit(p.jobs)
	}
	for _, file := range files {
		file := file
		g.Go(func() error { return p.file(file) })
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if n := p.failures.Load(); n > 0 {
		return fmt.Errorf("%d file(s) failed to expand", n)
	}
	if p.mode == modeCheck {
		fmt.Fprintf(os.Stderr, "ok: %d function(s) expandable\n", p.expanded.Load())
	}
	return nil
}

// file expands one file. Expansion diagnostics are printed and counted
// rather than aborting the whole run; genuine I/O or parse failures abort.
func (p *processor) file(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	// Cheap pre-screen so unannotated files skip parsing entirely.
	if !bytes.Contains(src, []byte("errgo:errors")) {
		return nil
	}

	fset := token.NewFileSet()
	parsed, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		return err
	}

	res, err := errgo.ExpandFile(fset, src, parsed, errgo.Args{
		Attrs:      p.cfg.Attributes,
		MarkerPath: p.cfg.MarkerImport,
	})
	if err != nil {
		if d, ok := err.(*errgo.Diagnostic); ok {
			p.printer.print(fset, d)
			p.failures.Add(1)
			return nil
		}
		return fmt.Errorf("%s: %w", path, err)
	}
	if len(res.Funcs) == 0 {
		return nil
	}
	p.expanded.Add(int64(len(res.Funcs)))

	switch p.mode {
	case modeCheck:
		return nil
	case modeStdout:
		p.mu.Lock()
		defer p.mu.Unlock()
		_, err := os.Stdout.Write(res.Output)
		return err
	default:
		return os.WriteFile(path, res.Output, 0o644)
	}
}

// gatherFiles resolves the path arguments into the list of Go files to
// process: files are taken as given, directories are walked recursively
// skipping hidden and underscore-prefixed entries.
func gatherFiles(paths []string, cfg *config.Config) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if cfg.Matches(path) {
				files = append(files, path)
			}
			continue
		}
		err = filepath.WalkDir(path, func(sub string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			name := d.Name()
			if d.IsDir() {
				if sub != path && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(name, ".go") && cfg.Matches(sub) {
				files = append(files, sub)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
