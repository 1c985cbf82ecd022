package analyzer

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/aatifsyed/errgo"
)

func TestConfigFlagRegistered(t *testing.T) {
	if Analyzer.Flags.Lookup("config") == nil {
		t.Fatal("analyzer does not expose the -config flag")
	}
}

func TestExpansionArgsFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errgo.yml")
	if err := os.WriteFile(path, []byte(`marker_import: example.com/internal/marks
attributes:
  - "errgo:derive json"
`), 0o644); err != nil {
		t.Fatal(err)
	}

	configPath = path
	t.Cleanup(func() { configPath = "" })

	args, err := expansionArgs()
	if err != nil {
		t.Fatalf("expansion args: %v", err)
	}
	want := errgo.Args{
		Attrs:      []string{"errgo:derive json"},
		MarkerPath: "example.com/internal/marks",
	}
	if !reflect.DeepEqual(args, want) {
		t.Fatalf("got %+v, want %+v", args, want)
	}
}

func TestExpansionArgsWithoutConfig(t *testing.T) {
	configPath = ""
	args, err := expansionArgs()
	if err != nil {
		t.Fatalf("expansion args: %v", err)
	}
	if !reflect.DeepEqual(args, errgo.Args{}) {
		t.Fatalf("expected built-in defaults, got %+v", args)
	}
}
