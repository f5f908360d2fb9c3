package highlighter

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type named string

func (n named) Name() string { return string(n) }

func (n named) Highlight(prev Context, line []byte) ([]Span, Context) {
	return Plain{}.Highlight(prev, line)
}

func lang(name, engine string, exts ...string) *Language {
	return &Language{
		Name:       name,
		Engine:     engine,
		Extensions: exts,
		New:        func() (Highlighter, error) { return named(name + "@" + engine), nil },
	}
}

func newTestRegistry() *Registry {
	r := NewRegistry(EngineTreeSitter, EngineBuiltin)
	r.Register(lang("Go", EngineBuiltin, "go"))
	r.Register(lang("go", EngineTreeSitter, ".go"))
	r.Register(lang("c", EngineChroma, "c", "h"))
	return r
}

func TestRegistryForFile(t *testing.T) {
	r := newTestRegistry()
	tests := []struct {
		path string
		want string
	}{
		{"main.go", "go@treesitter"},
		{"/tmp/MAIN.GO", "go@treesitter"},
		{"x.h", "c@chroma"},
		{"README", "none"},
	}
	for _, tt := range tests {
		if got := r.ForFile(tt.path).Name(); got != tt.want {
			t.Errorf("ForFile(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestRegistryForFileSkipsBrokenEngine(t *testing.T) {
	r := NewRegistry(EngineTreeSitter, EngineBuiltin)
	r.Register(&Language{
		Name:       "go",
		Engine:     EngineTreeSitter,
		Extensions: []string{"go"},
		New:        func() (Highlighter, error) { return nil, errors.New("no parser") },
	})
	r.Register(lang("go", EngineBuiltin, "go"))

	if got := r.ForFile("a.go").Name(); got != "go@builtin" {
		t.Fatalf("ForFile() = %q, want %q", got, "go@builtin")
	}
}

func TestRegistryLookup(t *testing.T) {
	r := newTestRegistry()

	h, err := r.Lookup(" GO ")
	if err != nil || h.Name() != "go@treesitter" {
		t.Fatalf("Lookup(GO) = %v, %v, want go@treesitter", h, err)
	}
	h, err = r.Lookup("go@builtin")
	if err != nil || h.Name() != "go@builtin" {
		t.Fatalf("Lookup(go@builtin) = %v, %v, want go@builtin", h, err)
	}
	h, err = r.Lookup("none")
	if err != nil || h.Name() != "none" {
		t.Fatalf("Lookup(none) = %v, %v, want Plain", h, err)
	}
	if _, err := r.Lookup("go@chroma"); !errors.Is(err, ErrUnknownSyntax) {
		t.Fatalf("Lookup(go@chroma) error = %v, want ErrUnknownSyntax", err)
	}
	if _, err := r.Lookup("cobol"); !errors.Is(err, ErrUnknownSyntax) {
		t.Fatalf("Lookup(cobol) error = %v, want ErrUnknownSyntax", err)
	}
}

func TestRegistryNames(t *testing.T) {
	if diff := cmp.Diff([]string{"go", "c"}, newTestRegistry().Names()); diff != "" {
		t.Fatalf("Names() mismatch (-want +got):\n%s", diff)
	}
}
