// Package treesitter highlights lines with tree-sitter grammars and
// highlight queries. Each line is parsed on its own; tree-sitter's error
// recovery keeps partial lines useful.
package treesitter

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/bethropolis/hop/internal/highlighter"
	"github.com/bethropolis/hop/internal/logger"
)

//go:embed queries/*/highlights.scm
var queryFS embed.FS

// Grammar pairs a tree-sitter language with its query directory.
type Grammar struct {
	Name       string
	Extensions []string
	Language   func() *sitter.Language
}

// Grammars are the languages compiled into the binary.
var Grammars = []Grammar{
	{Name: "go", Extensions: []string{"go"}, Language: golang.GetLanguage},
	{Name: "python", Extensions: []string{"py", "pyw"}, Language: python.GetLanguage},
	{Name: "javascript", Extensions: []string{"js", "mjs", "cjs"}, Language: javascript.GetLanguage},
	{Name: "rust", Extensions: []string{"rs"}, Language: rust.GetLanguage},
}

// Highlighter runs a compiled query over each line.
type Highlighter struct {
	name   string
	parser *sitter.Parser
	query  *sitter.Query
	// captures maps capture ids to modes.
	captures []highlighter.Mode
}

// New builds the highlighter for g.
func New(g Grammar) (*Highlighter, error) {
	src, err := fs.ReadFile(queryFS, "queries/"+g.Name+"/highlights.scm")
	if err != nil {
		return nil, fmt.Errorf("loading %s query: %w", g.Name, err)
	}
	lang := g.Language()
	q, err := sitter.NewQuery(src, lang)
	if err != nil {
		return nil, fmt.Errorf("compiling %s query: %w", g.Name, err)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	h := &Highlighter{name: g.Name, parser: parser, query: q}
	for id := uint32(0); id < q.CaptureCount(); id++ {
		name := q.CaptureNameForId(id)
		mode, ok := highlighter.ModeForName(name)
		if !ok {
			logger.DebugTagf("syntax", "tree-sitter %s: unmapped capture @%s", g.Name, name)
		}
		h.captures = append(h.captures, mode)
	}
	return h, nil
}

func (h *Highlighter) Name() string { return h.name }

func (h *Highlighter) Highlight(_ highlighter.Context, line []byte) ([]highlighter.Span, highlighter.Context) {
	if len(line) == 0 {
		return nil, highlighter.NoContext
	}
	tree, err := h.parser.ParseCtx(context.Background(), nil, line)
	if err != nil {
		logger.DebugTagf("syntax", "tree-sitter %s: %v", h.name, err)
		return highlighter.Normalize(nil, len(line)), highlighter.NoContext
	}
	defer tree.Close()

	// one mode per byte, later captures painting over earlier ones
	paint := make([]highlighter.Mode, len(line))
	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(h.query, tree.RootNode())
	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range match.Captures {
			if int(c.Index) >= len(h.captures) {
				continue
			}
			mode := h.captures[c.Index]
			start, end := int(c.Node.StartByte()), min(int(c.Node.EndByte()), len(line))
			for i := start; i < end; i++ {
				paint[i] = mode
			}
		}
	}

	var spans []highlighter.Span
	for i := 0; i < len(paint); {
		j := i + 1
		for j < len(paint) && paint[j] == paint[i] {
			j++
		}
		spans = append(spans, highlighter.Span{Mode: paint[i], Len: j - i})
		i = j
	}
	return spans, highlighter.NoContext
}

// Register adds every grammar to reg under the tree-sitter engine.
func Register(reg *highlighter.Registry) {
	for _, g := range Grammars {
		g := g
		reg.Register(&highlighter.Language{
			Name:       g.Name,
			Engine:     highlighter.EngineTreeSitter,
			Extensions: g.Extensions,
			New: func() (highlighter.Highlighter, error) {
				return New(g)
			},
		})
	}
}
