package app

import (
	"fmt"

	"github.com/bethropolis/hop/internal/config"
	"github.com/bethropolis/hop/internal/event"
	"github.com/bethropolis/hop/internal/highlighter"
	"github.com/bethropolis/hop/internal/highlighter/lexer"
	"github.com/bethropolis/hop/internal/highlighter/syntax"
	"github.com/bethropolis/hop/internal/highlighter/treesitter"
	"github.com/bethropolis/hop/internal/logger"
)

// HighlightingManager picks highlighters for documents from the engines
// registered at startup.
type HighlightingManager struct {
	registry *highlighter.Registry
	disabled bool
}

// NewHighlightingManager registers the built-in, tree-sitter and chroma
// engines, preferring the configured one.
func NewHighlightingManager(cfg config.EditorConfig) (*HighlightingManager, error) {
	prefer := []string{cfg.Highlighter}
	for _, e := range []string{highlighter.EngineBuiltin, highlighter.EngineTreeSitter, highlighter.EngineChroma} {
		if e != cfg.Highlighter {
			prefer = append(prefer, e)
		}
	}
	reg := highlighter.NewRegistry(prefer...)

	defs := syntax.Default()
	if cfg.SyntaxFile != "" {
		custom, err := syntax.ParseFile(cfg.SyntaxFile)
		if err != nil {
			return nil, fmt.Errorf("loading syntax file: %w", err)
		}
		for name, def := range custom {
			defs[name] = def
		}
	}
	syntax.Register(reg, defs)
	treesitter.Register(reg)
	lexer.Register(reg)

	return &HighlightingManager{registry: reg, disabled: cfg.Highlighter == "none"}, nil
}

// ForFile returns the highlighter for path. Files no registered language
// claims are offered to chroma's own filename matching before falling back
// to plain text.
func (hm *HighlightingManager) ForFile(path string) highlighter.Highlighter {
	if hm.disabled || path == "" {
		return highlighter.Plain{}
	}
	h := hm.registry.ForFile(path)
	if _, plain := h.(highlighter.Plain); !plain {
		return h
	}
	if l, err := lexer.ForFile(path); err == nil {
		logger.DebugTagf("syntax", "Using chroma's %s lexer for %s", l.Name(), path)
		return l
	}
	return h
}

// Lookup resolves a syntax name typed by the user.
func (hm *HighlightingManager) Lookup(name string) (highlighter.Highlighter, error) {
	return hm.registry.Lookup(name)
}

// Names lists the syntax names users can switch to.
func (hm *HighlightingManager) Names() []string {
	return hm.registry.Names()
}

// setSyntax switches the current document to the syntax called name.
func (a *App) setSyntax(name string) error {
	h, err := a.highlighting.Lookup(name)
	if err != nil {
		return err
	}
	a.tabs.Current().Doc.SetHighlighter(h)
	a.events.Dispatch(event.TypeSyntaxChanged, event.SyntaxChangedData{Name: h.Name()})
	return nil
}
