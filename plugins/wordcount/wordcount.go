// Package wordcount adds the wc command, which reports line, word and byte
// counts for the current tab.
package wordcount

import (
	"fmt"
	"strings"

	"github.com/bethropolis/hop/internal/plugin"
)

var _ plugin.Plugin = (*WordCount)(nil)

// WordCount is a simple plugin to count lines, words, and bytes.
type WordCount struct {
	api plugin.EditorAPI
}

// New creates a new instance of the WordCount plugin.
func New() *WordCount {
	return &WordCount{}
}

func (p *WordCount) Name() string {
	return "wordcount"
}

func (p *WordCount) Initialize(api plugin.EditorAPI) error {
	p.api = api
	if err := api.RegisterCommand("wc", p.executeWordCount); err != nil {
		return fmt.Errorf("failed to register 'wc' command: %w", err)
	}
	return nil
}

func (p *WordCount) Shutdown() error {
	return nil
}

// executeWordCount counts the whole document, or only the selected text
// when any cursor has a selection.
func (p *WordCount) executeWordCount(args []string) error {
	if p.api == nil {
		return fmt.Errorf("wordcount plugin not initialized with API")
	}
	doc := p.api.Document()

	var parts []string
	for i := 0; i < doc.CursorCount(); i++ {
		if sel := doc.ExtractSelection(i); sel != "" {
			parts = append(parts, sel)
		}
	}

	what := "Document"
	text := strings.Join(parts, "\n")
	lines := strings.Count(text, "\n") + 1
	if text == "" {
		text = doc.Text()
		lines = doc.LineCount()
	} else {
		what = "Selection"
	}

	p.api.SetStatusMessage("%s: %d lines, %d words, %d bytes", what, lines, len(strings.Fields(text)), len(text))
	return nil
}
