// Package lexer highlights lines with chroma's regular-expression lexers.
// Every line is tokenised on its own, so constructs spanning lines are not
// tracked.
package lexer

import (
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/bethropolis/hop/internal/highlighter"
	"github.com/bethropolis/hop/internal/logger"
)

// Lexer adapts a chroma lexer to the highlighter interface.
type Lexer struct {
	name  string
	lexer chroma.Lexer
}

// New looks up the chroma lexer called lexerName and names the result
// name.
func New(name, lexerName string) (*Lexer, error) {
	l := lexers.Get(lexerName)
	if l == nil {
		return nil, fmt.Errorf("%w: no chroma lexer %q", highlighter.ErrUnknownSyntax, lexerName)
	}
	return &Lexer{name: name, lexer: chroma.Coalesce(l)}, nil
}

// ForFile returns a highlighter for path picked by chroma's own filename
// matching.
func ForFile(path string) (*Lexer, error) {
	l := lexers.Match(path)
	if l == nil {
		return nil, fmt.Errorf("%w: no chroma lexer for %s", highlighter.ErrUnknownSyntax, path)
	}
	return &Lexer{name: l.Config().Name, lexer: chroma.Coalesce(l)}, nil
}

func (l *Lexer) Name() string { return l.name }

func (l *Lexer) Highlight(_ highlighter.Context, line []byte) ([]highlighter.Span, highlighter.Context) {
	var b highlighter.Builder
	it, err := l.lexer.Tokenise(nil, string(line))
	if err != nil {
		logger.DebugTagf("syntax", "chroma %s: %v", l.name, err)
		return b.Finish(len(line)), highlighter.NoContext
	}

	pos := 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		end := pos + len(tok.Value)
		b.Add(pos, min(end, len(line)), Mode(tok.Type))
		pos = end
	}
	return b.Finish(len(line)), highlighter.NoContext
}

// Mode maps a chroma token type to a mode tag.
func Mode(t chroma.TokenType) highlighter.Mode {
	switch {
	case t.InCategory(chroma.Comment):
		return highlighter.Comment
	case t == chroma.KeywordType:
		return highlighter.Type
	case t == chroma.KeywordConstant:
		return highlighter.KeywordWeak
	case t == chroma.KeywordDeclaration, t == chroma.KeywordNamespace:
		return highlighter.KeywordBasic
	case t.InCategory(chroma.Keyword):
		return highlighter.KeywordStrong
	case t == chroma.LiteralStringEscape:
		return highlighter.Escape
	case t == chroma.LiteralStringInterpol:
		return highlighter.Format
	case t == chroma.LiteralStringChar:
		return highlighter.StringSpecial
	case t.InSubCategory(chroma.LiteralString):
		return highlighter.String
	case t.InSubCategory(chroma.LiteralNumber):
		return highlighter.Number
	case t == chroma.NameFunction:
		return highlighter.Call
	case t == chroma.NameClass:
		return highlighter.Type
	case t == chroma.NameBuiltin:
		return highlighter.KeywordWeak
	case t.InCategory(chroma.Name):
		return highlighter.Identifier
	case t.InCategory(chroma.Operator), t.InCategory(chroma.Punctuation):
		return highlighter.Symbol
	}
	return highlighter.Unclassified
}

// languages is the set of chroma lexers offered by name.
var languages = []struct {
	name, lexer string
	exts        []string
}{
	{"go", "go", []string{"go"}},
	{"rust", "rust", []string{"rs"}},
	{"python", "python", []string{"py", "pyw"}},
	{"c", "c", []string{"c", "h"}},
	{"cpp", "c++", []string{"cc", "cpp", "hpp"}},
	{"javascript", "javascript", []string{"js", "mjs", "cjs"}},
	{"typescript", "typescript", []string{"ts"}},
	{"json", "json", []string{"json"}},
	{"yaml", "yaml", []string{"yaml", "yml"}},
	{"toml", "toml", []string{"toml"}},
	{"shell", "bash", []string{"sh", "bash"}},
	{"markdown", "markdown", []string{"md"}},
	{"html", "html", []string{"html", "htm"}},
	{"css", "css", []string{"css"}},
	{"java", "java", []string{"java"}},
	{"ruby", "ruby", []string{"rb"}},
	{"lua", "lua", []string{"lua"}},
}

// Register adds the chroma languages to reg.
func Register(reg *highlighter.Registry) {
	for _, lang := range languages {
		lang := lang
		reg.Register(&highlighter.Language{
			Name:       lang.name,
			Engine:     highlighter.EngineChroma,
			Extensions: lang.exts,
			New: func() (highlighter.Highlighter, error) {
				return New(lang.name, lang.lexer)
			},
		})
	}
}
