// Package syntax is a rule-based line highlighter configured by TOML syntax
// definitions. It needs no grammar and carries open block comments and
// multi-line strings from one line to the next.
package syntax

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	"github.com/bethropolis/hop/internal/highlighter"
	"github.com/bethropolis/hop/internal/logger"
)

//go:embed syntax.toml
var defaultDefinitions []byte

// Delimited describes a construct with a start and stop sequence: a string
// literal or a block comment.
type Delimited struct {
	Start  string   `toml:"start"`
	Stop   string   `toml:"stop"`
	Escape []string `toml:"escape"`
	// StrfmtPercent highlights printf verbs such as "%5.2f".
	StrfmtPercent bool `toml:"strfmt-percent"`
	// StrfmtBraces highlights "{name}" placeholders.
	StrfmtBraces bool `toml:"strfmt-braces"`
	// SingleChar limits the body to one (possibly escaped) character.
	SingleChar bool `toml:"single-char"`
	MultiLine  bool `toml:"multi-line"`

	mode    highlighter.Mode
	escapes map[rune]bool
}

// Definition is the highlighting configuration of one language.
type Definition struct {
	Extensions        []string    `toml:"extensions"`
	StringsNormal     []Delimited `toml:"strings-normal"`
	StringsSpecial    []Delimited `toml:"strings-special"`
	MultiLineComments []Delimited `toml:"multi-line-comments"`
	CommentPrefix     []string    `toml:"comment-prefix"`
	KeywordsStrong    []string    `toml:"keywords-strong"`
	KeywordsBasic     []string    `toml:"keywords-basic"`
	KeywordsWeak      []string    `toml:"keywords-weak"`
	IdentifierGlue    []string    `toml:"identifier-glue"`
	NumberGlue        []string    `toml:"number-glue"`
	CallSyms          []string    `toml:"call-syms"`
	Symbols           []string    `toml:"symbols"`
}

// Parse decodes a syntax file: one table per language name.
func Parse(data []byte) (map[string]*Definition, error) {
	defs := make(map[string]*Definition)
	meta, err := toml.Decode(string(data), &defs)
	if err != nil {
		return nil, fmt.Errorf("failed to parse syntax definitions: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		logger.WarnTagf("syntax", "Syntax definitions: unrecognized keys: %v", undecoded)
	}
	for name, def := range defs {
		if err := def.check(); err != nil {
			return nil, fmt.Errorf("syntax %q: %w", name, err)
		}
	}
	return defs, nil
}

// ParseFile is Parse on the contents of path.
func ParseFile(path string) (map[string]*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading syntax file: %w", err)
	}
	return Parse(data)
}

// Default returns the built-in definitions.
func Default() map[string]*Definition {
	defs, err := Parse(defaultDefinitions)
	if err != nil {
		panic(err)
	}
	return defs
}

func (d *Definition) check() error {
	single := func(kind string, list []string) error {
		for _, s := range list {
			if utf8.RuneCountInString(s) != 1 {
				return fmt.Errorf("%s entry %q must be a single character", kind, s)
			}
		}
		return nil
	}
	for kind, list := range map[string][]string{
		"identifier-glue": d.IdentifierGlue,
		"number-glue":     d.NumberGlue,
		"call-syms":       d.CallSyms,
	} {
		if err := single(kind, list); err != nil {
			return err
		}
	}
	for _, group := range [][]Delimited{d.MultiLineComments, d.StringsNormal, d.StringsSpecial} {
		for _, r := range group {
			if r.Start == "" || r.Stop == "" {
				return fmt.Errorf("delimited rule needs start and stop, got %q/%q", r.Start, r.Stop)
			}
			if err := single("escape", r.Escape); err != nil {
				return err
			}
		}
	}
	return nil
}

// Register adds every definition to reg under the builtin engine.
func Register(reg *highlighter.Registry, defs map[string]*Definition) {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		name, def := name, defs[name]
		reg.Register(&highlighter.Language{
			Name:       name,
			Engine:     highlighter.EngineBuiltin,
			Extensions: def.Extensions,
			New: func() (highlighter.Highlighter, error) {
				return New(name, def), nil
			},
		})
	}
}
