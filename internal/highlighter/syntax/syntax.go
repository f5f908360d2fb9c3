package syntax

import (
	"bytes"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/bethropolis/hop/internal/highlighter"
)

// Syntax highlights lines according to a Definition. The context it
// returns is the index of the unterminated delimited rule plus one.
type Syntax struct {
	name      string
	comments  [][]byte
	delimited []*Delimited
	keywords  map[string]highlighter.Mode
	symbols   [][]byte
	identGlue map[rune]bool
	numGlue   map[rune]bool
	callSyms  map[rune]bool
}

// New compiles def into a highlighter called name.
func New(name string, def *Definition) *Syntax {
	s := &Syntax{
		name:      name,
		keywords:  make(map[string]highlighter.Mode),
		identGlue: runeSet(def.IdentifierGlue),
		numGlue:   runeSet(def.NumberGlue),
		callSyms:  runeSet(def.CallSyms),
	}
	for _, p := range def.CommentPrefix {
		s.comments = append(s.comments, []byte(p))
	}

	groups := []struct {
		rules []Delimited
		mode  highlighter.Mode
	}{
		{def.MultiLineComments, highlighter.Comment},
		{def.StringsNormal, highlighter.String},
		{def.StringsSpecial, highlighter.StringSpecial},
	}
	for _, g := range groups {
		for i := range g.rules {
			r := g.rules[i]
			r.mode = g.mode
			r.escapes = runeSet(r.Escape)
			s.delimited = append(s.delimited, &r)
		}
	}

	// weaker classes first so stronger ones win on duplicates
	for _, kw := range def.KeywordsWeak {
		s.keywords[kw] = highlighter.KeywordWeak
	}
	for _, kw := range def.KeywordsBasic {
		s.keywords[kw] = highlighter.KeywordBasic
	}
	for _, kw := range def.KeywordsStrong {
		s.keywords[kw] = highlighter.KeywordStrong
	}

	for _, sym := range def.Symbols {
		if sym != "" {
			s.symbols = append(s.symbols, []byte(sym))
		}
	}
	sort.SliceStable(s.symbols, func(i, j int) bool { return len(s.symbols[i]) > len(s.symbols[j]) })
	return s
}

func runeSet(list []string) map[rune]bool {
	set := make(map[rune]bool, len(list))
	for _, s := range list {
		r, _ := utf8.DecodeRuneInString(s)
		set[r] = true
	}
	return set
}

func (s *Syntax) Name() string { return s.name }

func (s *Syntax) Highlight(prev highlighter.Context, line []byte) ([]highlighter.Span, highlighter.Context) {
	var b highlighter.Builder
	pos := 0

	if prev != highlighter.NoContext && int(prev) <= len(s.delimited) {
		r := s.delimited[prev-1]
		end, closed := r.body(&b, line, 0)
		if !closed {
			return b.Finish(len(line)), prev
		}
		pos = end
	}

	for pos < len(line) {
		rest := line[pos:]

		if hasAnyPrefix(rest, s.comments) {
			b.Add(pos, len(line), highlighter.Comment)
			break
		}

		if idx, r := s.delimitedAt(line, pos); r != nil {
			b.Add(pos, pos+len(r.Start), r.mode)
			end, closed := r.body(&b, line, pos+len(r.Start))
			if !closed {
				if r.MultiLine {
					return b.Finish(len(line)), highlighter.Context(idx + 1)
				}
				break
			}
			pos = end
			continue
		}

		c, size := utf8.DecodeRune(rest)
		switch {
		case unicode.IsDigit(c):
			end := s.scanWhile(line, pos, func(r rune) bool {
				return unicode.IsLetter(r) || unicode.IsDigit(r) || s.numGlue[r]
			})
			b.Add(pos, end, highlighter.Number)
			pos = end
		case unicode.IsLetter(c) || s.identGlue[c]:
			end := s.scanWhile(line, pos, func(r rune) bool {
				return unicode.IsLetter(r) || unicode.IsDigit(r) || s.identGlue[r]
			})
			b.Add(pos, end, s.classify(line, pos, end))
			pos = end
		default:
			if sym := longestPrefix(rest, s.symbols); sym > 0 {
				b.Add(pos, pos+sym, highlighter.Symbol)
				pos += sym
				continue
			}
			pos += size
		}
	}
	return b.Finish(len(line)), highlighter.NoContext
}

func (s *Syntax) scanWhile(line []byte, pos int, ok func(rune) bool) int {
	for pos < len(line) {
		r, size := utf8.DecodeRune(line[pos:])
		if !ok(r) {
			break
		}
		pos += size
	}
	return pos
}

// classify tags the word line[start:end]: keywords first, then calls (a
// call symbol follows, ignoring blanks), then capitalised type names.
func (s *Syntax) classify(line []byte, start, end int) highlighter.Mode {
	word := line[start:end]
	if m, ok := s.keywords[string(word)]; ok {
		return m
	}
	after := bytes.TrimLeft(line[end:], " \t")
	if r, _ := utf8.DecodeRune(after); len(after) > 0 && s.callSyms[r] {
		return highlighter.Call
	}
	if r, _ := utf8.DecodeRune(word); unicode.IsUpper(r) {
		return highlighter.Type
	}
	return highlighter.Identifier
}

// delimitedAt returns the first rule opening at pos.
func (s *Syntax) delimitedAt(line []byte, pos int) (int, *Delimited) {
	for i, r := range s.delimited {
		if !bytes.HasPrefix(line[pos:], []byte(r.Start)) {
			continue
		}
		if r.SingleChar && !r.singleCharAt(line, pos+len(r.Start)) {
			continue
		}
		return i, r
	}
	return 0, nil
}

// singleCharAt reports whether exactly one character, or one escape, sits
// at from before the stop sequence.
func (r *Delimited) singleCharAt(line []byte, from int) bool {
	if from >= len(line) {
		return false
	}
	c, size := utf8.DecodeRune(line[from:])
	from += size
	if c == '\\' && from < len(line) {
		e, esize := utf8.DecodeRune(line[from:])
		if !r.escapes[e] {
			return false
		}
		from += esize
	}
	return bytes.HasPrefix(line[from:], []byte(r.Stop))
}

// body highlights the inside of a delimited construct starting at from,
// up to and including the stop sequence. closed is false when the line
// ends first.
func (r *Delimited) body(b *highlighter.Builder, line []byte, from int) (end int, closed bool) {
	stop := []byte(r.Stop)
	pos := from
	for pos < len(line) {
		rest := line[pos:]
		if bytes.HasPrefix(rest, stop) {
			b.Add(from, pos+len(stop), r.mode)
			return pos + len(stop), true
		}

		if rest[0] == '\\' && len(r.escapes) > 0 {
			if e, size := utf8.DecodeRune(rest[1:]); len(rest) > 1 && r.escapes[e] {
				b.Add(from, pos, r.mode)
				b.Add(pos, pos+1+size, highlighter.Escape)
				pos += 1 + size
				from = pos
				continue
			}
		}

		if n := r.formatAt(rest); n > 0 {
			b.Add(from, pos, r.mode)
			b.Add(pos, pos+n, highlighter.Format)
			pos += n
			from = pos
			continue
		}

		_, size := utf8.DecodeRune(rest)
		pos += size
	}
	b.Add(from, len(line), r.mode)
	return len(line), false
}

// formatAt returns the length of a format placeholder at the start of
// rest, or zero.
func (r *Delimited) formatAt(rest []byte) int {
	switch {
	case r.StrfmtPercent && rest[0] == '%':
		for i := 1; i < len(rest); i++ {
			c := rest[i]
			switch {
			case c == '%' && i == 1:
				return 2
			case bytes.IndexByte([]byte("-+# 0123456789.*"), c) >= 0:
				continue
			case c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z':
				return i + 1
			}
			return 0
		}
	case r.StrfmtBraces && rest[0] == '{':
		if len(rest) > 1 && rest[1] == '{' {
			return 0
		}
		for i := 1; i < len(rest); i++ {
			switch rest[i] {
			case '}':
				return i + 1
			case ' ', '\t', '{', '"', '\'':
				return 0
			}
		}
	}
	return 0
}

func hasAnyPrefix(s []byte, prefixes [][]byte) bool {
	for _, p := range prefixes {
		if len(p) > 0 && bytes.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// longestPrefix returns the length of the first symbol prefixing s.
// symbols must be sorted longest first.
func longestPrefix(s []byte, symbols [][]byte) int {
	for _, sym := range symbols {
		if bytes.HasPrefix(s, sym) {
			return len(sym)
		}
	}
	return 0
}
