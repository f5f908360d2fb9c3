// Package highlighter defines the narrow interface the editing core uses to
// classify the bytes of a line, together with the registry of engines that
// implement it.
package highlighter

import (
	"errors"
	"strings"
)

// ErrUnknownSyntax is returned when a syntax name does not resolve to any engine.
var ErrUnknownSyntax = errors.New("no such syntax")

// Mode is the semantic classification attached to a span of a line.
type Mode uint8

const (
	Unclassified Mode = iota
	Identifier
	Type
	String
	StringSpecial
	Escape
	Format
	Comment
	Symbol
	Number
	KeywordStrong
	KeywordBasic
	KeywordWeak
	Call
)

var modeNames = [...]string{
	Unclassified:  "wspace",
	Identifier:    "identifier",
	Type:          "type",
	String:        "string",
	StringSpecial: "string.special",
	Escape:        "string.escape",
	Format:        "string.format",
	Comment:       "comment",
	Symbol:        "punctuation",
	Number:        "number",
	KeywordStrong: "keyword.strong",
	KeywordBasic:  "keyword",
	KeywordWeak:   "constant",
	Call:          "function.call",
}

// String returns the style name used to look the mode up in a theme.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return modeNames[Unclassified]
}

// Modes lists every mode in declaration order.
func Modes() []Mode {
	modes := make([]Mode, len(modeNames))
	for i := range modes {
		modes[i] = Mode(i)
	}
	return modes
}

// ModeForName resolves a style or capture name. Dotted names fall back to
// their shorter prefixes, so "keyword.control.go" resolves like "keyword".
func ModeForName(name string) (Mode, bool) {
	for name != "" {
		for i, n := range modeNames {
			if n == name {
				return Mode(i), true
			}
		}
		dot := strings.LastIndexByte(name, '.')
		if dot < 0 {
			break
		}
		name = name[:dot]
	}
	return Unclassified, false
}

// Span tags Len bytes of a line with a Mode.
type Span struct {
	Mode Mode
	Len  int
}

// Context is highlighter state carried from the end of one line into the
// next one (open block comments, multi-line strings).
type Context uint32

// NoContext means the previous line closed every construct it opened.
const NoContext Context = 0

// Highlighter classifies one line at a time. Implementations must return
// spans whose lengths sum to len(line); Normalize can be used to enforce it.
type Highlighter interface {
	Name() string
	Highlight(prev Context, line []byte) ([]Span, Context)
}

// Normalize drops empty spans, merges neighbours with the same mode, clips
// spans that run past n bytes and pads any uncovered tail with an
// Unclassified span, so the result always covers exactly n bytes.
func Normalize(spans []Span, n int) []Span {
	out := spans[:0]
	total := 0
	for _, s := range spans {
		if s.Len <= 0 || total >= n {
			continue
		}
		if total+s.Len > n {
			s.Len = n - total
		}
		total += s.Len
		if k := len(out); k > 0 && out[k-1].Mode == s.Mode {
			out[k-1].Len += s.Len
			continue
		}
		out = append(out, s)
	}
	if total < n {
		if k := len(out); k > 0 && out[k-1].Mode == Unclassified {
			out[k-1].Len += n - total
		} else {
			out = append(out, Span{Mode: Unclassified, Len: n - total})
		}
	}
	return out
}

// Builder accumulates byte ranges in ascending order and fills the gaps
// between them with Unclassified spans.
type Builder struct {
	spans []Span
	pos   int
}

// Add records [start, end) as m. Ranges starting before the end of the
// previous one are clipped; empty ranges are ignored.
func (b *Builder) Add(start, end int, m Mode) {
	if start < b.pos {
		start = b.pos
	}
	if end <= start {
		return
	}
	if start > b.pos {
		b.spans = append(b.spans, Span{Mode: Unclassified, Len: start - b.pos})
	}
	b.spans = append(b.spans, Span{Mode: m, Len: end - start})
	b.pos = end
}

// Pos returns the end of the last added range.
func (b *Builder) Pos() int { return b.pos }

// Finish returns spans covering exactly n bytes and resets the builder.
func (b *Builder) Finish(n int) []Span {
	spans := Normalize(b.spans, n)
	b.spans, b.pos = nil, 0
	return spans
}

// Plain is the highlighter used when no syntax is selected: every line is a
// single Unclassified span.
type Plain struct{}

func (Plain) Name() string { return "none" }

func (Plain) Highlight(_ Context, line []byte) ([]Span, Context) {
	if len(line) == 0 {
		return nil, NoContext
	}
	return []Span{{Mode: Unclassified, Len: len(line)}}, NoContext
}
