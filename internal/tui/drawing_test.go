package tui

import (
	"strings"
	"testing"

	"github.com/bethropolis/hop/internal/core"
	"github.com/bethropolis/hop/internal/theme"
	"github.com/gdamore/tcell/v2"
)

func newTestTUI(t *testing.T, width, height int) *TUI {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	ui, err := NewWithScreen(s, theme.Dark)
	if err != nil {
		t.Fatalf("NewWithScreen() error = %v", err)
	}
	s.SetSize(width, height)
	t.Cleanup(ui.Close)
	return ui
}

func rowText(ui *TUI, y int) string {
	width, _ := ui.Size()
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := ui.Screen().GetContent(x, y)
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func TestGutterWidth(t *testing.T) {
	tests := map[int]int{0: 2, 1: 2, 9: 2, 10: 3, 999: 4}
	for lines, want := range tests {
		if got := GutterWidth(lines); got != want {
			t.Fatalf("GutterWidth(%d) = %d, want %d", lines, got, want)
		}
	}
}

func TestDrawDocument(t *testing.T) {
	ui := newTestTUI(t, 20, 4)
	doc, err := core.NewDocument("hello\n\tx", core.Options{TabWidth: 2})
	if err != nil {
		t.Fatal(err)
	}

	ui.DrawDocument(doc, theme.Dark, 3)

	want := []string{"1 hello", "2   x", ""}
	for y, w := range want {
		if got := rowText(ui, y); got != w {
			t.Fatalf("row %d = %q, want %q", y, got, w)
		}
	}

	_, _, style, _ := ui.Screen().GetContent(2, 0)
	if style != theme.Dark.Style(theme.StyleCursor) {
		t.Fatalf("cursor cell style = %v, want cursor style", style)
	}
}

func TestDrawSelection(t *testing.T) {
	ui := newTestTUI(t, 20, 2)
	doc, err := core.NewDocument("abcdef", core.Options{})
	if err != nil {
		t.Fatal(err)
	}
	doc.HorizontalJump(3, true)

	ui.DrawDocument(doc, theme.Dark, 1)

	sel := theme.Dark.Style(theme.StyleSelection)
	for x := 2; x < 5; x++ {
		if _, _, style, _ := ui.Screen().GetContent(x, 0); style != sel {
			t.Fatalf("cell %d style = %v, want selection", x, style)
		}
	}
	if _, _, style, _ := ui.Screen().GetContent(5, 0); style != theme.Dark.Style(theme.StyleCursor) {
		t.Fatalf("cell 5 style = %v, want cursor", style)
	}
}
