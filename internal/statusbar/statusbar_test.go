package statusbar

import (
	"strings"
	"testing"
	"time"

	"github.com/bethropolis/hop/internal/theme"
	"github.com/gdamore/tcell/v2"
)

func newScreen(t *testing.T, width int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	s.SetSize(width, 1)
	t.Cleanup(s.Fini)
	return s
}

func line(s tcell.Screen, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := s.GetContent(x, 0)
		b.WriteRune(r)
	}
	return b.String()
}

func TestDrawState(t *testing.T) {
	s := newScreen(t, 50)
	sb := New(time.Second)
	sb.SetState(State{
		Tabs:    []TabInfo{{Name: "a.go"}, {Name: "b.go", Modified: true}},
		Current: 1,
		Cursor:  "Line 2, Column 3",
		Cursors: 2,
	})
	sb.Draw(s, 0, 50, theme.Dark)

	got := line(s, 50)
	if !strings.HasPrefix(got, "a.go [b.go*]") {
		t.Fatalf("left = %q, want tab list", got)
	}
	if !strings.HasSuffix(got, "Line 2, Column 3 | 2 cursors") {
		t.Fatalf("right = %q, want cursor summary", got)
	}
	if _, _, style, _ := s.GetContent(6, 0); style != theme.Dark.Style(theme.StyleTabActive) {
		t.Fatalf("active tab style = %v", style)
	}
}

func TestMessageExpires(t *testing.T) {
	s := newScreen(t, 30)
	sb := New(time.Second)
	now := time.Unix(100, 0)
	sb.now = func() time.Time { return now }
	sb.SetState(State{Cursor: "Line 1, Column 1"})

	sb.SetError("cannot paste")
	sb.Draw(s, 0, 30, theme.Dark)
	if got := strings.TrimSpace(line(s, 30)); got != "cannot paste" {
		t.Fatalf("bar = %q, want message", got)
	}
	if _, _, style, _ := s.GetContent(0, 0); style != theme.Dark.Style(theme.StyleStatusBarError) {
		t.Fatalf("message style = %v, want error style", style)
	}

	now = now.Add(2 * time.Second)
	sb.Draw(s, 0, 30, theme.Dark)
	if got := strings.TrimSpace(line(s, 30)); got != "Line 1, Column 1" {
		t.Fatalf("bar = %q, want state after expiry", got)
	}
}

func TestPrompt(t *testing.T) {
	s := newScreen(t, 30)
	sb := New(time.Second)
	sb.StartPrompt("Find")
	for _, r := range "fooo" {
		sb.PromptInsert(r)
	}
	sb.PromptBackspace()

	sb.Draw(s, 0, 30, theme.Dark)
	if got := strings.TrimSpace(line(s, 30)); got != "Find: foo" {
		t.Fatalf("bar = %q, want %q", got, "Find: foo")
	}
	if !sb.Prompting() {
		t.Fatal("Prompting() = false")
	}
	if got := sb.EndPrompt(); got != "foo" {
		t.Fatalf("EndPrompt() = %q, want %q", got, "foo")
	}
	if sb.Prompting() {
		t.Fatal("Prompting() = true after EndPrompt")
	}
}
