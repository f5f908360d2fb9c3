package wordcount

import (
	"fmt"
	"testing"

	"github.com/bethropolis/hop/internal/core"
	"github.com/bethropolis/hop/internal/event"
	"github.com/bethropolis/hop/internal/plugin"
)

type fakeAPI struct {
	doc      *core.Document
	commands map[string]plugin.CommandFunc
	message  string
}

func (f *fakeAPI) Document() *core.Document { return f.doc }

func (f *fakeAPI) FilePath() string { return "" }

func (f *fakeAPI) SaveModified() (int, error) { return 0, nil }

func (f *fakeAPI) SubscribeEvent(event.Type, event.Handler) {}

func (f *fakeAPI) RegisterCommand(name string, cmd plugin.CommandFunc) error {
	f.commands[name] = cmd
	return nil
}

func (f *fakeAPI) SetStatusMessage(format string, args ...interface{}) {
	f.message = fmt.Sprintf(format, args...)
}

func (f *fakeAPI) Post(fn func()) { fn() }

func (f *fakeAPI) PluginConfig(string, string) (interface{}, bool) { return nil, false }

func newAPI(t *testing.T, text string) *fakeAPI {
	t.Helper()
	doc, err := core.NewDocument(text, core.Options{})
	if err != nil {
		t.Fatal(err)
	}
	api := &fakeAPI{doc: doc, commands: map[string]plugin.CommandFunc{}}
	if err := New().Initialize(api); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	return api
}

func TestWordCountDocument(t *testing.T) {
	api := newAPI(t, "one two\nthree")
	wc, ok := api.commands["wc"]
	if !ok {
		t.Fatal("wc command not registered")
	}
	if err := wc(nil); err != nil {
		t.Fatalf("wc() error = %v", err)
	}
	want := "Document: 2 lines, 3 words, 13 bytes"
	if api.message != want {
		t.Fatalf("message = %q, want %q", api.message, want)
	}
}

func TestWordCountSelection(t *testing.T) {
	api := newAPI(t, "one two\nthree")
	api.doc.LineSeek(false, true)

	if err := api.commands["wc"](nil); err != nil {
		t.Fatal(err)
	}
	want := "Selection: 1 lines, 2 words, 7 bytes"
	if api.message != want {
		t.Fatalf("message = %q, want %q", api.message, want)
	}
}
