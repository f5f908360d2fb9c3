package autosave

import (
	"testing"
	"time"

	"github.com/bethropolis/hop/internal/core"
	"github.com/bethropolis/hop/internal/event"
	"github.com/bethropolis/hop/internal/plugin"
)

type fakeAPI struct {
	config map[string]interface{}
	posted chan func()
	saves  int
}

func (f *fakeAPI) Document() *core.Document { return nil }

func (f *fakeAPI) FilePath() string { return "" }

func (f *fakeAPI) SubscribeEvent(event.Type, event.Handler) {}

func (f *fakeAPI) RegisterCommand(string, plugin.CommandFunc) error { return nil }

func (f *fakeAPI) SetStatusMessage(format string, args ...interface{}) {}

func (f *fakeAPI) Post(fn func()) {
	select {
	case f.posted <- fn:
	default:
	}
}

func (f *fakeAPI) SaveModified() (int, error) {
	f.saves++
	return 1, nil
}

func (f *fakeAPI) PluginConfig(name, key string) (interface{}, bool) {
	v, ok := f.config[key]
	return v, ok
}

func TestDisabledByDefault(t *testing.T) {
	p := New()
	api := &fakeAPI{posted: make(chan func(), 1)}
	if err := p.Initialize(api); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if p.Enabled() {
		t.Fatal("Enabled() = true without config")
	}
	if p.Interval() != defaultInterval {
		t.Fatalf("Interval() = %v, want %v", p.Interval(), defaultInterval)
	}
	if err := p.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
}

func TestInvalidConfigKeepsDefaults(t *testing.T) {
	p := New()
	api := &fakeAPI{
		config: map[string]interface{}{"enabled": "yes", "interval": "-5s"},
		posted: make(chan func(), 1),
	}
	if err := p.Initialize(api); err != nil {
		t.Fatal(err)
	}
	if p.Enabled() || p.Interval() != defaultInterval {
		t.Fatalf("config = (%v, %v), want defaults", p.Enabled(), p.Interval())
	}
}

func TestSavesOnEventLoop(t *testing.T) {
	p := New()
	api := &fakeAPI{
		config: map[string]interface{}{"enabled": true, "interval": "5ms"},
		posted: make(chan func(), 1),
	}
	if err := p.Initialize(api); err != nil {
		t.Fatal(err)
	}
	defer p.Shutdown()

	select {
	case fn := <-api.posted:
		if api.saves != 0 {
			t.Fatal("saved before the posted func ran")
		}
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("no save posted")
	}
	if api.saves != 1 {
		t.Fatalf("saves = %d, want 1", api.saves)
	}
}
