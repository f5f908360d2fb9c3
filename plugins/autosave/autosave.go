// Package autosave periodically writes modified tabs that have a file name.
package autosave

import (
	"sync"
	"time"

	"github.com/bethropolis/hop/internal/logger"
	"github.com/bethropolis/hop/internal/plugin"
)

var _ plugin.Plugin = (*AutoSave)(nil)

const (
	defaultEnabled  = false
	defaultInterval = 1 * time.Minute
)

// AutoSave plugin automatically saves modified tabs.
type AutoSave struct {
	api plugin.EditorAPI

	mutex    sync.RWMutex // guards enabled and interval
	enabled  bool
	interval time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New creates a new instance of the AutoSave plugin.
func New() *AutoSave {
	return &AutoSave{
		enabled:  defaultEnabled,
		interval: defaultInterval,
	}
}

func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize reads the [plugins.autosave] table and starts the saver loop
// if enabled.
func (p *AutoSave) Initialize(api plugin.EditorAPI) error {
	p.api = api
	name := p.Name()

	p.mutex.Lock()
	if v, ok := api.PluginConfig(name, "enabled"); ok {
		if b, isBool := v.(bool); isBool {
			p.enabled = b
		} else {
			logger.Warnf("%s: Invalid type for 'enabled' config (%T), using default (%v)", name, v, p.enabled)
		}
	}
	if v, ok := api.PluginConfig(name, "interval"); ok {
		if s, isStr := v.(string); isStr {
			d, err := time.ParseDuration(s)
			switch {
			case err != nil:
				logger.Warnf("%s: Invalid format for 'interval' config ('%s'): %v. Using default (%v)", name, s, err, p.interval)
			case d <= 0:
				logger.Warnf("%s: 'interval' config must be positive ('%s'). Using default (%v)", name, s, p.interval)
			default:
				p.interval = d
			}
		} else {
			logger.Warnf("%s: Invalid type for 'interval' config (%T), using default (%v)", name, v, p.interval)
		}
	}
	enabled, interval := p.enabled, p.interval
	p.mutex.Unlock()

	logger.Infof("%s initialized. Enabled: %v, Interval: %v", name, enabled, interval)

	if enabled {
		p.stopChan = make(chan struct{})
		p.wg.Add(1)
		go p.saverLoop(interval)
	}
	return nil
}

// Enabled reports whether the saver loop runs.
func (p *AutoSave) Enabled() bool {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.enabled
}

// Interval returns the time between saves.
func (p *AutoSave) Interval() time.Duration {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.interval
}

// Shutdown signals the saver goroutine to stop and waits for it.
func (p *AutoSave) Shutdown() error {
	if p.stopChan != nil {
		close(p.stopChan)
		p.wg.Wait()
		p.stopChan = nil
		logger.DebugTagf("autosave", "%s: Saver goroutine stopped.", p.Name())
	}
	return nil
}

// saverLoop hands a save to the event loop on every tick. Documents are
// owned by the event loop, so the save itself never runs here.
func (p *AutoSave) saverLoop(interval time.Duration) {
	defer p.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.api.Post(p.saveModified)
		case <-p.stopChan:
			return
		}
	}
}

// saveModified writes the modified tabs. It runs on the event loop.
func (p *AutoSave) saveModified() {
	n, err := p.api.SaveModified()
	if err != nil {
		logger.Errorf("%s: Auto-save failed: %v", p.Name(), err)
		p.api.SetStatusMessage("Auto-save failed: %v", err)
		return
	}
	if n > 0 {
		logger.DebugTagf("autosave", "%s: Auto-saved %d tab(s)", p.Name(), n)
	}
}
