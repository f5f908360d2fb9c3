package highlighter

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bethropolis/hop/internal/logger"
)

// Engine names accepted by the registry and the configuration.
const (
	EngineBuiltin    = "builtin"
	EngineChroma     = "chroma"
	EngineTreeSitter = "treesitter"
)

// Language is one registered way to highlight a language.
type Language struct {
	// Name is the lowercase syntax name users type to switch to it.
	Name string
	// Engine is one of the Engine* constants.
	Engine string
	// Extensions without the leading dot.
	Extensions []string
	// New builds a fresh highlighter; engines may keep per-instance state.
	New func() (Highlighter, error)
}

// Registry resolves file names and syntax names to highlighters.
type Registry struct {
	mu        sync.RWMutex
	languages []*Language
	byExt     map[string][]*Language
	byName    map[string][]*Language
	prefer    []string
}

// NewRegistry creates an empty registry. prefer lists engines in order of
// preference; engines missing from it rank after the listed ones.
func NewRegistry(prefer ...string) *Registry {
	return &Registry{
		byExt:  make(map[string][]*Language),
		byName: make(map[string][]*Language),
		prefer: prefer,
	}
}

// Register adds a language.
func (r *Registry) Register(lang *Language) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lang.Name = strings.ToLower(lang.Name)
	r.languages = append(r.languages, lang)
	r.byName[lang.Name] = append(r.byName[lang.Name], lang)
	for _, ext := range lang.Extensions {
		ext = strings.ToLower(strings.TrimPrefix(ext, "."))
		r.byExt[ext] = append(r.byExt[ext], lang)
	}
	logger.DebugTagf("syntax", "Registered %s syntax %q for %v", lang.Engine, lang.Name, lang.Extensions)
}

func (r *Registry) rank(engine string) int {
	for i, e := range r.prefer {
		if e == engine {
			return i
		}
	}
	return len(r.prefer)
}

// best returns the candidate with the most preferred engine; registration
// order breaks ties.
func (r *Registry) best(candidates []*Language) *Language {
	var found *Language
	for _, l := range candidates {
		if found == nil || r.rank(l.Engine) < r.rank(found.Engine) {
			found = l
		}
	}
	return found
}

// ForFile returns the highlighter for path, or Plain when nothing matches.
func (r *Registry) ForFile(path string) Highlighter {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	r.mu.RLock()
	candidates := r.byExt[ext]
	r.mu.RUnlock()

	for len(candidates) > 0 {
		lang := r.best(candidates)
		h, err := lang.New()
		if err == nil {
			logger.DebugTagf("syntax", "Using %s syntax %q for %s", lang.Engine, lang.Name, path)
			return h
		}
		logger.Warnf("Syntax %q (%s) failed to load: %v", lang.Name, lang.Engine, err)
		candidates = without(candidates, lang)
	}
	return Plain{}
}

// Lookup resolves a syntax name. "none" yields Plain. A name may be
// qualified with an engine, as in "go@treesitter".
func (r *Registry) Lookup(name string) (Highlighter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "none" {
		return Plain{}, nil
	}
	engine := ""
	if at := strings.IndexByte(name, '@'); at >= 0 {
		name, engine = name[:at], name[at+1:]
	}

	r.mu.RLock()
	candidates := r.byName[name]
	r.mu.RUnlock()

	if engine != "" {
		var filtered []*Language
		for _, l := range candidates {
			if l.Engine == engine {
				filtered = append(filtered, l)
			}
		}
		candidates = filtered
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSyntax, name)
	}
	h, err := r.best(candidates).New()
	if err != nil {
		return nil, fmt.Errorf("loading syntax %q: %w", name, err)
	}
	return h, nil
}

// Names returns every registered syntax name once, in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool, len(r.languages))
	names := make([]string, 0, len(r.languages))
	for _, l := range r.languages {
		if !seen[l.Name] {
			seen[l.Name] = true
			names = append(names, l.Name)
		}
	}
	return names
}

func without(list []*Language, drop *Language) []*Language {
	out := make([]*Language, 0, len(list))
	for _, l := range list {
		if l != drop {
			out = append(out, l)
		}
	}
	return out
}
