package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/bethropolis/hop/internal/logger"
)

// ErrUnavailable is returned when no system clipboard mechanism worked.
var ErrUnavailable = errors.New("system clipboard unavailable")

// Program is an external clipboard tool.
type Program struct {
	Name  string   `toml:"name"`
	Copy  []string `toml:"copy"`  // reads the text from stdin
	Paste []string `toml:"paste"` // prints the text to stdout
}

// DefaultPrograms are tried in order when the native clipboard fails.
var DefaultPrograms = []Program{
	{Name: "wl-clipboard", Copy: []string{"wl-copy"}, Paste: []string{"wl-paste", "-n"}},
	{Name: "xclip", Copy: []string{"xclip", "-selection", "clipboard"}, Paste: []string{"xclip", "-selection", "clipboard", "-o"}},
	{Name: "pbcopy", Copy: []string{"pbcopy"}, Paste: []string{"pbpaste"}},
}

// Runner executes argv, feeding it stdin, and returns its standard output.
type Runner func(argv []string, stdin string) (string, error)

func execRunner(argv []string, stdin string) (string, error) {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(stdin)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%w: %s", err, msg)
		}
		return "", err
	}
	return out.String(), nil
}

// System talks to the operating system clipboard: first through the
// native backend, then through each configured program in order.
type System struct {
	native   bool
	programs []Program
	run      Runner
}

// SystemOption configures a System.
type SystemOption func(*System)

// WithPrograms replaces the fallback program list.
func WithPrograms(programs []Program) SystemOption {
	return func(s *System) { s.programs = programs }
}

// WithRunner replaces process execution.
func WithRunner(run Runner) SystemOption {
	return func(s *System) { s.run = run }
}

// WithoutNative skips the native backend.
func WithoutNative() SystemOption {
	return func(s *System) { s.native = false }
}

// NewSystem creates a system clipboard.
func NewSystem(opts ...SystemOption) *System {
	s := &System{native: true, programs: DefaultPrograms, run: execRunner}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *System) Write(text string) error {
	var errs []error
	if s.native && !clipboard.Unsupported {
		err := clipboard.WriteAll(text)
		if err == nil {
			return nil
		}
		errs = append(errs, fmt.Errorf("native: %w", err))
	}
	for _, p := range s.programs {
		if len(p.Copy) == 0 {
			continue
		}
		if _, err := s.run(p.Copy, text); err != nil {
			logger.DebugTagf("clipboard", "Clipboard: %s copy failed: %v", p.Name, err)
			errs = append(errs, fmt.Errorf("%s: %w", p.Name, err))
			continue
		}
		logger.DebugTagf("clipboard", "Clipboard: copied %d bytes with %s", len(text), p.Name)
		return nil
	}
	return unavailable(errs)
}

func (s *System) Read() (string, error) {
	var errs []error
	if s.native && !clipboard.Unsupported {
		text, err := clipboard.ReadAll()
		if err == nil {
			return text, nil
		}
		errs = append(errs, fmt.Errorf("native: %w", err))
	}
	for _, p := range s.programs {
		if len(p.Paste) == 0 {
			continue
		}
		text, err := s.run(p.Paste, "")
		if err != nil {
			logger.DebugTagf("clipboard", "Clipboard: %s paste failed: %v", p.Name, err)
			errs = append(errs, fmt.Errorf("%s: %w", p.Name, err))
			continue
		}
		return text, nil
	}
	return "", unavailable(errs)
}

func unavailable(errs []error) error {
	if len(errs) == 0 {
		return ErrUnavailable
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, errors.Join(errs...))
}
