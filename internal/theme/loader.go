package theme

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/hop/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// StyleDef is a single style definition in a theme file. Unset fields
// inherit from the theme's Default style.
type StyleDef struct {
	Fg        *string `toml:"fg"`
	Bg        *string `toml:"bg"`
	Bold      *bool   `toml:"bold"`
	Italic    *bool   `toml:"italic"`
	Underline *bool   `toml:"underline"`
	Reverse   *bool   `toml:"reverse"`
}

type themeFile struct {
	Name   string              `toml:"name"`
	IsDark bool                `toml:"is_dark"`
	Styles map[string]StyleDef `toml:"styles"`
}

// LoadFile parses a TOML theme file.
func LoadFile(filePath string) (*Theme, error) {
	var tf themeFile
	metadata, err := toml.DecodeFile(filePath, &tf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse theme file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.WarnTagf("theme", "Theme file '%s': unrecognized keys: %v", filePath, undecoded)
	}
	if tf.Name == "" {
		tf.Name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}
	return build(tf)
}

// Parse reads a theme from TOML text.
func Parse(data string) (*Theme, error) {
	var tf themeFile
	if _, err := toml.Decode(data, &tf); err != nil {
		return nil, fmt.Errorf("failed to parse theme: %w", err)
	}
	return build(tf)
}

func build(tf themeFile) (*Theme, error) {
	t := &Theme{
		Name:   tf.Name,
		IsDark: tf.IsDark,
		Styles: make(map[string]tcell.Style, len(tf.Styles)+1),
	}

	base := tcell.StyleDefault
	if def, ok := tf.Styles[StyleDefault]; ok {
		var err error
		if base, err = convert(def, tcell.StyleDefault); err != nil {
			return nil, fmt.Errorf("theme '%s': style 'Default': %w", t.Name, err)
		}
	}
	t.Styles[StyleDefault] = base

	for name, def := range tf.Styles {
		if name == StyleDefault {
			continue
		}
		if !knownStyle(name) {
			logger.WarnTagf("theme", "Theme '%s': style '%s' matches no mode or interface element", t.Name, name)
		}
		style, err := convert(def, base)
		if err != nil {
			return nil, fmt.Errorf("theme '%s': style '%s': %w", t.Name, name, err)
		}
		t.Styles[name] = style
	}

	logger.DebugTagf("theme", "Theme '%s': %d styles", t.Name, len(t.Styles))
	return t, nil
}

func convert(def StyleDef, style tcell.Style) (tcell.Style, error) {
	if def.Fg != nil {
		color, err := parseColor(*def.Fg)
		if err != nil {
			return style, fmt.Errorf("invalid foreground color: %w", err)
		}
		style = style.Foreground(color)
	}
	if def.Bg != nil {
		color, err := parseColor(*def.Bg)
		if err != nil {
			return style, fmt.Errorf("invalid background color: %w", err)
		}
		style = style.Background(color)
	}
	if def.Bold != nil {
		style = style.Bold(*def.Bold)
	}
	if def.Italic != nil {
		style = style.Italic(*def.Italic)
	}
	if def.Underline != nil {
		style = style.Underline(*def.Underline)
	}
	if def.Reverse != nil {
		style = style.Reverse(*def.Reverse)
	}
	return style, nil
}

// parseColor accepts #RRGGBB, "reset", "default" and tcell color names.
func parseColor(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "#"):
		if len(s) != 7 {
			return tcell.ColorDefault, fmt.Errorf("'%s' must be #RRGGBB", s)
		}
		val, err := strconv.ParseInt(s[1:], 16, 32)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("invalid hex value '%s': %w", s, err)
		}
		return tcell.NewHexColor(int32(val)), nil
	case s == "reset":
		return tcell.ColorReset, nil
	case s == "default":
		return tcell.ColorDefault, nil
	}
	if c, ok := tcell.ColorNames[s]; ok {
		return c, nil
	}
	return tcell.ColorDefault, fmt.Errorf("unknown color '%s'", s)
}
