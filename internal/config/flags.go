package config

import (
	"flag"
	"fmt"
	"strings"
)

// Flags holds values parsed from command-line flags.
type Flags struct {
	fs *flag.FlagSet

	ConfigFilePath *string
	Version        *bool
	LogLevel       *string
	LogFilePath    *string
	TabWidth       *int
	ScrollOff      *int
	Indent         *string
	Highlighter    *string
	EnableTags     *string
	DisableTags    *string
	EnablePkgs     *string
	DisablePkgs    *string
	DebugLog       *bool
	Internal       *bool
}

// NewFlags defines the editor's flags on a new flag set.
func NewFlags(name string) *Flags {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	return &Flags{
		fs:             fs,
		ConfigFilePath: fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s, or $%s)", AppName, DefaultConfigFileName, ConfigEnv)),
		Version:        fs.Bool("version", false, "Show version information and exit"),
		LogLevel:       fs.String("loglevel", "", "Log level (debug, info, warn, error)"),
		LogFilePath:    fs.String("logfile", "", "Path to write log file (use '-' for stderr)"),
		TabWidth:       fs.Int("tabwidth", 0, "Display width of a tab"),
		ScrollOff:      fs.Int("scrolloff", -1, "Lines of context above/below cursor"),
		Indent:         fs.String("indent", "", "Indent mode, e.g. s4 (spaces) or h1 (tab)"),
		Highlighter:    fs.String("highlighter", "", "Highlighting engine: builtin, chroma, treesitter or none"),
		EnableTags:     fs.String("log-tags", "", "Comma-separated list of tags to enable"),
		DisableTags:    fs.String("log-disable-tags", "", "Comma-separated list of tags to disable"),
		EnablePkgs:     fs.String("log-packages", "", "Comma-separated list of packages to enable"),
		DisablePkgs:    fs.String("log-disable-packages", "", "Comma-separated list of packages to disable"),
		DebugLog:       fs.Bool("debug-log", false, "Trace the logger's filtering decisions"),
		Internal:       fs.Bool("internal-clipboard", false, "Keep clipboard data inside the editor"),
	}
}

// Parse parses args and returns the remaining non-flag arguments.
func (f *Flags) Parse(args []string) ([]string, error) {
	if err := f.fs.Parse(args); err != nil {
		return nil, err
	}
	return f.fs.Args(), nil
}

// ApplyOverrides updates cfg with the flags that were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			cfg.Logger.LogLevel = *f.LogLevel
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath
		case "tabwidth":
			cfg.Editor.TabWidth = *f.TabWidth
		case "scrolloff":
			cfg.Editor.ScrollOff = *f.ScrollOff
		case "indent":
			cfg.Editor.Indent = *f.Indent
		case "highlighter":
			cfg.Editor.Highlighter = *f.Highlighter
		case "internal-clipboard":
			cfg.Clipboard.Internal = *f.Internal
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		}
	})
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
