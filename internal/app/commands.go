package app

import (
	"fmt"
	"sort"
	"strings"
)

// CommandFunc runs a command with its arguments.
type CommandFunc func(a *App, args []string) error

var commands map[string]CommandFunc

func init() {
	commands = map[string]CommandFunc{
		"syntax": func(a *App, args []string) error {
			if len(args) == 0 {
				a.statusBar.SetMessage("Syntax: %s. Available: %s", a.doc().Highlighter().Name(), strings.Join(a.highlighting.Names(), ", "))
				return nil
			}
			return a.setSyntax(args[0])
		},
		"indent": func(a *App, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: indent s<width>|h<width>")
			}
			return a.doc().SetIndentMode(args[0])
		},
		"theme": func(a *App, args []string) error {
			if len(args) == 0 {
				a.statusBar.SetMessage("Current theme: %s. Available: %s", a.themes.Current().Name, strings.Join(a.themes.ListThemes(), ", "))
				return nil
			}
			return a.setTheme(strings.Join(args, " "))
		},
		"open": func(a *App, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: open <path>")
			}
			a.open(args[0])
			return nil
		},
		"saveas": func(a *App, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: saveas <path>")
			}
			i := a.tabs.Index()
			if err := a.tabs.SaveAs(i, args[0]); err != nil {
				return err
			}
			a.doc().SetHighlighter(a.highlighting.ForFile(a.tabs.Current().Path))
			return nil
		},
		"close!": func(a *App, args []string) error {
			return a.tabs.Close(a.tabs.Index(), true)
		},
		"quit!": func(a *App, args []string) error {
			a.quit = true
			return nil
		},
		"help": func(a *App, args []string) error {
			a.statusBar.SetMessage("Commands: %s", strings.Join(a.commandNames(), ", "))
			return nil
		},
	}
}

func (a *App) commandNames() []string {
	names := make([]string, 0, len(commands)+len(a.pluginCommands))
	for name := range commands {
		names = append(names, name)
	}
	for name := range a.pluginCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// runCommand parses and executes one command line.
func (a *App) runCommand(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	if cmd, ok := commands[fields[0]]; ok {
		return cmd(a, fields[1:])
	}
	if cmd, ok := a.pluginCommands[fields[0]]; ok {
		return cmd(fields[1:])
	}
	return fmt.Errorf("unknown command '%s'", fields[0])
}
