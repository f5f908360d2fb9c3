package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/bethropolis/hop/internal/app"
	"github.com/bethropolis/hop/internal/config"
	"github.com/bethropolis/hop/internal/logger"
	"github.com/bethropolis/hop/internal/theme"
	"github.com/bethropolis/hop/internal/tui"
)

var version = "dev"

func main() {
	flags := config.NewFlags(config.AppName)
	files, err := flags.Parse(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		return
	}

	cfg, warnings, err := config.LoadConfig(*flags.ConfigFilePath, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		os.Exit(1)
	}

	logOut, closeLog, err := openLog(cfg.Logger.LogFilePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		os.Exit(1)
	}
	defer closeLog()
	logger.SetFilterDebug(*flags.DebugLog)
	logger.Init(cfg.Logger, logOut)
	for _, w := range warnings {
		logger.WarnTagf("config", "%s", w)
	}
	logger.Infof("Starting %s %s with %d file(s)", config.AppName, version, len(files))

	ui, err := tui.New(theme.Dark)
	if err != nil {
		logger.Errorf("Error initializing terminal: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		os.Exit(1)
	}

	editor, err := app.NewApp(cfg, ui, files)
	if err != nil {
		ui.Close()
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		os.Exit(1)
	}
	if err := editor.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}
}

// openLog opens the log destination: "-" is stderr, empty is the default
// log file in the working directory.
func openLog(path string) (io.Writer, func(), error) {
	switch path {
	case "-":
		return os.Stderr, func() {}, nil
	case "":
		path = config.DefaultLogFileName
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file '%s': %w", path, err)
	}
	return f, func() { f.Close() }, nil
}
