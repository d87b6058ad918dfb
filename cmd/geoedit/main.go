package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/pkg/errors"

	"geoedit/internal/config"
	"geoedit/internal/tui"
)

func main() {
	os.Exit(run())
}

// run returns the exit code so deferred cleanup happens before main exits.
func run() int {
	configFlag := flag.String("config", "", "YAML settings file (camera, map style, colours)")
	outFlag := flag.String("out", "", "Where w saves the feature; .shp writes a shapefile")
	logFlag := flag.String("log", "", "Log file; the terminal belongs to the editor")
	verbosityFlag := flag.Int("v", -1, "Log verbosity (0-4)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *outFlag != "" {
		cfg.Output = *outFlag
	}
	if *logFlag != "" {
		cfg.LogFile = *logFlag
	}
	if *verbosityFlag >= 0 {
		cfg.Verbosity = *verbosityFlag
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger, closeLog, err := openLogger(cfg.LogFile, cfg.Verbosity)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closeLog()
	logger.Info("starting", "camera", cfg.Camera, "style", cfg.MapStyle, "output", cfg.Output)

	var m tea.Model
	if flag.NArg() > 0 {
		m = tui.NewWithPath(cfg, logger, flag.Arg(0))
	} else {
		m = tui.New(cfg, logger)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		logger.Error(err, "program exited")
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// openLogger appends to path through stdr. An empty path discards logs.
func openLogger(path string, verbosity int) (logr.Logger, func() error, error) {
	if path == "" {
		return logr.Discard(), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return logr.Discard(), nil, errors.Wrap(err, "open log file")
	}
	stdLogger := log.New(f, "", log.LstdFlags)
	stdr.SetVerbosity(verbosity)
	return stdr.NewWithOptions(stdLogger, stdr.Options{LogCaller: stdr.All}).WithName("geoedit"), f.Close, nil
}
