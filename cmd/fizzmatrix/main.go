package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/go-stack/stack"
	logxi "github.com/mgutz/logxi/v1"
	"github.com/pkg/errors"

	"github.com/DerLukas15/fizzmatrix"
	"github.com/DerLukas15/fizzmatrix/internal/ws281x"
)

var (
	logger = logxi.New("fizzmatrix")

	configPath = flag.String("config", "", "YAML file with the run settings, defaults are used when empty")
	output     = flag.String("output", "", "Overrides the output of the config file, terminal or ws281x")
	verbose    = flag.Bool("v", false, "When enabled will print every frame and the hardware setup")
)

func usage() {
	fmt.Fprintln(os.Stderr, path.Base(os.Args[0]))
	fmt.Fprintln(os.Stderr, "usage: ", os.Args[0], "[options]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "fizzmatrix counts from 1 to 100 on a 5x5 LED matrix, showing crackle for multiples of 3")
	fmt.Fprintln(os.Stderr, "and pop for multiples of 5")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "log levels are handled by the LOGXI env variables, these are documented at https://github.com/mgutz/logxi")
}

func init() {
	flag.Usage = usage
}

func main() {
	flag.Parse()

	if *verbose {
		logger.SetLevel(logxi.LevelDebug)
		fizzmatrix.Logger.SetLevel(logxi.LevelDebug)
		ws281x.Logger.SetLevel(logxi.LevelDebug)
		fizzmatrix.Debug = true
		ws281x.Debug = true
	}

	cfg := fizzmatrix.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = fizzmatrix.LoadConfig(*configPath); err != nil {
			logger.Error("could not load config", "error", err, "stack", stack.Trace().TrimRuntime())
			os.Exit(1)
		}
	}
	if *output != "" {
		cfg.Output = *output
		if err := cfg.Validate(); err != nil {
			logger.Error("invalid output", "error", err, "stack", stack.Trace().TrimRuntime())
			os.Exit(1)
		}
	}
	logger.Debug("starting", "first", cfg.First, "last", cfg.Last, "output", cfg.Output)

	display, err := fizzmatrix.Open(cfg, os.Stdout)
	if err != nil {
		logger.Error("could not open display", "error", err, "stack", stack.Trace().TrimRuntime())
		os.Exit(1)
	}

	err = fizzmatrix.Run(display, cfg)
	if closeErr := display.Close(); closeErr != nil {
		logger.Warn("could not close display", "error", closeErr)
	}
	if errors.Is(err, fizzmatrix.ErrSequenceExhausted) {
		// The count is not meant to end, reaching here is the halt state
		logger.Fatal(err.Error())
	}
	logger.Error("display failed", "error", err, "stack", stack.Trace().TrimRuntime())
	os.Exit(1)
}
