// Midway runs a carnival room: the Highstriker, the milk bottle throw,
// Ring Toss and Pandar the fortune teller.
// Usage: midway [--version] [--plain] [--script <file>] [--trace] [--seed <n>] [--player <name>] [content_directory]
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/nathoo/midway/cli"
	"github.com/nathoo/midway/config"
	"github.com/nathoo/midway/engine"
	"github.com/nathoo/midway/engine/state"
	"github.com/nathoo/midway/loader"
	"github.com/nathoo/midway/session"
	"github.com/nathoo/midway/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: midway [--version] [--plain] [--script <file>] [--trace] [--seed <n>] [--player <name>] [content_directory]\n" +
	"  --seed <n>  replay outcomes from seed n (any int64, 0 included); without it a random seed is drawn"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	plain := false
	trace := false
	var scriptFile string
	var contentDir string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("midway %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--script":
			scriptFile = requireValue(args, &i, "--script requires a file path")
		case "--player":
			cfg.Player = requireValue(args, &i, "--player requires a name")
		case "--seed":
			raw := requireValue(args, &i, "--seed requires a number")
			seed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "--seed: %v\n", err)
				os.Exit(1)
			}
			cfg.Seed = &seed
		case "-h", "--help":
			fmt.Println(usage)
			return
		default:
			if contentDir == "" {
				contentDir = args[i]
			}
		}
	}
	if contentDir != "" {
		cfg.ContentDir = contentDir
	}

	// Load and compile Lua carnival content.
	var defs *state.Defs
	if cfg.ContentDir == "" {
		defs, err = loader.LoadDefault()
	} else {
		defs, err = loader.Load(cfg.ContentDir)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading carnival: %v\n", err)
		os.Exit(1)
	}

	seed, err := cfg.ResolveSeed()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	s := session.New(cfg.Room, defs, engine.NewRNG(seed))
	s.Trace = trace
	if _, err := s.Start(cfg.Player); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting room: %v\n", err)
		os.Exit(1)
	}

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		printBanner(defs)
		c := cli.New(s)
		c.In = f
		c.EchoInput = true
		c.Run()
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		printBanner(defs)
		cli.New(s).Run()
		return
	}

	if err := tui.Run(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// requireValue returns the argument after a flag, exiting if it is missing.
func requireValue(args []string, i *int, msg string) string {
	if *i+1 >= len(args) {
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(1)
	}
	*i++
	return args[*i]
}

func printBanner(defs *state.Defs) {
	c := defs.Carnival
	fmt.Printf("%s v%s by %s\n\n", c.Title, c.Version, c.Author)
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
