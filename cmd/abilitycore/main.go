// AbilityCore is a deterministic, data-driven ability resolution engine for
// turn-based combat, driven from a terminal session.
// Usage: abilitycore [--version] [--plain] [--config <file>] [--script <file>] [content_directory]
package main

import (
	"fmt"
	"os"

	"github.com/nathoo/abilitycore/cli"
	"github.com/nathoo/abilitycore/config"
	"github.com/nathoo/abilitycore/engine"
	"github.com/nathoo/abilitycore/loader"
	"github.com/nathoo/abilitycore/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: abilitycore [--version] [--plain] [--config <file>] [--script <file>] [content_directory]"

func main() {
	plain := false
	var contentDir string
	var configFile string
	var scriptFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("abilitycore %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--config", "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "%s requires a file path\n", args[i])
				os.Exit(1)
			}
			if args[i] == "--config" {
				configFile = args[i+1]
			} else {
				scriptFile = args[i+1]
			}
			i++
		case "-h", "--help":
			fmt.Println(usage)
			return
		default:
			if contentDir == "" {
				contentDir = args[i]
			}
		}
	}

	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}
	if contentDir != "" {
		cfg.ContentDir = contentDir
	}
	logger := config.NewLogger(cfg, os.Stderr)

	// Load and compile Lua content.
	content, err := loader.Load(cfg.ContentDir, loader.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading content: %v\n", err)
		os.Exit(1)
	}

	world, err := content.NewWorld()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building world: %v\n", err)
		os.Exit(1)
	}
	eng := engine.New(content.Catalog, world, engine.WithLogger(logger))

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(eng, content.Info)
		c.In = f
		c.EchoInput = true
		c.Run()
		return
	}

	// Use plain CLI if requested or stdout is not a terminal.
	if plain || cfg.Plain || !isTerminal() {
		cli.New(eng, content.Info).Run()
		return
	}

	if err := tui.Run(eng, content.Info, cfg.HistorySize); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
