// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the AbilityCore session engine.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/abilitycore/engine"
	"github.com/nathoo/abilitycore/types"
)

// CLI handles line-oriented interaction with the user.
type CLI struct {
	Engine    *engine.Engine
	Info      types.GameInfo
	In        io.Reader
	Out       io.Writer
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine, info types.GameInfo) *CLI {
	return &CLI{
		Engine: eng,
		Info:   info,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run starts the session loop. It shows the intro and the starting
// entities, then loops: prompt → input → dispatch → output.
func (c *CLI) Run() {
	if c.Info.Title != "" {
		c.printLine(c.Info.Title)
	}
	if c.Info.Intro != "" {
		c.printLine(strings.TrimRight(c.Info.Intro, "\n"))
		c.printLine("")
	}

	result := c.Engine.Step("show")
	c.printResult(result)

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Engine.Step(input)
		c.printResult(result)
	}
}

// handleMeta dispatches meta-commands. Returns true if the session should exit.
func (c *CLI) handleMeta(input string) bool {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		for _, line := range HelpLines() {
			c.printLine(line)
		}

	case "/state":
		c.cmdState()

	case "/catalog":
		c.cmdCatalog()

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

// HelpLines returns the help text shared by the CLI and the TUI.
func HelpLines() []string {
	return []string{
		"System:",
		"  /quit         — Exit",
		"  /help         — Show this help",
		"  /state        — Turn counter and all entities",
		"  /catalog      — List abilities and statuses",
		"",
		"Commands:",
		"  cast <ability> <caster> [targets...] (c, use)",
		"  tick                  — Start the next turn (t, turn, wait, z)",
		"  show [entity]         — Show entities (look, l, status)",
		"  abilities             — List abilities",
		"  statuses              — List statuses",
		"  again (g)             — Repeat your last command",
	}
}

func (c *CLI) cmdState() {
	c.printSystem(fmt.Sprintf("Turn: %d", c.Engine.Turn))
	c.printSystem(fmt.Sprintf("Commands: %d", len(c.Engine.CommandLog)))
	for _, line := range c.Engine.Summaries() {
		c.printSystem(line)
	}
}

func (c *CLI) cmdCatalog() {
	c.printLine("Abilities:")
	for _, line := range c.Engine.AbilityListing() {
		c.printLine("  " + line)
	}
	c.printLine("Statuses:")
	for _, line := range c.Engine.StatusListing() {
		c.printLine("  " + line)
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
