// Package parser converts command strings into Command structs.
// Intentionally dumb: whitespace splitting plus a verb alias table.
package parser

import (
	"strings"

	"github.com/nathoo/abilitycore/types"
)

var verbAliases = map[string]string{
	// Cast
	"c":   "cast",
	"use": "cast",

	// Turn start
	"t":    "tick",
	"turn": "tick",
	"wait": "tick",
	"z":    "tick",

	// Show
	"look":   "show",
	"l":      "show",
	"status": "show",

	// Listings
	"spells":  "abilities",
	"ab":      "abilities",
	"effects": "statuses",
	"st":      "statuses",
}

// Parse converts a raw command string into a Command. The verb is
// lower-cased and de-aliased; arguments keep their case so that ids
// defined in content match exactly.
func Parse(input string) types.Command {
	words := strings.Fields(input)
	if len(words) == 0 {
		return types.Command{}
	}

	verb := strings.ToLower(words[0])
	if alias, ok := verbAliases[verb]; ok {
		verb = alias
	}

	var args []string
	if len(words) > 1 {
		args = words[1:]
	}
	return types.Command{Verb: verb, Args: args}
}
