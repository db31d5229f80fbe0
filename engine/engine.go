// Package engine provides the Resolver that casts abilities against a
// world, and the Step() orchestrator that drives it from text commands.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/nathoo/abilitycore/engine/catalog"
	"github.com/nathoo/abilitycore/engine/parser"
	"github.com/nathoo/abilitycore/engine/state"
	"github.com/nathoo/abilitycore/types"
)

// Usage lines for malformed commands.
const (
	usageCast = "Usage: cast <ability> <caster> [targets...]"
	usageShow = "Usage: show [entity]"
	usageTick = "Usage: tick"
)

// Engine holds one catalog, the world it acts on and the session counters.
type Engine struct {
	SessionID  string // tags every log record of this session
	Catalog    *catalog.Catalog
	World      *state.World
	Resolver   *Resolver
	Turn       int
	CommandLog []string

	logger *slog.Logger
}

// New creates a session engine over world.
func New(cat *catalog.Catalog, world *state.World, opts ...Option) *Engine {
	o := buildOptions(opts)
	id := uuid.NewString()
	logger := o.logger.With("session", id)
	return &Engine{
		SessionID: id,
		Catalog:   cat,
		World:     world,
		Resolver:  NewResolver(cat, WithLogger(logger)),
		logger:    logger,
	}
}

// Step processes one command and returns the result.
func (e *Engine) Step(input string) types.Result {
	var result types.Result

	// 1. Parse input.
	cmd := parser.Parse(input)

	// 2. Log the command.
	e.CommandLog = append(e.CommandLog, input)

	// 3. Empty input.
	if cmd.Verb == "" {
		result.Output = append(result.Output, "What do you want to do?")
		return result
	}

	e.logger.Debug("step", "verb", cmd.Verb, "args", cmd.Args, "turn", e.Turn)

	// 4. Dispatch on verb.
	switch cmd.Verb {
	case "cast":
		return e.cast(cmd.Args)
	case "tick":
		return e.tick(cmd.Args)
	case "show":
		return e.show(cmd.Args)
	case "abilities":
		return types.Result{Output: e.AbilityListing()}
	case "statuses":
		return types.Result{Output: e.StatusListing()}
	default:
		result.Output = append(result.Output,
			fmt.Sprintf("I don't understand %q. Try: cast, tick, show, abilities, statuses.", cmd.Verb))
		return result
	}
}

func (e *Engine) cast(args []string) types.Result {
	if len(args) < 2 {
		return types.Result{Output: []string{usageCast}}
	}
	caster, err := parseID(args[1])
	if err != nil {
		return types.Result{Output: []string{err.Error(), usageCast}}
	}
	var targets []types.EntityID
	for _, a := range args[2:] {
		id, err := parseID(a)
		if err != nil {
			return types.Result{Output: []string{err.Error(), usageCast}}
		}
		targets = append(targets, id)
	}

	req := types.ResolveRequest{AbilityID: args[0], Caster: caster, Targets: targets}
	tr, err := e.Resolver.Resolve(e.World, req)
	result := types.Result{Output: tr.Lines()}
	if err != nil {
		result.Output = append(result.Output, "Error: "+err.Error())
		result.Err = err
	}
	return result
}

func (e *Engine) tick(args []string) types.Result {
	if len(args) > 0 {
		return types.Result{Output: []string{usageTick}}
	}
	tr, err := e.Resolver.TickTurnStart(e.World)
	if err != nil {
		return types.Result{
			Output: append(tr.Lines(), "Error: "+err.Error()),
			Err:    err,
		}
	}
	e.Turn++
	out := []string{fmt.Sprintf("Turn %d begins.", e.Turn)}
	return types.Result{Output: append(out, tr.Lines()...)}
}

func (e *Engine) show(args []string) types.Result {
	switch len(args) {
	case 0:
		return types.Result{Output: e.Summaries()}
	case 1:
		id, err := parseID(args[0])
		if err != nil {
			return types.Result{Output: []string{err.Error(), usageShow}}
		}
		ent, err := e.World.Entity(id)
		if err != nil {
			return types.Result{Output: []string{"Error: " + err.Error()}, Err: err}
		}
		return types.Result{Output: []string{DescribeEntity(ent)}}
	default:
		return types.Result{Output: []string{usageShow}}
	}
}

// Summaries returns one line per entity, in id order.
func (e *Engine) Summaries() []string {
	ids := e.World.IDs()
	if len(ids) == 0 {
		return []string{"No entities."}
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		ent, err := e.World.Entity(id)
		if err != nil {
			continue
		}
		out = append(out, DescribeEntity(ent))
	}
	return out
}

// AbilityListing returns one line per ability, sorted by id.
func (e *Engine) AbilityListing() []string {
	ids := e.Catalog.AbilityIDs()
	if len(ids) == 0 {
		return []string{"No abilities."}
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		def, err := e.Catalog.Ability(id)
		if err != nil {
			continue
		}
		out = append(out, DescribeAbility(def))
	}
	return out
}

// StatusListing returns one line per status, sorted by id.
func (e *Engine) StatusListing() []string {
	ids := e.Catalog.StatusIDs()
	if len(ids) == 0 {
		return []string{"No statuses."}
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		def, err := e.Catalog.Status(id)
		if err != nil {
			continue
		}
		out = append(out, DescribeStatus(def))
	}
	return out
}

var errBadID = errors.New("invalid entity id")

func parseID(s string) (types.EntityID, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errBadID, s)
	}
	return types.EntityID(n), nil
}
