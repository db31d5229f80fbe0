package engine

import (
	"fmt"
	"log/slog"

	"github.com/nathoo/abilitycore/engine/catalog"
	"github.com/nathoo/abilitycore/engine/effects"
	"github.com/nathoo/abilitycore/engine/resolve"
	"github.com/nathoo/abilitycore/engine/state"
	"github.com/nathoo/abilitycore/engine/trace"
	"github.com/nathoo/abilitycore/types"
)

// Resolver casts abilities from one catalog against any world passed in.
// It keeps no per-call state, so one Resolver may serve several worlds as
// long as each world is only used by one call at a time.
type Resolver struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// Option configures a Resolver or an Engine.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewResolver creates a resolver bound to cat.
func NewResolver(cat *catalog.Catalog, opts ...Option) *Resolver {
	o := buildOptions(opts)
	return &Resolver{catalog: cat, logger: o.logger}
}

// Catalog returns the catalog the resolver reads definitions from.
func (r *Resolver) Catalog() *catalog.Catalog {
	return r.catalog
}

// Resolve casts one ability and returns the trace of every decision.
//
// An illegal target list is not an error: the rejection is traced and the
// world is left untouched. Unknown ability, entity or status ids abort the
// call with a *catalog.NotFoundError; effects already applied before the
// failing one stay applied.
func (r *Resolver) Resolve(w *state.World, req types.ResolveRequest) (*trace.Trace, error) {
	tr := trace.New()

	// 1. Start: look up the ability and caster.
	ability, err := r.catalog.Ability(req.AbilityID)
	if err != nil {
		return tr, fmt.Errorf("resolving %q: %w", req.AbilityID, err)
	}
	if _, err := w.Entity(req.Caster); err != nil {
		return tr, fmt.Errorf("resolving %q: caster: %w", req.AbilityID, err)
	}
	tr.Add(trace.Separator)
	tr.Addf("Resolving ability: [%s] caster id: [%d]", ability.ID, req.Caster)

	// 2. Targeting validation.
	if reject := resolve.Targets(ability.Targeting, req); reject != "" {
		tr.Add(reject)
		r.logger.Debug("ability rejected",
			"ability", ability.ID,
			"caster", req.Caster,
			"targets", req.Targets,
			"mode", ability.Targeting)
		return tr, nil
	}

	// 3. Effect loop: every effect in declared order, per target.
	ctx := effects.Context{
		Catalog: r.catalog,
		World:   w,
		Ability: ability,
		Caster:  req.Caster,
	}
	for _, target := range req.Targets {
		if _, err := w.Entity(target); err != nil {
			return tr, fmt.Errorf("resolving %q: target: %w", ability.ID, err)
		}
		for _, eff := range ability.Effects {
			if err := effects.Apply(ctx, target, eff, tr); err != nil {
				return tr, fmt.Errorf("resolving %q: %w", ability.ID, err)
			}
		}
	}

	// 4. Done.
	r.logger.Debug("ability resolved",
		"ability", ability.ID,
		"caster", req.Caster,
		"targets", req.Targets,
		"trace_lines", tr.Len())
	return tr, nil
}

// TickTurnStart runs damage-over-time and status expiry for every entity.
// A NotFound error stops the tick part-way; entities ticked before the
// failure stay ticked and the returned trace lists what was applied.
func (r *Resolver) TickTurnStart(w *state.World) (*trace.Trace, error) {
	tr := trace.New()
	if err := w.TickTurnStart(r.catalog, tr); err != nil {
		return tr, fmt.Errorf("turn start: %w", err)
	}
	r.logger.Debug("turn start", "entities", w.Len(), "trace_lines", tr.Len())
	return tr, nil
}
