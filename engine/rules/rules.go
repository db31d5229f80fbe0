// Package rules implements the modifier pipeline: statuses contribute
// conditional adjustments to a damage value through named hooks.
package rules

import (
	"math"

	"github.com/nathoo/abilitycore/engine/catalog"
	"github.com/nathoo/abilitycore/engine/state"
	"github.com/nathoo/abilitycore/engine/trace"
	"github.com/nathoo/abilitycore/types"
)

// Apply runs the owner's rules for hook against value and returns the
// adjusted value.
//
// Statuses are visited in the order they were applied to the owner, and
// each status's rules in declared order. A matching rule first adds
// AddFlat*stacks, then multiplies by Multiplier^stacks. Every match is
// traced with the value before and after. The running value is float32 and
// is rounded after every step.
func Apply(cat *catalog.Catalog, w *state.World, hook types.Hook, owner types.EntityID,
	ctx DamageContext, value float32, tr *trace.Trace) (float32, error) {

	e, err := w.Entity(owner)
	if err != nil {
		return value, err
	}

	for _, si := range e.Statuses {
		def, err := cat.Status(si.StatusID)
		if err != nil {
			return value, err
		}

		for _, rule := range def.Hooks[hook] {
			ok, err := Matches(cat, w, rule.When, ctx)
			if err != nil {
				return value, err
			}
			if !ok {
				continue
			}

			before := value
			value += float32(rule.AddFlat * float32(si.Stacks))
			value = float32(value * float32(math.Pow(float64(rule.Multiplier), float64(si.Stacks))))

			tr.Addf("Modifier: [%s] hook: [%s] stacks: [%d] value before: [%s] after: [%s]",
				si.StatusID, hook, si.Stacks, trace.FormatFloat(before), trace.FormatFloat(value))
		}
	}

	return value, nil
}
