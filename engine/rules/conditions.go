package rules

import (
	"slices"

	"github.com/nathoo/abilitycore/engine/catalog"
	"github.com/nathoo/abilitycore/engine/state"
	"github.com/nathoo/abilitycore/types"
)

// DamageContext describes the damage computation a hook is adjusting.
type DamageContext struct {
	Ability    types.AbilityDef
	DamageType types.DamageType
	Caster     types.EntityID
	Target     types.EntityID
}

// Matches returns true if every condition present in cond holds for ctx.
// Empty fields are wildcards, so the zero Condition always matches.
func Matches(cat *catalog.Catalog, w *state.World, cond types.Condition, ctx DamageContext) (bool, error) {
	// Incoming damage type must be equal.
	if cond.DamageType != "" && cond.DamageType != ctx.DamageType {
		return false, nil
	}

	// The casting ability must carry the tag.
	if cond.AbilityTag != "" && !slices.Contains(ctx.Ability.Tags, cond.AbilityTag) {
		return false, nil
	}

	// The damage target must carry a status with the tag.
	if cond.TargetStatusTag != "" {
		ok, err := w.EntityHasAnyStatusWithTag(cat, ctx.Target, cond.TargetStatusTag)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}

	return true, nil
}
