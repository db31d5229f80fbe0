// Package effects applies ability effects to the world. Each effect kind is
// one atomic operation; Apply dispatches over the closed set of kinds.
package effects

import (
	"fmt"

	"github.com/nathoo/abilitycore/engine/catalog"
	"github.com/nathoo/abilitycore/engine/rules"
	"github.com/nathoo/abilitycore/engine/state"
	"github.com/nathoo/abilitycore/engine/trace"
	"github.com/nathoo/abilitycore/types"
)

// Context carries what every effect of one cast shares.
type Context struct {
	Catalog *catalog.Catalog
	World   *state.World
	Ability types.AbilityDef
	Caster  types.EntityID
}

// Apply applies one effect to target and records it in tr.
func Apply(ctx Context, target types.EntityID, eff types.Effect, tr *trace.Trace) error {
	switch eff := eff.(type) {
	case types.DamageEffect:
		return applyDamage(ctx, target, eff, tr)
	case types.HealEffect:
		return applyHeal(ctx, target, eff, tr)
	case types.ApplyStatusEffect:
		return applyStatus(ctx, target, eff, tr)
	case types.RemoveStatusByTagEffect:
		return removeStatusByTag(ctx, target, eff, tr)
	default:
		return fmt.Errorf("unsupported effect %T", eff)
	}
}

func applyDamage(ctx Context, target types.EntityID, eff types.DamageEffect, tr *trace.Trace) error {
	caster, err := ctx.World.Entity(ctx.Caster)
	if err != nil {
		return err
	}
	victim, err := ctx.World.Entity(target)
	if err != nil {
		return err
	}

	raw := EvalAmount(caster, eff.Amount)

	dc := rules.DamageContext{
		Ability:    ctx.Ability,
		DamageType: eff.DamageType,
		Caster:     ctx.Caster,
		Target:     target,
	}
	// Deal hook on the caster strictly before take hook on the target.
	raw, err = rules.Apply(ctx.Catalog, ctx.World, types.OnBeforeDealDamage, ctx.Caster, dc, raw, tr)
	if err != nil {
		return err
	}
	raw, err = rules.Apply(ctx.Catalog, ctx.World, types.OnBeforeTakeDamage, target, dc, raw, tr)
	if err != nil {
		return err
	}

	dmg := Mitigate(int(raw), eff.DamageType, victim.Armor)

	before := victim.HP
	victim.HP -= dmg

	tr.Addf("Resolving Damage:\nAmount:[%d %s]\nTarget entity:[%d] HP before:[%d] after:[%d]",
		dmg, eff.DamageType, target, before, victim.HP)
	return nil
}

func applyHeal(ctx Context, target types.EntityID, eff types.HealEffect, tr *trace.Trace) error {
	caster, err := ctx.World.Entity(ctx.Caster)
	if err != nil {
		return err
	}
	patient, err := ctx.World.Entity(target)
	if err != nil {
		return err
	}

	heal := int(EvalAmount(caster, eff.Amount))

	before := patient.HP
	patient.HP += heal

	tr.Addf("Effect: Heal %d %s target=%d hp before: %d hp now: %d",
		heal, eff.DamageType, target, before, patient.HP)
	return nil
}

func applyStatus(ctx Context, target types.EntityID, eff types.ApplyStatusEffect, tr *trace.Trace) error {
	if err := ctx.World.AddStatus(ctx.Catalog, target, eff.StatusID, eff.Duration, eff.Stacks); err != nil {
		return err
	}
	tr.Addf("Status applied: [%s] for: [%d] turns", eff.StatusID, eff.Duration)
	return nil
}

func removeStatusByTag(ctx Context, target types.EntityID, eff types.RemoveStatusByTagEffect, tr *trace.Trace) error {
	removed, err := ctx.World.RemoveStatusesByTag(ctx.Catalog, target, eff.Tag, eff.MaxRemoved)
	if err != nil {
		return err
	}
	tr.Addf("Effect: Remove Status Tag =%s removed=%d target=%d", eff.Tag, removed, target)
	return nil
}
