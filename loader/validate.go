package loader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nathoo/abilitycore/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) errorf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

func (e *ValidationError) warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

var validDamageTypes = map[types.DamageType]bool{
	types.Physical: true,
	types.Fire:     true,
	types.Ice:      true,
	types.Poison:   true,
}

var validStats = map[types.Stat]bool{
	types.StatHP:    true,
	types.StatArmor: true,
	types.StatPower: true,
}

var validTargetModes = map[types.TargetMode]bool{
	types.TargetSelf:        true,
	types.TargetSingleEnemy: true,
	types.TargetSingleAlly:  true,
}

var validHooks = map[types.Hook]bool{
	types.OnBeforeDealDamage: true,
	types.OnBeforeTakeDamage: true,
}

// validate checks the compiled content for enum names, numeric ranges and
// referential integrity. Problems are added to ve.
func validate(c *compiled, ve *ValidationError) {
	if c.info.Title == "" {
		ve.errorf("Game.title is required")
	}

	statuses := map[string]types.StatusDef{}
	statusTags := map[string]bool{}
	for _, s := range c.statuses {
		if _, dup := statuses[s.ID]; dup {
			ve.errorf("duplicate status id %q", s.ID)
			continue
		}
		statuses[s.ID] = s
		for _, tag := range s.Tags {
			statusTags[tag] = true
		}
	}
	for _, s := range c.statuses {
		validateStatus(s, statusTags, ve)
	}

	applied := map[string]bool{}
	abilities := map[string]bool{}
	for _, a := range c.abilities {
		if abilities[a.ID] {
			ve.errorf("duplicate ability id %q", a.ID)
			continue
		}
		abilities[a.ID] = true
		validateAbility(a, statuses, statusTags, applied, ve)
	}

	entities := map[types.EntityID]bool{}
	for _, e := range c.entities {
		if entities[e.ID] {
			ve.errorf("duplicate entity id %d", e.ID)
		}
		entities[e.ID] = true
	}

	// Warnings: statuses no ability can apply.
	for _, s := range c.statuses {
		if !applied[s.ID] {
			ve.warnf("status %q is never applied by any ability", s.ID)
			applied[s.ID] = true // warn once per id
		}
	}
}

func validateStatus(s types.StatusDef, statusTags map[string]bool, ve *ValidationError) {
	if s.MaxStacks < 1 {
		ve.errorf("status %q max_stacks %d must be at least 1", s.ID, s.MaxStacks)
	}
	if s.Dot != nil && !validDamageTypes[s.Dot.DamageType] {
		ve.errorf("status %q dot has unknown damage type %q", s.ID, s.Dot.DamageType)
	}
	for _, m := range s.StatMods {
		if !validStats[m.Stat] {
			ve.errorf("status %q stat_mod has unknown stat %q", s.ID, m.Stat)
		}
	}

	hooks := make([]types.Hook, 0, len(s.Hooks))
	for h := range s.Hooks {
		hooks = append(hooks, h)
	}
	slices.Sort(hooks) // deterministic error order
	for _, h := range hooks {
		if !validHooks[h] {
			ve.errorf("status %q has unknown hook %q", s.ID, h)
			continue
		}
		for i, rule := range s.Hooks[h] {
			if dt := rule.When.DamageType; dt != "" && !validDamageTypes[dt] {
				ve.errorf("status %q %s modifier %d has unknown damage type %q", s.ID, h, i+1, dt)
			}
			if tag := rule.When.TargetStatusTag; tag != "" && !statusTags[tag] {
				ve.warnf("status %q %s modifier %d checks tag %q that no status carries", s.ID, h, i+1, tag)
			}
		}
	}
}

func validateAbility(a types.AbilityDef, statuses map[string]types.StatusDef,
	statusTags map[string]bool, applied map[string]bool, ve *ValidationError) {

	if !validTargetModes[a.Targeting] {
		ve.errorf("ability %q has unknown targeting %q", a.ID, a.Targeting)
	}
	if len(a.Effects) == 0 {
		ve.warnf("ability %q has no effects", a.ID)
	}

	for i, eff := range a.Effects {
		n := i + 1
		switch eff := eff.(type) {
		case types.DamageEffect:
			validateAmount(a.ID, n, eff.DamageType, eff.Amount, ve)
		case types.HealEffect:
			validateAmount(a.ID, n, eff.DamageType, eff.Amount, ve)
		case types.ApplyStatusEffect:
			if _, ok := statuses[eff.StatusID]; !ok {
				ve.errorf("ability %q effect %d applies undefined status %q", a.ID, n, eff.StatusID)
			}
			applied[eff.StatusID] = true
			if eff.Duration < 1 {
				ve.errorf("ability %q effect %d duration %d must be at least 1", a.ID, n, eff.Duration)
			}
			if eff.Stacks < 1 {
				ve.errorf("ability %q effect %d stacks %d must be at least 1", a.ID, n, eff.Stacks)
			}
		case types.RemoveStatusByTagEffect:
			if eff.MaxRemoved < 0 {
				ve.errorf("ability %q effect %d max_removed %d must not be negative", a.ID, n, eff.MaxRemoved)
			}
			if !statusTags[eff.Tag] {
				ve.warnf("ability %q effect %d removes tag %q that no status carries", a.ID, n, eff.Tag)
			}
		}
	}
}

func validateAmount(abilityID string, n int, dt types.DamageType, amount types.ScaledAmount, ve *ValidationError) {
	if !validDamageTypes[dt] {
		ve.errorf("ability %q effect %d has unknown damage type %q", abilityID, n, dt)
	}
	if !validStats[amount.ScalesWith] {
		ve.errorf("ability %q effect %d scales with unknown stat %q", abilityID, n, amount.ScalesWith)
	}
}
