package engine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nathoo/abilitycore/engine/trace"
	"github.com/nathoo/abilitycore/types"
)

// DescribeEntity renders an entity as
// "#2 hp:82 armor:0 power:10 [Enemy] burning x1 (2t)".
func DescribeEntity(e *types.Entity) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d hp:%d armor:%d power:%d", e.ID, e.HP, e.Armor, e.Power)
	if len(e.Tags) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(e.Tags, ","))
	}
	for i, si := range e.Statuses {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, " %s x%d (%dt)", si.StatusID, si.Stacks, si.RemainingTurns)
	}
	return b.String()
}

// DescribeAbility renders an ability definition on one line.
func DescribeAbility(a types.AbilityDef) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)", a.ID, a.Targeting)
	if len(a.Tags) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(a.Tags, ","))
	}
	effs := make([]string, 0, len(a.Effects))
	for _, eff := range a.Effects {
		effs = append(effs, DescribeEffect(eff))
	}
	if len(effs) > 0 {
		b.WriteString(": " + strings.Join(effs, "; "))
	}
	return b.String()
}

// DescribeEffect renders a single effect.
func DescribeEffect(eff types.Effect) string {
	switch v := eff.(type) {
	case types.DamageEffect:
		return fmt.Sprintf("Damage %s %s", v.DamageType, describeAmount(v.Amount))
	case types.HealEffect:
		return fmt.Sprintf("Heal %s %s", v.DamageType, describeAmount(v.Amount))
	case types.ApplyStatusEffect:
		return fmt.Sprintf("ApplyStatus %s x%d for %dt", v.StatusID, v.Stacks, v.Duration)
	case types.RemoveStatusByTagEffect:
		return fmt.Sprintf("RemoveStatusByTag %s max %d", v.Tag, v.MaxRemoved)
	default:
		return fmt.Sprintf("<unknown effect %T>", eff)
	}
}

func describeAmount(a types.ScaledAmount) string {
	if a.Scale == 0 {
		return trace.FormatFloat(a.Base)
	}
	return fmt.Sprintf("%s+%s*%s", trace.FormatFloat(a.Base), trace.FormatFloat(a.Scale), a.ScalesWith)
}

// DescribeStatus renders a status definition on one line.
func DescribeStatus(s types.StatusDef) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s max:%d", s.ID, s.MaxStacks)
	if len(s.Tags) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(s.Tags, ","))
	}
	if s.Dot != nil {
		fmt.Fprintf(&b, " dot:%d %s/stack", s.Dot.PerStackBase, s.Dot.DamageType)
	}
	for _, m := range s.StatMods {
		fmt.Fprintf(&b, " mod:%s%+d", m.Stat, m.Add)
	}
	hooks := make([]types.Hook, 0, len(s.Hooks))
	for h := range s.Hooks {
		hooks = append(hooks, h)
	}
	slices.Sort(hooks)
	for _, h := range hooks {
		fmt.Fprintf(&b, " %s(%d)", h, len(s.Hooks[h]))
	}
	return b.String()
}
