package effects

import (
	"github.com/nathoo/abilitycore/engine/state"
	"github.com/nathoo/abilitycore/types"
)

// EvalAmount computes base + stat*scale from the caster's current raw stat.
// Each operation rounds to float32; the conversion keeps the compiler from
// fusing the multiply and add.
func EvalAmount(caster *types.Entity, a types.ScaledAmount) float32 {
	stat := float32(state.Stat(caster, a.ScalesWith))
	return a.Base + float32(stat*a.Scale)
}

// Mitigate applies armor to already-truncated damage. Only Physical damage
// is reduced, and never below zero.
func Mitigate(dmg int, dt types.DamageType, armor int) int {
	if dt != types.Physical {
		return dmg
	}
	return max(0, dmg-armor)
}
