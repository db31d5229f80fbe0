// Package types defines the shared data structures for the AbilityCore engine.
// This package contains only type definitions with no logic. The one exception
// is the unexported marker method that seals the Effect sum type.
package types

// EntityID identifies an entity in a world.
type EntityID uint32

// DamageType classifies damage, heals and damage-over-time.
type DamageType string

const (
	Physical DamageType = "Physical"
	Fire     DamageType = "Fire"
	Ice      DamageType = "Ice"
	Poison   DamageType = "Poison"
)

// Stat names one of an entity's raw numeric fields.
type Stat string

const (
	StatHP    Stat = "HP"
	StatArmor Stat = "Armor"
	StatPower Stat = "Power"
)

// TargetMode constrains the legal target list of an ability.
type TargetMode string

const (
	TargetSelf        TargetMode = "Self"
	TargetSingleEnemy TargetMode = "SingleEnemy"
	TargetSingleAlly  TargetMode = "SingleAlly"
)

// Hook is an extension point where active statuses adjust a damage value.
type Hook string

const (
	OnBeforeDealDamage Hook = "OnBeforeDealDamage"
	OnBeforeTakeDamage Hook = "OnBeforeTakeDamage"
)

// ScaledAmount evaluates to Base + stat(ScalesWith) * Scale in single
// precision. Traces and truncated amounts depend on the float32 rounding.
type ScaledAmount struct {
	Base       float32
	ScalesWith Stat
	Scale      float32
}

// Effect is one step of an ability. The set of variants is closed:
// DamageEffect, HealEffect, ApplyStatusEffect and RemoveStatusByTagEffect.
type Effect interface {
	isEffect()
}

// DamageEffect deals scaled damage, routed through the modifier hooks.
type DamageEffect struct {
	DamageType DamageType
	Amount     ScaledAmount
}

// HealEffect restores scaled hp. Heals never pass through modifier hooks.
type HealEffect struct {
	DamageType DamageType
	Amount     ScaledAmount
}

// ApplyStatusEffect applies or refreshes a status on the target.
type ApplyStatusEffect struct {
	StatusID string
	Duration int
	Stacks   int
}

// RemoveStatusByTagEffect removes up to MaxRemoved statuses carrying Tag.
type RemoveStatusByTagEffect struct {
	Tag        string
	MaxRemoved int
}

func (DamageEffect) isEffect()            {}
func (HealEffect) isEffect()              {}
func (ApplyStatusEffect) isEffect()       {}
func (RemoveStatusByTagEffect) isEffect() {}

// AbilityDef is the immutable definition of a castable ability.
type AbilityDef struct {
	ID        string
	Tags      []string
	Targeting TargetMode
	Effects   []Effect // applied in declared order
}

// StatModDef is a declared stat adjustment. Stat reads do not consume it.
type StatModDef struct {
	Stat Stat
	Add  int
}

// DotDef is the per-turn damage a status deals to its carrier.
type DotDef struct {
	DamageType   DamageType
	PerStackBase int
}

// Condition gates a modifier rule. Empty fields are wildcards; the rule
// matches only when every non-empty field holds.
type Condition struct {
	DamageType      DamageType // incoming damage type must equal this
	AbilityTag      string     // casting ability must carry this tag
	TargetStatusTag string     // damage target must carry a status with this tag
}

// ModifierRule adjusts a running damage value when its condition holds.
// AddFlat is applied before Multiplier; both scale with stack count.
// A Multiplier of 1 leaves the value unchanged.
type ModifierRule struct {
	When       Condition
	AddFlat    float32
	Multiplier float32
}

// StatusDef is the immutable definition of a status.
type StatusDef struct {
	ID        string
	Tags      []string
	MaxStacks int
	StatMods  []StatModDef
	Dot       *DotDef                 // nil when the status deals no periodic damage
	Hooks     map[Hook][]ModifierRule // rule order within a hook is significant
}

// StatusInstance is a status applied to an entity. StatusID refers back
// into the catalog; the definition is looked up on every use.
type StatusInstance struct {
	StatusID       string
	Stacks         int
	RemainingTurns int
}

// Entity is a participant in the world.
type Entity struct {
	ID       EntityID
	HP       int
	Armor    int
	Power    int
	Tags     []string
	Statuses []StatusInstance // in application order
}

// ResolveRequest asks the resolver to cast one ability.
type ResolveRequest struct {
	AbilityID string
	Caster    EntityID
	Targets   []EntityID
}

// Command is the parsed representation of a session command.
type Command struct {
	Verb string
	Args []string
}

// Result is the output of a single session step.
type Result struct {
	Output []string
	Err    error
}

// GameInfo holds content metadata from Lua.
type GameInfo struct {
	Title   string
	Author  string
	Version string
	Intro   string
}
