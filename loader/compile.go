// Package loader loads Lua content into a Catalog and a starting roster.
// The Lua VM is discarded after loading; nothing runs Lua at resolve time.
package loader

import (
	"fmt"
	"math"
	"sort"

	"github.com/nathoo/abilitycore/types"
	lua "github.com/yuin/gopher-lua"
)

// rawDef holds a status or ability table before compilation.
type rawDef struct {
	id    string
	table *lua.LTable
}

// rawEntity holds an entity table before compilation.
type rawEntity struct {
	id    float64
	table *lua.LTable
}

// compiled is the loader's intermediate result, checked by validate
// before the catalog is built.
type compiled struct {
	info      types.GameInfo
	abilities []types.AbilityDef
	statuses  []types.StatusDef
	entities  []types.Entity
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field from a Lua table, or def if missing.
func getNumber(tbl *lua.LTable, key string, def float64) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return def
}

// getInt returns an int field from a Lua table, or def if missing.
func getInt(tbl *lua.LTable, key string, def int) int {
	return int(getNumber(tbl, key, float64(def)))
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// arrayTables returns the table elements of an array-like table in order.
func arrayTables(tbl *lua.LTable) []*lua.LTable {
	if tbl == nil {
		return nil
	}
	var out []*lua.LTable
	for i := 1; i <= tbl.Len(); i++ {
		if t, ok := tbl.RawGetInt(i).(*lua.LTable); ok {
			out = append(out, t)
		}
	}
	return out
}

// getStrings returns the string elements of an array field in order.
func getStrings(tbl *lua.LTable, key string) []string {
	arr := getTable(tbl, key)
	if arr == nil {
		return nil
	}
	var out []string
	for i := 1; i <= arr.Len(); i++ {
		if s, ok := arr.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// compile converts all collected Lua data into definitions. Problems that
// only affect one definition are recorded in ve so that a single load
// reports all of them.
func compile(coll *collector, ve *ValidationError) (*compiled, error) {
	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}

	c := &compiled{info: compileGame(coll.game)}

	for _, raw := range coll.statuses {
		c.statuses = append(c.statuses, compileStatus(raw))
	}
	for _, raw := range coll.abilities {
		c.abilities = append(c.abilities, compileAbility(raw, ve))
	}
	for _, raw := range coll.entities {
		e, err := compileEntity(raw)
		if err != nil {
			ve.Errors = append(ve.Errors, err.Error())
			continue
		}
		c.entities = append(c.entities, e)
	}

	return c, nil
}

func compileGame(tbl *lua.LTable) types.GameInfo {
	return types.GameInfo{
		Title:   getString(tbl, "title"),
		Author:  getString(tbl, "author"),
		Version: getString(tbl, "version"),
		Intro:   getString(tbl, "intro"),
	}
}

func compileStatus(raw rawDef) types.StatusDef {
	tbl := raw.table
	s := types.StatusDef{
		ID:        raw.id,
		Tags:      getStrings(tbl, "tags"),
		MaxStacks: getInt(tbl, "max_stacks", 1),
	}

	if dot := getTable(tbl, "dot"); dot != nil {
		s.Dot = &types.DotDef{
			DamageType:   types.DamageType(getString(dot, "damage_type")),
			PerStackBase: getInt(dot, "per_stack", 0),
		}
	}

	for _, m := range arrayTables(getTable(tbl, "stat_mods")) {
		s.StatMods = append(s.StatMods, types.StatModDef{
			Stat: types.Stat(getString(m, "stat")),
			Add:  getInt(m, "add", 0),
		})
	}

	// Hook names are checked by validate.
	if hooks := getTable(tbl, "hooks"); hooks != nil {
		s.Hooks = map[types.Hook][]types.ModifierRule{}
		hooks.ForEach(func(k, v lua.LValue) {
			name, ok := k.(lua.LString)
			if !ok {
				return
			}
			list, ok := v.(*lua.LTable)
			if !ok {
				return
			}
			hook := types.Hook(name)
			for _, m := range arrayTables(list) {
				s.Hooks[hook] = append(s.Hooks[hook], compileModifier(m))
			}
		})
	}

	return s
}

// compileModifier reads a Modifier{} table. An omitted mul means 1.
func compileModifier(tbl *lua.LTable) types.ModifierRule {
	return types.ModifierRule{
		When: types.Condition{
			DamageType:      types.DamageType(getString(tbl, "damage_type")),
			AbilityTag:      getString(tbl, "ability_tag"),
			TargetStatusTag: getString(tbl, "target_status_tag"),
		},
		AddFlat:    float32(getNumber(tbl, "add", 0)),
		Multiplier: float32(getNumber(tbl, "mul", 1)),
	}
}

func compileAbility(raw rawDef, ve *ValidationError) types.AbilityDef {
	tbl := raw.table
	a := types.AbilityDef{
		ID:        raw.id,
		Tags:      getStrings(tbl, "tags"),
		Targeting: types.TargetMode(getString(tbl, "targeting")),
	}
	for i, effTbl := range arrayTables(getTable(tbl, "effects")) {
		eff, err := compileEffect(effTbl)
		if err != nil {
			ve.Errors = append(ve.Errors, fmt.Sprintf("ability %q effect %d: %v", raw.id, i+1, err))
			continue
		}
		a.Effects = append(a.Effects, eff)
	}
	return a
}

func compileEffect(tbl *lua.LTable) (types.Effect, error) {
	switch kind := getString(tbl, "kind"); kind {
	case kindDamage:
		return types.DamageEffect{
			DamageType: types.DamageType(getString(tbl, "damage_type")),
			Amount:     compileAmount(tbl.RawGetString("amount")),
		}, nil
	case kindHeal:
		return types.HealEffect{
			DamageType: types.DamageType(getString(tbl, "damage_type")),
			Amount:     compileAmount(tbl.RawGetString("amount")),
		}, nil
	case kindApplyStatus:
		return types.ApplyStatusEffect{
			StatusID: getString(tbl, "status"),
			Duration: getInt(tbl, "duration", 0),
			Stacks:   getInt(tbl, "stacks", 1),
		}, nil
	case kindRemoveStatusByTag:
		return types.RemoveStatusByTagEffect{
			Tag:        getString(tbl, "tag"),
			MaxRemoved: getInt(tbl, "max_removed", 1),
		}, nil
	case "":
		return nil, fmt.Errorf("not an effect (use Damage, Heal, ApplyStatus or RemoveStatusByTag)")
	default:
		return nil, fmt.Errorf("unknown effect kind %q", kind)
	}
}

// compileAmount accepts a Scaled{} table or a plain number. A plain number
// is a flat amount with no stat scaling.
func compileAmount(v lua.LValue) types.ScaledAmount {
	switch val := v.(type) {
	case lua.LNumber:
		return types.ScaledAmount{Base: float32(val), ScalesWith: types.StatPower}
	case *lua.LTable:
		return types.ScaledAmount{
			Base:       float32(getNumber(val, "base", 0)),
			ScalesWith: types.Stat(getString(val, "stat")),
			Scale:      float32(getNumber(val, "scale", 0)),
		}
	default:
		return types.ScaledAmount{ScalesWith: types.StatPower}
	}
}

// Default stats for fields an Entity{} table leaves out.
const (
	defaultEntityHP    = 100
	defaultEntityPower = 10
)

// compileEntity builds a starting entity. Omitted fields default to
// hp 100, armor 0 and power 10.
func compileEntity(raw rawEntity) (types.Entity, error) {
	if raw.id != math.Trunc(raw.id) || raw.id < 1 || raw.id > math.MaxUint32 {
		return types.Entity{}, fmt.Errorf("entity id %v must be a positive integer", raw.id)
	}
	tbl := raw.table
	return types.Entity{
		ID:    types.EntityID(raw.id),
		HP:    getInt(tbl, "hp", defaultEntityHP),
		Armor: getInt(tbl, "armor", 0),
		Power: getInt(tbl, "power", defaultEntityPower),
		Tags:  getStrings(tbl, "tags"),
	}, nil
}

// sortedLuaFiles returns .lua files with game.lua first and the rest
// sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
