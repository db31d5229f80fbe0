package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// Effect kinds as stored in helper tables.
const (
	kindDamage            = "damage"
	kindHeal              = "heal"
	kindApplyStatus       = "apply_status"
	kindRemoveStatusByTag = "remove_status_by_tag"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerStatusHelpers(L)
	registerEffectHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { title = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.game = tbl
		return 0
	}))

	// Status "id" { ... }: curried, Status("id") returns a function that takes a table.
	L.SetGlobal("Status", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.statuses = append(coll.statuses, rawDef{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// Ability "id" { ... }: curried.
	L.SetGlobal("Ability", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.abilities = append(coll.abilities, rawDef{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// Entity(1) { ... }: curried, numeric id.
	L.SetGlobal("Entity", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckNumber(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.entities = append(coll.entities, rawEntity{id: float64(id), table: tbl})
			return 0
		}))
		return 1
	}))
}

func registerStatusHelpers(L *lua.LState) {
	// Dot("Fire", 3)
	L.SetGlobal("Dot", L.NewFunction(func(L *lua.LState) int {
		damageType := L.CheckString(1)
		perStack := L.CheckNumber(2)
		tbl := L.NewTable()
		tbl.RawSetString("damage_type", lua.LString(damageType))
		tbl.RawSetString("per_stack", perStack)
		L.Push(tbl)
		return 1
	}))

	// StatMod("Armor", -1)
	L.SetGlobal("StatMod", L.NewFunction(func(L *lua.LState) int {
		stat := L.CheckString(1)
		add := L.CheckNumber(2)
		tbl := L.NewTable()
		tbl.RawSetString("stat", lua.LString(stat))
		tbl.RawSetString("add", add)
		L.Push(tbl)
		return 1
	}))

	// Modifier { damage_type = "Fire", mul = 1.2 }: pass-through, returns the table.
	L.SetGlobal("Modifier", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		L.Push(tbl)
		return 1
	}))
}

func registerEffectHelpers(L *lua.LState) {
	// Scaled(12, "Power", 0.6)
	L.SetGlobal("Scaled", L.NewFunction(func(L *lua.LState) int {
		base := L.CheckNumber(1)
		stat := L.CheckString(2)
		scale := L.CheckNumber(3)
		tbl := L.NewTable()
		tbl.RawSetString("base", base)
		tbl.RawSetString("stat", lua.LString(stat))
		tbl.RawSetString("scale", scale)
		L.Push(tbl)
		return 1
	}))

	// Damage("Fire", Scaled(...)) or Damage("Fire", 10)
	L.SetGlobal("Damage", L.NewFunction(func(L *lua.LState) int {
		L.Push(amountEffect(L, kindDamage))
		return 1
	}))

	// Heal("Physical", Scaled(...)) or Heal("Physical", 10)
	L.SetGlobal("Heal", L.NewFunction(func(L *lua.LState) int {
		L.Push(amountEffect(L, kindHeal))
		return 1
	}))

	// ApplyStatus("burning", duration, stacks): stacks defaults to 1.
	L.SetGlobal("ApplyStatus", L.NewFunction(func(L *lua.LState) int {
		status := L.CheckString(1)
		duration := L.CheckNumber(2)
		stacks := L.OptNumber(3, 1)
		tbl := L.NewTable()
		tbl.RawSetString("kind", lua.LString(kindApplyStatus))
		tbl.RawSetString("status", lua.LString(status))
		tbl.RawSetString("duration", duration)
		tbl.RawSetString("stacks", stacks)
		L.Push(tbl)
		return 1
	}))

	// RemoveStatusByTag("Debuff", max): max defaults to 1.
	L.SetGlobal("RemoveStatusByTag", L.NewFunction(func(L *lua.LState) int {
		tag := L.CheckString(1)
		maxRemoved := L.OptNumber(2, 1)
		tbl := L.NewTable()
		tbl.RawSetString("kind", lua.LString(kindRemoveStatusByTag))
		tbl.RawSetString("tag", lua.LString(tag))
		tbl.RawSetString("max_removed", maxRemoved)
		L.Push(tbl)
		return 1
	}))
}

// amountEffect builds a damage or heal table from (type, amount) arguments.
// The amount is either a Scaled table or a plain number.
func amountEffect(L *lua.LState, kind string) *lua.LTable {
	damageType := L.CheckString(1)
	amount := L.CheckAny(2)
	switch amount.(type) {
	case lua.LNumber, *lua.LTable:
	default:
		L.ArgError(2, "amount must be a number or Scaled(...)")
	}
	tbl := L.NewTable()
	tbl.RawSetString("kind", lua.LString(kind))
	tbl.RawSetString("damage_type", lua.LString(damageType))
	tbl.RawSetString("amount", amount)
	return tbl
}
