// Package state manages the mutable world: entities, their raw stats and
// the status instances applied to them. Status definitions are always
// looked up in the catalog passed to each call; instances only hold ids.
package state

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/nathoo/abilitycore/engine/catalog"
	"github.com/nathoo/abilitycore/engine/trace"
	"github.com/nathoo/abilitycore/types"
)

// World holds every entity of one encounter. It is not safe for concurrent
// use; callers serialize access.
type World struct {
	entities map[types.EntityID]*types.Entity
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{entities: map[types.EntityID]*types.Entity{}}
}

// Insert adds an entity. Inserting an id twice is an error.
func (w *World) Insert(e types.Entity) error {
	if _, dup := w.entities[e.ID]; dup {
		return fmt.Errorf("entity %d already exists", e.ID)
	}
	e.Tags = slices.Clone(e.Tags)
	e.Statuses = slices.Clone(e.Statuses)
	w.entities[e.ID] = &e
	return nil
}

// Entity returns the live entity for id.
func (w *World) Entity(id types.EntityID) (*types.Entity, error) {
	e, ok := w.entities[id]
	if !ok {
		return nil, entityNotFound(id)
	}
	return e, nil
}

// IDs returns every entity id in ascending order.
func (w *World) IDs() []types.EntityID {
	ids := make([]types.EntityID, 0, len(w.entities))
	for id := range w.entities {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of entities.
func (w *World) Len() int {
	return len(w.entities)
}

// Stat returns the raw value of a stat. Status stat modifiers are not
// applied.
func Stat(e *types.Entity, s types.Stat) int {
	switch s {
	case types.StatHP:
		return e.HP
	case types.StatArmor:
		return e.Armor
	case types.StatPower:
		return e.Power
	default:
		return 0
	}
}

// GetStat returns the raw value of a stat for the entity with the given id.
func (w *World) GetStat(id types.EntityID, s types.Stat) (int, error) {
	e, err := w.Entity(id)
	if err != nil {
		return 0, err
	}
	return Stat(e, s), nil
}

// Statuses returns a copy of the entity's status instances.
func (w *World) Statuses(id types.EntityID) ([]types.StatusInstance, error) {
	e, err := w.Entity(id)
	if err != nil {
		return nil, err
	}
	return slices.Clone(e.Statuses), nil
}

// HasTag returns true if the entity itself carries the tag.
func HasTag(e *types.Entity, tag string) bool {
	return slices.Contains(e.Tags, tag)
}

// StatusHasTag returns true if the instance's definition carries the tag.
func StatusHasTag(cat *catalog.Catalog, si types.StatusInstance, tag string) (bool, error) {
	def, err := cat.Status(si.StatusID)
	if err != nil {
		return false, err
	}
	return slices.Contains(def.Tags, tag), nil
}

// AddStatus applies a status to the target. An existing instance is
// refreshed: stacks grow up to the definition's cap and the remaining
// duration becomes the longer of the two. Otherwise a new instance is
// appended.
func (w *World) AddStatus(cat *catalog.Catalog, target types.EntityID, statusID string, duration, stacks int) error {
	def, err := cat.Status(statusID)
	if err != nil {
		return err
	}
	e, err := w.Entity(target)
	if err != nil {
		return err
	}
	if duration < 1 || stacks < 1 {
		return fmt.Errorf("status %q: duration %d and stacks %d must be positive", statusID, duration, stacks)
	}
	maxStacks := max(def.MaxStacks, 1)

	for i := range e.Statuses {
		si := &e.Statuses[i]
		if si.StatusID != statusID {
			continue
		}
		si.Stacks = min(maxStacks, si.Stacks+stacks)
		si.RemainingTurns = max(si.RemainingTurns, duration)
		return nil
	}

	e.Statuses = append(e.Statuses, types.StatusInstance{
		StatusID:       statusID,
		Stacks:         min(maxStacks, stacks),
		RemainingTurns: duration,
	})
	return nil
}

// RemoveStatusesByTag removes up to maxRemoved statuses whose definition
// carries tag, most recently applied first. Returns the number removed.
func (w *World) RemoveStatusesByTag(cat *catalog.Catalog, target types.EntityID, tag string, maxRemoved int) (int, error) {
	e, err := w.Entity(target)
	if err != nil {
		return 0, err
	}

	removed := 0
	for i := len(e.Statuses) - 1; i >= 0 && removed < maxRemoved; i-- {
		ok, err := StatusHasTag(cat, e.Statuses[i], tag)
		if err != nil {
			return removed, err
		}
		if ok {
			e.Statuses = slices.Delete(e.Statuses, i, i+1)
			removed++
		}
	}
	return removed, nil
}

// EntityHasAnyStatusWithTag returns true if any status on the entity
// carries the tag.
func (w *World) EntityHasAnyStatusWithTag(cat *catalog.Catalog, id types.EntityID, tag string) (bool, error) {
	e, err := w.Entity(id)
	if err != nil {
		return false, err
	}
	for _, si := range e.Statuses {
		ok, err := StatusHasTag(cat, si, tag)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// TickTurnStart runs the start-of-turn phase for every entity in ascending
// id order. For each entity all damage-over-time is applied before any
// duration is decremented; statuses reaching zero turns are removed.
//
// An unknown status id aborts the tick with a *catalog.NotFoundError.
// Entities already ticked keep their damage and expiries, and the failing
// entity keeps any damage-over-time applied before the unknown status.
func (w *World) TickTurnStart(cat *catalog.Catalog, tr *trace.Trace) error {
	for _, id := range w.IDs() {
		e := w.entities[id]

		for _, si := range e.Statuses {
			def, err := cat.Status(si.StatusID)
			if err != nil {
				return err
			}
			if def.Dot == nil {
				continue
			}
			dmg := def.Dot.PerStackBase * si.Stacks
			e.HP -= dmg
			tr.Addf("Turn Start! \nEntity: [%d] takes [%d %s] from %s (%d stacks).",
				id, dmg, def.Dot.DamageType, si.StatusID, si.Stacks)
		}

		for i := len(e.Statuses) - 1; i >= 0; i-- {
			e.Statuses[i].RemainingTurns--
			if e.Statuses[i].RemainingTurns <= 0 {
				tr.Addf("Turn Start: Entity: %d status expired: %s", id, e.Statuses[i].StatusID)
				e.Statuses = slices.Delete(e.Statuses, i, i+1)
			}
		}
	}
	return nil
}

func entityNotFound(id types.EntityID) error {
	return &catalog.NotFoundError{Kind: "entity", ID: strconv.FormatUint(uint64(id), 10)}
}
