// Package catalog holds the immutable ability and status definitions.
// A Catalog is built once and then shared read-only; it is safe for
// concurrent readers.
package catalog

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sort"

	"github.com/nathoo/abilitycore/types"
)

// ErrNotFound is wrapped by every NotFoundError.
var ErrNotFound = errors.New("not found")

// NotFoundError reports a lookup of an unknown ability, status or entity id.
type NotFoundError struct {
	Kind string // "ability", "status" or "entity"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// Catalog maps ids to definitions.
type Catalog struct {
	abilities map[string]types.AbilityDef
	statuses  map[string]types.StatusDef
}

// New builds a catalog from definitions. The input is deep-copied, so later
// changes to the caller's slices do not leak into the catalog.
func New(abilities []types.AbilityDef, statuses []types.StatusDef) (*Catalog, error) {
	c := &Catalog{
		abilities: make(map[string]types.AbilityDef, len(abilities)),
		statuses:  make(map[string]types.StatusDef, len(statuses)),
	}

	for _, s := range statuses {
		if s.ID == "" {
			return nil, fmt.Errorf("status with empty id")
		}
		if _, dup := c.statuses[s.ID]; dup {
			return nil, fmt.Errorf("duplicate status id %q", s.ID)
		}
		c.statuses[s.ID] = cloneStatus(s)
	}

	for _, a := range abilities {
		if a.ID == "" {
			return nil, fmt.Errorf("ability with empty id")
		}
		if _, dup := c.abilities[a.ID]; dup {
			return nil, fmt.Errorf("duplicate ability id %q", a.ID)
		}
		c.abilities[a.ID] = cloneAbility(a)
	}

	return c, nil
}

// Ability returns a copy of the ability definition for id. Changing the
// copy does not affect the catalog.
func (c *Catalog) Ability(id string) (types.AbilityDef, error) {
	a, ok := c.abilities[id]
	if !ok {
		return types.AbilityDef{}, &NotFoundError{Kind: "ability", ID: id}
	}
	return cloneAbility(a), nil
}

// Status returns a copy of the status definition for id. Changing the copy
// does not affect the catalog.
func (c *Catalog) Status(id string) (types.StatusDef, error) {
	s, ok := c.statuses[id]
	if !ok {
		return types.StatusDef{}, &NotFoundError{Kind: "status", ID: id}
	}
	return cloneStatus(s), nil
}

// AbilityIDs returns all ability ids in ascending order.
func (c *Catalog) AbilityIDs() []string {
	ids := make([]string, 0, len(c.abilities))
	for id := range c.abilities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// StatusIDs returns all status ids in ascending order.
func (c *Catalog) StatusIDs() []string {
	ids := make([]string, 0, len(c.statuses))
	for id := range c.statuses {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func cloneAbility(a types.AbilityDef) types.AbilityDef {
	a.Tags = slices.Clone(a.Tags)
	a.Effects = slices.Clone(a.Effects)
	return a
}

func cloneStatus(s types.StatusDef) types.StatusDef {
	s.Tags = slices.Clone(s.Tags)
	s.StatMods = slices.Clone(s.StatMods)
	if s.Dot != nil {
		dot := *s.Dot
		s.Dot = &dot
	}
	if s.Hooks != nil {
		hooks := maps.Clone(s.Hooks)
		for h, rules := range hooks {
			hooks[h] = slices.Clone(rules)
		}
		s.Hooks = hooks
	}
	return s
}
