// Package catalog provides the standard early-game content: buildings,
// upgrades and buffs.
//
// Content rates are defined in cookies per second and converted to ticks when
// a catalog is built, so one catalog serves a single tick rate.
package catalog

import (
	"sort"

	apperrors "github.com/louisbranch/cookieclicker/internal/platform/errors"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/buff"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/building"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/effect"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/upgrade"
)

// DefaultTicksPerSecond is the tick rate content is balanced for.
const DefaultTicksPerSecond = 30

// Building ids.
const (
	Cursor  = "cursor"
	Grandma = "grandma"
	Farm    = "farm"
	Mine    = "mine"
	Factory = "factory"
)

// Buff ids.
const (
	Frenzy      = "frenzy"
	ClickFrenzy = "click_frenzy"
	Clicking    = "clicking"
)

// ErrUnknownEntry indicates an id the catalog does not define.
var ErrUnknownEntry = apperrors.New(apperrors.CodeCatalogUnknownEntry, "unknown catalog entry")

type buffSpec struct {
	seconds int64
	effects func(c *Catalog) []effect.Effect
}

// Catalog is an immutable content pack for one tick rate.
type Catalog struct {
	ticksPerSecond int64
	buildings      []building.Type
	buildingsByID  map[string]building.Type
	upgrades       []*upgrade.Upgrade
	upgradesByID   map[string]*upgrade.Upgrade
	buffs          map[string]buffSpec
}

// Default returns the catalog at DefaultTicksPerSecond.
func Default() *Catalog {
	return New(DefaultTicksPerSecond)
}

// New builds the catalog for ticksPerSecond. Values below one use the
// default rate.
func New(ticksPerSecond int64) *Catalog {
	if ticksPerSecond < 1 {
		ticksPerSecond = DefaultTicksPerSecond
	}
	c := &Catalog{
		ticksPerSecond: ticksPerSecond,
		buildingsByID:  make(map[string]building.Type),
		upgradesByID:   make(map[string]*upgrade.Upgrade),
	}
	perTick := func(cps float64) float64 { return cps / float64(ticksPerSecond) }
	for _, t := range []building.Type{
		{ID: Cursor, UnitPrice: 15, BaseRate: perTick(0.1)},
		{ID: Grandma, UnitPrice: 100, BaseRate: perTick(1)},
		{ID: Farm, UnitPrice: 1100, BaseRate: perTick(8)},
		{ID: Mine, UnitPrice: 12000, BaseRate: perTick(47)},
		{ID: Factory, UnitPrice: 130000, BaseRate: perTick(260)},
	} {
		c.buildings = append(c.buildings, t)
		c.buildingsByID[t.ID] = t
	}
	for _, u := range c.standardUpgrades() {
		c.upgrades = append(c.upgrades, u)
		c.upgradesByID[u.ID] = u
	}
	c.buffs = map[string]buffSpec{
		Frenzy: {seconds: 77, effects: func(c *Catalog) []effect.Effect {
			out := make([]effect.Effect, 0, len(c.buildings))
			for _, t := range c.buildings {
				out = append(out, multiply(Frenzy, t, 7))
			}
			return out
		}},
		ClickFrenzy: {seconds: 13, effects: func(*Catalog) []effect.Effect {
			return []effect.Effect{clickMultiplier(ClickFrenzy, 777)}
		}},
		Clicking: {seconds: 10, effects: func(*Catalog) []effect.Effect {
			return []effect.Effect{clickMultiplier(Clicking, 2)}
		}},
	}
	return c
}

// TicksPerSecond returns the tick rate the catalog was built for.
func (c *Catalog) TicksPerSecond() int64 {
	return c.ticksPerSecond
}

// Buildings returns every building type in unlock order.
func (c *Catalog) Buildings() []building.Type {
	return append([]building.Type(nil), c.buildings...)
}

// Building looks up a building type by id.
func (c *Catalog) Building(id string) (building.Type, error) {
	t, ok := c.buildingsByID[id]
	if !ok {
		return building.Type{}, unknown("building", id)
	}
	return t, nil
}

// MustBuilding is like Building but panics for unknown ids. It is meant for
// ids from this package's constants.
func (c *Catalog) MustBuilding(id string) building.Type {
	t, err := c.Building(id)
	if err != nil {
		panic(err)
	}
	return t
}

// Upgrades returns every upgrade in catalog order.
func (c *Catalog) Upgrades() []*upgrade.Upgrade {
	return append([]*upgrade.Upgrade(nil), c.upgrades...)
}

// Upgrade looks up an upgrade by id.
func (c *Catalog) Upgrade(id string) (*upgrade.Upgrade, error) {
	u, ok := c.upgradesByID[id]
	if !ok {
		return nil, unknown("upgrade", id)
	}
	return u, nil
}

// BuffIDs returns the ids of buffs the catalog can create, sorted.
func (c *Catalog) BuffIDs() []string {
	ids := make([]string, 0, len(c.buffs))
	for id := range c.buffs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NewBuff creates a fresh buff with its full duration.
func (c *Catalog) NewBuff(id string) (*buff.Buff, error) {
	spec, ok := c.buffs[id]
	if !ok {
		return nil, unknown("buff", id)
	}
	total := spec.seconds * c.ticksPerSecond
	return buff.New(id, total, total, spec.effects(c)...)
}

// RestoreBuff recreates a buff with saved timers.
func (c *Catalog) RestoreBuff(id string, timeLeft, timeTotal int64) (*buff.Buff, error) {
	spec, ok := c.buffs[id]
	if !ok {
		return nil, unknown("buff", id)
	}
	return buff.New(id, timeLeft, timeTotal, spec.effects(c)...)
}

func unknown(kind, id string) error {
	return ErrUnknownEntry.Detail(map[string]string{"Kind": kind, "ID": id})
}
