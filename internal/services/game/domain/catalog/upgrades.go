package catalog

import (
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/building"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/effect"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/upgrade"
)

// Upgrade ids.
const (
	ReinforcedIndexFinger       = "reinforced_index_finger"
	CarpalTunnelPreventionCream = "carpal_tunnel_prevention_cream"
	Ambidextrous                = "ambidextrous"

	ForwardsFromGrandma    = "forwards_from_grandma"
	SteelPlatedRollingPins = "steel_plated_rolling_pins"
	LubricatedDentures     = "lubricated_dentures"
	CheapHoes              = "cheap_hoes"
	Fertilizer             = "fertilizer"
	CookieTrees            = "cookie_trees"
	SugarGas               = "sugar_gas"
	Megadrill              = "megadrill"

	FarmerGrandmas = "farmer_grandmas"

	PlasticMouse    = "plastic_mouse"
	ThousandFingers = "thousand_fingers"
)

func (c *Catalog) standardUpgrades() []*upgrade.Upgrade {
	cursor := c.buildingsByID[Cursor]
	grandma := c.buildingsByID[Grandma]
	farm := c.buildingsByID[Farm]
	mine := c.buildingsByID[Mine]

	var out []*upgrade.Upgrade

	// Cursor upgrades double cursors and clicks.
	for _, spec := range []struct {
		id      string
		cursors int
		price   float64
	}{
		{ReinforcedIndexFinger, 1, 100},
		{CarpalTunnelPreventionCream, 1, 500},
		{Ambidextrous, 10, 10000},
	} {
		out = append(out, &upgrade.Upgrade{
			ID:          spec.id,
			Price:       spec.price,
			Effects:     []effect.Effect{multiply(spec.id, cursor, 2), clickMultiplier(spec.id, 2)},
			Requirement: owns(cursor, spec.cursors),
		})
	}

	for _, spec := range []struct {
		id      string
		target  building.Type
		minimum int
		price   float64
	}{
		{ForwardsFromGrandma, grandma, 1, 1000},
		{SteelPlatedRollingPins, grandma, 5, 5000},
		{LubricatedDentures, grandma, 25, 50000},
		{CheapHoes, farm, 1, 11000},
		{Fertilizer, farm, 5, 55000},
		{CookieTrees, farm, 25, 550000},
		{SugarGas, mine, 1, 120000},
		{Megadrill, mine, 1, 600000},
	} {
		out = append(out, &upgrade.Upgrade{
			ID:          spec.id,
			Price:       spec.price,
			Effects:     []effect.Effect{multiply(spec.id, spec.target, 2)},
			Requirement: owns(spec.target, spec.minimum),
		})
	}

	out = append(out, &upgrade.Upgrade{
		ID:    FarmerGrandmas,
		Price: 55000,
		Effects: []effect.Effect{
			multiply(FarmerGrandmas, grandma, 2),
			effect.BuildingEffect{
				Name:   FarmerGrandmas,
				Target: farm,
				Term:   effect.Multiplier,
				Evaluate: func(s effect.Stats) float64 {
					return 1 + 0.01*float64(s.Count(grandma))
				},
			},
		},
		Requirement: func(p effect.Production) bool {
			return p.Count(grandma) >= 1 && p.Count(farm) >= 15
		},
	})

	nonCursors := func(s effect.Stats) float64 {
		total := 0
		for t, count := range s.Inventory() {
			if t != cursor {
				total += count
			}
		}
		return 0.1 * float64(total)
	}
	out = append(out,
		&upgrade.Upgrade{
			ID:    PlasticMouse,
			Price: 50000,
			Effects: []effect.Effect{effect.ClickEffect{
				Name: PlasticMouse,
				Term: effect.Constant,
				Evaluate: func(p effect.Production) float64 {
					cps := 0.0
					for _, rate := range p.BuildingRates() {
						cps += rate
					}
					return 0.01 * cps
				},
			}},
			Requirement: owns(cursor, 25),
		},
		&upgrade.Upgrade{
			ID:    ThousandFingers,
			Price: 100000,
			Effects: []effect.Effect{
				effect.BuildingEffect{Name: ThousandFingers, Target: cursor, Term: effect.Constant, Evaluate: nonCursors},
				effect.ClickEffect{Name: ThousandFingers, Term: effect.Constant, Evaluate: func(p effect.Production) float64 {
					return nonCursors(p)
				}},
			},
			Requirement: func(p effect.Production) bool {
				return p.HandmadeCookies() >= 1000
			},
		},
	)
	return out
}

func owns(t building.Type, minimum int) func(effect.Production) bool {
	return func(p effect.Production) bool {
		return p.Count(t) >= minimum
	}
}

func multiply(name string, t building.Type, n float64) effect.BuildingEffect {
	return effect.BuildingEffect{Name: name, Target: t, Term: effect.Multiplier, Evaluate: effect.Fixed(n)}
}

func clickMultiplier(name string, n float64) effect.ClickEffect {
	return effect.ClickEffect{Name: name, Term: effect.Multiplier, Evaluate: effect.FixedClick(n)}
}
