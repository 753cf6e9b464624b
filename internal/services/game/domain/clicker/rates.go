package clicker

import (
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/buff"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/building"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/effect"
)

// recompute rebuilds the derived production of s from its inventory, owned
// upgrades and active buffs.
func (s *State) recompute() {
	pool := append(s.upgrades.Effects(), buff.Effects(s.buffs)...)
	buildingEffects, clickEffects := effect.Split(pool)

	// Phase 1: building effects see primary fields only.
	s.rates = nil
	s.cookiesPerClick = 0
	factors := effect.CombineBuildings(buildingEffects, *s)
	rates := make(map[building.Type]float64, len(s.inventory))
	for t, count := range s.inventory {
		f, ok := factors[t]
		if !ok {
			f = effect.Identity()
		}
		rates[t] = float64(count) * f.Apply(t.BaseRate)
	}
	s.rates = rates

	// Phase 2: click effects may read the committed rates.
	s.cookiesPerClick = effect.CombineClicks(clickEffects, *s).Apply(1)
}

// derive copies s, applies change to the copy and recomputes production.
// change must replace, never modify, any collection it touches.
func (s State) derive(change func(*State)) State {
	next := s
	change(&next)
	next.recompute()
	return next
}
