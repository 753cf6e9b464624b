package clicker

import (
	"strconv"

	"github.com/louisbranch/cookieclicker/internal/services/game/domain/buff"
)

// Warp advances s by ticks.
//
// The interval is split at every buff expiry inside it. Each step accrues at
// the rates in force when it starts, then expired buffs are dropped and
// production recomputed. Buffs expiring together share one step.
func (s State) Warp(ticks int64) (State, error) {
	if ticks < 0 {
		return State{}, ErrNegativeTicks.Detail(map[string]string{"Ticks": strconv.FormatInt(ticks, 10)})
	}
	current := s
	for remaining := ticks; remaining > 0; {
		step := remaining
		if horizon, ok := buff.Horizon(current.buffs); ok && horizon < step {
			step = horizon
		}
		next, err := current.advance(step)
		if err != nil {
			return State{}, err
		}
		current = next
		remaining -= step
	}
	return current, nil
}

// WarpSteps returns how many integration steps Warp(ticks) takes.
func (s State) WarpSteps(ticks int64) int {
	if ticks <= 0 {
		return 0
	}
	boundaries := make(map[int64]struct{})
	for _, b := range s.buffs {
		if b.TimeLeft < ticks {
			boundaries[b.TimeLeft] = struct{}{}
		}
	}
	return len(boundaries) + 1
}

// advance accrues one step of dt ticks at the current rates.
func (s State) advance(dt int64) (State, error) {
	survivors, err := buff.Advance(s.buffs, dt)
	if err != nil {
		return State{}, err
	}
	span := float64(dt)
	clickDelta := s.clickingRate * span
	handmadeDelta := clickDelta * s.cookiesPerClick
	buildingDelta := s.TotalRate() * span
	bankDelta := handmadeDelta + buildingDelta

	return s.derive(func(next *State) {
		next.ticks += dt
		next.bank += bankDelta
		next.cookiesBaked += bankDelta
		next.handmadeCookies += handmadeDelta
		next.cookieClicks += clickDelta
		next.buffs = survivors
	}), nil
}
