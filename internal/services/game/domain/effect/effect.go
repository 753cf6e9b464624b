// Package effect defines production effects and how they combine.
//
// An effect contributes one number to either the multiplicative or the
// constant term of a production formula. Two variants exist: building effects
// that target one building type, and click effects that target the hand-click
// yield. Effects are pure functions of a read-only game snapshot and may be
// evaluated any number of times.
package effect

import "github.com/louisbranch/cookieclicker/internal/services/game/domain/building"

// Term classifies how an effect's number enters a production formula.
type Term int

const (
	// Multiplier numbers are multiplied together; the empty product is 1.
	Multiplier Term = iota
	// Constant numbers are summed; the empty sum is 0.
	Constant
)

func (t Term) String() string {
	switch t {
	case Multiplier:
		return "multiplier"
	case Constant:
		return "constant"
	default:
		return "unknown"
	}
}

// Stats is the read-only view of primary game fields available to building
// effects. Building rates are not part of it because they are still being
// computed when building effects run.
type Stats interface {
	Ticks() int64
	Bank() float64
	Count(building.Type) int
	Inventory() map[building.Type]int
	ClickingRate() float64
	CookiesBaked() float64
	HandmadeCookies() float64
	CookieClicks() float64
}

// Production extends Stats with the building rates committed by the first
// evaluation phase. Click effects receive this view.
type Production interface {
	Stats
	Rate(building.Type) float64
	BuildingRates() map[building.Type]float64
}

// Effect is a production effect. The set of implementations is closed:
// BuildingEffect and ClickEffect.
type Effect interface {
	EffectName() string
	EffectTerm() Term
	sealed()
}

// BuildingEffect changes the per-unit production of one building type.
type BuildingEffect struct {
	Name     string
	Target   building.Type
	Term     Term
	Evaluate func(Stats) float64
}

// ClickEffect changes the number of cookies produced by one click.
type ClickEffect struct {
	Name     string
	Term     Term
	Evaluate func(Production) float64
}

func (e BuildingEffect) EffectName() string { return e.Name }
func (e BuildingEffect) EffectTerm() Term   { return e.Term }
func (BuildingEffect) sealed()              {}

func (e ClickEffect) EffectName() string { return e.Name }
func (e ClickEffect) EffectTerm() Term   { return e.Term }
func (ClickEffect) sealed()              {}

// Number evaluates e against stats. A missing evaluator yields the identity of
// the effect's term.
func (e BuildingEffect) Number(stats Stats) float64 {
	if e.Evaluate == nil {
		return identity(e.Term)
	}
	return e.Evaluate(stats)
}

// Number evaluates e against production. A missing evaluator yields the
// identity of the effect's term.
func (e ClickEffect) Number(production Production) float64 {
	if e.Evaluate == nil {
		return identity(e.Term)
	}
	return e.Evaluate(production)
}

// Fixed returns an evaluator for a building effect that always yields n.
func Fixed(n float64) func(Stats) float64 {
	return func(Stats) float64 { return n }
}

// FixedClick returns an evaluator for a click effect that always yields n.
func FixedClick(n float64) func(Production) float64 {
	return func(Production) float64 { return n }
}

func identity(term Term) float64 {
	if term == Multiplier {
		return 1
	}
	return 0
}
