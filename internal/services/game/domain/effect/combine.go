package effect

import "github.com/louisbranch/cookieclicker/internal/services/game/domain/building"

// Factors is the pair a bucket of effects folds into.
type Factors struct {
	Multiplier float64
	Constant   float64
}

// Identity returns the factors of an empty bucket.
func Identity() Factors {
	return Factors{Multiplier: 1, Constant: 0}
}

// Add folds one number into f according to term.
func (f Factors) Add(term Term, n float64) Factors {
	switch term {
	case Multiplier:
		f.Multiplier *= n
	case Constant:
		f.Constant += n
	}
	return f
}

// Apply returns multiplier*base + constant.
func (f Factors) Apply(base float64) float64 {
	return f.Multiplier*base + f.Constant
}

// Split partitions effects by variant, keeping input order within each side.
// Nil effects are skipped.
func Split(effects []Effect) ([]BuildingEffect, []ClickEffect) {
	var buildings []BuildingEffect
	var clicks []ClickEffect
	for _, e := range effects {
		switch typed := e.(type) {
		case BuildingEffect:
			buildings = append(buildings, typed)
		case *BuildingEffect:
			if typed != nil {
				buildings = append(buildings, *typed)
			}
		case ClickEffect:
			clicks = append(clicks, typed)
		case *ClickEffect:
			if typed != nil {
				clicks = append(clicks, *typed)
			}
		}
	}
	return buildings, clicks
}

// CombineBuildings evaluates building effects against stats and groups the
// results by target. Targets without effects are absent; callers use Identity.
func CombineBuildings(effects []BuildingEffect, stats Stats) map[building.Type]Factors {
	out := make(map[building.Type]Factors)
	for _, e := range effects {
		factors, ok := out[e.Target]
		if !ok {
			factors = Identity()
		}
		out[e.Target] = factors.Add(e.Term, e.Number(stats))
	}
	return out
}

// CombineClicks evaluates click effects against production into one pair.
func CombineClicks(effects []ClickEffect, production Production) Factors {
	factors := Identity()
	for _, e := range effects {
		factors = factors.Add(e.Term, e.Number(production))
	}
	return factors
}
