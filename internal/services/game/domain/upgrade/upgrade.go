// Package upgrade defines one-time production upgrades and the ordered set a
// game state owns.
package upgrade

import (
	"math"
	"strings"

	apperrors "github.com/louisbranch/cookieclicker/internal/platform/errors"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/effect"
)

var (
	// ErrRequired indicates a missing upgrade reference.
	ErrRequired = apperrors.New(apperrors.CodeUpgradeRequired, "upgrade is required")
	// ErrInvalid indicates an upgrade without an id or with an unusable price.
	ErrInvalid = apperrors.New(apperrors.CodeUpgradeInvalid, "upgrade must have an id and a non-negative price")
)

// Upgrade is a permanent purchase contributing production effects.
//
// Requirement reports whether the upgrade is unlocked for a game snapshot. It
// never considers price or prior ownership. A nil Requirement is always met.
type Upgrade struct {
	ID          string
	Price       float64
	Effects     []effect.Effect
	Requirement func(effect.Production) bool
}

// Validate checks the fields used by purchase transitions.
func (u *Upgrade) Validate() error {
	if u == nil {
		return ErrRequired
	}
	if strings.TrimSpace(u.ID) == "" {
		return ErrInvalid
	}
	if !(u.Price >= 0) || math.IsInf(u.Price, 0) {
		return ErrInvalid.Detail(map[string]string{"Upgrade": u.ID})
	}
	return nil
}

// Purchasable evaluates the requirement against production.
func (u *Upgrade) Purchasable(production effect.Production) bool {
	if u == nil {
		return false
	}
	if u.Requirement == nil {
		return true
	}
	return u.Requirement(production)
}

// Set is an insertion-ordered collection of upgrades keyed by ID.
//
// A Set is never modified after construction; With returns a new Set and
// leaves the receiver untouched, so sets may be shared between states.
type Set struct {
	order []*Upgrade
	byID  map[string]*Upgrade
}

// NewSet builds a set from upgrades, keeping the first occurrence of each ID.
func NewSet(upgrades ...*Upgrade) Set {
	var s Set
	for _, u := range upgrades {
		if u == nil || s.Contains(u.ID) {
			continue
		}
		s = s.With(u)
	}
	return s
}

// With returns a set that also holds u. Adding an ID already present returns
// the receiver.
func (s Set) With(u *Upgrade) Set {
	if u == nil || s.Contains(u.ID) {
		return s
	}
	order := make([]*Upgrade, len(s.order), len(s.order)+1)
	copy(order, s.order)
	order = append(order, u)
	byID := make(map[string]*Upgrade, len(s.byID)+1)
	for id, existing := range s.byID {
		byID[id] = existing
	}
	byID[u.ID] = u
	return Set{order: order, byID: byID}
}

// Contains reports whether an upgrade with id is in the set.
func (s Set) Contains(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// Get returns the upgrade with id.
func (s Set) Get(id string) (*Upgrade, bool) {
	u, ok := s.byID[id]
	return u, ok
}

// Len returns the number of upgrades in the set.
func (s Set) Len() int {
	return len(s.order)
}

// IDs returns upgrade ids in insertion order.
func (s Set) IDs() []string {
	ids := make([]string, 0, len(s.order))
	for _, u := range s.order {
		ids = append(ids, u.ID)
	}
	return ids
}

// List returns a copy of the upgrades in insertion order.
func (s Set) List() []*Upgrade {
	out := make([]*Upgrade, len(s.order))
	copy(out, s.order)
	return out
}

// Effects returns the effects of every upgrade in insertion order.
func (s Set) Effects() []effect.Effect {
	var out []effect.Effect
	for _, u := range s.order {
		out = append(out, u.Effects...)
	}
	return out
}
