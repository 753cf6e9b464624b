package clicker

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/louisbranch/cookieclicker/internal/services/game/domain/buff"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/building"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/effect"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/pricing"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/upgrade"
)

// State is one immutable snapshot of a game.
//
// The zero State is not usable; build states with NewGame or New.
type State struct {
	pricing pricing.Config

	ticks           int64
	bank            float64
	inventory       map[building.Type]int
	upgrades        upgrade.Set
	buffs           []*buff.Buff
	clickingRate    float64
	cookiesBaked    float64
	handmadeCookies float64
	cookieClicks    float64

	// Derived by recompute; never assigned elsewhere.
	rates           map[building.Type]float64
	cookiesPerClick float64
}

// Params holds the primary fields of a state. Derived production is not part
// of it and is always recomputed.
type Params struct {
	Pricing         pricing.Config
	Ticks           int64
	Bank            float64
	Inventory       map[building.Type]int
	Upgrades        []*upgrade.Upgrade
	Buffs           []*buff.Buff
	ClickingRate    float64
	CookiesBaked    float64
	HandmadeCookies float64
	CookieClicks    float64
}

// NewGame returns a fresh game using cfg.
func NewGame(cfg pricing.Config) (State, error) {
	return New(Params{Pricing: cfg})
}

// New validates p and builds the state it describes.
func New(p Params) (State, error) {
	if err := p.Pricing.Validate(); err != nil {
		return State{}, err
	}
	if p.Ticks < 0 {
		return State{}, invalid("ticks", strconv.FormatInt(p.Ticks, 10))
	}
	for name, value := range map[string]float64{
		"bank":             p.Bank,
		"clicking_rate":    p.ClickingRate,
		"cookies_baked":    p.CookiesBaked,
		"handmade_cookies": p.HandmadeCookies,
		"cookie_clicks":    p.CookieClicks,
	} {
		if !(value >= 0) || math.IsInf(value, 0) {
			return State{}, invalid(name, strconv.FormatFloat(value, 'g', -1, 64))
		}
	}
	if p.CookiesBaked < p.HandmadeCookies*(1-1e-12) {
		return State{}, invalid("cookies_baked", strconv.FormatFloat(p.CookiesBaked, 'g', -1, 64))
	}

	inventory := make(map[building.Type]int, len(p.Inventory))
	for t, count := range p.Inventory {
		if err := t.Validate(); err != nil {
			return State{}, err
		}
		if count < 0 {
			return State{}, invalid("inventory."+t.ID, strconv.Itoa(count))
		}
		if count > 0 {
			inventory[t] = count
		}
	}
	for _, u := range p.Upgrades {
		if err := u.Validate(); err != nil {
			return State{}, err
		}
	}
	buffs := make([]*buff.Buff, 0, len(p.Buffs))
	for _, b := range p.Buffs {
		if err := b.Validate(); err != nil {
			return State{}, err
		}
		copied := *b
		buffs = append(buffs, &copied)
	}

	s := State{
		pricing:         p.Pricing,
		ticks:           p.Ticks,
		bank:            p.Bank,
		inventory:       inventory,
		upgrades:        upgrade.NewSet(p.Upgrades...),
		buffs:           buffs,
		clickingRate:    p.ClickingRate,
		cookiesBaked:    p.CookiesBaked,
		handmadeCookies: p.HandmadeCookies,
		cookieClicks:    p.CookieClicks,
	}
	s.recompute()
	return s, nil
}

func invalid(field, value string) error {
	return ErrInvalidState.Detail(map[string]string{"Field": field, "Value": value})
}

// Params returns the primary fields of s.
func (s State) Params() Params {
	return Params{
		Pricing:         s.pricing,
		Ticks:           s.ticks,
		Bank:            s.bank,
		Inventory:       s.Inventory(),
		Upgrades:        s.Upgrades(),
		Buffs:           s.ActiveBuffs(),
		ClickingRate:    s.clickingRate,
		CookiesBaked:    s.cookiesBaked,
		HandmadeCookies: s.handmadeCookies,
		CookieClicks:    s.cookieClicks,
	}
}

// Pricing returns the economy parameters of s.
func (s State) Pricing() pricing.Config { return s.pricing }

// Ticks returns the elapsed simulated time.
func (s State) Ticks() int64 { return s.ticks }

// Bank returns the spendable balance.
func (s State) Bank() float64 { return s.bank }

// ClickingRate returns clicks per tick.
func (s State) ClickingRate() float64 { return s.clickingRate }

// CookiesBaked returns lifetime production.
func (s State) CookiesBaked() float64 { return s.cookiesBaked }

// HandmadeCookies returns lifetime production from clicks.
func (s State) HandmadeCookies() float64 { return s.handmadeCookies }

// CookieClicks returns lifetime clicks.
func (s State) CookieClicks() float64 { return s.cookieClicks }

// CookiesPerClick returns the current click yield.
func (s State) CookiesPerClick() float64 { return s.cookiesPerClick }

// Count returns how many buildings of type t are owned.
func (s State) Count(t building.Type) int {
	return s.inventory[t]
}

// Inventory returns a copy of owned building counts. Types with no units are
// absent.
func (s State) Inventory() map[building.Type]int {
	out := make(map[building.Type]int, len(s.inventory))
	for t, count := range s.inventory {
		out[t] = count
	}
	return out
}

// Upgrades returns owned upgrades in purchase order.
func (s State) Upgrades() []*upgrade.Upgrade {
	return s.upgrades.List()
}

// OwnsUpgrade reports whether an upgrade with id is owned.
func (s State) OwnsUpgrade(id string) bool {
	return s.upgrades.Contains(id)
}

// ActiveBuffs returns copies of the active buffs in registration order.
func (s State) ActiveBuffs() []*buff.Buff {
	out := make([]*buff.Buff, 0, len(s.buffs))
	for _, b := range s.buffs {
		copied := *b
		out = append(out, &copied)
	}
	return out
}

// Rate returns the production per tick of all owned units of type t.
func (s State) Rate(t building.Type) float64 {
	return s.rates[t]
}

// BuildingRates returns a copy of the per-building production table.
func (s State) BuildingRates() map[building.Type]float64 {
	out := make(map[building.Type]float64, len(s.rates))
	for t, rate := range s.rates {
		out[t] = rate
	}
	return out
}

// TotalRate returns building production per tick.
func (s State) TotalRate() float64 {
	total := 0.0
	for _, t := range s.sortedTypes() {
		total += s.rates[t]
	}
	return total
}

// String renders s for debugging. The format is not stable.
func (s State) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ticks=%d bank=%g baked=%g handmade=%g clicks=%g clicking_rate=%g per_click=%g",
		s.ticks, s.bank, s.cookiesBaked, s.handmadeCookies, s.cookieClicks, s.clickingRate, s.cookiesPerClick)
	fmt.Fprintf(&b, " pricing={g=%g r=%g}", s.pricing.GrowthFactor, s.pricing.RefundFactor)
	b.WriteString(" inventory={")
	for i, t := range s.sortedTypes() {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%s:%d@%g", t.ID, s.inventory[t], s.rates[t])
	}
	b.WriteString("}")
	fmt.Fprintf(&b, " upgrades=%v", s.upgrades.IDs())
	b.WriteString(" buffs=[")
	for i, bf := range s.buffs {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%s:%d/%d", bf.ID, bf.TimeLeft, bf.TimeTotal)
	}
	b.WriteString("]")
	return b.String()
}

func (s State) sortedTypes() []building.Type {
	types := make([]building.Type, 0, len(s.inventory))
	for t := range s.inventory {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		if types[i].ID != types[j].ID {
			return types[i].ID < types[j].ID
		}
		if types[i].UnitPrice != types[j].UnitPrice {
			return types[i].UnitPrice < types[j].UnitPrice
		}
		return types[i].BaseRate < types[j].BaseRate
	})
	return types
}

var _ effect.Production = State{}
