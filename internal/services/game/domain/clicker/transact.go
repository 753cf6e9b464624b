package clicker

import (
	"math"
	"strconv"

	"github.com/louisbranch/cookieclicker/internal/services/game/domain/buff"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/building"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/upgrade"
)

// TransactBuildings buys (amount > 0) or sells (amount < 0) buildings of type
// t. Selling credits the refund to the bank.
func (s State) TransactBuildings(t building.Type, amount int) (State, error) {
	cost, err := s.TransactionPrice(t, amount)
	if err != nil {
		return State{}, err
	}
	if amount == 0 {
		return s, nil
	}
	if cost > s.bank {
		return State{}, unaffordable(cost, s.bank)
	}
	owned := s.inventory[t] + amount
	return s.derive(func(next *State) {
		next.bank -= cost
		inventory := s.Inventory()
		if owned == 0 {
			delete(inventory, t)
		} else {
			inventory[t] = owned
		}
		next.inventory = inventory
	}), nil
}

// TransactionPrice returns the cost of changing the owned count of t by
// amount. Refunds are negative.
func (s State) TransactionPrice(t building.Type, amount int) (float64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	owned := s.inventory[t]
	// Only sells can underflow; owned+amount may overflow int on huge buys.
	if amount < 0 && owned+amount < 0 {
		return 0, ErrInsufficientBuildings.Detail(map[string]string{
			"Building": t.ID,
			"Owned":    strconv.Itoa(owned),
			"Amount":   strconv.Itoa(amount),
		})
	}
	return s.pricing.BuildingTransaction(t, owned, amount), nil
}

// UpgradePrice returns the price of u, which must not be owned yet.
func (s State) UpgradePrice(u *upgrade.Upgrade) (float64, error) {
	if err := u.Validate(); err != nil {
		return 0, err
	}
	if s.upgrades.Contains(u.ID) {
		return 0, ErrUpgradeOwned.Detail(map[string]string{"Upgrade": u.ID})
	}
	return s.pricing.UpgradePrice(u), nil
}

// CanBuyUpgrade reports whether BuyUpgrade(u) would succeed.
func (s State) CanBuyUpgrade(u *upgrade.Upgrade) bool {
	return s.checkUpgrade(u) == nil
}

// BuyUpgrade pays for u and adds it to the owned set.
func (s State) BuyUpgrade(u *upgrade.Upgrade) (State, error) {
	if err := s.checkUpgrade(u); err != nil {
		return State{}, err
	}
	price := s.pricing.UpgradePrice(u)
	return s.derive(func(next *State) {
		next.bank -= price
		next.upgrades = s.upgrades.With(u)
	}), nil
}

func (s State) checkUpgrade(u *upgrade.Upgrade) error {
	if err := u.Validate(); err != nil {
		return err
	}
	if s.upgrades.Contains(u.ID) {
		return ErrUpgradeOwned.Detail(map[string]string{"Upgrade": u.ID})
	}
	if !u.Purchasable(s) {
		return ErrUpgradeLocked.Detail(map[string]string{"Upgrade": u.ID})
	}
	if price := s.pricing.UpgradePrice(u); price > s.bank {
		return unaffordable(price, s.bank)
	}
	return nil
}

// RegisterBuff activates b. The state keeps its own copy of b.
func (s State) RegisterBuff(b *buff.Buff) (State, error) {
	if err := b.Validate(); err != nil {
		return State{}, err
	}
	copied := *b
	return s.derive(func(next *State) {
		buffs := make([]*buff.Buff, len(s.buffs), len(s.buffs)+1)
		copy(buffs, s.buffs)
		next.buffs = append(buffs, &copied)
	}), nil
}

// AdjustBank adds delta to the bank. Positive deltas also count towards
// lifetime production.
func (s State) AdjustBank(delta float64) (State, error) {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return State{}, ErrNotFinite
	}
	if s.bank+delta < 0 {
		return State{}, ErrNegativeBank.Detail(map[string]string{
			"Bank":  formatFloat(s.bank),
			"Delta": formatFloat(delta),
		})
	}
	return s.derive(func(next *State) {
		next.bank += delta
		if delta > 0 {
			next.cookiesBaked += delta
		}
	}), nil
}

// SetClickingRate sets clicks per tick.
func (s State) SetClickingRate(rate float64) (State, error) {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return State{}, ErrNotFinite
	}
	if rate < 0 {
		return State{}, ErrNegativeClickingRate.Detail(map[string]string{"Rate": formatFloat(rate)})
	}
	return s.derive(func(next *State) {
		next.clickingRate = rate
	}), nil
}

func unaffordable(price, bank float64) error {
	return ErrUnaffordable.Detail(map[string]string{
		"Price": formatFloat(price),
		"Bank":  formatFloat(bank),
	})
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
