package clicker

import (
	"errors"
	"math"
	"testing"

	apperrors "github.com/louisbranch/cookieclicker/internal/platform/errors"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/buff"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/building"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/effect"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/pricing"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/upgrade"
)

func TestScenarioBuyFirstUnit(t *testing.T) {
	s := newGame(t)
	price := mustPrice(t, s, unit, 1)
	if price != 1 {
		t.Fatalf("price = %v, want 1", price)
	}
	s = must(t)(s.AdjustBank(1))
	s = must(t)(s.TransactBuildings(unit, 1))
	if s.Count(unit) != 1 || s.Bank() != 0 {
		t.Fatalf("count = %d bank = %v, want 1 0", s.Count(unit), s.Bank())
	}
	if s.Rate(unit) != 1 {
		t.Fatalf("rate = %v, want 1", s.Rate(unit))
	}
}

func TestScenarioClickBuffExpiresAtBoundary(t *testing.T) {
	s := newGame(t)
	s = must(t)(s.SetClickingRate(1))
	s = must(t)(s.RegisterBuff(clickBuff(t, "clicking", 10, 10, 2)))
	if s.CookiesPerClick() != 2 {
		t.Fatalf("cookies per click = %v, want 2", s.CookiesPerClick())
	}
	s = must(t)(s.Warp(10))
	if s.HandmadeCookies() != 20 {
		t.Fatalf("handmade = %v, want 20", s.HandmadeCookies())
	}
	if len(s.ActiveBuffs()) != 0 {
		t.Fatalf("active buffs = %d, want 0", len(s.ActiveBuffs()))
	}
	s = must(t)(s.Warp(5))
	if s.HandmadeCookies() != 25 || s.Bank() != 25 || s.CookieClicks() != 15 {
		t.Fatalf("after unbuffed warp: %s", s)
	}
}

func TestScenarioSellErrors(t *testing.T) {
	s := newGame(t)
	_, err := s.TransactBuildings(unit, -1)
	if !errors.Is(err, ErrInsufficientBuildings) || !apperrors.IsDomainError(err) {
		t.Fatalf("sell unowned error = %v, want domain %v", err, ErrInsufficientBuildings)
	}
	_, err = s.TransactBuildings(building.Type{}, -1)
	if !errors.Is(err, building.ErrRequired) || !apperrors.IsArgumentError(err) {
		t.Fatalf("sell missing type error = %v, want argument %v", err, building.ErrRequired)
	}
}

func mustPrice(t *testing.T, s State, bt building.Type, amount int) float64 {
	t.Helper()
	price, err := s.TransactionPrice(bt, amount)
	if err != nil {
		t.Fatalf("TransactionPrice(%s, %d): %v", bt.ID, amount, err)
	}
	return price
}

func TestTransactionPriceIncreasesWithOwned(t *testing.T) {
	s := must(t)(newGame(t).AdjustBank(1e12))
	prev := mustPrice(t, s, cursor, 3)
	for i := 0; i < 40; i++ {
		s = must(t)(s.TransactBuildings(cursor, 1))
		got := mustPrice(t, s, cursor, 3)
		if !(got > prev) {
			t.Fatalf("price at %d owned = %v, not above %v", s.Count(cursor), got, prev)
		}
		refund := mustPrice(t, s, cursor, -1)
		if !(math.Abs(refund) < mustPrice(t, s, cursor, 1)) {
			t.Fatalf("refund %v not below price", refund)
		}
		prev = got
	}
}

func TestBuyThenSellRestoresInventoryAndRefundsSeries(t *testing.T) {
	s := must(t)(newGame(t).AdjustBank(100000))
	s = must(t)(s.TransactBuildings(farm, 2))
	before := s

	price := mustPrice(t, s, farm, 5)
	bought := must(t)(s.TransactBuildings(farm, 5))
	refund := mustPrice(t, bought, farm, -5)
	sold := must(t)(bought.TransactBuildings(farm, -5))

	if sold.Count(farm) != before.Count(farm) {
		t.Fatalf("count = %d, want %d", sold.Count(farm), before.Count(farm))
	}
	if want := before.Bank() - price - refund; sold.Bank() != want {
		t.Fatalf("bank = %v, want %v", sold.Bank(), want)
	}
	cfg := s.Pricing()
	series := farm.UnitPrice * math.Pow(cfg.GrowthFactor, 2) * (math.Pow(cfg.GrowthFactor, 5) - 1) / (cfg.GrowthFactor - 1)
	if want := -math.Ceil(cfg.RefundFactor * series); refund != want {
		t.Fatalf("refund = %v, want %v", refund, want)
	}
	if sold.CookiesBaked() != before.CookiesBaked() {
		t.Fatal("transactions must not count as production")
	}
}

func TestSellingEverythingRemovesInventoryEntry(t *testing.T) {
	s := must(t)(newGame(t).AdjustBank(15))
	s = must(t)(s.TransactBuildings(cursor, 1))
	s = must(t)(s.TransactBuildings(cursor, -1))
	if _, ok := s.Inventory()[cursor]; ok {
		t.Fatal("expected sold-out building to be absent")
	}
	if s.Rate(cursor) != 0 {
		t.Fatalf("rate = %v, want 0", s.Rate(cursor))
	}
}

func TestTransactZeroAmountIsNoop(t *testing.T) {
	s := must(t)(newGame(t).AdjustBank(5))
	got := must(t)(s.TransactBuildings(farm, 0))
	assertEqualState(t, got, s)
}

func TestTransactRejectsUnaffordable(t *testing.T) {
	s := must(t)(newGame(t).AdjustBank(14))
	_, err := s.TransactBuildings(cursor, 1)
	if !errors.Is(err, ErrUnaffordable) {
		t.Fatalf("error = %v, want %v", err, ErrUnaffordable)
	}
	if s.Bank() != 14 || s.Count(cursor) != 0 {
		t.Fatal("rejected purchase changed the receiver")
	}
}

func TestTransactHugeBuyIsUnaffordable(t *testing.T) {
	s := must(t)(newGame(t).AdjustBank(1e12))
	s = must(t)(s.TransactBuildings(cursor, 1))
	_, err := s.TransactBuildings(cursor, math.MaxInt)
	if !errors.Is(err, ErrUnaffordable) {
		t.Fatalf("error = %v, want %v", err, ErrUnaffordable)
	}
	price, err := s.TransactionPrice(cursor, math.MaxInt)
	if err != nil {
		t.Fatalf("TransactionPrice: %v", err)
	}
	if !math.IsInf(price, 1) {
		t.Fatalf("price = %v, want +Inf", price)
	}
}

func TestUpgradePriceRejectsOwned(t *testing.T) {
	u := &upgrade.Upgrade{ID: "u", Price: 5}
	s := must(t)(newGame(t).AdjustBank(5))
	if price, err := s.UpgradePrice(u); err != nil || price != 5 {
		t.Fatalf("UpgradePrice = %v, %v, want 5, nil", price, err)
	}
	s = must(t)(s.BuyUpgrade(u))
	if _, err := s.UpgradePrice(u); !errors.Is(err, ErrUpgradeOwned) {
		t.Fatalf("error = %v, want %v", err, ErrUpgradeOwned)
	}
}

func TestBuyUpgrade(t *testing.T) {
	double := &upgrade.Upgrade{ID: "double", Price: 100, Effects: []effect.Effect{
		effect.BuildingEffect{Target: cursor, Term: effect.Multiplier, Evaluate: effect.Fixed(2)},
	}}
	s := must(t)(New(Params{Pricing: pricing.Default(), Bank: 150, CookiesBaked: 150, Inventory: map[building.Type]int{cursor: 2}}))
	if !s.CanBuyUpgrade(double) {
		t.Fatal("expected upgrade to be buyable")
	}
	if price, err := s.UpgradePrice(double); err != nil || price != 100 {
		t.Fatalf("UpgradePrice = %v, %v", price, err)
	}
	next := must(t)(s.BuyUpgrade(double))
	if next.Bank() != 50 || !next.OwnsUpgrade("double") || next.Rate(cursor) != 2 {
		t.Fatalf("after purchase: %s", next)
	}
	if s.OwnsUpgrade("double") || s.Rate(cursor) != 1 {
		t.Fatal("purchase changed the receiver")
	}
	rich := must(t)(next.AdjustBank(1000))
	if _, err := rich.BuyUpgrade(double); !errors.Is(err, ErrUpgradeOwned) {
		t.Fatalf("second purchase error = %v, want %v", err, ErrUpgradeOwned)
	}
	if rich.CanBuyUpgrade(double) {
		t.Fatal("owned upgrade reported as buyable")
	}
}

func TestBuyUpgradeErrors(t *testing.T) {
	locked := &upgrade.Upgrade{ID: "locked", Requirement: func(p effect.Production) bool {
		return p.Count(cursor) >= 25
	}}
	pricey := &upgrade.Upgrade{ID: "pricey", Price: 10}
	s := newGame(t)

	tests := []struct {
		name     string
		u        *upgrade.Upgrade
		want     error
		argument bool
	}{
		{name: "nil", u: nil, want: upgrade.ErrRequired, argument: true},
		{name: "locked", u: locked, want: ErrUpgradeLocked},
		{name: "unaffordable", u: pricey, want: ErrUnaffordable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.BuyUpgrade(tc.u)
			if !errors.Is(err, tc.want) {
				t.Fatalf("error = %v, want %v", err, tc.want)
			}
			if apperrors.IsArgumentError(err) != tc.argument || apperrors.IsDomainError(err) == tc.argument {
				t.Fatalf("error %v classified wrongly", err)
			}
		})
	}
}

func TestUpgradeRequirementSeesCurrentState(t *testing.T) {
	locked := &upgrade.Upgrade{ID: "locked", Requirement: func(p effect.Production) bool {
		return p.Count(cursor) >= 2
	}}
	s := must(t)(newGame(t).AdjustBank(1000))
	if s.CanBuyUpgrade(locked) {
		t.Fatal("expected requirement to be unmet")
	}
	s = must(t)(s.TransactBuildings(cursor, 2))
	must(t)(s.BuyUpgrade(locked))
}

func TestRegisterBuffErrors(t *testing.T) {
	s := newGame(t)
	if _, err := s.RegisterBuff(nil); !errors.Is(err, buff.ErrRequired) {
		t.Fatalf("nil buff error = %v, want %v", err, buff.ErrRequired)
	}
	bad := &buff.Buff{ID: "bad", TimeLeft: 5, TimeTotal: 2}
	if _, err := s.RegisterBuff(bad); !errors.Is(err, buff.ErrInvalidTimer) {
		t.Fatalf("bad buff error = %v, want %v", err, buff.ErrInvalidTimer)
	}
}

func TestRegisterBuffKeepsOwnCopy(t *testing.T) {
	b := clickBuff(t, "x", 5, 5, 2)
	s := must(t)(newGame(t).RegisterBuff(b))
	b.TimeLeft = 1
	if got := s.ActiveBuffs()[0].TimeLeft; got != 5 {
		t.Fatalf("time left = %d, want 5", got)
	}
	s.ActiveBuffs()[0].TimeLeft = 2
	if got := s.ActiveBuffs()[0].TimeLeft; got != 5 {
		t.Fatalf("time left = %d after mutating accessor result, want 5", got)
	}
}

func TestAdjustBank(t *testing.T) {
	s := newGame(t)
	s = must(t)(s.AdjustBank(10))
	if s.Bank() != 10 || s.CookiesBaked() != 10 {
		t.Fatalf("bank = %v baked = %v, want 10 10", s.Bank(), s.CookiesBaked())
	}
	s = must(t)(s.AdjustBank(-4))
	if s.Bank() != 6 || s.CookiesBaked() != 10 {
		t.Fatalf("bank = %v baked = %v, want 6 10", s.Bank(), s.CookiesBaked())
	}
	if _, err := s.AdjustBank(-7); !errors.Is(err, ErrNegativeBank) {
		t.Fatalf("overdraw error = %v, want %v", err, ErrNegativeBank)
	}
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := s.AdjustBank(bad); !errors.Is(err, ErrNotFinite) {
			t.Fatalf("AdjustBank(%v) error = %v, want %v", bad, err, ErrNotFinite)
		}
	}
}

func TestSetClickingRate(t *testing.T) {
	s := must(t)(newGame(t).SetClickingRate(2.5))
	if s.ClickingRate() != 2.5 {
		t.Fatalf("clicking rate = %v, want 2.5", s.ClickingRate())
	}
	if _, err := s.SetClickingRate(-1); !errors.Is(err, ErrNegativeClickingRate) {
		t.Fatalf("negative rate error = %v, want %v", err, ErrNegativeClickingRate)
	}
	if _, err := s.SetClickingRate(math.NaN()); !errors.Is(err, ErrNotFinite) {
		t.Fatalf("NaN rate error = %v, want %v", err, ErrNotFinite)
	}
}

func TestParamsRoundTrip(t *testing.T) {
	s := busyState(t)
	s = must(t)(s.Warp(3))
	rebuilt := must(t)(New(s.Params()))
	assertEqualState(t, rebuilt, s)
}
