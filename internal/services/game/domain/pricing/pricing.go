// Package pricing implements building and upgrade transaction prices.
//
// Building prices follow a geometric series: the k-th unit after n owned costs
// unitPrice*g^n*g^k. Refunds pay back a fraction r of the same series computed
// from the post-sale count. Prices are whole cookies and rounded up.
package pricing

import (
	"math"
	"strconv"

	apperrors "github.com/louisbranch/cookieclicker/internal/platform/errors"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/building"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/upgrade"
)

const (
	// DefaultGrowthFactor is the per-unit price growth of a building.
	DefaultGrowthFactor = 1.15
	// DefaultRefundFactor is the share of the series paid back on sale.
	DefaultRefundFactor = 0.25
)

// ErrInvalidConfig indicates unusable growth or refund factors.
var ErrInvalidConfig = apperrors.New(apperrors.CodePricingInvalidConfig, "pricing requires growth factor > 1 and 0 < refund factor < 1")

// Config carries the economy parameters of one game.
type Config struct {
	GrowthFactor float64 `json:"growth_factor"`
	RefundFactor float64 `json:"refund_factor"`
}

// Default returns the standard economy.
func Default() Config {
	return Config{GrowthFactor: DefaultGrowthFactor, RefundFactor: DefaultRefundFactor}
}

// Validate checks g > 1 and 0 < r < 1.
func (c Config) Validate() error {
	if !(c.GrowthFactor > 1) || math.IsInf(c.GrowthFactor, 0) || !(c.RefundFactor > 0) || !(c.RefundFactor < 1) {
		return ErrInvalidConfig.Detail(map[string]string{
			"GrowthFactor": strconv.FormatFloat(c.GrowthFactor, 'g', -1, 64),
			"RefundFactor": strconv.FormatFloat(c.RefundFactor, 'g', -1, 64),
		})
	}
	return nil
}

// BuildingTransaction returns the cost of changing the owned count of t from
// owned by amount. Positive results are prices, negative results are
// refunds, and an amount of zero costs nothing.
//
// The caller guarantees owned+amount >= 0.
func (c Config) BuildingTransaction(t building.Type, owned, amount int) float64 {
	switch {
	case amount > 0:
		return c.purchase(t.UnitPrice, owned, amount)
	case amount < 0:
		return c.refund(t.UnitPrice, owned, amount)
	default:
		return 0
	}
}

// UpgradePrice returns the fixed price of u.
func (c Config) UpgradePrice(u *upgrade.Upgrade) float64 {
	if u == nil {
		return 0
	}
	return u.Price
}

func (c Config) purchase(unitPrice float64, owned, amount int) float64 {
	g := c.GrowthFactor
	return math.Ceil(unitPrice * math.Pow(g, float64(owned)) * (math.Pow(g, float64(amount)) - 1) / (g - 1))
}

func (c Config) refund(unitPrice float64, owned, amount int) float64 {
	g := c.GrowthFactor
	series := unitPrice * math.Pow(g, float64(owned+amount)) * (math.Pow(g, float64(-amount)) - 1) / (g - 1)
	return -math.Ceil(c.RefundFactor * series)
}
