package clicker

import apperrors "github.com/louisbranch/cookieclicker/internal/platform/errors"

var (
	// ErrInvalidState indicates state parameters that break a game invariant.
	ErrInvalidState = apperrors.New(apperrors.CodeStateInvalid, "game state parameters are invalid")
	// ErrNotFinite indicates a NaN or infinite amount.
	ErrNotFinite = apperrors.New(apperrors.CodeAmountNotFinite, "amount must be a finite number")

	// ErrNegativeTicks indicates a warp by a negative tick count.
	ErrNegativeTicks = apperrors.New(apperrors.CodeWarpNegativeTicks, "cannot warp by negative ticks")
	// ErrInsufficientBuildings indicates selling more buildings than owned.
	ErrInsufficientBuildings = apperrors.New(apperrors.CodeBuildingInsufficientOwned, "cannot sell more buildings than owned")
	// ErrUnaffordable indicates a purchase above the bank balance.
	ErrUnaffordable = apperrors.New(apperrors.CodePurchaseUnaffordable, "not enough cookies in the bank")
	// ErrUpgradeOwned indicates buying an upgrade twice.
	ErrUpgradeOwned = apperrors.New(apperrors.CodeUpgradeAlreadyOwned, "upgrade is already owned")
	// ErrUpgradeLocked indicates an upgrade whose requirement is not met.
	ErrUpgradeLocked = apperrors.New(apperrors.CodeUpgradeNotPurchasable, "upgrade requirement is not met")
	// ErrNegativeClickingRate indicates a clicking rate below zero.
	ErrNegativeClickingRate = apperrors.New(apperrors.CodeClickingRateNegative, "clicking rate cannot be negative")
	// ErrNegativeBank indicates an adjustment that would overdraw the bank.
	ErrNegativeBank = apperrors.New(apperrors.CodeBankNegative, "bank cannot go negative")
)
