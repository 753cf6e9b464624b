// Package building defines production building types.
//
// A building type is an immutable, value-identified description supplied by a
// content catalog. Two types with identical fields are the same building.
package building

import (
	"math"
	"strings"

	apperrors "github.com/louisbranch/cookieclicker/internal/platform/errors"
)

var (
	// ErrRequired indicates a missing building type reference.
	ErrRequired = apperrors.New(apperrors.CodeBuildingRequired, "building type is required")
	// ErrInvalid indicates a building type with unusable pricing or rate.
	ErrInvalid = apperrors.New(apperrors.CodeBuildingInvalid, "building type must have an id, a positive unit price and a non-negative rate")
)

// Type describes a stacking production source.
//
// UnitPrice is the price of the first unit; BaseRate is the number of cookies a
// single unit produces per tick before effects are applied.
type Type struct {
	ID        string
	UnitPrice float64
	BaseRate  float64
}

// IsZero reports whether t is the zero building reference.
func (t Type) IsZero() bool {
	return t == Type{}
}

// Validate checks that t can take part in pricing and rate calculation.
func (t Type) Validate() error {
	if t.IsZero() {
		return ErrRequired
	}
	if strings.TrimSpace(t.ID) == "" {
		return ErrInvalid
	}
	if !(t.UnitPrice > 0) || math.IsInf(t.UnitPrice, 0) {
		return ErrInvalid.Detail(map[string]string{"Building": t.ID})
	}
	if !(t.BaseRate >= 0) || math.IsInf(t.BaseRate, 0) {
		return ErrInvalid.Detail(map[string]string{"Building": t.ID})
	}
	return nil
}

// String returns the building id.
func (t Type) String() string {
	return t.ID
}
