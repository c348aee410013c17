package fueldeliveries

import (
	"errors"
	"math"

	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Per-item ceilings. At both limits a line total still fits in int64.
const (
	MaxItemQuantity       = 1_000_000
	MaxItemPricePerGallon = 100_000
)

// ErrCostOutOfRange is returned when a line total cannot be stored as whole
// cents.
var ErrCostOutOfRange = errors.New("delivery item total out of range")

// Per-gallon cost markups in cents.
var (
	dieselMargin   = decimal.RequireFromString("66.0965")
	gasolineMargin = decimal.RequireFromString("61.8346")

	maxCents = decimal.NewFromInt(math.MaxInt64)
)

// MarginFor returns the per-gallon markup applied to grade.
func MarginFor(grade enums.FuelGrade) decimal.Decimal {
	if grade == enums.FuelGradeDiesel {
		return dieselMargin
	}
	return gasolineMargin
}

// ItemCost derives the per-gallon cost and line total for a delivery item.
// Rounding is half away from zero.
func ItemCost(grade enums.FuelGrade, pricePerGallon, quantity int64) (cost, total int64, err error) {
	if pricePerGallon < 0 || quantity < 0 {
		return 0, 0, ErrCostOutOfRange
	}
	rounded := decimal.NewFromInt(pricePerGallon).Add(MarginFor(grade)).Round(0)
	product := rounded.Mul(decimal.NewFromInt(quantity))
	if !product.IsInteger() || product.GreaterThan(maxCents) {
		return 0, 0, ErrCostOutOfRange
	}
	return rounded.IntPart(), product.IntPart(), nil
}
