// Package pricing computes VAT inclusive prices for skips. All prices shown
// to a customer or compared against a filter bound go through this package
// so that rounding stays consistent.
package pricing

import (
	"github.com/ozzus/skip-hire/internal/domain/models"
	"github.com/shopspring/decimal"
)

var bestValuePerYard = decimal.NewFromInt(50)

type Breakdown struct {
	PriceBeforeVAT decimal.Decimal `json:"price_before_vat"`
	VATPercent     int             `json:"vat_percent"`
	VATAmount      int64           `json:"vat_amount"`
	FinalPrice     int64           `json:"final_price"`
}

// FinalPrice returns round(price * (1 + vat/100)), half-up.
func FinalPrice(s models.Skip) int64 {
	gross := s.PriceBeforeVAT.Mul(decimal.NewFromInt(int64(100 + s.VATPercent))).Shift(-2)
	return roundHalfUp(gross)
}

// VATAmount returns round(price * vat/100), half-up.
func VATAmount(s models.Skip) int64 {
	return roundHalfUp(s.PriceBeforeVAT.Mul(decimal.NewFromInt(int64(s.VATPercent))).Shift(-2))
}

func BreakdownOf(s models.Skip) Breakdown {
	return Breakdown{
		PriceBeforeVAT: s.PriceBeforeVAT,
		VATPercent:     s.VATPercent,
		VATAmount:      VATAmount(s),
		FinalPrice:     FinalPrice(s),
	}
}

// PricePerYard is the final price divided by the skip size. Sizes are
// validated to be positive when the skip is loaded.
func PricePerYard(s models.Skip) decimal.Decimal {
	if s.SizeYards <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(FinalPrice(s)).Div(decimal.NewFromInt(int64(s.SizeYards)))
}

func IsBestValue(s models.Skip) bool {
	if s.SizeYards <= 0 {
		return false
	}
	return PricePerYard(s).LessThan(bestValuePerYard)
}

func roundHalfUp(d decimal.Decimal) int64 {
	// decimal rounds half away from zero, which is half-up for the
	// non-negative amounts we deal with.
	if d.IsNegative() {
		return 0
	}
	return d.Round(0).IntPart()
}
