package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type SkipItem struct {
	ID               int64               `json:"id"`
	Size             int                 `json:"size"`
	Postcode         *string             `json:"postcode"`
	HirePeriodDays   int                 `json:"hire_period_days"`
	TransportCost    decimal.NullDecimal `json:"transport_cost"`
	PerTonneCost     decimal.NullDecimal `json:"per_tonne_cost"`
	PriceBeforeVAT   decimal.Decimal     `json:"price_before_vat"`
	VAT              int                 `json:"vat"`
	AllowedOnRoad    bool                `json:"allowed_on_road"`
	AllowsHeavyWaste bool                `json:"allows_heavy_waste"`
}

// SkipsEnvelope is the wrapped form of the by-location response. The
// endpoint may also answer with a bare array.
type SkipsEnvelope struct {
	Skips json.RawMessage `json:"skips"`
}
