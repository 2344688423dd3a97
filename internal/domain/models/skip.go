package models

import "github.com/shopspring/decimal"

type SkipID int64

// Skip is a skip option as offered by the upstream for one location.
// Values are immutable once loaded into the catalog.
type Skip struct {
	ID               SkipID              `json:"id"`
	SizeYards        int                 `json:"size"`
	HirePeriodDays   int                 `json:"hire_period_days"`
	PriceBeforeVAT   decimal.Decimal     `json:"price_before_vat"`
	VATPercent       int                 `json:"vat"`
	AllowedOnRoad    bool                `json:"allowed_on_road"`
	AllowsHeavyWaste bool                `json:"allows_heavy_waste"`
	Postcode         string              `json:"postcode,omitempty"`
	TransportCost    decimal.NullDecimal `json:"transport_cost"`
	PerTonneCost     decimal.NullDecimal `json:"per_tonne_cost"`
}

// SkipOrigin tells where a loaded skip list came from.
type SkipOrigin string

const (
	OriginUpstream SkipOrigin = "upstream"
	OriginFallback SkipOrigin = "fallback"
)

// Location is the fixed postcode/area pair the catalog is fetched for.
type Location struct {
	Postcode string
	Area     string
}

func (l Location) String() string {
	return l.Postcode + "/" + l.Area
}
