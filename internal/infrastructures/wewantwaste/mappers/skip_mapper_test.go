package mappers

import (
	"testing"

	"github.com/ozzus/skip-hire/internal/infrastructures/wewantwaste/dto"
	"github.com/shopspring/decimal"
)

func TestToSkip(t *testing.T) {
	postcode := " NR32 "
	got, err := ToSkip(dto.SkipItem{
		ID:             15124,
		Size:           20,
		Postcode:       &postcode,
		HirePeriodDays: 14,
		TransportCost:  decimal.NewNullDecimal(decimal.NewFromInt(248)),
		PriceBeforeVAT: decimal.NewFromInt(992),
		VAT:            20,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 15124 || got.SizeYards != 20 || got.Postcode != "NR32" {
		t.Fatalf("unexpected skip: %+v", got)
	}
	if !got.TransportCost.Valid || !got.TransportCost.Decimal.Equal(decimal.NewFromInt(248)) {
		t.Fatalf("unexpected transport cost: %+v", got.TransportCost)
	}
	if got.PerTonneCost.Valid {
		t.Fatalf("per tonne cost should be unset")
	}
}

func TestToSkip_RejectsInvalidRecords(t *testing.T) {
	tests := []struct {
		name string
		item dto.SkipItem
	}{
		{"zero size", dto.SkipItem{ID: 1, Size: 0, PriceBeforeVAT: decimal.NewFromInt(100), VAT: 20}},
		{"negative price", dto.SkipItem{ID: 2, Size: 4, PriceBeforeVAT: decimal.NewFromInt(-1), VAT: 20}},
		{"negative vat", dto.SkipItem{ID: 3, Size: 4, PriceBeforeVAT: decimal.NewFromInt(100), VAT: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ToSkip(tt.item); err == nil {
				t.Fatalf("expected error for %+v", tt.item)
			}
		})
	}
}

func TestToSkips_KeepsOrder(t *testing.T) {
	got, err := ToSkips([]dto.SkipItem{
		{ID: 3, Size: 8, PriceBeforeVAT: decimal.NewFromInt(375), VAT: 20},
		{ID: 1, Size: 4, PriceBeforeVAT: decimal.NewFromInt(278), VAT: 20},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != 3 || got[1].ID != 1 {
		t.Fatalf("unexpected order: %+v", got)
	}

	if _, err := ToSkips([]dto.SkipItem{{ID: 1, Size: 4}, {ID: 2}}); err == nil {
		t.Fatalf("expected error when one record is invalid")
	}
}
