package mappers

import (
	"fmt"
	"strings"

	"github.com/ozzus/skip-hire/internal/domain/models"
	"github.com/ozzus/skip-hire/internal/infrastructures/wewantwaste/dto"
)

// ToSkips converts upstream records, rejecting the whole batch on the first
// record the pricing rules cannot handle.
func ToSkips(items []dto.SkipItem) ([]models.Skip, error) {
	skips := make([]models.Skip, 0, len(items))
	for i, item := range items {
		skip, err := ToSkip(item)
		if err != nil {
			return nil, fmt.Errorf("skip #%d: %w", i, err)
		}
		skips = append(skips, skip)
	}
	return skips, nil
}

func ToSkip(item dto.SkipItem) (models.Skip, error) {
	switch {
	case item.Size <= 0:
		return models.Skip{}, fmt.Errorf("id %d: size must be positive, got %d", item.ID, item.Size)
	case item.PriceBeforeVAT.IsNegative():
		return models.Skip{}, fmt.Errorf("id %d: negative price %s", item.ID, item.PriceBeforeVAT)
	case item.VAT < 0:
		return models.Skip{}, fmt.Errorf("id %d: negative vat %d", item.ID, item.VAT)
	}

	skip := models.Skip{
		ID:               models.SkipID(item.ID),
		SizeYards:        item.Size,
		HirePeriodDays:   item.HirePeriodDays,
		PriceBeforeVAT:   item.PriceBeforeVAT,
		VATPercent:       item.VAT,
		AllowedOnRoad:    item.AllowedOnRoad,
		AllowsHeavyWaste: item.AllowsHeavyWaste,
		TransportCost:    item.TransportCost,
		PerTonneCost:     item.PerTonneCost,
	}
	if item.Postcode != nil {
		skip.Postcode = strings.TrimSpace(*item.Postcode)
	}
	return skip, nil
}
