package fallback

import (
	"github.com/ozzus/skip-hire/internal/domain/models"
	"github.com/shopspring/decimal"
)

// Skips returns the static Lowestoft list served when the upstream cannot
// be reached. Each call returns a fresh slice.
func Skips() []models.Skip {
	transport := decimal.NewNullDecimal(decimal.NewFromInt(248))

	return []models.Skip{
		staticSkip(17933, 4, 278, true, true),
		staticSkip(17934, 6, 305, true, true),
		staticSkip(17935, 8, 375, true, true),
		staticSkip(17936, 10, 400, false, false),
		staticSkip(17937, 12, 439, false, false),
		staticSkip(17938, 14, 470, false, false),
		staticSkip(17939, 16, 496, false, false),
		withCosts(staticSkip(15124, 20, 992, false, true), transport),
		withCosts(staticSkip(15125, 40, 992, false, false), transport),
	}
}

func staticSkip(id int64, size int, price int64, road, heavy bool) models.Skip {
	return models.Skip{
		ID:               models.SkipID(id),
		SizeYards:        size,
		HirePeriodDays:   14,
		PriceBeforeVAT:   decimal.NewFromInt(price),
		VATPercent:       20,
		AllowedOnRoad:    road,
		AllowsHeavyWaste: heavy,
	}
}

func withCosts(s models.Skip, cost decimal.NullDecimal) models.Skip {
	s.TransportCost = cost
	s.PerTonneCost = cost
	return s
}
