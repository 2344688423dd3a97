package catalog

import (
	"strconv"

	"github.com/ozzus/skip-hire/internal/domain/models"
	"github.com/ozzus/skip-hire/internal/domain/pricing"
)

// Quick recommendations are only offered once there is something to choose
// between.
const recommendationMinItems = 4

const popularSize = 6

func BuildListing(skips []models.Skip, criteria models.FilterCriteria) models.Listing {
	items := Filter(skips, criteria)
	listing := models.Listing{
		Items: items,
		Stats: Stats(items),
	}
	if rec, ok := Recommend(items); ok {
		listing.Recommendations = &rec
	}
	return listing
}

func Stats(skips []models.Skip) models.ListingStats {
	if len(skips) == 0 {
		return models.ListingStats{}
	}

	stats := models.ListingStats{
		Count:        len(skips),
		MinSize:      skips[0].SizeYards,
		MaxSize:      skips[0].SizeYards,
		StartingFrom: pricing.FinalPrice(skips[0]),
	}
	for _, s := range skips[1:] {
		if s.SizeYards < stats.MinSize {
			stats.MinSize = s.SizeYards
		}
		if s.SizeYards > stats.MaxSize {
			stats.MaxSize = s.SizeYards
		}
		if price := pricing.FinalPrice(s); price < stats.StartingFrom {
			stats.StartingFrom = price
		}
	}
	return stats
}

func Recommend(skips []models.Skip) (models.Recommendations, bool) {
	if len(skips) < recommendationMinItems {
		return models.Recommendations{}, false
	}

	rec := models.Recommendations{
		MostPopular: skips[0],
		BestValue:   skips[0],
		Largest:     skips[0],
	}
	for _, s := range skips {
		if s.SizeYards == popularSize {
			rec.MostPopular = s
			break
		}
	}
	for _, s := range skips[1:] {
		if pricing.PricePerYard(s).LessThan(pricing.PricePerYard(rec.BestValue)) {
			rec.BestValue = s
		}
		if s.SizeYards > rec.Largest.SizeYards {
			rec.Largest = s
		}
	}
	return rec, true
}

type Badges struct {
	Popular   bool `json:"popular"`
	BestValue bool `json:"best_value"`
}

func BadgesOf(s models.Skip) Badges {
	return Badges{
		Popular:   s.SizeYards == 6 || s.SizeYards == 8,
		BestValue: pricing.IsBestValue(s),
	}
}

// Label is the display name of a skip, e.g. "6 Yard Skip".
func Label(s models.Skip) string {
	return strconv.Itoa(s.SizeYards) + " Yard Skip"
}
