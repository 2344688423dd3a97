package catalog

import (
	"strconv"
	"strings"

	"github.com/ozzus/skip-hire/internal/domain/models"
	"github.com/ozzus/skip-hire/internal/domain/pricing"
)

// Filter returns the skips matching every criterion, in their original order.
// The result is never nil so an empty match can be told apart from a catalog
// that has not been loaded.
func Filter(skips []models.Skip, criteria models.FilterCriteria) []models.Skip {
	filtered := make([]models.Skip, 0, len(skips))
	for _, s := range skips {
		if Matches(s, criteria) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

func Matches(s models.Skip, criteria models.FilterCriteria) bool {
	if !matchesSearch(s, criteria.SearchText) {
		return false
	}
	if criteria.RoadAllowedOnly && !s.AllowedOnRoad {
		return false
	}
	if criteria.HeavyWasteOnly && !s.AllowsHeavyWaste {
		return false
	}
	return pricing.FinalPrice(s) <= criteria.MaxPrice
}

// matchesSearch is a plain substring match, so "6" also finds 16 and 60
// yard skips.
func matchesSearch(s models.Skip, text string) bool {
	if text == "" {
		return true
	}

	size := strconv.Itoa(s.SizeYards)
	if strings.Contains(size, text) {
		return true
	}

	label := strings.ToLower(size + " yard")
	return strings.Contains(label, strings.ToLower(text))
}
