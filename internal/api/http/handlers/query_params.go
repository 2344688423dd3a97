package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ozzus/skip-hire/internal/domain/models"
)

func parseBoolQuery(r *http.Request, key string) (value bool, errMsg string) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return false, ""
	}

	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return false, key + " must be a boolean"
	}
	return parsed, ""
}

func parseNonNegativeIntQuery(r *http.Request, key string, fallback int64) (value int64, errMsg string) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, ""
	}

	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || parsed < 0 {
		return 0, key + " must be a non-negative integer"
	}
	return parsed, ""
}

// parseCriteriaQuery reads filter criteria from the query string. Absent
// parameters take their default values.
func parseCriteriaQuery(r *http.Request) (models.FilterCriteria, string) {
	criteria := models.DefaultFilterCriteria()
	criteria.SearchText = r.URL.Query().Get("search")

	var errMsg string
	if criteria.RoadAllowedOnly, errMsg = parseBoolQuery(r, "road_allowed"); errMsg != "" {
		return models.FilterCriteria{}, errMsg
	}
	if criteria.HeavyWasteOnly, errMsg = parseBoolQuery(r, "heavy_waste"); errMsg != "" {
		return models.FilterCriteria{}, errMsg
	}
	if criteria.MaxPrice, errMsg = parseNonNegativeIntQuery(r, "max_price", models.DefaultMaxPrice); errMsg != "" {
		return models.FilterCriteria{}, errMsg
	}
	return criteria, ""
}
