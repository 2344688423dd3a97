package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/ozzus/skip-hire/internal/domain/models"
)

func TestParseCriteriaQuery(t *testing.T) {
	tests := []struct {
		name          string
		rawURL        string
		want          models.FilterCriteria
		wantErrFilled bool
	}{
		{
			name:   "defaults",
			rawURL: "/v1/skips",
			want:   models.DefaultFilterCriteria(),
		},
		{
			name:   "all params",
			rawURL: "/v1/skips?search=yard&road_allowed=true&heavy_waste=1&max_price=0",
			want:   models.FilterCriteria{SearchText: "yard", RoadAllowedOnly: true, HeavyWasteOnly: true, MaxPrice: 0},
		},
		{
			name:   "search kept as typed",
			rawURL: "/v1/skips?search=4%20",
			want:   models.FilterCriteria{SearchText: "4 ", MaxPrice: models.DefaultMaxPrice},
		},
		{
			name:          "invalid bool",
			rawURL:        "/v1/skips?road_allowed=yes",
			wantErrFilled: true,
		},
		{
			name:          "negative max price",
			rawURL:        "/v1/skips?max_price=-1",
			wantErrFilled: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.rawURL, nil)

			got, gotErr := parseCriteriaQuery(req)
			if (gotErr != "") != tc.wantErrFilled {
				t.Fatalf("expected err filled=%v, got %q", tc.wantErrFilled, gotErr)
			}
			if !tc.wantErrFilled && got != tc.want {
				t.Fatalf("expected criteria %+v, got %+v", tc.want, got)
			}
		})
	}
}
