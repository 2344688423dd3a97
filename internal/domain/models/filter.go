package models

const DefaultMaxPrice int64 = 1500

type FilterCriteria struct {
	SearchText      string `json:"search"`
	RoadAllowedOnly bool   `json:"road_allowed_only"`
	HeavyWasteOnly  bool   `json:"heavy_waste_only"`
	MaxPrice        int64  `json:"max_price"`
}

func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{MaxPrice: DefaultMaxPrice}
}

type ListingStats struct {
	Count        int   `json:"count"`
	MinSize      int   `json:"min_size"`
	MaxSize      int   `json:"max_size"`
	StartingFrom int64 `json:"starting_from"`
}

type Recommendations struct {
	MostPopular Skip `json:"most_popular"`
	BestValue   Skip `json:"best_value"`
	Largest     Skip `json:"largest"`
}

// Listing is the result of filtering a loaded catalog. Items is never nil.
type Listing struct {
	Items           []Skip
	Stats           ListingStats
	Recommendations *Recommendations
}
