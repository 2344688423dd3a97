package handlers

import (
	"time"

	"github.com/ozzus/skip-hire/internal/domain/booking"
	"github.com/ozzus/skip-hire/internal/domain/catalog"
	"github.com/ozzus/skip-hire/internal/domain/models"
	"github.com/ozzus/skip-hire/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

type skipResponse struct {
	ID               int64            `json:"id"`
	Size             int              `json:"size"`
	Label            string           `json:"label"`
	HirePeriodDays   int              `json:"hire_period_days"`
	PriceBeforeVAT   decimal.Decimal  `json:"price_before_vat"`
	VATPercent       int              `json:"vat"`
	VATAmount        int64            `json:"vat_amount"`
	FinalPrice       int64            `json:"final_price"`
	AllowedOnRoad    bool             `json:"allowed_on_road"`
	AllowsHeavyWaste bool             `json:"allows_heavy_waste"`
	Postcode         string           `json:"postcode,omitempty"`
	TransportCost    *decimal.Decimal `json:"transport_cost,omitempty"`
	PerTonneCost     *decimal.Decimal `json:"per_tonne_cost,omitempty"`
	Badges           catalog.Badges   `json:"badges"`
}

type recommendationsResponse struct {
	MostPopular skipResponse `json:"most_popular"`
	BestValue   skipResponse `json:"best_value"`
	Largest     skipResponse `json:"largest"`
}

type listingResponse struct {
	Skips           []skipResponse           `json:"skips"`
	Stats           models.ListingStats      `json:"stats"`
	Recommendations *recommendationsResponse `json:"recommendations,omitempty"`
}

type formResponse struct {
	PermitAcknowledged bool     `json:"permit_acknowledged"`
	DeliveryDate       string   `json:"delivery_date,omitempty"`
	PaymentMethod      string   `json:"payment_method,omitempty"`
	PaymentLabel       string   `json:"payment_label,omitempty"`
	Valid              bool     `json:"valid"`
	Missing            []string `json:"missing"`
}

type confirmationResponse struct {
	SkipID        int64     `json:"skip_id"`
	Size          int       `json:"size"`
	DeliveryDate  string    `json:"delivery_date"`
	PaymentMethod string    `json:"payment_method"`
	PaymentLabel  string    `json:"payment_label"`
	FinalPrice    int64     `json:"final_price"`
	ConfirmedAt   time.Time `json:"confirmed_at"`
}

type sessionResponse struct {
	ID           string                `json:"id"`
	State        string                `json:"state"`
	Criteria     models.FilterCriteria `json:"criteria"`
	Selected     *skipResponse         `json:"selected,omitempty"`
	Form         *formResponse         `json:"form,omitempty"`
	Confirmation *confirmationResponse `json:"confirmation,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

type deliveryDateResponse struct {
	Date  string `json:"date"`
	Label string `json:"label"`
}

func mapSkip(s models.Skip) skipResponse {
	breakdown := pricing.BreakdownOf(s)
	out := skipResponse{
		ID:               int64(s.ID),
		Size:             s.SizeYards,
		Label:            catalog.Label(s),
		HirePeriodDays:   s.HirePeriodDays,
		PriceBeforeVAT:   breakdown.PriceBeforeVAT,
		VATPercent:       breakdown.VATPercent,
		VATAmount:        breakdown.VATAmount,
		FinalPrice:       breakdown.FinalPrice,
		AllowedOnRoad:    s.AllowedOnRoad,
		AllowsHeavyWaste: s.AllowsHeavyWaste,
		Postcode:         s.Postcode,
		Badges:           catalog.BadgesOf(s),
	}
	if s.TransportCost.Valid {
		v := s.TransportCost.Decimal
		out.TransportCost = &v
	}
	if s.PerTonneCost.Valid {
		v := s.PerTonneCost.Decimal
		out.PerTonneCost = &v
	}
	return out
}

func mapSkips(skips []models.Skip) []skipResponse {
	out := make([]skipResponse, 0, len(skips))
	for _, s := range skips {
		out = append(out, mapSkip(s))
	}
	return out
}

func mapListing(l models.Listing) listingResponse {
	out := listingResponse{
		Skips: mapSkips(l.Items),
		Stats: l.Stats,
	}
	if l.Recommendations != nil {
		out.Recommendations = &recommendationsResponse{
			MostPopular: mapSkip(l.Recommendations.MostPopular),
			BestValue:   mapSkip(l.Recommendations.BestValue),
			Largest:     mapSkip(l.Recommendations.Largest),
		}
	}
	return out
}

func mapSession(s *booking.Session) sessionResponse {
	out := sessionResponse{
		ID:        s.ID.String(),
		State:     string(s.State),
		Criteria:  s.Criteria,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if s.Selected != nil {
		selected := mapSkip(*s.Selected)
		out.Selected = &selected
	}
	if s.State == booking.StateSelected {
		form := formResponse{
			PermitAcknowledged: s.Form.PermitAcknowledged,
			PaymentMethod:      string(s.Form.PaymentMethod),
			PaymentLabel:       s.Form.PaymentMethod.Label(),
			Valid:              s.Form.Valid(),
			Missing:            s.Form.Missing(),
		}
		if form.Missing == nil {
			form.Missing = []string{}
		}
		if s.Form.DeliveryDate != nil {
			form.DeliveryDate = s.Form.DeliveryDate.Format(booking.DateLayout)
		}
		out.Form = &form
	}
	if s.Confirmation != nil {
		c := mapConfirmation(*s.Confirmation)
		out.Confirmation = &c
	}
	return out
}

func mapConfirmation(c booking.Confirmation) confirmationResponse {
	return confirmationResponse{
		SkipID:        int64(c.SkipID),
		Size:          c.SizeYards,
		DeliveryDate:  c.DeliveryDate.Format(booking.DateLayout),
		PaymentMethod: string(c.PaymentMethod),
		PaymentLabel:  c.PaymentMethod.Label(),
		FinalPrice:    c.FinalPrice,
		ConfirmedAt:   c.ConfirmedAt,
	}
}

func mapDeliveryDates(dates []time.Time) []deliveryDateResponse {
	out := make([]deliveryDateResponse, 0, len(dates))
	for _, d := range dates {
		out = append(out, deliveryDateResponse{
			Date:  d.Format(booking.DateLayout),
			Label: d.Format("Mon 2 Jan"),
		})
	}
	return out
}
