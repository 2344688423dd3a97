package grpc

import (
	"context"
	"errors"
	"math"

	"github.com/ozzus/skip-hire/internal/domain/catalog"
	derr "github.com/ozzus/skip-hire/internal/domain/errors"
	"github.com/ozzus/skip-hire/internal/domain/models"
	"github.com/ozzus/skip-hire/internal/domain/pricing"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type SkipCatalog interface {
	List(ctx context.Context, criteria models.FilterCriteria) (models.Listing, error)
	Get(ctx context.Context, id models.SkipID) (models.Skip, error)
}

type serverAPI struct {
	log     *zap.Logger
	catalog SkipCatalog
}

func Register(gRPCServer *grpc.Server, log *zap.Logger, skipCatalog SkipCatalog) {
	gRPCServer.RegisterService(&SkipCatalogServiceDesc, &serverAPI{
		log:     log,
		catalog: skipCatalog,
	})
}

func (s *serverAPI) ListSkips(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	criteria, err := criteriaFromStruct(req)
	if err != nil {
		return nil, err
	}

	listing, err := s.catalog.List(ctx, criteria)
	if err != nil {
		return nil, s.mapError(err)
	}

	return toStruct(listingToMap(listing))
}

func (s *serverAPI) GetSkip(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	id, ok := wholeNumber(req.GetFields()["id"])
	if !ok || id <= 0 {
		return nil, status.Error(codes.InvalidArgument, "id must be a positive integer")
	}

	skip, err := s.catalog.Get(ctx, models.SkipID(id))
	if err != nil {
		return nil, s.mapError(err)
	}

	return toStruct(skipToMap(skip))
}

func criteriaFromStruct(req *structpb.Struct) (models.FilterCriteria, error) {
	criteria := models.DefaultFilterCriteria()
	if req == nil {
		return criteria, nil
	}
	fields := req.GetFields()

	if v, ok := fields["search"]; ok {
		if _, isString := v.GetKind().(*structpb.Value_StringValue); !isString {
			return models.FilterCriteria{}, status.Error(codes.InvalidArgument, "search must be a string")
		}
		criteria.SearchText = v.GetStringValue()
	}
	for key, dst := range map[string]*bool{
		"road_allowed": &criteria.RoadAllowedOnly,
		"heavy_waste":  &criteria.HeavyWasteOnly,
	} {
		v, ok := fields[key]
		if !ok {
			continue
		}
		if _, isBool := v.GetKind().(*structpb.Value_BoolValue); !isBool {
			return models.FilterCriteria{}, status.Errorf(codes.InvalidArgument, "%s must be a boolean", key)
		}
		*dst = v.GetBoolValue()
	}
	if v, ok := fields["max_price"]; ok {
		maxPrice, ok := wholeNumber(v)
		if !ok || maxPrice < 0 {
			return models.FilterCriteria{}, status.Error(codes.InvalidArgument, "max_price must be a non-negative integer")
		}
		criteria.MaxPrice = maxPrice
	}
	return criteria, nil
}

func wholeNumber(v *structpb.Value) (int64, bool) {
	if v == nil {
		return 0, false
	}
	if _, isNumber := v.GetKind().(*structpb.Value_NumberValue); !isNumber {
		return 0, false
	}
	n := v.GetNumberValue()
	if n != math.Trunc(n) || math.Abs(n) > 1<<53 {
		return 0, false
	}
	return int64(n), true
}

func (s *serverAPI) mapError(err error) error {
	switch {
	case errors.Is(err, derr.ErrCatalogNotLoaded):
		return status.Error(codes.Unavailable, "skip catalog is still loading")
	case errors.Is(err, derr.ErrSkipNotFound):
		return status.Error(codes.NotFound, "skip not found")
	case errors.Is(err, derr.ErrInvalidCriteria):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	default:
		s.log.Error("catalog request failed", zap.Error(err))
		return status.Error(codes.Internal, "internal error")
	}
}

func toStruct(m map[string]interface{}) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, "encode response")
	}
	return out, nil
}

func listingToMap(l models.Listing) map[string]interface{} {
	skips := make([]interface{}, 0, len(l.Items))
	for _, s := range l.Items {
		skips = append(skips, skipToMap(s))
	}

	out := map[string]interface{}{
		"skips": skips,
		"stats": map[string]interface{}{
			"count":         l.Stats.Count,
			"min_size":      l.Stats.MinSize,
			"max_size":      l.Stats.MaxSize,
			"starting_from": l.Stats.StartingFrom,
		},
	}
	if r := l.Recommendations; r != nil {
		out["recommendations"] = map[string]interface{}{
			"most_popular": int64(r.MostPopular.ID),
			"best_value":   int64(r.BestValue.ID),
			"largest":      int64(r.Largest.ID),
		}
	}
	return out
}

func skipToMap(s models.Skip) map[string]interface{} {
	breakdown := pricing.BreakdownOf(s)
	badges := catalog.BadgesOf(s)

	out := map[string]interface{}{
		"id":                 int64(s.ID),
		"size":               s.SizeYards,
		"label":              catalog.Label(s),
		"hire_period_days":   s.HirePeriodDays,
		"price_before_vat":   s.PriceBeforeVAT.String(),
		"vat":                s.VATPercent,
		"vat_amount":         breakdown.VATAmount,
		"final_price":        breakdown.FinalPrice,
		"allowed_on_road":    s.AllowedOnRoad,
		"allows_heavy_waste": s.AllowsHeavyWaste,
		"badges": map[string]interface{}{
			"popular":    badges.Popular,
			"best_value": badges.BestValue,
		},
	}
	if s.Postcode != "" {
		out["postcode"] = s.Postcode
	}
	if s.TransportCost.Valid {
		out["transport_cost"] = s.TransportCost.Decimal.String()
	}
	if s.PerTonneCost.Valid {
		out["per_tonne_cost"] = s.PerTonneCost.Decimal.String()
	}
	return out
}
