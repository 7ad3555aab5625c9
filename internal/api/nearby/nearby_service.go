package nearby

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	Search(ctx context.Context, q types.NearbyQuery) (*types.NearbyResponse, error)
}

type ServiceImpl struct {
	logger        *slog.Logger
	searcher      PlaceSearcher
	defaultRadius string
}

func NewServiceImpl(searcher PlaceSearcher, defaultRadius string, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{logger: logger, searcher: searcher, defaultRadius: defaultRadius}
}

// Search needs either both coordinates or a postcode. A bare numeric radius
// is taken as meters.
func (s *ServiceImpl) Search(ctx context.Context, q types.NearbyQuery) (*types.NearbyResponse, error) {
	q.Postcode = strings.TrimSpace(q.Postcode)
	hasPoint := q.Latitude != nil && q.Longitude != nil
	if !hasPoint && q.Postcode == "" {
		return nil, fmt.Errorf("%w: latitude and longitude or postcode required", types.ErrValidation)
	}
	if hasPoint && (*q.Latitude < -90 || *q.Latitude > 90 || *q.Longitude < -180 || *q.Longitude > 180) {
		return nil, fmt.Errorf("%w: coordinates out of range", types.ErrValidation)
	}

	q.Radius = normalizeRadius(q.Radius, s.defaultRadius)

	places, err := s.searcher.Search(ctx, q)
	if err != nil {
		s.logger.ErrorContext(ctx, "Place search failed", slog.Any("error", err))
		return nil, err
	}
	return &types.NearbyResponse{Data: places}, nil
}

func normalizeRadius(radius, fallback string) string {
	radius = strings.TrimSpace(radius)
	if radius == "" {
		radius = fallback
	}
	if radius != "" && strings.IndexFunc(radius, func(r rune) bool { return !unicode.IsDigit(r) }) == -1 {
		return radius + "m"
	}
	return radius
}
