package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/types"
)

const (
	defaultTTL      = time.Hour
	cleanupInterval = 10 * time.Minute
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	Pictures(ctx context.Context) ([]types.Picture, error)
	Activities(ctx context.Context) ([]types.Activity, error)
	TravelTypes(ctx context.Context) ([]types.TravelType, error)
	DistanceBands(ctx context.Context) ([]types.DistanceBand, error)
	ValueTiers(ctx context.Context) ([]types.ValueTier, error)
	EmotionalStates(ctx context.Context) ([]types.EmotionalState, error)
	ProvincesByRegion(ctx context.Context, regionID int64) ([]types.Province, error)
}

// ServiceImpl serves the option lists through an in-memory cache. The
// tables are only changed by migrations.
type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
	cache  *cache.Cache
}

func NewServiceImpl(repo Repository, ttl time.Duration, logger *slog.Logger) *ServiceImpl {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
		cache:  cache.New(ttl, cleanupInterval),
	}
}

func cached[T any](ctx context.Context, s *ServiceImpl, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	if hit, found := s.cache.Get(key); found {
		if items, ok := hit.([]T); ok {
			s.logger.DebugContext(ctx, "Lookup cache hit", slog.String("key", key))
			return items, nil
		}
	}

	items, err := load(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", key, err)
	}
	s.cache.Set(key, items, cache.DefaultExpiration)
	return items, nil
}

func (s *ServiceImpl) Pictures(ctx context.Context) ([]types.Picture, error) {
	return cached(ctx, s, "qa_picture", s.repo.Pictures)
}

func (s *ServiceImpl) Activities(ctx context.Context) ([]types.Activity, error) {
	return cached(ctx, s, "qa_activity", s.repo.Activities)
}

func (s *ServiceImpl) TravelTypes(ctx context.Context) ([]types.TravelType, error) {
	return cached(ctx, s, "qa_traveling", s.repo.TravelTypes)
}

func (s *ServiceImpl) DistanceBands(ctx context.Context) ([]types.DistanceBand, error) {
	return cached(ctx, s, "qa_distance", s.repo.DistanceBands)
}

func (s *ServiceImpl) ValueTiers(ctx context.Context) ([]types.ValueTier, error) {
	return cached(ctx, s, "qa_value", s.repo.ValueTiers)
}

func (s *ServiceImpl) EmotionalStates(ctx context.Context) ([]types.EmotionalState, error) {
	return cached(ctx, s, "qa_emotional", s.repo.EmotionalStates)
}

func (s *ServiceImpl) ProvincesByRegion(ctx context.Context, regionID int64) ([]types.Province, error) {
	return cached(ctx, s, fmt.Sprintf("province:%d", regionID), func(ctx context.Context) ([]types.Province, error) {
		return s.repo.ProvincesByRegion(ctx, regionID)
	})
}
