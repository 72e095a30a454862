package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ventadesk/ventadesk/internal/platform/cache"
)

const (
	productsCacheKey  = "catalog:all"
	availableCacheKey = "catalog:available"
)

// Service exposes catalog reads and combo creation. A Redis-backed cache may
// front the product listing; it is optional and failures on it never block a
// read.
type Service struct {
	logger *slog.Logger
	repo   Repository
	cache  *cache.JSONCache
}

// NewService constructs the catalog service. cache may be nil.
func NewService(logger *slog.Logger, repo Repository, c *cache.JSONCache) *Service {
	return &Service{logger: logger, repo: repo, cache: c}
}

// Products returns the current snapshot of every sellable product, combos
// included. This is the pricing snapshot carts draw unit prices from.
func (s *Service) Products(ctx context.Context) ([]Product, error) {
	return s.cached(ctx, productsCacheKey, s.repo.List)
}

// AvailableProducts returns the current snapshot of individually sellable
// (non-combo) products, the valid member pool for new combos.
func (s *Service) AvailableProducts(ctx context.Context) ([]Product, error) {
	return s.cached(ctx, availableCacheKey, s.repo.ListAvailable)
}

func (s *Service) cached(ctx context.Context, key string, load func(context.Context) ([]Product, error)) ([]Product, error) {
	if s.cache != nil {
		var cachedProducts []Product
		err := s.cache.Get(ctx, key, &cachedProducts)
		if err == nil {
			return cachedProducts, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn("catalog cache read failed", slog.Any("error", err))
		}
	}

	products, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, products); err != nil {
			s.logger.Warn("catalog cache write failed", slog.Any("error", err))
		}
	}
	return products, nil
}

// CreateCombo validates and prices the proposed bundle, then registers it with
// the service of record. The operation is atomic on the remote side: on
// failure no combo exists anywhere and nothing local is retained.
func (s *Service) CreateCombo(ctx context.Context, name string, memberIDs []int64) (*ComboDefinition, error) {
	snapshot, err := s.AvailableProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog snapshot: %w", err)
	}

	combo, err := PriceCombo(name, memberIDs, snapshot)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateCombo(ctx, combo)
	if err != nil {
		return nil, err
	}

	// The new combo must show up as a selectable product on the next read.
	if s.cache != nil {
		for _, key := range []string{productsCacheKey, availableCacheKey} {
			if err := s.cache.Invalidate(ctx, key); err != nil {
				s.logger.Warn("catalog cache invalidation failed", slog.Any("error", err))
			}
		}
	}

	s.logger.Info("combo created",
		slog.String("name", created.Name),
		slog.Int("members", len(created.ProductIDs)),
		slog.Float64("savings", created.Savings))
	return created, nil
}
