package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
	"github.com/SergeyBogomolovv/storefront-checkout/pkg/utils"
)

const ProductsPerPage = 12

type CatalogRepo interface {
	ProductBySlug(ctx context.Context, slug string) (entities.Product, error)
	LatestProducts(ctx context.Context, count int) ([]entities.Product, error)
	ListProducts(ctx context.Context, f entities.ProductFilter) ([]entities.Product, int, error)
	ListCategories(ctx context.Context) ([]entities.Category, error)
}

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

type catalogService struct {
	logger *slog.Logger
	repo   CatalogRepo
	cache  Cache
}

func NewCatalogService(logger *slog.Logger, repo CatalogRepo, cache Cache) *catalogService {
	return &catalogService{
		logger: logger.With(slog.String("service", "catalog")),
		repo:   repo,
		cache:  cache,
	}
}

func (s *catalogService) ListProducts(ctx context.Context, f entities.ProductFilter) (entities.ProductPage, error) {
	f.Page = max(f.Page, 1)
	if f.Limit <= 0 {
		f.Limit = ProductsPerPage
	}

	products, total, err := s.repo.ListProducts(ctx, f)
	if err != nil {
		return entities.ProductPage{}, err
	}

	return entities.ProductPage{
		Products:   products,
		Total:      total,
		Page:       f.Page,
		TotalPages: (total + f.Limit - 1) / f.Limit,
	}, nil
}

func (s *catalogService) GetProductBySlug(ctx context.Context, slug string) (entities.Product, error) {
	if data, ok := s.cache.Get(ctx, slug); ok {
		var product entities.Product
		if err := product.Unmarshal(data); err != nil {
			s.logger.ErrorContext(ctx, "failed to unmarshal product", slog.String("slug", slug), slog.Any("error", err))
			return entities.Product{}, err
		}
		catalogCacheHits.WithLabelValues("hit").Inc()
		return product, nil
	}
	catalogCacheHits.WithLabelValues("miss").Inc()

	var product entities.Product
	fn := func() error {
		var err error
		product, err = s.repo.ProductBySlug(ctx, slug)
		return err
	}
	if err := utils.Retry(utils.DefaultRetry, fn, entities.ErrProductNotFound, context.Canceled); err != nil {
		return entities.Product{}, err
	}

	s.store(ctx, product)
	return product, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]entities.Category, error) {
	return s.repo.ListCategories(ctx)
}

// WarmUpCache loads the newest products so the first visitors hit the cache.
func (s *catalogService) WarmUpCache(ctx context.Context, count int) error {
	products, err := s.repo.LatestProducts(ctx, count)
	if err != nil {
		return fmt.Errorf("failed to load latest products: %w", err)
	}
	for _, p := range products {
		s.store(ctx, p)
	}
	s.logger.InfoContext(ctx, "product cache warmed up", slog.Int("count", len(products)))
	return nil
}

func (s *catalogService) store(ctx context.Context, p entities.Product) {
	data, err := p.Marshal()
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to marshal product", slog.String("slug", p.Slug), slog.Any("error", err))
		return
	}
	s.cache.Set(ctx, p.Slug, data)
}
