package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/service"
	mocks "github.com/SergeyBogomolovv/storefront-checkout/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_GetProductBySlug(t *testing.T) {
	type MockBehavior func(repo *mocks.MockCatalogRepo, cache *mocks.MockCache)

	validData, err := serum.Marshal()
	require.NoError(t, err)

	testCases := []struct {
		name         string
		slug         string
		mockBehavior MockBehavior
		want         entities.Product
		wantErr      error
	}{
		{
			name: "success from cache",
			slug: serum.Slug,
			mockBehavior: func(_ *mocks.MockCatalogRepo, cache *mocks.MockCache) {
				cache.EXPECT().Get(mock.Anything, serum.Slug).Return(validData, true).Once()
			},
			want: serum,
		},
		{
			name: "cache hit but unmarshal fails",
			slug: serum.Slug,
			mockBehavior: func(_ *mocks.MockCatalogRepo, cache *mocks.MockCache) {
				cache.EXPECT().Get(mock.Anything, serum.Slug).Return([]byte("broken"), true).Once()
			},
			wantErr: entities.ErrInvalidProduct,
		},
		{
			name: "success from repo and set to cache",
			slug: serum.Slug,
			mockBehavior: func(repo *mocks.MockCatalogRepo, cache *mocks.MockCache) {
				cache.EXPECT().Get(mock.Anything, serum.Slug).Return(nil, false).Once()
				repo.EXPECT().ProductBySlug(mock.Anything, serum.Slug).Return(serum, nil).Once()
				cache.EXPECT().Set(mock.Anything, serum.Slug, validData).Return().Once()
			},
			want: serum,
		},
		{
			name: "not found in repo",
			slug: "nope",
			mockBehavior: func(repo *mocks.MockCatalogRepo, cache *mocks.MockCache) {
				cache.EXPECT().Get(mock.Anything, "nope").Return(nil, false).Once()
				repo.EXPECT().ProductBySlug(mock.Anything, "nope").Return(entities.Product{}, entities.ErrProductNotFound).Once()
			},
			wantErr: entities.ErrProductNotFound,
		},
		{
			name: "second attempt from repo",
			slug: serum.Slug,
			mockBehavior: func(repo *mocks.MockCatalogRepo, cache *mocks.MockCache) {
				cache.EXPECT().Get(mock.Anything, serum.Slug).Return(nil, false).Once()
				repo.EXPECT().ProductBySlug(mock.Anything, serum.Slug).Return(entities.Product{}, errors.New("some error")).Once()
				repo.EXPECT().ProductBySlug(mock.Anything, serum.Slug).Return(serum, nil).Once()
				cache.EXPECT().Set(mock.Anything, serum.Slug, validData).Return().Once()
			},
			want: serum,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := mocks.NewMockCatalogRepo(t)
			cache := mocks.NewMockCache(t)
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))

			tc.mockBehavior(repo, cache)

			svc := service.NewCatalogService(logger, repo, cache)
			got, err := svc.GetProductBySlug(context.Background(), tc.slug)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCatalogService_ListProducts(t *testing.T) {
	testCases := []struct {
		name      string
		filter    entities.ProductFilter
		wantQuery entities.ProductFilter
		total     int
		wantPage  entities.ProductPage
	}{
		{
			name:      "defaults",
			filter:    entities.ProductFilter{},
			wantQuery: entities.ProductFilter{Page: 1, Limit: service.ProductsPerPage},
			total:     25,
			wantPage:  entities.ProductPage{Products: []entities.Product{serum}, Total: 25, Page: 1, TotalPages: 3},
		},
		{
			name:      "explicit page and limit",
			filter:    entities.ProductFilter{Search: "serum", Page: 2, Limit: 5},
			wantQuery: entities.ProductFilter{Search: "serum", Page: 2, Limit: 5},
			total:     10,
			wantPage:  entities.ProductPage{Products: []entities.Product{serum}, Total: 10, Page: 2, TotalPages: 2},
		},
		{
			name:      "negative page",
			filter:    entities.ProductFilter{Page: -3},
			wantQuery: entities.ProductFilter{Page: 1, Limit: service.ProductsPerPage},
			total:     0,
			wantPage:  entities.ProductPage{Products: []entities.Product{serum}, Total: 0, Page: 1, TotalPages: 0},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := mocks.NewMockCatalogRepo(t)
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))

			repo.EXPECT().ListProducts(mock.Anything, tc.wantQuery).Return([]entities.Product{serum}, tc.total, nil).Once()

			svc := service.NewCatalogService(logger, repo, mocks.NewMockCache(t))
			got, err := svc.ListProducts(context.Background(), tc.filter)

			require.NoError(t, err)
			assert.Equal(t, tc.wantPage, got)
		})
	}
}

func TestCatalogService_WarmUpCache(t *testing.T) {
	repo := mocks.NewMockCatalogRepo(t)
	cache := mocks.NewMockCache(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	other := serum
	other.ID, other.Slug = "p2", "niacinamide-toner"

	repo.EXPECT().LatestProducts(mock.Anything, 2).Return([]entities.Product{serum, other}, nil).Once()
	cache.EXPECT().Set(mock.Anything, serum.Slug, mock.Anything).Return().Once()
	cache.EXPECT().Set(mock.Anything, other.Slug, mock.Anything).Return().Once()

	svc := service.NewCatalogService(logger, repo, cache)
	require.NoError(t, svc.WarmUpCache(context.Background(), 2))
}

func TestCatalogService_WarmUpCacheError(t *testing.T) {
	repo := mocks.NewMockCatalogRepo(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	repo.EXPECT().LatestProducts(mock.Anything, 10).Return(nil, errors.New("db down")).Once()

	svc := service.NewCatalogService(logger, repo, mocks.NewMockCache(t))
	assert.Error(t, svc.WarmUpCache(context.Background(), 10))
}
