package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"price-display-api/internal/catalog"
	"price-display-api/internal/models"
	"price-display-api/internal/pricing"
	"price-display-api/internal/render"
	"price-display-api/pkg/cache"
)

// ErrProductNotFound means the slug is not in the catalog. Distinct from
// feed failures so the handler can answer 404 instead of 502.
var ErrProductNotFound = errors.New("product not found")

type ProductService struct {
	fetcher  *catalog.Fetcher
	cache    *cache.RedisCache
	window   time.Duration
	strategy render.HeroStrategy
}

func NewProductService(fetcher *catalog.Fetcher, redisCache *cache.RedisCache, window time.Duration, strategy render.HeroStrategy) *ProductService {
	return &ProductService{
		fetcher:  fetcher,
		cache:    redisCache,
		window:   window,
		strategy: strategy,
	}
}

// ProductPage resolves one product and renders its price block: fetch
// the snapshot, classify the offers against "now", build hero and rows.
// Rendered pages are cached; a cache hit skips the feed entirely.
func (s *ProductService) ProductPage(ctx context.Context, slug string) (*models.ProductPage, error) {
	cacheKey := ""
	if s.cache.IsAvailable() {
		cacheKey = s.cache.GenerateProductKey(slug, s.window, string(s.strategy))
		if cached, err := s.cache.GetProductPage(cacheKey); err == nil && cached != nil {
			log.Printf("Cache HIT for key: %s", cacheKey)
			return cached, nil
		}
		log.Printf("Cache MISS for key: %s", cacheKey)
	}

	data, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	product, ok := data[slug]
	if !ok {
		return nil, ErrProductNotFound
	}

	now := time.Now()
	cls := pricing.Classify(product.Offers, now, s.window)
	payload := render.Present(cls, now, render.Options{
		Window:   s.window,
		Strategy: s.strategy,
	})

	page := &models.ProductPage{
		Slug:        slug,
		Name:        product.Name,
		Brand:       product.Brand,
		Description: product.Description,
		Image:       product.Image,
		Prices:      payload,
	}

	if s.cache.IsAvailable() && cacheKey != "" {
		if err := s.cache.SetProductPage(cacheKey, page); err != nil {
			log.Printf("Failed to cache product page: %v", err)
		} else {
			log.Printf("Cached product page for key: %s", cacheKey)
		}
	}

	return page, nil
}
