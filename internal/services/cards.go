package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"price-display-api/internal/models"
	"price-display-api/internal/pricing"
	"price-display-api/internal/render"
)

// HomeCards builds the home-page card list: one card per product with at
// least one fresh offer, showing the lowest fresh price. Products whose
// prices are all stale or missing are left off the home page.
func (s *ProductService) HomeCards(ctx context.Context) ([]models.CardSummary, error) {
	data, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	now := time.Now()
	cards := make([]models.CardSummary, 0, len(data))

	for slug, product := range data {
		cls := pricing.Classify(product.Offers, now, s.window)
		if cls.Best == nil {
			continue
		}

		cards = append(cards, models.CardSummary{
			Slug:        slug,
			Name:        product.Name,
			Brand:       product.Brand,
			Image:       product.Image,
			Href:        cardHref(product.Brand, slug),
			LowestPrice: render.FormatPriceWhole(cls.Best.Price.Value),
		})
	}

	// Map iteration order is random; keep the card list deterministic.
	sort.Slice(cards, func(i, j int) bool {
		return cards[i].Slug < cards[j].Slug
	})

	return cards, nil
}

func cardHref(brand, slug string) string {
	if brand == "" {
		brand = "otros"
	}
	return fmt.Sprintf("/products/%s/%s/", strings.ToLower(brand), slug)
}
