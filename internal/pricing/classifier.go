// Package pricing decides which of a product's store offers are current,
// outdated, or unavailable, and which single offer is the best one.
package pricing

import (
	"sort"
	"time"

	"price-display-api/internal/models"
)

// Classify partitions offers by price validity and recency against the
// given window. It never fails: offers with junk prices land in Unpriced
// and offers with missing or unparseable timestamps land in Stale, so
// bad scrape data degrades instead of erroring.
//
// Fresh and Stale come back sorted ascending by price with input order
// breaking ties. Best is the first fresh offer after sorting (the
// cheapest one, earliest-input among equals); it is nil when nothing is
// fresh, never a stale fallback.
func Classify(offers []models.Offer, now time.Time, window time.Duration) models.Classification {
	var cls models.Classification

	for _, offer := range offers {
		if !offer.Priced() {
			cls.Unpriced = append(cls.Unpriced, offer)
			continue
		}

		if isFresh(offer, now, window) {
			cls.Fresh = append(cls.Fresh, offer)
		} else {
			cls.Stale = append(cls.Stale, offer)
		}
	}

	sortByPrice(cls.Fresh)
	sortByPrice(cls.Stale)

	if len(cls.Fresh) > 0 {
		best := cls.Fresh[0]
		cls.Best = &best
	}

	return cls
}

// isFresh is true when the offer's timestamp parses and falls within the
// window. Unknown recency counts as not fresh.
func isFresh(offer models.Offer, now time.Time, window time.Duration) bool {
	updated, ok := offer.UpdatedAt()
	if !ok {
		return false
	}
	return now.Sub(updated) <= window
}

func sortByPrice(offers []models.Offer) {
	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].Price.Value < offers[j].Price.Value
	})
}
