// Package render turns a classification into the abstract row list and
// hero slot the UI layer consumes. It emits no markup and touches no
// DOM; everything here is a pure transform.
package render

import (
	"time"

	"price-display-api/internal/models"
)

const (
	separatorOutdated    = "Previous prices (may have changed)"
	separatorUnavailable = "No availability detected"
)

// Options configure one render pass.
type Options struct {
	// Window is the recency window the classification was computed with;
	// it drives the fresh/old label class.
	Window time.Duration

	// Strategy decides the hero slot when no fresh offer exists.
	Strategy HeroStrategy
}

// Present builds the render payload for one classified offer set.
//
// The hero offer is surfaced separately and excluded from the rows.
// Rows are: remaining fresh offers ascending by price, then a separator
// and the stale offers ascending by price, then a separator and the
// unpriced offers in input order. Empty sections emit nothing, not even
// their separator.
func Present(cls models.Classification, now time.Time, opts Options) models.RenderPayload {
	payload := models.RenderPayload{Rows: []models.RenderRow{}}

	fresh := cls.Fresh
	stale := cls.Stale

	switch {
	case cls.Best != nil:
		hero := offerRow(*cls.Best, now, opts, models.SectionRecent)
		hero.IsBest = true
		hero.IsHero = true
		payload.Hero = &hero
		// Best is fresh[0] after the classifier's stable sort.
		fresh = fresh[1:]
	case opts.Strategy == StrategyFallbackToStale && len(stale) > 0:
		hero := offerRow(stale[0], now, opts, models.SectionOutdated)
		hero.IsHero = true
		payload.Hero = &hero
		stale = stale[1:]
	}

	for _, offer := range fresh {
		payload.Rows = append(payload.Rows, offerRow(offer, now, opts, models.SectionRecent))
	}

	if len(stale) > 0 {
		payload.Rows = append(payload.Rows, separatorRow(models.SectionOutdated, separatorOutdated))
		for _, offer := range stale {
			payload.Rows = append(payload.Rows, offerRow(offer, now, opts, models.SectionOutdated))
		}
	}

	if len(cls.Unpriced) > 0 {
		payload.Rows = append(payload.Rows, separatorRow(models.SectionUnavailable, separatorUnavailable))
		for _, offer := range cls.Unpriced {
			payload.Rows = append(payload.Rows, offerRow(offer, now, opts, models.SectionUnavailable))
		}
	}

	return payload
}

func offerRow(offer models.Offer, now time.Time, opts Options, section models.Section) models.RenderRow {
	label, class := freshnessInfo(offer, now, opts.Window)

	formatted := "---"
	if offer.Priced() {
		formatted = FormatPrice(offer.Price.Value)
	}

	return models.RenderRow{
		Kind:           models.RowOffer,
		Section:        section,
		Store:          offer.Store,
		Logo:           offer.Logo,
		FormattedPrice: formatted,
		FreshnessLabel: label,
		FreshnessClass: class,
		Link:           offer.TargetLink(),
	}
}

func separatorRow(section models.Section, label string) models.RenderRow {
	return models.RenderRow{
		Kind:    models.RowSeparator,
		Section: section,
		Label:   label,
	}
}
