package models

// Classification is the result of one classifier run over a product's
// offers. It is rebuilt from scratch on every render pass; nothing here
// is cached or mutated incrementally.
type Classification struct {
	// Fresh and Stale are sorted ascending by price, stable on input order.
	Fresh    []Offer
	Stale    []Offer
	Unpriced []Offer

	// Best is the lowest-priced fresh offer, nil when no fresh offer
	// exists. Stale offers never qualify.
	Best *Offer
}

// Total is the number of offers across all buckets.
func (c Classification) Total() int {
	return len(c.Fresh) + len(c.Stale) + len(c.Unpriced)
}

type RowKind string

const (
	RowOffer     RowKind = "offer"
	RowSeparator RowKind = "separator"
)

type Section string

const (
	SectionRecent      Section = "recent"
	SectionOutdated    Section = "outdated"
	SectionUnavailable Section = "unavailable"
)

// RenderRow is one abstract entry of the price list. The rendering layer
// turns these into markup; the core never touches the DOM.
type RenderRow struct {
	Kind           RowKind `json:"kind"`
	Section        Section `json:"section,omitempty"`
	Store          string  `json:"store,omitempty"`
	Logo           string  `json:"logo,omitempty"`
	FormattedPrice string  `json:"formatted_price,omitempty"`
	FreshnessLabel string  `json:"freshness_label,omitempty"`
	FreshnessClass string  `json:"freshness_class,omitempty"`
	IsBest         bool    `json:"is_best,omitempty"`
	IsHero         bool    `json:"is_hero,omitempty"`
	Link           string  `json:"link,omitempty"`
	Label          string  `json:"label,omitempty"`
}

// RenderPayload is the full render instruction set for one product's
// price block: a distinguished hero slot plus the ordered row list.
// A nil Hero means the UI hides the hero slot entirely.
type RenderPayload struct {
	Hero *RenderRow  `json:"hero,omitempty"`
	Rows []RenderRow `json:"rows"`
}

// ProductPage is what the product endpoint returns: the static product
// fields plus the rendered price block.
type ProductPage struct {
	Slug        string        `json:"slug"`
	Name        string        `json:"name"`
	Brand       string        `json:"brand,omitempty"`
	Description string        `json:"description,omitempty"`
	Image       string        `json:"image,omitempty"`
	Prices      RenderPayload `json:"prices"`
}

// CardSummary is one home-page product card. Only products with at least
// one fresh offer get a card.
type CardSummary struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Brand       string `json:"brand,omitempty"`
	Image       string `json:"image,omitempty"`
	Href        string `json:"href"`
	LowestPrice string `json:"lowest_price"`
}
