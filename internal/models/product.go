package models

import (
	"encoding/json"
	"math"
	"time"

	"price-display-api/pkg/utils"
)

// Catalog maps product slugs to product records, as delivered by the
// catalog feed.
type Catalog map[string]Product

type Product struct {
	Name        string  `json:"name"`
	Brand       string  `json:"brand,omitempty"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
	Offers      []Offer `json:"prices"`
}

// Offer is one store's reported price for a product. Prices come from
// scraped feeds and are frequently missing, null, or garbage, so Price
// absorbs whatever the feed sends instead of failing the whole decode.
type Offer struct {
	Store       string `json:"store"`
	Price       Price  `json:"price"`
	LastUpdated string `json:"lastUpdated,omitempty"`
	Logo        string `json:"logo,omitempty"`
	Link        string `json:"link,omitempty"`
	LinkAlt     string `json:"link-a,omitempty"`
}

// Priced reports whether the offer carries a usable numeric price.
func (o Offer) Priced() bool {
	return o.Price.Valid && !math.IsNaN(o.Price.Value)
}

// TargetLink prefers the alternate link when the feed provides one.
func (o Offer) TargetLink() string {
	if o.LinkAlt != "" {
		return o.LinkAlt
	}
	return o.Link
}

// UpdatedAt parses the offer's lastUpdated field. ok is false when the
// field is missing or unparseable.
func (o Offer) UpdatedAt() (time.Time, bool) {
	return utils.ParseTimestamp(o.LastUpdated)
}

// Price is a reported amount that may be absent. Feeds encode missing
// prices as null, empty strings, or text like "N/A"; all of those decode
// to an invalid Price rather than an error.
type Price struct {
	Value float64
	Valid bool
}

func (p *Price) UnmarshalJSON(data []byte) error {
	p.Value = 0
	p.Valid = false

	// json.Unmarshal treats null as a no-op on a float64, which would
	// leave the first decode branch reporting success. Null means "no
	// price reported", so bail out before trying the numeric decode.
	if string(data) == "null" {
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		if !math.IsNaN(num) {
			p.Value = num
			p.Valid = true
		}
		return nil
	}

	// Some feeds quote prices ("$1,299.00"); salvage what we can.
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if v, ok := utils.ParsePrice(str); ok {
			p.Value = v
			p.Valid = true
		}
	}

	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(p.Value)
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
