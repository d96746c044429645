package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var numericPattern = regexp.MustCompile(`-?[\d.]+`)

// ParsePrice extracts a numeric amount from a feed price string like
// "$1,299.00" or "899". ok is false when nothing numeric is present.
func ParsePrice(priceStr string) (float64, bool) {
	if priceStr == "" {
		return 0, false
	}

	// Remove currency symbols and clean up
	cleanPrice := strings.ReplaceAll(priceStr, "$", "")
	cleanPrice = strings.ReplaceAll(cleanPrice, ",", "")
	cleanPrice = strings.TrimSpace(cleanPrice)

	match := numericPattern.FindString(cleanPrice)
	if match == "" {
		return 0, false
	}

	price, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsNaN(price) {
		return 0, false
	}

	return price, true
}

// timestampLayouts covers the formats observed in catalog feeds. RFC3339
// first since that is what the current feed emits.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a feed timestamp string. ok is false for empty
// or unparseable input; callers treat that as unknown recency.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
