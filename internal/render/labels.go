package render

import (
	"fmt"
	"time"

	"price-display-api/internal/models"
)

const (
	labelJustNow    = "just now"
	labelWhileAgo   = "a while ago"
	labelOutOfStock = "out of stock"

	classFresh = "fresh"
	classOld   = "old"
)

// freshnessInfo produces the human label and CSS-ish class for an
// offer's age. The buckets only need to be monotone: a newer timestamp
// never reads older than an older one.
func freshnessInfo(offer models.Offer, now time.Time, window time.Duration) (label, class string) {
	if !offer.Priced() {
		return labelOutOfStock, ""
	}

	updated, ok := offer.UpdatedAt()
	if !ok {
		return labelWhileAgo, classOld
	}

	elapsed := now.Sub(updated)
	class = classOld
	if elapsed <= window {
		class = classFresh
	}

	return elapsedLabel(elapsed), class
}

func elapsedLabel(elapsed time.Duration) string {
	if elapsed < 0 {
		elapsed = 0
	}

	mins := int(elapsed.Minutes())
	hours := int(elapsed.Hours())
	days := hours / 24

	switch {
	case mins < 2:
		return labelJustNow
	case mins < 60:
		return fmt.Sprintf("%d min ago", mins)
	case hours < 24:
		return fmt.Sprintf("%d h ago", hours)
	case days < 7:
		return plural(days, "day")
	case days < 30:
		return plural(days/7, "week")
	default:
		return plural(days/30, "month")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
