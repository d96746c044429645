package render

import "fmt"

// HeroStrategy controls what happens to the hero slot when a product has
// no fresh offer.
type HeroStrategy string

const (
	// StrategyFreshOnly hides the hero slot when no fresh offer exists.
	StrategyFreshOnly HeroStrategy = "fresh-only"

	// StrategyFallbackToStale promotes the cheapest stale offer to the
	// hero slot instead. The fallback offer is displayed there but never
	// marked best.
	StrategyFallbackToStale HeroStrategy = "fallback-to-stale"
)

// ParseStrategy maps a config string to a HeroStrategy. Empty input
// defaults to fresh-only.
func ParseStrategy(s string) (HeroStrategy, error) {
	switch HeroStrategy(s) {
	case StrategyFreshOnly, "":
		return StrategyFreshOnly, nil
	case StrategyFallbackToStale:
		return StrategyFallbackToStale, nil
	default:
		return "", fmt.Errorf("unknown hero strategy: %q", s)
	}
}
