// internal/engine/scoring/freshness.go
package scoring

import (
	"fmt"
	"time"
)

// AgeDays returns the content age in whole days at the given instant.
// Future timestamps count as age zero.
func AgeDays(createdAt, now time.Time) int {
	if createdAt.IsZero() || !createdAt.Before(now) {
		return 0
	}
	return int(now.Sub(createdAt).Hours() / 24)
}

// FreshnessScore maps content age onto a descending step table. The
// brackets are contiguous and exhaustive: each bracket is inclusive on
// both bounds and the last one is open-ended. A missing createdAt scores
// zero.
func FreshnessScore(createdAt, now time.Time, brackets []FreshnessBracket) float64 {
	if createdAt.IsZero() {
		return 0
	}
	days := AgeDays(createdAt, now)
	for _, b := range brackets {
		if days < b.FromDays {
			continue
		}
		if b.ToDays < 0 || days <= b.ToDays {
			return b.Points
		}
	}
	return 0
}

// ExplainFreshness renders the freshness component for score
// explanations.
func ExplainFreshness(createdAt, now time.Time, brackets []FreshnessBracket) string {
	if createdAt.IsZero() {
		return "no creation date - freshness 0"
	}
	days := AgeDays(createdAt, now)
	points := FreshnessScore(createdAt, now, brackets)
	return fmt.Sprintf("posted %d days ago (%.0f pts)", days, points)
}
