// internal/engine/scoring/engagement.go
package scoring

import (
	"math"

	"talent-recommender/internal/models"
)

// EngagementScore converts raw engagement counters into a bounded score.
// Views and likes scale logarithmically so a single viral item cannot
// dominate the ranking; applies/saves scale linearly against a divisor.
// Each metric is capped independently; with default params the sum is
// bounded to [0, 20].
func EngagementScore(c models.EngagementCounters, p EngagementParams) float64 {
	score := logScaled(c.Views, p.Views)
	score += logScaled(c.Likes, p.Likes)
	score += linearScaled(c.AppliesOrSaves(), p.Applies)
	return round2(score)
}

func logScaled(n int64, m LogMetric) float64 {
	if n <= 0 || m.Cap <= 0 {
		return 0
	}
	v := math.Log(float64(n)+1) / math.Log(m.LogBase) * m.Cap
	return math.Min(m.Cap, v)
}

func linearScaled(n int64, m LinearMetric) float64 {
	if n <= 0 || m.Cap <= 0 || m.Divisor <= 0 {
		return 0
	}
	v := float64(n) / m.Divisor * m.Cap
	return math.Min(m.Cap, v)
}
