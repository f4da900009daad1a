// internal/engine/scoring/aggregate.go
package scoring

import "talent-recommender/internal/models"

// Aggregate sums the component scores into the final score, rounded to
// two decimals, and fills it into the breakdown. The sum is not clamped:
// a low-scoring item dominated by the diversity penalty can legitimately
// go negative, and that ordering signal must survive.
func Aggregate(b models.ScoreBreakdown) models.ScoreBreakdown {
	b.Final = round2(b.SkillMatch + b.Engagement + b.Freshness +
		b.ContextualBoost + b.DiversityPenalty)
	return b
}
