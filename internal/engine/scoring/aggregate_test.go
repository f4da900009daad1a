// internal/engine/scoring/aggregate_test.go
package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"talent-recommender/internal/models"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name      string
		breakdown models.ScoreBreakdown
		expected  float64
	}{
		{
			name: "typical breakdown",
			breakdown: models.ScoreBreakdown{
				SkillMatch:       20,
				Engagement:       17.5,
				Freshness:        12,
				ContextualBoost:  5,
				DiversityPenalty: -4,
			},
			expected: 50.5,
		},
		{
			name:      "all zero",
			breakdown: models.ScoreBreakdown{},
			expected:  0,
		},
		{
			name: "penalty dominates and the sum stays negative",
			breakdown: models.ScoreBreakdown{
				SkillMatch:       0,
				Freshness:        0,
				DiversityPenalty: -10,
			},
			expected: -10,
		},
		{
			name: "rounding",
			breakdown: models.ScoreBreakdown{
				SkillMatch: 13.333,
				Engagement: 0.004,
			},
			expected: 13.34,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Aggregate(tt.breakdown)
			assert.Equal(t, tt.expected, result.Final)
			// Components pass through untouched.
			assert.Equal(t, tt.breakdown.SkillMatch, result.SkillMatch)
			assert.Equal(t, tt.breakdown.DiversityPenalty, result.DiversityPenalty)
		})
	}
}

func TestParams_Validate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, DefaultParams().Validate())
	})

	t.Run("positive weights above 100", func(t *testing.T) {
		p := DefaultParams()
		p.Weights.SkillMatch = 80
		assert.Error(t, p.Validate())
	})

	t.Run("engagement sub-caps must sum to the weight", func(t *testing.T) {
		p := DefaultParams()
		p.Engagement.Views.Cap = 10
		assert.Error(t, p.Validate())
	})

	t.Run("freshness brackets must be contiguous", func(t *testing.T) {
		p := DefaultParams()
		p.Freshness[1].FromDays = 5
		assert.Error(t, p.Validate())
	})

	t.Run("freshness points must not increase with age", func(t *testing.T) {
		p := DefaultParams()
		p.Freshness[2].Points = 30
		assert.Error(t, p.Validate())
	})

	t.Run("last bracket must be open ended", func(t *testing.T) {
		p := DefaultParams()
		p.Freshness[len(p.Freshness)-1].ToDays = 100
		assert.Error(t, p.Validate())
	})
}
