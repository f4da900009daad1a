// internal/engine/scoring/params.go

// Package scoring implements the five component scorers of the
// recommendation pipeline and the aggregator that folds them into one
// explainable final score. Every function is pure: no I/O, no clock
// reads, no shared state.
package scoring

import "fmt"

// Weights caps each component's contribution to the final score.
type Weights struct {
	SkillMatch       float64 `mapstructure:"skill_match" json:"skillMatch"`
	Engagement       float64 `mapstructure:"engagement" json:"engagement"`
	Freshness        float64 `mapstructure:"freshness" json:"freshness"`
	ContextualBoost  float64 `mapstructure:"contextual_boost" json:"contextualBoost"`
	DiversityPenalty float64 `mapstructure:"diversity_penalty" json:"diversityPenalty"`
}

// LogMetric scales a raw counter sub-linearly: log(n+1)/log(base)*cap,
// capped at cap.
type LogMetric struct {
	Cap     float64 `mapstructure:"cap" json:"cap"`
	LogBase float64 `mapstructure:"log_base" json:"logBase"`
}

// LinearMetric scales a raw counter linearly: n/divisor*cap, capped.
type LinearMetric struct {
	Cap     float64 `mapstructure:"cap" json:"cap"`
	Divisor float64 `mapstructure:"divisor" json:"divisor"`
}

// EngagementParams holds the per-metric caps of the engagement scorer.
type EngagementParams struct {
	Views   LogMetric    `mapstructure:"views" json:"views"`
	Likes   LogMetric    `mapstructure:"likes" json:"likes"`
	Applies LinearMetric `mapstructure:"applies" json:"applies"`
}

// FreshnessBracket maps an inclusive age range in whole days to points.
type FreshnessBracket struct {
	FromDays int     `mapstructure:"from_days" json:"fromDays"`
	ToDays   int     `mapstructure:"to_days" json:"toDays"` // -1 means open-ended
	Points   float64 `mapstructure:"points" json:"points"`
}

// ContextualParams holds the fixed contextual bonuses.
type ContextualParams struct {
	LocationMatch     float64 `mapstructure:"location_match" json:"locationMatch"`
	AcademicYearMatch float64 `mapstructure:"academic_year_match" json:"academicYearMatch"`
}

// DiversityParams controls the same-source penalty.
type DiversityParams struct {
	PenaltyPerOccurrence float64 `mapstructure:"penalty_per_occurrence" json:"penaltyPerOccurrence"`
	MaxPenalty           float64 `mapstructure:"max_penalty" json:"maxPenalty"`
}

// Params bundles every scoring constant. Built once at startup and
// passed into the ranker; never mutated afterwards.
type Params struct {
	Weights    Weights            `mapstructure:"weights" json:"weights"`
	Engagement EngagementParams   `mapstructure:"engagement" json:"engagement"`
	Freshness  []FreshnessBracket `mapstructure:"freshness" json:"freshness"`
	Contextual ContextualParams   `mapstructure:"contextual" json:"contextual"`
	Diversity  DiversityParams    `mapstructure:"diversity" json:"diversity"`
}

// DefaultParams returns the documented default scoring constants:
// 40/20/20/10 positive weights with a -10 diversity floor.
func DefaultParams() Params {
	return Params{
		Weights: Weights{
			SkillMatch:       40,
			Engagement:       20,
			Freshness:        20,
			ContextualBoost:  10,
			DiversityPenalty: 10,
		},
		Engagement: EngagementParams{
			Views:   LogMetric{Cap: 5, LogBase: 100},
			Likes:   LogMetric{Cap: 10, LogBase: 50},
			Applies: LinearMetric{Cap: 5, Divisor: 20},
		},
		Freshness: []FreshnessBracket{
			{FromDays: 0, ToDays: 3, Points: 20},
			{FromDays: 4, ToDays: 7, Points: 12},
			{FromDays: 8, ToDays: 14, Points: 6},
			{FromDays: 15, ToDays: -1, Points: 0},
		},
		Contextual: ContextualParams{LocationMatch: 5, AcademicYearMatch: 5},
		Diversity:  DiversityParams{PenaltyPerOccurrence: 2, MaxPenalty: 10},
	}
}

// Validate checks the internal consistency of the scoring constants.
func (p Params) Validate() error {
	positive := p.Weights.SkillMatch + p.Weights.Engagement +
		p.Weights.Freshness + p.Weights.ContextualBoost
	if positive > 100 {
		return fmt.Errorf("total positive weights exceed 100 points (%.2f)", positive)
	}

	engagementTotal := p.Engagement.Views.Cap + p.Engagement.Likes.Cap + p.Engagement.Applies.Cap
	if engagementTotal != p.Weights.Engagement {
		return fmt.Errorf("engagement sub-caps sum to %.2f, want %.2f",
			engagementTotal, p.Weights.Engagement)
	}

	if p.Engagement.Views.LogBase <= 1 || p.Engagement.Likes.LogBase <= 1 {
		return fmt.Errorf("engagement log bases must be greater than 1")
	}
	if p.Engagement.Applies.Divisor <= 0 {
		return fmt.Errorf("applies divisor must be positive")
	}

	if len(p.Freshness) == 0 {
		return fmt.Errorf("freshness brackets missing")
	}
	if p.Freshness[0].FromDays != 0 {
		return fmt.Errorf("freshness brackets must start at day 0")
	}
	for i := 1; i < len(p.Freshness); i++ {
		if p.Freshness[i].FromDays != p.Freshness[i-1].ToDays+1 {
			return fmt.Errorf("freshness brackets have a gap or overlap at index %d", i)
		}
		if p.Freshness[i].Points > p.Freshness[i-1].Points {
			return fmt.Errorf("freshness points must not increase with age")
		}
	}
	if last := p.Freshness[len(p.Freshness)-1]; last.ToDays != -1 {
		return fmt.Errorf("final freshness bracket must be open-ended")
	}

	if p.Diversity.PenaltyPerOccurrence < 0 || p.Diversity.MaxPenalty < 0 {
		return fmt.Errorf("diversity penalties are configured as positive magnitudes")
	}
	return nil
}
