// internal/models/result.go
package models

import "time"

// ScoreBreakdown retains every component of a final score for
// explainability. Component bounds (with default weights): skill match
// [0,40], engagement [0,20], freshness [0,20], contextual boost [0,10],
// diversity penalty [-10,0]. Final is the plain sum; it is never clamped.
type ScoreBreakdown struct {
	SkillMatch       float64 `json:"skillMatch"`
	Engagement       float64 `json:"engagement"`
	Freshness        float64 `json:"freshness"`
	ContextualBoost  float64 `json:"contextualBoost"`
	DiversityPenalty float64 `json:"diversityPenalty"`
	Final            float64 `json:"final"`

	// MatchedTags is always serialized, as an empty array when nothing
	// matched, so consumers can rely on the field's presence.
	MatchedTags []string `json:"matchedTags"`
	TotalTags   int      `json:"totalTags"`
}

// RankedResult pairs a content item projection with its score breakdown.
type RankedResult struct {
	ContentID string      `json:"contentId"`
	Kind      ContentKind `json:"kind"`
	SourceID  string      `json:"sourceId,omitempty"`
	Title     string      `json:"title,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`

	Scores ScoreBreakdown `json:"scores"`

	// ColdStart marks results produced by the fallback path so callers
	// can tell personalized output from recency/popularity ordering.
	ColdStart bool `json:"coldStart,omitempty"`
}
