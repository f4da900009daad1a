// internal/engine/ranker/explain.go
package ranker

import (
	"context"
	"fmt"

	apperrors "talent-recommender/internal/common/errors"
	"talent-recommender/internal/engine/scoring"
	"talent-recommender/internal/models"
)

// Explanation is the on-demand scoring breakdown for a single item,
// recomputed outside the serving path for transparency and debugging.
type Explanation struct {
	ProfileID   string                `json:"profileId"`
	ContentID   string                `json:"contentId"`
	ContentType models.ContentKind    `json:"contentType"`
	Scores      models.ScoreBreakdown `json:"scores"`
	Notes       map[string]string     `json:"notes"`
	ColdStart   bool                  `json:"coldStart,omitempty"`
}

// Explain recomputes the breakdown the ranking pipeline would produce
// for one (profile, content) pair. A missing content item is an error;
// a missing profile yields the zero breakdown with the cold-start flag,
// mirroring what Rank would have served.
func (r *Ranker) Explain(ctx context.Context, profileID, contentID, contentType string) (*Explanation, error) {
	kind, ok := models.ParseKind(contentType)
	if !ok {
		return nil, apperrors.NewUnknownContentTypeError(contentType)
	}
	if profileID == "" {
		return nil, apperrors.NewMalformedIDError("profileId", profileID)
	}
	if contentID == "" {
		return nil, apperrors.NewMalformedIDError("contentId", contentID)
	}

	item, err := r.content.GetContent(ctx, kind, contentID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperrors.NewContentNotFoundError(string(kind), contentID)
	}
	item.Normalize()

	profile, err := r.loadProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	exp := &Explanation{
		ProfileID:   profileID,
		ContentID:   contentID,
		ContentType: kind,
		Notes:       map[string]string{},
	}

	if !profile.HasSignal(kind) {
		exp.ColdStart = true
		exp.Scores = models.ScoreBreakdown{MatchedTags: []string{}}
		exp.Notes["coldStart"] = "profile absent or without usable signal; served by recency/popularity fallback"
		return exp, nil
	}

	recent, err := r.interactions.ListRecentSources(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	now := r.now()
	terms := r.extractor.ExpandTerms(profile.MatchTerms(kind))
	exp.Scores = r.scoreItem(profile, terms, item, recent, now)

	exp.Notes["skillMatch"] = fmt.Sprintf("%d of %d tags matched (max %.0f pts)",
		len(exp.Scores.MatchedTags), exp.Scores.TotalTags, r.cfg.Scoring.Weights.SkillMatch)
	exp.Notes["engagement"] = fmt.Sprintf("views %d, likes %d, applies/saves %d (max %.0f pts)",
		item.Engagement.Views, item.Engagement.Likes, item.Engagement.AppliesOrSaves(),
		r.cfg.Scoring.Weights.Engagement)
	exp.Notes["freshness"] = scoring.ExplainFreshness(item.CreatedAt, now, r.cfg.Scoring.Freshness)
	if exp.Scores.ContextualBoost > 0 {
		exp.Notes["contextualBoost"] = "location or academic year matched"
	} else {
		exp.Notes["contextualBoost"] = "no contextual match"
	}
	if exp.Scores.DiversityPenalty < 0 {
		exp.Notes["diversityPenalty"] = fmt.Sprintf("recent interactions with the same source (floor -%.0f pts)",
			r.cfg.Scoring.Diversity.MaxPenalty)
	} else {
		exp.Notes["diversityPenalty"] = "no recent interactions with this source"
	}

	return exp, nil
}
