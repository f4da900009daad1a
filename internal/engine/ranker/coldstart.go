// internal/engine/ranker/coldstart.go
package ranker

import (
	"context"
	"sort"

	apperrors "talent-recommender/internal/common/errors"
	"talent-recommender/internal/models"
)

// coldStart ranks without personal signal: jobs purely by recency,
// posts by popularity then recency, startups by verification then
// recency. No scoring components are computed - every breakdown is zero
// and each result carries the ColdStart flag so callers can tell the
// two paths apart.
func (r *Ranker) coldStart(ctx context.Context, kind models.ContentKind, limit int) ([]models.RankedResult, error) {
	items, err := r.content.ListCandidates(ctx, kind, r.cfg.Ranking.QueryLimit)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == "" {
			return nil, apperrors.NewMalformedIDError("contentId", "")
		}
		items[i].Normalize()
	}

	sortColdStart(items, kind)

	if len(items) > limit {
		items = items[:limit]
	}

	results := make([]models.RankedResult, len(items))
	for i, item := range items {
		results[i] = models.RankedResult{
			ContentID: item.ID,
			Kind:      item.Kind,
			SourceID:  item.SourceID,
			Title:     item.Title,
			CreatedAt: item.CreatedAt,
			Scores:    models.ScoreBreakdown{MatchedTags: []string{}},
			ColdStart: true,
		}
	}

	r.log.Info("cold start ranking served", map[string]interface{}{
		"contentType": kind,
		"returned":    len(results),
	})
	return results, nil
}

// sortColdStart applies the per-kind fallback ordering with content ID
// as the final tie-break, keeping repeated calls deterministic.
func sortColdStart(items []models.ContentItem, kind models.ContentKind) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch kind {
		case models.KindPost:
			if a.Engagement.Likes != b.Engagement.Likes {
				return a.Engagement.Likes > b.Engagement.Likes
			}
		case models.KindStartup:
			if a.Verified != b.Verified {
				return a.Verified
			}
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
