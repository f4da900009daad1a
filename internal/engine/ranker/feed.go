// internal/engine/ranker/feed.go
package ranker

import (
	"context"

	apperrors "talent-recommender/internal/common/errors"
	"talent-recommender/internal/models"
)

// Feed builds a mixed jobs-and-posts home feed. Both kinds are ranked
// concurrently with roughly half the requested limit each (jobs get the
// extra slot on odd limits), then merged by final score. Either kind
// failing fails the feed.
func (r *Ranker) Feed(ctx context.Context, profileID string, limit int, randomize bool) ([]models.RankedResult, error) {
	if profileID == "" {
		return nil, apperrors.NewMalformedIDError("profileId", profileID)
	}
	if limit == 0 {
		limit = r.cfg.Ranking.DefaultLimit
	}
	if limit < r.cfg.Ranking.MinLimit || limit > r.cfg.Ranking.MaxLimit {
		return nil, apperrors.NewLimitOutOfRangeError(limit, r.cfg.Ranking.MinLimit, r.cfg.Ranking.MaxLimit)
	}

	jobLimit := (limit + 1) / 2
	postLimit := limit - jobLimit
	if postLimit < r.cfg.Ranking.MinLimit {
		postLimit = r.cfg.Ranking.MinLimit
	}

	type part struct {
		results []models.RankedResult
		err     error
	}
	jobCh := make(chan part, 1)
	postCh := make(chan part, 1)

	go func() {
		res, err := r.Rank(ctx, profileID, string(models.KindJob), jobLimit, false)
		jobCh <- part{res, err}
	}()
	go func() {
		res, err := r.Rank(ctx, profileID, string(models.KindPost), postLimit, false)
		postCh <- part{res, err}
	}()

	jobs, posts := <-jobCh, <-postCh
	if jobs.err != nil {
		return nil, jobs.err
	}
	if posts.err != nil {
		return nil, posts.err
	}

	combined := make([]models.RankedResult, 0, len(jobs.results)+len(posts.results))
	combined = append(combined, jobs.results...)
	combined = append(combined, posts.results...)
	sortRanked(combined)
	if len(combined) > limit {
		combined = combined[:limit]
	}

	return r.present(combined, randomize), nil
}
