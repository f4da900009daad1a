// internal/engine/ranker/ranker.go

// Package ranker orchestrates the recommendation pipeline: it loads the
// candidate profile and content pool from collaborator stores, scores
// every item, sorts deterministically and truncates to the requested
// limit. Profiles without usable signal fall back to the cold-start
// path.
package ranker

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"talent-recommender/internal/common/config"
	apperrors "talent-recommender/internal/common/errors"
	"talent-recommender/internal/common/logger"
	"talent-recommender/internal/common/metrics"
	"talent-recommender/internal/engine/scoring"
	"talent-recommender/internal/engine/textnorm"
	"talent-recommender/internal/models"
)

// ProfileStore resolves candidate profiles. Absence is reported as a
// PROFILE_NOT_FOUND StandardError, which the ranker treats as routing
// information rather than a failure.
type ProfileStore interface {
	GetProfile(ctx context.Context, profileID string) (*models.CandidateProfile, error)
}

// ContentStore supplies the bounded candidate pool and single items for
// score explanations.
type ContentStore interface {
	ListCandidates(ctx context.Context, kind models.ContentKind, limit int) ([]models.ContentItem, error)
	GetContent(ctx context.Context, kind models.ContentKind, contentID string) (*models.ContentItem, error)
}

// InteractionStore lists the source IDs behind a candidate's recent
// applications and saves, most recent first.
type InteractionStore interface {
	ListRecentSources(ctx context.Context, profileID string) ([]string, error)
}

// ResultCache is an optional short-TTL side channel keyed by
// (profileID, contentType, limit). It is never a source of truth: any
// read failure means recompute.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]models.RankedResult, bool)
	Set(ctx context.Context, key string, results []models.RankedResult, ttl time.Duration)
}

// Deps bundles the ranker's collaborators.
type Deps struct {
	Profiles     ProfileStore
	Content      ContentStore
	Interactions InteractionStore
	Cache        ResultCache // optional
	Logger       logger.Logger
	Now          func() time.Time // optional, defaults to time.Now
	ShuffleSeed  func() int64     // optional, defaults to clock-based
}

// Ranker is safe for concurrent use: it holds no mutable state between
// calls. Configuration is fixed at construction.
type Ranker struct {
	cfg          config.EngineConfig
	profiles     ProfileStore
	content      ContentStore
	interactions InteractionStore
	cache        ResultCache
	extractor    *textnorm.Extractor
	log          logger.Logger
	now          func() time.Time
	shuffleSeed  func() int64
}

// New validates the configuration and builds a Ranker.
func New(cfg config.EngineConfig, deps Deps) (*Ranker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	if deps.Profiles == nil || deps.Content == nil || deps.Interactions == nil {
		return nil, fmt.Errorf("profile, content and interaction stores are required")
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	seed := deps.ShuffleSeed
	if seed == nil {
		seed = func() int64 { return time.Now().UnixNano() }
	}
	return &Ranker{
		cfg:          cfg,
		profiles:     deps.Profiles,
		content:      deps.Content,
		interactions: deps.Interactions,
		cache:        deps.Cache,
		extractor:    textnorm.NewExtractor(cfg.Synonyms),
		log:          log.WithFields(map[string]interface{}{"component": "ranker"}),
		now:          now,
		shuffleSeed:  seed,
	}, nil
}

// Rank produces the top-limit ranked results for one candidate and
// content type. A zero limit selects the configured default; limits
// outside the configured range are a validation error, never clamped.
// When randomize is set the already-ranked, already-truncated set is
// shuffled for display variety - selection is unaffected.
func (r *Ranker) Rank(ctx context.Context, profileID, contentType string, limit int, randomize bool) ([]models.RankedResult, error) {
	kind, ok := models.ParseKind(contentType)
	if !ok {
		return nil, apperrors.NewUnknownContentTypeError(contentType)
	}
	if profileID == "" {
		return nil, apperrors.NewMalformedIDError("profileId", profileID)
	}
	if limit == 0 {
		limit = r.cfg.Ranking.DefaultLimit
	}
	if limit < r.cfg.Ranking.MinLimit || limit > r.cfg.Ranking.MaxLimit {
		return nil, apperrors.NewLimitOutOfRangeError(limit, r.cfg.Ranking.MinLimit, r.cfg.Ranking.MaxLimit)
	}

	start := r.now()
	defer func() {
		metrics.RankDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
	}()
	metrics.RecommendationsServed.WithLabelValues(string(kind)).Inc()

	cacheKey := CacheKey(profileID, kind, limit)
	if r.cache != nil && r.cfg.Cache.Enabled {
		if cached, hit := r.cache.Get(ctx, cacheKey); hit {
			metrics.CacheHits.WithLabelValues(string(kind)).Inc()
			return r.present(cached, randomize), nil
		}
		metrics.CacheMisses.WithLabelValues(string(kind)).Inc()
	}

	profile, err := r.loadProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	var results []models.RankedResult
	if !profile.HasSignal(kind) {
		metrics.ColdStartServed.WithLabelValues(string(kind)).Inc()
		results, err = r.coldStart(ctx, kind, limit)
	} else {
		results, err = r.score(ctx, profile, kind, limit)
	}
	if err != nil {
		return nil, err
	}

	if r.cache != nil && r.cfg.Cache.Enabled {
		r.cache.Set(ctx, cacheKey, results, r.cfg.Cache.TTL)
	}

	return r.present(results, randomize), nil
}

// loadProfile resolves the profile, mapping absence to nil: new users
// are an expected, common case and route to cold start.
func (r *Ranker) loadProfile(ctx context.Context, profileID string) (*models.CandidateProfile, error) {
	profile, err := r.profiles.GetProfile(ctx, profileID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			r.log.Debug("profile absent, using cold start", map[string]interface{}{
				"profileId": profileID,
			})
			return nil, nil
		}
		return nil, err
	}
	profile.Normalize()
	return profile, nil
}

// score runs the personalized pipeline over the candidate pool.
func (r *Ranker) score(ctx context.Context, profile *models.CandidateProfile, kind models.ContentKind, limit int) ([]models.RankedResult, error) {
	recent, err := r.interactions.ListRecentSources(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	if len(recent) > models.MaxRecentSources {
		recent = recent[:models.MaxRecentSources]
	}

	items, err := r.content.ListCandidates(ctx, kind, r.cfg.Ranking.QueryLimit)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == "" {
			return nil, apperrors.NewMalformedIDError("contentId", "")
		}
	}

	now := r.now()
	terms := r.extractor.ExpandTerms(profile.MatchTerms(kind))

	// Per-item scoring is embarrassingly parallel: each goroutine writes
	// only its own slot, so the merge needs no ordering logic.
	results := make([]models.RankedResult, len(items))
	workers := r.cfg.Ranking.ScoreWorkers
	if workers < 1 {
		workers = 1
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			item := items[i]
			item.Normalize()
			results[i] = models.RankedResult{
				ContentID: item.ID,
				Kind:      item.Kind,
				SourceID:  item.SourceID,
				Title:     item.Title,
				CreatedAt: item.CreatedAt,
				Scores:    r.scoreItem(profile, terms, &item, recent, now),
			}
		}(i)
	}
	wg.Wait()

	// All-or-nothing: an aborted call emits no partial results.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	metrics.ItemsScored.WithLabelValues(string(kind)).Add(float64(len(items)))

	sortRanked(results)
	if len(results) > limit {
		results = results[:limit]
	}

	r.log.Info("ranking completed", map[string]interface{}{
		"profileId":   profile.ID,
		"contentType": kind,
		"poolSize":    len(items),
		"returned":    len(results),
	})
	return results, nil
}

// scoreItem computes the full breakdown for one content item.
func (r *Ranker) scoreItem(profile *models.CandidateProfile, terms []string, item *models.ContentItem, recent []string, now time.Time) models.ScoreBreakdown {
	tags := item.Tags
	if len(tags) == 0 {
		tags = r.extractor.ExtractTags(item.MatchText())
	}

	match := scoring.MatchSkills(terms, tags, r.cfg.Scoring.Weights.SkillMatch)

	b := models.ScoreBreakdown{
		SkillMatch:       match.Score,
		MatchedTags:      match.MatchedTags,
		TotalTags:        match.TotalTags,
		Engagement:       scoring.EngagementScore(item.Engagement, r.cfg.Scoring.Engagement),
		Freshness:        scoring.FreshnessScore(item.CreatedAt, now, r.cfg.Scoring.Freshness),
		ContextualBoost:  scoring.ContextualBoost(profile, item, r.cfg.Scoring.Contextual, now),
		DiversityPenalty: scoring.DiversityPenalty(item.SourceID, recent, r.cfg.Scoring.Diversity),
	}
	return scoring.Aggregate(b)
}

// sortRanked orders results descending by final score with content ID
// as the stable secondary key, so identical inputs always produce
// identical output order.
func sortRanked(results []models.RankedResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Scores.Final != results[j].Scores.Final {
			return results[i].Scores.Final > results[j].Scores.Final
		}
		return results[i].ContentID < results[j].ContentID
	})
}

// present applies the opt-in display shuffle. It copies first: the
// ranked slice may be shared with the cache.
func (r *Ranker) present(results []models.RankedResult, randomize bool) []models.RankedResult {
	if !randomize || len(results) < 2 {
		return results
	}
	out := make([]models.RankedResult, len(results))
	copy(out, results)
	rng := rand.New(rand.NewSource(r.shuffleSeed()))
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// CacheKey builds the result-cache key for one ranking request.
func CacheKey(profileID string, kind models.ContentKind, limit int) string {
	return fmt.Sprintf("rec:%s:%s:%d", profileID, kind, limit)
}
