// internal/engine/ranker/ranker_test.go
package ranker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talent-recommender/internal/common/config"
	apperrors "talent-recommender/internal/common/errors"
	"talent-recommender/internal/common/logger"
	"talent-recommender/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeStore struct {
	profiles map[string]*models.CandidateProfile
	items    map[models.ContentKind][]models.ContentItem
	recent   map[string][]string

	profileErr     error
	candidatesErr  error
	interactionErr error
}

func (f *fakeStore) GetProfile(ctx context.Context, profileID string) (*models.CandidateProfile, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	p, ok := f.profiles[profileID]
	if !ok {
		return nil, apperrors.NewProfileNotFoundError(profileID)
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) ListCandidates(ctx context.Context, kind models.ContentKind, limit int) ([]models.ContentItem, error) {
	if f.candidatesErr != nil {
		return nil, f.candidatesErr
	}
	items := f.items[kind]
	if len(items) > limit {
		items = items[:limit]
	}
	out := make([]models.ContentItem, len(items))
	copy(out, items)
	return out, nil
}

func (f *fakeStore) GetContent(ctx context.Context, kind models.ContentKind, contentID string) (*models.ContentItem, error) {
	for _, item := range f.items[kind] {
		if item.ID == contentID {
			cp := item
			return &cp, nil
		}
	}
	return nil, apperrors.NewContentNotFoundError(string(kind), contentID)
}

func (f *fakeStore) ListRecentSources(ctx context.Context, profileID string) ([]string, error) {
	if f.interactionErr != nil {
		return nil, f.interactionErr
	}
	return f.recent[profileID], nil
}

type fakeCache struct {
	data map[string][]models.RankedResult
	hits int
	sets int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]models.RankedResult{}}
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]models.RankedResult, bool) {
	results, ok := c.data[key]
	if ok {
		c.hits++
	}
	return results, ok
}

func (c *fakeCache) Set(ctx context.Context, key string, results []models.RankedResult, ttl time.Duration) {
	c.sets++
	c.data[key] = results
}

func testProfile() *models.CandidateProfile {
	return &models.CandidateProfile{
		ID:             "student-1",
		Skills:         []string{"javascript", "react", "sql"},
		Interests:      []string{"machine learning", "startups"},
		Location:       "Bangalore",
		GraduationYear: 2026,
	}
}

func jobItem(id, sourceID string, ageDays int, skills ...string) models.ContentItem {
	return models.ContentItem{
		ID:           id,
		Kind:         models.KindJob,
		SourceID:     sourceID,
		Title:        "Opening " + id,
		Requirements: skills,
		CreatedAt:    testNow.AddDate(0, 0, -ageDays),
	}
}

func newTestRanker(t *testing.T, store *fakeStore, cache ResultCache) *Ranker {
	t.Helper()
	cfg := config.DefaultEngineConfig()
	if cache == nil {
		cfg.Cache.Enabled = false
	}
	r, err := New(cfg, Deps{
		Profiles:     store,
		Content:      store,
		Interactions: store,
		Cache:        cache,
		Logger:       logger.NewTestLogger(t),
		Now:          func() time.Time { return testNow },
		ShuffleSeed:  func() int64 { return 1 },
	})
	require.NoError(t, err)
	return r
}

// ==========================
// Validation Tests
// ==========================

func TestRank_Validation(t *testing.T) {
	store := &fakeStore{profiles: map[string]*models.CandidateProfile{"student-1": testProfile()}}
	r := newTestRanker(t, store, nil)
	ctx := context.Background()

	tests := []struct {
		name        string
		profileID   string
		contentType string
		limit       int
		wantCode    apperrors.ErrorCode
	}{
		{"unknown content type", "student-1", "videos", 10, apperrors.ErrCodeUnknownContentType},
		{"empty profile id", "", "jobs", 10, apperrors.ErrCodeMalformedID},
		{"limit above max", "student-1", "jobs", 51, apperrors.ErrCodeLimitOutOfRange},
		{"negative limit", "student-1", "jobs", -3, apperrors.ErrCodeLimitOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Rank(ctx, tt.profileID, tt.contentType, tt.limit, false)
			require.Error(t, err)
			var stdErr *apperrors.StandardError
			require.True(t, apperrors.AsStandard(err, &stdErr))
			assert.Equal(t, tt.wantCode, stdErr.Code)
		})
	}
}

func TestRank_ZeroLimitUsesDefault(t *testing.T) {
	items := make([]models.ContentItem, 0, 30)
	for i := 0; i < 30; i++ {
		items = append(items, jobItem(fmt.Sprintf("job-%02d", i), fmt.Sprintf("src-%02d", i), i%10, "javascript"))
	}
	store := &fakeStore{
		profiles: map[string]*models.CandidateProfile{"student-1": testProfile()},
		items:    map[models.ContentKind][]models.ContentItem{models.KindJob: items},
	}
	r := newTestRanker(t, store, nil)

	results, err := r.Rank(context.Background(), "student-1", "jobs", 0, false)
	require.NoError(t, err)
	assert.Len(t, results, 10)
}

func TestRank_AcceptsPluralAndSingularTypeNames(t *testing.T) {
	store := &fakeStore{
		profiles: map[string]*models.CandidateProfile{"student-1": testProfile()},
		items: map[models.ContentKind][]models.ContentItem{
			models.KindJob: {jobItem("job-1", "src-1", 1, "sql")},
		},
	}
	r := newTestRanker(t, store, nil)

	for _, typeName := range []string{"job", "jobs", "JOBS"} {
		results, err := r.Rank(context.Background(), "student-1", typeName, 5, false)
		require.NoError(t, err, "type %q", typeName)
		assert.Len(t, results, 1)
	}
}

// ==========================
// Personalized Ranking Tests
// ==========================

func TestRank_OrdersByFinalScoreDescending(t *testing.T) {
	store := &fakeStore{
		profiles: map[string]*models.CandidateProfile{"student-1": testProfile()},
		items: map[models.ContentKind][]models.ContentItem{
			models.KindJob: {
				jobItem("job-weak", "src-1", 20, "cobol", "fortran"),
				jobItem("job-strong", "src-2", 1, "javascript", "react", "sql"),
				jobItem("job-mid", "src-3", 5, "javascript", "golang"),
			},
		},
	}
	r := newTestRanker(t, store, nil)

	results, err := r.Rank(context.Background(), "student-1", "jobs", 10, false)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "job-strong", results[0].ContentID)
	assert.Equal(t, "job-weak", results[2].ContentID)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Scores.Final, results[i].Scores.Final)
	}
	for _, res := range results {
		assert.False(t, res.ColdStart)
		assert.Equal(t, res.Scores.Final,
			roundTrip(res.Scores.SkillMatch+res.Scores.Engagement+res.Scores.Freshness+
				res.Scores.ContextualBoost+res.Scores.DiversityPenalty))
	}
}

func roundTrip(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

func TestRank_TieBreaksByContentID(t *testing.T) {
	// Identical items except for their IDs: every score ties.
	store := &fakeStore{
		profiles: map[string]*models.CandidateProfile{"student-1": testProfile()},
		items: map[models.ContentKind][]models.ContentItem{
			models.KindJob: {
				jobItem("job-c", "src-1", 2, "sql"),
				jobItem("job-a", "src-2", 2, "sql"),
				jobItem("job-b", "src-3", 2, "sql"),
			},
		},
	}
	r := newTestRanker(t, store, nil)

	results, err := r.Rank(context.Background(), "student-1", "jobs", 10, false)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "job-a", results[0].ContentID)
	assert.Equal(t, "job-b", results[1].ContentID)
	assert.Equal(t, "job-c", results[2].ContentID)
}

func TestRank_Deterministic(t *testing.T) {
	items := make([]models.ContentItem, 0, 50)
	for i := 0; i < 50; i++ {
		items = append(items, jobItem(fmt.Sprintf("job-%02d", i), fmt.Sprintf("src-%02d", i%7), i%20, "javascript", "react"))
	}
	store := &fakeStore{
		profiles: map[string]*models.CandidateProfile{"student-1": testProfile()},
		items:    map[models.ContentKind][]models.ContentItem{models.KindJob: items},
		recent:   map[string][]string{"student-1": {"src-00", "src-01", "src-00"}},
	}
	r := newTestRanker(t, store, nil)

	first, err := r.Rank(context.Background(), "student-1", "jobs", 20, false)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := r.Rank(context.Background(), "student-1", "jobs", 20, false)
		require.NoError(t, err)
		assert.Equal(t, first, again, "identical inputs must produce identical output")
	}
}

func TestRank_DiversityPenaltyDemotesRepeatedSource(t *testing.T) {
	store := &fakeStore{
		profiles: map[string]*models.CandidateProfile{"student-1": testProfile()},
		items: map[models.ContentKind][]models.ContentItem{
			models.KindJob: {
				jobItem("job-seen", "src-familiar", 2, "javascript", "react"),
				jobItem("job-new", "src-fresh", 2, "javascript", "react"),
			},
		},
		recent: map[string][]string{"student-1": {"src-familiar", "src-familiar", "src-familiar"}},
	}
	r := newTestRanker(t, store, nil)

	results, err := r.Rank(context.Background(), "student-1", "jobs", 10, false)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "job-new", results[0].ContentID)
	assert.Equal(t, -6.0, results[1].Scores.DiversityPenalty)
	assert.Equal(t, 0.0, results[0].Scores.DiversityPenalty)
}

func TestRank_TruncatesToLimit(t *testing.T) {
	items := make([]models.ContentItem, 0, 40)
	for i := 0; i < 40; i++ {
		items = append(items, jobItem(fmt.Sprintf("job-%02d", i), fmt.Sprintf("src-%02d", i), i%15, "sql"))
	}
	store := &fakeStore{
		profiles: map[string]*models.CandidateProfile{"student-1": testProfile()},
		items:    map[models.ContentKind][]models.ContentItem{models.KindJob: items},
	}
	r := newTestRanker(t, store, nil)

	results, err := r.Rank(context.Background(), "student-1", "jobs", 5, false)
	require.NoError(t, err)
	assert.Len(t, results, 5)
}

func TestRank_EmptyPoolYieldsEmptySlice(t *testing.T) {
	store := &fakeStore{
		profiles: map[string]*models.CandidateProfile{"student-1": testProfile()},
		items:    map[models.ContentKind][]models.ContentItem{},
	}
	r := newTestRanker(t, store, nil)

	results, err := r.Rank(context.Background(), "student-1", "jobs", 10, false)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRank_PropagatesCollaboratorFailure(t *testing.T) {
	store := &fakeStore{
		profiles:      map[string]*models.CandidateProfile{"student-1": testProfile()},
		candidatesErr: apperrors.NewCollaboratorUnavailableError("postgres", assert.AnError),
	}
	r := newTestRanker(t, store, nil)

	_, err := r.Rank(context.Background(), "student-1", "jobs", 10, false)
	require.Error(t, err)
	assert.True(t, apperrors.IsUnavailable(err))
}

// ==========================
// Cold Start Tests
// ==========================

func TestRank_ColdStartForUnknownProfile(t *testing.T) {
	store := &fakeStore{
		profiles: map[string]*models.CandidateProfile{},
		items: map[models.ContentKind][]models.ContentItem{
			models.KindJob: {
				jobItem("job-old", "src-1", 10, "sql"),
				jobItem("job-new", "src-2", 1, "sql"),
			},
		},
	}
	r := newTestRanker(t, store, nil)

	results, err := r.Rank(context.Background(), "nobody", "jobs", 10, false)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Newest first, flagged, zero scores.
	assert.Equal(t, "job-new", results[0].ContentID)
	for _, res := range results {
		assert.True(t, res.ColdStart)
		assert.Equal(t, models.ScoreBreakdown{MatchedTags: []string{}}, res.Scores)
	}
}

func TestRank_ColdStartForProfileWithoutSignal(t *testing.T) {
	store := &fakeStore{
		profiles: map[string]*models.CandidateProfile{
			"student-blank": {ID: "student-blank", Interests: []string{"design"}},
		},
		items: map[models.ContentKind][]models.ContentItem{
			models.KindJob: {jobItem("job-1", "src-1", 1, "sql")},
		},
	}
	r := newTestRanker(t, store, nil)

	// Jobs need skills; interests alone do not count as signal.
	results, err := r.Rank(context.Background(), "student-blank", "jobs", 10, false)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].ColdStart)
}

func TestColdStart_PostOrdering(t *testing.T) {
	store := &fakeStore{
		profiles: map[string]*models.CandidateProfile{},
		items: map[models.ContentKind][]models.ContentItem{
			models.KindPost: {
				{ID: "post-recent", Kind: models.KindPost, SourceID: "s1", CreatedAt: testNow.AddDate(0, 0, -1), Engagement: models.EngagementCounters{Likes: 5}},
				{ID: "post-popular", Kind: models.KindPost, SourceID: "s2", CreatedAt: testNow.AddDate(0, 0, -10), Engagement: models.EngagementCounters{Likes: 90}},
				{ID: "post-tied-new", Kind: models.KindPost, SourceID: "s3", CreatedAt: testNow.AddDate(0, 0, -2), Engagement: models.EngagementCounters{Likes: 5}},
			},
		},
	}
	r := newTestRanker(t, store, nil)

	results, err := r.Rank(context.Background(), "nobody", "posts", 10, false)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "post-popular", results[0].ContentID)
	assert.Equal(t, "post-recent", results[1].ContentID)
	assert.Equal(t, "post-tied-new", results[2].ContentID)
}

func TestColdStart_StartupOrdering(t *testing.T) {
	store := &fakeStore{
		profiles: map[string]*models.CandidateProfile{},
		items: map[models.ContentKind][]models.ContentItem{
			models.KindStartup: {
				{ID: "startup-new-unverified", Kind: models.KindStartup, SourceID: "s1", CreatedAt: testNow.AddDate(0, 0, -1)},
				{ID: "startup-old-verified", Kind: models.KindStartup, SourceID: "s2", CreatedAt: testNow.AddDate(0, 0, -30), Verified: true},
				{ID: "startup-new-verified", Kind: models.KindStartup, SourceID: "s3", CreatedAt: testNow.AddDate(0, 0, -3), Verified: true},
			},
		},
	}
	r := newTestRanker(t, store, nil)

	results, err := r.Rank(context.Background(), "nobody", "startups", 10, false)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "startup-new-verified", results[0].ContentID)
	assert.Equal(t, "startup-old-verified", results[1].ContentID)
	assert.Equal(t, "startup-new-unverified", results[2].ContentID)
}

func TestColdStart_EmptyPool(t *testing.T) {
	store := &fakeStore{profiles: map[string]*models.CandidateProfile{}}
	r := newTestRanker(t, store, nil)

	results, err := r.Rank(context.Background(), "nobody", "jobs", 10, false)
	require.NoError(t, err)
	assert.Empty(t, results)
}

// ==========================
// Presentation & Cache Tests
// ==========================

func TestRank_ShufflePreservesResultSet(t *testing.T) {
	items := make([]models.ContentItem, 0, 20)
	for i := 0; i < 20; i++ {
		items = append(items, jobItem(fmt.Sprintf("job-%02d", i), fmt.Sprintf("src-%02d", i), i%5, "javascript"))
	}
	store := &fakeStore{
		profiles: map[string]*models.CandidateProfile{"student-1": testProfile()},
		items:    map[models.ContentKind][]models.ContentItem{models.KindJob: items},
	}
	r := newTestRanker(t, store, nil)

	plain, err := r.Rank(context.Background(), "student-1", "jobs", 10, false)
	require.NoError(t, err)
	shuffled, err := r.Rank(context.Background(), "student-1", "jobs", 10, true)
	require.NoError(t, err)

	assert.ElementsMatch(t, plain, shuffled, "shuffle must reorder, never change membership")
}

func TestRank_CacheRoundTrip(t *testing.T) {
	cache := newFakeCache()
	store := &fakeStore{
		profiles: map[string]*models.CandidateProfile{"student-1": testProfile()},
		items: map[models.ContentKind][]models.ContentItem{
			models.KindJob: {jobItem("job-1", "src-1", 1, "sql")},
		},
	}
	r := newTestRanker(t, store, cache)
	ctx := context.Background()

	first, err := r.Rank(ctx, "student-1", "jobs", 10, false)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 0, cache.hits)

	second, err := r.Rank(ctx, "student-1", "jobs", 10, false)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, first, second)

	// A different limit is a different cache entry.
	_, err = r.Rank(ctx, "student-1", "jobs", 5, false)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.sets)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "rec:student-1:job:10", CacheKey("student-1", models.KindJob, 10))
}

// ==========================
// Constructor Tests
// ==========================

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultEngineConfig()
	cfg.Ranking.MaxLimit = 0
	_, err := New(cfg, Deps{
		Profiles:     &fakeStore{},
		Content:      &fakeStore{},
		Interactions: &fakeStore{},
	})
	assert.Error(t, err)
}

func TestNew_RequiresStores(t *testing.T) {
	_, err := New(config.DefaultEngineConfig(), Deps{})
	assert.Error(t, err)
}
