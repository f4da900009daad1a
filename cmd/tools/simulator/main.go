// cmd/tools/simulator/main.go

// Simulator exercises the ranking engine against generated fixture data
// without any backing services: validate the engine configuration,
// inspect a full ranking run, or benchmark the scoring pipeline.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"talent-recommender/internal/common/config"
	apperrors "talent-recommender/internal/common/errors"
	"talent-recommender/internal/common/logger"
	"talent-recommender/internal/engine/ranker"
	"talent-recommender/internal/models"
)

var fixtureSkills = []string{
	"javascript", "python", "golang", "react", "nodejs", "sql",
	"machine learning", "docker", "kubernetes", "aws", "figma", "rust",
}

var fixtureLocations = []string{
	"Bangalore", "Mumbai", "Delhi", "Remote", "Pune", "Hyderabad",
}

func main() {
	var (
		validateOnly = flag.Bool("validate-config", false, "validate the engine configuration and exit")
		simulate     = flag.Bool("simulate", false, "run one ranking pass over generated data and print the results")
		bench        = flag.Int("bench", 0, "benchmark N ranking calls over generated data")
		contentType  = flag.String("type", "jobs", "content type for simulate/bench")
		poolSize     = flag.Int("pool", 100, "generated content pool size")
		limit        = flag.Int("limit", 10, "result limit for simulate/bench")
		seed         = flag.Int64("seed", 42, "fixture generator seed")
	)
	flag.Parse()

	zapLog := logger.New("info", "console")
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	if *validateOnly {
		if err := cfg.Engine.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "configuration invalid: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("configuration valid")
		return
	}

	kind, ok := models.ParseKind(*contentType)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown content type %q\n", *contentType)
		os.Exit(2)
	}

	rng := rand.New(rand.NewSource(*seed))
	fix := generateFixtures(rng, kind, *poolSize)

	eng, err := ranker.New(cfg.Engine, ranker.Deps{
		Profiles:     fix,
		Content:      fix,
		Interactions: fix,
		Logger:       log,
		ShuffleSeed:  func() int64 { return *seed },
	})
	if err != nil {
		zapLog.Fatal("engine init failed", zap.Error(err))
	}

	ctx := context.Background()

	switch {
	case *simulate:
		results, err := eng.Rank(ctx, fix.profile.ID, string(kind), *limit, false)
		if err != nil {
			var stdErr *apperrors.StandardError
			if apperrors.AsStandard(err, &stdErr) {
				json.NewEncoder(os.Stderr).Encode(stdErr)
			} else {
				fmt.Fprintln(os.Stderr, err)
			}
			os.Exit(1)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(results)

	case *bench > 0:
		runBench(ctx, eng, fix.profile.ID, kind, *limit, *bench)

	default:
		flag.Usage()
		os.Exit(2)
	}
}

func runBench(ctx context.Context, eng *ranker.Ranker, profileID string, kind models.ContentKind, limit, n int) {
	// Warm-up run so one-time costs stay out of the measurement.
	if _, err := eng.Rank(ctx, profileID, string(kind), limit, false); err != nil {
		fmt.Fprintf(os.Stderr, "bench aborted: %v\n", err)
		os.Exit(1)
	}

	durations := make([]time.Duration, 0, n)
	start := time.Now()
	for i := 0; i < n; i++ {
		callStart := time.Now()
		if _, err := eng.Rank(ctx, profileID, string(kind), limit, false); err != nil {
			fmt.Fprintf(os.Stderr, "bench call %d failed: %v\n", i, err)
			os.Exit(1)
		}
		durations = append(durations, time.Since(callStart))
	}
	total := time.Since(start)

	var max, sum time.Duration
	min := durations[0]
	for _, d := range durations {
		sum += d
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}

	fmt.Printf("calls:    %d\n", n)
	fmt.Printf("total:    %s\n", total)
	fmt.Printf("mean:     %s\n", sum/time.Duration(n))
	fmt.Printf("min/max:  %s / %s\n", min, max)
	fmt.Printf("rate:     %.1f calls/sec\n", float64(n)/total.Seconds())
}

// fixtureSet holds the generated pool and implements every store
// interface the engine needs.
type fixtureSet struct {
	profile models.CandidateProfile
	items   []models.ContentItem
	recent  []string
}

func generateFixtures(rng *rand.Rand, kind models.ContentKind, poolSize int) *fixtureSet {
	profile := models.CandidateProfile{
		ID:             uuid.NewString(),
		Skills:         pickN(rng, fixtureSkills, 4),
		Interests:      pickN(rng, fixtureSkills, 3),
		Location:       fixtureLocations[rng.Intn(len(fixtureLocations))],
		GraduationYear: time.Now().Year(),
	}

	items := make([]models.ContentItem, poolSize)
	sources := make([]string, 0, poolSize/10)
	for i := range items {
		sourceID := uuid.NewString()
		// A tenth of the sources show up in the interaction history so
		// the diversity penalty has something to bite on.
		if i%10 == 0 {
			sources = append(sources, sourceID)
		}
		items[i] = models.ContentItem{
			ID:           uuid.NewString(),
			Kind:         kind,
			SourceID:     sourceID,
			Title:        fmt.Sprintf("Opening %d", i),
			Requirements: pickN(rng, fixtureSkills, 1+rng.Intn(5)),
			Description:  "Looking for " + fixtureSkills[rng.Intn(len(fixtureSkills))] + " experience",
			Engagement: models.EngagementCounters{
				Views:        rng.Int63n(500),
				Likes:        rng.Int63n(100),
				Applications: rng.Int63n(30),
				Saves:        rng.Int63n(20),
			},
			CreatedAt:            time.Now().AddDate(0, 0, -rng.Intn(30)),
			Location:             fixtureLocations[rng.Intn(len(fixtureLocations))],
			TargetedAcademicYear: time.Now().Year() - rng.Intn(3),
			Verified:             rng.Intn(2) == 0,
		}
	}

	return &fixtureSet{profile: profile, items: items, recent: sources}
}

func pickN(rng *rand.Rand, pool []string, n int) []string {
	idx := rng.Perm(len(pool))
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = pool[idx[i]]
	}
	return out
}

func (f *fixtureSet) GetProfile(ctx context.Context, profileID string) (*models.CandidateProfile, error) {
	if profileID != f.profile.ID {
		return nil, apperrors.NewProfileNotFoundError(profileID)
	}
	p := f.profile
	return &p, nil
}

func (f *fixtureSet) ListCandidates(ctx context.Context, kind models.ContentKind, limit int) ([]models.ContentItem, error) {
	items := f.items
	if len(items) > limit {
		items = items[:limit]
	}
	out := make([]models.ContentItem, len(items))
	copy(out, items)
	return out, nil
}

func (f *fixtureSet) GetContent(ctx context.Context, kind models.ContentKind, contentID string) (*models.ContentItem, error) {
	for i := range f.items {
		if f.items[i].ID == contentID {
			item := f.items[i]
			return &item, nil
		}
	}
	return nil, apperrors.NewContentNotFoundError(string(kind), contentID)
}

func (f *fixtureSet) ListRecentSources(ctx context.Context, profileID string) ([]string, error) {
	out := make([]string, len(f.recent))
	copy(out, f.recent)
	return out, nil
}
