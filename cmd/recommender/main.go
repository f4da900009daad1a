// cmd/recommender/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"talent-recommender/internal/common/config"
	"talent-recommender/internal/common/database"
	apperrors "talent-recommender/internal/common/errors"
	"talent-recommender/internal/common/logger"
	"talent-recommender/internal/common/observability"
	"talent-recommender/internal/engine/ranker"
	"talent-recommender/internal/store"
)

func main() {
	var (
		cmd         = flag.String("cmd", "rank", "command to run: rank, explain or feed")
		profileID   = flag.String("profile", "", "candidate profile ID")
		contentType = flag.String("type", "jobs", "content type: jobs, posts or startups")
		contentID   = flag.String("content", "", "content ID (explain only)")
		limit       = flag.Int("limit", 0, "number of results, 0 for the configured default")
		randomize   = flag.Bool("randomize", false, "shuffle the final result order")
		metricsAddr = flag.String("metrics-addr", "", "serve /metrics and /health on this address, empty to disable")
		timeout     = flag.Duration("timeout", 10*time.Second, "per-call timeout")
	)
	flag.Parse()

	zapLog := logger.New("info", "console")
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		zapLog.Fatal("postgres failed", zap.Error(err))
	}
	defer pg.Close()
	if err := pg.Ping(ctx); err != nil {
		zapLog.Fatal("postgres unreachable", zap.Error(err))
	}

	pgStore := store.NewPostgresStore(pg.DB, log)

	deps := ranker.Deps{
		Profiles:     pgStore,
		Content:      pgStore,
		Interactions: pgStore,
		Logger:       log,
	}

	// Search-indexed pools are opt-in; Postgres stays the profile and
	// interaction source either way.
	if cfg.Database.Elasticsearch.Enabled {
		esClient, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			zapLog.Fatal("elasticsearch failed", zap.Error(err))
		}
		esStore, err := store.NewElasticStore(esClient.Client, log)
		if err != nil {
			zapLog.Fatal("elasticsearch store failed", zap.Error(err))
		}
		deps.Content = esStore
	}

	if cfg.Engine.Cache.Enabled {
		redis := database.NewRedis(cfg.Database.Redis)
		defer redis.Close()
		if err := redis.Ping(ctx); err != nil {
			// Cache is optional: a dead Redis means recompute, not abort.
			zapLog.Warn("redis unreachable, caching disabled", zap.Error(err))
		} else {
			deps.Cache = ranker.NewRedisCache(redis.Client, log)
		}
	}

	eng, err := ranker.New(cfg.Engine, deps)
	if err != nil {
		zapLog.Fatal("engine init failed", zap.Error(err))
	}

	if *metricsAddr != "" {
		startMetricsServer(*metricsAddr, zapLog)
	}

	start := time.Now()
	var out interface{}
	switch *cmd {
	case "rank":
		out, err = eng.Rank(ctx, *profileID, *contentType, *limit, *randomize)
	case "explain":
		out, err = eng.Explain(ctx, *profileID, *contentID, *contentType)
	case "feed":
		out, err = eng.Feed(ctx, *profileID, *limit, *randomize)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q: want rank, explain or feed\n", *cmd)
		os.Exit(2)
	}
	obs.RecordRank(ctx, *contentType, float64(time.Since(start).Milliseconds()), false)

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
	if err := enc.Encode(out); err != nil {
		zapLog.Fatal("encode output failed", zap.Error(err))
	}

	if *metricsAddr != "" {
		zapLog.Info("result written, serving metrics until interrupted",
			zap.String("addr", *metricsAddr))
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
	}
}

func startMetricsServer(addr string, log *zap.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		log.Info("metrics server listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Error("metrics server failed", zap.Error(err))
		}
	}()
}
