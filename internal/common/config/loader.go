// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"talent-recommender/internal/engine/scoring"
)

// Load reads configuration from configs/config.yaml plus an optional
// per-environment overlay, with environment variables taking precedence.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Per-environment overlay, e.g. config.production.yaml.
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	if cfg.App.Environment == "" {
		cfg.App.Environment = env
	}

	if err := cfg.Engine.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills every zero-valued knob with the documented default
// so a missing config file still produces a working engine.
func applyDefaults(cfg *Config) {
	def := DefaultEngineConfig()

	if cfg.Engine.Scoring.Weights == (scoring.Weights{}) {
		cfg.Engine.Scoring.Weights = def.Scoring.Weights
	}
	if cfg.Engine.Scoring.Engagement.Views.Cap == 0 {
		cfg.Engine.Scoring.Engagement = def.Scoring.Engagement
	}
	if len(cfg.Engine.Scoring.Freshness) == 0 {
		cfg.Engine.Scoring.Freshness = def.Scoring.Freshness
	}
	if cfg.Engine.Scoring.Contextual.LocationMatch == 0 && cfg.Engine.Scoring.Contextual.AcademicYearMatch == 0 {
		cfg.Engine.Scoring.Contextual = def.Scoring.Contextual
	}
	if cfg.Engine.Scoring.Diversity.PenaltyPerOccurrence == 0 && cfg.Engine.Scoring.Diversity.MaxPenalty == 0 {
		cfg.Engine.Scoring.Diversity = def.Scoring.Diversity
	}
	if cfg.Engine.Ranking.MinLimit == 0 {
		cfg.Engine.Ranking.MinLimit = def.Ranking.MinLimit
	}
	if cfg.Engine.Ranking.MaxLimit == 0 {
		cfg.Engine.Ranking.MaxLimit = def.Ranking.MaxLimit
	}
	if cfg.Engine.Ranking.DefaultLimit == 0 {
		cfg.Engine.Ranking.DefaultLimit = def.Ranking.DefaultLimit
	}
	if cfg.Engine.Ranking.QueryLimit == 0 {
		cfg.Engine.Ranking.QueryLimit = def.Ranking.QueryLimit
	}
	if cfg.Engine.Ranking.ScoreWorkers == 0 {
		cfg.Engine.Ranking.ScoreWorkers = def.Ranking.ScoreWorkers
	}
	if cfg.Engine.Cache.TTL == 0 {
		cfg.Engine.Cache = def.Cache
	}

	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 10
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.App.Name == "" {
		cfg.App.Name = "talent-recommender"
	}
}

// loadEnvFile loads .env from the working directory or any parent that
// contains go.mod, so tests in nested packages pick it up too.
func loadEnvFile() {
	paths := []string{".env", "../.env", "../../.env"}
	if root := findProjectRoot(); root != "" {
		paths = append(paths, filepath.Join(root, ".env"))
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if godotenv.Load(path) == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
