// internal/common/config/config.go
package config

import (
	"fmt"
	"time"

	"talent-recommender/internal/engine/scoring"
)

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	MetricsAddr string `mapstructure:"metrics_addr"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type ElasticsearchConfig struct {
	Enabled   bool     `mapstructure:"enabled"`
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Index     string   `mapstructure:"index"`
}

// EngineConfig carries every tunable of the recommendation engine. It is
// resolved once at startup and handed to the ranker as an immutable
// value; there is no runtime reload.
type EngineConfig struct {
	Scoring scoring.Params `mapstructure:"scoring"`
	Ranking RankingConfig  `mapstructure:"ranking"`
	Cache   CacheConfig    `mapstructure:"cache"`
	// Synonyms extends the built-in synonym table, e.g. deployment
	// specific abbreviations. Applied once when the ranker is built.
	Synonyms map[string]string `mapstructure:"synonyms"`
}

type RankingConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
	MaxLimit     int `mapstructure:"max_limit"`
	MinLimit     int `mapstructure:"min_limit"`
	// QueryLimit bounds the candidate pool fetched per ranking call.
	QueryLimit int `mapstructure:"query_limit"`
	// ScoreWorkers bounds the per-item scoring fan-out.
	ScoreWorkers int `mapstructure:"score_workers"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Validate checks caller-facing limits and the scoring constants.
func (e EngineConfig) Validate() error {
	if e.Ranking.MinLimit < 1 {
		return fmt.Errorf("ranking.min_limit must be at least 1")
	}
	if e.Ranking.MaxLimit < e.Ranking.MinLimit {
		return fmt.Errorf("ranking.max_limit %d below min_limit %d",
			e.Ranking.MaxLimit, e.Ranking.MinLimit)
	}
	if e.Ranking.DefaultLimit < e.Ranking.MinLimit || e.Ranking.DefaultLimit > e.Ranking.MaxLimit {
		return fmt.Errorf("ranking.default_limit %d outside [%d, %d]",
			e.Ranking.DefaultLimit, e.Ranking.MinLimit, e.Ranking.MaxLimit)
	}
	if e.Ranking.QueryLimit < 1 {
		return fmt.Errorf("ranking.query_limit must be positive")
	}
	if e.Cache.Enabled && e.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive when caching is enabled")
	}
	return e.Scoring.Validate()
}

// DefaultEngineConfig returns the documented engine defaults: limits
// 1..50 (default 10), pool of 100 candidates, 5 minute cache.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Scoring: scoring.DefaultParams(),
		Ranking: RankingConfig{
			DefaultLimit: 10,
			MaxLimit:     50,
			MinLimit:     1,
			QueryLimit:   100,
			ScoreWorkers: 8,
		},
		Cache: CacheConfig{Enabled: true, TTL: 5 * time.Minute},
	}
}
