// internal/common/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultEngineConfig(t *testing.T) {
	cfg := DefaultEngineConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 10, cfg.Ranking.DefaultLimit)
	assert.Equal(t, 50, cfg.Ranking.MaxLimit)
	assert.Equal(t, 1, cfg.Ranking.MinLimit)
	assert.Equal(t, 100, cfg.Ranking.QueryLimit)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
}

func TestEngineConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EngineConfig)
	}{
		{"min limit below one", func(c *EngineConfig) { c.Ranking.MinLimit = 0 }},
		{"max below min", func(c *EngineConfig) { c.Ranking.MaxLimit = 0 }},
		{"default outside range", func(c *EngineConfig) { c.Ranking.DefaultLimit = 60 }},
		{"query limit zero", func(c *EngineConfig) { c.Ranking.QueryLimit = 0 }},
		{"cache enabled without ttl", func(c *EngineConfig) { c.Cache.TTL = 0 }},
		{"scoring weights break", func(c *EngineConfig) { c.Scoring.Weights.Engagement = 99 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultEngineConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_FallsBackToDefaults(t *testing.T) {
	// No config file is reachable from this package directory, so Load
	// must return a fully defaulted, valid configuration.
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "talent-recommender", cfg.App.Name)
	assert.Equal(t, 10, cfg.Engine.Ranking.DefaultLimit)
	assert.Equal(t, 40.0, cfg.Engine.Scoring.Weights.SkillMatch)
	assert.NotEmpty(t, cfg.Engine.Scoring.Freshness)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Engine.Validate())
}

func TestPostgresConfig_GetDSN(t *testing.T) {
	cfg := PostgresConfig{
		Host: "localhost", Port: 5432, Database: "talent",
		User: "app", Password: "secret", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=app password=secret dbname=talent sslmode=disable",
		cfg.GetDSN())
}
