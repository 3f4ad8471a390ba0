package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/config"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/domain"
)

func ruleWith(keyword, product string, confidence float64) domain.InferenceRule {
	return domain.InferenceRule{Keyword: keyword, Product: product, Confidence: confidence}
}

func TestSetDefaults(t *testing.T) {
	cfg := &config.Config{}
	cfg.SetDefaults()

	assert.Equal(t, "lead-engine", cfg.Service.Name)
	assert.Equal(t, 8085, cfg.Service.Port)
	assert.Equal(t, "0 * * * *", cfg.Service.CronSchedule)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 80, cfg.Resolver.MatchThreshold)
	assert.InDelta(t, 0.3, cfg.Inference.ConfidenceFloor, 0.001)
	assert.InDelta(t, 30.0, cfg.Scoring.MinLeadScore, 0.001)
	assert.InDelta(t, 70.0, cfg.Scoring.HighThreshold, 0.001)
	assert.InDelta(t, 40.0, cfg.Scoring.MediumThreshold, 0.001)
	assert.Equal(t, 30*time.Second, cfg.Sources.FetchTimeout)
	assert.Equal(t, "leads", cfg.Elasticsearch.LeadIndex)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestSetDefaultsPreservesExplicitValues(t *testing.T) {
	cfg := &config.Config{}
	cfg.Service.Port = 9090
	cfg.Resolver.MatchThreshold = 90
	cfg.SetDefaults()

	assert.Equal(t, 9090, cfg.Service.Port)
	assert.Equal(t, 90, cfg.Resolver.MatchThreshold)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*config.Config) {},
		},
		{
			name:    "threshold out of range",
			mutate:  func(c *config.Config) { c.Resolver.MatchThreshold = 140 },
			wantErr: "match_threshold",
		},
		{
			name:    "confidence floor out of range",
			mutate:  func(c *config.Config) { c.Inference.ConfidenceFloor = 1.5 },
			wantErr: "confidence_floor",
		},
		{
			name: "medium above high",
			mutate: func(c *config.Config) {
				c.Scoring.MediumThreshold = 80
				c.Scoring.HighThreshold = 70
			},
			wantErr: "medium_threshold",
		},
		{
			name: "rule missing product",
			mutate: func(c *config.Config) {
				c.Inference.Rules = append(c.Inference.Rules, ruleWith("road construction", "", 0.9))
			},
			wantErr: "keyword and product are required",
		},
		{
			name: "rule confidence out of range",
			mutate: func(c *config.Config) {
				c.Inference.Rules = append(c.Inference.Rules, ruleWith("road construction", "Bitumen", 1.2))
			},
			wantErr: "confidence",
		},
		{
			name: "smtp without from address",
			mutate: func(c *config.Config) {
				c.Notifications.SMTPHost = "smtp.example.com"
				c.Notifications.From = ""
			},
			wantErr: "notifications.from",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.SetDefaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetDSN(t *testing.T) {
	db := config.DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "leads",
		Password: "secret",
		Database: "leadengine",
		SSLMode:  "require",
	}
	assert.Equal(t,
		"host=db.internal port=5433 user=leads password=secret dbname=leadengine sslmode=require",
		db.GetDSN())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
service:
  name: lead-engine
  port: 9191
resolver:
  match_threshold: 85
scoring:
  urgency_keywords: ["urgent", "immediate"]
notifications:
  smtp_host: smtp.example.com
  from: alerts@example.com
  default_recipient: sales@example.com
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Service.Port)
	assert.Equal(t, 85, cfg.Resolver.MatchThreshold)
	assert.Equal(t, []string{"urgent", "immediate"}, cfg.Scoring.UrgencyKeywords)
	assert.True(t, cfg.Notifications.Enabled())
	assert.Equal(t, "sales@example.com", cfg.Notifications.DefaultRecipient)
	// Unset sections still get defaults.
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 587, cfg.Notifications.SMTPPort)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := config.Load("/nonexistent/config.yaml")
	require.Error(t, err)
}

func TestOptionalBackendsDisabledByDefault(t *testing.T) {
	cfg := &config.Config{}
	cfg.SetDefaults()

	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Elasticsearch.Enabled())
	assert.False(t, cfg.Notifications.Enabled())
}
