// Package config holds all configuration for the lead-engine service.
package config

import (
	"fmt"
	"time"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/domain"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/logger"
)

// Default configuration values.
const (
	defaultServiceName     = "lead-engine"
	defaultServiceVersion  = "1.0.0"
	defaultServicePort     = 8085
	defaultDBHost          = "localhost"
	defaultDBPort          = 5432
	defaultDBUser          = "postgres"
	defaultDBName          = "leadengine"
	defaultDBSSLMode       = "disable"
	defaultFetchTimeout    = 30 * time.Second
	defaultFetchRPS        = 1
	defaultItemsPerFeed    = 20
	defaultUserAgent       = "north-cloud-lead-engine/1.0"
	defaultMatchThreshold  = 80
	defaultConfidenceFloor = 0.3
	defaultMinLeadScore    = 30
	defaultUrgencyBonus    = 10.0
	defaultHighThreshold   = 70.0
	defaultMediumThreshold = 40.0
	defaultCronSchedule    = "0 * * * *"
	defaultSMTPPort        = 587
	defaultDedupCacheTTL   = 7 * 24 * time.Hour
	defaultRedisTimeout    = 5 * time.Second
	defaultLeadIndex       = "leads"
)

// Config is the root configuration for the service.
type Config struct {
	Service       ServiceConfig       `mapstructure:"service"       yaml:"service"`
	Database      DatabaseConfig      `mapstructure:"database"      yaml:"database"`
	Redis         RedisConfig         `mapstructure:"redis"         yaml:"redis"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch" yaml:"elasticsearch"`
	Sources       SourcesConfig       `mapstructure:"sources"       yaml:"sources"`
	Extraction    ExtractionConfig    `mapstructure:"extraction"    yaml:"extraction"`
	Resolver      ResolverConfig      `mapstructure:"resolver"      yaml:"resolver"`
	Inference     InferenceConfig     `mapstructure:"inference"     yaml:"inference"`
	Scoring       ScoringConfig       `mapstructure:"scoring"       yaml:"scoring"`
	Notifications NotificationConfig  `mapstructure:"notifications" yaml:"notifications"`
	Logging       logger.Config       `mapstructure:"logging"       yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name         string `mapstructure:"name"          yaml:"name"`
	Version      string `mapstructure:"version"       yaml:"version"`
	Port         int    `mapstructure:"port"          yaml:"port"`
	Debug        bool   `mapstructure:"debug"         yaml:"debug"`
	CronSchedule string `mapstructure:"cron_schedule" yaml:"cron_schedule"`
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"     yaml:"host"`
	Port     int    `mapstructure:"port"     yaml:"port"`
	User     string `mapstructure:"user"     yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`
	Database string `mapstructure:"database" yaml:"database"`
	SSLMode  string `mapstructure:"sslmode"  yaml:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string.
func (d DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

// RedisConfig holds the optional signal-dedup cache configuration.
// An empty Address disables the cache; dedup then falls back to the store.
type RedisConfig struct {
	Address  string        `mapstructure:"address"   yaml:"address"`
	Password string        `mapstructure:"password"  yaml:"password"`
	Database int           `mapstructure:"database"  yaml:"database"`
	Timeout  time.Duration `mapstructure:"timeout"   yaml:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
}

// Enabled reports whether the dedup cache is configured.
func (r RedisConfig) Enabled() bool { return r.Address != "" }

// ElasticsearchConfig holds the optional lead search index configuration.
// An empty URL disables indexing.
type ElasticsearchConfig struct {
	URL       string `mapstructure:"url"        yaml:"url"`
	Username  string `mapstructure:"username"   yaml:"username"`
	Password  string `mapstructure:"password"   yaml:"password"`
	LeadIndex string `mapstructure:"lead_index" yaml:"lead_index"`
}

// Enabled reports whether lead indexing is configured.
func (e ElasticsearchConfig) Enabled() bool { return e.URL != "" }

// FeedConfig describes one RSS feed source.
type FeedConfig struct {
	Name string `mapstructure:"name" yaml:"name"`
	URL  string `mapstructure:"url"  yaml:"url"`
}

// TenderSourceConfig describes one HTML tender-portal source.
type TenderSourceConfig struct {
	Name        string `mapstructure:"name"         yaml:"name"`
	URL         string `mapstructure:"url"          yaml:"url"`
	RowSelector string `mapstructure:"row_selector" yaml:"row_selector"`
}

// SourcesConfig holds all source adapter configuration.
type SourcesConfig struct {
	Feeds        []FeedConfig         `mapstructure:"feeds"          yaml:"feeds"`
	Tenders      []TenderSourceConfig `mapstructure:"tenders"        yaml:"tenders"`
	DemoEnabled  bool                 `mapstructure:"demo_enabled"   yaml:"demo_enabled"`
	ItemsPerFeed int                  `mapstructure:"items_per_feed" yaml:"items_per_feed"`
	FetchTimeout time.Duration        `mapstructure:"fetch_timeout"  yaml:"fetch_timeout"`
	// FetchRPS is the per-domain request rate limit.
	FetchRPS  int    `mapstructure:"fetch_rps"  yaml:"fetch_rps"`
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
	// RelevantKeywords pre-filter fetched items: a signal containing none
	// of these is never emitted. Empty disables the filter.
	RelevantKeywords []string `mapstructure:"relevant_keywords" yaml:"relevant_keywords"`
}

// ExtractionConfig holds entity and keyword extraction configuration.
type ExtractionConfig struct {
	// KnownCompanies is the dictionary of organizations matched before the
	// capitalized-span heuristic runs.
	KnownCompanies []string `mapstructure:"known_companies" yaml:"known_companies"`
	// States recognized for territory routing.
	States []string `mapstructure:"states" yaml:"states"`
}

// ResolverConfig holds fuzzy company matching configuration.
type ResolverConfig struct {
	// MatchThreshold is the inclusive similarity score (0-100) at or above
	// which a candidate name resolves to an existing company.
	MatchThreshold int `mapstructure:"match_threshold" yaml:"match_threshold"`
}

// InferenceConfig holds the product inference rule table.
type InferenceConfig struct {
	// Rules maps keywords to products. Empty means the compiled-in default
	// catalog is used.
	Rules []domain.InferenceRule `mapstructure:"rules" yaml:"rules"`
	// ConfidenceFloor drops recommendations below this confidence.
	ConfidenceFloor float64 `mapstructure:"confidence_floor" yaml:"confidence_floor"`
}

// ScoringConfig holds lead scoring configuration.
type ScoringConfig struct {
	UrgencyKeywords []string `mapstructure:"urgency_keywords" yaml:"urgency_keywords"`
	UrgencyBonus    float64  `mapstructure:"urgency_bonus"    yaml:"urgency_bonus"`
	HighThreshold   float64  `mapstructure:"high_threshold"   yaml:"high_threshold"`
	MediumThreshold float64  `mapstructure:"medium_threshold" yaml:"medium_threshold"`
	// MinLeadScore drops leads scoring below this floor.
	MinLeadScore float64 `mapstructure:"min_lead_score" yaml:"min_lead_score"`
}

// NotificationConfig holds lead alert email configuration. An empty SMTP
// host disables notifications.
type NotificationConfig struct {
	SMTPHost string `mapstructure:"smtp_host" yaml:"smtp_host"`
	SMTPPort int    `mapstructure:"smtp_port" yaml:"smtp_port"`
	SMTPUser string `mapstructure:"smtp_user" yaml:"smtp_user"`
	Password string `mapstructure:"password"  yaml:"password"`
	From     string `mapstructure:"from"      yaml:"from"`
	// DefaultRecipient receives alerts for leads with no territory match.
	DefaultRecipient string `mapstructure:"default_recipient" yaml:"default_recipient"`
	// TerritoryRecipients routes alerts by territory state.
	TerritoryRecipients map[string]string `mapstructure:"territory_recipients" yaml:"territory_recipients"`
	// DashboardURL is the base URL used to build lead dossier links.
	DashboardURL string `mapstructure:"dashboard_url" yaml:"dashboard_url"`
}

// Enabled reports whether email notifications are configured.
func (n NotificationConfig) Enabled() bool { return n.SMTPHost != "" }

// SetDefaults applies default values wherever the loaded config is silent.
func (c *Config) SetDefaults() {
	if c.Service.Name == "" {
		c.Service.Name = defaultServiceName
	}
	if c.Service.Version == "" {
		c.Service.Version = defaultServiceVersion
	}
	if c.Service.Port == 0 {
		c.Service.Port = defaultServicePort
	}
	if c.Service.CronSchedule == "" {
		c.Service.CronSchedule = defaultCronSchedule
	}
	if c.Database.Host == "" {
		c.Database.Host = defaultDBHost
	}
	if c.Database.Port == 0 {
		c.Database.Port = defaultDBPort
	}
	if c.Database.User == "" {
		c.Database.User = defaultDBUser
	}
	if c.Database.Database == "" {
		c.Database.Database = defaultDBName
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = defaultDBSSLMode
	}
	if c.Redis.Timeout == 0 {
		c.Redis.Timeout = defaultRedisTimeout
	}
	if c.Redis.CacheTTL == 0 {
		c.Redis.CacheTTL = defaultDedupCacheTTL
	}
	if c.Elasticsearch.LeadIndex == "" {
		c.Elasticsearch.LeadIndex = defaultLeadIndex
	}
	if c.Sources.ItemsPerFeed == 0 {
		c.Sources.ItemsPerFeed = defaultItemsPerFeed
	}
	if c.Sources.FetchTimeout == 0 {
		c.Sources.FetchTimeout = defaultFetchTimeout
	}
	if c.Sources.FetchRPS == 0 {
		c.Sources.FetchRPS = defaultFetchRPS
	}
	if c.Sources.UserAgent == "" {
		c.Sources.UserAgent = defaultUserAgent
	}
	if c.Resolver.MatchThreshold == 0 {
		c.Resolver.MatchThreshold = defaultMatchThreshold
	}
	if c.Inference.ConfidenceFloor == 0 {
		c.Inference.ConfidenceFloor = defaultConfidenceFloor
	}
	if c.Scoring.UrgencyBonus == 0 {
		c.Scoring.UrgencyBonus = defaultUrgencyBonus
	}
	if c.Scoring.HighThreshold == 0 {
		c.Scoring.HighThreshold = defaultHighThreshold
	}
	if c.Scoring.MediumThreshold == 0 {
		c.Scoring.MediumThreshold = defaultMediumThreshold
	}
	if c.Scoring.MinLeadScore == 0 {
		c.Scoring.MinLeadScore = defaultMinLeadScore
	}
	if c.Notifications.SMTPPort == 0 {
		c.Notifications.SMTPPort = defaultSMTPPort
	}
	c.Logging.SetDefaults()
}

// Validate checks configuration consistency after defaults are applied.
func (c *Config) Validate() error {
	if c.Resolver.MatchThreshold < 0 || c.Resolver.MatchThreshold > 100 {
		return fmt.Errorf("resolver.match_threshold %d out of range [0,100]", c.Resolver.MatchThreshold)
	}
	if c.Inference.ConfidenceFloor < 0 || c.Inference.ConfidenceFloor > 1 {
		return fmt.Errorf("inference.confidence_floor %.2f out of range [0,1]", c.Inference.ConfidenceFloor)
	}
	if c.Scoring.MediumThreshold > c.Scoring.HighThreshold {
		return fmt.Errorf("scoring.medium_threshold %.0f exceeds high_threshold %.0f",
			c.Scoring.MediumThreshold, c.Scoring.HighThreshold)
	}
	for i, rule := range c.Inference.Rules {
		if rule.Keyword == "" || rule.Product == "" {
			return fmt.Errorf("inference.rules[%d]: keyword and product are required", i)
		}
		if rule.Confidence <= 0 || rule.Confidence > 1 {
			return fmt.Errorf("inference.rules[%d]: confidence %.2f out of range (0,1]", i, rule.Confidence)
		}
	}
	if c.Notifications.Enabled() && c.Notifications.From == "" {
		return fmt.Errorf("notifications.from is required when SMTP is configured")
	}
	return nil
}
