package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration. It is constructed once at
// process start and passed into each component's constructor; no component
// reads environment state directly.
type Config struct {
	HubSpot   HubSpotConfig   `yaml:"hubspot" mapstructure:"hubspot"`
	Tracker   TrackerConfig   `yaml:"tracker" mapstructure:"tracker"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Guide     GuideConfig     `yaml:"guide" mapstructure:"guide"`
	Signals   SignalsConfig   `yaml:"signals" mapstructure:"signals"`
	Batch     BatchConfig     `yaml:"batch" mapstructure:"batch"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Schedule  ScheduleConfig  `yaml:"schedule" mapstructure:"schedule"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// HubSpotConfig holds CRM API credentials and the target segment.
type HubSpotConfig struct {
	Token     string  `yaml:"token" mapstructure:"token"`
	BaseURL   string  `yaml:"base_url" mapstructure:"base_url"`
	SegmentID string  `yaml:"segment_id" mapstructure:"segment_id"`
	RateRPS   float64 `yaml:"rate_rps" mapstructure:"rate_rps"`
}

// TrackerConfig holds secondary-tracker (Notion) credentials. An empty token
// disables tracker publication entirely.
type TrackerConfig struct {
	Token  string `yaml:"token" mapstructure:"token"`
	TaskDB string `yaml:"task_db" mapstructure:"task_db"`
}

// Configured reports whether tracker publication is enabled.
func (t TrackerConfig) Configured() bool {
	return t.Token != "" && t.TaskDB != ""
}

// AnthropicConfig holds generation backend settings. An empty key disables
// AI generation and routes every analysis through the rule engine.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// Configured reports whether the generation backend is enabled.
func (a AnthropicConfig) Configured() bool {
	return a.Key != ""
}

// GuideConfig points at the externally maintained sales guidance document.
type GuideConfig struct {
	DocID    string `yaml:"doc_id" mapstructure:"doc_id"`
	MaxChars int    `yaml:"max_chars" mapstructure:"max_chars"`
}

// SignalsConfig configures the companionable external signal sources.
type SignalsConfig struct {
	EventsFile string `yaml:"events_file" mapstructure:"events_file"`
}

// BatchConfig configures batch orchestration pacing.
type BatchConfig struct {
	PacingInterval time.Duration `yaml:"pacing_interval" mapstructure:"pacing_interval"`
}

// ServerConfig configures the HTTP trigger surface.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// ScheduleConfig configures the batch timer trigger.
type ScheduleConfig struct {
	Cron    string `yaml:"cron" mapstructure:"cron"`
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("OUTREACH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("hubspot.base_url", "https://api.hubapi.com")
	v.SetDefault("hubspot.rate_rps", 8.0)
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 1200)
	v.SetDefault("guide.max_chars", 4000)
	v.SetDefault("batch.pacing_interval", 2*time.Second)
	v.SetDefault("server.port", 8080)
	v.SetDefault("schedule.cron", "0 4 * * 1-5")
	v.SetDefault("schedule.enabled", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the settings required for pipeline runs are present.
// Tracker and generation backend are optional collaborators and are not
// validated here.
func (c *Config) Validate() error {
	if c.HubSpot.Token == "" {
		return eris.New("config: hubspot.token is required")
	}
	if c.HubSpot.SegmentID == "" {
		return eris.New("config: hubspot.segment_id is required")
	}
	if c.Batch.PacingInterval < 0 {
		return eris.New("config: batch.pacing_interval must not be negative")
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
