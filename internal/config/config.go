package config

import (
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Search SearchConfig `yaml:"search" mapstructure:"search"`
	Fetch  FetchConfig  `yaml:"fetch" mapstructure:"fetch"`
	Rank   RankConfig   `yaml:"rank" mapstructure:"rank"`
	Batch  BatchConfig  `yaml:"batch" mapstructure:"batch"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// SearchConfig configures the HTML search surface.
type SearchConfig struct {
	BaseURL          string `yaml:"base_url" mapstructure:"base_url"`
	ResultSelector   string `yaml:"result_selector" mapstructure:"result_selector"`
	PacingMs         int    `yaml:"pacing_ms" mapstructure:"pacing_ms"`
	TimeoutSecs      int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	BreakerFailures  int    `yaml:"breaker_failures" mapstructure:"breaker_failures"`
	BreakerResetSecs int    `yaml:"breaker_reset_secs" mapstructure:"breaker_reset_secs"`
}

// Pacing returns the delay between successive queries of one record.
func (c SearchConfig) Pacing() time.Duration {
	return time.Duration(c.PacingMs) * time.Millisecond
}

// Timeout returns the per-search deadline.
func (c SearchConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// FetchConfig configures candidate page fetching.
type FetchConfig struct {
	UserAgent    string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs  int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxBodyBytes int64  `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	MaxAttempts  int    `yaml:"max_attempts" mapstructure:"max_attempts"`
}

// Timeout returns the per-fetch deadline.
func (c FetchConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// RankConfig configures domain preference ranking.
type RankConfig struct {
	DefaultSources  []string          `yaml:"default_sources" mapstructure:"default_sources"`
	Sources         map[string]string `yaml:"sources" mapstructure:"sources"`
	ExcludePatterns []string          `yaml:"exclude_patterns" mapstructure:"exclude_patterns"`
}

// BatchConfig configures batch processing.
type BatchConfig struct {
	Concurrency   int `yaml:"concurrency" mapstructure:"concurrency"`
	ProgressEvery int `yaml:"progress_every" mapstructure:"progress_every"`
	MaxCandidates int `yaml:"max_candidates" mapstructure:"max_candidates"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DefaultSources maps source priority keys to retailer domains.
func DefaultSources() map[string]string {
	return map[string]string{
		"amazon":      "amazon.com",
		"amazon_ca":   "amazon.ca",
		"iherb":       "iherb.com",
		"walmart":     "walmart.com",
		"walmart_ca":  "walmart.ca",
		"target":      "target.com",
		"costco":      "costco.com",
		"cvs":         "cvs.com",
		"walgreens":   "walgreens.com",
		"vitacost":    "vitacost.com",
		"well":        "well.ca",
		"shoppers":    "shoppersdrugmart.ca",
		"londondrugs": "londondrugs.com",
		"sephora":     "sephora.com",
		"ulta":        "ulta.com",
	}
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("RESOLVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "auto")
	v.SetDefault("server.port", 8080)
	v.SetDefault("search.base_url", "https://html.duckduckgo.com/html/")
	v.SetDefault("search.result_selector", "a.result__a")
	v.SetDefault("search.pacing_ms", 350)
	v.SetDefault("search.timeout_secs", 15)
	v.SetDefault("search.breaker_failures", 5)
	v.SetDefault("search.breaker_reset_secs", 60)
	v.SetDefault("fetch.user_agent", "catalog-resolver/1.0 (+product-url-verification)")
	v.SetDefault("fetch.timeout_secs", 20)
	v.SetDefault("fetch.max_body_bytes", 2<<20)
	v.SetDefault("fetch.max_attempts", 1)
	v.SetDefault("rank.default_sources", []string{"amazon", "iherb", "walmart", "well", "shoppers", "londondrugs"})
	v.SetDefault("rank.sources", DefaultSources())
	v.SetDefault("rank.exclude_patterns", []string{
		"cart", "checkout", "basket",
		"login", "logout", "signin", "sign-in", "register",
		"account", "accounts", "my-account",
		"faq", "faqs", "help",
		"blog", "blogs", "article", "articles", "news",
		"*policy", "policies", "privacy", "terms",
	})
	v.SetDefault("batch.concurrency", 5)
	v.SetDefault("batch.progress_every", 25)
	v.SetDefault("batch.max_candidates", 10)

	// Read config file (optional)
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

// InitLogger initializes the global zap logger. Format "auto" picks the
// console encoder when stderr is a terminal and JSON otherwise.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if resolveFormat(cfg.Format, os.Stderr.Fd()) == "console" {
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

func resolveFormat(format string, fd uintptr) string {
	switch format {
	case "console", "json":
		return format
	}
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return "console"
	}
	return "json"
}
