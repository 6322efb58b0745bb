// Package config layers trident.yaml, TRIDENT_* environment variables and
// command-line flags into one Config.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/novapath/trident/internal/bank"
	"github.com/novapath/trident/internal/llm"
	"github.com/novapath/trident/internal/logging"
	"github.com/novapath/trident/internal/ordering"
	"github.com/novapath/trident/internal/report"
)

// EnvPrefix prefixes every environment override, e.g. TRIDENT_SERVER_ADDR.
const EnvPrefix = "TRIDENT"

// Config is the resolved configuration.
type Config struct {
	// DB is the SQLite path. Empty means store.DefaultDBPath.
	DB string `mapstructure:"db"`
	// Bank is the question bank file. Empty means the bundled bank.
	Bank              string         `mapstructure:"bank"`
	QuestionsPerTrait int            `mapstructure:"questions_per_trait"`
	TopN              int            `mapstructure:"top_n"`
	Log               logging.Config `mapstructure:"log"`
	Server            ServerConfig   `mapstructure:"server"`
	Cache             CacheConfig    `mapstructure:"cache"`
	LLM               llm.Config     `mapstructure:"llm"`
}

// ServerConfig configures `trident serve`.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	CORS            []string      `mapstructure:"cors"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// CacheConfig sizes the ordering cache.
type CacheConfig struct {
	Size int `mapstructure:"size"`
}

var envReplacer = strings.NewReplacer(".", "_")

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		QuestionsPerTrait: bank.DefaultQuestionsPerTrait,
		TopN:              report.DefaultTopN,
		Log:               logging.Config{Level: "info"},
		Server: ServerConfig{
			Addr:            "127.0.0.1:8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Cache: CacheConfig{Size: ordering.DefaultCacheSize},
		LLM:   llm.DefaultConfig(),
	}
}

// SetDefaults registers every key with v so environment variables can
// override keys that appear in no config file.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("db", d.DB)
	v.SetDefault("bank", d.Bank)
	v.SetDefault("questions_per_trait", d.QuestionsPerTrait)
	v.SetDefault("top_n", d.TopN)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.development", d.Log.Development)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.cors", d.Server.CORS)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("cache.size", d.Cache.Size)

	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.timeout", d.LLM.Timeout)
	v.SetDefault("llm.retry.max_attempts", d.LLM.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.LLM.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.LLM.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.LLM.Retry.Multiplier)
	providers := map[string]llm.ProviderConfig{
		llm.ProviderAnthropic:  d.LLM.Anthropic,
		llm.ProviderOpenAI:     d.LLM.OpenAI,
		llm.ProviderGemini:     d.LLM.Gemini,
		llm.ProviderOpenRouter: d.LLM.OpenRouter,
	}
	for name, pc := range providers {
		v.SetDefault("llm."+name+".api_key", pc.APIKey)
		v.SetDefault("llm."+name+".model", pc.Model)
		v.SetDefault("llm."+name+".base_url", pc.BaseURL)
	}
}

// NewViper returns a viper instance with defaults, config search paths and
// environment binding set up.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigName("trident")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "trident"))
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()
	return v
}

// Load reads the config file (path when set, else the search paths),
// decodes v into a Config, discovers an LLM provider from the conventional
// API key variables when none is configured, and validates the result. A
// missing config file is only an error when path names it explicitly.
func Load(v *viper.Viper, path string, getenv func(string) string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if getenv != nil {
		cfg.LLM, _ = llm.Discover(cfg.LLM, getenv)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and the LLM selection.
func (c Config) Validate() error {
	if c.QuestionsPerTrait < 1 {
		return fmt.Errorf("questions_per_trait must be at least 1, got %d", c.QuestionsPerTrait)
	}
	if c.TopN < 0 {
		return fmt.Errorf("top_n must not be negative, got %d", c.TopN)
	}
	if c.Cache.Size < 1 {
		return fmt.Errorf("cache.size must be at least 1, got %d", c.Cache.Size)
	}
	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	return nil
}

// Catalog returns the default catalog with the configured question count.
func (c Config) Catalog() bank.Catalog {
	cat := bank.DefaultCatalog()
	cat.QuestionsPerTrait = c.QuestionsPerTrait
	return cat
}
