package cmd

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/job-radar/internal/filtering"
	"github.com/spigell/job-radar/internal/warmup"
)

const (
	app       = "job-radar"
	envPrefix = "JOB_RADAR"
)

type Config struct {
	UserID  string           `mapstructure:"user-id"`
	Adzuna  *AdzunaConfig    `mapstructure:"adzuna"`
	Cache   *CacheConfig     `mapstructure:"cache"`
	AI      *AIConfig        `mapstructure:"ai"`
	Scoring *ScoringConfig   `mapstructure:"scoring"`
	Filters filtering.Config `mapstructure:"filters"`
	Server  *ServerConfig    `mapstructure:"server"`
	Warmup  *WarmupConfig    `mapstructure:"warmup"`
}

type AdzunaConfig struct {
	AppID      string        `mapstructure:"app-id"`
	AppKey     string        `mapstructure:"app-key"`
	AppKeyFile string        `mapstructure:"app-key-file"`
	Country    string        `mapstructure:"country"`
	Timeout    time.Duration `mapstructure:"timeout"`
	BaseURL    string        `mapstructure:"base-url"`
	UserAgent  string        `mapstructure:"user-agent"`
}

type CacheConfig struct {
	Backend  string        `mapstructure:"backend"`
	TTL      time.Duration `mapstructure:"ttl"`
	RedisURL string        `mapstructure:"redis-url"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string        `mapstructure:"api-key"`
	APIKeyFile   string        `mapstructure:"api-key-file"`
	Model        string        `mapstructure:"model"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxLogLength int           `mapstructure:"max-log-length"`
}

type ScoringConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type WarmupConfig struct {
	Schedule string         `mapstructure:"schedule"`
	Queries  []warmup.Query `mapstructure:"queries"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "job-radar aggregates job listings and ranks them against your resume",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is job-radar.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("user-id", "", "user the resume and applications belong to")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("user-id", rootCmd.PersistentFlags().Lookup("user-id"))

	setDefaults()

	for key, env := range map[string]string{
		"adzuna.app-id":          "ADZUNA_APP_ID",
		"adzuna.app-key":         "ADZUNA_APP_KEY",
		"adzuna.app-key-file":    "ADZUNA_APP_KEY_FILE",
		"ai.gemini.api-key":      "GEMINI_API_KEY",
		"ai.gemini.api-key-file": "GEMINI_API_KEY_FILE",
		"cache.redis-url":        "REDIS_URL",
	} {
		if err := viper.BindEnv(key, envPrefix+"_"+envKey(key), env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}
}

func setDefaults() {
	viper.SetDefault("adzuna.country", "us")
	viper.SetDefault("adzuna.timeout", 10*time.Second)
	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.ttl", 6*time.Hour)
	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.gemini.timeout", 15*time.Second)
	viper.SetDefault("ai.gemini.max-log-length", 200)
	viper.SetDefault("scoring.concurrency", 8)
	viper.SetDefault("server.addr", ":3001")
}

func envKey(key string) string {
	return strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

func initConfig() {
	// .env is optional.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Every setting has a default or an env variable, so only an explicit
	// or broken config file is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config.Adzuna == nil {
		config.Adzuna = &AdzunaConfig{}
	}
	if config.Cache == nil {
		config.Cache = &CacheConfig{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.Scoring == nil {
		config.Scoring = &ScoringConfig{}
	}
	if config.Server == nil {
		config.Server = &ServerConfig{}
	}

	return config, nil
}
