package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Thresholds ThresholdsConfig `mapstructure:"thresholds"`
	Data       DataConfig       `mapstructure:"data"`
	Valuation  ValuationConfig  `mapstructure:"valuation"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type ThresholdsConfig struct {
	RebalanceShares float64 `mapstructure:"rebalance_shares"`
}

type DataConfig struct {
	Dir             string `mapstructure:"dir"`
	PositionsFile   string `mapstructure:"positions_file"`
	BenchmarkFile   string `mapstructure:"benchmark_file"`
	FuturesFile     string `mapstructure:"futures_file"`
	CorpActionsFile string `mapstructure:"corp_actions_file"`
}

type ValuationConfig struct {
	// Date pins the valuation date (YYYY-MM-DD); empty means today.
	Date string `mapstructure:"date"`
}

type CacheConfig struct {
	TTLMinutes int `mapstructure:"ttl_minutes"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func Load(configPath string) (*Config, error) {
	// Pick up a local .env if present; values already in the environment win.
	_ = godotenv.Load()

	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/quarterback")
	}

	// Read environment variables
	v.SetEnvPrefix("QB")
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; use defaults and environment
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Override with environment variables if set
	overrideFromEnv(&config)

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	// Threshold defaults
	v.SetDefault("thresholds.rebalance_shares", 1000)

	// Data file defaults
	v.SetDefault("data.dir", "./data")
	v.SetDefault("data.positions_file", "positions_physicalequities.csv")
	v.SetDefault("data.benchmark_file", "stockmarketdata.csv")
	v.SetDefault("data.futures_file", "futures_prices.csv")
	v.SetDefault("data.corp_actions_file", "corpactions.csv")

	// Valuation defaults
	v.SetDefault("valuation.date", "")

	// Cache defaults
	v.SetDefault("cache.ttl_minutes", 10)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func overrideFromEnv(config *Config) {
	if dir := os.Getenv("QB_DATA_DIR"); dir != "" {
		config.Data.Dir = dir
	}
	if date := os.Getenv("QB_VALUATION_DATE"); date != "" {
		config.Valuation.Date = date
	}
	if level := os.Getenv("QB_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// ValuationDate resolves the configured valuation date, defaulting to today.
func (c *Config) ValuationDate() (time.Time, error) {
	if c.Valuation.Date == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01-02", c.Valuation.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid valuation.date %q: %w", c.Valuation.Date, err)
	}
	return t, nil
}

// CacheTTL resolves the snapshot cache time-to-live.
func (c *Config) CacheTTL() time.Duration {
	minutes := c.Cache.TTLMinutes
	if minutes <= 0 {
		minutes = 10
	}
	return time.Duration(minutes) * time.Minute
}
