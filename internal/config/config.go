package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cypherlabdev/match-prediction-service/internal/models"
)

// Config holds all configuration for match-prediction-service
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Kafka   KafkaConfig   `mapstructure:"kafka"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Engine  EngineConfig  `mapstructure:"engine"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"` // Topic to consume from (fixture_batches)
	GroupID string   `mapstructure:"group_id"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// EngineConfig holds the prediction engine parameters
type EngineConfig struct {
	FormWindow               int     `mapstructure:"form_window"`                 // recent-match lookback count
	SensitivityK             float64 `mapstructure:"sensitivity_k"`               // signal-blend strength
	MinLegConfidence         float64 `mapstructure:"min_leg_confidence"`          // parlay leg threshold
	MaxLegs                  int     `mapstructure:"max_legs"`                    // max parlay size
	MaxCorrelation           float64 `mapstructure:"max_correlation"`             // pairwise correlation ceiling
	MaxParlayCandidates      int     `mapstructure:"max_parlay_candidates"`       // ranked output truncation (0 = unlimited)
	MaxSubsets               int     `mapstructure:"max_subsets"`                 // subset enumeration cutoff
	SignalOnlyConfidenceCap  float64 `mapstructure:"signal_only_confidence_cap"`  // confidence ceiling without market data
	LegCountPenalty          float64 `mapstructure:"leg_count_penalty"`           // confidence penalty per extra leg
	SameLeagueDayCorrelation float64 `mapstructure:"same_league_day_correlation"` // assumed correlation for shared league+date
	Workers                  int     `mapstructure:"workers"`                     // per-fixture estimation parallelism

	DefaultHomeAdvantage float64 `mapstructure:"default_home_advantage"`
	// HomeAdvantage maps league id to its home-advantage factor. Loaded once
	// and passed by value into the engine, never mutated afterwards.
	HomeAdvantage map[string]float64 `mapstructure:"home_advantage"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.port", 8082)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "fixture_batches")
	v.SetDefault("kafka.group_id", "match-predictor")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 30*time.Minute)

	v.SetDefault("engine.form_window", 5)
	v.SetDefault("engine.sensitivity_k", 0.5)
	v.SetDefault("engine.min_leg_confidence", 0.55)
	v.SetDefault("engine.max_legs", 3)
	v.SetDefault("engine.max_correlation", 0.5)
	v.SetDefault("engine.max_parlay_candidates", 10)
	v.SetDefault("engine.max_subsets", 5000)
	v.SetDefault("engine.signal_only_confidence_cap", 0.5)
	v.SetDefault("engine.leg_count_penalty", 0.03)
	v.SetDefault("engine.same_league_day_correlation", 0.25)
	v.SetDefault("engine.workers", 4)
	v.SetDefault("engine.default_home_advantage", 0.10)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	v.SetEnvPrefix("MATCH_PREDICTOR")
	v.AutomaticEnv()
	// Replace . with _ for environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Unmarshal to struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// ToEngineParams converts config to engine parameters
func (c *EngineConfig) ToEngineParams() models.EngineParams {
	homeAdvantage := make(map[string]float64, len(c.HomeAdvantage))
	for league, factor := range c.HomeAdvantage {
		homeAdvantage[league] = factor
	}

	return models.EngineParams{
		FormWindow:               c.FormWindow,
		SensitivityK:             c.SensitivityK,
		MinLegConfidence:         c.MinLegConfidence,
		MaxLegs:                  c.MaxLegs,
		MaxCorrelation:           c.MaxCorrelation,
		MaxParlayCandidates:      c.MaxParlayCandidates,
		MaxSubsets:               c.MaxSubsets,
		SignalOnlyConfidenceCap:  c.SignalOnlyConfidenceCap,
		LegCountPenalty:          c.LegCountPenalty,
		SameLeagueDayCorrelation: c.SameLeagueDayCorrelation,
		Workers:                  c.Workers,
		DefaultHomeAdvantage:     c.DefaultHomeAdvantage,
		HomeAdvantage:            homeAdvantage,
	}
}
