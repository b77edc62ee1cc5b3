package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadConfig_Defaults tests loading configuration with default values
func TestLoadConfig_Defaults(t *testing.T) {
	// Load config without a file (should use defaults)
	config, err := LoadConfig("")

	require.NoError(t, err)
	require.NotNil(t, config)

	// Verify server defaults
	assert.Equal(t, 8082, config.Server.Port)
	assert.Equal(t, 30*time.Second, config.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, config.Server.WriteTimeout)

	// Verify Kafka defaults
	assert.Equal(t, []string{"localhost:9092"}, config.Kafka.Brokers)
	assert.Equal(t, "fixture_batches", config.Kafka.Topic)
	assert.Equal(t, "match-predictor", config.Kafka.GroupID)

	// Verify Redis defaults
	assert.Equal(t, "localhost:6379", config.Redis.Addr)
	assert.Equal(t, "", config.Redis.Password)
	assert.Equal(t, 0, config.Redis.DB)
	assert.Equal(t, 30*time.Minute, config.Redis.TTL)

	// Verify engine defaults
	assert.Equal(t, 5, config.Engine.FormWindow)
	assert.Equal(t, 0.5, config.Engine.SensitivityK)
	assert.Equal(t, 0.55, config.Engine.MinLegConfidence)
	assert.Equal(t, 3, config.Engine.MaxLegs)
	assert.Equal(t, 0.5, config.Engine.MaxCorrelation)
	assert.Equal(t, 10, config.Engine.MaxParlayCandidates)
	assert.Equal(t, 5000, config.Engine.MaxSubsets)
	assert.Equal(t, 0.5, config.Engine.SignalOnlyConfidenceCap)
	assert.Equal(t, 0.03, config.Engine.LegCountPenalty)
	assert.Equal(t, 0.25, config.Engine.SameLeagueDayCorrelation)
	assert.Equal(t, 4, config.Engine.Workers)
	assert.Equal(t, 0.10, config.Engine.DefaultHomeAdvantage)

	// Verify logging defaults
	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, "json", config.Logging.Format)
}

// TestLoadConfig_WithFile tests loading configuration from file
func TestLoadConfig_WithFile(t *testing.T) {
	// Create temporary config file
	tmpFile, err := os.CreateTemp("", "config-*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpFile.Name())

	configContent := `
server:
  port: 9090
  read_timeout: 45s
  write_timeout: 45s

kafka:
  brokers:
    - broker1:9092
    - broker2:9092
  topic: test_topic
  group_id: test_group

redis:
  addr: redis:6379
  password: test_password
  db: 1
  ttl: 1h

engine:
  form_window: 8
  sensitivity_k: 0.7
  min_leg_confidence: 0.60
  max_legs: 4
  max_correlation: 0.3
  max_parlay_candidates: 20
  max_subsets: 10000
  signal_only_confidence_cap: 0.4
  leg_count_penalty: 0.05
  same_league_day_correlation: 0.30
  workers: 8
  default_home_advantage: 0.08
  home_advantage:
    premier_league: 0.12

logging:
  level: debug
  format: console
`

	_, err = tmpFile.WriteString(configContent)
	require.NoError(t, err)
	tmpFile.Close()

	// Load config from file
	config, err := LoadConfig(tmpFile.Name())

	require.NoError(t, err)
	require.NotNil(t, config)

	// Verify server config
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, 45*time.Second, config.Server.ReadTimeout)
	assert.Equal(t, 45*time.Second, config.Server.WriteTimeout)

	// Verify Kafka config
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, config.Kafka.Brokers)
	assert.Equal(t, "test_topic", config.Kafka.Topic)
	assert.Equal(t, "test_group", config.Kafka.GroupID)

	// Verify Redis config
	assert.Equal(t, "redis:6379", config.Redis.Addr)
	assert.Equal(t, "test_password", config.Redis.Password)
	assert.Equal(t, 1, config.Redis.DB)
	assert.Equal(t, time.Hour, config.Redis.TTL)

	// Verify engine config
	assert.Equal(t, 8, config.Engine.FormWindow)
	assert.Equal(t, 0.7, config.Engine.SensitivityK)
	assert.Equal(t, 0.60, config.Engine.MinLegConfidence)
	assert.Equal(t, 4, config.Engine.MaxLegs)
	assert.Equal(t, 0.3, config.Engine.MaxCorrelation)
	assert.Equal(t, 20, config.Engine.MaxParlayCandidates)
	assert.Equal(t, 10000, config.Engine.MaxSubsets)
	assert.Equal(t, 0.4, config.Engine.SignalOnlyConfidenceCap)
	assert.Equal(t, 0.05, config.Engine.LegCountPenalty)
	assert.Equal(t, 0.30, config.Engine.SameLeagueDayCorrelation)
	assert.Equal(t, 8, config.Engine.Workers)
	assert.Equal(t, 0.08, config.Engine.DefaultHomeAdvantage)
	assert.Equal(t, map[string]float64{"premier_league": 0.12}, config.Engine.HomeAdvantage)

	// Verify logging config
	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, "console", config.Logging.Format)
}

// TestLoadConfig_InvalidFile tests loading with non-existent file
func TestLoadConfig_InvalidFile(t *testing.T) {
	config, err := LoadConfig("/nonexistent/config.yaml")

	assert.Error(t, err)
	assert.Nil(t, config)
}

// TestLoadConfig_MalformedFile tests loading with malformed YAML
func TestLoadConfig_MalformedFile(t *testing.T) {
	// Create temporary config file with malformed YAML
	tmpFile, err := os.CreateTemp("", "config-*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpFile.Name())

	malformedContent := `
server:
  port: invalid_port
  read_timeout: not_a_duration
`

	_, err = tmpFile.WriteString(malformedContent)
	require.NoError(t, err)
	tmpFile.Close()

	// Load config from file
	config, err := LoadConfig(tmpFile.Name())

	// Should error on unmarshal
	assert.Error(t, err)
	assert.Nil(t, config)
}

// TestLoadConfig_PartialFile tests loading with partial configuration
func TestLoadConfig_PartialFile(t *testing.T) {
	// Create temporary config file with partial config
	tmpFile, err := os.CreateTemp("", "config-*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpFile.Name())

	partialContent := `
server:
  port: 9090

engine:
  max_legs: 5

# Other configs will use defaults
`

	_, err = tmpFile.WriteString(partialContent)
	require.NoError(t, err)
	tmpFile.Close()

	// Load config from file
	config, err := LoadConfig(tmpFile.Name())

	require.NoError(t, err)
	require.NotNil(t, config)

	// Verify overridden values
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, 5, config.Engine.MaxLegs)

	// Verify defaults are still used for non-specified values
	assert.Equal(t, 30*time.Second, config.Server.ReadTimeout)
	assert.Equal(t, "fixture_batches", config.Kafka.Topic)
	assert.Equal(t, "localhost:6379", config.Redis.Addr)
	assert.Equal(t, 5, config.Engine.FormWindow)
}

// TestLoadConfig_EnvironmentVariables tests environment variable overrides
func TestLoadConfig_EnvironmentVariables(t *testing.T) {
	// Set environment variables
	os.Setenv("MATCH_PREDICTOR_SERVER_PORT", "7777")
	os.Setenv("MATCH_PREDICTOR_REDIS_ADDR", "env-redis:6379")
	os.Setenv("MATCH_PREDICTOR_KAFKA_TOPIC", "env_topic")
	defer func() {
		os.Unsetenv("MATCH_PREDICTOR_SERVER_PORT")
		os.Unsetenv("MATCH_PREDICTOR_REDIS_ADDR")
		os.Unsetenv("MATCH_PREDICTOR_KAFKA_TOPIC")
	}()

	// Load config (env vars should override defaults)
	config, err := LoadConfig("")

	require.NoError(t, err)
	require.NotNil(t, config)

	// Verify environment variables were used
	assert.Equal(t, 7777, config.Server.Port)
	assert.Equal(t, "env-redis:6379", config.Redis.Addr)
	assert.Equal(t, "env_topic", config.Kafka.Topic)
}

// TestToEngineParams tests conversion to engine parameters
func TestToEngineParams(t *testing.T) {
	engineConfig := EngineConfig{
		FormWindow:               6,
		SensitivityK:             0.6,
		MinLegConfidence:         0.58,
		MaxLegs:                  4,
		MaxCorrelation:           0.4,
		MaxParlayCandidates:      15,
		MaxSubsets:               2000,
		SignalOnlyConfidenceCap:  0.45,
		LegCountPenalty:          0.04,
		SameLeagueDayCorrelation: 0.20,
		Workers:                  6,
		DefaultHomeAdvantage:     0.09,
		HomeAdvantage:            map[string]float64{"la_liga": 0.11},
	}

	params := engineConfig.ToEngineParams()

	assert.Equal(t, 6, params.FormWindow)
	assert.Equal(t, 0.6, params.SensitivityK)
	assert.Equal(t, 0.58, params.MinLegConfidence)
	assert.Equal(t, 4, params.MaxLegs)
	assert.Equal(t, 0.4, params.MaxCorrelation)
	assert.Equal(t, 15, params.MaxParlayCandidates)
	assert.Equal(t, 2000, params.MaxSubsets)
	assert.Equal(t, 0.45, params.SignalOnlyConfidenceCap)
	assert.Equal(t, 0.04, params.LegCountPenalty)
	assert.Equal(t, 0.20, params.SameLeagueDayCorrelation)
	assert.Equal(t, 6, params.Workers)
	assert.Equal(t, 0.09, params.DefaultHomeAdvantage)
	assert.Equal(t, 0.11, params.HomeAdvantage["la_liga"])
}

// TestToEngineParams_CopiesHomeAdvantageMap tests that the league map is
// copied, not shared with the config
func TestToEngineParams_CopiesHomeAdvantageMap(t *testing.T) {
	engineConfig := EngineConfig{
		HomeAdvantage: map[string]float64{"serie_a": 0.08},
	}

	params := engineConfig.ToEngineParams()
	engineConfig.HomeAdvantage["serie_a"] = 0.99

	assert.Equal(t, 0.08, params.HomeAdvantage["serie_a"])
}

// TestKafkaConfig tests Kafka configuration
func TestKafkaConfig(t *testing.T) {
	tests := []struct {
		name   string
		config KafkaConfig
	}{
		{
			name: "Single broker",
			config: KafkaConfig{
				Brokers: []string{"localhost:9092"},
				Topic:   "test_topic",
				GroupID: "test_group",
			},
		},
		{
			name: "Multiple brokers",
			config: KafkaConfig{
				Brokers: []string{"broker1:9092", "broker2:9092", "broker3:9092"},
				Topic:   "test_topic",
				GroupID: "test_group",
			},
		},
		{
			name: "Production-like config",
			config: KafkaConfig{
				Brokers: []string{"kafka-1.example.com:9092", "kafka-2.example.com:9092"},
				Topic:   "fixture_batches_prod",
				GroupID: "match-predictor-prod",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.config.Brokers)
			assert.NotEmpty(t, tt.config.Topic)
			assert.NotEmpty(t, tt.config.GroupID)
		})
	}
}

// TestLoggingConfig tests logging configuration
func TestLoggingConfig(t *testing.T) {
	tests := []struct {
		name   string
		config LoggingConfig
	}{
		{
			name: "JSON production logging",
			config: LoggingConfig{
				Level:  "info",
				Format: "json",
			},
		},
		{
			name: "Console development logging",
			config: LoggingConfig{
				Level:  "debug",
				Format: "console",
			},
		},
		{
			name: "Error logging",
			config: LoggingConfig{
				Level:  "error",
				Format: "json",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validLevels := []string{"debug", "info", "warn", "error"}
			assert.Contains(t, validLevels, tt.config.Level)

			validFormats := []string{"json", "console"}
			assert.Contains(t, validFormats, tt.config.Format)
		})
	}
}

// TestConfig_AllFields tests that all config fields are properly set
func TestConfig_AllFields(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)
	require.NotNil(t, config)

	// Server
	assert.NotZero(t, config.Server.Port)
	assert.NotZero(t, config.Server.ReadTimeout)
	assert.NotZero(t, config.Server.WriteTimeout)

	// Kafka
	assert.NotEmpty(t, config.Kafka.Brokers)
	assert.NotEmpty(t, config.Kafka.Topic)
	assert.NotEmpty(t, config.Kafka.GroupID)

	// Redis
	assert.NotEmpty(t, config.Redis.Addr)
	assert.GreaterOrEqual(t, config.Redis.DB, 0)
	assert.NotZero(t, config.Redis.TTL)

	// Engine
	assert.NotZero(t, config.Engine.FormWindow)
	assert.NotZero(t, config.Engine.MinLegConfidence)
	assert.NotZero(t, config.Engine.MaxLegs)
	assert.NotZero(t, config.Engine.MaxSubsets)
	assert.NotZero(t, config.Engine.Workers)

	// Logging
	assert.NotEmpty(t, config.Logging.Level)
	assert.NotEmpty(t, config.Logging.Format)
}
