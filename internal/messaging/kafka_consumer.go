package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/cypherlabdev/match-prediction-service/internal/models"
	"github.com/cypherlabdev/match-prediction-service/internal/service"
	"github.com/cypherlabdev/match-prediction-service/pkg/engine"
)

// KafkaConsumer consumes fixture batches from Kafka and runs them through
// the prediction engine
type KafkaConsumer struct {
	reader    *kafka.Reader
	predictor service.Predictor
	logger    zerolog.Logger
}

// KafkaConsumerConfig holds Kafka consumer configuration
type KafkaConsumerConfig struct {
	Brokers []string // e.g., ["localhost:9092"]
	Topic   string   // e.g., "fixture_batches"
	GroupID string   // e.g., "match-predictor"
}

// NewKafkaConsumer creates a new Kafka consumer
func NewKafkaConsumer(
	config KafkaConsumerConfig,
	predictor service.Predictor,
	logger zerolog.Logger,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        config.Brokers,
		Topic:          config.Topic,
		GroupID:        config.GroupID,
		MinBytes:       1e3,  // 1KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: 1000, // Commit every 1 second
	})

	return &KafkaConsumer{
		reader:    reader,
		predictor: predictor,
		logger:    logger.With().Str("component", "kafka_consumer").Logger(),
	}
}

// Start begins consuming messages from Kafka
func (c *KafkaConsumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("topic", c.reader.Config().Topic).
		Str("group_id", c.reader.Config().GroupID).
		Msg("started consuming from Kafka")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("stopping Kafka consumer")
			return c.reader.Close()

		default:
			// Read message
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if err == context.Canceled {
					return nil
				}
				c.logger.Error().Err(err).Msg("failed to fetch message")
				continue
			}

			// Process message
			if err := c.processMessage(ctx, msg); err != nil {
				c.logger.Error().
					Err(err).
					Int64("offset", msg.Offset).
					Str("key", string(msg.Key)).
					Msg("failed to process message")
				// Don't commit if processing failed
				continue
			}

			// Commit message
			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error().Err(err).Msg("failed to commit message")
			}
		}
	}
}

// processMessage processes a single Kafka message
func (c *KafkaConsumer) processMessage(ctx context.Context, msg kafka.Message) error {
	// Parse message
	var kafkaMsg models.KafkaFixtureBatchMessage
	if err := json.Unmarshal(msg.Value, &kafkaMsg); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}

	c.logger.Debug().
		Int("fixture_count", len(kafkaMsg.Fixtures)).
		Int("quote_count", len(kafkaMsg.Quotes)).
		Str("batch_id", kafkaMsg.BatchID).
		Msg("processing fixture batch")

	// Run predictions
	result, err := c.predictor.Run(ctx, engine.RunInput{
		BatchID:  kafkaMsg.BatchID,
		Fixtures: kafkaMsg.Fixtures,
		Quotes:   kafkaMsg.Quotes,
		Signals:  kafkaMsg.Signals,
	})
	if err != nil {
		return fmt.Errorf("failed to run predictions: %w", err)
	}

	c.logger.Info().
		Int("fixture_count", len(kafkaMsg.Fixtures)).
		Int("prediction_count", len(result.Predictions)).
		Int("parlay_count", len(result.Parlays)).
		Str("batch_id", kafkaMsg.BatchID).
		Msg("processed fixture batch")

	return nil
}

// Close closes the Kafka reader
func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}
