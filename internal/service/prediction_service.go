package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-prediction-service/internal/metrics"
	"github.com/cypherlabdev/match-prediction-service/internal/models"
	"github.com/cypherlabdev/match-prediction-service/pkg/engine"
)

// PredictionService orchestrates engine runs with result caching
type PredictionService struct {
	predictor Predictor
	cache     Cache
	logger    zerolog.Logger
}

// NewPredictionService creates a new prediction service
func NewPredictionService(predictor Predictor, cache Cache, logger zerolog.Logger) *PredictionService {
	return &PredictionService{
		predictor: predictor,
		cache:     cache,
		logger:    logger.With().Str("component", "prediction_service").Logger(),
	}
}

// Run runs the engine over one batch and caches the result. Cache
// failures are logged and counted but never fail the run.
func (s *PredictionService) Run(ctx context.Context, input engine.RunInput) (*models.RunResult, error) {
	result, err := s.predictor.Run(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("engine run failed: %w", err)
	}

	metrics.RunsTotal.Inc()
	metrics.PredictionsTotal.Add(float64(len(result.Predictions)))
	// Counters must never go backwards, so only count a positive delta
	if excluded := len(input.Fixtures) - len(result.Predictions); excluded > 0 {
		metrics.ExcludedFixturesTotal.Add(float64(excluded))
	}
	metrics.ParlayCandidatesTotal.Add(float64(len(result.Parlays)))

	if err := s.cache.SetRunResult(ctx, result); err != nil {
		metrics.CacheFailuresTotal.Inc()
		s.logger.Warn().
			Err(err).
			Str("batch_id", input.BatchID).
			Msg("failed to cache run result")
		// Don't fail the run on cache errors
	}

	s.logger.Info().
		Str("batch_id", input.BatchID).
		Str("run_id", result.RunID.String()).
		Int("predictions", len(result.Predictions)).
		Int("parlays", len(result.Parlays)).
		Int("errors", len(result.Errors)).
		Msg("batch run complete")

	return result, nil
}

// GetPrediction retrieves a cached fixture prediction
func (s *PredictionService) GetPrediction(ctx context.Context, fixtureID string) (*models.Prediction, error) {
	prediction, err := s.cache.GetPrediction(ctx, fixtureID)
	if err != nil {
		s.logger.Debug().
			Err(err).
			Str("fixture_id", fixtureID).
			Msg("prediction cache miss")
		return nil, fmt.Errorf("prediction not found for fixture=%s", fixtureID)
	}

	return prediction, nil
}

// GetParlays retrieves the cached ranked parlay candidates for a batch
func (s *PredictionService) GetParlays(ctx context.Context, batchID string) ([]*models.ParlayCandidate, error) {
	parlays, err := s.cache.GetParlays(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve parlays for batch: %w", err)
	}

	s.logger.Debug().
		Str("batch_id", batchID).
		Int("count", len(parlays)).
		Msg("retrieved parlays by batch")

	return parlays, nil
}
