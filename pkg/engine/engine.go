package engine

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cypherlabdev/match-prediction-service/internal/models"
)

// Engine is the single entry point over the normalizer, aggregator,
// estimator, and composer. It holds no state between runs; every Run
// computes fresh from its inputs.
type Engine struct {
	params     models.EngineParams
	normalizer *Normalizer
	aggregator *Aggregator
	estimator  *Estimator
	composer   *Composer
	logger     zerolog.Logger
}

// RunInput is one batch of fully-materialized inputs. The engine performs
// no network or storage access of its own.
type RunInput struct {
	BatchID  string
	Fixtures []models.Fixture
	Quotes   []models.OddsQuote
	Signals  models.SignalInputs
}

// New creates an engine, rejecting out-of-range parameters with a
// ConfigurationError.
func New(params models.EngineParams, logger zerolog.Logger) (*Engine, error) {
	if err := ValidateParams(params); err != nil {
		return nil, err
	}
	return &Engine{
		params:     params,
		normalizer: NewNormalizer(logger),
		aggregator: NewAggregator(params, logger),
		estimator:  NewEstimator(params, logger),
		composer:   NewComposer(params, logger),
		logger:     logger.With().Str("component", "engine").Logger(),
	}, nil
}

// Run estimates every fixture in the batch and composes parlay candidates
// over the surviving predictions.
//
// Fixtures are independent, so estimation fans out across Workers
// goroutines with no shared mutable state: each goroutine writes only its
// own slice slot. A fixture failing with InsufficientDataError is recorded
// in the error log and excluded; it never aborts the batch.
func (e *Engine) Run(ctx context.Context, input RunInput) (*models.RunResult, error) {
	quotesByFixture := make(map[string][]models.OddsQuote, len(input.Fixtures))
	for _, q := range input.Quotes {
		quotesByFixture[q.FixtureID] = append(quotesByFixture[q.FixtureID], q)
	}

	type fixtureOutcome struct {
		prediction *models.Prediction
		errors     []models.FixtureError
	}
	outcomes := make([]fixtureOutcome, len(input.Fixtures))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.params.Workers)

	for i, fixture := range input.Fixtures {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			prediction, fixtureErrors := e.estimateFixture(fixture, quotesByFixture[fixture.ID], input.Signals)
			outcomes[i] = fixtureOutcome{prediction: prediction, errors: fixtureErrors}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &models.RunResult{
		RunID:       uuid.New(),
		BatchID:     input.BatchID,
		Predictions: make(map[string]*models.Prediction, len(input.Fixtures)),
	}

	predictions := make([]*models.Prediction, 0, len(input.Fixtures))
	for i, fixture := range input.Fixtures {
		result.Errors = append(result.Errors, outcomes[i].errors...)
		if p := outcomes[i].prediction; p != nil {
			result.Predictions[fixture.ID] = p
			predictions = append(predictions, p)
		}
	}

	result.Parlays = e.composer.Compose(predictions)

	e.logger.Info().
		Str("batch_id", input.BatchID).
		Int("fixtures", len(input.Fixtures)).
		Int("predictions", len(result.Predictions)).
		Int("excluded", len(input.Fixtures)-len(result.Predictions)).
		Int("parlays", len(result.Parlays)).
		Msg("run complete")

	return result, nil
}

// estimateFixture runs the per-fixture pipeline. Dropped quotes surface as
// structured error-log entries without excluding the fixture; only
// InsufficientDataError excludes it.
func (e *Engine) estimateFixture(fixture models.Fixture, quotes []models.OddsQuote, signals models.SignalInputs) (*models.Prediction, []models.FixtureError) {
	var fixtureErrors []models.FixtureError

	markets, dropped := e.normalizer.Normalize(quotes)
	for _, err := range dropped {
		fixtureErrors = append(fixtureErrors, models.FixtureError{FixtureID: fixture.ID, Reason: err.Error()})
	}

	signalSet := e.aggregator.Aggregate(fixture, signals)

	prediction, err := e.estimator.Estimate(fixture, signalSet, markets)
	if err != nil {
		e.logger.Warn().
			Err(err).
			Str("fixture_id", fixture.ID).
			Msg("fixture excluded from run")
		return nil, append(fixtureErrors, models.FixtureError{FixtureID: fixture.ID, Reason: err.Error()})
	}

	return prediction, fixtureErrors
}
