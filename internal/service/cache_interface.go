package service

import (
	"context"

	"github.com/cypherlabdev/match-prediction-service/internal/models"
)

// Cache is an interface that abstracts cache operations
// This allows for easier testing and mocking
type Cache interface {
	SetPrediction(ctx context.Context, prediction *models.Prediction) error
	GetPrediction(ctx context.Context, fixtureID string) (*models.Prediction, error)
	SetRunResult(ctx context.Context, result *models.RunResult) error
	GetParlays(ctx context.Context, batchID string) ([]*models.ParlayCandidate, error)
	Ping(ctx context.Context) error
	Close() error
}
