package service

import (
	"context"

	"github.com/cypherlabdev/match-prediction-service/internal/models"
	"github.com/cypherlabdev/match-prediction-service/pkg/engine"
)

// Predictor is an interface that abstracts the prediction engine
// This allows for easier testing and mocking
type Predictor interface {
	Run(ctx context.Context, input engine.RunInput) (*models.RunResult, error)
}
