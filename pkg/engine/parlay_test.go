package engine

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/match-prediction-service/internal/models"
)

func legPrediction(fixtureID, leagueID, kickoffDate string, pHome, confidence float64, price string) *models.Prediction {
	return &models.Prediction{
		FixtureID:     fixtureID,
		LeagueID:      leagueID,
		KickoffDate:   kickoffDate,
		Probabilities: models.OutcomeProbs{Home: pHome, Draw: (1 - pHome) / 2, Away: (1 - pHome) / 2},
		TopSelection:  models.SelectionHome,
		TopPrice:      decimal.RequireFromString(price),
		Confidence:    confidence,
		Band:          models.ConfidenceHigh,
	}
}

// TestCompose_BuildsRankedCandidates tests basic candidate construction and
// EV-descending order
func TestCompose_BuildsRankedCandidates(t *testing.T) {
	composer := NewComposer(testParams(), zerolog.Nop())

	predictions := []*models.Prediction{
		legPrediction("fixture-1", "premier_league", "2026-03-14", 0.70, 0.80, "1.55"),
		legPrediction("fixture-2", "la_liga", "2026-03-15", 0.65, 0.75, "1.70"),
		legPrediction("fixture-3", "serie_a", "2026-03-16", 0.60, 0.72, "1.85"),
	}

	candidates := composer.Compose(predictions)

	// Three pairs plus one triple
	require.Len(t, candidates, 4)
	for i := 1; i < len(candidates); i++ {
		assert.GreaterOrEqual(t, candidates[i-1].ExpectedValue, candidates[i].ExpectedValue)
	}
	for _, c := range candidates {
		assert.GreaterOrEqual(t, len(c.Legs), 2)
		assert.LessOrEqual(t, len(c.Legs), 3)
		assert.Greater(t, c.CombinedProbability, 0.0)
		assert.True(t, c.CombinedPayout.GreaterThan(decimal.NewFromInt(1)))
	}
}

// TestCompose_CombinedProbabilityIsLegProduct tests independent legs multiply
// exactly
func TestCompose_CombinedProbabilityIsLegProduct(t *testing.T) {
	params := testParams()
	params.MaxLegs = 2
	composer := NewComposer(params, zerolog.Nop())

	predictions := []*models.Prediction{
		legPrediction("fixture-1", "premier_league", "2026-03-14", 0.70, 0.80, "1.55"),
		legPrediction("fixture-2", "la_liga", "2026-03-15", 0.65, 0.75, "1.70"),
	}

	candidates := composer.Compose(predictions)

	require.Len(t, candidates, 1)
	assert.InDelta(t, 0.70*0.65, candidates[0].CombinedProbability, 1e-9)
	assert.False(t, candidates[0].Correlated)
	assert.True(t, candidates[0].CombinedPayout.Equal(decimal.RequireFromString("2.635")))
}

// TestCompose_CorrelationDiscount tests that a same-league same-day pair is
// discounted below the naive product and flagged correlated
func TestCompose_CorrelationDiscount(t *testing.T) {
	params := testParams()
	params.MaxLegs = 2
	composer := NewComposer(params, zerolog.Nop())

	predictions := []*models.Prediction{
		legPrediction("fixture-1", "premier_league", "2026-03-14", 0.70, 0.80, "1.55"),
		legPrediction("fixture-2", "premier_league", "2026-03-14", 0.65, 0.75, "1.70"),
	}

	candidates := composer.Compose(predictions)

	require.Len(t, candidates, 1)
	assert.True(t, candidates[0].Correlated)
	assert.InDelta(t, 0.70*0.65*(1-params.SameLeagueDayCorrelation), candidates[0].CombinedProbability, 1e-9)
}

// TestCompose_CorrelatedRanksBelowIndependent tests that with identical leg
// probabilities the correlated candidate ranks strictly below the
// independent one
func TestCompose_CorrelatedRanksBelowIndependent(t *testing.T) {
	params := testParams()
	params.MaxLegs = 2
	composer := NewComposer(params, zerolog.Nop())

	predictions := []*models.Prediction{
		// Same league and kickoff date: correlated pair
		legPrediction("fixture-1", "premier_league", "2026-03-14", 0.70, 0.80, "1.55"),
		legPrediction("fixture-2", "premier_league", "2026-03-14", 0.65, 0.78, "1.70"),
		// Identical probabilities and prices, independent contexts
		legPrediction("fixture-3", "la_liga", "2026-03-15", 0.70, 0.80, "1.55"),
		legPrediction("fixture-4", "serie_a", "2026-03-16", 0.65, 0.78, "1.70"),
	}

	candidates := composer.Compose(predictions)
	require.NotEmpty(t, candidates)

	rank := func(a, b string) int {
		for i, c := range candidates {
			if c.Legs[0].FixtureID == a && c.Legs[1].FixtureID == b {
				return i
			}
		}
		t.Fatalf("candidate %s+%s not found", a, b)
		return -1
	}

	assert.Less(t, rank("fixture-3", "fixture-4"), rank("fixture-1", "fixture-2"))
}

// TestCompose_RejectsOverCorrelated tests that a pair beyond the correlation
// ceiling rejects the subset entirely
func TestCompose_RejectsOverCorrelated(t *testing.T) {
	params := testParams()
	params.MaxLegs = 2
	params.MaxCorrelation = 0.2 // below the same-league-day estimate
	composer := NewComposer(params, zerolog.Nop())

	predictions := []*models.Prediction{
		legPrediction("fixture-1", "premier_league", "2026-03-14", 0.70, 0.80, "1.55"),
		legPrediction("fixture-2", "premier_league", "2026-03-14", 0.65, 0.75, "1.70"),
	}

	candidates := composer.Compose(predictions)

	assert.Empty(t, candidates)
}

// TestCompose_FiltersWeakLegs tests the per-leg probability and confidence
// thresholds
func TestCompose_FiltersWeakLegs(t *testing.T) {
	composer := NewComposer(testParams(), zerolog.Nop())

	predictions := []*models.Prediction{
		legPrediction("fixture-1", "premier_league", "2026-03-14", 0.70, 0.80, "1.55"),
		legPrediction("fixture-2", "la_liga", "2026-03-15", 0.40, 0.80, "2.60"),  // probability too low
		legPrediction("fixture-3", "serie_a", "2026-03-16", 0.70, 0.30, "1.55"), // confidence too low
	}

	candidates := composer.Compose(predictions)

	assert.Empty(t, candidates) // only one eligible leg remains
}

// TestCompose_LegCountPenalty tests that candidate confidence is the minimum
// leg confidence less the per-extra-leg penalty
func TestCompose_LegCountPenalty(t *testing.T) {
	params := testParams()
	composer := NewComposer(params, zerolog.Nop())

	predictions := []*models.Prediction{
		legPrediction("fixture-1", "premier_league", "2026-03-14", 0.70, 0.90, "1.55"),
		legPrediction("fixture-2", "la_liga", "2026-03-15", 0.68, 0.80, "1.60"),
		legPrediction("fixture-3", "serie_a", "2026-03-16", 0.66, 0.70, "1.65"),
	}

	candidates := composer.Compose(predictions)

	for _, c := range candidates {
		minLeg := 1.0
		for _, leg := range c.Legs {
			if leg.Confidence < minLeg {
				minLeg = leg.Confidence
			}
		}
		expected := minLeg - params.LegCountPenalty*float64(len(c.Legs)-1)
		assert.InDelta(t, expected, c.Confidence, 1e-9)
	}
}

// TestCompose_InputOrderIndependent tests that reversing the prediction
// order changes nothing in the ranked output
func TestCompose_InputOrderIndependent(t *testing.T) {
	composer := NewComposer(testParams(), zerolog.Nop())

	predictions := []*models.Prediction{
		legPrediction("fixture-1", "premier_league", "2026-03-14", 0.70, 0.80, "1.55"),
		legPrediction("fixture-2", "premier_league", "2026-03-14", 0.65, 0.75, "1.70"),
		legPrediction("fixture-3", "la_liga", "2026-03-15", 0.62, 0.72, "1.80"),
		legPrediction("fixture-4", "serie_a", "2026-03-16", 0.60, 0.70, "1.85"),
	}
	reversed := make([]*models.Prediction, len(predictions))
	for i, p := range predictions {
		reversed[len(predictions)-1-i] = p
	}

	forward := composer.Compose(predictions)
	backward := composer.Compose(reversed)

	require.Equal(t, len(forward), len(backward))
	for i := range forward {
		assert.Equal(t, forward[i].ID, backward[i].ID)
		assert.Equal(t, forward[i].Legs, backward[i].Legs)
	}
}

// TestCompose_DeterministicIDs tests that identical inputs yield identical
// candidate ids across runs
func TestCompose_DeterministicIDs(t *testing.T) {
	composer := NewComposer(testParams(), zerolog.Nop())

	predictions := []*models.Prediction{
		legPrediction("fixture-1", "premier_league", "2026-03-14", 0.70, 0.80, "1.55"),
		legPrediction("fixture-2", "la_liga", "2026-03-15", 0.65, 0.75, "1.70"),
	}

	first := composer.Compose(predictions)
	second := composer.Compose(predictions)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
}

// TestCompose_TruncatesToMaxCandidates tests output truncation after ranking
func TestCompose_TruncatesToMaxCandidates(t *testing.T) {
	params := testParams()
	params.MaxParlayCandidates = 2
	composer := NewComposer(params, zerolog.Nop())

	predictions := []*models.Prediction{
		legPrediction("fixture-1", "premier_league", "2026-03-14", 0.70, 0.80, "1.55"),
		legPrediction("fixture-2", "la_liga", "2026-03-15", 0.65, 0.75, "1.70"),
		legPrediction("fixture-3", "serie_a", "2026-03-16", 0.62, 0.72, "1.80"),
		legPrediction("fixture-4", "ligue_1", "2026-03-17", 0.60, 0.70, "1.85"),
	}

	candidates := composer.Compose(predictions)

	assert.Len(t, candidates, 2)
}

// TestCompose_SubsetCutoff tests that enumeration stops at the subset limit
func TestCompose_SubsetCutoff(t *testing.T) {
	params := testParams()
	params.MaxSubsets = 1
	composer := NewComposer(params, zerolog.Nop())

	predictions := []*models.Prediction{
		legPrediction("fixture-1", "premier_league", "2026-03-14", 0.70, 0.80, "1.55"),
		legPrediction("fixture-2", "la_liga", "2026-03-15", 0.65, 0.75, "1.70"),
		legPrediction("fixture-3", "serie_a", "2026-03-16", 0.62, 0.72, "1.80"),
	}

	candidates := composer.Compose(predictions)

	assert.Len(t, candidates, 1)
}

// TestCompose_TooFewLegs tests that fewer than two eligible legs yields no
// candidates
func TestCompose_TooFewLegs(t *testing.T) {
	composer := NewComposer(testParams(), zerolog.Nop())

	predictions := []*models.Prediction{
		legPrediction("fixture-1", "premier_league", "2026-03-14", 0.70, 0.80, "1.55"),
	}

	assert.Nil(t, composer.Compose(predictions))
	assert.Nil(t, composer.Compose(nil))
}
