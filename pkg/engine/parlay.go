package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/match-prediction-service/internal/models"
)

// Composer assembles ranked accumulator suggestions from a run's
// predictions.
type Composer struct {
	params models.EngineParams
	logger zerolog.Logger
}

// NewComposer creates a new parlay composer
func NewComposer(params models.EngineParams, logger zerolog.Logger) *Composer {
	return &Composer{
		params: params,
		logger: logger.With().Str("component", "composer").Logger(),
	}
}

// Compose enumerates leg subsets of size 2..MaxLegs over the eligible
// predictions and returns candidates most-favorable first: expected value
// descending, then combined confidence, then fixture-id order. Enumeration
// stops after MaxSubsets subsets to bound the combinatorial cost.
func (c *Composer) Compose(predictions []*models.Prediction) []*models.ParlayCandidate {
	eligible := c.eligibleLegs(predictions)
	if len(eligible) < 2 {
		return nil
	}

	maxLegs := c.params.MaxLegs
	if maxLegs > len(eligible) {
		maxLegs = len(eligible)
	}

	var candidates []*models.ParlayCandidate
	enumerated := 0

	for size := 2; size <= maxLegs && enumerated < c.params.MaxSubsets; size++ {
		forEachSubset(len(eligible), size, func(indexes []int) bool {
			enumerated++
			subset := make([]*models.Prediction, size)
			for i, idx := range indexes {
				subset[i] = eligible[idx]
			}
			if candidate := c.buildCandidate(subset); candidate != nil {
				candidates = append(candidates, candidate)
			}
			return enumerated < c.params.MaxSubsets
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].ExpectedValue != candidates[j].ExpectedValue {
			return candidates[i].ExpectedValue > candidates[j].ExpectedValue
		}
		if candidates[i].Confidence != candidates[j].Confidence {
			return candidates[i].Confidence > candidates[j].Confidence
		}
		return legKey(candidates[i]) < legKey(candidates[j])
	})

	if c.params.MaxParlayCandidates > 0 && len(candidates) > c.params.MaxParlayCandidates {
		candidates = candidates[:c.params.MaxParlayCandidates]
	}

	c.logger.Info().
		Int("eligible_legs", len(eligible)).
		Int("subsets_enumerated", enumerated).
		Int("candidates", len(candidates)).
		Msg("composed parlay candidates")

	return candidates
}

// eligibleLegs filters predictions whose top-selection probability and
// confidence both exceed the leg threshold, ordered by fixture id so
// enumeration is independent of input order.
func (c *Composer) eligibleLegs(predictions []*models.Prediction) []*models.Prediction {
	var eligible []*models.Prediction
	for _, p := range predictions {
		if probFor(p.Probabilities, p.TopSelection) > c.params.MinLegConfidence &&
			p.Confidence > c.params.MinLegConfidence {
			eligible = append(eligible, p)
		}
	}
	sort.Slice(eligible, func(i, j int) bool { return eligible[i].FixtureID < eligible[j].FixtureID })
	return eligible
}

// buildCandidate scores one subset, or rejects it when any leg pair is
// correlated beyond MaxCorrelation.
func (c *Composer) buildCandidate(subset []*models.Prediction) *models.ParlayCandidate {
	combined := 1.0
	payout := decimal.NewFromInt(1)
	minConfidence := 1.0
	correlated := false

	legs := make([]models.ParlayLeg, len(subset))
	fixtureIDs := make([]string, len(subset))

	for i, p := range subset {
		prob := probFor(p.Probabilities, p.TopSelection)
		combined *= prob
		payout = payout.Mul(p.TopPrice)
		if p.Confidence < minConfidence {
			minConfidence = p.Confidence
		}
		legs[i] = models.ParlayLeg{
			FixtureID:   p.FixtureID,
			Selection:   p.TopSelection,
			Probability: prob,
			Price:       p.TopPrice,
			Confidence:  p.Confidence,
		}
		fixtureIDs[i] = p.FixtureID
	}

	// Correlated pairs discount the joint probability below the naive
	// product; a pair beyond the ceiling rejects the whole subset.
	for i := 0; i < len(subset); i++ {
		for j := i + 1; j < len(subset); j++ {
			rho := c.pairCorrelation(subset[i], subset[j])
			if rho > c.params.MaxCorrelation {
				return nil
			}
			if rho > 0 {
				correlated = true
				combined *= 1 - rho
			}
		}
	}

	confidence := minConfidence - c.params.LegCountPenalty*float64(len(subset)-1)
	if confidence < 0 {
		confidence = 0
	}

	return &models.ParlayCandidate{
		ID:                  uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.Join(fixtureIDs, "|"))),
		Legs:                legs,
		CombinedProbability: combined,
		CombinedPayout:      payout,
		ExpectedValue:       combined*payout.InexactFloat64() - 1,
		Confidence:          confidence,
		Correlated:          correlated,
		Note:                candidateNote(legs, combined),
	}
}

// pairCorrelation estimates the correlation between two legs. Legs sharing
// a league and kickoff date share referees, weather, and travel context and
// are treated as partially correlated; everything else as independent.
func (c *Composer) pairCorrelation(a, b *models.Prediction) float64 {
	if a.LeagueID == b.LeagueID && a.KickoffDate == b.KickoffDate {
		return c.params.SameLeagueDayCorrelation
	}
	return 0
}

// candidateNote renders the human-readable leg summary carried on the
// candidate.
func candidateNote(legs []models.ParlayLeg, combined float64) string {
	parts := make([]string, len(legs))
	for i, leg := range legs {
		parts[i] = fmt.Sprintf("%s:%s", leg.FixtureID, leg.Selection)
	}
	return fmt.Sprintf("%d legs (%s), combined probability %.1f%%",
		len(legs), strings.Join(parts, ", "), combined*100)
}

// legKey joins a candidate's fixture ids for the deterministic tie-break.
func legKey(c *models.ParlayCandidate) string {
	ids := make([]string, len(c.Legs))
	for i, leg := range c.Legs {
		ids[i] = leg.FixtureID
	}
	return strings.Join(ids, "|")
}

// forEachSubset visits all k-combinations of [0,n) in lexicographic order,
// stopping early when visit returns false.
func forEachSubset(n, k int, visit func(indexes []int) bool) {
	indexes := make([]int, k)
	for i := range indexes {
		indexes[i] = i
	}
	for {
		if !visit(indexes) {
			return
		}
		// advance to the next combination
		i := k - 1
		for i >= 0 && indexes[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		indexes[i]++
		for j := i + 1; j < k; j++ {
			indexes[j] = indexes[j-1] + 1
		}
	}
}
