package engine

import (
	"math"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/match-prediction-service/internal/models"
)

// Signal weights for the blended delta. The delta stays a bounded
// perturbation on top of the market prior, never a replacement for it.
const (
	weightForm     = 0.40
	weightH2H      = 0.25
	weightInjuries = 0.20
	weightPosition = 0.15

	// directionDeadband treats small leans as neutral when scoring
	// market/signal agreement.
	directionDeadband = 0.05

	// rationaleThreshold is the minimum absolute contribution for a signal
	// to appear in the rationale tags.
	rationaleThreshold = 0.05
)

// Estimator blends normalized market probabilities with the aggregated
// signal set into a Prediction.
type Estimator struct {
	params models.EngineParams
	logger zerolog.Logger
}

// NewEstimator creates a new outcome estimator
func NewEstimator(params models.EngineParams, logger zerolog.Logger) *Estimator {
	return &Estimator{
		params: params,
		logger: logger.With().Str("component", "estimator").Logger(),
	}
}

// Estimate produces the Prediction for one fixture.
//
// The market 1X2 distribution is the prior; signals tilt it by
// exp(±k*delta) on the home/away outcomes, then the triple is renormalized.
// With no usable market the prior degrades to uniform and confidence is hard
// capped. InsufficientDataError is returned only when both market and signal
// data are absent.
func (e *Estimator) Estimate(fixture models.Fixture, signals *models.SignalSet, markets map[models.MarketKind]models.MarketProbs) (*models.Prediction, error) {
	market, marketUsable := matchWinnerMarket(markets)

	if !marketUsable && signals.AllDefaulted() {
		return nil, &InsufficientDataError{FixtureID: fixture.ID}
	}

	var prior models.OutcomeProbs
	if marketUsable {
		prior = models.OutcomeProbs{
			Home: market.Probs[models.SelectionHome],
			Draw: market.Probs[models.SelectionDraw],
			Away: market.Probs[models.SelectionAway],
		}
	} else {
		prior = models.OutcomeProbs{Home: 1.0 / 3.0, Draw: 1.0 / 3.0, Away: 1.0 / 3.0}
	}

	delta := e.signalDelta(signals, !marketUsable)

	tiltHome := math.Exp(e.params.SensitivityK * delta)
	tiltAway := math.Exp(-e.params.SensitivityK * delta)
	probs := renormalize(models.OutcomeProbs{
		Home: prior.Home * tiltHome,
		Draw: prior.Draw,
		Away: prior.Away * tiltAway,
	})

	confidence := e.confidence(prior, delta, signals, marketUsable)
	top := topSelection(probs)

	pred := &models.Prediction{
		FixtureID:     fixture.ID,
		LeagueID:      fixture.LeagueID,
		KickoffDate:   fixture.Kickoff.UTC().Format("2006-01-02"),
		Probabilities: probs,
		TopSelection:  top,
		TopPrice:      e.topPrice(market, marketUsable, top, probs),
		Confidence:    confidence,
		Band:          confidenceBand(confidence),
		ScoreHint:     scoreHint(probs),
		Rationale:     e.rationale(signals, marketUsable),
		SignalOnly:    !marketUsable,
		Secondary:     secondaryMarkets(markets),
	}

	e.logger.Debug().
		Str("fixture_id", fixture.ID).
		Float64("p_home", probs.Home).
		Float64("p_draw", probs.Draw).
		Float64("p_away", probs.Away).
		Float64("confidence", confidence).
		Bool("signal_only", pred.SignalOnly).
		Msg("estimated outcome")

	return pred, nil
}

// signalDelta derives the bounded home-favoring scalar from the SignalSet.
// Home advantage joins the delta only on the uniform prior: market prices
// already carry it, and adding it twice would double count.
func (e *Estimator) signalDelta(s *models.SignalSet, includeHomeAdvantage bool) float64 {
	delta := weightForm*(s.HomeForm-s.AwayForm) +
		weightH2H*(s.HeadToHead-0.5)*2 +
		weightInjuries*(s.AwayInjuryImpact-s.HomeInjuryImpact) +
		weightPosition*s.PositionDelta

	if includeHomeAdvantage {
		delta += s.HomeAdvantage
	}

	return clamp(delta, -1, 1)
}

// confidence scores agreement between the market and signal directions and
// the fraction of the SignalSet backed by real data. Fully defaulted or
// signal-only inputs are hard capped.
func (e *Estimator) confidence(prior models.OutcomeProbs, delta float64, signals *models.SignalSet, marketUsable bool) float64 {
	marketDir := direction(prior.Home - prior.Away)
	signalDir := direction(delta)

	// same direction 1.0, one neutral 0.5, opposite 0.0
	agreement := 1.0 - math.Abs(float64(marketDir-signalDir))/2.0

	completeness := signals.Completeness()
	confidence := 0.25 + 0.45*agreement + 0.30*completeness

	if !marketUsable || signals.AllDefaulted() {
		confidence = math.Min(confidence, e.params.SignalOnlyConfidenceCap)
	}

	return clamp(confidence, 0, 1)
}

// topPrice returns the bookmaker's median decimal price for the top
// selection, or the fair price 1/p when no market is available.
func (e *Estimator) topPrice(market models.MarketProbs, marketUsable bool, top models.Selection, probs models.OutcomeProbs) decimal.Decimal {
	if marketUsable {
		if price, ok := market.Prices[top]; ok {
			return price
		}
	}
	p := probFor(probs, top)
	if p <= 0 {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(1).Div(decimal.NewFromFloat(p))
}

// rationale lists the dominant signals, largest contribution first, with a
// name-ordered tie-break so identical inputs produce identical tags.
func (e *Estimator) rationale(s *models.SignalSet, marketUsable bool) []string {
	type contribution struct {
		tag   string
		value float64
	}
	contributions := []contribution{
		{"form", weightForm * (s.HomeForm - s.AwayForm)},
		{"head_to_head", weightH2H * (s.HeadToHead - 0.5) * 2},
		{"injuries", weightInjuries * (s.AwayInjuryImpact - s.HomeInjuryImpact)},
		{"league_position", weightPosition * s.PositionDelta},
	}

	sort.SliceStable(contributions, func(i, j int) bool {
		ai, aj := math.Abs(contributions[i].value), math.Abs(contributions[j].value)
		if ai != aj {
			return ai > aj
		}
		return contributions[i].tag < contributions[j].tag
	})

	var tags []string
	for _, c := range contributions {
		if math.Abs(c.value) >= rationaleThreshold {
			tags = append(tags, c.tag)
		}
	}
	if marketUsable {
		tags = append(tags, "market_consensus")
	}
	if len(tags) == 0 {
		tags = []string{"balanced"}
	}
	return tags
}

// matchWinnerMarket extracts a usable 1X2 market: present, not marked
// unavailable, and priced on all three outcomes.
func matchWinnerMarket(markets map[models.MarketKind]models.MarketProbs) (models.MarketProbs, bool) {
	market, ok := markets[models.MarketMatchWinner]
	if !ok || market.Unavailable {
		return models.MarketProbs{}, false
	}
	for _, sel := range []models.Selection{models.SelectionHome, models.SelectionDraw, models.SelectionAway} {
		if _, priced := market.Probs[sel]; !priced {
			return models.MarketProbs{}, false
		}
	}
	return market, true
}

// secondaryMarkets carries the non-1X2 normalized markets through to the
// prediction untouched.
func secondaryMarkets(markets map[models.MarketKind]models.MarketProbs) map[models.MarketKind]models.MarketProbs {
	secondary := make(map[models.MarketKind]models.MarketProbs)
	for _, kind := range []models.MarketKind{models.MarketOverUnder, models.MarketBTTS} {
		if m, ok := markets[kind]; ok {
			secondary[kind] = m
		}
	}
	if len(secondary) == 0 {
		return nil
	}
	return secondary
}

// renormalize scales the triple to sum to 1. Numeric renormalization only,
// never re-derivation.
func renormalize(p models.OutcomeProbs) models.OutcomeProbs {
	sum := p.Sum()
	if sum <= 0 {
		return models.OutcomeProbs{Home: 1.0 / 3.0, Draw: 1.0 / 3.0, Away: 1.0 / 3.0}
	}
	return models.OutcomeProbs{Home: p.Home / sum, Draw: p.Draw / sum, Away: p.Away / sum}
}

// topSelection picks the most probable outcome, tie-breaking home, draw,
// away in that order.
func topSelection(p models.OutcomeProbs) models.Selection {
	top := models.SelectionHome
	best := p.Home
	if p.Draw > best {
		top, best = models.SelectionDraw, p.Draw
	}
	if p.Away > best {
		top = models.SelectionAway
	}
	return top
}

func probFor(p models.OutcomeProbs, sel models.Selection) float64 {
	switch sel {
	case models.SelectionHome:
		return p.Home
	case models.SelectionDraw:
		return p.Draw
	case models.SelectionAway:
		return p.Away
	default:
		return 0
	}
}

// direction maps a lean to -1, 0, or 1 with a small deadband.
func direction(lean float64) int {
	switch {
	case lean > directionDeadband:
		return 1
	case lean < -directionDeadband:
		return -1
	default:
		return 0
	}
}

// scoreHint maps the final distribution to the most plausible scoreline
// bucket for presentation.
func scoreHint(p models.OutcomeProbs) string {
	switch {
	case p.Home >= 0.60:
		return "2-0"
	case p.Home > p.Away && p.Home > p.Draw:
		return "2-1"
	case p.Away >= 0.60:
		return "0-2"
	case p.Away > p.Home && p.Away > p.Draw:
		return "1-2"
	default:
		return "1-1"
	}
}

// confidenceBand buckets numeric confidence the way the published
// predictions label it.
func confidenceBand(confidence float64) models.ConfidenceBand {
	switch {
	case confidence >= 0.70:
		return models.ConfidenceHigh
	case confidence >= 0.45:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}
