package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SignalField names one field of a SignalSet, used to track defaulting.
type SignalField string

const (
	SignalHomeForm      SignalField = "home_form"
	SignalAwayForm      SignalField = "away_form"
	SignalHeadToHead    SignalField = "head_to_head"
	SignalHomeInjuries  SignalField = "home_injuries"
	SignalAwayInjuries  SignalField = "away_injuries"
	SignalPositionDelta SignalField = "position_delta"
)

// signalFieldCount is the number of defaultable SignalSet fields.
const signalFieldCount = 6

// SignalSet holds the aggregated per-fixture features. All fields are finite;
// absent data degrades to the documented neutral default, recorded in
// Defaulted so completeness stays computable downstream.
type SignalSet struct {
	FixtureID string `json:"fixture_id"`

	HomeForm         float64 `json:"home_form"`          // [0,1], neutral 0.5
	AwayForm         float64 `json:"away_form"`          // [0,1], neutral 0.5
	HeadToHead       float64 `json:"head_to_head"`       // home win-rate [0,1], neutral 0.5
	HomeInjuryImpact float64 `json:"home_injury_impact"` // [0,1], neutral 0
	AwayInjuryImpact float64 `json:"away_injury_impact"` // [0,1], neutral 0
	HomeAdvantage    float64 `json:"home_advantage"`     // league default or per-fixture override
	PositionDelta    float64 `json:"position_delta"`     // (away pos - home pos) normalized to [-1,1], neutral 0

	Defaulted map[SignalField]bool `json:"defaulted"`
}

// Completeness returns the fraction of signal fields backed by real data.
func (s *SignalSet) Completeness() float64 {
	defaulted := 0
	for _, d := range s.Defaulted {
		if d {
			defaulted++
		}
	}
	return 1.0 - float64(defaulted)/float64(signalFieldCount)
}

// AllDefaulted reports whether no signal field had underlying data.
func (s *SignalSet) AllDefaulted() bool {
	return s.Completeness() == 0
}

// OutcomeProbs is a 1X2 probability triple summing to 1 within 1e-6.
type OutcomeProbs struct {
	Home float64 `json:"home"`
	Draw float64 `json:"draw"`
	Away float64 `json:"away"`
}

// Sum returns the triple total, used by invariant checks.
func (p OutcomeProbs) Sum() float64 {
	return p.Home + p.Draw + p.Away
}

// MarketProbs holds overround-free implied probabilities for one market,
// plus the median decimal price per selection the probabilities were derived
// from. Unavailable is set when no valid quote survived normalization.
type MarketProbs struct {
	Probs       map[Selection]float64         `json:"probs"`
	Prices      map[Selection]decimal.Decimal `json:"prices"`
	Unavailable bool                          `json:"unavailable"`
}

// ConfidenceBand buckets a numeric confidence for presentation.
type ConfidenceBand string

const (
	ConfidenceHigh   ConfidenceBand = "high"
	ConfidenceMedium ConfidenceBand = "medium"
	ConfidenceLow    ConfidenceBand = "low"
)

// Prediction is the engine output for one fixture.
type Prediction struct {
	FixtureID     string          `json:"fixture_id"`
	LeagueID      string          `json:"league_id"`
	KickoffDate   string          `json:"kickoff_date"` // YYYY-MM-DD, correlation key
	Probabilities OutcomeProbs    `json:"probabilities"`
	TopSelection  Selection       `json:"top_selection"`
	TopPrice      decimal.Decimal `json:"top_price"` // decimal price of the top selection
	Confidence    float64         `json:"confidence"`
	Band          ConfidenceBand  `json:"band"`
	ScoreHint     string          `json:"score_hint"`
	Rationale     []string        `json:"rationale"`
	SignalOnly    bool            `json:"signal_only"` // no usable market, uniform prior used
	// Secondary contains normalized market-implied probabilities for the
	// over/under and both-teams-to-score markets when quoted.
	Secondary map[MarketKind]MarketProbs `json:"secondary,omitempty"`
}

// ParlayLeg is one fixture prediction included in a parlay candidate.
type ParlayLeg struct {
	FixtureID   string          `json:"fixture_id"`
	Selection   Selection       `json:"selection"`
	Probability float64         `json:"probability"`
	Price       decimal.Decimal `json:"price"`
	Confidence  float64         `json:"confidence"`
}

// ParlayCandidate is a ranked multi-leg accumulator suggestion. Its ID is
// derived from the leg fixture ids, so identical inputs produce identical
// candidates.
type ParlayCandidate struct {
	ID                  uuid.UUID       `json:"id"`
	Legs                []ParlayLeg     `json:"legs"`
	CombinedProbability float64         `json:"combined_probability"`
	CombinedPayout      decimal.Decimal `json:"combined_payout"`
	ExpectedValue       float64         `json:"expected_value"`
	Confidence          float64         `json:"confidence"`
	Correlated          bool            `json:"correlated"`
	Note                string          `json:"note"`
}

// FixtureError records one excluded fixture in the run's error log.
type FixtureError struct {
	FixtureID string `json:"fixture_id"`
	Reason    string `json:"reason"`
}

// RunResult is the facade output for one batch run.
type RunResult struct {
	RunID       uuid.UUID              `json:"run_id"`
	BatchID     string                 `json:"batch_id"`
	Predictions map[string]*Prediction `json:"predictions"`
	Parlays     []*ParlayCandidate     `json:"parlays"`
	Errors      []FixtureError         `json:"errors"`
}

// EngineParams holds the tunable engine configuration, validated at load
// time and passed by value into each component.
type EngineParams struct {
	FormWindow               int     // recent-match lookback, default 5
	SensitivityK             float64 // signal-blend strength
	MinLegConfidence         float64 // parlay leg threshold
	MaxLegs                  int     // max parlay size
	MaxCorrelation           float64 // pairwise rejection threshold
	MaxParlayCandidates      int     // output truncation
	MaxSubsets               int     // enumeration cutoff
	SignalOnlyConfidenceCap  float64 // hard ceiling without market data
	LegCountPenalty          float64 // confidence penalty per extra leg
	SameLeagueDayCorrelation float64 // assumed pairwise correlation
	Workers                  int     // per-fixture estimation parallelism

	DefaultHomeAdvantage float64
	HomeAdvantage        map[string]float64 // league id -> factor
}
