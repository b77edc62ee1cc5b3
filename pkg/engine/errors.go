package engine

import (
	"fmt"

	"github.com/cypherlabdev/match-prediction-service/internal/models"
)

// InvalidOddsError reports one malformed or non-positive quote. The quote is
// dropped and normalization continues with the remaining quotes.
type InvalidOddsError struct {
	Quote  models.OddsQuote
	Reason string
}

func (e *InvalidOddsError) Error() string {
	return fmt.Sprintf("invalid odds quote %s/%s/%s from %s: %s",
		e.Quote.FixtureID, e.Quote.Market, e.Quote.Selection, e.Quote.Bookmaker, e.Reason)
}

// InsufficientDataError reports a fixture with no usable market data and no
// usable signal data. The fixture is excluded from the run, never aborting it.
type InsufficientDataError struct {
	FixtureID string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("fixture %s: no usable market or signal data", e.FixtureID)
}

// ConfigurationError reports an out-of-range engine option. It is the only
// error class that aborts a whole run.
type ConfigurationError struct {
	Option string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration option %s: %s", e.Option, e.Reason)
}

// ValidateParams checks engine parameters before a run.
func ValidateParams(p models.EngineParams) error {
	if p.FormWindow <= 0 {
		return &ConfigurationError{Option: "form_window", Reason: "must be positive"}
	}
	if p.SensitivityK < 0 {
		return &ConfigurationError{Option: "sensitivity_k", Reason: "must not be negative"}
	}
	if p.MinLegConfidence < 0 || p.MinLegConfidence > 1 {
		return &ConfigurationError{Option: "min_leg_confidence", Reason: "must be in [0,1]"}
	}
	if p.MaxLegs < 2 {
		return &ConfigurationError{Option: "max_legs", Reason: "must be at least 2"}
	}
	if p.MaxCorrelation < 0 || p.MaxCorrelation > 1 {
		return &ConfigurationError{Option: "max_correlation", Reason: "must be in [0,1]"}
	}
	if p.MaxParlayCandidates < 0 {
		return &ConfigurationError{Option: "max_parlay_candidates", Reason: "must not be negative"}
	}
	if p.MaxSubsets <= 0 {
		return &ConfigurationError{Option: "max_subsets", Reason: "must be positive"}
	}
	if p.SignalOnlyConfidenceCap < 0 || p.SignalOnlyConfidenceCap > 1 {
		return &ConfigurationError{Option: "signal_only_confidence_cap", Reason: "must be in [0,1]"}
	}
	if p.LegCountPenalty < 0 {
		return &ConfigurationError{Option: "leg_count_penalty", Reason: "must not be negative"}
	}
	if p.SameLeagueDayCorrelation < 0 || p.SameLeagueDayCorrelation > 1 {
		return &ConfigurationError{Option: "same_league_day_correlation", Reason: "must be in [0,1]"}
	}
	if p.Workers <= 0 {
		return &ConfigurationError{Option: "workers", Reason: "must be positive"}
	}
	return nil
}
