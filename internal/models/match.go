package models

import (
	"time"
)

// OddsFormat identifies the price format of a bookmaker quote
type OddsFormat string

const (
	OddsFormatDecimal    OddsFormat = "decimal"    // e.g. "2.50"
	OddsFormatFractional OddsFormat = "fractional" // e.g. "6/4"
	OddsFormatMoneyline  OddsFormat = "moneyline"  // e.g. "+150", "-200"
)

// MarketKind is the closed set of betting markets the engine understands
type MarketKind string

const (
	MarketMatchWinner MarketKind = "match_winner"
	MarketOverUnder   MarketKind = "over_under_2_5"
	MarketBTTS        MarketKind = "both_teams_to_score"
)

// Selection identifies one outcome within a market
type Selection string

const (
	SelectionHome  Selection = "home"
	SelectionDraw  Selection = "draw"
	SelectionAway  Selection = "away"
	SelectionOver  Selection = "over"
	SelectionUnder Selection = "under"
	SelectionYes   Selection = "yes"
	SelectionNo    Selection = "no"
)

// Fixture identifies one scheduled match. Immutable for a prediction run.
type Fixture struct {
	ID         string    `json:"id"`
	HomeTeamID string    `json:"home_team_id"`
	AwayTeamID string    `json:"away_team_id"`
	LeagueID   string    `json:"league_id"`
	Kickoff    time.Time `json:"kickoff"`
	Venue      string    `json:"venue"`
}

// OddsQuote is one bookmaker's price for one selection on one fixture.
// Price is the raw price string in the tagged format.
type OddsQuote struct {
	FixtureID string     `json:"fixture_id"`
	Bookmaker string     `json:"bookmaker"`
	Market    MarketKind `json:"market"`
	Selection Selection  `json:"selection"`
	Price     string     `json:"price"`
	Format    OddsFormat `json:"format"`
}

// MatchResult is one completed historical match, used for form and
// head-to-head signals. Supplied time-ordered, most recent first.
type MatchResult struct {
	HomeTeamID string    `json:"home_team_id"`
	AwayTeamID string    `json:"away_team_id"`
	HomeGoals  int       `json:"home_goals"`
	AwayGoals  int       `json:"away_goals"`
	PlayedAt   time.Time `json:"played_at"`
}

// InjuryReport is one missing player. Importance is an externally supplied
// scalar (market value or minutes-played proxy).
type InjuryReport struct {
	TeamID     string  `json:"team_id"`
	PlayerName string  `json:"player_name"`
	Importance float64 `json:"importance"`
}

// SignalInputs bundles the raw per-run signal data handed to the engine by
// the data-fetch collaborator.
type SignalInputs struct {
	Results  []MatchResult  `json:"results"`
	Injuries []InjuryReport `json:"injuries"`
	// SquadImportance maps team id to the squad's total importance, used to
	// normalize injury impact to [0,1].
	SquadImportance map[string]float64 `json:"squad_importance"`
	// LeaguePositions maps team id to current league position (1 = top).
	LeaguePositions map[string]int `json:"league_positions"`
	// HomeAdvantageOverrides maps fixture id to a per-fixture home-advantage
	// factor overriding the league default.
	HomeAdvantageOverrides map[string]float64 `json:"home_advantage_overrides"`
}

// KafkaFixtureBatchMessage is the batch message produced by the data-fetch
// service: fixtures with their quotes and signal inputs for one run.
type KafkaFixtureBatchMessage struct {
	BatchID   string       `json:"batch_id"`
	Fixtures  []Fixture    `json:"fixtures"`
	Quotes    []OddsQuote  `json:"quotes"`
	Signals   SignalInputs `json:"signals"`
	Timestamp time.Time    `json:"timestamp"`
}
