package engine

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-prediction-service/internal/models"
)

// positionDeltaScale normalizes a league-position gap to [-1,1]; a 20-team
// table spans at most 19 places.
const positionDeltaScale = 20.0

// Aggregator merges historical results, injury reports, and league context
// into one SignalSet per fixture.
//
// Defaulting policy, per field:
//   - form: neutral 0.5 when a side has no recorded matches
//   - head-to-head: neutral 0.5 when the sides never met
//   - injury impact: neutral 0 when the squad's total importance is unknown
//   - position delta: neutral 0 when either side's position is unknown
//
// Home advantage is a configured constant, not data, so it never counts
// against completeness.
type Aggregator struct {
	params models.EngineParams
	logger zerolog.Logger
}

// NewAggregator creates a new signal aggregator
func NewAggregator(params models.EngineParams, logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		params: params,
		logger: logger.With().Str("component", "aggregator").Logger(),
	}
}

// Aggregate builds the SignalSet for one fixture from the run's raw inputs.
func (a *Aggregator) Aggregate(fixture models.Fixture, inputs models.SignalInputs) *models.SignalSet {
	s := &models.SignalSet{
		FixtureID: fixture.ID,
		Defaulted: make(map[models.SignalField]bool, 6),
	}

	s.HomeForm, s.Defaulted[models.SignalHomeForm] = a.formScore(fixture.HomeTeamID, inputs.Results)
	s.AwayForm, s.Defaulted[models.SignalAwayForm] = a.formScore(fixture.AwayTeamID, inputs.Results)
	s.HeadToHead, s.Defaulted[models.SignalHeadToHead] = a.headToHead(fixture.HomeTeamID, fixture.AwayTeamID, inputs.Results)
	s.HomeInjuryImpact, s.Defaulted[models.SignalHomeInjuries] = a.injuryImpact(fixture.HomeTeamID, inputs)
	s.AwayInjuryImpact, s.Defaulted[models.SignalAwayInjuries] = a.injuryImpact(fixture.AwayTeamID, inputs)
	s.PositionDelta, s.Defaulted[models.SignalPositionDelta] = a.positionDelta(fixture, inputs.LeaguePositions)
	s.HomeAdvantage = a.homeAdvantage(fixture, inputs.HomeAdvantageOverrides)

	a.logger.Debug().
		Str("fixture_id", fixture.ID).
		Float64("home_form", s.HomeForm).
		Float64("away_form", s.AwayForm).
		Float64("head_to_head", s.HeadToHead).
		Float64("completeness", s.Completeness()).
		Msg("aggregated signals")

	return s
}

// formScore computes the recency-weighted result-point average over the last
// FormWindow matches of a team. The most recent match carries the highest
// weight. Returns (0.5, true) when the team has no history.
func (a *Aggregator) formScore(teamID string, results []models.MatchResult) (float64, bool) {
	recent := teamMatches(teamID, results, a.params.FormWindow)
	if len(recent) == 0 {
		return 0.5, true
	}

	var weighted, totalWeight float64
	for i, m := range recent {
		weight := float64(len(recent) - i)
		weighted += resultPoints(teamID, m) * weight
		totalWeight += weight
	}
	return weighted / totalWeight, false
}

// headToHead computes the home side's win-rate over all shared prior
// fixtures. Returns (0.5, true) when the sides never met.
func (a *Aggregator) headToHead(homeID, awayID string, results []models.MatchResult) (float64, bool) {
	var meetings, homeWins int
	for _, m := range results {
		if !involves(m, homeID) || !involves(m, awayID) {
			continue
		}
		meetings++
		if winner(m) == homeID {
			homeWins++
		}
	}
	if meetings == 0 {
		return 0.5, true
	}
	return float64(homeWins) / float64(meetings), false
}

// injuryImpact sums the importance of a team's missing players, normalized
// by the squad's total importance. Returns (0, true) when the squad total is
// unknown; an empty injury list with a known squad is a genuine zero.
func (a *Aggregator) injuryImpact(teamID string, inputs models.SignalInputs) (float64, bool) {
	total, ok := inputs.SquadImportance[teamID]
	if !ok || total <= 0 {
		return 0, true
	}

	var missing float64
	for _, inj := range inputs.Injuries {
		if inj.TeamID == teamID && inj.Importance > 0 {
			missing += inj.Importance
		}
	}

	impact := missing / total
	if impact > 1 {
		impact = 1
	}
	return impact, false
}

// positionDelta is the league-position gap favoring the home side,
// normalized to [-1,1]. Returns (0, true) when either position is unknown.
func (a *Aggregator) positionDelta(fixture models.Fixture, positions map[string]int) (float64, bool) {
	homePos, okHome := positions[fixture.HomeTeamID]
	awayPos, okAway := positions[fixture.AwayTeamID]
	if !okHome || !okAway {
		return 0, true
	}

	delta := float64(awayPos-homePos) / positionDeltaScale
	return clamp(delta, -1, 1), false
}

// homeAdvantage resolves the per-fixture override, then the league default,
// then the global default.
func (a *Aggregator) homeAdvantage(fixture models.Fixture, overrides map[string]float64) float64 {
	if v, ok := overrides[fixture.ID]; ok {
		return v
	}
	if v, ok := a.params.HomeAdvantage[fixture.LeagueID]; ok {
		return v
	}
	return a.params.DefaultHomeAdvantage
}

// teamMatches returns up to limit matches involving the team, most recent
// first. Input order is not trusted; sorting keeps the window deterministic.
func teamMatches(teamID string, results []models.MatchResult, limit int) []models.MatchResult {
	var matches []models.MatchResult
	for _, m := range results {
		if involves(m, teamID) {
			matches = append(matches, m)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].PlayedAt.After(matches[j].PlayedAt)
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// resultPoints maps a match outcome to form points: win 1, draw 0.5, loss 0.
func resultPoints(teamID string, m models.MatchResult) float64 {
	w := winner(m)
	switch {
	case w == teamID:
		return 1
	case w == "":
		return 0.5
	default:
		return 0
	}
}

// winner returns the winning team id, or "" for a draw.
func winner(m models.MatchResult) string {
	switch {
	case m.HomeGoals > m.AwayGoals:
		return m.HomeTeamID
	case m.AwayGoals > m.HomeGoals:
		return m.AwayTeamID
	default:
		return ""
	}
}

func involves(m models.MatchResult, teamID string) bool {
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
