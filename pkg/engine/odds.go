package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/match-prediction-service/internal/models"
)

// Normalizer converts heterogeneous bookmaker quotes into overround-free
// implied probabilities per market.
type Normalizer struct {
	logger zerolog.Logger
}

// NewNormalizer creates a new odds normalizer
func NewNormalizer(logger zerolog.Logger) *Normalizer {
	return &Normalizer{
		logger: logger.With().Str("component", "normalizer").Logger(),
	}
}

// Normalize converts the quotes for one fixture into per-market implied
// probabilities. Invalid quotes are dropped and returned as InvalidOddsError
// values; a market with no surviving quote is marked unavailable.
//
// Multiple quotes for the same selection are reduced to the median decimal
// price before inverting, which is order-independent and robust to stale
// outliers.
func (n *Normalizer) Normalize(quotes []models.OddsQuote) (map[models.MarketKind]models.MarketProbs, []error) {
	prices := make(map[models.MarketKind]map[models.Selection][]decimal.Decimal)
	var dropped []error

	for _, q := range quotes {
		price, err := DecimalPrice(q)
		if err != nil {
			n.logger.Warn().
				Err(err).
				Str("fixture_id", q.FixtureID).
				Str("bookmaker", q.Bookmaker).
				Str("market", string(q.Market)).
				Msg("dropping invalid quote")
			dropped = append(dropped, err)
			continue
		}
		if prices[q.Market] == nil {
			prices[q.Market] = make(map[models.Selection][]decimal.Decimal)
		}
		prices[q.Market][q.Selection] = append(prices[q.Market][q.Selection], price)
	}

	markets := make(map[models.MarketKind]models.MarketProbs, len(prices))
	for market, selections := range prices {
		markets[market] = n.normalizeMarket(selections)
	}

	// Markets only seen through invalid quotes degrade to unavailable
	// rather than disappearing from the result.
	for _, err := range dropped {
		if oe, ok := err.(*InvalidOddsError); ok {
			if _, seen := markets[oe.Quote.Market]; !seen {
				markets[oe.Quote.Market] = models.MarketProbs{Unavailable: true}
			}
		}
	}

	return markets, dropped
}

// normalizeMarket strips the overround from one market's median prices so
// the implied probabilities sum to 1.
func (n *Normalizer) normalizeMarket(selections map[models.Selection][]decimal.Decimal) models.MarketProbs {
	if len(selections) == 0 {
		return models.MarketProbs{Unavailable: true}
	}

	medians := make(map[models.Selection]decimal.Decimal, len(selections))
	implied := make(map[models.Selection]decimal.Decimal, len(selections))
	total := decimal.Zero

	for sel, priceList := range selections {
		median := medianPrice(priceList)
		medians[sel] = median
		prob := decimal.NewFromInt(1).Div(median)
		implied[sel] = prob
		total = total.Add(prob)
	}

	probs := make(map[models.Selection]float64, len(implied))
	for sel, prob := range implied {
		probs[sel] = prob.Div(total).InexactFloat64()
	}

	return models.MarketProbs{Probs: probs, Prices: medians}
}

// medianPrice returns the median of the given decimal prices.
func medianPrice(prices []decimal.Decimal) decimal.Decimal {
	sorted := make([]decimal.Decimal, len(prices))
	copy(sorted, prices)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
}

// DecimalPrice converts a quote's raw price to a decimal price. It returns
// an InvalidOddsError for malformed or non-positive prices, decimal prices
// at or below 1.0, and unrecognized formats.
func DecimalPrice(q models.OddsQuote) (decimal.Decimal, error) {
	switch q.Format {
	case models.OddsFormatDecimal:
		price, err := decimal.NewFromString(strings.TrimSpace(q.Price))
		if err != nil {
			return decimal.Zero, &InvalidOddsError{Quote: q, Reason: fmt.Sprintf("malformed decimal price %q", q.Price)}
		}
		if price.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, &InvalidOddsError{Quote: q, Reason: "price must be positive"}
		}
		// A price of exactly 1.0 implies probability 1, leaving no
		// overround to strip, so the bound is strict.
		if price.LessThanOrEqual(decimal.NewFromInt(1)) {
			return decimal.Zero, &InvalidOddsError{Quote: q, Reason: "decimal price must exceed 1.0"}
		}
		return price, nil

	case models.OddsFormatFractional:
		parts := strings.SplitN(strings.TrimSpace(q.Price), "/", 2)
		if len(parts) != 2 {
			return decimal.Zero, &InvalidOddsError{Quote: q, Reason: fmt.Sprintf("malformed fractional price %q", q.Price)}
		}
		num, err1 := strconv.ParseInt(parts[0], 10, 64)
		den, err2 := strconv.ParseInt(parts[1], 10, 64)
		if err1 != nil || err2 != nil {
			return decimal.Zero, &InvalidOddsError{Quote: q, Reason: fmt.Sprintf("malformed fractional price %q", q.Price)}
		}
		if num <= 0 || den <= 0 {
			return decimal.Zero, &InvalidOddsError{Quote: q, Reason: "fractional terms must be positive"}
		}
		// fractional -> decimal: 1 + numerator/denominator
		return decimal.NewFromInt(1).Add(decimal.NewFromInt(num).Div(decimal.NewFromInt(den))), nil

	case models.OddsFormatMoneyline:
		raw := strings.TrimSpace(strings.TrimPrefix(q.Price, "+"))
		line, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || line == 0 {
			return decimal.Zero, &InvalidOddsError{Quote: q, Reason: fmt.Sprintf("malformed moneyline price %q", q.Price)}
		}
		if line > 0 {
			// +150 -> 1 + 150/100 = 2.50
			return decimal.NewFromInt(1).Add(decimal.NewFromInt(line).Div(decimal.NewFromInt(100))), nil
		}
		// -200 -> 1 + 100/200 = 1.50
		return decimal.NewFromInt(1).Add(decimal.NewFromInt(100).Div(decimal.NewFromInt(-line))), nil

	default:
		return decimal.Zero, &InvalidOddsError{Quote: q, Reason: fmt.Sprintf("unrecognized odds format %q", q.Format)}
	}
}
