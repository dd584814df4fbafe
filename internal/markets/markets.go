// Package markets computes payoff-market expected values from the
// Monte-Carlo Engine's per-team final-position distribution — an optional
// report alongside the required per-team forecast CSV.
package markets

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tacaua/forecast/internal/montecarlo"
)

// Market is a named payoff structure over a standings outright — e.g. a
// "top 4" or "champion" market — applied to a set of teams.
type Market struct {
	Name   string
	Payoff string // e.g. "1|4x0.25|19x0"
	Teams  []string

	parsedPayoff []float64
}

// NewMarket parses and validates Payoff against len(teams).
func NewMarket(name, payoff string, teams []string) (*Market, error) {
	parsed, err := ParsePayoff(payoff)
	if err != nil {
		return nil, err
	}
	if len(parsed) != len(teams) {
		return nil, fmt.Errorf("market %s payoff length (%d) does not match team count (%d)", name, len(parsed), len(teams))
	}
	return &Market{Name: name, Payoff: payoff, Teams: teams, parsedPayoff: parsed}, nil
}

// ParsePayoff parses expressions like "1|4x0.25|19x0": "1" means one
// position pays 1.0, "4x0.25" means the next four positions each pay 0.25.
func ParsePayoff(expr string) ([]float64, error) {
	var payoff []float64
	for _, part := range strings.Split(expr, "|") {
		tokens := strings.Split(part, "x")

		var n int
		var v float64
		var err error

		switch len(tokens) {
		case 1:
			n = 1
			v, err = strconv.ParseFloat(tokens[0], 64)
		case 2:
			var errN error
			n, errN = strconv.Atoi(tokens[0])
			v, err = strconv.ParseFloat(tokens[1], 64)
			if errN != nil {
				err = errN
			}
		default:
			return nil, fmt.Errorf("invalid payoff segment: %q", part)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid payoff segment %q: %w", part, err)
		}
		for i := 0; i < n; i++ {
			payoff = append(payoff, v)
		}
	}
	return payoff, nil
}

// marketDefinition is one entry of the optional markets JSON config, per
// spec.md §6's "enrichment reports are additive" allowance.
type marketDefinition struct {
	Name   string   `json:"name"`
	Payoff string   `json:"payoff"`
	Teams  []string `json:"teams"`
}

// LoadConfig reads a markets JSON config (a top-level array of
// marketDefinition), building and validating one Market per entry. A
// missing file is returned as the unwrapped os.ReadFile error; the CLI
// treats any error here as "no markets configured".
func LoadConfig(path string) ([]*Market, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var defs []marketDefinition
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("markets: parse %s: %w", path, err)
	}
	out := make([]*Market, 0, len(defs))
	for _, d := range defs {
		m, err := NewMarket(d.Name, d.Payoff, d.Teams)
		if err != nil {
			return nil, fmt.Errorf("markets: %s: %w", path, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// ExpectedValues computes, for every team in the market, the probability-
// weighted payoff using the whole-table final-position distribution
// (montecarlo.PerTeamStats.PositionProbabilities, 1-based). Markets that
// restrict Teams to a strict subset of the league are assumed to still
// index the payoff by the team's global standings position — re-deriving a
// subset-only rank distribution per iteration was judged not worth the
// extra per-iteration bookkeeping for this optional report.
func ExpectedValues(result *montecarlo.Result, market *Market) map[string]float64 {
	values := make(map[string]float64, len(market.Teams))
	for _, team := range market.Teams {
		stats, ok := result.PerTeam[team]
		if !ok {
			continue
		}
		var ev float64
		for position, prob := range stats.PositionProbabilities {
			idx := position - 1
			if idx >= 0 && idx < len(market.parsedPayoff) {
				ev += prob * market.parsedPayoff[idx]
			}
		}
		values[team] = ev
	}
	return values
}
