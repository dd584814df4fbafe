// Package rating implements the Rating Engine of spec.md §4.1: a
// point-estimate modified-Elo update with season-phase and score-margin
// modulation, winter-break detection, and the cross-group corrective pass.
package rating

import "math"

// KBase is the unmodulated K-factor; the season-phase multiplier φ and the
// score-proportion multiplier π scale it per match, per spec.md §4.1.
const KBase = 100.0

// expectedScore is the standard logistic Elo expectation with a 250-point
// scale, per spec.md §4.1.
func expectedScore(ratingA, ratingB float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (ratingB-ratingA)/250.0))
}

// actualScore converts a final score into the {0, 0.5, 1} result used by
// the Elo update.
func actualScore(scoreA, scoreB int) (float64, float64) {
	switch {
	case scoreA > scoreB:
		return 1, 0
	case scoreA < scoreB:
		return 0, 1
	default:
		return 0.5, 0.5
	}
}

// scoreProportion is π, the score-margin multiplier: zero scores are
// floored to 0.5 before the ratio is taken, per spec.md §4.1.
func scoreProportion(scoreA, scoreB int) float64 {
	a, b := float64(scoreA), float64(scoreB)
	if a == 0 {
		a = 0.5
	}
	if b == 0 {
		b = 0.5
	}
	ratio := a / b
	if ratio < 1 {
		ratio = b / a
	}
	return math.Pow(ratio, 0.1)
}

// log16 is log base 16, used throughout the season-phase formula.
func log16(x float64) float64 {
	return math.Log(x) / math.Log(16)
}

// seasonPhase is φ: it grades a team's position in its own season,
// separately for early season, post-winter-break, mid-season and playoffs,
// per spec.md §4.1. gamesBeforeWinter is nil until the team has crossed its
// own winter-break boundary.
func seasonPhase(gameIndex, total int, gamesBeforeWinter *int, round string) float64 {
	if round == roundThirdPlace {
		return 0.75
	}
	x := 8.0 * float64(gameIndex) / float64(total)
	if x > 8 {
		return 1.5
	}
	if gamesBeforeWinter != nil {
		gbw := float64(*gamesBeforeWinter)
		xPost := 5 + 8*(float64(gameIndex)-gbw-1)/float64(total)
		if xPost < 8.0/3.0+5 {
			return math.Sqrt(1.0 / log16(4*(xPost-4)))
		}
		return 1.0
	}
	if x < 8.0/3.0 {
		xStart := 1 + 8*(float64(gameIndex)-1)/float64(total)
		return 1.0 / log16(4*xStart)
	}
	return 1.0
}

const roundThirdPlace = "E3L"

// UpdateMatch computes the rating deltas for one completed match, per
// spec.md §4.1's single-match update contract (also the entry point the
// Monte-Carlo Engine calls per simulated fixture). gameIndex/total/
// gamesBeforeWinter are per-side, since two teams need not share the same
// game count at a given calendar point (byes, different group sizes).
// hasAbsence zeroes both deltas regardless of the computed values.
func UpdateMatch(
	ratingA, ratingB float64,
	scoreA, scoreB int,
	gameIndexA, gameIndexB, totalA, totalB int,
	gamesBeforeWinterA, gamesBeforeWinterB *int,
	round string,
	hasAbsence bool,
) (deltaA, deltaB int) {
	if hasAbsence {
		return 0, 0
	}

	eA := expectedScore(ratingA, ratingB)
	eB := 1 - eA
	sA, sB := actualScore(scoreA, scoreB)
	pi := scoreProportion(scoreA, scoreB)

	phiA := seasonPhase(gameIndexA, totalA, gamesBeforeWinterA, round)
	phiB := seasonPhase(gameIndexB, totalB, gamesBeforeWinterB, round)

	kA := KBase * phiA * pi
	kB := KBase * phiB * pi

	deltaA = int(math.Round(kA * (sA - eA)))
	deltaB = int(math.Round(kB * (sB - eB)))
	return deltaA, deltaB
}
