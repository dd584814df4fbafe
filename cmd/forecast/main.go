// Command forecast is the CLI entry point of spec.md §6: it replays the
// recorded matches of one or more sports through the Rating Engine, fits (or
// loads) the Historical Calibrator, then runs the Monte-Carlo Engine over the
// remaining fixtures and writes the forecast/report CSVs.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tacaua/forecast/internal/calibrate"
	"github.com/tacaua/forecast/internal/config"
	"github.com/tacaua/forecast/internal/hardset"
	"github.com/tacaua/forecast/internal/ingest"
	"github.com/tacaua/forecast/internal/markets"
	"github.com/tacaua/forecast/internal/match"
	"github.com/tacaua/forecast/internal/montecarlo"
	"github.com/tacaua/forecast/internal/obs"
	"github.com/tacaua/forecast/internal/rating"
	"github.com/tacaua/forecast/internal/report"
	"github.com/tacaua/forecast/internal/sampler"
	"github.com/tacaua/forecast/internal/standings"
)

var allSports = []match.Sport{
	match.Handball, match.Futsal, match.Football7, match.Basketball, match.Volleyball,
}

func main() {
	if err := config.RootCommand(run).Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	obs.SetLevel(cfg.LogLevel)
	log := obs.L()

	sports := allSports
	if cfg.Modalidade != "" {
		sports = []match.Sport{match.Sport(cfg.Modalidade)}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("forecast: create output dir: %w", err)
	}

	courses, err := ingest.LoadCourses(filepath.Join(cfg.MatchesDir, "courses.json"))
	if err != nil {
		log.Warn("course mapping absent, proceeding with literal team names", "error", err)
		courses = nil
	}

	bySport := make(map[match.Sport][]match.Match, len(sports))
	var allPast []match.Match
	for _, sport := range sports {
		path := filepath.Join(cfg.MatchesDir, string(sport)+".csv")
		matches, warnings, err := ingest.LoadMatches(path, sport, courses)
		if err != nil {
			log.Warn("sport has no match file, skipping", "sport", sport, "error", err)
			continue
		}
		obs.Warnings(fmt.Sprintf("ingest.%s", sport), rowWarningStrings(warnings))
		bySport[sport] = matches
		past, _ := match.Partition(matches)
		allPast = append(allPast, past...)
	}

	calibrationPath := filepath.Join(cfg.OutputDir, "calibration.json")
	cal, err := calibrate.Load(calibrationPath)
	if err != nil {
		log.Warn("no cached calibration found, fitting from replayed history", "error", err)
		cal = calibrate.Fit(allPast)
		if err := calibrate.Save(calibrationPath, cal); err != nil {
			log.Warn("could not cache fitted calibration", "error", err)
		}
	}

	hardsetMgr := hardset.New(courses.Aliases())
	if cfg.HardsetCSV != "" {
		if err := hardsetMgr.LoadCSV(cfg.HardsetCSV); err != nil {
			return fmt.Errorf("forecast: load hardset csv: %w", err)
		}
	}
	for _, pin := range cfg.Hardsets {
		hardsetMgr.Add(pin.FixtureID, pin.ScoreA, pin.ScoreB)
	}

	for sport, matches := range bySport {
		if len(matches) == 0 {
			continue
		}
		if err := forecastSport(cfg, sport, matches, courses, cal, hardsetMgr); err != nil {
			return fmt.Errorf("forecast: %s: %w", sport, err)
		}
	}
	return nil
}

// forecastSport replays one sport's season, derives its Monte-Carlo
// structural parameters, runs the projection (once, or twice under
// --compare), and writes every report.
func forecastSport(cfg *config.Config, sport match.Sport, matches []match.Match, courses *ingest.Courses,
	cal calibrate.Calibration, hardsetMgr *hardset.Manager) error {

	ratingResult := rating.ProcessSeason(matches, nil)
	obs.Warnings(fmt.Sprintf("rating.%s", sport), ratingResult.Warnings)

	shape := ingest.DeriveLeagueShape(matches, sport)
	year := seasonYear(matches)
	past, _ := match.Partition(matches)

	in := buildInput(cfg, sport, matches, ratingResult, shape, courses, cal, hardsetMgr)

	if cfg.Compare {
		baseline := *in
		baseline.Hardset = nil
		baselineResult := montecarlo.Run(&baseline)
		if err := writeReports(cfg, sport, year, past, baselineResult, ratingResult, false); err != nil {
			return err
		}
	}

	result := montecarlo.Run(in)
	hasHardsets := hardsetMgr != nil && hardsetMgr.AffectedSports()[sport]
	return writeReports(cfg, sport, year, past, result, ratingResult, hasHardsets)
}

func buildInput(cfg *config.Config, sport match.Sport, matches []match.Match, ratingResult *rating.Result,
	shape ingest.LeagueShape, courses *ingest.Courses, cal calibrate.Calibration, hardsetMgr *hardset.Manager) *montecarlo.Input {

	_, future := match.Partition(matches)

	teams := ratingResult.Registry.Names()
	ratings := ratingResult.Registry.Ratings()

	gameIndex := make(map[string]int, len(teams))
	totalGroupGames := make(map[string]int, len(teams))
	for _, t := range teams {
		if team, ok := ratingResult.Registry.Team(t); ok {
			gameIndex[t] = team.GamesPlayed
			totalGroupGames[t] = team.GamesPlayed + futureGamesFor(future, t)
		}
	}

	shortCode := func(name string) string { return courses.ShortCode(name) }

	boundary, haveBoundary := rating.DetectWinterBreak(matches)
	var beforeWinter map[string]int
	if haveBoundary {
		beforeWinter = rating.GamesBeforeWinter(matches, boundary)
	}

	goalParamsBySport := map[montecarlo.Sport]sampler.GoalParams{
		sport: calibrate.GoalParams(cal, sport, 0),
	}

	return &montecarlo.Input{
		Sport: sport,

		Teams:   teams,
		Ratings: ratings,

		TeamDivision: shape.TeamDivision,
		TeamGroup:    shape.TeamGroup,

		Fixtures: future,

		RealPoints: shape.RealPoints,

		HasLiguilla:    shape.HasLiguilla,
		Div2GroupCount: shape.Div2GroupCount,

		PlayoffSlots:      shape.PlayoffSlots,
		TotalPlayoffSlots: shape.TotalPlayoffSlots,

		Hardset:   hardsetMgr,
		ShortCode: shortCode,

		GoalParamsBySport:    goalParamsBySport,
		GoalParamsByDivision: calibrate.GoalParamsByDivision(cal, sport),
		BasketballParams:     calibrate.BasketballParams(cal, 0),

		NSimulations: cfg.NSimulations,
		BaseSeed:     1,

		GameIndex:          gameIndex,
		TotalGroupGames:    totalGroupGames,
		GamesBeforeWinter:  beforeWinter,
		HaveWinterBoundary: haveBoundary,
	}
}

func futureGamesFor(future []match.Match, team string) int {
	n := 0
	for _, m := range future {
		if m.TeamA == team || m.TeamB == team {
			n++
		}
	}
	return n
}

func seasonYear(matches []match.Match) int {
	var latest time.Time
	for _, m := range matches {
		if m.Date.After(latest) {
			latest = m.Date
		}
	}
	if latest.IsZero() {
		return time.Now().Year()
	}
	return latest.Year()
}

func writeReports(cfg *config.Config, sport match.Sport, year int, past []match.Match,
	result *montecarlo.Result, ratingResult *rating.Result, hasHardsets bool) error {

	teamPath := filepath.Join(cfg.OutputDir, report.ForecastFilename(string(sport), year, hasHardsets))
	if err := report.WriteTeamForecast(teamPath, result); err != nil {
		return err
	}

	fixturePath := filepath.Join(cfg.OutputDir, report.FixtureForecastFilename(string(sport), year))
	if err := report.WriteFixtureForecast(fixturePath, result); err != nil {
		return err
	}

	historyPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("ratings_%s_%d.csv", sport, year))
	if err := report.WriteRatingHistory(historyPath, ratingResult.Registry); err != nil {
		return err
	}

	logPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("log_%s_%d.csv", sport, year))
	if err := report.WriteMatchLog(logPath, ratingResult.Log); err != nil {
		return err
	}

	teamSet := ratingResult.Registry.Names()
	tables := standings.Compute(past, sport, teamSet)
	for key, table := range tables {
		suffix := key
		if suffix == "" {
			suffix = "geral"
		}
		standingsPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("standings_%s_%d_%s.csv", sport, year, suffix))
		if err := report.WriteStandings(standingsPath, table); err != nil {
			return err
		}
	}

	marketDefs, err := markets.LoadConfig(filepath.Join(cfg.MatchesDir, fmt.Sprintf("markets_%s.json", sport)))
	if err == nil && len(marketDefs) > 0 {
		marketsPath := filepath.Join(cfg.OutputDir, report.MarketsFilename(string(sport), year))
		if err := report.WriteMarkets(marketsPath, result, marketDefs); err != nil {
			return err
		}
	}

	return nil
}

func rowWarningStrings(warnings []ingest.Warning) []string {
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = fmt.Sprintf("line %d: %s", w.Line, w.Message)
	}
	return out
}
