// Package config builds the CLI surface of spec.md §6 on cobra, with
// defaults layered through viper and .env support via godotenv, following
// the pack's config idiom (viper defaults + env binding, godotenv.Load()
// at startup).
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// HardsetPin is one parsed --hardset occurrence.
type HardsetPin struct {
	FixtureID string
	ScoreA    int
	ScoreB    int
}

// Config is the resolved run configuration, per spec.md §6's CLI surface.
type Config struct {
	Modalidade string // "" = every sport

	NSimulations int
	Compare      bool

	Hardsets  []HardsetPin
	HardsetCSV string

	MatchesDir string
	OutputDir  string

	LogLevel string
}

const (
	defaultNSimulations = 10000
	deepSimulation      = 100000
	deeperSimulation    = 1000000
)

// RootCommand builds the "forecast" root cobra command. run is invoked with
// the resolved Config once flags are parsed.
func RootCommand(run func(cfg *Config) error) *cobra.Command {
	v := viper.New()
	v.SetDefault("n_simulations", defaultNSimulations)
	v.SetDefault("matches_dir", "data/matches")
	v.SetDefault("output_dir", "output")
	v.SetDefault("log_level", "info")
	v.AutomaticEnv()
	v.SetEnvPrefix("forecast")
	v.BindEnv("matches_dir", "FORECAST_MATCHES_DIR")
	v.BindEnv("output_dir", "FORECAST_OUTPUT_DIR")
	v.BindEnv("log_level", "FORECAST_LOG_LEVEL")

	var (
		modalidade       string
		compare          bool
		deepFlag         bool
		deeperFlag       bool
		nSimulations     int
		hardsetRaw       []string
		hardsetCSV       string
		matchesDir       string
		outputDir        string
		logLevel         string
	)

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Simulate university cup standings via Monte-Carlo projection",
		Long: "forecast replays recorded matches through the Rating Engine, then runs a " +
			"Monte-Carlo projection of the remaining fixtures, playoff bracket, and " +
			"promotion/relegation to produce per-team and per-fixture forecasts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			if nSimulations > 0 {
				v.Set("n_simulations", nSimulations)
			}
			if deeperFlag {
				v.Set("n_simulations", deeperSimulation)
			} else if deepFlag {
				v.Set("n_simulations", deepSimulation)
			}
			if matchesDir != "" {
				v.Set("matches_dir", matchesDir)
			}
			if outputDir != "" {
				v.Set("output_dir", outputDir)
			}
			if logLevel != "" {
				v.Set("log_level", logLevel)
			}

			pins, err := parseHardsets(hardsetRaw)
			if err != nil {
				return err
			}

			cfg := &Config{
				Modalidade:   modalidade,
				NSimulations: v.GetInt("n_simulations"),
				Compare:      compare,
				Hardsets:     pins,
				HardsetCSV:   hardsetCSV,
				MatchesDir:   v.GetString("matches_dir"),
				OutputDir:    v.GetString("output_dir"),
				LogLevel:     v.GetString("log_level"),
			}
			return run(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&modalidade, "modalidade", "", "restrict the run to one sport")
	flags.BoolVar(&compare, "compare", false, "run once without hardsets, once with, and report both")
	flags.BoolVar(&deepFlag, "deep-simulation", false, fmt.Sprintf("use %d iterations", deepSimulation))
	flags.BoolVar(&deeperFlag, "deeper-simulation", false, fmt.Sprintf("use %d iterations", deeperSimulation))
	flags.IntVar(&nSimulations, "n-simulations", 0, "override the iteration count directly")
	flags.StringArrayVar(&hardsetRaw, "hardset", nil, `pin a fixture outcome as "FIXTURE_ID:SCORE_A-SCORE_B" (repeatable)`)
	flags.StringVar(&hardsetCSV, "hardset-csv", "", "load pinned outcomes from a match_id,score_a,score_b CSV")
	flags.StringVar(&matchesDir, "matches-dir", "", "directory of normalized match CSVs")
	flags.StringVar(&outputDir, "output-dir", "", "directory for forecast/report CSVs")
	flags.StringVar(&logLevel, "log-level", "", "debug, info, warn, or error")

	return cmd
}

// parseHardsets parses the "FIXTURE_ID:SCORE_A-SCORE_B" encoding each
// --hardset flag occurrence carries, since pflag flags take a single value
// per occurrence rather than the two free-form tokens spec.md §6 describes.
func parseHardsets(raw []string) ([]HardsetPin, error) {
	pins := make([]HardsetPin, 0, len(raw))
	for _, entry := range raw {
		idPart, scorePart, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, fmt.Errorf("invalid --hardset %q: expected FIXTURE_ID:SCORE_A-SCORE_B", entry)
		}
		a, b, ok := strings.Cut(scorePart, "-")
		if !ok {
			return nil, fmt.Errorf("invalid --hardset score %q: expected SCORE_A-SCORE_B", scorePart)
		}
		scoreA, errA := strconv.Atoi(a)
		scoreB, errB := strconv.Atoi(b)
		if errA != nil || errB != nil {
			return nil, fmt.Errorf("invalid --hardset score %q: non-integer score", scorePart)
		}
		pins = append(pins, HardsetPin{FixtureID: idPart, ScoreA: scoreA, ScoreB: scoreB})
	}
	return pins, nil
}
