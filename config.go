package orbitalguard

import (
	"fmt"

	"github.com/spf13/viper"
)

// ScenarioConfig is a full screening scenario read from a TOML file: the
// propagation window, the screening parameterization, the triage cutoff
// and the avoidance planning inputs.
type ScenarioConfig struct {
	TLEPath       string
	DurationMin   float64
	StepMin       float64
	Workers       int
	Screen        ScreenConfig
	MaxDistanceKm float64
	MinProb       float64
	TargetSepKm   float64
	BudgetMps     float64
	OutputPath    string
	MetricsListen string
}

// LoadScenario reads a scenario from the conf.toml in confPath. The
// [screen] section selects a parameterization by name, "kilometer" or
// "meter", and may override the logistic coefficients.
func LoadScenario(confPath string) (ScenarioConfig, error) {
	v := viper.New()
	v.SetConfigName("conf")
	v.AddConfigPath(confPath)
	if err := v.ReadInConfig(); err != nil {
		return ScenarioConfig{}, fmt.Errorf("%s/conf.toml: %w", confPath, err)
	}

	v.SetDefault("propagation.duration_min", 1440.0)
	v.SetDefault("propagation.step_min", 1.0)
	v.SetDefault("propagation.workers", 4)
	v.SetDefault("screen.bands", "kilometer")
	v.SetDefault("screen.max_distance_km", 50.0)
	v.SetDefault("screen.logistic_k", 0.5)
	v.SetDefault("screen.logistic_d0", 5.0)
	v.SetDefault("triage.min_probability", 0.0)
	v.SetDefault("maneuver.target_separation_km", 5.0)
	v.SetDefault("maneuver.budget_mps", 10.0)

	var screen ScreenConfig
	switch bands := v.GetString("screen.bands"); bands {
	case "kilometer":
		screen = KilometerBands(v.GetFloat64("screen.logistic_k"), v.GetFloat64("screen.logistic_d0"))
	case "meter":
		screen = MeterBands()
	default:
		return ScenarioConfig{}, fmt.Errorf("%w: unknown band set %q", ErrInvalidInput, bands)
	}
	if v.IsSet("screen.sync_tolerance_s") {
		screen.SyncTolerance = v.GetFloat64("screen.sync_tolerance_s")
	}

	cfg := ScenarioConfig{
		TLEPath:       v.GetString("general.tle_path"),
		DurationMin:   v.GetFloat64("propagation.duration_min"),
		StepMin:       v.GetFloat64("propagation.step_min"),
		Workers:       v.GetInt("propagation.workers"),
		Screen:        screen,
		MaxDistanceKm: v.GetFloat64("screen.max_distance_km"),
		MinProb:       v.GetFloat64("triage.min_probability"),
		TargetSepKm:   v.GetFloat64("maneuver.target_separation_km"),
		BudgetMps:     v.GetFloat64("maneuver.budget_mps"),
		OutputPath:    v.GetString("general.output_path"),
		MetricsListen: v.GetString("general.metrics_listen"),
	}
	if cfg.TLEPath == "" {
		return ScenarioConfig{}, fmt.Errorf("%w: general.tle_path is required", ErrInvalidInput)
	}
	if cfg.StepMin <= 0 || cfg.DurationMin <= 0 {
		return ScenarioConfig{}, fmt.Errorf("%w: non-positive propagation window", ErrInvalidInput)
	}
	return cfg, nil
}
