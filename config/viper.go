package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// rawConfig mirrors the YAML/env/flag shape of the recognized options
// (§6), unmarshaled by Viper before being converted into the typed
// Config. String enum fields (`csp_model`, `heuristic`) are validated and
// converted by Load, not by Viper's own Unmarshal.
type rawConfig struct {
	CSPModel                    string `mapstructure:"csp_model"`
	UseNoveltyConstraint        bool   `mapstructure:"use_novelty_constraint"`
	ApproximateActionResolution bool   `mapstructure:"approximate_action_resolution"`
	UseMinHMaxValueSelector     bool   `mapstructure:"use_min_hmax_value_selector"`
	Heuristic                   string `mapstructure:"heuristic"`
}

// Load binds the recognized options (§6) from, in increasing priority:
// defaults, an optional `planner.yaml` file in dataDir, and environment
// variables prefixed `PLANNER_`. No command-line flags are bound into this
// Viper instance: the CLI layer owns --timeout/--data/--out/-h as plain
// `flag` variables and sets only Timeout, DataDir and OutDir from them
// (SPEC_FULL's CLI section). A missing planner.yaml is not an error: the
// defaults apply, mirroring FromYaml's pattern of reading the one file
// it's pointed at but surfacing a clear error for anything else wrong.
func Load(dataDir string) (Config, error) {
	v := viper.New()
	v.SetConfigName("planner")
	v.SetConfigType("yaml")
	v.AddConfigPath(dataDir)
	v.SetEnvPrefix("PLANNER")
	v.AutomaticEnv()

	cfg := Default()
	v.SetDefault("csp_model", cfg.CSPModel.String())
	v.SetDefault("use_novelty_constraint", cfg.UseNoveltyConstraint)
	v.SetDefault("approximate_action_resolution", cfg.ApproximateActionResolution)
	v.SetDefault("use_min_hmax_value_selector", cfg.UseMinHMaxValueSelector)
	v.SetDefault("heuristic", cfg.Heuristic.String())

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return Config{}, fmt.Errorf("config: reading planner.yaml: %w", err)
		}
	}

	var raw rawConfig
	if err := v.Unmarshal(&raw); err != nil {
		return Config{}, fmt.Errorf("config: unmarshaling planner.yaml: %w", err)
	}

	model, err := parseCSPModel(raw.CSPModel)
	if err != nil {
		return Config{}, err
	}
	heuristic, err := parseHeuristic(raw.Heuristic)
	if err != nil {
		return Config{}, err
	}

	cfg.CSPModel = model
	cfg.UseNoveltyConstraint = raw.UseNoveltyConstraint
	cfg.ApproximateActionResolution = raw.ApproximateActionResolution
	cfg.UseMinHMaxValueSelector = raw.UseMinHMaxValueSelector
	cfg.Heuristic = heuristic

	return cfg, nil
}

func parseCSPModel(s string) (CSPModel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "effectschemacsp", "effect_schema_csp":
		return EffectSchemaCSP, nil
	case "actionschemacsp", "action_schema_csp":
		return ActionSchemaCSP, nil
	case "groundactioncsp", "ground_action_csp":
		return GroundActionCSP, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCSPModel, s)
	}
}

func parseHeuristic(s string) (Heuristic, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "h_ff", "hff", "ff":
		return HFF, nil
	case "h_max", "hmax", "max":
		return HMax, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownHeuristic, s)
	}
}
