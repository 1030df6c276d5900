package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fsplanner/config"
)

func TestDefault_MatchesDocumentedDefaults(t *testing.T) {
	cfg := config.Default()
	require.Equal(t, config.EffectSchemaCSP, cfg.CSPModel)
	require.False(t, cfg.UseNoveltyConstraint)
	require.False(t, cfg.ApproximateActionResolution)
	require.False(t, cfg.UseMinHMaxValueSelector)
	require.Equal(t, config.HFF, cfg.Heuristic)
	require.Equal(t, 10*time.Second, cfg.Timeout)
	require.Equal(t, "data", cfg.DataDir)
	require.Equal(t, ".", cfg.OutDir)
}

func TestNew_AppliesOptionsOverDefaults(t *testing.T) {
	cfg := config.New(
		config.WithHeuristic(config.HMax),
		config.WithNoveltyConstraint(true),
		config.WithTimeout(5*time.Second),
		config.WithDataDir("/tmp/data"),
	)
	require.Equal(t, config.HMax, cfg.Heuristic)
	require.True(t, cfg.UseNoveltyConstraint)
	require.Equal(t, 5*time.Second, cfg.Timeout)
	require.Equal(t, "/tmp/data", cfg.DataDir)
}

func TestValidate_RejectsNonEffectSchemaModels(t *testing.T) {
	cfg := config.New(config.WithCSPModel(config.ActionSchemaCSP))
	require.ErrorIs(t, cfg.Validate(), config.ErrUnsupportedApproximateFormula)

	cfg = config.New(config.WithCSPModel(config.GroundActionCSP))
	require.ErrorIs(t, cfg.Validate(), config.ErrUnsupportedApproximateFormula)

	cfg = config.Default()
	require.NoError(t, cfg.Validate())
}

func TestLoad_DefaultsWhenNoPlannerYAML(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	require.NoError(t, err)
	require.Equal(t, config.Default().CSPModel, cfg.CSPModel)
	require.Equal(t, config.HFF, cfg.Heuristic)
}

func TestLoad_ReadsPlannerYAML(t *testing.T) {
	dir := t.TempDir()
	yaml := "heuristic: h_max\nuse_novelty_constraint: true\nuse_min_hmax_value_selector: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "planner.yaml"), []byte(yaml), 0o644))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	require.Equal(t, config.HMax, cfg.Heuristic)
	require.True(t, cfg.UseNoveltyConstraint)
	require.True(t, cfg.UseMinHMaxValueSelector)
}

func TestLoad_RejectsUnknownHeuristic(t *testing.T) {
	dir := t.TempDir()
	yaml := "heuristic: not-a-real-heuristic\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "planner.yaml"), []byte(yaml), 0o644))

	_, err := config.Load(dir)
	require.ErrorIs(t, err, config.ErrUnknownHeuristic)
}
